package match

import (
	"github.com/phototone/tonematch/internal/chart"
)

// Matcher applies color-matching strategies between a source image and a
// reference image. All methods are pure: they never mutate their inputs and
// always return newly allocated buffers.
//
// Matcher is safe for concurrent use.
type Matcher struct {
	detector *chart.Detector
}

// NewMatcher returns a matcher that uses the given detector for chart-based
// matching. The detector must not be nil.
func NewMatcher(detector *chart.Detector) *Matcher {
	return &Matcher{detector: detector}
}
