// Package tone provides deterministic per-pixel tonal adjustments and
// geometric operations on pixel buffers.
//
// Every function is pure: inputs are never mutated and results are always
// newly allocated, so callers can keep an untouched original while
// recomputing a processed derivative on each parameter change. Arithmetic
// that can leave the 8-bit channel range clips, never wraps.
//
// Temperature and tint shift the red/blue and green channels directly;
// brightness and saturation operate through HSV so that hue is preserved;
// contrast scales channels around the mid-gray 128.
package tone
