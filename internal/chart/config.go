package chart

// Chart geometry of the supported calibration target.
const (
	// Rows and Cols describe the patch grid of a standard 24-patch chart.
	Rows = 4
	Cols = 6

	// Patches is the total patch count (Rows × Cols).
	Patches = Rows * Cols
)

// Config collects the heuristic thresholds used during detection. The zero
// value is not usable; start from DefaultConfig and override fields as
// needed.
type Config struct {
	// MinArea is the minimum enclosed area, in square pixels, for a
	// quadrilateral to be considered a chart candidate.
	MinArea float64

	// Aspect-ratio acceptance bands for the candidate bounding box
	// (width / height). A physical chart is roughly 1.5:1, seen either in
	// landscape or portrait orientation.
	LandscapeAspectMin float64
	LandscapeAspectMax float64
	PortraitAspectMin  float64
	PortraitAspectMax  float64

	// HistStdDevMin is the minimum standard deviation required of both the
	// hue and the saturation histogram bin counts computed inside the
	// candidate bounding box.
	HistStdDevMin float64

	// MinValidPatches is how many of the 24 patches must yield a usable
	// color sample for the chart to count as detected.
	MinValidPatches int

	// PatchSize is the half-width of the square sampling window centered
	// on each patch, in pixels. The window is (2·PatchSize)² before
	// clipping to the image bounds.
	PatchSize int

	// CannyLow and CannyHigh are the hysteresis thresholds (0-255) of the
	// edge detection stage.
	CannyLow  int
	CannyHigh int
}

// DefaultConfig returns the detection thresholds calibrated for photographs
// of a standard 24-patch chart.
func DefaultConfig() Config {
	return Config{
		MinArea:            10000,
		LandscapeAspectMin: 1.2,
		LandscapeAspectMax: 2.0,
		PortraitAspectMin:  0.5,
		PortraitAspectMax:  0.85,
		HistStdDevMin:      100,
		MinValidPatches:    Patches / 2,
		PatchSize:          10,
		CannyLow:           50,
		CannyHigh:          150,
	}
}
