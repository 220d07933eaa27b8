// Package chart detects a 24-patch color calibration chart (Macbeth-style,
// 4 rows × 6 columns) in a photograph and samples its patch colors.
//
// Detection runs a classic pipeline: grayscale conversion, Canny edge
// detection, external contour tracing, polygon approximation, and candidate
// validation. A candidate quadrilateral is accepted only if it is large
// enough, has a plausible aspect ratio, and shows enough hue/saturation
// diversity inside its bounding box to distinguish a patch chart from a flat
// surface.
//
// # Heuristic Thresholds
//
// All thresholds (minimum area, aspect-ratio bands, histogram spread,
// minimum valid patch count, sampling window size, Canny thresholds) are
// deliberate tuning constants collected in Config rather than inline
// literals. DefaultConfig returns values calibrated for handheld photos of
// a standard chart.
//
// # Failure Mode
//
// A chart that cannot be found, or whose patches cannot be sampled, is an
// expected condition, not an error: Detect and ExtractColors report it with
// a false second return so callers can fall back to statistical matching.
package chart
