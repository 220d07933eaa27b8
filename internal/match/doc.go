// Package match implements the three color-matching strategies used to
// bring two photographs of the same subject to a common tone:
//
//   - MatchHistograms: per-channel cumulative-histogram (CDF) matching
//   - ColorTransfer: statistical mean/std transfer in Lab space
//   - MatchWithChart: a least-squares 3×3 color transform fitted over the
//     patches of a physical calibration chart found in both images
//
// Chart-based matching is the most precise but requires the chart to be
// visible in both photos; its absence is reported as a recoverable
// condition so callers can fall back to the statistical strategies.
//
// A Matcher is constructed with the chart detector it should use, keeping
// the package testable with a detector configured for synthetic images.
package match
