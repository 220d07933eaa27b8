// Package raster defines the pixel buffer type shared by all processing
// stages.
//
// A PixelBuffer is a height × width × 3 interleaved 8-bit RGB raster in
// row-major order. The channel order is fixed to R, G, B everywhere in this
// module; decoders and encoders convert at the boundary. Every operation in
// the processing packages consumes and returns independently owned buffers,
// so a buffer never aliases another one.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Thread Safety
//
// PixelBuffer has no internal synchronization. Buffers are single-owner
// values: distinct buffers may be processed concurrently, but concurrent
// access to the same buffer must be synchronized by the caller.
package raster
