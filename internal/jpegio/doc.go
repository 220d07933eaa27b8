// Package jpegio is the file boundary of the module: it loads JPEG
// photographs into pixel buffers and writes processed buffers back out.
//
// Only JPEG is supported. Physical print resolution (DPI) is not carried
// through the processing core; it is attached here at encoding time by
// writing a JFIF APP0 density segment, since the standard library encoder
// emits none.
package jpegio
