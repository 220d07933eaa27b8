// Package session models the lifecycle of a loaded photograph as the
// surrounding application sees it, without any user interface.
//
// A Panel keeps two buffers: the untouched original and a processed
// derivative that is recomputed from the original whenever the adjustment
// parameters change. Destructive operations (crop, resize, an accepted
// color match) commit their result as the new baseline, replacing both
// buffers and resetting the parameters to neutral.
//
// A Panel is single-owner state and performs no locking; two panels can be
// driven concurrently, one panel cannot.
package session
