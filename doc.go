// Package av1 provides pure Go building blocks from the AV1 video codec:
// the adaptive multi-symbol entropy model and the self-guided
// loop-restoration filter, with no CGo dependencies.
//
// The package supports:
//   - Adaptive CDF probability state (per-symbol and per-frame updates)
//   - Fixed-point bit-cost evaluation for rate estimation
//   - Per-tile model adaptation with cross-tile merging
//   - Self-guided restoration for 8-, 10- and 12-bit planes
//
// Basic usage for filtering a plane:
//
//	err := av1.RestorePlane(dst, src, av1.PlaneGeometry{Width: w, Height: h, Stride: w}, 4, [2]int{-32, 31})
//
// Basic usage for entropy adaptation:
//
//	fc := av1.NewFrameContexts()
//	merged, counts, err := av1.AdaptTileContexts(tiles, tileCounts, false)
package av1
