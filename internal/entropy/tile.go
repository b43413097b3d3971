package entropy

import "sync"

// Cross-tile aggregation. Tiles are coded independently and in parallel,
// each owning a FrameContexts copy; at frame end the per-tile models are
// combined into one frame-level model that seeds the next frame. Every
// combination below is a sum-then-divide, so the result cannot depend on
// tile order.

// AverageTileCDFs sets every CDF in fc to the element-wise mean of the
// corresponding CDFs across tiles.
func AverageTileCDFs(fc *FrameContexts, tiles []*FrameContexts) {
	if len(tiles) == 0 {
		panic("entropy: no tiles to aggregate")
	}
	dst := fc.cdfSlices()
	srcs := make([][][]Prob, len(tiles))
	for j, tile := range tiles {
		srcs[j] = tile.cdfSlices()
	}
	n := uint32(len(tiles))
	for k, d := range dst {
		for i := range d {
			var sum uint32
			for j := range srcs {
				sum += uint32(srcs[j][k][i])
			}
			d[i] = Prob(sum / n)
		}
	}
}

// MergeTileCDFs combines per-tile models into fc, weighting each tile's
// coefficient CDFs by the symbol count that produced them; a context no
// tile observed falls back to the plain mean. Non-coefficient CDFs are
// averaged element-wise.
func MergeTileCDFs(fc *FrameContexts, tiles []*FrameContexts, counts []*CoeffCounts) {
	if len(tiles) == 0 || len(tiles) != len(counts) {
		panic("entropy: tile/count mismatch")
	}

	weights := make([]uint64, len(tiles))
	for t := range fc.Coef {
		for r := range fc.Coef[t] {
			for b := range fc.Coef[t][r] {
				for c := range fc.Coef[t][r][b] {
					dst := fc.Coef[t][r][b][c][:]
					var wsum uint64
					for j := range tiles {
						weights[j] = uint64(contextTotal(counts[j].Coef[t][r][b][c][:]))
						wsum += weights[j]
					}
					for i := range dst {
						var acc, plain uint64
						for j := range tiles {
							v := uint64(tiles[j].Coef[t][r][b][c][i])
							acc += v * weights[j]
							plain += v
						}
						if wsum > 0 {
							dst[i] = Prob(acc / wsum)
						} else {
							dst[i] = Prob(plain / uint64(len(tiles)))
						}
					}
				}
			}
		}
	}

	// Everything after the coefficient CDFs in traversal order.
	numCoef := TxSizes * RefTypes * CoefBands * CoeffContexts
	dst := fc.cdfSlices()[numCoef:]
	srcs := make([][][]Prob, len(tiles))
	for j, tile := range tiles {
		srcs[j] = tile.cdfSlices()[numCoef:]
	}
	n := uint32(len(tiles))
	for k, d := range dst {
		for i := range d {
			var sum uint32
			for j := range srcs {
				sum += uint32(srcs[j][k][i])
			}
			d[i] = Prob(sum / n)
		}
	}
}

// AdaptTilesParallel runs per-tile coefficient adaptation concurrently
// (each tile single-writer on its own copy), joins, and merges the adapted
// models and counts into one frame-level pair.
func AdaptTilesParallel(tiles []*FrameContexts, counts []*CoeffCounts, afterKey bool) (*FrameContexts, *CoeffCounts) {
	if len(tiles) == 0 || len(tiles) != len(counts) {
		panic("entropy: tile/count mismatch")
	}

	var wg sync.WaitGroup
	for i := range tiles {
		wg.Add(1)
		go func(fc *FrameContexts, cc *CoeffCounts) {
			defer wg.Done()
			fc.AdaptCoefCDFs(cc, afterKey)
		}(tiles[i], counts[i])
	}
	wg.Wait()

	merged := tiles[0].Clone()
	MergeTileCDFs(merged, tiles, counts)

	total := &CoeffCounts{}
	for _, cc := range counts {
		total.Merge(cc)
	}
	return merged, total
}
