package entropy

// Alphabet and context sizes for the non-coefficient CDFs carried per
// frame.
const (
	MVComps           = 2 // row, column
	MVJoints          = 4
	MVClasses         = 11
	IntraModes        = 13
	BlockSizeGroups   = 4
	InterModes        = 4
	InterModeContexts = 7

	// Loop-restoration type signaling: none, Wiener, self-guided.
	RestoreSwitchableTypes = 3
)

// CoeffCDFModel holds the coefficient-token CDFs for one transform size
// class: reference type x band x nearby-complexity context.
type CoeffCDFModel [RefTypes][CoefBands][CoeffContexts][EntropyTokens + 1]Prob

// FrameContexts owns every CDF used to code one frame. A fresh instance
// starts from the default model; the decoder (or a multi-pass encoder)
// mutates it in place per coded symbol, and at frame end per-tile copies
// are merged and carried into the next frame.
//
// Each tile must own its copy exclusively while coding; the only cross-tile
// synchronization point is the explicit merge in tile.go.
type FrameContexts struct {
	Coef    [TxSizes]CoeffCDFModel
	TxbSkip [TxSizes][TxbSkipContexts][2 + 1]Prob
	EOBFlag [TxSizes][PlaneTypes][EobCoefContexts][2 + 1]Prob
	CoeffBr [TxSizes][PlaneTypes][LevelContexts][BrCDFSize + 1]Prob
	DCSign  [PlaneTypes][DCSignContexts][2 + 1]Prob

	MVJoint [MVJoints + 1]Prob
	MVSign  [MVComps][2 + 1]Prob
	MVClass [MVComps][MVClasses + 1]Prob

	YMode     [BlockSizeGroups][IntraModes + 1]Prob
	UVMode    [IntraModes][IntraModes + 1]Prob
	InterMode [InterModeContexts][InterModes + 1]Prob

	SwitchableRestore [RestoreSwitchableTypes + 1]Prob
}

// NewFrameContexts returns a frame context initialized to the default
// (uniform) model.
func NewFrameContexts() *FrameContexts {
	fc := &FrameContexts{}
	fc.Reset()
	return fc
}

// Reset restores the default model and clears all adaptation counters.
func (fc *FrameContexts) Reset() {
	for _, cdf := range fc.cdfSlices() {
		InitUniformCDF(cdf)
	}
}

// Clone returns an independent copy, e.g. to hand one context to each tile.
func (fc *FrameContexts) Clone() *FrameContexts {
	c := *fc
	return &c
}

// cdfSlices returns views of every CDF in a fixed traversal order. Two
// FrameContexts enumerate structurally identical positions, which is what
// the tile-merge code relies on.
func (fc *FrameContexts) cdfSlices() [][]Prob {
	s := make([][]Prob, 0, fc.numCDFs())
	for t := range fc.Coef {
		for r := range fc.Coef[t] {
			for b := range fc.Coef[t][r] {
				for c := range fc.Coef[t][r][b] {
					s = append(s, fc.Coef[t][r][b][c][:])
				}
			}
		}
	}
	for t := range fc.TxbSkip {
		for c := range fc.TxbSkip[t] {
			s = append(s, fc.TxbSkip[t][c][:])
		}
	}
	for t := range fc.EOBFlag {
		for p := range fc.EOBFlag[t] {
			for c := range fc.EOBFlag[t][p] {
				s = append(s, fc.EOBFlag[t][p][c][:])
			}
		}
	}
	for t := range fc.CoeffBr {
		for p := range fc.CoeffBr[t] {
			for c := range fc.CoeffBr[t][p] {
				s = append(s, fc.CoeffBr[t][p][c][:])
			}
		}
	}
	for p := range fc.DCSign {
		for c := range fc.DCSign[p] {
			s = append(s, fc.DCSign[p][c][:])
		}
	}
	s = append(s, fc.MVJoint[:])
	for c := range fc.MVSign {
		s = append(s, fc.MVSign[c][:])
	}
	for c := range fc.MVClass {
		s = append(s, fc.MVClass[c][:])
	}
	for g := range fc.YMode {
		s = append(s, fc.YMode[g][:])
	}
	for m := range fc.UVMode {
		s = append(s, fc.UVMode[m][:])
	}
	for c := range fc.InterMode {
		s = append(s, fc.InterMode[c][:])
	}
	s = append(s, fc.SwitchableRestore[:])
	return s
}

func (fc *FrameContexts) numCDFs() int {
	return TxSizes*RefTypes*CoefBands*CoeffContexts +
		TxSizes*TxbSkipContexts +
		TxSizes*PlaneTypes*EobCoefContexts +
		TxSizes*PlaneTypes*LevelContexts +
		PlaneTypes*DCSignContexts +
		1 + MVComps + MVComps +
		BlockSizeGroups + IntraModes + InterModeContexts + 1
}

// CoeffCounts accumulates raw token counts per coefficient context. Counts
// are plain sums, so per-tile instances combine commutatively.
type CoeffCounts struct {
	Coef [TxSizes][RefTypes][CoefBands][CoeffContexts][EntropyTokens]uint32
}

// Record counts one coded token.
func (cc *CoeffCounts) Record(txClass, refType, band, ctx, token int) {
	cc.Coef[txClass][refType][band][ctx][token]++
}

// Merge adds other's counts into cc.
func (cc *CoeffCounts) Merge(other *CoeffCounts) {
	for t := range cc.Coef {
		for r := range cc.Coef[t] {
			for b := range cc.Coef[t][r] {
				for c := range cc.Coef[t][r][b] {
					for k := range cc.Coef[t][r][b][c] {
						cc.Coef[t][r][b][c][k] += other.Coef[t][r][b][c][k]
					}
				}
			}
		}
	}
}

// contextTotal sums the counts observed in one context.
func contextTotal(counts []uint32) uint32 {
	var total uint32
	for _, c := range counts {
		total += c
	}
	return total
}

// AdaptCoefCDFs blends each coefficient CDF toward the distribution
// observed in counts. The blend factor is proportional to the context's
// symbol count, saturating at CoefCountSat; frames right after a key frame
// use the faster AFTER_KEY constants. Contexts with no observations are
// left untouched.
func (fc *FrameContexts) AdaptCoefCDFs(counts *CoeffCounts, afterKey bool) {
	countSat, maxFactor := uint32(CoefCountSat), CoefMaxUpdateFactor
	if afterKey {
		countSat, maxFactor = CoefCountSatAfterKey, CoefMaxUpdateFactorAfterKey
	}

	var pre, tgt, out [EntropyTokens]int
	for t := range fc.Coef {
		for r := range fc.Coef[t] {
			for b := range fc.Coef[t][r] {
				for c := range fc.Coef[t][r][b] {
					cnt := counts.Coef[t][r][b][c][:]
					total := contextTotal(cnt)
					if total == 0 {
						continue
					}
					factor := maxFactor
					if total < countSat {
						factor = maxFactor * int(total) / int(countSat)
					}

					cdf := fc.Coef[t][r][b][c][:]
					cdfToPMF(cdf, pre[:])
					pmfFromCounts(cnt, tgt[:])

					sum := 0
					for i := range out {
						p := pre[i] + ((tgt[i]-pre[i])*factor)>>8
						if p < ECMinProb {
							p = ECMinProb
						}
						out[i] = p
						sum += p
					}
					fixPMFTotal(out[:], sum)
					storePMF(out[:], cdf)
				}
			}
		}
	}
}
