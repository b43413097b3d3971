// Package restoration implements the self-guided loop-restoration filter:
// integral-image local statistics, a per-pixel Wiener-like coefficient
// solver, and the final projected blend of two filtered candidates.
//
// All arithmetic is integer and matches libaom
// (av1/common/x86/selfguided_avx2.c and the scalar paths it mirrors);
// divisions are realized as multiply-by-reciprocal-table plus shift.
package restoration

// Fixed-point precisions of the self-guided filter.
const (
	// SgrProjSGRBits is the precision of the per-pixel blend weight a;
	// SgrProjSGR is its maximum ("trust the local window completely").
	SgrProjSGRBits = 8
	SgrProjSGR     = 1 << SgrProjSGRBits

	// SgrProjRstBits is the headroom the filtered candidates carry over
	// the source samples.
	SgrProjRstBits = 4

	// SgrProjPrjBits is the precision of the signaled projection weights.
	SgrProjPrjBits = 7

	// SgrProjMtableBits and SgrProjRecipBits are the precisions of the
	// strength-multiplier and reciprocal tables.
	SgrProjMtableBits = 20
	SgrProjRecipBits  = 12

	// Border of valid padding the source plane must carry on every side.
	// The box-sum window of radius r requires r+1 <= border.
	SgrProjBorderHorz = 3
	SgrProjBorderVert = 3

	// MaxRadius bounds the box radius; MaxNelem is the largest window
	// sample count, MaxEps the largest strength parameter.
	MaxRadius = 2
	MaxNelem  = (2*MaxRadius + 1) * (2*MaxRadius + 1)
	MaxEps    = 80

	// NumSgrParams is the size of the signaled parameter table.
	NumSgrParams = 16

	// MaxUnitSize bounds the width/height of one restoration unit.
	MaxUnitSize = 256
)

// Signaled projection weight ranges: xqd[0] in [PrjMin0, PrjMax0],
// xqd[1] in [PrjMin1, PrjMax1].
const (
	PrjMin0 = -(1 << SgrProjPrjBits) * 3 / 4
	PrjMax0 = PrjMin0 + (1 << SgrProjPrjBits) - 1
	PrjMin1 = -(1 << SgrProjPrjBits) / 4
	PrjMax1 = PrjMin1 + (1 << SgrProjPrjBits) - 1
)

// SgrParams selects the aggressiveness of the two filter passes: a box
// radius and a noise-strength parameter each.
type SgrParams struct {
	R1, E1 int
	R2, E2 int
}

// sgrParams is the table of signaled parameter combinations, indexed by the
// bitstream's eps value.
var sgrParams = [NumSgrParams]SgrParams{
	{2, 12, 1, 4}, {2, 15, 1, 6}, {2, 18, 1, 9}, {2, 21, 1, 12},
	{2, 24, 1, 14}, {2, 29, 1, 18}, {2, 36, 1, 24}, {2, 45, 1, 32},
	{2, 56, 1, 40}, {2, 68, 1, 48}, {2, 80, 1, 60}, {2, 35, 1, 30},
	{2, 50, 1, 50}, {2, 50, 2, 25}, {2, 60, 2, 35}, {2, 70, 2, 45},
}

// Params returns the parameter pair for a signaled eps index.
func Params(eps int) SgrParams { return sgrParams[eps] }

// DecodeXq expands the signaled weight pair into the two projection
// weights; the residual weight (1<<SgrProjPrjBits) - xq0 - xq1 implicitly
// stays on the unfiltered sample.
func DecodeXq(xqd [2]int) [2]int {
	xq0 := xqd[0]
	xq1 := (1 << SgrProjPrjBits) - xq0 - xqd[1]
	return [2]int{xq0, xq1}
}
