// Package entropy implements the adaptive multi-symbol probability model
// used for coefficient coding: per-context CDFs, fixed-point bit costs,
// entropy-context selection, and cross-tile aggregation of adapted state.
//
// The integer arithmetic matches libaom (av1/common/entropy.h and
// av1/encoder/cost.c); bitstream conformance depends on it being bit-exact,
// so nothing in this package is approximate.
package entropy

// Coefficient token alphabet. Tokens 5-10 carry extra bits covering the
// value ranges noted on the right.
const (
	ZeroToken      = 0  // 0
	OneToken       = 1  // 1
	TwoToken       = 2  // 2
	ThreeToken     = 3  // 3
	FourToken      = 4  // 4
	Category1Token = 5  // 5-6
	Category2Token = 6  // 7-10
	Category3Token = 7  // 11-18
	Category4Token = 8  // 19-34
	Category5Token = 9  // 35-66
	Category6Token = 10 // 67+
	EOBToken       = 11 // end of block

	EntropyTokens = 12
	EntropyNodes  = 11
)

// Minimum coefficient magnitudes for the category tokens.
const (
	Cat1MinVal = 5
	Cat2MinVal = 7
	Cat3MinVal = 11
	Cat4MinVal = 19
	Cat5MinVal = 35
	Cat6MinVal = 67

	// Cat6BitSize caps the category-6 extra-bit count regardless of
	// transform size and bit depth.
	Cat6BitSize = 18
)

// Context counts for the level-map coefficient model.
const (
	TxbSkipContexts = 13

	EobCoefContexts = 22

	SigCoefContexts2D  = 26
	SigCoefContexts1D  = 16
	SigCoefContextsEOB = 4
	SigCoefContexts    = SigCoefContexts2D + SigCoefContexts1D

	CoeffBaseContexts = SigCoefContexts
	DCSignContexts    = 3

	LevelContexts = 21

	NumBaseLevels = 2

	BrCDFSize      = 4
	CoeffBaseRange = 4 * (BrCDFSize - 1)

	CoeffContextBits = 6
	CoeffContextMask = (1 << CoeffContextBits) - 1
)

// TxClass distinguishes 2D transforms from the purely horizontal and
// vertical ones, which use separate context rules.
type TxClass int

const (
	TxClass2D TxClass = iota
	TxClassHoriz
	TxClassVert
	TxClasses
)

// Coefficients are predicted via a 3-dimensional probability table:
// reference type x band x nearby-complexity context.
const (
	RefTypes = 2 // intra=0, inter=1

	CoefBands = 6

	CoeffContexts  = 6
	CoeffContexts0 = 3 // band 0

	PlaneTypes = 2 // luma=0, chroma=1
)

// BandCoeffContexts returns the number of contexts available in a band.
func BandCoeffContexts(band int) int {
	if band == 0 {
		return CoeffContexts0
	}
	return CoeffContexts
}

// Per-frame coefficient adaptation constants. The update factor is scaled
// by the observed symbol count, saturating at the count below; frames
// following a key frame adapt faster.
const (
	CoefCountSat                = 24
	CoefMaxUpdateFactor         = 112
	CoefCountSatAfterKey        = 24
	CoefMaxUpdateFactorAfterKey = 128
)

// MaxbandIndex is the scan-order index beyond which all coefficients of
// 8x8-and-larger transforms fall in the top band.
const MaxbandIndex = 21

// TxSize identifies a transform block size. The square sizes come first,
// matching the upstream enum, so that (TxSize - Tx4x4) is the log2 scale
// offset for square transforms.
type TxSize int

const (
	Tx4x4 TxSize = iota
	Tx8x8
	Tx16x16
	Tx32x32
	Tx64x64
	Tx4x8
	Tx8x4
	Tx8x16
	Tx16x8
	Tx16x32
	Tx32x16
	Tx32x64
	Tx64x32
	Tx4x16
	Tx16x4
	Tx8x32
	Tx32x8
	Tx16x64
	Tx64x16

	TxSizesAll = int(Tx64x16) + 1
	TxSizes    = int(Tx64x64) + 1 // square sizes only
)

// MaxTxSquare is the sample count of the largest transform.
const MaxTxSquare = 64 * 64

// Transform dimensions in units of 4 samples. Entropy-context state is
// stored one byte per 4-sample unit, so these also give the number of
// context bytes each edge of a transform covers.
var txSizeWideUnit = [TxSizesAll]int{
	1, 2, 4, 8, 16, // 4x4 .. 64x64
	1, 2, 2, 4, 4, 8, 8, 16, // 4x8, 8x4, 8x16, 16x8, 16x32, 32x16, 32x64, 64x32
	1, 4, 2, 8, 4, 16, // 4x16, 16x4, 8x32, 32x8, 16x64, 64x16
}

var txSizeHighUnit = [TxSizesAll]int{
	1, 2, 4, 8, 16,
	2, 1, 4, 2, 8, 4, 16, 8,
	4, 1, 8, 2, 16, 4,
}

// txsizeSqrMap maps a transform size to the square size of its smaller
// dimension; txsizeSqrUpMap to the square size of its larger dimension.
var txsizeSqrMap = [TxSizesAll]TxSize{
	Tx4x4, Tx8x8, Tx16x16, Tx32x32, Tx64x64,
	Tx4x4, Tx4x4, Tx8x8, Tx8x8, Tx16x16, Tx16x16, Tx32x32, Tx32x32,
	Tx4x4, Tx4x4, Tx8x8, Tx8x8, Tx16x16, Tx16x16,
}

var txsizeSqrUpMap = [TxSizesAll]TxSize{
	Tx4x4, Tx8x8, Tx16x16, Tx32x32, Tx64x64,
	Tx8x8, Tx8x8, Tx16x16, Tx16x16, Tx32x32, Tx32x32, Tx64x64, Tx64x64,
	Tx16x16, Tx16x16, Tx32x32, Tx32x32, Tx64x64, Tx64x64,
}

// TxSizeWideUnit returns the transform width in 4-sample units.
func TxSizeWideUnit(tx TxSize) int { return txSizeWideUnit[tx] }

// TxSizeHighUnit returns the transform height in 4-sample units.
func TxSizeHighUnit(tx TxSize) int { return txSizeHighUnit[tx] }

// TxSizeSqrMap returns the square transform covering the smaller dimension.
func TxSizeSqrMap(tx TxSize) TxSize { return txsizeSqrMap[tx] }

// TxSizeSqrUpMap returns the square transform covering the larger dimension.
func TxSizeSqrUpMap(tx TxSize) TxSize { return txsizeSqrUpMap[tx] }

// GetTxSizeEntropyCtx maps a (possibly rectangular) transform size to the
// size class used to index coefficient CDFs.
func GetTxSizeEntropyCtx(tx TxSize) int {
	return (int(txsizeSqrMap[tx]) + int(txsizeSqrUpMap[tx]) + 1) >> 1
}
