package entropy

// EntropyContext is one 4-sample unit of above/left coded-block state: zero
// iff the covered unit had no nonzero coefficients.
type EntropyContext = int8

// CombineEntropyContexts merges the above and left context values into the
// {0, 1, 2} context index used for the first coefficient of a block.
func CombineEntropyContexts(a, l EntropyContext) int {
	ctx := 0
	if a != 0 {
		ctx++
	}
	if l != 0 {
		ctx++
	}
	return ctx
}

// anyNonzero reports whether any of the first n context units is nonzero.
// The unrolled OR chains stand in for the upstream's single wide-register
// reads; only non-zero-ness matters.
func anyNonzero(c []EntropyContext, n int) EntropyContext {
	switch n {
	case 1:
		return c[0]
	case 2:
		return c[0] | c[1]
	case 4:
		return c[0] | c[1] | c[2] | c[3]
	case 8:
		return c[0] | c[1] | c[2] | c[3] | c[4] | c[5] | c[6] | c[7]
	case 16:
		return c[0] | c[1] | c[2] | c[3] | c[4] | c[5] | c[6] | c[7] |
			c[8] | c[9] | c[10] | c[11] | c[12] | c[13] | c[14] | c[15]
	default:
		panic("entropy: invalid transform size")
	}
}

// GetEntropyContext derives the {0, 1, 2} coefficient context for a
// transform block from the above and left entropy-context state. a must
// cover the transform width and l the transform height, one unit per 4
// samples.
func GetEntropyContext(tx TxSize, a, l []EntropyContext) int {
	aboveEC := anyNonzero(a, txSizeWideUnit[tx])
	leftEC := anyNonzero(l, txSizeHighUnit[tx])
	return CombineEntropyContexts(aboveEC, leftEC)
}

// Scan-position to coefficient-band translation tables. Larger transforms
// share one table; positions past MaxbandIndex all map to the top band.
var coefbandTrans4x4 = [16]uint8{
	0, 1, 1, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 5, 5, 5,
}

var coefbandTrans4x8And8x4 = [32]uint8{
	0, 1, 1, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 4, 4,
	4, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
}

var coefbandTrans8x8Plus [MaxTxSquare]uint8

func initBandTables() {
	head := [MaxbandIndex + 1]uint8{
		0, 1, 1, 2, 2, 2, 3, 3, 3, 3, 4,
		4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 5,
	}
	copy(coefbandTrans8x8Plus[:], head[:])
	for i := MaxbandIndex + 1; i < MaxTxSquare; i++ {
		coefbandTrans8x8Plus[i] = 5
	}
}

func init() {
	initBandTables()
}

// GetBandTranslate returns the scan-position to band table for a transform
// size.
func GetBandTranslate(tx TxSize) []uint8 {
	switch tx {
	case Tx4x4:
		return coefbandTrans4x4[:]
	case Tx8x4, Tx4x8:
		return coefbandTrans4x8And8x4[:]
	default:
		return coefbandTrans8x8Plus[:]
	}
}

// GetCat6ExtrabitsSize returns the number of extra bits coded for a
// category-6 (magnitude >= Cat6MinVal) coefficient. Grows with transform
// size and bit depth, rounded up to a multiple of 4 and capped at
// Cat6BitSize.
func GetCat6ExtrabitsSize(tx TxSize, bitDepth int) int {
	tx = txsizeSqrUpMap[tx]
	if tx > Tx32x32 {
		tx = Tx32x32
	}
	txOffset := int(tx - Tx4x4)
	bitsN := bitDepth + 3 + txOffset
	bitsN = (bitsN + 3) &^ 3
	if bitsN > Cat6BitSize {
		bitsN = Cat6BitSize
	}
	return bitsN
}
