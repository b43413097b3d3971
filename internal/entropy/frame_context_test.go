package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrameContexts(t *testing.T) {
	fc := NewFrameContexts()
	slices := fc.cdfSlices()
	require.Equal(t, fc.numCDFs(), len(slices))
	for _, cdf := range slices {
		validCDF(t, cdf)
		n := CDFSymbols(cdf)
		assert.EqualValues(t, 0, cdf[n], "fresh counter must be zero")
	}
}

func TestFrameContextsClone(t *testing.T) {
	fc := NewFrameContexts()
	cl := fc.Clone()
	require.Equal(t, fc, cl)

	UpdateCDF(cl.MVJoint[:], 1)
	UpdateCDF(cl.Coef[0][0][0][0][:], ZeroToken)
	assert.NotEqual(t, fc.MVJoint, cl.MVJoint, "clone must not share MVJoint storage")
	assert.NotEqual(t, fc.Coef[0][0][0][0], cl.Coef[0][0][0][0], "clone must not share Coef storage")
}

func TestFrameContextsReset(t *testing.T) {
	fc := NewFrameContexts()
	for i := 0; i < 10; i++ {
		UpdateCDF(fc.YMode[2][:], 5)
	}
	fresh := NewFrameContexts()
	require.NotEqual(t, fresh, fc)
	fc.Reset()
	require.Equal(t, fresh, fc)
}

func TestGetTxSizeEntropyCtx(t *testing.T) {
	tests := []struct {
		tx   TxSize
		want int
	}{
		{Tx4x4, 0},
		{Tx8x8, 1},
		{Tx16x16, 2},
		{Tx32x32, 3},
		{Tx64x64, 4},
		{Tx4x8, 1},
		{Tx8x4, 1},
		{Tx16x4, 1},
		{Tx32x64, 4},
		{Tx16x64, 3},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, GetTxSizeEntropyCtx(tc.tx), "tx %d", tc.tx)
	}
	for tx := Tx4x4; tx < TxSize(TxSizesAll); tx++ {
		c := GetTxSizeEntropyCtx(tx)
		assert.GreaterOrEqual(t, c, 0)
		assert.Less(t, c, TxSizes)
	}
}

func TestAdaptCoefCDFs(t *testing.T) {
	fc := NewFrameContexts()
	before := fc.Clone()

	counts := &CoeffCounts{}
	for i := 0; i < 100; i++ {
		counts.Record(0, 0, 1, 2, ZeroToken)
	}
	fc.AdaptCoefCDFs(counts, false)

	pmf := make([]int, EntropyTokens)
	cdfToPMF(fc.Coef[0][0][1][2][:], pmf)

	// The observed symbol gained mass; the distribution is still a valid
	// floored PMF.
	uniformMass := CDFProbTop / EntropyTokens
	assert.Greater(t, pmf[ZeroToken], uniformMass)
	sum := 0
	for _, p := range pmf {
		assert.GreaterOrEqual(t, p, ECMinProb)
		sum += p
	}
	assert.Equal(t, CDFProbTop, sum)

	// Contexts with no observations are untouched.
	assert.Equal(t, before.Coef[0][0][0][0], fc.Coef[0][0][0][0])
	assert.Equal(t, before.Coef[1][1][2][3], fc.Coef[1][1][2][3])
}

func TestAdaptCoefCDFsAfterKeyFaster(t *testing.T) {
	counts := &CoeffCounts{}
	for i := 0; i < 100; i++ {
		counts.Record(2, 1, 3, 4, EOBToken)
	}

	slow := NewFrameContexts()
	slow.AdaptCoefCDFs(counts, false)
	fast := NewFrameContexts()
	fast.AdaptCoefCDFs(counts, true)

	slowPMF := make([]int, EntropyTokens)
	fastPMF := make([]int, EntropyTokens)
	cdfToPMF(slow.Coef[2][1][3][4][:], slowPMF)
	cdfToPMF(fast.Coef[2][1][3][4][:], fastPMF)
	assert.Greater(t, fastPMF[EOBToken], slowPMF[EOBToken],
		"after-key adaptation must move further toward the observed symbol")
}

func TestCoeffCountsMerge(t *testing.T) {
	a := &CoeffCounts{}
	b := &CoeffCounts{}
	a.Record(0, 0, 0, 0, ZeroToken)
	a.Record(0, 0, 0, 0, ZeroToken)
	b.Record(0, 0, 0, 0, OneToken)
	b.Record(3, 1, 5, 5, EOBToken)

	a.Merge(b)
	assert.EqualValues(t, 2, a.Coef[0][0][0][0][ZeroToken])
	assert.EqualValues(t, 1, a.Coef[0][0][0][0][OneToken])
	assert.EqualValues(t, 1, a.Coef[3][1][5][5][EOBToken])
}
