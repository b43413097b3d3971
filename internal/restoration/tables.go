package restoration

// Reciprocal and multiplier tables. Generated once at package init and
// immutable afterwards; every runtime division in the filter is a lookup
// here plus a shift.

// sgrProjMtable[e-1][n-1] = round(2^SgrProjMtableBits / (n^2 * e)), the
// multiplier that turns the variance proxy p into the table index z for a
// window of n samples and strength e.
var sgrProjMtable [MaxEps][MaxNelem]int32

// oneByX[n-1] = round(2^SgrProjRecipBits / n).
var oneByX [MaxNelem]int32

// xByXplus1[x] = round(256 * x / (x+1)).
//
// Two entries are special-cased: index 0 maps to 1 (not 0) so that the
// complement SgrProjSGR - a stays strictly below 2^8 and the b computation
// cannot overflow its 32-bit budget on very flat input, and index 255 maps
// to 256 so a saturated z trusts the local window completely.
var xByXplus1 [256]int32

func roundDiv(num, den int32) int32 { return (num + den/2) / den }

func initTables() {
	for e := int32(1); e <= MaxEps; e++ {
		for n := int32(1); n <= MaxNelem; n++ {
			n2e := n * n * e
			sgrProjMtable[e-1][n-1] = roundDiv(1<<SgrProjMtableBits, n2e)
		}
	}
	for n := int32(1); n <= MaxNelem; n++ {
		oneByX[n-1] = roundDiv(1<<SgrProjRecipBits, n)
	}
	xByXplus1[0] = 1
	for x := int32(1); x < 255; x++ {
		xByXplus1[x] = roundDiv(x<<SgrProjSGRBits, x+1)
	}
	xByXplus1[255] = SgrProjSGR
}

func init() {
	initTables()
}
