package restoration

import "github.com/deepteams/av1/internal/pool"

// scratch carries the four working planes of one restoration call: the two
// integral images (sum, sqr) and the two coefficient maps (a, b). All share
// one pooled allocation, zeroed on acquisition so overscan reads near the
// edges always see defined values. Index origin is the logical (0, 0) of
// the restoration unit inside the border-extended region.
type scratch struct {
	buf       []int32
	a, b      []int32
	sqr, sum  []int32
	origin    int
	bufStride int
	widthExt  int
	heightExt int
}

func newScratch(width, height int) *scratch {
	widthExt := width + 2*SgrProjBorderHorz
	heightExt := height + 2*SgrProjBorderVert

	// Column slack past the integral image lets the 8-lane kernels
	// overscan without bounds checks; the extra values land in columns
	// nothing reads back.
	bufStride := (widthExt + 16 + 7) &^ 7
	plane := bufStride * (heightExt + 2)

	buf := pool.GetInt32(4 * plane)
	clear(buf)

	return &scratch{
		buf:       buf,
		a:         buf[0*plane : 1*plane],
		b:         buf[1*plane : 2*plane],
		sqr:       buf[2*plane : 3*plane],
		sum:       buf[3*plane : 4*plane],
		origin:    (1+SgrProjBorderVert)*bufStride + 1 + SgrProjBorderHorz,
		bufStride: bufStride,
		widthExt:  widthExt,
		heightExt: heightExt,
	}
}

func (sg *scratch) release() { pool.PutInt32(sg.buf) }

// boxSum returns the (2r+1)x(2r+1) window sum centered on position k of
// the integral image, as the alternating corner difference. Exact integer
// identity; O(1) in r.
func boxSum(ii []int32, k, stride, r int) int32 {
	tl := ii[k-(r+1)*stride-(r+1)]
	tr := ii[k-(r+1)*stride+r]
	bl := ii[k+r*stride-(r+1)]
	br := ii[k+r*stride+r]
	return (br - bl) - (tr - tl)
}

// computeP derives the windowed variance proxy n*sum2 - sum1^2. Above 8
// bits the sums are round-shifted down first so the products stay inside
// 32 bits; the max() guard keeps the proxy non-negative under that
// rounding.
func computeP(sum1, sum2 int32, bitDepth, n int) int32 {
	if bitDepth > 8 {
		sh := uint(bitDepth - 8)
		a := (sum2 + 1<<(2*sh-1)) >> (2 * sh)
		b := (sum1 + 1<<(sh-1)) >> sh
		an := a * int32(n)
		bb := b * b
		if an < bb {
			an = bb
		}
		return an - bb
	}
	return sum2*int32(n) - sum1*sum1
}

// calcAB solves, for every pixel of the unit plus a one-pixel rim, the
// local blend weights: a = x/(x+1) of the quantized variance index, b the
// complementary weight applied to the window mean. One row/column beyond
// the unit is needed because the final filter takes a 3x3 neighborhood of
// both maps.
func (sg *scratch) calcAB(width, height, eps, bitDepth, r int) {
	n := (2*r + 1) * (2*r + 1)
	s := uint32(sgrProjMtable[eps-1][n-1])
	overN := uint32(oneByX[n-1])

	const rndZ = 1 << (SgrProjMtableBits - 1)
	const rndRes = 1 << (SgrProjRecipBits - 1)

	for i := -1; i < height+1; i++ {
		for j := -1; j < width+1; j++ {
			k := sg.origin + i*sg.bufStride + j

			sum1 := boxSum(sg.sum, k, sg.bufStride, r)
			sum2 := boxSum(sg.sqr, k, sg.bufStride, r)
			p := computeP(sum1, sum2, bitDepth, n)

			z := (uint32(p)*s + rndZ) >> SgrProjMtableBits
			if z > 255 {
				z = 255
			}

			a := xByXplus1[z]
			sg.a[k] = a
			sg.b[k] = int32((uint32(SgrProjSGR-a)*uint32(sum1)*overN + rndRes) >> SgrProjRecipBits)
		}
	}
}

// crossSum is the 3x3 neighborhood sum with weight 3 on the corners and 4
// elsewhere, computed as 4*(all nine) - corners.
func crossSum(buf []int32, k, stride int) int32 {
	fours := buf[k-1] + buf[k-stride] + buf[k+1] + buf[k+stride] + buf[k]
	threes := buf[k-1-stride] + buf[k+1-stride] + buf[k+1+stride] + buf[k-1+stride]
	return (fours+threes)<<2 - threes
}

// finalFilterShift folds the a precision, the log2 of the cross-sum weight
// total (nb = 5), and the candidate headroom into one rounding shift.
const finalFilterShift = SgrProjSGRBits + 5 - SgrProjRstBits

// finalFilter blends each source sample with its neighborhood statistics:
// flt = (crossSum(a)*src + crossSum(b)) >> shift, leaving the candidate
// scaled by 2^SgrProjRstBits relative to the source.
func (sg *scratch) finalFilter(flt []int32, fltStride int, src []byte, srcOff, srcStride, width, height int) {
	const rnd = 1 << (finalFilterShift - 1)
	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			k := sg.origin + i*sg.bufStride + j
			a := crossSum(sg.a, k, sg.bufStride)
			b := crossSum(sg.b, k, sg.bufStride)
			v := a*int32(src[srcOff+i*srcStride+j]) + b
			flt[i*fltStride+j] = (v + rnd) >> finalFilterShift
		}
	}
}

func (sg *scratch) finalFilterHighbd(flt []int32, fltStride int, src []uint16, srcOff, srcStride, width, height int) {
	const rnd = 1 << (finalFilterShift - 1)
	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			k := sg.origin + i*sg.bufStride + j
			a := crossSum(sg.a, k, sg.bufStride)
			b := crossSum(sg.b, k, sg.bufStride)
			v := a*int32(src[srcOff+i*srcStride+j]) + b
			flt[i*fltStride+j] = (v + rnd) >> finalFilterShift
		}
	}
}

func checkRadius(r int) {
	min := SgrProjBorderVert
	if SgrProjBorderHorz < min {
		min = SgrProjBorderHorz
	}
	if r < 1 || r+1 > min {
		panic("restoration: box radius exceeds padded border")
	}
}

// SelfGuidedRestoration runs both filter passes over one restoration unit
// of an 8-bit plane, writing the two candidates to flt1 and flt2. dgd is
// the degraded plane with dgdOff indexing the unit's top-left sample; the
// plane must be valid (border-extended) for SgrProjBorderHorz/Vert samples
// around the unit.
func SelfGuidedRestoration(dgd []byte, dgdOff, dgdStride, width, height int, flt1, flt2 []int32, fltStride int, params SgrParams) {
	sg := newScratch(width, height)
	defer sg.release()

	ext := dgdOff - SgrProjBorderVert*dgdStride - SgrProjBorderHorz
	integralImages(dgd, ext, dgdStride, sg.widthExt, sg.heightExt, sg.sqr, sg.sum, sg.bufStride)

	for pass := 0; pass < 2; pass++ {
		r, e, flt := params.R1, params.E1, flt1
		if pass == 1 {
			r, e, flt = params.R2, params.E2, flt2
		}
		checkRadius(r)
		sg.calcAB(width, height, e, 8, r)
		sg.finalFilter(flt, fltStride, dgd, dgdOff, dgdStride, width, height)
	}
}

// SelfGuidedRestorationHighbd is the high-bit-depth variant; bitDepth is
// 10 or 12.
func SelfGuidedRestorationHighbd(dgd []uint16, dgdOff, dgdStride, width, height int, flt1, flt2 []int32, fltStride int, params SgrParams, bitDepth int) {
	sg := newScratch(width, height)
	defer sg.release()

	ext := dgdOff - SgrProjBorderVert*dgdStride - SgrProjBorderHorz
	integralImagesHighbd(dgd, ext, dgdStride, sg.widthExt, sg.heightExt, sg.sqr, sg.sum, sg.bufStride)

	for pass := 0; pass < 2; pass++ {
		r, e, flt := params.R1, params.E1, flt1
		if pass == 1 {
			r, e, flt = params.R2, params.E2, flt2
		}
		checkRadius(r)
		sg.calcAB(width, height, e, bitDepth, r)
		sg.finalFilterHighbd(flt, fltStride, dgd, dgdOff, dgdStride, width, height)
	}
}

const prjRoundShift = SgrProjPrjBits + SgrProjRstBits

// ApplySelfGuidedRestoration filters one unit and projects the two
// candidates back onto the source with the signaled weights, clamping to
// the 8-bit sample range.
func ApplySelfGuidedRestoration(dat []byte, datOff, stride, width, height, eps int, xqd [2]int, dst []byte, dstOff, dstStride int) {
	flt1 := pool.GetInt32(width * height)
	flt2 := pool.GetInt32(width * height)
	defer pool.PutInt32(flt1)
	defer pool.PutInt32(flt2)

	SelfGuidedRestoration(dat, datOff, stride, width, height, flt1, flt2, width, Params(eps))

	xq := DecodeXq(xqd)
	const rnd = 1 << (prjRoundShift - 1)
	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			k := i*width + j
			u := int32(dat[datOff+i*stride+j]) << SgrProjRstBits
			v := (u << SgrProjPrjBits) +
				int32(xq[0])*(flt1[k]-u) + int32(xq[1])*(flt2[k]-u)
			w := (v + rnd) >> prjRoundShift
			if w < 0 {
				w = 0
			} else if w > 255 {
				w = 255
			}
			dst[dstOff+i*dstStride+j] = byte(w)
		}
	}
}

// ApplySelfGuidedRestorationHighbd is the high-bit-depth variant, clamping
// to [0, 2^bitDepth - 1].
func ApplySelfGuidedRestorationHighbd(dat []uint16, datOff, stride, width, height, eps int, xqd [2]int, dst []uint16, dstOff, dstStride, bitDepth int) {
	flt1 := pool.GetInt32(width * height)
	flt2 := pool.GetInt32(width * height)
	defer pool.PutInt32(flt1)
	defer pool.PutInt32(flt2)

	SelfGuidedRestorationHighbd(dat, datOff, stride, width, height, flt1, flt2, width, Params(eps), bitDepth)

	xq := DecodeXq(xqd)
	maxVal := int32(1)<<bitDepth - 1
	const rnd = 1 << (prjRoundShift - 1)
	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			k := i*width + j
			u := int32(dat[datOff+i*stride+j]) << SgrProjRstBits
			v := (u << SgrProjPrjBits) +
				int32(xq[0])*(flt1[k]-u) + int32(xq[1])*(flt2[k]-u)
			w := (v + rnd) >> prjRoundShift
			if w < 0 {
				w = 0
			} else if w > maxVal {
				w = maxVal
			}
			dst[dstOff+i*dstStride+j] = uint16(w)
		}
	}
}
