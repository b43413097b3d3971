package restoration

// Integral images: sum[(i+1)*stride + (j+1)] holds the sum of all source
// samples (x, y) with y <= i, x <= j, and sqr the sum of their squares; the
// first row and column are zero. Any rectangular window sum then falls out
// of four corner reads.
//
// Sums are kept in int32 and allowed to wrap for deep high-bit-depth
// planes: the corner differences recover the (small) true window value
// exactly under two's-complement arithmetic, so box-sum queries stay
// bit-exact regardless.
//
// The builders are function variables so a platform-specific kernel can
// replace them; the scalar and 8-lane implementations must agree bit for
// bit (see integral_test.go).
var (
	integralImages       func(src []byte, srcOff, srcStride, width, height int, sqr, sum []int32, bufStride int)
	integralImagesHighbd func(src []uint16, srcOff, srcStride, width, height int, sqr, sum []int32, bufStride int)
)

func init() {
	integralImages = integralImagesLanes
	integralImagesHighbd = integralImagesHighbdLanes
}

// integralImagesScalar is the reference implementation: a running row sum
// added to the completed row above. Rows are strictly sequential; columns
// within a row are a prefix sum.
func integralImagesScalar(src []byte, srcOff, srcStride, width, height int, sqr, sum []int32, bufStride int) {
	for j := 0; j <= width; j++ {
		sum[j], sqr[j] = 0, 0
	}
	for i := 0; i < height; i++ {
		above := i * bufStride
		out := (i + 1) * bufStride
		sum[out], sqr[out] = 0, 0
		var s1, s2 int32
		for j := 0; j < width; j++ {
			x := int32(src[srcOff+i*srcStride+j])
			s1 += x
			s2 += x * x
			sum[out+1+j] = sum[above+1+j] + s1
			sqr[out+1+j] = sqr[above+1+j] + s2
		}
	}
}

func integralImagesHighbdScalar(src []uint16, srcOff, srcStride, width, height int, sqr, sum []int32, bufStride int) {
	for j := 0; j <= width; j++ {
		sum[j], sqr[j] = 0, 0
	}
	for i := 0; i < height; i++ {
		above := i * bufStride
		out := (i + 1) * bufStride
		sum[out], sqr[out] = 0, 0
		var s1, s2 int32
		for j := 0; j < width; j++ {
			x := int32(src[srcOff+i*srcStride+j])
			s1 += x
			s2 += x * x
			sum[out+1+j] = sum[above+1+j] + s1
			sqr[out+1+j] = sqr[above+1+j] + s2
		}
	}
}

// scan8 computes the inclusive prefix sum of an 8-lane group.
func scan8(x *[8]int32) {
	x[1] += x[0]
	x[2] += x[1]
	x[3] += x[2]
	x[4] += x[3]
	x[5] += x[4]
	x[6] += x[5]
	x[7] += x[6]
}

// integralImagesLanes processes each row in 8-column groups: load and
// widen, square, prefix-scan the group, add the completed row above and
// the carry from the previous group (the H - D difference between the
// output sample to the left and the one above it). A short tail group is
// zero-padded, so every lane is defined.
func integralImagesLanes(src []byte, srcOff, srcStride, width, height int, sqr, sum []int32, bufStride int) {
	for j := 0; j <= width; j++ {
		sum[j], sqr[j] = 0, 0
	}
	for i := 0; i < height; i++ {
		above := i * bufStride
		out := (i + 1) * bufStride
		sum[out], sqr[out] = 0, 0

		var ldiff1, ldiff2 int32
		for j := 0; j < width; j += 8 {
			var x1, x2 [8]int32
			n := width - j
			if n > 8 {
				n = 8
			}
			for k := 0; k < n; k++ {
				v := int32(src[srcOff+i*srcStride+j+k])
				x1[k] = v
				x2[k] = v * v
			}
			scan8(&x1)
			scan8(&x2)

			base := 1 + j
			var row1Last, row2Last int32
			for k := 0; k < 8; k++ {
				r1 := x1[k] + sum[above+base+k] + ldiff1
				r2 := x2[k] + sqr[above+base+k] + ldiff2
				sum[out+base+k] = r1
				sqr[out+base+k] = r2
				row1Last, row2Last = r1, r2
			}
			ldiff1 = row1Last - sum[above+base+7]
			ldiff2 = row2Last - sqr[above+base+7]
		}
	}
}

func integralImagesHighbdLanes(src []uint16, srcOff, srcStride, width, height int, sqr, sum []int32, bufStride int) {
	for j := 0; j <= width; j++ {
		sum[j], sqr[j] = 0, 0
	}
	for i := 0; i < height; i++ {
		above := i * bufStride
		out := (i + 1) * bufStride
		sum[out], sqr[out] = 0, 0

		var ldiff1, ldiff2 int32
		for j := 0; j < width; j += 8 {
			var x1, x2 [8]int32
			n := width - j
			if n > 8 {
				n = 8
			}
			for k := 0; k < n; k++ {
				v := int32(src[srcOff+i*srcStride+j+k])
				x1[k] = v
				x2[k] = v * v
			}
			scan8(&x1)
			scan8(&x2)

			base := 1 + j
			var row1Last, row2Last int32
			for k := 0; k < 8; k++ {
				r1 := x1[k] + sum[above+base+k] + ldiff1
				r2 := x2[k] + sqr[above+base+k] + ldiff2
				sum[out+base+k] = r1
				sqr[out+base+k] = r2
				row1Last, row2Last = r1, r2
			}
			ldiff1 = row1Last - sum[above+base+7]
			ldiff2 = row2Last - sqr[above+base+7]
		}
	}
}
