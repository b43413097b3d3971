package restoration

import (
	"math/rand"
	"testing"
)

// extendPlane fills a border-extended plane with src in the middle and
// edge replication in the borders, the way the loop filter sees frame
// planes.
func extendPlane(src []byte, w, h int) (ext []byte, off, stride int) {
	stride = w + 2*SgrProjBorderHorz
	ext = make([]byte, stride*(h+2*SgrProjBorderVert))
	off = SgrProjBorderVert*stride + SgrProjBorderHorz
	for i := -SgrProjBorderVert; i < h+SgrProjBorderVert; i++ {
		si := i
		if si < 0 {
			si = 0
		} else if si >= h {
			si = h - 1
		}
		for j := -SgrProjBorderHorz; j < w+SgrProjBorderHorz; j++ {
			sj := j
			if sj < 0 {
				sj = 0
			} else if sj >= w {
				sj = w - 1
			}
			ext[off+i*stride+j] = src[si*w+sj]
		}
	}
	return ext, off, stride
}

// A constant plane has zero local variance everywhere, so both filter
// candidates track the source closely and the projected output reproduces
// the input exactly.
func TestApplyFlatPlaneIdentity(t *testing.T) {
	const w, h = 32, 24
	for _, c := range []byte{0, 1, 77, 128, 255} {
		src := make([]byte, w*h)
		for i := range src {
			src[i] = c
		}
		ext, off, stride := extendPlane(src, w, h)

		for eps := 0; eps < NumSgrParams; eps++ {
			for _, xqd := range [][2]int{{0, 0}, {-32, 31}, {16, 48}} {
				dst := make([]byte, w*h)
				ApplySelfGuidedRestoration(ext, off, stride, w, h, eps, xqd, dst, 0, w)
				for k := range dst {
					if dst[k] != c {
						t.Fatalf("c=%d eps=%d xqd=%v: dst[%d] = %d, want %d",
							c, eps, xqd, k, dst[k], c)
					}
				}
			}
		}
	}
}

func TestApplyOutputInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const w, h = 48, 36
	src := make([]byte, w*h)
	for i := range src {
		src[i] = byte(rng.Intn(256))
	}
	ext, off, stride := extendPlane(src, w, h)

	for eps := 0; eps < NumSgrParams; eps++ {
		dst := make([]byte, w*h)
		ApplySelfGuidedRestoration(ext, off, stride, w, h, eps, [2]int{-32, 31}, dst, 0, w)
		// Smoothing must not stray far from the source on moderate
		// weights; a gross error here means broken fixed-point scaling.
		for k := range dst {
			d := int(dst[k]) - int(src[k])
			if d < -128 || d > 128 {
				t.Fatalf("eps=%d: dst[%d]=%d src=%d, implausible drift", eps, k, dst[k], src[k])
			}
		}
	}
}

func TestSelfGuidedCandidateScale(t *testing.T) {
	const w, h = 16, 16
	src := make([]byte, w*h)
	for i := range src {
		src[i] = 100
	}
	ext, off, stride := extendPlane(src, w, h)

	flt1 := make([]int32, w*h)
	flt2 := make([]int32, w*h)
	SelfGuidedRestoration(ext, off, stride, w, h, flt1, flt2, w, Params(0))

	// Candidates carry SgrProjRstBits of headroom over the source; on a
	// flat plane they sit within a few LSBs of src << 4.
	want := int32(100) << SgrProjRstBits
	for k := range flt1 {
		if d := flt1[k] - want; d < -8 || d > 8 {
			t.Fatalf("flt1[%d] = %d, want ~%d", k, flt1[k], want)
		}
		if d := flt2[k] - want; d < -8 || d > 8 {
			t.Fatalf("flt2[%d] = %d, want ~%d", k, flt2[k], want)
		}
	}
}

// At high bit depth the 12-bit reciprocal tables leave candidate errors
// proportional to the sample value, so a flat plane is preserved only to
// within a couple of LSBs.
func TestApplyHighbdFlatPlane(t *testing.T) {
	const w, h = 24, 20
	for _, bd := range []int{10, 12} {
		c := uint16(1<<bd - 100)
		src := make([]uint16, w*h)
		for i := range src {
			src[i] = c
		}
		stride := w + 2*SgrProjBorderHorz
		ext := make([]uint16, stride*(h+2*SgrProjBorderVert))
		for i := range ext {
			ext[i] = c
		}
		off := SgrProjBorderVert*stride + SgrProjBorderHorz

		dst := make([]uint16, w*h)
		ApplySelfGuidedRestorationHighbd(ext, off, stride, w, h, 4, [2]int{-32, 31}, dst, 0, w, bd)
		for k := range dst {
			d := int(dst[k]) - int(c)
			if d < -3 || d > 3 {
				t.Fatalf("bd=%d: dst[%d] = %d, want %d +-3", bd, k, dst[k], c)
			}
		}
	}
}

func TestCheckRadiusPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for oversized radius")
		}
	}()
	checkRadius(SgrProjBorderHorz)
}
