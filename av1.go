package av1

import (
	"errors"
	"fmt"

	"github.com/deepteams/av1/internal/entropy"
	"github.com/deepteams/av1/internal/restoration"
)

// Errors returned by the validated entry points.
var (
	ErrInvalidGeometry = errors.New("av1: invalid plane geometry")
	ErrInvalidParam    = errors.New("av1: parameter out of range")
	ErrTileMismatch    = errors.New("av1: tile/count mismatch")
)

// Re-exported entropy-model types. The per-symbol and per-frame update
// machinery lives in internal/entropy; these aliases are its public
// surface.
type (
	// FrameContexts owns every adaptive CDF used to code one frame.
	FrameContexts = entropy.FrameContexts
	// CoeffCounts accumulates per-context coefficient token counts.
	CoeffCounts = entropy.CoeffCounts
	// TxSize identifies a transform block size.
	TxSize = entropy.TxSize
)

// NewFrameContexts returns a frame context initialized to the default
// model.
func NewFrameContexts() *FrameContexts { return entropy.NewFrameContexts() }

// AdaptTileContexts adapts each tile's coefficient CDFs from its counts
// concurrently and merges the results into a single frame-level model and
// count set. Tiles and counts must pair up one to one.
func AdaptTileContexts(tiles []*FrameContexts, counts []*CoeffCounts, afterKey bool) (*FrameContexts, *CoeffCounts, error) {
	if len(tiles) == 0 || len(tiles) != len(counts) {
		return nil, nil, fmt.Errorf("%w: %d tiles, %d counts", ErrTileMismatch, len(tiles), len(counts))
	}
	fc, cc := entropy.AdaptTilesParallel(tiles, counts, afterKey)
	return fc, cc, nil
}

// NumRestorationParams is the number of signaled self-guided parameter
// sets; eps values passed to the filter must be below it.
const NumRestorationParams = restoration.NumSgrParams

// PlaneGeometry describes one image plane: samples are addressed as
// data[Offset + y*Stride + x] for 0 <= x < Width, 0 <= y < Height.
type PlaneGeometry struct {
	Width  int
	Height int
	Stride int
	Offset int
}

func (g PlaneGeometry) check(planeLen int) error {
	if g.Width <= 0 || g.Height <= 0 || g.Stride < g.Width || g.Offset < 0 {
		return fmt.Errorf("%w: %dx%d stride %d offset %d", ErrInvalidGeometry, g.Width, g.Height, g.Stride, g.Offset)
	}
	if g.Width > restoration.MaxUnitSize || g.Height > restoration.MaxUnitSize {
		return fmt.Errorf("%w: %dx%d exceeds max unit size %d", ErrInvalidGeometry, g.Width, g.Height, restoration.MaxUnitSize)
	}
	need := g.Offset + (g.Height-1)*g.Stride + g.Width
	if need > planeLen {
		return fmt.Errorf("%w: plane needs %d samples, have %d", ErrInvalidGeometry, need, planeLen)
	}
	return nil
}

func checkSgrParams(eps int, xqd [2]int) error {
	if eps < 0 || eps >= NumRestorationParams {
		return fmt.Errorf("%w: eps %d", ErrInvalidParam, eps)
	}
	if xqd[0] < restoration.PrjMin0 || xqd[0] > restoration.PrjMax0 {
		return fmt.Errorf("%w: xqd[0] %d not in [%d, %d]", ErrInvalidParam, xqd[0], restoration.PrjMin0, restoration.PrjMax0)
	}
	if xqd[1] < restoration.PrjMin1 || xqd[1] > restoration.PrjMax1 {
		return fmt.Errorf("%w: xqd[1] %d not in [%d, %d]", ErrInvalidParam, xqd[1], restoration.PrjMin1, restoration.PrjMax1)
	}
	return nil
}

// extendPlane copies src into a freshly allocated plane with the border
// padding the filter kernels read, replicating edge samples outward.
func extendPlane(src []byte, g PlaneGeometry) (ext []byte, off, stride int) {
	const bh, bv = restoration.SgrProjBorderHorz, restoration.SgrProjBorderVert
	stride = g.Width + 2*bh
	ext = make([]byte, stride*(g.Height+2*bv))
	off = bv*stride + bh
	for i := -bv; i < g.Height+bv; i++ {
		si := min(max(i, 0), g.Height-1)
		for j := -bh; j < g.Width+bh; j++ {
			sj := min(max(j, 0), g.Width-1)
			ext[off+i*stride+j] = src[g.Offset+si*g.Stride+sj]
		}
	}
	return ext, off, stride
}

func extendPlaneHighbd(src []uint16, g PlaneGeometry) (ext []uint16, off, stride int) {
	const bh, bv = restoration.SgrProjBorderHorz, restoration.SgrProjBorderVert
	stride = g.Width + 2*bh
	ext = make([]uint16, stride*(g.Height+2*bv))
	off = bv*stride + bh
	for i := -bv; i < g.Height+bv; i++ {
		si := min(max(i, 0), g.Height-1)
		for j := -bh; j < g.Width+bh; j++ {
			sj := min(max(j, 0), g.Width-1)
			ext[off+i*stride+j] = src[g.Offset+si*g.Stride+sj]
		}
	}
	return ext, off, stride
}

// RestorePlane runs the self-guided restoration filter over an 8-bit
// plane. src is read with geometry g and the filtered result is written
// to dst with the same geometry; dst and src may alias. eps selects the
// signaled parameter set and xqd the two projection weights.
func RestorePlane(dst, src []byte, g PlaneGeometry, eps int, xqd [2]int) error {
	if err := g.check(len(src)); err != nil {
		return err
	}
	if err := g.check(len(dst)); err != nil {
		return err
	}
	if err := checkSgrParams(eps, xqd); err != nil {
		return err
	}
	ext, off, stride := extendPlane(src, g)
	restoration.ApplySelfGuidedRestoration(ext, off, stride, g.Width, g.Height, eps, xqd,
		dst, g.Offset, g.Stride)
	return nil
}

// RestorePlaneHighbd is the high-bit-depth variant of RestorePlane;
// bitDepth must be 10 or 12 and all samples must fit the declared depth.
func RestorePlaneHighbd(dst, src []uint16, g PlaneGeometry, eps int, xqd [2]int, bitDepth int) error {
	if bitDepth != 10 && bitDepth != 12 {
		return fmt.Errorf("%w: bit depth %d", ErrInvalidParam, bitDepth)
	}
	if err := g.check(len(src)); err != nil {
		return err
	}
	if err := g.check(len(dst)); err != nil {
		return err
	}
	if err := checkSgrParams(eps, xqd); err != nil {
		return err
	}
	maxVal := uint16(1<<bitDepth - 1)
	for i := 0; i < g.Height; i++ {
		row := src[g.Offset+i*g.Stride : g.Offset+i*g.Stride+g.Width]
		for _, v := range row {
			if v > maxVal {
				return fmt.Errorf("%w: sample %d exceeds %d-bit range", ErrInvalidParam, v, bitDepth)
			}
		}
	}
	ext, off, stride := extendPlaneHighbd(src, g)
	restoration.ApplySelfGuidedRestorationHighbd(ext, off, stride, g.Width, g.Height, eps, xqd,
		dst, g.Offset, g.Stride, bitDepth)
	return nil
}
