package av1_test

import (
	"fmt"

	av1 "github.com/deepteams/av1"
)

func ExampleRestorePlane() {
	const w, h = 8, 8
	src := make([]byte, w*h)
	for i := range src {
		src[i] = 128
	}

	dst := make([]byte, w*h)
	g := av1.PlaneGeometry{Width: w, Height: h, Stride: w}
	if err := av1.RestorePlane(dst, src, g, 4, [2]int{-32, 31}); err != nil {
		fmt.Println("restore failed:", err)
		return
	}
	fmt.Println(dst[0], dst[w*h-1])
	// Output: 128 128
}

func ExampleAdaptTileContexts() {
	tiles := []*av1.FrameContexts{av1.NewFrameContexts(), av1.NewFrameContexts()}
	counts := []*av1.CoeffCounts{{}, {}}
	counts[0].Record(0, 0, 1, 2, 0)

	merged, total, err := av1.AdaptTileContexts(tiles, counts, false)
	if err != nil {
		fmt.Println("adapt failed:", err)
		return
	}
	fmt.Println(merged != nil, total.Coef[0][0][1][2][0])
	// Output: true 1
}
