// Command av1restore applies the AV1 self-guided restoration filter to raw
// image planes from the command line.
//
// Usage:
//
//	av1restore filter [options] <input>   raw plane in, filtered raw plane out ("-" for stdin)
//	av1restore params                     list the signaled parameter sets
//
// 8-bit planes are one byte per sample; 10- and 12-bit planes are
// little-endian uint16 per sample, row-major, no padding.
package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	av1 "github.com/deepteams/av1"
	"github.com/deepteams/av1/internal/restoration"
)

var (
	flagWidth    int
	flagHeight   int
	flagBitDepth int
	flagEps      int
	flagXq0      int
	flagXq1      int
	flagOutput   string
	flagVerbose  bool
)

func main() {
	root := &cobra.Command{
		Use:           "av1restore",
		Short:         "Apply AV1 self-guided restoration to raw image planes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			lvl := slog.LevelWarn
			if flagVerbose {
				lvl = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
		},
	}
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	filter := &cobra.Command{
		Use:   "filter <input>",
		Short: "Filter one raw plane",
		Args:  cobra.ExactArgs(1),
		RunE:  runFilter,
	}
	filter.Flags().IntVarP(&flagWidth, "width", "w", 0, "plane width in samples (required)")
	filter.Flags().IntVarP(&flagHeight, "height", "H", 0, "plane height in samples (required)")
	filter.Flags().IntVarP(&flagBitDepth, "bitdepth", "b", 8, "sample bit depth: 8, 10 or 12")
	filter.Flags().IntVarP(&flagEps, "eps", "e", 4, "parameter set index (0-15)")
	filter.Flags().IntVar(&flagXq0, "xq0", -32, "first projection weight")
	filter.Flags().IntVar(&flagXq1, "xq1", 31, "second projection weight")
	filter.Flags().StringVarP(&flagOutput, "output", "o", "-", "output file (\"-\" for stdout)")
	filter.MarkFlagRequired("width")
	filter.MarkFlagRequired("height")

	params := &cobra.Command{
		Use:   "params",
		Short: "List the signaled self-guided parameter sets",
		Args:  cobra.NoArgs,
		Run:   runParams,
	}

	root.AddCommand(filter, params)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "av1restore: %v\n", err)
		os.Exit(1)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func runFilter(cmd *cobra.Command, args []string) error {
	w, h := flagWidth, flagHeight
	g := av1.PlaneGeometry{Width: w, Height: h, Stride: w}
	xqd := [2]int{flagXq0, flagXq1}

	raw, err := readInput(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	slog.Debug("read plane", "path", args[0], "bytes", len(raw),
		"width", w, "height", h, "bitdepth", flagBitDepth)

	switch flagBitDepth {
	case 8:
		if len(raw) != w*h {
			return fmt.Errorf("%s: got %d bytes, want %d for %dx%d 8-bit", args[0], len(raw), w*h, w, h)
		}
		dst := make([]byte, w*h)
		if err := av1.RestorePlane(dst, raw, g, flagEps, xqd); err != nil {
			return err
		}
		return writeOutput(flagOutput, dst)

	case 10, 12:
		if len(raw) != 2*w*h {
			return fmt.Errorf("%s: got %d bytes, want %d for %dx%d %d-bit", args[0], len(raw), 2*w*h, w, h, flagBitDepth)
		}
		src := make([]uint16, w*h)
		for i := range src {
			src[i] = binary.LittleEndian.Uint16(raw[2*i:])
		}
		dst := make([]uint16, w*h)
		if err := av1.RestorePlaneHighbd(dst, src, g, flagEps, xqd, flagBitDepth); err != nil {
			return err
		}
		out := make([]byte, 2*w*h)
		for i, v := range dst {
			binary.LittleEndian.PutUint16(out[2*i:], v)
		}
		return writeOutput(flagOutput, out)

	default:
		return fmt.Errorf("unsupported bit depth %d", flagBitDepth)
	}
}

func runParams(cmd *cobra.Command, args []string) {
	fmt.Println("eps  r1  e1  r2  e2")
	for eps := 0; eps < restoration.NumSgrParams; eps++ {
		p := restoration.Params(eps)
		fmt.Printf("%3d  %2d  %2d  %2d  %2d\n", eps, p.R1, p.E1, p.R2, p.E2)
	}
}
