package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestRunFilter8Bit(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "plane.raw")
	out := filepath.Join(dir, "filtered.raw")

	const w, h = 16, 16
	src := make([]byte, w*h)
	for i := range src {
		src[i] = 128
	}
	if err := os.WriteFile(in, src, 0o644); err != nil {
		t.Fatal(err)
	}

	flagWidth, flagHeight, flagBitDepth = w, h, 8
	flagEps, flagXq0, flagXq1 = 4, -32, 31
	flagOutput = out

	if err := runFilter(nil, []string{in}); err != nil {
		t.Fatalf("runFilter: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != w*h {
		t.Fatalf("output size %d, want %d", len(got), w*h)
	}
	for i, v := range got {
		if v != 128 {
			t.Fatalf("sample %d = %d, want 128", i, v)
		}
	}
}

func TestRunFilterSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "short.raw")
	if err := os.WriteFile(in, make([]byte, 10), 0o644); err != nil {
		t.Fatal(err)
	}

	flagWidth, flagHeight, flagBitDepth = 16, 16, 8
	flagOutput = "-"
	if err := runFilter(nil, []string{in}); err == nil {
		t.Fatal("expected size mismatch error")
	}
}

func TestRunFilter10Bit(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "plane10.raw")
	out := filepath.Join(dir, "filtered10.raw")

	const w, h = 8, 8
	raw := make([]byte, 2*w*h)
	for i := 0; i < w*h; i++ {
		binary.LittleEndian.PutUint16(raw[2*i:], 512)
	}
	if err := os.WriteFile(in, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	flagWidth, flagHeight, flagBitDepth = w, h, 10
	flagEps, flagXq0, flagXq1 = 4, -32, 31
	flagOutput = out

	if err := runFilter(nil, []string{in}); err != nil {
		t.Fatalf("runFilter: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2*w*h {
		t.Fatalf("output size %d", len(got))
	}
	for i := 0; i < w*h; i++ {
		v := binary.LittleEndian.Uint16(got[2*i:])
		if v < 511 || v > 513 {
			t.Fatalf("sample %d = %d, want ~512", i, v)
		}
	}
}
