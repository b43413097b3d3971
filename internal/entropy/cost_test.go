package entropy

import "testing"

func TestProbCostTable(t *testing.T) {
	// cost(p) = -log2(p/256) << ProbCostShift at a few exact powers.
	want := map[int]uint16{
		128: 1 << ProbCostShift, // one bit
		64:  2 << ProbCostShift,
		32:  3 << ProbCostShift,
		16:  4 << ProbCostShift,
		2:   7 << ProbCostShift,
	}
	for p, w := range want {
		if ProbCost[p] != w {
			t.Errorf("ProbCost[%d] = %d, want %d", p, ProbCost[p], w)
		}
	}
	for p := 2; p < 256; p++ {
		if ProbCost[p] > ProbCost[p-1] {
			t.Fatalf("ProbCost not non-increasing at %d", p)
		}
	}
}

func TestCostSymbolPowersOfTwo(t *testing.T) {
	// A symbol of probability 2^-k costs exactly k bits.
	for k := 1; k <= 10; k++ {
		p15 := CDFProbTop >> k
		if got := CostSymbol(p15); got != k<<ProbCostShift {
			t.Errorf("CostSymbol(1/2^%d) = %d, want %d", k, got, k<<ProbCostShift)
		}
	}
}

func TestCostSymbolMonotone(t *testing.T) {
	prev := CostSymbol(1)
	for p := 2; p < CDFProbTop; p++ {
		c := CostSymbol(p)
		if c > prev {
			t.Fatalf("cost increased with probability at p15=%d: %d > %d", p, c, prev)
		}
		if c < 0 {
			t.Fatalf("negative cost at p15=%d", p)
		}
		prev = c
	}
}

func TestCostSymbolPanicsOutOfRange(t *testing.T) {
	for _, p := range []int{0, -1, CDFProbTop, CDFProbTop + 1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("CostSymbol(%d): expected panic", p)
				}
			}()
			CostSymbol(p)
		}()
	}
}

func TestCostTokensFromCDFUniform(t *testing.T) {
	cdf := MakeCDF(8192, 8192, 8192, 8192)
	costs := make([]int, 4)
	CostTokensFromCDF(costs, cdf, nil)
	for i, c := range costs {
		if c != 2<<ProbCostShift {
			t.Errorf("costs[%d] = %d, want %d", i, c, 2<<ProbCostShift)
		}
	}
}

func TestCostTokensFromCDFSkewAndFloor(t *testing.T) {
	// The rare symbol is floored at ECMinProb, so its cost is bounded.
	cdf := MakeCDF(CDFProbTop-ECMinProb, ECMinProb)
	costs := make([]int, 2)
	CostTokensFromCDF(costs, cdf, nil)
	if costs[0] >= costs[1] {
		t.Fatalf("likely symbol not cheaper: %v", costs)
	}
	if costs[1] != CostSymbol(ECMinProb) {
		t.Errorf("floored cost = %d, want %d", costs[1], CostSymbol(ECMinProb))
	}
}

func TestCostTokensFromCDFInvMap(t *testing.T) {
	cdf := MakeCDF(16384, 8192, 8192)
	direct := make([]int, 3)
	CostTokensFromCDF(direct, cdf, nil)

	scattered := make([]int, 3)
	invMap := []int{2, 0, 1}
	CostTokensFromCDF(scattered, cdf, invMap)
	for i, dst := range invMap {
		if scattered[dst] != direct[i] {
			t.Errorf("invMap slot %d: got %d, want %d", dst, scattered[dst], direct[i])
		}
	}
}

func TestCostLiteral(t *testing.T) {
	for n := 0; n <= Cat6BitSize; n++ {
		if CostLiteral(n) != n<<ProbCostShift {
			t.Fatalf("CostLiteral(%d) = %d", n, CostLiteral(n))
		}
	}
}
