package entropy

// Prob is a fixed-point probability value with 15 fractional bits, matching
// aom_cdf_prob.
type Prob = uint16

const (
	// CDFProbBits is the fixed-point precision of CDF entries.
	CDFProbBits = 15
	// CDFProbTop is the maximum cumulative value (probability 1.0).
	CDFProbTop = 1 << CDFProbBits

	// ECMinProb is the minimum probability mass any symbol may carry.
	// It keeps the entropy coder's renormalization making progress and
	// bounds the cost of never-seen symbols. Must be <= CDFProbTop/16.
	ECMinProb = 4

	// cdfCounterCap saturates the per-CDF adaptation counter.
	cdfCounterCap = 32
)

// ICDF converts between the stored inverse convention and plain cumulative
// probabilities. CDF arrays store CDFProbTop - cum(i), so entries decrease
// from near CDFProbTop to exactly 0 at the last symbol; ICDF is its own
// inverse.
func ICDF(p Prob) Prob { return CDFProbTop - p }

// A CDF slice has one entry per symbol plus a trailing adaptation counter:
// cdf[0..n-1] are inverse cumulative probabilities with cdf[n-1] == 0 as the
// terminating sentinel, and cdf[n] counts symbols coded since the last
// reset. CDFSymbols recovers the alphabet size.
func CDFSymbols(cdf []Prob) int { return len(cdf) - 1 }

// InitUniformCDF fills cdf with a uniform distribution over its alphabet
// and resets the adaptation counter.
func InitUniformCDF(cdf []Prob) {
	n := CDFSymbols(cdf)
	for i := 0; i < n; i++ {
		cdf[i] = ICDF(Prob((i + 1) * CDFProbTop / n))
	}
	cdf[n] = 0
}

// MakeCDF builds a CDF (with counter slot) from per-symbol probability
// masses. The masses must be positive and sum to CDFProbTop; this is the Go
// spelling of the AOM_CDF* table macros and is mainly useful in tests and
// default tables.
func MakeCDF(pmf ...int) []Prob {
	cdf := make([]Prob, len(pmf)+1)
	cum := 0
	for i, p := range pmf {
		if p <= 0 {
			panic("entropy: non-positive probability mass")
		}
		cum += p
		cdf[i] = ICDF(Prob(cum))
	}
	if cum != CDFProbTop {
		panic("entropy: probability masses must sum to CDFProbTop")
	}
	return cdf
}

// nsymbs2speed slows the per-symbol update for larger alphabets.
var nsymbs2speed = [17]int{0, 0, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2}

// UpdateCDF nudges cdf toward the just-coded symbol val. The step size
// shrinks as the trailing counter grows, so the model adapts quickly at
// first and settles once enough symbols have been observed.
func UpdateCDF(cdf []Prob, val int) {
	nsymbs := CDFSymbols(cdf)
	rate := 3 + nsymbs2speed[nsymbs]
	if cdf[nsymbs] > 15 {
		rate++
	}
	if cdf[nsymbs] > 31 {
		rate++
	}

	tmp := CDFProbTop
	for i := 0; i < nsymbs-1; i++ {
		if i == val {
			tmp = 0
		}
		c := int(cdf[i])
		if tmp < c {
			cdf[i] -= Prob((c - tmp) >> rate)
		} else {
			cdf[i] += Prob((tmp - c) >> rate)
		}
	}
	if cdf[nsymbs] < cdfCounterCap {
		cdf[nsymbs]++
	}
}

// cdfToPMF expands a stored CDF into per-symbol masses (plain convention).
func cdfToPMF(cdf []Prob, pmf []int) {
	prev := 0
	for i := range pmf {
		cur := int(ICDF(cdf[i]))
		pmf[i] = cur - prev
		prev = cur
	}
}

// pmfFromCounts converts raw symbol counts into a CDFProbTop-total PMF with
// every mass at least ECMinProb. The rounding remainder is absorbed by the
// most frequent symbol so the result is independent of symbol order ties
// only through the deterministic argmax below.
func pmfFromCounts(counts []uint32, pmf []int) {
	n := len(pmf)
	var total uint64
	for _, c := range counts {
		total += uint64(c)
	}
	if total == 0 {
		for i := range pmf {
			pmf[i] = 0
		}
		return
	}
	sum := 0
	for i := 0; i < n; i++ {
		p := int((uint64(counts[i])*CDFProbTop + total/2) / total)
		if p < ECMinProb {
			p = ECMinProb
		}
		pmf[i] = p
		sum += p
	}
	fixPMFTotal(pmf, sum)
}

// fixPMFTotal adjusts pmf (current total sum) to sum exactly to CDFProbTop
// without taking any mass below ECMinProb.
func fixPMFTotal(pmf []int, sum int) {
	delta := CDFProbTop - sum
	for delta != 0 {
		k := 0
		for i := 1; i < len(pmf); i++ {
			if pmf[i] > pmf[k] {
				k = i
			}
		}
		step := delta
		if step < 0 && pmf[k]+step < ECMinProb {
			step = ECMinProb - pmf[k]
		}
		pmf[k] += step
		delta -= step
	}
}

// storePMF writes a plain-convention PMF back into the inverse stored form,
// preserving the adaptation counter slot.
func storePMF(pmf []int, cdf []Prob) {
	cum := 0
	for i, p := range pmf {
		cum += p
		cdf[i] = ICDF(Prob(cum))
	}
}
