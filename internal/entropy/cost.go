package entropy

import "math/bits"

// ProbCostShift scales bit costs: a cost of (1 << ProbCostShift) is one bit.
const ProbCostShift = 9

// ProbCost[p] = round(-log2(p/256) * (1 << ProbCostShift)).
// Begins with a bogus entry for simpler addressing.
var ProbCost = [256]uint16{
	4096, 4096, 3584, 3284, 3072, 2907, 2772, 2659, 2560, 2473, 2395, 2325, 2260,
	2201, 2147, 2096, 2048, 2003, 1961, 1921, 1883, 1847, 1813, 1780, 1748, 1718,
	1689, 1661, 1635, 1609, 1584, 1559, 1536, 1513, 1491, 1470, 1449, 1429, 1409,
	1390, 1371, 1353, 1335, 1318, 1301, 1284, 1268, 1252, 1236, 1221, 1206, 1192,
	1177, 1163, 1149, 1136, 1123, 1110, 1097, 1084, 1072, 1059, 1047, 1036, 1024,
	1013, 1001, 990, 979, 968, 958, 947, 937, 927, 917, 907, 897, 887,
	878, 868, 859, 850, 841, 832, 823, 814, 806, 797, 789, 780, 772,
	764, 756, 748, 740, 732, 724, 717, 709, 702, 694, 687, 680, 673,
	665, 658, 651, 644, 637, 631, 624, 617, 611, 604, 598, 591, 585,
	578, 572, 566, 560, 554, 547, 541, 535, 530, 524, 518, 512, 506,
	501, 495, 489, 484, 478, 473, 467, 462, 456, 451, 446, 441, 435,
	430, 425, 420, 415, 410, 405, 400, 395, 390, 385, 380, 375, 371,
	366, 361, 356, 352, 347, 343, 338, 333, 329, 324, 320, 316, 311,
	307, 302, 298, 294, 289, 285, 281, 277, 273, 268, 264, 260, 256,
	252, 248, 244, 240, 236, 232, 228, 224, 220, 216, 212, 209, 205,
	201, 197, 194, 190, 186, 182, 179, 175, 171, 168, 164, 161, 157,
	153, 150, 146, 143, 139, 136, 132, 129, 125, 122, 119, 115, 112,
	109, 105, 102, 99, 95, 92, 89, 86, 82, 79, 76, 73, 70,
	66, 63, 60, 57, 54, 51, 48, 45, 42, 38, 35, 32, 29,
	26, 23, 20, 18, 15, 12, 9, 6, 3,
}

// CostLiteral returns the cost of an n-bit literal coded with 50%
// probability per bit.
func CostLiteral(n int) int { return n << ProbCostShift }

// getProb converts a num/den probability to 8-bit precision, clamped to
// [1, 255].
func getProb(num, den int) int {
	p := (num*256 + den>>1) / den
	if p < 1 {
		return 1
	}
	if p > 255 {
		return 255
	}
	return p
}

// CostSymbol returns the cost of a symbol with probability p15/CDFProbTop.
// The probability is normalized into [2^14, 2^15) so the 8-bit cost table
// can be used, and each halving contributes one literal bit.
func CostSymbol(p15 int) int {
	if p15 <= 0 || p15 >= CDFProbTop {
		panic("entropy: symbol probability out of range")
	}
	shift := CDFProbBits - 1 - (bits.Len32(uint32(p15)) - 1)
	return int(ProbCost[getProb(p15<<shift, CDFProbTop)]) + CostLiteral(shift)
}

// CostTokensFromCDF fills costs with the per-symbol bit cost of each entry
// in cdf. Masses below ECMinProb are floored so no symbol becomes
// unboundedly expensive. When invMap is non-nil, cost for CDF position i is
// scattered to costs[invMap[i]], for alphabets whose coding order differs
// from their value order.
//
// The walk stops at the terminating sentinel (stored value 0); the caller
// must guarantee it is present.
func CostTokensFromCDF(costs []int, cdf []Prob, invMap []int) {
	prev := 0
	for i := 0; ; i++ {
		p15 := int(ICDF(cdf[i])) - prev
		if p15 < ECMinProb {
			p15 = ECMinProb
		}
		prev = int(ICDF(cdf[i]))

		if invMap != nil {
			costs[invMap[i]] = CostSymbol(p15)
		} else {
			costs[i] = CostSymbol(p15)
		}

		if cdf[i] == ICDF(CDFProbTop) {
			break
		}
	}
}
