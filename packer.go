package typescope

// Size estimation constants. A budget unit approximates one token: signature
// plus documentation characters plus a small fixed per-symbol overhead for
// the rendered framing, divided by the chars-per-token ratio.
const (
	symbolOverheadChars = 16
	charsPerBudgetUnit  = 4
)

// EstimateCost returns a symbol's size in budget units.
func EstimateCost(sym Symbol) int {
	return (len(sym.Signature) + len(sym.Documentation) + symbolOverheadChars) / charsPerBudgetUnit
}

// PackResult is the packer's renderer-facing output. Included preserves tier
// order, then per-tier extraction order, so rendering the same input twice
// produces identical text.
type PackResult struct {
	Included   []Symbol     `json:"included"`
	TotalUnits int          `json:"total_units"` // budget units consumed by Included
	Exceeded   bool         `json:"exceeded"`    // at least one symbol was dropped for budget
	Dropped    int          `json:"dropped"`     // input symbols not included
	TierCounts map[Tier]int `json:"tier_counts"` // inclusions per tier
}

// Pack walks the tiers in priority order against the budget. Tier 1 is a
// fixed floor: function signatures are the minimum viable API surface and are
// included even when they alone overshoot the budget, which makes the budget
// a soft target for tiers 2-5 only. Later tiers are packed best-effort: a
// symbol that does not fit is skipped and packing continues, so one oversized
// symbol does not block smaller ones behind it.
func Pack(buckets *TierBuckets, budget int) *PackResult {
	res := &PackResult{
		TierCounts: make(map[Tier]int, len(Tiers)),
	}
	if buckets == nil {
		return res
	}

	seen := make(map[string]bool, buckets.Total())
	remaining := budget
	if budget <= 0 {
		// Misconfigured budget: tier 1 only, reported as exceeded up front.
		res.Exceeded = true
	}

	for _, tier := range Tiers {
		for _, sym := range buckets.Bucket(tier) {
			key := sym.key()
			if seen[key] {
				// Classification edge case: the same symbol surfaced in two
				// tiers. The second occurrence is dropped without touching
				// counts or the exceeded flag.
				continue
			}

			cost := EstimateCost(sym)
			if tier != TierFunctions && cost > remaining {
				res.Exceeded = true
				continue
			}

			seen[key] = true
			res.Included = append(res.Included, sym)
			res.TotalUnits += cost
			res.TierCounts[tier]++
			remaining -= cost
		}
	}

	res.Dropped = buckets.Total() - len(res.Included)
	return res
}
