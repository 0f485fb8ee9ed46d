package typescope

// TierBuckets holds the classified symbols in packing order. Within a bucket
// symbols keep their extraction order, so classification is deterministic for
// a given input.
type TierBuckets struct {
	Functions  []Symbol
	Referenced []Symbol
	Transitive []Symbol
	Local      []Symbol
	Imported   []Symbol
}

// Bucket returns the slice for a tier.
func (b *TierBuckets) Bucket(t Tier) []Symbol {
	switch t {
	case TierFunctions:
		return b.Functions
	case TierReferenced:
		return b.Referenced
	case TierTransitive:
		return b.Transitive
	case TierLocal:
		return b.Local
	case TierImported:
		return b.Imported
	default:
		return nil
	}
}

// Total counts symbols across all tiers.
func (b *TierBuckets) Total() int {
	return len(b.Functions) + len(b.Referenced) + len(b.Transitive) + len(b.Local) + len(b.Imported)
}

// Classify partitions symbols into the five tiers by signature-reachability
// from the file's functions. Precedence is strict: a symbol claimed by an
// earlier tier is never reconsidered, and tier 3 expands exactly one level
// beyond tier 2. The input is never mutated, so repeated calls on the same
// slice produce identical buckets.
func Classify(symbols []Symbol, cfg Config, scan ReferenceScanner) *TierBuckets {
	if scan == nil {
		scan = ScanReferences
	}

	buckets := &TierBuckets{}
	assigned := make([]bool, len(symbols))

	allNames := make(map[string]bool, len(symbols))
	funcNames := make(map[string]bool)
	for _, sym := range symbols {
		allNames[sym.Name] = true
		if sym.Kind == KindFunction {
			funcNames[sym.Name] = true
		}
	}

	// Tier 1: every function, unconditionally.
	for i, sym := range symbols {
		if sym.Kind == KindFunction {
			buckets.Functions = append(buckets.Functions, sym)
			assigned[i] = true
		}
	}

	// Tier 2: types named in a function signature, own name excluded.
	referenced := make(map[string]bool)
	for _, fn := range buckets.Functions {
		for name := range scan(fn.Signature) {
			if allNames[name] && name != fn.Name {
				referenced[name] = true
			}
		}
	}
	for i, sym := range symbols {
		if !assigned[i] && referenced[sym.Name] {
			buckets.Referenced = append(buckets.Referenced, sym)
			assigned[i] = true
		}
	}

	// Tier 3: one level of dependencies of tier 2. Names referenced only by
	// a tier-3 signature are not promoted further.
	if cfg.IncludeTransitiveDependencies {
		transitive := make(map[string]bool)
		for _, sym := range buckets.Referenced {
			for name := range scan(sym.Signature) {
				if allNames[name] && !funcNames[name] && !referenced[name] {
					transitive[name] = true
				}
			}
		}
		for i, sym := range symbols {
			if !assigned[i] && transitive[sym.Name] {
				buckets.Transitive = append(buckets.Transitive, sym)
				assigned[i] = true
			}
		}
	}

	classifyRemainder(symbols, assigned, buckets)
	return buckets
}

// ClassifyForRange is the partial-read variant: instead of starting from
// function signatures, anything named in the literal window text counts as
// used, and the used symbols' first-level signature references form the
// dependency set. Functions get no special casing here; a function outside
// the window that the window never names is just another unclaimed symbol.
func ClassifyForRange(symbols []Symbol, rangeText string, cfg Config, scan ReferenceScanner) *TierBuckets {
	if scan == nil {
		scan = ScanReferences
	}

	buckets := &TierBuckets{}
	assigned := make([]bool, len(symbols))

	allNames := make(map[string]bool, len(symbols))
	for _, sym := range symbols {
		allNames[sym.Name] = true
	}

	// Directly referenced in the window, lowercase identifiers included.
	used := scanRangeIdentifiers(rangeText)
	for i, sym := range symbols {
		if used[sym.Name] {
			buckets.Referenced = append(buckets.Referenced, sym)
			assigned[i] = true
		}
	}

	if cfg.IncludeTransitiveDependencies {
		deps := make(map[string]bool)
		for _, sym := range buckets.Referenced {
			for name := range scan(sym.Signature) {
				if allNames[name] && !used[name] {
					deps[name] = true
				}
			}
		}
		for i, sym := range symbols {
			if !assigned[i] && deps[sym.Name] {
				buckets.Transitive = append(buckets.Transitive, sym)
				assigned[i] = true
			}
		}
	}

	classifyRemainder(symbols, assigned, buckets)
	return buckets
}

// classifyRemainder routes unclaimed symbols by origin: entry-file natives to
// tier 4, import-resolved symbols to tier 5.
func classifyRemainder(symbols []Symbol, assigned []bool, buckets *TierBuckets) {
	for i, sym := range symbols {
		if assigned[i] {
			continue
		}
		if sym.OriginPath != "" {
			buckets.Imported = append(buckets.Imported, sym)
		} else {
			buckets.Local = append(buckets.Local, sym)
		}
	}
}
