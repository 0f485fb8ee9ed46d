// Package typescope resolves cross-file type references for an entry source
// file and packs the resulting declarations into a fixed token budget. It sits
// between an external extractor (which parses source text into Symbol records)
// and an external renderer (which formats the packed output): extractor ->
// import resolution -> tier classification -> budget packing -> renderer.
package typescope

import "strings"

// SymbolKind identifies the declaration form of an extracted symbol.
type SymbolKind string

const (
	KindFunction       SymbolKind = "function"
	KindTypeAlias      SymbolKind = "type-alias"
	KindInterface      SymbolKind = "interface"
	KindEnum           SymbolKind = "enum"
	KindClass          SymbolKind = "class"
	KindFrozenConstant SymbolKind = "frozen-constant"
)

// Symbol represents one extracted declaration. Symbols are produced by an
// external extractor and treated as immutable here: the engine annotates
// copies with OriginPath/ImportDepth but never rewrites Kind, Name or
// Signature.
type Symbol struct {
	Kind          SymbolKind `json:"kind"`
	Name          string     `json:"name"`
	Signature     string     `json:"signature"`
	Documentation string     `json:"documentation,omitempty"`
	IsExported    bool       `json:"is_exported"`

	// OriginPath is empty for symbols native to the entry file and holds the
	// relative path of the declaring file for anything reached through import
	// resolution. ImportDepth is 0 exactly when OriginPath is empty, 1 for a
	// direct import, 2+ for transitive imports.
	OriginPath  string `json:"origin_path,omitempty"`
	ImportDepth int    `json:"import_depth,omitempty"`

	// StartLine/EndLine are zero-based line bounds in the origin file. They
	// are navigation hints threaded through unchanged; the engine never reads
	// them.
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// key distinguishes same-named symbols declared in different files.
func (s Symbol) key() string {
	return s.OriginPath + "\x00" + s.Name + "\x00" + string(s.Kind)
}

// ImportEdge describes one import statement of a file. The extractor resolves
// the specifier to a concrete file identity where it can; Path is empty when
// resolution failed.
type ImportEdge struct {
	// Specifier is the import path as written in source. Only relative
	// specifiers ("./x", "../y") are followed; package imports are outside
	// the resolution domain.
	Specifier string `json:"specifier"`

	// Path is the extractor-resolved identity of the target file.
	Path string `json:"path,omitempty"`

	// Names lists the identifiers imported by name. Empty means the whole
	// module is imported.
	Names []string `json:"names,omitempty"`

	// TypeOnly marks imports that exist purely at the type level.
	TypeOnly bool `json:"type_only,omitempty"`
}

// Relative reports whether the edge points at a sibling file rather than an
// external package.
func (e ImportEdge) Relative() bool {
	return strings.HasPrefix(e.Specifier, "./") || strings.HasPrefix(e.Specifier, "../")
}

// FileExtraction is the per-file output of the external extractor: the file's
// declarations in source order plus its import statements in source order.
type FileExtraction struct {
	Path    string       `json:"path"`
	Symbols []Symbol     `json:"symbols"`
	Imports []ImportEdge `json:"imports"`
}

// Resolution and packing limits.
const (
	DefaultMaxImportDepth = 2
	DefaultTokenBudget    = 2000
	MaxSupportedDepth     = 10
)

// Config carries the per-request knobs. The zero value is not useful; start
// from Default and override.
type Config struct {
	// MaxImportDepth bounds the import walk. 0 disables import resolution
	// entirely; entry-file symbols are still classified and packed.
	MaxImportDepth int

	// IncludeTypeOnlyImports follows imports that exist purely at the type
	// level.
	IncludeTypeOnlyImports bool

	// TokenBudget is the soft size target in budget units for tiers 2-5.
	// Function signatures (tier 1) are always included in full.
	TokenBudget int

	// IncludeTransitiveDependencies enables tier 3: types referenced only by
	// already-included type signatures. When false those symbols fall
	// through to tiers 4/5.
	IncludeTransitiveDependencies bool

	// ExcludeImports holds glob patterns matched against import specifiers;
	// matching edges are skipped (generated code, fixtures).
	ExcludeImports []string
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		MaxImportDepth:                DefaultMaxImportDepth,
		IncludeTypeOnlyImports:        false,
		TokenBudget:                   DefaultTokenBudget,
		IncludeTransitiveDependencies: true,
	}
}

// normalize clamps out-of-range values so a sloppy caller degrades instead of
// failing; the caller-visible contract is total.
func (c Config) normalize() Config {
	if c.MaxImportDepth < 0 {
		c.MaxImportDepth = 0
	}
	if c.MaxImportDepth > MaxSupportedDepth {
		c.MaxImportDepth = MaxSupportedDepth
	}
	return c
}

// Tier is the importance class a symbol is assigned during classification.
// Every symbol lands in exactly one tier; the packer walks tiers in declared
// order.
type Tier int

const (
	// TierFunctions holds every function declaration. Always included.
	TierFunctions Tier = iota + 1
	// TierReferenced holds non-function symbols named in a function
	// signature (or, for range reads, named in the requested window).
	TierReferenced
	// TierTransitive holds symbols referenced only by TierReferenced
	// signatures, one level deep.
	TierTransitive
	// TierLocal holds remaining entry-file symbols.
	TierLocal
	// TierImported holds remaining symbols that arrived via import
	// resolution.
	TierImported
)

// Tiers lists all tiers in packing order.
var Tiers = [...]Tier{TierFunctions, TierReferenced, TierTransitive, TierLocal, TierImported}

func (t Tier) String() string {
	switch t {
	case TierFunctions:
		return "functions"
	case TierReferenced:
		return "referenced"
	case TierTransitive:
		return "transitive"
	case TierLocal:
		return "local"
	case TierImported:
		return "imported"
	default:
		return "unknown"
	}
}
