package typescope

import "regexp"

// ReferenceScanner extracts the set of plausibly-referenced type names from a
// rendered signature. It is a pure function so callers can swap the default
// regex heuristic for a syntax-aware resolver without touching tiering or
// packing.
type ReferenceScanner func(signature string) map[string]bool

var (
	typeTokenPattern  = regexp.MustCompile(`\b[A-Z][A-Za-z0-9]*\b`)
	identTokenPattern = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*\b`)
)

// builtinNames is the deny-list of capitalized tokens that are wrappers,
// containers or generic utilities rather than project types. It is a
// configuration constant, not a language feature; false positives elsewhere
// are tolerated because scan results only ever add inclusion candidates.
var builtinNames = map[string]bool{
	"String":      true,
	"Number":      true,
	"Boolean":     true,
	"Object":      true,
	"Array":       true,
	"Promise":     true,
	"Date":        true,
	"RegExp":      true,
	"Error":       true,
	"Map":         true,
	"Set":         true,
	"WeakMap":     true,
	"WeakSet":     true,
	"Symbol":      true,
	"Record":      true,
	"Partial":     true,
	"Pick":        true,
	"Omit":        true,
	"Exclude":     true,
	"Extract":     true,
	"Required":    true,
	"Readonly":    true,
	"NonNullable": true,
	"ReturnType":  true,
	"Parameters":  true,
	"Awaited":     true,
	"Function":    true,
	"JSON":        true,
	"Math":        true,
}

// ScanReferences is the default ReferenceScanner: every capitalized
// identifier-like token minus the built-in deny-list. A signature with no
// candidates yields an empty set, which is not an error.
func ScanReferences(signature string) map[string]bool {
	refs := make(map[string]bool)
	for _, tok := range typeTokenPattern.FindAllString(signature, -1) {
		if builtinNames[tok] {
			continue
		}
		refs[tok] = true
	}
	return refs
}

// scanRangeIdentifiers matches both capitalized and lowercase identifier
// tokens. Range-scoped reads use it on the literal window text, where value
// references (calls, constants) matter as much as type positions.
func scanRangeIdentifiers(text string) map[string]bool {
	refs := make(map[string]bool)
	for _, tok := range identTokenPattern.FindAllString(text, -1) {
		if builtinNames[tok] {
			continue
		}
		refs[tok] = true
	}
	return refs
}
