package typescope

import "errors"

// Construction-time misuse. The extract+prioritize path itself is total and
// never returns an error: internal failures shrink the result instead.
var (
	ErrNilExtractor = errors.New("typescope: extractor is required")
)
