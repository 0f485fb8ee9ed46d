package typescope

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Engine composes the pipeline: extractor -> import resolution -> tier
// classification -> budget packing. One Engine serves one editing session; it
// owns the session cache but holds no per-request state, so concurrent calls
// are safe as long as the extractor is.
type Engine struct {
	extractor Extractor
	scan      ReferenceScanner
	logger    *slog.Logger
	cache     *extractionCache
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets the engine logger. The default is slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger != nil {
			e.logger = logger
		}
		return nil
	}
}

// WithReferenceScanner swaps the signature-scanning heuristic, e.g. for a
// syntax-aware resolver. Tiering and packing are unaffected.
func WithReferenceScanner(scan ReferenceScanner) Option {
	return func(e *Engine) error {
		if scan != nil {
			e.scan = scan
		}
		return nil
	}
}

// WithCacheSize bounds the session extraction cache. Zero or negative
// disables caching; every resolution then hits the extractor directly.
func WithCacheSize(size int) Option {
	return func(e *Engine) error {
		if size <= 0 {
			e.cache = nil
			return nil
		}
		cache, err := newExtractionCache(size)
		if err != nil {
			return err
		}
		e.cache = cache
		return nil
	}
}

// NewEngine creates an Engine around the given extractor.
func NewEngine(extractor Extractor, opts ...Option) (*Engine, error) {
	if extractor == nil {
		return nil, ErrNilExtractor
	}
	cache, err := newExtractionCache(DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		extractor: extractor,
		scan:      ScanReferences,
		logger:    slog.Default(),
		cache:     cache,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// InvalidateFile evicts one file from the session cache, typically after the
// caller observed an edit.
func (e *Engine) InvalidateFile(path string) {
	e.cache.invalidate(path)
}

// InvalidateAll clears the session cache.
func (e *Engine) InvalidateAll() {
	e.cache.purge()
}

// ContextResult is the engine's renderer-facing output for one request.
type ContextResult struct {
	// RequestID correlates log lines for this request.
	RequestID string `json:"request_id"`

	// Included is the packed symbol sequence: tier order, then extraction
	// order within each tier.
	Included []Symbol `json:"included"`

	// TotalUnits, Exceeded, Dropped and TierCounts mirror PackResult.
	TotalUnits int          `json:"total_units"`
	Exceeded   bool         `json:"exceeded"`
	Dropped    int          `json:"dropped"`
	TierCounts map[Tier]int `json:"tier_counts"`

	// Stats describes the import walk behind this result.
	Stats ResolveStats `json:"stats"`
}

// Extract runs the whole-file pipeline for an entry file. It is total: every
// valid input yields a result, and internal resolution failures only shrink
// the symbol set.
func (e *Engine) Extract(ctx context.Context, entry *FileExtraction, cfg Config) *ContextResult {
	cfg = cfg.normalize()
	id := uuid.NewString()
	logger := e.logger.With(slog.String("request_id", id))

	resolved := e.Resolve(ctx, entry, cfg)
	buckets := Classify(resolved.Symbols, cfg, e.scan)
	packed := Pack(buckets, cfg.TokenBudget)

	logger.Debug("context extracted",
		slog.Int("symbols", len(resolved.Symbols)),
		slog.Int("included", len(packed.Included)),
		slog.Int("dropped", packed.Dropped),
		slog.Bool("exceeded", packed.Exceeded))

	return newContextResult(id, resolved, packed)
}

// ExtractForRange runs the pipeline for a partial read. rangeText is the
// literal text of the requested line window; symbols named there become the
// used set, replacing the function-signature seeding of whole-file mode.
func (e *Engine) ExtractForRange(ctx context.Context, entry *FileExtraction, rangeText string, cfg Config) *ContextResult {
	cfg = cfg.normalize()
	id := uuid.NewString()
	logger := e.logger.With(slog.String("request_id", id))

	resolved := e.Resolve(ctx, entry, cfg)
	buckets := ClassifyForRange(resolved.Symbols, rangeText, cfg, e.scan)
	packed := Pack(buckets, cfg.TokenBudget)

	logger.Debug("range context extracted",
		slog.Int("symbols", len(resolved.Symbols)),
		slog.Int("included", len(packed.Included)),
		slog.Int("dropped", packed.Dropped),
		slog.Bool("exceeded", packed.Exceeded))

	return newContextResult(id, resolved, packed)
}

func newContextResult(id string, resolved *ResolveResult, packed *PackResult) *ContextResult {
	return &ContextResult{
		RequestID:  id,
		Included:   packed.Included,
		TotalUnits: packed.TotalUnits,
		Exceeded:   packed.Exceeded,
		Dropped:    packed.Dropped,
		TierCounts: packed.TierCounts,
		Stats:      resolved.Stats,
	}
}
