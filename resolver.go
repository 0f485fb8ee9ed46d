package typescope

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dominikbraun/graph"
	"github.com/gobwas/glob"
)

// Extractor supplies per-file declarations and import edges. Implementations
// live outside this package (language parsers, editor buffers, test doubles);
// the engine only consumes their output.
type Extractor interface {
	ExtractFile(ctx context.Context, path string) (*FileExtraction, error)
}

// FileNode is a vertex in the resolved file graph.
type FileNode struct {
	Path  string `json:"path"`
	Depth int    `json:"depth"`
}

// ResolveStats summarizes one resolution pass for diagnostics.
type ResolveStats struct {
	FilesVisited     int `json:"files_visited"`     // distinct files expanded, entry included
	EdgesFollowed    int `json:"edges_followed"`    // imports recursed into
	EdgesSkipped     int `json:"edges_skipped"`     // external, excluded, type-only or unresolved
	ExtractionErrors int `json:"extraction_errors"` // targets that failed to extract
}

// ResolveResult is the outcome of one import walk: the entry file's symbols
// followed by every imported symbol tagged with origin and depth, plus the
// file-level import graph that was traversed.
type ResolveResult struct {
	Symbols   []Symbol
	FileGraph graph.Graph[string, *FileNode]
	Stats     ResolveStats
}

// walkState is threaded through one resolution pass. Each call builds its
// own, so concurrent resolutions never share mutable state.
type walkState struct {
	visited   map[string]bool
	fileGraph graph.Graph[string, *FileNode]
	stats     *ResolveStats
	excludes  []glob.Glob
	entryDir  string
	logger    *slog.Logger
}

// Resolve walks the entry file's imports up to cfg.MaxImportDepth, collecting
// symbols from each reachable file exactly once. It is total: unresolvable or
// unextractable targets are logged and skipped, and a nil entry yields an
// empty result.
func (e *Engine) Resolve(ctx context.Context, entry *FileExtraction, cfg Config) *ResolveResult {
	cfg = cfg.normalize()

	fileGraph := graph.New(func(n *FileNode) string { return n.Path }, graph.Directed())
	res := &ResolveResult{FileGraph: fileGraph}
	if entry == nil {
		return res
	}

	st := &walkState{
		visited:   map[string]bool{entry.Path: true},
		fileGraph: fileGraph,
		stats:     &res.Stats,
		excludes:  compileExcludes(cfg.ExcludeImports, e.logger),
		entryDir:  filepath.Dir(entry.Path),
		logger:    e.logger.With(slog.String("entry", entry.Path)),
	}
	_ = fileGraph.AddVertex(&FileNode{Path: entry.Path, Depth: 0})

	res.Symbols = append(res.Symbols, entry.Symbols...)
	res.Symbols = append(res.Symbols, e.walk(ctx, entry, 0, cfg, st)...)
	res.Stats.FilesVisited = len(st.visited)
	return res
}

// walk expands one file's import edges at the given depth. Targets are marked
// visited before recursion; that ordering is what terminates cyclic and
// diamond-shaped import graphs.
func (e *Engine) walk(ctx context.Context, from *FileExtraction, depth int, cfg Config, st *walkState) []Symbol {
	if depth >= cfg.MaxImportDepth {
		return nil
	}

	var collected []Symbol
	for _, edge := range from.Imports {
		if !edge.Relative() {
			// Package imports are outside the resolution domain.
			st.stats.EdgesSkipped++
			continue
		}
		if edge.TypeOnly && !cfg.IncludeTypeOnlyImports {
			st.stats.EdgesSkipped++
			continue
		}
		if matchesAny(st.excludes, edge.Specifier) {
			st.stats.EdgesSkipped++
			continue
		}
		target := edge.Path
		if target == "" {
			st.stats.EdgesSkipped++
			st.logger.Warn("skipping unresolved import",
				slog.String("from", from.Path),
				slog.String("specifier", edge.Specifier))
			continue
		}
		if st.visited[target] {
			// Already expanded elsewhere in this pass; record the edge for
			// the file graph but collect nothing twice.
			_ = st.fileGraph.AddEdge(from.Path, target)
			continue
		}
		st.visited[target] = true

		fe, err := e.extractFile(ctx, target)
		if err != nil {
			st.stats.ExtractionErrors++
			st.logger.Warn("skipping unextractable import",
				slog.String("from", from.Path),
				slog.String("target", target),
				slog.Any("error", err))
			continue
		}
		st.stats.EdgesFollowed++
		_ = st.fileGraph.AddVertex(&FileNode{Path: target, Depth: depth + 1})
		_ = st.fileGraph.AddEdge(from.Path, target)

		origin := relativeOrigin(st.entryDir, target)
		for _, sym := range filterByNames(fe.Symbols, edge.Names) {
			sym.OriginPath = origin
			sym.ImportDepth = depth + 1
			collected = append(collected, sym)
		}
		collected = append(collected, e.walk(ctx, fe, depth+1, cfg, st)...)
	}
	return collected
}

// extractFile consults the session cache before hitting the extractor.
func (e *Engine) extractFile(ctx context.Context, path string) (*FileExtraction, error) {
	if fe, ok := e.cache.get(path); ok {
		return fe, nil
	}
	fe, err := e.extractor.ExtractFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if fe == nil {
		return nil, fmt.Errorf("extractor returned no result for %s", path)
	}
	e.cache.add(path, fe)
	return fe, nil
}

// filterByNames keeps symbols matching a named-import list; an empty list
// means the whole module was imported.
func filterByNames(symbols []Symbol, names []string) []Symbol {
	if len(names) == 0 {
		return symbols
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var kept []Symbol
	for _, sym := range symbols {
		if wanted[sym.Name] {
			kept = append(kept, sym)
		}
	}
	return kept
}

// relativeOrigin renders the target path relative to the entry file's
// directory, falling back to the raw path when the two are not relatable.
func relativeOrigin(entryDir, target string) string {
	rel, err := filepath.Rel(entryDir, target)
	if err != nil {
		return target
	}
	return rel
}

// compileExcludes compiles the configured specifier globs. A bad pattern is
// logged and dropped; it never fails the request.
func compileExcludes(patterns []string, logger *slog.Logger) []glob.Glob {
	var compiled []glob.Glob
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			logger.Warn("dropping invalid import exclude pattern",
				slog.String("pattern", p),
				slog.Any("error", err))
			continue
		}
		compiled = append(compiled, g)
	}
	return compiled
}

func matchesAny(globs []glob.Glob, s string) bool {
	for _, g := range globs {
		if g.Match(s) {
			return true
		}
	}
	return false
}
