package typescope

import (
	"context"
	"errors"
	"sync"
)

// fakeExtractor serves canned FileExtraction records and counts calls per
// path, so tests can assert on cache behavior and failure handling.
type fakeExtractor struct {
	mu    sync.Mutex
	files map[string]*FileExtraction
	calls map[string]int
}

func newFakeExtractor(files ...*FileExtraction) *fakeExtractor {
	fx := &fakeExtractor{
		files: make(map[string]*FileExtraction),
		calls: make(map[string]int),
	}
	for _, fe := range files {
		fx.files[fe.Path] = fe
	}
	return fx
}

func (fx *fakeExtractor) ExtractFile(_ context.Context, path string) (*FileExtraction, error) {
	fx.mu.Lock()
	defer fx.mu.Unlock()
	fx.calls[path]++
	fe, ok := fx.files[path]
	if !ok {
		return nil, errors.New("no such file: " + path)
	}
	return fe, nil
}

func (fx *fakeExtractor) callCount(path string) int {
	fx.mu.Lock()
	defer fx.mu.Unlock()
	return fx.calls[path]
}

// Symbol builders keep test tables short.

func fn(name, signature string) Symbol {
	return Symbol{Kind: KindFunction, Name: name, Signature: signature, IsExported: true}
}

func iface(name, signature string) Symbol {
	return Symbol{Kind: KindInterface, Name: name, Signature: signature, IsExported: true}
}

func imported(sym Symbol, origin string, depth int) Symbol {
	sym.OriginPath = origin
	sym.ImportDepth = depth
	return sym
}

// rel builds a relative import edge.
func rel(specifier, path string, names ...string) ImportEdge {
	return ImportEdge{Specifier: specifier, Path: path, Names: names}
}

func names(buckets []Symbol) []string {
	out := make([]string, len(buckets))
	for i, sym := range buckets {
		out[i] = sym.Name
	}
	return out
}
