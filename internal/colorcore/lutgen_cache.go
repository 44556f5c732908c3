package colorcore

import (
	"context"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// CachedGenerator memoizes MakeCubeLUT results keyed by an xxHash64 of
// the canonicalized GenerateParams, the same content-addressing idea
// the teacher applies to image variants (internal/hasher.ContentHash)
// applied here to repeated LUT generation calls — useful for a batch
// driver converting every frame of a sequence through the same fixed
// src->dst pipeline.
type CachedGenerator struct {
	mu    sync.Mutex
	cache map[uint64]string
}

// NewCachedGenerator returns an empty, ready-to-use cache.
func NewCachedGenerator() *CachedGenerator {
	return &CachedGenerator{cache: make(map[uint64]string)}
}

// cacheKey canonicalizes GenerateParams into a stable string before
// hashing, so field order/formatting changes in Go never change the
// key (only the semantic parameters do).
func cacheKey(p GenerateParams) uint64 {
	s := fmt.Sprintf("%d|%d|%d|%d|%d|%d|%d",
		p.SrcPrimaries, p.SrcTF, p.DstPrimaries, p.DstTF, p.CubeSize, p.ShaperSize, p.Clip)
	return xxhash.Sum64String(s)
}

// Generate returns the cached .cube text for p if present, otherwise
// computes it via MakeCubeLUT and caches the result. A cancelled or
// errored generation is never cached.
func (c *CachedGenerator) Generate(ctx context.Context, p GenerateParams, progress ProgressFunc) (string, error) {
	key := cacheKey(p)

	c.mu.Lock()
	if cached, ok := c.cache[key]; ok {
		c.mu.Unlock()
		if progress != nil {
			progress(100)
		}
		return cached, nil
	}
	c.mu.Unlock()

	text, err := MakeCubeLUT(ctx, p, progress)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.cache[key] = text
	c.mu.Unlock()
	return text, nil
}
