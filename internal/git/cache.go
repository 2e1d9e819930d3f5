package git

import (
	"sync"
	"time"

	"github.com/Akashdeep-Patra/zed-git-stash/internal/diff"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/stash"
)

// CachedService wraps a Service with a short TTL cache for the listing
// and HEAD lookups. A watcher burst, a manual refresh and the refresh that
// follows a mutation often land within the same second; the cache makes
// them share one git invocation.
//
// Writes always invalidate, whether or not they succeeded: a failed pop
// may still have touched the stack. Previews are never cached.
type CachedService struct {
	inner Service
	ttl   time.Duration
	now   func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
	gen   uint64 // Bumped by Invalidate.
}

// maxCacheEntries caps the number of entries in the cache.
const maxCacheEntries = 64

type cacheEntry struct {
	val    any
	err    error
	expiry time.Time
}

// Compile-time checks.
var (
	_ Service     = (*CachedService)(nil)
	_ Invalidator = (*CachedService)(nil)
)

// NewCachedService wraps inner with a TTL cache. A ttl of zero disables
// caching.
func NewCachedService(inner Service, ttl time.Duration) *CachedService {
	return &CachedService{
		inner: inner,
		ttl:   ttl,
		now:   time.Now,
		cache: make(map[string]cacheEntry, 4),
	}
}

// Invalidate clears all cached entries.
func (c *CachedService) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[string]cacheEntry, 4)
	c.gen++
	c.mu.Unlock()
}

// get returns a live cached value, plus the generation a miss must pass
// back to set.
func (c *CachedService) get(key string) (cacheEntry, bool, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, found := c.cache[key]
	if !found || c.now().After(e.expiry) {
		return cacheEntry{}, false, c.gen
	}
	return e, true, c.gen
}

// set stores a value read at generation gen. A read that raced with an
// Invalidate is not stored.
func (c *CachedService) set(key string, val any, err error, gen uint64) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	if len(c.cache) >= maxCacheEntries {
		c.cache = make(map[string]cacheEntry, 4)
	}
	c.cache[key] = cacheEntry{val: val, err: err, expiry: c.now().Add(c.ttl)}
}

// invalidateAndReturn is a helper for write methods.
func (c *CachedService) invalidateAndReturn(err error) error {
	c.Invalidate()
	return err
}

// ── Repository info ─────────────────────────────────────────────────────────

// RepoRoot delegates to the inner service.
func (c *CachedService) RepoRoot() string { return c.inner.RepoRoot() }

// GitDir delegates to the inner service.
func (c *CachedService) GitDir() string { return c.inner.GitDir() }

// Head returns the current branch (cached).
func (c *CachedService) Head() (string, error) {
	cached, ok, gen := c.get("head")
	if ok {
		return cached.val.(string), cached.err
	}
	v, err := c.inner.Head()
	c.set("head", v, err, gen)
	return v, err
}

// ── Stash ───────────────────────────────────────────────────────────────────

// StashList returns the stash stack (cached).
func (c *CachedService) StashList() (stash.List, error) {
	cached, ok, gen := c.get("stash-list")
	if ok {
		return cached.val.(stash.List), cached.err
	}
	v, err := c.inner.StashList()
	c.set("stash-list", v, err, gen)
	return v, err
}

// StashShow delegates to the inner service (not cached).
func (c *CachedService) StashShow(index int) (*diff.Document, error) {
	return c.inner.StashShow(index)
}

// StashFiles delegates to the inner service (not cached).
func (c *CachedService) StashFiles(index int) (*diff.FileSummary, error) {
	return c.inner.StashFiles(index)
}

// StashApply applies or pops and invalidates the cache.
func (c *CachedService) StashApply(index int, drop bool) error {
	return c.invalidateAndReturn(c.inner.StashApply(index, drop))
}

// StashDrop drops a stash entry and invalidates the cache.
func (c *CachedService) StashDrop(index int) error {
	return c.invalidateAndReturn(c.inner.StashDrop(index))
}

// StashSave creates a stash and invalidates the cache.
func (c *CachedService) StashSave(message string, includeUntracked bool) error {
	return c.invalidateAndReturn(c.inner.StashSave(message, includeUntracked))
}
