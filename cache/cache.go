package cache

import (
	"container/list"
	"context"
	"sync"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/report-core/schema"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultMaxEntries = 32
	DefaultMaxBytes   = 256 << 20
)

// ComputeFunc produces the processed form of one document. It runs at most
// once per fingerprint regardless of how many callers race on it.
type ComputeFunc func(ctx context.Context) (*schema.ProcessedDocument, error)

// Cache memoizes processed documents by fingerprint. Eviction is least
// recently used, bounded by entry count and total byte size. Concurrent
// GetOrCompute calls for the same uncached fingerprint share a single
// in-flight computation; unrelated fingerprints never contend on it.
type Cache struct {
	mu      sync.Mutex
	group   singleflight.Group
	entries map[string]*list.Element
	lru     *list.List // front = most recently used
	bytes   int

	maxEntries int
	maxBytes   int
}

type entry struct {
	fingerprint string
	doc         *schema.ProcessedDocument
	size        int
}

func New(maxEntries, maxBytes int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Cache{
		entries:    make(map[string]*list.Element),
		lru:        list.New(),
		maxEntries: maxEntries,
		maxBytes:   maxBytes,
	}
}

// Get returns the cached document and marks it recently used.
func (c *Cache) Get(fingerprint string) (*schema.ProcessedDocument, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[fingerprint]
	if !ok {
		return nil, false
	}
	c.lru.MoveToFront(el)
	return el.Value.(*entry).doc, true
}

// GetOrCompute returns the cached document or runs compute exactly once for
// this fingerprint, with concurrent callers awaiting the same result. A
// failed computation caches nothing, so the next call retries.
func (c *Cache) GetOrCompute(ctx context.Context, fingerprint string, compute ComputeFunc) (*schema.ProcessedDocument, error) {
	if doc, ok := c.Get(fingerprint); ok {
		return doc, nil
	}

	v, err, _ := c.group.Do(fingerprint, func() (any, error) {
		// Re-check: another caller may have finished between Get and Do.
		if doc, ok := c.Get(fingerprint); ok {
			return doc, nil
		}

		doc, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		c.Put(fingerprint, doc)
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*schema.ProcessedDocument), nil
}

// Replace recomputes unconditionally and swaps the entry in atomically.
// Used for forced reprocessing.
func (c *Cache) Replace(ctx context.Context, fingerprint string, compute ComputeFunc) (*schema.ProcessedDocument, error) {
	doc, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	c.Put(fingerprint, doc)
	return doc, nil
}

// Put inserts or overwrites an entry and evicts from the cold end until the
// caps hold again.
func (c *Cache) Put(fingerprint string, doc *schema.ProcessedDocument) {
	size := doc.SizeBytes()

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[fingerprint]; ok {
		old := el.Value.(*entry)
		c.bytes += size - old.size
		old.doc = doc
		old.size = size
		c.lru.MoveToFront(el)
	} else {
		el := c.lru.PushFront(&entry{fingerprint: fingerprint, doc: doc, size: size})
		c.entries[fingerprint] = el
		c.bytes += size
	}

	for c.lru.Len() > c.maxEntries || (c.bytes > c.maxBytes && c.lru.Len() > 1) {
		c.evictOldest()
	}
}

func (c *Cache) evictOldest() {
	el := c.lru.Back()
	if el == nil {
		return
	}
	e := el.Value.(*entry)
	c.lru.Remove(el)
	delete(c.entries, e.fingerprint)
	c.bytes -= e.size

	logger.Info("Evicted processed document",
		zap.String("fingerprint", e.fingerprint),
		zap.Int("size", e.size))
}

// Invalidate drops one entry if present.
func (c *Cache) Invalidate(fingerprint string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[fingerprint]; ok {
		e := el.Value.(*entry)
		c.lru.Remove(el)
		delete(c.entries, fingerprint)
		c.bytes -= e.size
	}
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *Cache) Bytes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bytes
}
