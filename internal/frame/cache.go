package frame

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/beevik/etree"
)

// Loader fetches a raw template asset by URL.
type Loader func(ctx context.Context, url string) ([]byte, error)

// TemplateCache holds parsed frame templates keyed by URL. Entries are
// written once and never evicted: templates are few and small, and keeping
// them resident eliminates repeated fetch and parse cost. The cache is
// injected into the compositor so tests can substitute a fresh one per run.
type TemplateCache struct {
	mu      sync.Mutex
	load    Loader
	entries map[string]*etree.Document
}

// NewTemplateCache builds a cache backed by the given loader.
func NewTemplateCache(load Loader) *TemplateCache {
	return &TemplateCache{
		load:    load,
		entries: make(map[string]*etree.Document),
	}
}

// Get returns the parsed template for url, fetching and parsing it on first
// use. The returned document is the shared cached original: callers must
// clone before mutating.
func (c *TemplateCache) Get(ctx context.Context, url string) (*etree.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if doc, ok := c.entries[url]; ok {
		return doc, nil
	}

	raw, err := c.load(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("frame template %s: %w", url, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("frame template %s: parse: %w", url, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("frame template %s: empty document", url)
	}

	c.entries[url] = doc
	return doc, nil
}

// Len reports how many templates are resident.
func (c *TemplateCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// HTTPLoader fetches templates over HTTP, resolving relative URLs against
// base.
func HTTPLoader(client *http.Client, base string) Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context, url string) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
}

// DirLoader reads templates from a local asset directory.
func DirLoader(dir string) Loader {
	return func(_ context.Context, url string) ([]byte, error) {
		return os.ReadFile(filepath.Join(dir, filepath.FromSlash(url)))
	}
}
