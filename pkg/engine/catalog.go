package engine

import (
	"fmt"
	"sort"
	"sync"

	"colq/pkg/engine/datasource"
)

// Catalog maps table names to data sources. Registration typically
// happens at startup; lookups may come from concurrent request
// handlers, hence the lock.
type Catalog struct {
	mu      sync.RWMutex
	sources map[string]datasource.DataSource
}

func NewCatalog() *Catalog {
	return &Catalog{sources: make(map[string]datasource.DataSource)}
}

func (c *Catalog) Register(name string, source datasource.DataSource) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.sources[name]; exists {
		return fmt.Errorf("table %q is already registered", name)
	}
	c.sources[name] = source
	return nil
}

func (c *Catalog) Get(name string) (datasource.DataSource, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	source, ok := c.sources[name]
	return source, ok
}

func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.sources))
	for name := range c.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
