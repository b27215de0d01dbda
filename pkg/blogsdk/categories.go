package blogsdk

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ListCategories returns the category tree.
func (c *SDKClient) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.call(ctx, http.MethodGet, "/api/v1/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory adds a category and returns its id. Admin only.
func (c *SDKClient) CreateCategory(ctx context.Context, req CreateCategoryRequest) (int64, error) {
	var id int64
	if err := c.call(ctx, http.MethodPost, "/api/v1/categories", nil, req, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// CategoryCache loads the category tree once and serves it from memory
// until a forced reload. Concurrent first loads share one request.
type CategoryCache struct {
	client *SDKClient
	group  singleflight.Group

	mu     sync.RWMutex
	tree   []Category
	loaded bool
}

// NewCategoryCache returns an empty cache backed by c.
func NewCategoryCache(c *SDKClient) *CategoryCache {
	return &CategoryCache{client: c}
}

// Get returns the cached tree, loading it first if needed or if force is set.
func (cc *CategoryCache) Get(ctx context.Context, force bool) ([]Category, error) {
	if !force {
		cc.mu.RLock()
		if cc.loaded {
			tree := cc.tree
			cc.mu.RUnlock()
			return tree, nil
		}
		cc.mu.RUnlock()
	}

	v, err, _ := cc.group.Do("categories", func() (any, error) {
		tree, err := cc.client.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		cc.mu.Lock()
		cc.tree = tree
		cc.loaded = true
		cc.mu.Unlock()
		return tree, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Category), nil
}

// Find returns the category with id anywhere in the tree.
func (cc *CategoryCache) Find(id int64) (Category, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return findCategory(cc.tree, id)
}

func findCategory(nodes []Category, id int64) (Category, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
		if found, ok := findCategory(n.Children, id); ok {
			return found, true
		}
	}
	return Category{}, false
}
