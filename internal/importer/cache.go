package importer

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// PreviewCache holds previews until they are applied, expire, or are
// evicted as least recently used.
type PreviewCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
	now     func() time.Time
}

type cachedPreview struct {
	key       string
	preview   *Preview
	expiresAt time.Time
}

func NewPreviewCache(maxSize int, ttl time.Duration) *PreviewCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &PreviewCache{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		now:     time.Now,
	}
}

func (c *PreviewCache) Get(key string) (*Preview, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	item := elem.Value.(*cachedPreview)
	if c.now().After(item.expiresAt) {
		c.removeElement(elem)
		return nil, false
	}
	c.lru.MoveToFront(elem)
	return item.preview, true
}

func (c *PreviewCache) Set(key string, p *Preview) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &cachedPreview{key: key, preview: p, expiresAt: c.now().Add(c.ttl)}
	if elem, ok := c.items[key]; ok {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return
	}

	c.items[key] = c.lru.PushFront(item)
	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *PreviewCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.removeElement(elem)
	}
}

// CleanExpired removes expired previews and returns how many it removed.
func (c *PreviewCache) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var expired []*list.Element
	for elem := c.lru.Front(); elem != nil; elem = elem.Next() {
		if now.After(elem.Value.(*cachedPreview).expiresAt) {
			expired = append(expired, elem)
		}
	}
	for _, elem := range expired {
		c.removeElement(elem)
	}
	return len(expired)
}

func (c *PreviewCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *PreviewCache) removeElement(elem *list.Element) {
	delete(c.items, elem.Value.(*cachedPreview).key)
	c.lru.Remove(elem)
}

// RunJanitor removes expired previews every interval until ctx is done.
func (c *PreviewCache) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.CleanExpired(); n > 0 {
				logrus.WithField("removed", n).Debug("PreviewCache.RunJanitor.cleaned")
			}
		}
	}
}
