package geom

import (
	"fmt"
	gomath "math"
	"sync"
)

// Cache memoizes tessellated primitive buffers. Keys carry the exact bit
// pattern of every float parameter, so only bit-identical parameters share
// an entry. Cached buffers are shared; callers must not mutate them.
type Cache struct {
	data map[string]*Buffer
	mu   sync.Mutex

	hits   int
	misses int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{data: make(map[string]*Buffer)}
}

// Get retrieves a buffer from the cache.
func (c *Cache) Get(key string) (*Buffer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return b, ok
}

// Set stores a buffer in the cache.
func (c *Cache) Set(key string, b *Buffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
}

// Clear empties the cache and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*Buffer)
	c.hits = 0
	c.misses = 0
}

// Stats returns the hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Cube returns the cached cube for size, tessellating on first use.
func (c *Cache) Cube(size float32) *Buffer {
	k := fmt.Sprintf("cube:%08x", gomath.Float32bits(size))
	if b, ok := c.Get(k); ok {
		return b
	}
	b := Cube(size)
	c.Set(k, b)
	return b
}

// Sphere returns the cached sphere for the given parameters.
func (c *Cache) Sphere(radius float32, slices, stacks int) *Buffer {
	k := fmt.Sprintf("sphere:%08x:%d:%d", gomath.Float32bits(radius), slices, stacks)
	if b, ok := c.Get(k); ok {
		return b
	}
	b := Sphere(radius, slices, stacks)
	c.Set(k, b)
	return b
}

// Cylinder returns the cached cylinder for the given parameters.
func (c *Cache) Cylinder(radius, height float32, slices int) *Buffer {
	k := fmt.Sprintf("cylinder:%08x:%08x:%d",
		gomath.Float32bits(radius), gomath.Float32bits(height), slices)
	if b, ok := c.Get(k); ok {
		return b
	}
	b := Cylinder(radius, height, slices)
	c.Set(k, b)
	return b
}

// Cone returns the cached cone for the given parameters.
func (c *Cache) Cone(radius, height float32, slices int) *Buffer {
	k := fmt.Sprintf("cone:%08x:%08x:%d",
		gomath.Float32bits(radius), gomath.Float32bits(height), slices)
	if b, ok := c.Get(k); ok {
		return b
	}
	b := Cone(radius, height, slices)
	c.Set(k, b)
	return b
}

// Capsule returns the cached capsule for the given parameters.
func (c *Cache) Capsule(radius, height float32, slices, bands int) *Buffer {
	k := fmt.Sprintf("capsule:%08x:%08x:%d:%d",
		gomath.Float32bits(radius), gomath.Float32bits(height), slices, bands)
	if b, ok := c.Get(k); ok {
		return b
	}
	b := Capsule(radius, height, slices, bands)
	c.Set(k, b)
	return b
}
