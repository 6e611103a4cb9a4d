package gamma

import (
	"github.com/gogpu/rasterkit/internal/cache"
	"github.com/gogpu/rasterkit/internal/image"
)

// Table is a precomputed 8-bit gamma transform: entry i holds the result
// of moving i/255 from the source to the target gamma, scaled back to a
// byte.
type Table [256]byte

// NewTable builds the lookup table for (src, dst, p).
func NewTable(src, dst float64, p Policy) (*Table, error) {
	if err := check(src, dst, p); err != nil {
		return nil, err
	}
	var t Table
	for i := range t {
		t[i] = image.ClampByte(transform(float64(i)/255, src, dst, p) * 255)
	}
	return &t, nil
}

// Lookup returns the transformed value of v.
func (t *Table) Lookup(v byte) byte {
	return t[v]
}

// ApplyImage rewrites every sample of img in place.
func (t *Table) ApplyImage(img *image.ImageBuf) {
	data := img.Data()
	for i, v := range data {
		data[i] = t[v]
	}
}

type tableKey struct {
	src, dst float64
	policy   Policy
}

// TableCache shares built tables between callers. A nil *TableCache is
// valid and builds a fresh table on every call.
type TableCache struct {
	tables *cache.Cache[tableKey, *Table]
}

// NewTableCache returns a cache holding at most size tables.
func NewTableCache(size int) *TableCache {
	return &TableCache{tables: cache.New[tableKey, *Table](size)}
}

// Table returns the table for (src, dst, p), building it once per cache.
// The returned table must not be modified.
func (c *TableCache) Table(src, dst float64, p Policy) (*Table, error) {
	if err := check(src, dst, p); err != nil {
		return nil, err
	}
	if c == nil {
		return NewTable(src, dst, p)
	}
	return c.tables.GetOrCreate(tableKey{src, dst, p}, func() *Table {
		t, _ := NewTable(src, dst, p)
		return t
	}), nil
}

// Len reports how many tables are cached.
func (c *TableCache) Len() int {
	if c == nil {
		return 0
	}
	return c.tables.Len()
}
