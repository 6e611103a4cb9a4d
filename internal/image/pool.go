package image

import "sync"

// Pool recycles FloatBuf scratch buffers grouped by geometry. Resampling
// allocates one intermediate buffer per call; pooling it keeps repeated
// scaling of same-sized frames from churning the heap.
//
// All methods are safe for concurrent use. A nil *Pool allocates on every
// Get and drops every Put.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*FloatBuf
	maxSize int // max buffers per bucket; 0 or less is unlimited
}

type poolKey struct {
	width  int
	height int
	format Format
}

// NewPool creates a pool retaining at most maxPerBucket buffers of each
// geometry.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*FloatBuf),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed buffer of the given geometry, reusing a pooled one
// when available.
func (p *Pool) Get(width, height int, format Format) (*FloatBuf, error) {
	if p == nil {
		return NewFloatBuf(width, height, format)
	}
	key := poolKey{width: width, height: height, format: format}

	p.mu.Lock()
	if bucket := p.buckets[key]; len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()
		clear(buf.data)
		return buf, nil
	}
	p.mu.Unlock()

	return NewFloatBuf(width, height, format)
}

// Put hands buf back for reuse. The caller must not touch buf afterwards.
// Nil buffers and buffers beyond the bucket limit are dropped.
func (p *Pool) Put(buf *FloatBuf) {
	if p == nil || buf == nil {
		return
	}
	key := poolKey{width: buf.width, height: buf.height, format: buf.format}

	p.mu.Lock()
	defer p.mu.Unlock()
	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// Len returns the number of pooled buffers of the given geometry.
func (p *Pool) Len(width, height int, format Format) int {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[poolKey{width: width, height: height, format: format}])
}
