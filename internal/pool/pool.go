// Package pool provides bucketed sync.Pool instances for the int32 scratch
// planes used by the restoration filter (integral images, coefficient maps,
// filtered candidates). Buffers are organized by size class to minimize
// waste; contents are NOT cleared, callers that need zeroed memory must
// clear the slice themselves.
package pool

import "sync"

// Size classes, in int32 elements. The largest covers the scratch for a
// full 256x256 restoration unit with borders.
const (
	Size1K   = 1 << 10
	Size4K   = 1 << 12
	Size16K  = 1 << 14
	Size64K  = 1 << 16
	Size256K = 1 << 18
)

var sizes = [5]int{Size1K, Size4K, Size16K, Size64K, Size256K}

// bucketIndex returns the pool index for a given element count.
func bucketIndex(n int) int {
	for i, sz := range sizes {
		if n <= sz {
			return i
		}
	}
	return len(sizes) - 1
}

var pools [5]sync.Pool

func init() {
	for i := range pools {
		sz := sizes[i]
		pools[i] = sync.Pool{
			New: func() any {
				b := make([]int32, sz)
				return &b
			},
		}
	}
}

// GetInt32 returns an int32 slice of length n from the pool. The returned
// slice may hold stale data. The caller must call PutInt32 when done.
func GetInt32(n int) []int32 {
	bp := pools[bucketIndex(n)].Get().(*[]int32)
	b := *bp
	if cap(b) < n {
		b = make([]int32, n)
		*bp = b
		return b
	}
	return b[:n]
}

// PutInt32 returns a slice obtained from GetInt32 to the pool.
func PutInt32(b []int32) {
	c := cap(b)
	if c < Size1K {
		return
	}
	b = b[:c]
	pools[bucketIndex(c)].Put(&b)
}
