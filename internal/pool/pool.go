// Package pool provides object pools for hot-path allocations: PTY
// read buffers churned by every session pump and string builders used
// when assembling frame text.
package pool

import (
	"strings"
	"sync"
)

// ReadBufferSize is the size of pooled PTY read buffers. Large enough
// to drain a full flush of program output in one read.
const ReadBufferSize = 32 * 1024

var byteSlicePool = sync.Pool{
	New: func() any {
		b := make([]byte, ReadBufferSize)
		return &b
	},
}

// GetByteSlice returns a read buffer of ReadBufferSize bytes.
func GetByteSlice() *[]byte {
	return byteSlicePool.Get().(*[]byte)
}

// PutByteSlice returns a buffer to the pool. The caller must not hold
// references into it afterwards.
func PutByteSlice(b *[]byte) {
	if b == nil || cap(*b) < ReadBufferSize {
		return
	}
	*b = (*b)[:ReadBufferSize]
	byteSlicePool.Put(b)
}

var stringBuilderPool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// GetStringBuilder returns an empty string builder.
func GetStringBuilder() *strings.Builder {
	return stringBuilderPool.Get().(*strings.Builder)
}

// PutStringBuilder resets and returns a builder to the pool.
func PutStringBuilder(sb *strings.Builder) {
	if sb == nil {
		return
	}
	sb.Reset()
	stringBuilderPool.Put(sb)
}
