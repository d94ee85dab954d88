package handler

import (
	"bytes"
	"sync"
)

const (
	bufferInitialSize = 512
	// larger buffers are dropped instead of pooled
	bufferMaxPooledSize = 64 * 1024
)

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, bufferInitialSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > bufferMaxPooledSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
