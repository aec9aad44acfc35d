package handler

import (
	"bytes"
	"sync"

	"github.com/goccy/go-json"
)

const (
	responseBufferSize = 512
	// maxPooledBufferSize caps what a buffer keeps between responses. A full
	// catalog listing grows past it and is left to the GC.
	maxPooledBufferSize = 64 << 10
)

// responseBuffer is a reusable response body with its own encoder
type responseBuffer struct {
	bytes.Buffer
	enc *json.Encoder
}

var responseBuffers = sync.Pool{
	New: func() any {
		rb := &responseBuffer{}
		rb.Grow(responseBufferSize)
		rb.enc = json.NewEncoder(&rb.Buffer)
		return rb
	},
}

func acquireResponseBuffer() *responseBuffer {
	return responseBuffers.Get().(*responseBuffer)
}

// releaseResponseBuffer empties rb and pools it again, unless it grew past
// maxPooledBufferSize. It reports whether rb went back to the pool.
func releaseResponseBuffer(rb *responseBuffer) bool {
	if rb.Cap() > maxPooledBufferSize {
		return false
	}
	rb.Reset()
	responseBuffers.Put(rb)
	return true
}

func (rb *responseBuffer) encode(v any) error {
	return rb.enc.Encode(v)
}
