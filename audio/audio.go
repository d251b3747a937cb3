// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Source is a pull-based stream of interleaved float32 PCM in [-1, 1].
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels per frame (1 = mono).
	Channels() int
	// ReadSamples fills dst with interleaved samples and returns how many
	// float32 values were written. A read that returns io.EOF may still
	// carry samples.
	ReadSamples(dst []float32) (n int, err error)
	// BufSize is the preferred read size in samples.
	BufSize() int
	// Close releases resources held by the stream.
	Close() error
}

// Decoder opens an encoded stream as a Source.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps file extensions ("wav", "mp3", ...) to decoders.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// Register binds d to every listed extension. Extensions are matched
// case-insensitively and may carry a leading dot.
func (r *Registry) Register(d Decoder, extensions ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range extensions {
		r.codecs[normalizeExt(ext)] = d
	}
}

// Get returns the decoder registered for ext.
func (r *Registry) Get(ext string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.codecs[normalizeExt(ext)]
	return d, ok
}

// ForPath returns the decoder matching the extension of path.
func (r *Registry) ForPath(path string) (Decoder, bool) {
	return r.Get(filepath.Ext(path))
}

// Supports reports whether path has a registered extension.
func (r *Registry) Supports(path string) bool {
	_, ok := r.ForPath(path)
	return ok
}

// Extensions lists the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		exts = append(exts, ext)
	}
	slices.Sort(exts)

	return exts
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
