// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/Nannigalaxy/audio-preprocessing/internal/audiotest"
)

type stubDecoder struct {
	name string
}

func (d *stubDecoder) Decode(io.Reader) (Source, error) {
	return audiotest.NewSilentSource(44100, 2, 100), nil
}

type failingDecoder struct{}

func (failingDecoder) Decode(io.Reader) (Source, error) {
	return nil, errors.New("decode failed")
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &stubDecoder{name: "wav"}
	registry.Register(decoder, "wav")

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed to retrieve registered decoder")
	}
	if got != decoder {
		t.Error("Registry.Get() returned different decoder instance")
	}
}

func TestRegistry_ExtensionNormalization(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &stubDecoder{name: "ogg"}
	registry.Register(decoder, ".OGG", "oga")

	tests := []struct {
		ext  string
		want bool
	}{
		{"ogg", true},
		{".ogg", true},
		{"OGG", true},
		{".Oga", true},
		{"mp3", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			t.Parallel()

			_, ok := registry.Get(tt.ext)
			if ok != tt.want {
				t.Errorf("Registry.Get(%q) ok = %v, want %v", tt.ext, ok, tt.want)
			}
		})
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wavDecoder := &stubDecoder{name: "wav"}
	mp3Decoder := &stubDecoder{name: "mp3"}
	registry.Register(wavDecoder, "wav")
	registry.Register(mp3Decoder, "mp3")

	tests := []struct {
		path string
		want Decoder
	}{
		{"data/yes/a.wav", wavDecoder},
		{"data/yes/B.WAV", wavDecoder},
		{"clip.mp3", mp3Decoder},
		{"notes.txt", nil},
		{"noext", nil},
	}

	for _, tt := range tests {
		got, ok := registry.ForPath(tt.path)
		if tt.want == nil {
			if ok || registry.Supports(tt.path) {
				t.Errorf("ForPath(%q) matched unexpectedly", tt.path)
			}
			continue
		}
		if !ok || got != tt.want {
			t.Errorf("ForPath(%q) = %v, %v", tt.path, got, ok)
		}
		if !registry.Supports(tt.path) {
			t.Errorf("Supports(%q) = false", tt.path)
		}
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	first := &stubDecoder{name: "first"}
	second := &stubDecoder{name: "second"}

	registry.Register(first, "wav")
	registry.Register(second, "wav")

	got, _ := registry.Get("wav")
	if got != second {
		t.Error("Registry.Register() did not overwrite previous decoder")
	}
}

func TestRegistry_Extensions(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	if got := registry.Extensions(); len(got) != 0 {
		t.Fatalf("empty registry Extensions() = %v", got)
	}

	registry.Register(&stubDecoder{}, "wav", "aiff", "aif")
	registry.Register(failingDecoder{}, "mp3")

	want := []string{"aif", "aiff", "mp3", "wav"}
	if got := registry.Extensions(); !slices.Equal(got, want) {
		t.Errorf("Extensions() = %v, want %v", got, want)
	}
}

func TestRegistry_FailingDecoder(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register(failingDecoder{}, "bad")

	decoder, ok := registry.Get("bad")
	if !ok {
		t.Fatal("failing decoder not registered")
	}
	if _, err := decoder.Decode(nil); err == nil {
		t.Error("Decode() error = nil, want failure")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	exts := []string{"wav", "mp3", "ogg", "aiff"}

	var wg sync.WaitGroup
	for i := range 64 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			ext := exts[i%len(exts)]
			registry.Register(&stubDecoder{name: ext}, ext)
			registry.Get(ext)
			registry.Extensions()
		}(i)
	}
	wg.Wait()

	if got := len(registry.Extensions()); got != len(exts) {
		t.Errorf("len(Extensions()) = %d, want %d", got, len(exts))
	}
}

func BenchmarkRegistry_ForPath(b *testing.B) {
	registry := NewRegistry()
	registry.Register(&stubDecoder{}, "wav", "mp3", "ogg")

	b.ResetTimer()
	for b.Loop() {
		registry.ForPath("data/yes/clip.ogg")
	}
}
