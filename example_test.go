// SPDX-License-Identifier: EPL-2.0

package preprocess_test

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	preprocess "github.com/Nannigalaxy/audio-preprocessing"
	"github.com/Nannigalaxy/audio-preprocessing/config"
	"github.com/Nannigalaxy/audio-preprocessing/internal/audiotest"
)

// Example_prepare prepares a tiny in-memory dataset: one recording per
// class and one second of noise, cut into half-second examples.
func Example_prepare() {
	fsys := afero.NewMemMapFs()
	files := map[string][]float64{
		"data/.background/noise.wav": audiotest.Noise(1, 8000, 0.2),
		"data/yes/a.wav":             audiotest.Sine(8000, 3000, 440, 0.5),
		"data/no/a.wav":              audiotest.Sine(8000, 5000, 220, 0.5),
	}
	for path, w := range files {
		_ = fsys.MkdirAll(filepath.Dir(path), 0o755)
		_ = afero.WriteFile(fsys, path, audiotest.MonoWAV(8000, w), 0o644)
	}

	v := config.New(afero.NewMemMapFs(), "")
	v.Set("sample_rate", 8000)
	v.Set("duration_seconds", 0.5)
	cfg, err := config.Load(v)
	if err != nil {
		fmt.Printf("config error: %v\n", err)
		return
	}

	report, err := preprocess.Prepare(context.Background(), cfg, preprocess.Options{Fs: fsys})
	if err != nil {
		fmt.Printf("prepare error: %v\n", err)
		return
	}

	fmt.Println("shape:", report.Result.Tensor.Shape())
	for _, s := range report.Result.Summary() {
		fmt.Printf("%d %s: %d originals, %d augmented\n", s.Label, s.Class, s.Originals, s.Augmented)
	}
	// Output:
	// shape: [12 20 35]
	// 0 background: 2 originals, 4 augmented
	// 1 no: 1 originals, 2 augmented
	// 2 yes: 1 originals, 2 augmented
}
