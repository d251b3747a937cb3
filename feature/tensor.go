// SPDX-License-Identifier: EPL-2.0

package feature

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"github.com/Nannigalaxy/audio-preprocessing/dataset"
)

// Tensor stacks one Coefficients × Frames matrix per record.
type Tensor struct {
	Coefficients int
	Frames       int
	Matrices     []*mat.Dense
}

// Shape is (records, coefficients, frames).
func (t Tensor) Shape() [3]int {
	return [3]int{len(t.Matrices), t.Coefficients, t.Frames}
}

// Flat lays the tensor out row-major: record, then coefficient, then
// frame.
func (t Tensor) Flat() []float64 {
	out := make([]float64, 0, len(t.Matrices)*t.Coefficients*t.Frames)
	for _, m := range t.Matrices {
		for i := range t.Coefficients {
			out = append(out, m.RawRowView(i)...)
		}
	}

	return out
}

// ExtractRecords extracts every record and returns the tensor with the
// parallel label vector.
func (e *Extractor) ExtractRecords(ctx context.Context, records []dataset.Record, workers int) (Tensor, []int, error) {
	waves := make([][]float64, len(records))
	labels := make([]int, len(records))
	for i, r := range records {
		waves[i] = r.Samples
		labels[i] = r.Label
	}

	matrices, err := e.ExtractAll(ctx, waves, workers)
	if err != nil {
		return Tensor{}, nil, err
	}

	return Tensor{
		Coefficients: e.cfg.Coefficients,
		Frames:       e.cfg.Frames,
		Matrices:     matrices,
	}, labels, nil
}
