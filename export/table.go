// SPDX-License-Identifier: EPL-2.0

package export

import (
	"fmt"
	"io"
	"strings"

	parquet "github.com/parquet-go/parquet-go"

	"github.com/Nannigalaxy/audio-preprocessing/pipeline"
)

// Row is one record of the feature table. Features holds the
// Coefficients × Frames matrix row-major.
type Row struct {
	ID               string    `parquet:"id"`
	Source           string    `parquet:"source"`
	Class            string    `parquet:"class"`
	Label            int32     `parquet:"label"`
	Variant          int32     `parquet:"variant"`
	Transform        string    `parquet:"transform"`
	Factor           float64   `parquet:"factor"`
	Direction        string    `parquet:"direction"`
	ShiftSamples     int32     `parquet:"shift_samples"`
	BackgroundGain   float64   `parquet:"background_gain"`
	VoiceGain        float64   `parquet:"voice_gain"`
	BackgroundClip   string    `parquet:"background_clip"`
	BackgroundOffset int64     `parquet:"background_offset"`
	Coefficients     int32     `parquet:"coefficients"`
	Frames           int32     `parquet:"frames"`
	Features         []float32 `parquet:"features"`
}

// Rows pairs every record of res with its feature matrix.
func Rows(res *pipeline.Result) ([]Row, error) {
	if len(res.Records) != len(res.Tensor.Matrices) {
		return nil, fmt.Errorf("%w: %d records, %d matrices", ErrShapeMismatch, len(res.Records), len(res.Tensor.Matrices))
	}

	rows := make([]Row, len(res.Records))
	for i, rec := range res.Records {
		m := res.Tensor.Matrices[i]
		features := make([]float32, 0, res.Tensor.Coefficients*res.Tensor.Frames)
		for c := range res.Tensor.Coefficients {
			for _, v := range m.RawRowView(c) {
				features = append(features, float32(v))
			}
		}

		row := Row{
			ID:           rec.ID.String(),
			Source:       rec.Source,
			Class:        rec.Class,
			Label:        int32(rec.Label),
			Variant:      int32(rec.Variant),
			Coefficients: int32(res.Tensor.Coefficients),
			Frames:       int32(res.Tensor.Frames),
			Features:     features,
		}
		if a := rec.Augmentation; a != nil {
			row.Transform = a.Transform
			row.Factor = a.Factor
			row.Direction = a.Direction
			row.ShiftSamples = int32(a.ShiftSamples)
			row.BackgroundGain = a.BackgroundGain
			row.VoiceGain = a.VoiceGain
			row.BackgroundClip = a.BackgroundClip
			row.BackgroundOffset = int64(a.BackgroundOffset)
		}
		rows[i] = row
	}

	return rows, nil
}

// Compression maps a codec name to a writer option. An empty name means
// snappy.
func Compression(name string) (parquet.WriterOption, error) {
	switch strings.ToLower(name) {
	case "", "snappy":
		return parquet.Compression(&parquet.Snappy), nil
	case "zstd":
		return parquet.Compression(&parquet.Zstd), nil
	case "gzip", "gz":
		return parquet.Compression(&parquet.Gzip), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
}

// WriteParquet writes rows to w as a single Parquet file.
func WriteParquet(w io.Writer, rows []Row, compression string) error {
	codec, err := Compression(compression)
	if err != nil {
		return err
	}

	pw := parquet.NewGenericWriter[Row](w, codec)
	if _, err := pw.Write(rows); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}

	return pw.Close()
}
