package career

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes feature columns to zero mean and unit variance using
// population statistics. Constant columns keep a unit scale.
type Scaler struct {
	mean []float64
	std  []float64
}

// FitScaler learns per-column mean and standard deviation.
func FitScaler(rows [][]float64) (*Scaler, error) {
	if len(rows) == 0 {
		return nil, errors.New("scaler: no rows to fit")
	}

	width := len(rows[0])
	s := &Scaler{mean: make([]float64, width), std: make([]float64, width)}
	col := make([]float64, len(rows))

	for j := 0; j < width; j++ {
		for i, row := range rows {
			if len(row) != width {
				return nil, fmt.Errorf("scaler: row %d has %d features, want %d", i, len(row), width)
			}
			col[i] = row[j]
		}

		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		s.mean[j] = mean
		s.std[j] = std
	}

	return s, nil
}

// Transform returns a scaled copy of x.
func (s *Scaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for j := range x {
		out[j] = (x[j] - s.mean[j]) / s.std[j]
	}
	return out
}
