package split

import (
	"math"

	"github.com/strataml/strata/errors"
)

// Scaler normalizes per-column feature/target matrices. Fit is called once
// with train rows; Transform and InverseTransform are then pure functions of
// the fitted parameters, so applying them to val/test rows cannot leak.
type Scaler interface {
	Fit(rows [][]float64) error
	Transform(rows [][]float64) ([][]float64, error)
	InverseTransform(rows [][]float64) ([][]float64, error)
}

// MinMaxScaler rescales each column to [0, 1] using train-fitted min/max.
// Constant columns map to 0.
type MinMaxScaler struct {
	Min []float64 `json:"min"`
	Max []float64 `json:"max"`
}

// Fit computes per-column min/max over the given rows.
func (s *MinMaxScaler) Fit(rows [][]float64) error {
	if len(rows) == 0 {
		return errors.Newf("cannot fit scaler on zero rows")
	}
	cols := len(rows[0])
	s.Min = make([]float64, cols)
	s.Max = make([]float64, cols)
	for j := 0; j < cols; j++ {
		s.Min[j] = math.Inf(1)
		s.Max[j] = math.Inf(-1)
	}
	for _, r := range rows {
		if len(r) != cols {
			return errors.Newf("ragged row: %d columns, want %d", len(r), cols)
		}
		for j, v := range r {
			s.Min[j] = math.Min(s.Min[j], v)
			s.Max[j] = math.Max(s.Max[j], v)
		}
	}
	return nil
}

// Transform rescales rows with the fitted parameters.
func (s *MinMaxScaler) Transform(rows [][]float64) ([][]float64, error) {
	if s.Min == nil {
		return nil, errors.Newf("scaler not fitted")
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		if len(r) != len(s.Min) {
			return nil, errors.Newf("row has %d columns, scaler fitted on %d", len(r), len(s.Min))
		}
		o := make([]float64, len(r))
		for j, v := range r {
			span := s.Max[j] - s.Min[j]
			if span == 0 {
				o[j] = 0
				continue
			}
			o[j] = (v - s.Min[j]) / span
		}
		out[i] = o
	}
	return out, nil
}

// InverseTransform maps normalized rows back to the original scale.
func (s *MinMaxScaler) InverseTransform(rows [][]float64) ([][]float64, error) {
	if s.Min == nil {
		return nil, errors.Newf("scaler not fitted")
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		if len(r) != len(s.Min) {
			return nil, errors.Newf("row has %d columns, scaler fitted on %d", len(r), len(s.Min))
		}
		o := make([]float64, len(r))
		for j, v := range r {
			o[j] = v*(s.Max[j]-s.Min[j]) + s.Min[j]
		}
		out[i] = o
	}
	return out, nil
}

// StandardScaler standardizes each column to zero mean and unit variance
// using train-fitted statistics. Constant columns map to 0.
type StandardScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// Fit computes per-column mean and population standard deviation.
func (s *StandardScaler) Fit(rows [][]float64) error {
	if len(rows) == 0 {
		return errors.Newf("cannot fit scaler on zero rows")
	}
	cols := len(rows[0])
	s.Mean = make([]float64, cols)
	s.Std = make([]float64, cols)

	for _, r := range rows {
		if len(r) != cols {
			return errors.Newf("ragged row: %d columns, want %d", len(r), cols)
		}
		for j, v := range r {
			s.Mean[j] += v
		}
	}
	n := float64(len(rows))
	for j := range s.Mean {
		s.Mean[j] /= n
	}
	for _, r := range rows {
		for j, v := range r {
			d := v - s.Mean[j]
			s.Std[j] += d * d
		}
	}
	for j := range s.Std {
		s.Std[j] = math.Sqrt(s.Std[j] / n)
	}
	return nil
}

// Transform standardizes rows with the fitted parameters.
func (s *StandardScaler) Transform(rows [][]float64) ([][]float64, error) {
	if s.Mean == nil {
		return nil, errors.Newf("scaler not fitted")
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		if len(r) != len(s.Mean) {
			return nil, errors.Newf("row has %d columns, scaler fitted on %d", len(r), len(s.Mean))
		}
		o := make([]float64, len(r))
		for j, v := range r {
			if s.Std[j] == 0 {
				o[j] = 0
				continue
			}
			o[j] = (v - s.Mean[j]) / s.Std[j]
		}
		out[i] = o
	}
	return out, nil
}

// InverseTransform maps standardized rows back to the original scale.
func (s *StandardScaler) InverseTransform(rows [][]float64) ([][]float64, error) {
	if s.Mean == nil {
		return nil, errors.Newf("scaler not fitted")
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		if len(r) != len(s.Mean) {
			return nil, errors.Newf("row has %d columns, scaler fitted on %d", len(r), len(s.Mean))
		}
		o := make([]float64, len(r))
		for j, v := range r {
			o[j] = v*s.Std[j] + s.Mean[j]
		}
		out[i] = o
	}
	return out, nil
}
