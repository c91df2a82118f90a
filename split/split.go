// Package split partitions sections into train/validation/test ranges and
// fits normalization statistics on the train partition only. Partitioning is
// always by section ID membership, never by row index: rows of one section
// never straddle a split boundary.
package split

import (
	"github.com/strataml/strata/errors"
	"github.com/strataml/strata/frame"
)

// Partition identifies which split a section belongs to.
type Partition int

const (
	Train Partition = iota
	Val
	Test
)

// String returns the partition name.
func (p Partition) String() string {
	switch p {
	case Train:
		return "train"
	case Val:
		return "val"
	case Test:
		return "test"
	default:
		return "unknown"
	}
}

// Split is a disjoint, contiguous partition of the section-index domain:
// [0, TrainEnd) train, [TrainEnd, TestStart) validation, [TestStart, N) test.
type Split struct {
	TrainEnd  int `json:"train_end"`
	TestStart int `json:"test_start"`
	N         int `json:"n"`
}

// New validates the precondition 0 < trainEnd < testStart < n and returns
// the split. Violations are configuration errors reported before any
// computation proceeds.
func New(trainEnd, testStart, n int) (Split, error) {
	if trainEnd <= 0 || trainEnd >= testStart || testStart >= n {
		return Split{}, errors.NewConfigurationError(
			"split indices must satisfy 0 < train_end < test_start < n, got train_end=%d test_start=%d n=%d",
			trainEnd, testStart, n)
	}
	return Split{TrainEnd: trainEnd, TestStart: testStart, N: n}, nil
}

// Partition returns the partition containing section id.
func (s Split) Partition(id int) Partition {
	switch {
	case id < s.TrainEnd:
		return Train
	case id < s.TestStart:
		return Val
	default:
		return Test
	}
}

// Counts returns the number of sections in each partition.
func (s Split) Counts() (train, val, test int) {
	return s.TrainEnd, s.TestStart - s.TrainEnd, s.N - s.TestStart
}

// IDs returns the section IDs of one partition, ascending.
func (s Split) IDs(p Partition) []int {
	var lo, hi int
	switch p {
	case Train:
		lo, hi = 0, s.TrainEnd
	case Val:
		lo, hi = s.TrainEnd, s.TestStart
	default:
		lo, hi = s.TestStart, s.N
	}
	ids := make([]int, 0, hi-lo)
	for id := lo; id < hi; id++ {
		ids = append(ids, id)
	}
	return ids
}

// PartitionFrame splits frame rows into train/val/test by section ID
// membership.
func PartitionFrame(f *frame.Frame, s Split) (train, val, test []frame.Row) {
	for _, r := range f.Rows {
		switch s.Partition(r.SectionID) {
		case Train:
			train = append(train, r)
		case Val:
			val = append(val, r)
		default:
			test = append(test, r)
		}
	}
	return train, val, test
}

// GuardTrainOnly asserts that every row offered to a train-partition fit
// actually belongs to the train range. A violation is a programming defect
// in the pipeline, not an operational condition.
func GuardTrainOnly(s Split, rows []frame.Row) error {
	for _, r := range rows {
		if s.Partition(r.SectionID) != Train {
			return errors.NewLeakageGuardError(
				"scaler fit offered section %d, outside train range [0, %d)", r.SectionID, s.TrainEnd)
		}
	}
	return nil
}

// Matrices extracts feature and target matrices from rows in schema order.
func Matrices(rows []frame.Row) (x, y [][]float64) {
	x = make([][]float64, len(rows))
	y = make([][]float64, len(rows))
	for i, r := range rows {
		x[i] = r.Features()
		y[i] = r.Targets()
	}
	return x, y
}

// Tables is the tabular consumer handoff: feature/target matrices per
// partition.
type Tables struct {
	XTrain, YTrain [][]float64
	XVal, YVal     [][]float64
	XTest, YTest   [][]float64
}
