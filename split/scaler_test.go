package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainRows() [][]float64 {
	return [][]float64{
		{0, 10, 5},
		{2, 20, 5},
		{4, 30, 5},
		{6, 40, 5},
	}
}

func TestMinMaxRoundTrip(t *testing.T) {
	s := &MinMaxScaler{}
	require.NoError(t, s.Fit(trainRows()))

	assert.Equal(t, []float64{0, 10, 5}, s.Min)
	assert.Equal(t, []float64{6, 40, 5}, s.Max)

	scaled, err := s.Transform(trainRows())
	require.NoError(t, err)
	for _, r := range scaled {
		for _, v := range r {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}

	back, err := s.InverseTransform(scaled)
	require.NoError(t, err)
	for i, r := range back {
		for j, v := range r {
			assert.InDelta(t, trainRows()[i][j], v, 1e-9)
		}
	}
}

func TestStandardRoundTrip(t *testing.T) {
	s := &StandardScaler{}
	require.NoError(t, s.Fit(trainRows()))

	scaled, err := s.Transform(trainRows())
	require.NoError(t, err)

	// Standardized columns have zero mean
	for j := 0; j < 3; j++ {
		var sum float64
		for _, r := range scaled {
			sum += r[j]
		}
		assert.InDelta(t, 0, sum/float64(len(scaled)), 1e-9)
	}

	back, err := s.InverseTransform(scaled)
	require.NoError(t, err)
	for i, r := range back {
		for j, v := range r {
			assert.InDelta(t, trainRows()[i][j], v, 1e-9)
		}
	}
}

// TestTransformIsPureFunctionOfTrainFit is the no-leakage property: a
// validation row equal to a known train row transforms to exactly the value
// the train fit produced for that row.
func TestTransformIsPureFunctionOfTrainFit(t *testing.T) {
	for _, scaler := range []Scaler{&MinMaxScaler{}, &StandardScaler{}} {
		require.NoError(t, scaler.Fit(trainRows()))

		trainScaled, err := scaler.Transform(trainRows())
		require.NoError(t, err)

		// A "validation" row identical to train row 2
		valScaled, err := scaler.Transform([][]float64{trainRows()[2]})
		require.NoError(t, err)

		assert.Equal(t, trainScaled[2], valScaled[0])
	}
}

func TestConstantColumnsMapToZero(t *testing.T) {
	mm := &MinMaxScaler{}
	require.NoError(t, mm.Fit(trainRows()))
	scaled, err := mm.Transform(trainRows())
	require.NoError(t, err)
	for _, r := range scaled {
		assert.Equal(t, 0.0, r[2])
	}

	std := &StandardScaler{}
	require.NoError(t, std.Fit(trainRows()))
	scaled, err = std.Transform(trainRows())
	require.NoError(t, err)
	for _, r := range scaled {
		assert.Equal(t, 0.0, r[2])
	}
}

func TestScalerErrors(t *testing.T) {
	s := &MinMaxScaler{}
	_, err := s.Transform(trainRows())
	assert.Error(t, err, "transform before fit")

	assert.Error(t, s.Fit(nil))

	require.NoError(t, s.Fit(trainRows()))
	_, err = s.Transform([][]float64{{1, 2}})
	assert.Error(t, err, "column count mismatch")

	assert.Error(t, s.Fit([][]float64{{1, 2, 3}, {1, 2}}), "ragged rows")
}
