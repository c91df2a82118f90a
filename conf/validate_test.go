package conf

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataml/strata/errors"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	return cfg
}

func TestDefaultsValidate(t *testing.T) {
	cfg := defaultConfig(t)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1000, cfg.Sampling.Sections)
	assert.Equal(t, 140, cfg.Sampling.PointsPerSection())
	assert.Equal(t, 2, cfg.Materials.FiniteMaterials())
}

func TestValidateSplitIndices(t *testing.T) {
	tests := []struct {
		name     string
		splitIdx int
		testIdx  int
		sections int
		wantErr  bool
	}{
		{"canonical 800/900/1000", 800, 900, 1000, false},
		{"split at zero", 0, 900, 1000, true},
		{"split equals test", 900, 900, 1000, true},
		{"test equals sections", 800, 1000, 1000, true},
		{"inverted", 900, 800, 1000, true},
		{"tight but valid", 1, 2, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig(t)
			cfg.Sampling.SplitIdx = tt.splitIdx
			cfg.Sampling.TestIdx = tt.testIdx
			cfg.Sampling.Sections = tt.sections

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsConfigurationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMaterialArrayLengths(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Materials.SublayerMax = []int{1, 1} // 3 types want 3 entries
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))

	cfg = defaultConfig(t)
	cfg.Materials.ThicknessRange = [][]float64{{2, 16}} // want one per finite material
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsInvertedRanges(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Materials.ModulusRange[0] = []float64{2000, 500}
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig(t)
	cfg.Materials.PoissonRange[1] = []float64{0.2, 0.6} // Poisson must stay < 0.5
	assert.Error(t, cfg.Validate())
}

func TestValidateFilterAndGraphModes(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Filter.Mode = "fuzzy"
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig(t)
	cfg.Filter.Mode = FilterMagnitude
	cfg.Filter.Threshold = 2.0
	assert.NoError(t, cfg.Validate())

	cfg = defaultConfig(t)
	cfg.Graph.Connectivity = ConnectivityKNN
	cfg.Graph.K = 0
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig(t)
	cfg.Graph.Metric = MetricDepthWeighted
	cfg.Graph.DepthWeight = 2.5
	assert.NoError(t, cfg.Validate())
}

func TestValidateWorkers(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Pipeline.Workers = -1
	assert.Error(t, cfg.Validate())

	// 0 = use runtime.NumCPU()
	cfg.Pipeline.Workers = 0
	assert.NoError(t, cfg.Validate())
}
