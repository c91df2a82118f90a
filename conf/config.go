// Package conf holds the strata pipeline configuration: material parameter
// grids, sampling counts, split indices, filtering, graph connectivity, and
// runtime settings. Configuration is loaded once via Viper and passed into
// components explicitly; no component reads ambient global state.
package conf

// Config is the root configuration for the strata pipeline.
type Config struct {
	Database  DatabaseConfig `mapstructure:"database"`
	Materials MaterialConfig `mapstructure:"materials"`
	Sampling  SamplingConfig `mapstructure:"sampling"`
	Load      LoadConfig     `mapstructure:"load"`
	Filter    FilterConfig   `mapstructure:"filter"`
	Graph     GraphConfig    `mapstructure:"graph"`
	Pipeline  PipelineConfig `mapstructure:"pipeline"`
}

// DatabaseConfig holds artifact database settings.
type DatabaseConfig struct {
	// Path to the SQLite artifact database
	Path string `mapstructure:"path"`
}

// MaterialConfig describes the constrained parameter grid for each pavement
// material, ordered top-to-bottom. The last material is the semi-infinite
// subgrade: it has no thickness range, but it does have modulus and Poisson
// ranges.
type MaterialConfig struct {
	// Types names the materials top-to-bottom, e.g. ["AC", "B", "SG"]
	Types []string `mapstructure:"types"`

	// SublayerMax caps how many sublayers each material may be split into
	SublayerMax []int `mapstructure:"sublayer_max"`

	// ThicknessRange holds [min, max] thickness in inches per finite
	// material (one entry fewer than Types: the subgrade is semi-infinite)
	ThicknessRange [][]float64 `mapstructure:"thickness_range"`

	// ThicknessIncrement is the sampling grid step per finite material
	ThicknessIncrement []float64 `mapstructure:"thickness_increment"`

	// ModulusRange holds [min, max] modulus in ksi per material
	ModulusRange [][]float64 `mapstructure:"modulus_range"`

	// ModulusIncrement is the modulus sampling grid step per material
	ModulusIncrement []float64 `mapstructure:"modulus_increment"`

	// PoissonRange holds [min, max] Poisson ratio per material
	PoissonRange [][]float64 `mapstructure:"poisson_range"`
}

// FiniteMaterials returns the number of materials above the subgrade.
func (m MaterialConfig) FiniteMaterials() int {
	if len(m.Types) == 0 {
		return 0
	}
	return len(m.Types) - 1
}

// SamplingConfig controls structure enumeration and query point layout.
type SamplingConfig struct {
	// Sections is the number of structures to generate (the split domain)
	Sections int `mapstructure:"sections"`

	// ZPoints is the number of query depths per section
	ZPoints int `mapstructure:"z_points"`

	// XPoints is the number of radial offsets per depth
	XPoints int `mapstructure:"x_points"`

	// ARange is the [min, max] contact radius in inches
	ARange []float64 `mapstructure:"a_range"`

	// APoints is how many contact radii to analyze across ARange
	APoints int `mapstructure:"a_points"`

	// Factor scales the radial spacing between offsets, in contact radii
	Factor float64 `mapstructure:"factor"`

	// SplitIdx is the first validation section index
	SplitIdx int `mapstructure:"split_idx"`

	// TestIdx is the first test section index
	TestIdx int `mapstructure:"test_idx"`

	// Seed drives deterministic structure sampling
	Seed int64 `mapstructure:"seed"`
}

// PointsPerSection returns the fixed query point count every section
// produces: ZPoints x XPoints x APoints.
func (s SamplingConfig) PointsPerSection() int {
	return s.ZPoints * s.XPoints * s.APoints
}

// LoadConfig describes the surface load applied to every section.
type LoadConfig struct {
	// Pressure is the uniform contact pressure in psi
	Pressure float64 `mapstructure:"pressure"`
}

// Filter modes recognized by FilterConfig.Mode.
const (
	FilterOff       = "off"
	FilterMagnitude = "magnitude"
)

// FilterConfig controls per-row response filtering in the assembler.
type FilterConfig struct {
	// Mode selects the filter: "off" keeps every row, "magnitude" drops rows
	// whose largest absolute strain falls below Threshold
	Mode string `mapstructure:"mode"`

	// Threshold is the microstrain magnitude floor for "magnitude" mode
	Threshold float64 `mapstructure:"threshold"`
}

// Graph connectivity and metric options.
const (
	ConnectivityFull = "full"
	ConnectivityKNN  = "knn"

	MetricEuclidean     = "euclidean"
	MetricDepthWeighted = "depth_weighted"
)

// GraphConfig controls per-section graph construction.
type GraphConfig struct {
	// Connectivity selects edge construction: "full" or "knn"
	Connectivity string `mapstructure:"connectivity"`

	// K is the neighbor count for "knn" connectivity
	K int `mapstructure:"k"`

	// Metric selects the edge distance: "euclidean" or "depth_weighted"
	Metric string `mapstructure:"metric"`

	// DepthWeight scales the z component for "depth_weighted" distance
	DepthWeight float64 `mapstructure:"depth_weight"`
}

// PipelineConfig holds runtime settings for pipeline execution.
type PipelineConfig struct {
	// Workers sizes the per-section worker pool; 0 means runtime.NumCPU()
	Workers int `mapstructure:"workers"`
}
