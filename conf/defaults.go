package conf

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options.
// The material and sampling defaults reproduce the standard three-material
// pavement grid: asphalt concrete (AC) over base (B) over subgrade (SG).
func SetDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", "strata.db")

	// Material grid defaults
	v.SetDefault("materials.types", []string{"AC", "B", "SG"})
	v.SetDefault("materials.sublayer_max", []int{1, 1, 1})
	v.SetDefault("materials.thickness_range", [][]float64{{2, 16}, {4, 20}}) // inches
	v.SetDefault("materials.thickness_increment", []float64{1, 2})
	v.SetDefault("materials.modulus_range", [][]float64{{500, 2000}, {50, 300}, {5, 50}}) // ksi
	v.SetDefault("materials.modulus_increment", []float64{50, 20, 5})
	v.SetDefault("materials.poisson_range", [][]float64{{0.3, 0.4}, {0.2, 0.499}, {0.2, 0.499}})

	// Sampling defaults
	v.SetDefault("sampling.sections", 1000)
	v.SetDefault("sampling.z_points", 14)
	v.SetDefault("sampling.x_points", 10)
	v.SetDefault("sampling.a_range", []float64{4, 4}) // contact radius (in)
	v.SetDefault("sampling.a_points", 1)
	v.SetDefault("sampling.factor", 0.4) // radial spacing in contact radii
	v.SetDefault("sampling.split_idx", 800)
	v.SetDefault("sampling.test_idx", 900)
	v.SetDefault("sampling.seed", 42)

	// Surface load defaults
	v.SetDefault("load.pressure", 100.0) // psi

	// Response filter defaults
	v.SetDefault("filter.mode", FilterOff)
	v.SetDefault("filter.threshold", 2.0) // microstrain floor when enabled

	// Graph construction defaults
	v.SetDefault("graph.connectivity", ConnectivityFull)
	v.SetDefault("graph.k", 8)
	v.SetDefault("graph.metric", MetricEuclidean)
	v.SetDefault("graph.depth_weight", 1.0)

	// Pipeline defaults
	v.SetDefault("pipeline.workers", 0) // 0 = runtime.NumCPU()
}
