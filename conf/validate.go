package conf

import "github.com/strataml/strata/errors"

// Validate checks that the configuration is internally consistent. Every
// violation is a configuration error: detected before any generation work
// begins and always fatal.
func (c *Config) Validate() error {
	if err := c.Materials.validate(); err != nil {
		return err
	}
	if err := c.Sampling.validate(); err != nil {
		return err
	}

	if c.Load.Pressure <= 0 {
		return errors.NewConfigurationError("load.pressure must be > 0, got %f", c.Load.Pressure)
	}

	switch c.Filter.Mode {
	case FilterOff:
	case FilterMagnitude:
		if c.Filter.Threshold < 0 {
			return errors.NewConfigurationError("filter.threshold must be >= 0, got %f", c.Filter.Threshold)
		}
	default:
		return errors.NewConfigurationError("filter.mode must be %q or %q, got %q", FilterOff, FilterMagnitude, c.Filter.Mode)
	}

	switch c.Graph.Connectivity {
	case ConnectivityFull:
	case ConnectivityKNN:
		if c.Graph.K <= 0 {
			return errors.NewConfigurationError("graph.k must be > 0 for knn connectivity, got %d", c.Graph.K)
		}
	default:
		return errors.NewConfigurationError("graph.connectivity must be %q or %q, got %q", ConnectivityFull, ConnectivityKNN, c.Graph.Connectivity)
	}

	switch c.Graph.Metric {
	case MetricEuclidean:
	case MetricDepthWeighted:
		if c.Graph.DepthWeight <= 0 {
			return errors.NewConfigurationError("graph.depth_weight must be > 0, got %f", c.Graph.DepthWeight)
		}
	default:
		return errors.NewConfigurationError("graph.metric must be %q or %q, got %q", MetricEuclidean, MetricDepthWeighted, c.Graph.Metric)
	}

	// Workers: 0 = use runtime.NumCPU(), negative = invalid
	if c.Pipeline.Workers < 0 {
		return errors.NewConfigurationError("pipeline.workers must be >= 0, got %d", c.Pipeline.Workers)
	}

	return nil
}

func (m MaterialConfig) validate() error {
	n := len(m.Types)
	if n < 2 {
		return errors.NewConfigurationError("materials.types needs at least one finite layer and a subgrade, got %d entries", n)
	}
	if len(m.SublayerMax) != n {
		return errors.NewConfigurationError("materials.sublayer_max has %d entries, want %d (one per material)", len(m.SublayerMax), n)
	}
	// The subgrade is semi-infinite: thickness arrays cover finite materials only
	if len(m.ThicknessRange) != n-1 {
		return errors.NewConfigurationError("materials.thickness_range has %d entries, want %d (subgrade has no thickness)", len(m.ThicknessRange), n-1)
	}
	if len(m.ThicknessIncrement) != n-1 {
		return errors.NewConfigurationError("materials.thickness_increment has %d entries, want %d", len(m.ThicknessIncrement), n-1)
	}
	if len(m.ModulusRange) != n {
		return errors.NewConfigurationError("materials.modulus_range has %d entries, want %d", len(m.ModulusRange), n)
	}
	if len(m.ModulusIncrement) < n {
		return errors.NewConfigurationError("materials.modulus_increment has %d entries, want at least %d", len(m.ModulusIncrement), n)
	}
	if len(m.PoissonRange) != n {
		return errors.NewConfigurationError("materials.poisson_range has %d entries, want %d", len(m.PoissonRange), n)
	}

	for i, max := range m.SublayerMax {
		if max < 1 {
			return errors.NewConfigurationError("materials.sublayer_max[%d] must be >= 1, got %d", i, max)
		}
	}
	for i, r := range m.ThicknessRange {
		if len(r) != 2 || r[0] <= 0 || r[1] < r[0] {
			return errors.NewConfigurationError("materials.thickness_range[%d] must be [min, max] with 0 < min <= max, got %v", i, r)
		}
		if m.ThicknessIncrement[i] <= 0 {
			return errors.NewConfigurationError("materials.thickness_increment[%d] must be > 0, got %f", i, m.ThicknessIncrement[i])
		}
	}
	for i, r := range m.ModulusRange {
		if len(r) != 2 || r[0] <= 0 || r[1] < r[0] {
			return errors.NewConfigurationError("materials.modulus_range[%d] must be [min, max] with 0 < min <= max, got %v", i, r)
		}
		if m.ModulusIncrement[i] <= 0 {
			return errors.NewConfigurationError("materials.modulus_increment[%d] must be > 0, got %f", i, m.ModulusIncrement[i])
		}
	}
	for i, r := range m.PoissonRange {
		if len(r) != 2 || r[0] <= 0 || r[1] < r[0] || r[1] >= 0.5 {
			return errors.NewConfigurationError("materials.poisson_range[%d] must be [min, max] with 0 < min <= max < 0.5, got %v", i, r)
		}
	}

	return nil
}

func (s SamplingConfig) validate() error {
	if s.Sections <= 0 {
		return errors.NewConfigurationError("sampling.sections must be > 0, got %d", s.Sections)
	}
	// z grid needs at least surface, bottom of finite layers, and the
	// subgrade probe
	if s.ZPoints < 3 {
		return errors.NewConfigurationError("sampling.z_points must be >= 3, got %d", s.ZPoints)
	}
	if s.XPoints < 1 {
		return errors.NewConfigurationError("sampling.x_points must be >= 1, got %d", s.XPoints)
	}
	if s.APoints < 1 {
		return errors.NewConfigurationError("sampling.a_points must be >= 1, got %d", s.APoints)
	}
	if len(s.ARange) != 2 || s.ARange[0] <= 0 || s.ARange[1] < s.ARange[0] {
		return errors.NewConfigurationError("sampling.a_range must be [min, max] with 0 < min <= max, got %v", s.ARange)
	}
	if s.Factor <= 0 {
		return errors.NewConfigurationError("sampling.factor must be > 0, got %f", s.Factor)
	}

	// Split precondition: 0 < split_idx < test_idx < sections. Violations are
	// reported here, before any computation proceeds.
	if s.SplitIdx <= 0 || s.SplitIdx >= s.TestIdx || s.TestIdx >= s.Sections {
		return errors.NewConfigurationError(
			"split indices must satisfy 0 < split_idx < test_idx < sections, got split_idx=%d test_idx=%d sections=%d",
			s.SplitIdx, s.TestIdx, s.Sections)
	}

	return nil
}
