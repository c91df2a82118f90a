package section

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/strataml/strata/conf"
	"github.com/strataml/strata/errors"
)

// Sampler enumerates physically valid sections from the configured material
// grid. Sampling is driven by a single seeded source, so the same seed and
// configuration always yield an identical section sequence. This determinism
// is what makes cached artifacts and reproducible splits possible.
type Sampler struct {
	materials conf.MaterialConfig
	seed      int64
	logger    *zap.SugaredLogger
}

// NewSampler validates the material grid and returns a sampler.
func NewSampler(materials conf.MaterialConfig, seed int64, logger *zap.SugaredLogger) (*Sampler, error) {
	if len(materials.Types) < 2 {
		return nil, errors.NewConfigurationError("sampler needs at least one finite material and a subgrade")
	}
	return &Sampler{
		materials: materials,
		seed:      seed,
		logger:    logger.Named("section.sampler"),
	}, nil
}

// Sample produces n sections with IDs 0..n-1 in deterministic seeded order.
// Every layer respects its material's range, increment alignment, and
// sublayer ceiling; a violation here would be a generation defect, so there
// is no per-layer error path.
func (s *Sampler) Sample(n int) ([]Section, error) {
	if n <= 0 {
		return nil, errors.NewConfigurationError("section count must be > 0, got %d", n)
	}

	rng := rand.New(rand.NewSource(s.seed))
	sections := make([]Section, n)
	for id := 0; id < n; id++ {
		sections[id] = s.sampleOne(id, rng)
	}

	s.logger.Infow("Sampled sections",
		"count", n,
		"seed", s.seed,
	)
	return sections, nil
}

// sampleOne draws a single section. Finite materials get 1..SublayerMax
// sublayers with increment-aligned thickness and modulus; the subgrade gets
// zero thickness and its own modulus/Poisson draw.
func (s *Sampler) sampleOne(id int, rng *rand.Rand) Section {
	m := s.materials
	var layers []Layer

	for i := 0; i < m.FiniteMaterials(); i++ {
		sublayers := 1 + rng.Intn(m.SublayerMax[i])
		for sub := 0; sub < sublayers; sub++ {
			layers = append(layers, Layer{
				Material:  m.Types[i],
				Sublayer:  sub,
				Thickness: gridDraw(rng, m.ThicknessRange[i], m.ThicknessIncrement[i]),
				Modulus:   gridDraw(rng, m.ModulusRange[i], m.ModulusIncrement[i]),
				Poisson:   uniformDraw(rng, m.PoissonRange[i]),
			})
		}
	}

	// Terminal semi-infinite subgrade
	last := len(m.Types) - 1
	layers = append(layers, Layer{
		Material: m.Types[last],
		Sublayer: 0,
		Modulus:  gridDraw(rng, m.ModulusRange[last], m.ModulusIncrement[last]),
		Poisson:  uniformDraw(rng, m.PoissonRange[last]),
	})

	return Section{ID: id, Layers: layers}
}

// gridDraw picks an increment-aligned value from [r[0], r[1]].
func gridDraw(rng *rand.Rand, r []float64, inc float64) float64 {
	steps := int((r[1]-r[0])/inc) + 1
	return r[0] + inc*float64(rng.Intn(steps))
}

// uniformDraw picks a continuous value from [r[0], r[1]).
func uniformDraw(rng *rand.Rand, r []float64) float64 {
	return r[0] + rng.Float64()*(r[1]-r[0])
}
