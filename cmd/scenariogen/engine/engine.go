package engine

import (
	"fmt"
	"fteplan/internal/config"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

type GeneratorConfig struct {
	Shape string // "balanced", "topheavy" or "lean"
	Count int
	Seed  int64
}

// Generate produces randomized variations of the baseline portfolio. Each
// shape biases the assumptions a different way:
//
//	balanced - jitter around the baseline, mix and budget roughly as-is
//	topheavy - most of the budget parked in the late stage, low conversion
//	lean     - smaller budget, shorter stages, aggressive conversion
func Generate(cfg GeneratorConfig) ([]*config.Scenario, error) {
	if cfg.Count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", cfg.Count)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	scenarios := make([]*config.Scenario, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		sc := config.Baseline()
		sc.Name = fmt.Sprintf("%s-%02d", cfg.Shape, i+1)
		sc.Description = fmt.Sprintf("Generated %s variation of the baseline portfolio (seed %d).", cfg.Shape, seed)

		early := sc.Model.PipelineStages[0]
		late := sc.Model.PipelineStages[1]

		switch cfg.Shape {
		case "topheavy":
			lateShare := 0.85 + rng.Float64()*0.10 // 0.85 - 0.95
			sc.Model.StageMix[early] = 1.0 - lateShare
			sc.Model.StageMix[late] = lateShare
			sc.Model.ConversionRates[early] = 0.20 + rng.Float64()*0.15
			sc.Model.GrossBudget *= 1.0 + rng.Float64()*0.5
		case "lean":
			sc.Model.GrossBudget *= 0.4 + rng.Float64()*0.3
			sc.Model.ConversionRates[early] = 0.60 + rng.Float64()*0.30
			sc.Model.IntakeMonths = 3 + rng.Intn(4)
			for a := range sc.Model.Archetypes {
				for name, params := range sc.Model.Archetypes[a].Stages {
					if params.DurationMonths > 3 {
						params.DurationMonths -= rng.Intn(3)
					}
					sc.Model.Archetypes[a].Stages[name] = params
				}
			}
		case "balanced":
			sc.Model.GrossBudget *= 0.9 + rng.Float64()*0.2
			sc.Model.UtilizationRate = 0.8 + rng.Float64()*0.2
			sc.Model.RampMonths = rng.Intn(4)
		default:
			return nil, fmt.Errorf("unknown shape %q", cfg.Shape)
		}

		if err := config.ValidateScenario(sc); err != nil {
			return nil, fmt.Errorf("generated scenario %s is invalid: %w", sc.Name, err)
		}
		scenarios = append(scenarios, sc)
	}

	return scenarios, nil
}

func Save(outDir string, scenarios []*config.Scenario) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	for _, sc := range scenarios {
		path := filepath.Join(outDir, fmt.Sprintf("%s.yaml", sc.Name))
		if err := config.SaveScenario(path, sc); err != nil {
			return err
		}
	}
	return nil
}
