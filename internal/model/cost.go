package model

// NetBudget returns the budget left after overhead.
func NetBudget(cfg Config) float64 {
	return cfg.GrossBudget * (1 - cfg.OverheadFraction)
}

// ExpectedCostFromStage returns the expected cost of one project entering at
// stages[entryIdx], including the probabilistic conversion into later
// stages: cost(i) = stage_cost(i) + conv(i) * cost(i+1), with the terminal
// stage contributing its own cost only. Entry past the last stage, or at a
// stage the archetype does not define, costs nothing.
func ExpectedCostFromStage(arch Archetype, stages []string, convRates map[string]float64, entryIdx int) float64 {
	if entryIdx >= len(stages) {
		return 0
	}
	name := stages[entryIdx]
	sp, ok := arch.Stages[name]
	if !ok {
		return 0
	}
	cost := sp.Cost
	if entryIdx < len(stages)-1 {
		if conv := convRates[name]; conv > 0 {
			cost += conv * ExpectedCostFromStage(arch, stages, convRates, entryIdx+1)
		}
	}
	return cost
}

// WeightedCostPerProject returns the portfolio-weighted expected cost of a
// single new project across all entry points and archetypes. Zero when there
// are no archetypes or all mixes are zero; callers guard division by it.
func WeightedCostPerProject(cfg Config) float64 {
	total := 0.0
	for _, arch := range cfg.Archetypes {
		archCost := 0.0
		for i, name := range cfg.PipelineStages {
			mix := cfg.StageMix[name]
			if mix <= 0 {
				continue
			}
			if _, ok := arch.Stages[name]; !ok {
				continue
			}
			archCost += mix * ExpectedCostFromStage(arch, cfg.PipelineStages, cfg.ConversionRates, i)
		}
		total += arch.PortfolioShare * archCost
	}
	return total
}

// ProjectsPerYear converts the net budget into a yearly project volume.
// A non-positive weighted cost yields 0, a defined degenerate case rather
// than an error.
func ProjectsPerYear(cfg Config) float64 {
	wc := WeightedCostPerProject(cfg)
	if wc <= 0 {
		return 0
	}
	return NetBudget(cfg) / wc
}
