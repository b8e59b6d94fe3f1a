package model

// Tail computes how many months beyond the last intake year the grid must
// extend: the longest total stage duration of any archetype, so its final
// cohorts can run to completion inside the grid.
func Tail(cfg Config) int {
	tail := 0
	for _, arch := range cfg.Archetypes {
		dur := 0
		for _, name := range cfg.PipelineStages {
			if sp, ok := arch.Stages[name]; ok {
				dur += sp.DurationMonths
			}
		}
		if dur > tail {
			tail = dur
		}
	}
	return tail
}

// Run executes the full forecast: budget to volume, per-archetype stage
// pipeline, annual aggregation and steady-state extraction. It is a pure
// function of the configuration; every invocation rebuilds all state from
// scratch, so concurrent runs with separate configs need no coordination.
func Run(cfg Config) Result {
	totalProjects := ProjectsPerYear(cfg)

	ix := NewMonthIndex(cfg.StartYear, cfg.EndYear, Tail(cfg))

	// Floor-clamp utilization so the gross-headcount division can't blow up.
	utilization := cfg.UtilizationRate
	if utilization < 0.01 {
		utilization = 0.01
	}

	records := make([]MonthlyRecord, 0)
	for _, arch := range cfg.Archetypes {
		runArchetype(cfg, arch, totalProjects*arch.PortfolioShare, ix, utilization, &records)
	}

	avg, min, max := SteadyState(records, cfg)

	return Result{
		Monthly:         records,
		Annual:          BuildAnnualSummary(records, cfg),
		ProjectsPerYear: totalProjects,
		SteadyStateAvg:  avg,
		SteadyStateMin:  min,
		SteadyStateMax:  max,
	}
}
