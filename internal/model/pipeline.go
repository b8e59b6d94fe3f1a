package model

// runArchetype drives one archetype's yearly project volume through the
// ordered stages, appending one record per stage and month with a
// non-negligible active count. Each stage's starts are the even intake
// spread plus the converted completions of the previous stage; completions
// land exactly duration months after their starts and feed the next stage.
func runArchetype(cfg Config, arch Archetype, archProjects float64, ix MonthIndex, utilization float64, records *[]MonthlyRecord) {
	var prevCompletions []float64

	for i, name := range cfg.PipelineStages {
		sp, ok := arch.Stages[name]
		if !ok {
			// A stage gap breaks the conversion chain: completions from the
			// prior stage are discarded, not carried past the gap.
			prevCompletions = nil
			continue
		}

		starts := ix.NewSeries()

		directN := archProjects * cfg.StageMix[name]
		if directN > 0 {
			intake := cfg.IntakeMonths
			if intake < 1 {
				intake = 1
			}
			monthlyN := directN / float64(intake)
			for y := cfg.StartYear; y <= cfg.EndYear; y++ {
				for m := 1; m <= intake; m++ {
					if off, in := ix.Offset(y, m); in {
						starts[off] += monthlyN
					}
				}
			}
		}

		if prevCompletions != nil && i > 0 {
			if conv := cfg.ConversionRates[cfg.PipelineStages[i-1]]; conv > 0 {
				for m, n := range prevCompletions {
					starts[m] += n * conv
				}
			}
		}

		active := ActiveStock(starts, sp.DurationMonths, ix, cfg.RampMonths)
		prevCompletions = Completions(starts, sp.DurationMonths, ix)

		for off, n := range active {
			if n < negligible {
				continue
			}
			fteR := n * sp.FTEResearch / utilization
			fteD := n * sp.FTEDeveloper / utilization
			*records = append(*records, MonthlyRecord{
				Year:              ix.YearOf(off),
				Month:             ix.MonthOf(off),
				Archetype:         arch.Name,
				Stage:             name,
				EffectiveProjects: n,
				FTEResearch:       fteR,
				FTEDeveloper:      fteD,
				FTETotal:          fteR + fteD,
			})
		}
	}
}
