package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fteplan/internal/model"
)

// Scenario is a named model configuration, the unit users edit and share
// as a YAML file.
type Scenario struct {
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Model       model.Config `yaml:"model" json:"model"`
}

// LoadScenario reads a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	if err := ValidateScenario(&sc); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &sc, nil
}

// SaveScenario writes a scenario as YAML.
func SaveScenario(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scenario file: %w", err)
	}
	return nil
}

// ValidateScenario checks the structural constraints the engine does not
// enforce itself. Mild inconsistency (mixes not summing to 1) passes; the
// engine tolerates it by design.
func ValidateScenario(sc *Scenario) error {
	m := &sc.Model
	if m.EndYear < m.StartYear {
		return fmt.Errorf("end_year %d precedes start_year %d", m.EndYear, m.StartYear)
	}
	if len(m.PipelineStages) == 0 {
		return fmt.Errorf("pipeline_stages must not be empty")
	}
	seen := make(map[string]bool, len(m.PipelineStages))
	for _, name := range m.PipelineStages {
		if seen[name] {
			return fmt.Errorf("duplicate pipeline stage %q", name)
		}
		seen[name] = true
	}
	for _, arch := range m.Archetypes {
		for stage, sp := range arch.Stages {
			if !seen[stage] {
				return fmt.Errorf("archetype %q references unknown stage %q", arch.Name, stage)
			}
			if sp.DurationMonths < 1 {
				return fmt.Errorf("archetype %q stage %q: duration_months must be >= 1", arch.Name, stage)
			}
			if sp.FTEResearch < 0 || sp.FTEDeveloper < 0 {
				return fmt.Errorf("archetype %q stage %q: staffing must be >= 0", arch.Name, stage)
			}
		}
	}
	if m.UtilizationRate < 0 || m.UtilizationRate > 1 {
		return fmt.Errorf("utilization_rate %f outside (0, 1]", m.UtilizationRate)
	}
	return nil
}

// Baseline returns the built-in default assumptions: a two-stage TRL
// pipeline with three archetypes.
func Baseline() *Scenario {
	chemistry := model.Archetype{
		Name:           "Chemistry",
		PortfolioShare: 0.15,
		Stages: map[string]model.StageParams{
			"TRL 1-4": {DurationMonths: 7, Cost: 6.5, FTEResearch: 3.5, FTEDeveloper: 1.5},
			"TRL 5-7": {DurationMonths: 12, Cost: 12.5, FTEResearch: 1.5, FTEDeveloper: 3.5},
		},
	}
	hardware := model.Archetype{
		Name:           "Process (Hardware)",
		PortfolioShare: 0.70,
		Stages: map[string]model.StageParams{
			"TRL 1-4": {DurationMonths: 9, Cost: 12.5, FTEResearch: 6.5, FTEDeveloper: 1.5},
			"TRL 5-7": {DurationMonths: 15, Cost: 15.0, FTEResearch: 1.5, FTEDeveloper: 6.5},
		},
	}
	software := model.Archetype{
		Name:           "Algorithm (Software)",
		PortfolioShare: 0.15,
		Stages: map[string]model.StageParams{
			"TRL 1-4": {DurationMonths: 6, Cost: 4.25, FTEResearch: 0.5, FTEDeveloper: 0.5},
			"TRL 5-7": {DurationMonths: 6, Cost: 4.25, FTEResearch: 0.5, FTEDeveloper: 0.5},
		},
	}

	return &Scenario{
		Name:        "baseline",
		Description: "Default R&D portfolio assumptions: two-stage TRL pipeline, three archetypes.",
		Model: model.Config{
			GrossBudget:      400.0,
			OverheadFraction: 0.30,
			StartYear:        2026,
			EndYear:          2029,
			PipelineStages:   []string{"TRL 1-4", "TRL 5-7"},
			StageMix:         map[string]float64{"TRL 1-4": 0.20, "TRL 5-7": 0.80},
			ConversionRates:  map[string]float64{"TRL 1-4": 0.50},
			IntakeMonths:     6,
			UtilizationRate:  1.0,
			RampMonths:       0,
			Archetypes:       []model.Archetype{chemistry, hardware, software},
		},
	}
}
