package model

import (
	"math"
	"testing"
)

func twoStageConfig() Config {
	return Config{
		GrossBudget:      100,
		OverheadFraction: 0,
		StartYear:        2026,
		EndYear:          2026,
		PipelineStages:   []string{"Early", "Late"},
		StageMix:         map[string]float64{"Early": 0.2, "Late": 0.8},
		ConversionRates:  map[string]float64{"Early": 0.5},
		IntakeMonths:     1,
		UtilizationRate:  1.0,
		RampMonths:       0,
		Archetypes: []Archetype{
			{
				Name:           "Default",
				PortfolioShare: 1.0,
				Stages: map[string]StageParams{
					"Early": {DurationMonths: 6, Cost: 5, FTEResearch: 1, FTEDeveloper: 0},
					"Late":  {DurationMonths: 6, Cost: 10, FTEResearch: 0, FTEDeveloper: 1},
				},
			},
		},
	}
}

func TestWeightedCost_TwoStage(t *testing.T) {
	cfg := twoStageConfig()

	// Entry at Early: 5 + 0.5*10 = 10. Entry at Late: 10.
	// Weighted: 0.2*10 + 0.8*10 = 10.
	wc := WeightedCostPerProject(cfg)
	if math.Abs(wc-10) > 1e-9 {
		t.Errorf("Expected weighted cost 10, got %f", wc)
	}

	ppy := ProjectsPerYear(cfg)
	if math.Abs(ppy-10) > 1e-9 {
		t.Errorf("Expected 10 projects per year, got %f", ppy)
	}
}

func TestExpectedCost_TerminalStage(t *testing.T) {
	cfg := twoStageConfig()
	arch := cfg.Archetypes[0]

	got := ExpectedCostFromStage(arch, cfg.PipelineStages, cfg.ConversionRates, 1)
	if got != 10 {
		t.Errorf("Expected terminal stage cost 10, got %f", got)
	}

	// Entry past the last stage costs nothing.
	if got := ExpectedCostFromStage(arch, cfg.PipelineStages, cfg.ConversionRates, 2); got != 0 {
		t.Errorf("Expected 0 past the last stage, got %f", got)
	}
}

func TestExpectedCost_UndefinedStage(t *testing.T) {
	cfg := twoStageConfig()
	arch := Archetype{Name: "Sparse", PortfolioShare: 1, Stages: map[string]StageParams{
		"Late": {DurationMonths: 6, Cost: 10},
	}}

	if got := ExpectedCostFromStage(arch, cfg.PipelineStages, cfg.ConversionRates, 0); got != 0 {
		t.Errorf("Expected 0 for an undefined entry stage, got %f", got)
	}
}

func TestProjectsPerYear_ZeroWeightedCost(t *testing.T) {
	cfg := twoStageConfig()
	cfg.Archetypes = nil

	if got := ProjectsPerYear(cfg); got != 0 {
		t.Errorf("Expected 0 projects per year without archetypes, got %f", got)
	}
}

func TestProjectsPerYear_FullOverhead(t *testing.T) {
	cfg := twoStageConfig()
	cfg.OverheadFraction = 1.0

	if got := NetBudget(cfg); got != 0 {
		t.Errorf("Expected zero net budget at 100%% overhead, got %f", got)
	}
	if got := ProjectsPerYear(cfg); got != 0 {
		t.Errorf("Expected 0 projects per year at 100%% overhead, got %f", got)
	}
}
