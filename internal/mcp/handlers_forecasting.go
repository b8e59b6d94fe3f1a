package mcp

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"fteplan/internal/config"
	"fteplan/internal/export"
	"fteplan/internal/model"
	"fteplan/internal/visuals"
)

// applyOverrides copies numeric tool arguments onto the scenario's model
// config. Unknown keys are ignored; only recognised overrides take effect.
func applyOverrides(cfg *model.Config, args map[string]interface{}) {
	if v, ok := asFloat(args["gross_budget"]); ok {
		cfg.GrossBudget = v
	}
	if v, ok := asFloat(args["overhead_fraction"]); ok {
		cfg.OverheadFraction = v
	}
	if v, ok := asInt(args["intake_months"]); ok {
		cfg.IntakeMonths = v
	}
	if v, ok := asFloat(args["utilization_rate"]); ok {
		cfg.UtilizationRate = v
	}
	if v, ok := asInt(args["ramp_months"]); ok {
		cfg.RampMonths = v
	}
}

type forecastSummary struct {
	Scenario        string                `json:"scenario"`
	WeightedCost    float64               `json:"weighted_cost_per_project"`
	NetBudget       float64               `json:"net_budget"`
	ProjectsPerYear float64               `json:"projects_per_year"`
	Annual          []model.AnnualSummary `json:"annual"`
	SteadyStateAvg  float64               `json:"steady_state_avg_fte"`
	SteadyStateMin  float64               `json:"steady_state_min_fte"`
	SteadyStateMax  float64               `json:"steady_state_max_fte"`
	Monthly         []model.MonthlyRecord `json:"monthly,omitempty"`
	Chart           string                `json:"chart,omitempty"`
	AnnualChart     string                `json:"annual_chart,omitempty"`
}

func summarize(sc *config.Scenario, res model.Result) forecastSummary {
	return forecastSummary{
		Scenario:        sc.Name,
		WeightedCost:    model.WeightedCostPerProject(sc.Model),
		NetBudget:       model.NetBudget(sc.Model),
		ProjectsPerYear: res.ProjectsPerYear,
		Annual:          res.Annual,
		SteadyStateAvg:  res.SteadyStateAvg,
		SteadyStateMin:  res.SteadyStateMin,
		SteadyStateMax:  res.SteadyStateMax,
	}
}

func (s *Server) handleRunForecast(args map[string]interface{}) (interface{}, error) {
	sc, err := s.resolveScenario(args)
	if err != nil {
		return nil, err
	}
	applyOverrides(&sc.Model, args)
	if err := config.ValidateScenario(sc); err != nil {
		return nil, err
	}

	res := model.Run(sc.Model)
	out := summarize(sc, res)

	if asBool(args["include_monthly"]) {
		out.Monthly = res.Monthly
	}
	if asBool(args["include_chart"]) && s.cfg.EnableCharts {
		out.Chart = visuals.GenerateFTECurveChart(res.Monthly)
		out.AnnualChart = visuals.GenerateAnnualRangeChart(res.Annual)
	}
	return out, nil
}

type stageCost struct {
	Stage        string  `json:"stage"`
	Duration     int     `json:"duration_months"`
	DirectCost   float64 `json:"direct_cost"`
	ExpectedCost float64 `json:"expected_cost_from_entry"`
}

type archetypeCost struct {
	Archetype      string      `json:"archetype"`
	PortfolioShare float64     `json:"portfolio_share"`
	Stages         []stageCost `json:"stages"`
}

func (s *Server) handleGetCostBreakdown(args map[string]interface{}) (interface{}, error) {
	sc, err := s.resolveScenario(args)
	if err != nil {
		return nil, err
	}
	applyOverrides(&sc.Model, args)

	cfg := sc.Model
	archetypes := make([]archetypeCost, 0, len(cfg.Archetypes))
	for _, arch := range cfg.Archetypes {
		ac := archetypeCost{Archetype: arch.Name, PortfolioShare: arch.PortfolioShare}
		for i, stage := range cfg.PipelineStages {
			params, ok := arch.Stages[stage]
			if !ok {
				continue
			}
			ac.Stages = append(ac.Stages, stageCost{
				Stage:        stage,
				Duration:     params.DurationMonths,
				DirectCost:   params.Cost,
				ExpectedCost: model.ExpectedCostFromStage(arch, cfg.PipelineStages, cfg.ConversionRates, i),
			})
		}
		archetypes = append(archetypes, ac)
	}

	return map[string]interface{}{
		"scenario":                  sc.Name,
		"gross_budget":              cfg.GrossBudget,
		"net_budget":                model.NetBudget(cfg),
		"weighted_cost_per_project": model.WeightedCostPerProject(cfg),
		"projects_per_year":         model.ProjectsPerYear(cfg),
		"stage_mix":                 cfg.StageMix,
		"conversion_rates":          cfg.ConversionRates,
		"archetypes":                archetypes,
	}, nil
}

func (s *Server) handleCompareScenarios(args map[string]interface{}) (interface{}, error) {
	raw, ok := args["scenario_paths"].([]interface{})
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("scenario_paths is required and must be a non-empty array")
	}

	paths := make([]string, 0, len(raw))
	for _, v := range raw {
		p, ok := v.(string)
		if !ok || p == "" {
			return nil, fmt.Errorf("scenario_paths entries must be non-empty strings")
		}
		paths = append(paths, p)
	}

	summaries := make([]forecastSummary, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			sc, err := config.LoadScenario(path)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", path, err)
			}
			if err := config.ValidateScenario(sc); err != nil {
				return fmt.Errorf("scenario %s: %w", path, err)
			}
			summaries[i] = summarize(sc, model.Run(sc.Model))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if asBool(args["include_baseline"]) {
		sc := config.Baseline()
		summaries = append([]forecastSummary{summarize(sc, model.Run(sc.Model))}, summaries...)
	}

	return map[string]interface{}{
		"scenarios": summaries,
	}, nil
}

func (s *Server) handleExportWorkbook(args map[string]interface{}) (interface{}, error) {
	sc, err := s.resolveScenario(args)
	if err != nil {
		return nil, err
	}
	if err := config.ValidateScenario(sc); err != nil {
		return nil, err
	}

	outPath, _ := args["out_path"].(string)
	if outPath == "" {
		outPath = filepath.Join(s.cfg.ExportDir, "fte_model.xlsx")
	}
	if err := export.WriteWorkbook(outPath, sc.Model); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"scenario": sc.Name,
		"path":     outPath,
	}, nil
}

func (s *Server) handleListBaseline() (interface{}, error) {
	return config.Baseline(), nil
}
