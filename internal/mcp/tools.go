package mcp

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// scenarioPathProp is shared by every tool that accepts an optional
// scenario YAML path; the built-in baseline is used when it is absent.
func scenarioPathProp() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "Optional: path to a scenario YAML file. Defaults to the built-in baseline assumptions.",
	}
}

func (s *Server) listTools() interface{} {
	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name": "run_forecast",
				"description": "Run the staffing forecast: convert the scenario's budget and pipeline assumptions " +
					"into monthly active-project counts and FTE, with annual aggregates and the steady-state range. " +
					"Numeric overrides apply on top of the loaded scenario for quick what-if probes.",
				"inputSchema": &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"scenario_path": scenarioPathProp(),
						"gross_budget": {
							Type:        "number",
							Description: "Override: total yearly R&D budget (millions).",
						},
						"overhead_fraction": {
							Type:        "number",
							Description: "Override: overhead deduction as a fraction (0-1).",
						},
						"intake_months": {
							Type:        "integer",
							Description: "Override: intake window, months per year over which new projects start.",
						},
						"utilization_rate": {
							Type:        "number",
							Description: "Override: utilization rate (0-1]; modeled FTE is divided by it to get gross headcount.",
						},
						"ramp_months": {
							Type:        "integer",
							Description: "Override: linear staffing ramp-up months (0 = instant full staffing).",
						},
						"include_monthly": {
							Type:        "boolean",
							Description: "If true, include the full monthly record table (can be large).",
						},
						"include_chart": {
							Type:        "boolean",
							Description: "If true, include Mermaid charts of the monthly FTE curve and the annual min/max band.",
						},
					},
				},
			},
			map[string]interface{}{
				"name": "get_cost_breakdown",
				"description": "Explain the budget-to-volume conversion: per-archetype expected cost at each entry stage, " +
					"the portfolio-weighted cost per project, net budget, and projects per year.",
				"inputSchema": &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"scenario_path": scenarioPathProp(),
					},
				},
			},
			map[string]interface{}{
				"name": "compare_scenarios",
				"description": "Run several scenario files side by side (in parallel) and compare their headline figures: " +
					"projects per year and the steady-state average/min/max monthly FTE.",
				"inputSchema": &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"scenario_paths": {
							Type:        "array",
							Description: "Paths of the scenario YAML files to compare (at least one).",
							Items:       &jsonschema.Schema{Type: "string"},
						},
						"include_baseline": {
							Type:        "boolean",
							Description: "If true, the built-in baseline is added to the comparison.",
						},
					},
					Required: []string{"scenario_paths"},
				},
			},
			map[string]interface{}{
				"name": "export_workbook",
				"description": "Write the scenario as a live xlsx workbook whose formulas mirror the engine arithmetic " +
					"(two-stage pipelines only). Returns the path written.",
				"inputSchema": &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"scenario_path": scenarioPathProp(),
						"out_path": {
							Type:        "string",
							Description: "Optional: output file path. Defaults to fte_model.xlsx in the export directory.",
						},
					},
				},
			},
			map[string]interface{}{
				"name":        "list_baseline",
				"description": "Return the built-in baseline scenario: stages, mixes, conversion rates, and archetype parameters.",
				"inputSchema": &jsonschema.Schema{
					Type: "object",
				},
			},
		},
	}
}
