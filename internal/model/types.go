package model

// StageParams holds one archetype's parameters for one pipeline stage.
type StageParams struct {
	DurationMonths int     `yaml:"duration_months" json:"duration_months"`
	Cost           float64 `yaml:"cost" json:"cost"`
	FTEResearch    float64 `yaml:"fte_research" json:"fte_research"`
	FTEDeveloper   float64 `yaml:"fte_developer" json:"fte_developer"`
}

// Archetype is a project type (e.g. Chemistry, Hardware, Software) with its
// own cost, duration and staffing profile per stage. Stages the archetype
// does not define contribute zero flow.
type Archetype struct {
	Name           string                 `yaml:"name" json:"name"`
	PortfolioShare float64                `yaml:"portfolio_share" json:"portfolio_share"`
	Stages         map[string]StageParams `yaml:"stages" json:"stages"`
}

// Config holds all user-configurable inputs for one forecast run. The engine
// treats it as an immutable snapshot; callers own validation of ranges.
type Config struct {
	GrossBudget      float64 `yaml:"gross_budget" json:"gross_budget"`
	OverheadFraction float64 `yaml:"overhead_fraction" json:"overhead_fraction"`
	StartYear        int     `yaml:"start_year" json:"start_year"`
	EndYear          int     `yaml:"end_year" json:"end_year"`

	// PipelineStages defines the forward-only stage order. StageMix maps a
	// stage to the fraction of new projects entering directly at it; it is
	// not required to sum to 1. ConversionRates maps a stage to the fraction
	// of its completions that start the next stage (undefined for the
	// terminal stage).
	PipelineStages  []string           `yaml:"pipeline_stages" json:"pipeline_stages"`
	StageMix        map[string]float64 `yaml:"stage_mix" json:"stage_mix"`
	ConversionRates map[string]float64 `yaml:"conversion_rates" json:"conversion_rates"`

	IntakeMonths    int     `yaml:"intake_months" json:"intake_months"`
	UtilizationRate float64 `yaml:"utilization_rate" json:"utilization_rate"`
	RampMonths      int     `yaml:"ramp_months" json:"ramp_months"`

	Archetypes []Archetype `yaml:"archetypes" json:"archetypes"`
}

// MonthlyRecord is one archetype/stage/month row of the forecast.
type MonthlyRecord struct {
	Year              int     `json:"year"`
	Month             int     `json:"month"` // calendar month, 1-12
	Archetype         string  `json:"archetype"`
	Stage             string  `json:"stage"`
	EffectiveProjects float64 `json:"effective_projects"`
	FTEResearch       float64 `json:"fte_research"`
	FTEDeveloper      float64 `json:"fte_developer"`
	FTETotal          float64 `json:"fte_total"`
}

// AnnualSummary reports the within-year range of total monthly FTE.
type AnnualSummary struct {
	Year         int     `json:"year"`
	AvgFTE       float64 `json:"avg_monthly_fte"`
	MinFTE       float64 `json:"min_monthly_fte"`
	MaxFTE       float64 `json:"max_monthly_fte"`
	AvgResearch  float64 `json:"avg_research_fte"`
	AvgDeveloper float64 `json:"avg_developer_fte"`
}

// Result is the full output of one engine run.
type Result struct {
	Monthly         []MonthlyRecord `json:"monthly"`
	Annual          []AnnualSummary `json:"annual_summary"`
	ProjectsPerYear float64         `json:"projects_per_year"`
	SteadyStateAvg  float64         `json:"steady_state_avg"`
	SteadyStateMin  float64         `json:"steady_state_min"`
	SteadyStateMax  float64         `json:"steady_state_max"`
}

// negligible suppresses floating-point noise: start events and record rows
// below this threshold are skipped at emission, never inside summation.
const negligible = 1e-9
