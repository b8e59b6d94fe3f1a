package model

import (
	"math"
	"testing"
)

func TestAnnualSummary_ZeroRowForEmptyYear(t *testing.T) {
	cfg := twoStageConfig()
	cfg.EndYear = 2027

	records := []MonthlyRecord{
		{Year: 2026, Month: 1, Archetype: "A", Stage: "S", FTETotal: 4, FTEResearch: 4},
		{Year: 2026, Month: 2, Archetype: "A", Stage: "S", FTETotal: 6, FTEResearch: 6},
	}

	rows := BuildAnnualSummary(records, cfg)
	if len(rows) != 2 {
		t.Fatalf("Expected 2 annual rows, got %d", len(rows))
	}

	if rows[0].Year != 2026 || rows[0].AvgFTE != 5 || rows[0].MinFTE != 4 || rows[0].MaxFTE != 6 {
		t.Errorf("2026 row wrong: %+v", rows[0])
	}

	// The empty year still appears, as an explicit zero row.
	if rows[1].Year != 2027 {
		t.Fatalf("Expected a 2027 row, got year %d", rows[1].Year)
	}
	if rows[1].AvgFTE != 0 || rows[1].MinFTE != 0 || rows[1].MaxFTE != 0 {
		t.Errorf("Expected all-zero 2027 row, got %+v", rows[1])
	}
}

func TestAnnualSummary_EmptyRecords(t *testing.T) {
	cfg := twoStageConfig()
	if rows := BuildAnnualSummary(nil, cfg); len(rows) != 0 {
		t.Errorf("Expected empty annual table for empty records, got %d rows", len(rows))
	}
}

func TestAnnualSummary_SumsAcrossArchetypesAndStages(t *testing.T) {
	cfg := twoStageConfig()

	records := []MonthlyRecord{
		{Year: 2026, Month: 3, Archetype: "A", Stage: "Early", FTETotal: 2, FTEResearch: 2},
		{Year: 2026, Month: 3, Archetype: "B", Stage: "Early", FTETotal: 3, FTEDeveloper: 3},
		{Year: 2026, Month: 3, Archetype: "A", Stage: "Late", FTETotal: 5, FTEDeveloper: 5},
	}

	rows := BuildAnnualSummary(records, cfg)
	if len(rows) != 1 {
		t.Fatalf("Expected 1 annual row, got %d", len(rows))
	}
	// A single populated month: avg = min = max = 10.
	if rows[0].AvgFTE != 10 || rows[0].MinFTE != 10 || rows[0].MaxFTE != 10 {
		t.Errorf("Expected 10/10/10, got %+v", rows[0])
	}
	if rows[0].AvgResearch != 2 || rows[0].AvgDeveloper != 8 {
		t.Errorf("Expected research 2, developer 8, got %+v", rows[0])
	}
}

func TestAnnualSummary_Rounding(t *testing.T) {
	cfg := twoStageConfig()
	records := []MonthlyRecord{
		{Year: 2026, Month: 1, Archetype: "A", Stage: "S", FTETotal: 1.04},
		{Year: 2026, Month: 2, Archetype: "A", Stage: "S", FTETotal: 1.06},
	}

	rows := BuildAnnualSummary(records, cfg)
	if rows[0].AvgFTE != 1.1 {
		t.Errorf("Expected avg rounded to 1.1, got %f", rows[0].AvgFTE)
	}
	if rows[0].MinFTE != 1.0 {
		t.Errorf("Expected min rounded to 1.0, got %f", rows[0].MinFTE)
	}
}

func TestSteadyState_FallbackYear(t *testing.T) {
	cfg := twoStageConfig()
	cfg.StartYear = 2026
	cfg.EndYear = 2027

	// No records in the final year: fall back to the year before.
	records := []MonthlyRecord{
		{Year: 2026, Month: 1, Archetype: "A", Stage: "S", FTETotal: 3},
		{Year: 2026, Month: 2, Archetype: "A", Stage: "S", FTETotal: 5},
	}

	avg, min, max := SteadyState(records, cfg)
	if math.Abs(avg-4) > 1e-9 || min != 3 || max != 5 {
		t.Errorf("Expected (4, 3, 5) from fallback year, got (%f, %f, %f)", avg, min, max)
	}
}

func TestSteadyState_NoData(t *testing.T) {
	cfg := twoStageConfig()
	avg, min, max := SteadyState(nil, cfg)
	if avg != 0 || min != 0 || max != 0 {
		t.Errorf("Expected zero steady state without records, got (%f, %f, %f)", avg, min, max)
	}

	// Records exist but in neither the final year nor the one before.
	records := []MonthlyRecord{{Year: 2020, Month: 1, FTETotal: 9}}
	avg, min, max = SteadyState(records, cfg)
	if avg != 0 || min != 0 || max != 0 {
		t.Errorf("Expected zero steady state outside both candidate years, got (%f, %f, %f)", avg, min, max)
	}
}
