package export

import (
	"math"
	"strings"
	"testing"

	"fteplan/internal/config"
	"fteplan/internal/model"
)

func TestBuildWorkbook_Structure(t *testing.T) {
	cfg := config.Baseline().Model

	f, err := BuildWorkbook(cfg)
	if err != nil {
		t.Fatalf("BuildWorkbook failed: %v", err)
	}

	for _, name := range []string{"Inputs", "Engine", "Summary"} {
		if idx, _ := f.GetSheetIndex(name); idx < 0 {
			t.Errorf("Missing sheet %q", name)
		}
	}

	// The budget input cell and the derived net-budget formula.
	budget, err := f.GetCellValue("Inputs", "C6")
	if err != nil || budget != "400" {
		t.Errorf("Expected budget 400 in C6, got %q (err=%v)", budget, err)
	}
	formula, err := f.GetCellFormula("Inputs", "C8")
	if err != nil || formula != "Budget*(1-Overhead)" {
		t.Errorf("Expected net budget formula, got %q (err=%v)", formula, err)
	}

	// Defined names cover the shared references the Engine sheet uses.
	names := make(map[string]bool)
	for _, dn := range f.GetDefinedName() {
		names[dn.Name] = true
	}
	for _, want := range []string{"Budget", "Overhead", "NetBudget", "StartYear", "EndYear",
		"IntakeMonths", "Utilization", "AllocEarly", "ConvEarly", "AllocLate",
		"WtdCost", "ProjPerYr", "Arch1_Share", "Arch1_E_Dur", "Arch3_L_Dev"} {
		if !names[want] {
			t.Errorf("Missing defined name %q", want)
		}
	}

	// First engine data row carries the intake-window gate.
	engineFormula, err := f.GetCellFormula("Engine", "D3")
	if err != nil {
		t.Fatalf("Failed to read engine formula: %v", err)
	}
	if !strings.Contains(engineFormula, "IntakeMonths") || !strings.Contains(engineFormula, "AllocEarly") {
		t.Errorf("Engine start formula looks wrong: %q", engineFormula)
	}
}

func TestBuildWorkbook_RejectsOtherShapes(t *testing.T) {
	cfg := config.Baseline().Model
	cfg.PipelineStages = []string{"Only"}

	if _, err := BuildWorkbook(cfg); err == nil {
		t.Error("Expected an error for a non-two-stage pipeline")
	}

	cfg = config.Baseline().Model
	cfg.Archetypes = nil
	if _, err := BuildWorkbook(cfg); err == nil {
		t.Error("Expected an error without archetypes")
	}
}

// evalWorkbookArithmetic reproduces, in plain Go, exactly the arithmetic the
// Engine sheet formulas encode for one archetype: intake-gated starts,
// trailing sliding-window active stock, and no-lag converted inflow.
func evalWorkbookArithmetic(cfg model.Config, arch model.Archetype, months int) (res, dev []float64) {
	early, late := cfg.PipelineStages[0], cfg.PipelineStages[1]
	spE, spL := arch.Stages[early], arch.Stages[late]
	ppy := model.ProjectsPerYear(cfg)
	util := cfg.UtilizationRate

	earlyStarts := make([]float64, months)
	lateTotal := make([]float64, months)
	res = make([]float64, months)
	dev = make([]float64, months)

	inWindow := func(off int) bool {
		year := cfg.StartYear + off/12
		month := off%12 + 1
		return year >= cfg.StartYear && year <= cfg.EndYear && month <= cfg.IntakeMonths
	}
	window := func(series []float64, off, dur int) float64 {
		sum := 0.0
		lo := off - dur + 1
		if lo < 0 {
			lo = 0
		}
		for m := lo; m <= off; m++ {
			sum += series[m]
		}
		return sum
	}

	for off := 0; off < months; off++ {
		if inWindow(off) {
			earlyStarts[off] = ppy * arch.PortfolioShare * cfg.StageMix[early] / float64(cfg.IntakeMonths)
			lateTotal[off] = ppy * arch.PortfolioShare * cfg.StageMix[late] / float64(cfg.IntakeMonths)
		}
		if off >= spE.DurationMonths {
			lateTotal[off] += earlyStarts[off-spE.DurationMonths] * cfg.ConversionRates[early]
		}

		earlyActive := window(earlyStarts, off, spE.DurationMonths)
		lateActive := window(lateTotal, off, spL.DurationMonths)

		res[off] = (earlyActive*spE.FTEResearch + lateActive*spL.FTEResearch) / util
		dev[off] = (earlyActive*spE.FTEDeveloper + lateActive*spL.FTEDeveloper) / util
	}
	return res, dev
}

func TestWorkbookArithmetic_AgreesWithEngine(t *testing.T) {
	cfg := config.Baseline().Model
	engine := model.Run(cfg)
	months := engineMonths(cfg)

	for _, arch := range cfg.Archetypes {
		wantRes, wantDev := evalWorkbookArithmetic(cfg, arch, months)

		gotRes := make([]float64, months)
		gotDev := make([]float64, months)
		for _, r := range engine.Monthly {
			if r.Archetype != arch.Name {
				continue
			}
			off := (r.Year-cfg.StartYear)*12 + r.Month - 1
			if off < months {
				gotRes[off] += r.FTEResearch
				gotDev[off] += r.FTEDeveloper
			}
		}

		for off := 0; off < months; off++ {
			if math.Abs(gotRes[off]-wantRes[off]) > 1e-6 {
				t.Errorf("%s month %d: research FTE engine=%f workbook=%f",
					arch.Name, off, gotRes[off], wantRes[off])
			}
			if math.Abs(gotDev[off]-wantDev[off]) > 1e-6 {
				t.Errorf("%s month %d: developer FTE engine=%f workbook=%f",
					arch.Name, off, gotDev[off], wantDev[off])
			}
		}
	}
}

func TestWorkbookWeightedCost_AgreesWithEngine(t *testing.T) {
	cfg := config.Baseline().Model
	early, late := cfg.PipelineStages[0], cfg.PipelineStages[1]

	// The WtdCost cell: share*(allocEarly*(costE+conv*costL)+allocLate*costL)
	// summed over archetypes.
	want := 0.0
	for _, arch := range cfg.Archetypes {
		costE := arch.Stages[early].Cost
		costL := arch.Stages[late].Cost
		want += arch.PortfolioShare * (cfg.StageMix[early]*(costE+cfg.ConversionRates[early]*costL) +
			cfg.StageMix[late]*costL)
	}

	got := model.WeightedCostPerProject(cfg)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Weighted cost mismatch: engine=%f workbook formula=%f", got, want)
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := t.TempDir() + "/fte_model.xlsx"
	if err := WriteWorkbook(path, config.Baseline().Model); err != nil {
		t.Fatalf("WriteWorkbook failed: %v", err)
	}
}
