package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"fteplan/internal/model"
)

// The workbook surface reproduces the engine arithmetic as live spreadsheet
// formulas. Like the original planning workbook it is fixed to a two-stage
// pipeline shape (an "early" and a "late" stage); the archetype count
// follows the configuration.

const engineDataStart = 3 // first data row on the Engine sheet

// Workbook sheet names.
const (
	sheetInputs  = "Inputs"
	sheetEngine  = "Engine"
	sheetSummary = "Summary"
)

type workbookStyles struct {
	title   int
	section int
	header  int
	input   int
	formula int
	percent int
}

// BuildWorkbook assembles the xlsx model for a two-stage configuration.
func BuildWorkbook(cfg model.Config) (*excelize.File, error) {
	if len(cfg.PipelineStages) != 2 {
		return nil, fmt.Errorf("workbook export supports exactly two pipeline stages, got %d", len(cfg.PipelineStages))
	}
	if len(cfg.Archetypes) == 0 {
		return nil, fmt.Errorf("workbook export requires at least one archetype")
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetInputs)
	if _, err := f.NewSheet(sheetEngine); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return nil, err
	}

	st, err := newWorkbookStyles(f)
	if err != nil {
		return nil, err
	}

	if err := buildInputsSheet(f, cfg, st); err != nil {
		return nil, err
	}
	totalsCol, err := buildEngineSheet(f, cfg, st)
	if err != nil {
		return nil, err
	}
	if err := buildSummarySheet(f, cfg, st, totalsCol); err != nil {
		return nil, err
	}

	return f, nil
}

// WriteWorkbook writes the xlsx model to path.
func WriteWorkbook(path string, cfg model.Config) error {
	f, err := BuildWorkbook(cfg)
	if err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func newWorkbookStyles(f *excelize.File) (*workbookStyles, error) {
	st := &workbookStyles{}
	var err error

	if st.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16, Color: "051C2C"},
	}); err != nil {
		return nil, err
	}
	if st.section, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "2251FF"},
	}); err != nil {
		return nil, err
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"051C2C"}},
	}); err != nil {
		return nil, err
	}
	if st.input, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFF2CC"}},
	}); err != nil {
		return nil, err
	}
	if st.formula, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E2EFDA"}},
	}); err != nil {
		return nil, err
	}
	pct := "0%"
	if st.percent, err = f.NewStyle(&excelize.Style{
		Fill:         excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFF2CC"}},
		CustomNumFmt: &pct,
	}); err != nil {
		return nil, err
	}
	return st, nil
}

// archPrefix produces a defined-name-safe prefix per archetype index.
func archPrefix(i int) string {
	return fmt.Sprintf("Arch%d", i+1)
}

func defineName(f *excelize.File, name, cell string) error {
	return f.SetDefinedName(&excelize.DefinedName{
		Name:     name,
		RefersTo: fmt.Sprintf("%s!$C$%s", sheetInputs, cell),
		Scope:    "Workbook",
	})
}

func buildInputsSheet(f *excelize.File, cfg model.Config, st *workbookStyles) error {
	ws := sheetInputs
	_ = f.SetColWidth(ws, "A", "A", 3)
	_ = f.SetColWidth(ws, "B", "B", 40)
	_ = f.SetColWidth(ws, "C", "C", 16)

	_ = f.MergeCell(ws, "B2", "F2")
	_ = f.SetCellValue(ws, "B2", "FTE Baseload Model — Inputs")
	_ = f.SetCellStyle(ws, "B2", "B2", st.title)
	_ = f.SetCellValue(ws, "B3", "Yellow cells = editable assumptions. Green cells = calculated by formulas. All other sheets update automatically.")

	early, late := cfg.PipelineStages[0], cfg.PipelineStages[1]
	row := 5

	setSection := func(label string) {
		cell := fmt.Sprintf("B%d", row)
		_ = f.SetCellValue(ws, cell, label)
		_ = f.SetCellStyle(ws, cell, cell, st.section)
		row++
	}
	setInput := func(label string, value interface{}, name string, percent bool) error {
		_ = f.SetCellValue(ws, fmt.Sprintf("B%d", row), label)
		cell := fmt.Sprintf("C%d", row)
		if err := f.SetCellValue(ws, cell, value); err != nil {
			return err
		}
		style := st.input
		if percent {
			style = st.percent
		}
		_ = f.SetCellStyle(ws, cell, cell, style)
		if name != "" {
			if err := defineName(f, name, fmt.Sprintf("%d", row)); err != nil {
				return err
			}
		}
		row++
		return nil
	}
	setFormula := func(label, formula, name string) error {
		_ = f.SetCellValue(ws, fmt.Sprintf("B%d", row), label)
		cell := fmt.Sprintf("C%d", row)
		if err := f.SetCellFormula(ws, cell, formula); err != nil {
			return err
		}
		_ = f.SetCellStyle(ws, cell, cell, st.formula)
		if name != "" {
			if err := defineName(f, name, fmt.Sprintf("%d", row)); err != nil {
				return err
			}
		}
		row++
		return nil
	}

	setSection("BUDGET & TIMELINE")
	if err := setInput("Total R&D budget (millions)", cfg.GrossBudget, "Budget", false); err != nil {
		return err
	}
	if err := setInput("Overhead deduction (%)", cfg.OverheadFraction, "Overhead", true); err != nil {
		return err
	}
	if err := setFormula("Net project budget (M)", "Budget*(1-Overhead)", "NetBudget"); err != nil {
		return err
	}
	if err := setInput("First year of new projects", cfg.StartYear, "StartYear", false); err != nil {
		return err
	}
	if err := setInput("Last year of new projects", cfg.EndYear, "EndYear", false); err != nil {
		return err
	}
	if err := setInput("Intake window (months per year)", cfg.IntakeMonths, "IntakeMonths", false); err != nil {
		return err
	}
	if err := setInput("Utilization rate", cfg.UtilizationRate, "Utilization", true); err != nil {
		return err
	}
	row++

	setSection("PIPELINE STAGES")
	if err := setInput(fmt.Sprintf("%s: %% of new projects that start here", early), cfg.StageMix[early], "AllocEarly", true); err != nil {
		return err
	}
	if err := setInput(fmt.Sprintf("%s: %% of completers that advance to %s", early, late), cfg.ConversionRates[early], "ConvEarly", true); err != nil {
		return err
	}
	if err := setInput(fmt.Sprintf("%s: %% of new projects that start here directly", late), cfg.StageMix[late], "AllocLate", true); err != nil {
		return err
	}
	if err := setFormula("Total direct allocation (should = 100%)", "AllocEarly+AllocLate", ""); err != nil {
		return err
	}
	row++

	setSection("PORTFOLIO MIX")
	shareNames := make([]string, len(cfg.Archetypes))
	for i, arch := range cfg.Archetypes {
		shareNames[i] = archPrefix(i) + "_Share"
		if err := setInput(fmt.Sprintf("%s (%%)", arch.Name), arch.PortfolioShare, shareNames[i], true); err != nil {
			return err
		}
	}
	if err := setFormula("Total portfolio share", strings.Join(shareNames, "+"), ""); err != nil {
		return err
	}
	row++

	setSection("PROJECT TYPE PARAMETERS")
	for i, arch := range cfg.Archetypes {
		_ = f.SetCellValue(ws, fmt.Sprintf("B%d", row), arch.Name)
		_ = f.SetCellStyle(ws, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), st.section)
		row++

		for si, stage := range []string{early, late} {
			tag := "E"
			if si == 1 {
				tag = "L"
			}
			sp := arch.Stages[stage]
			prefix := archPrefix(i)
			if err := setInput(fmt.Sprintf("  %s — duration (months)", stage), sp.DurationMonths, fmt.Sprintf("%s_%s_Dur", prefix, tag), false); err != nil {
				return err
			}
			if err := setInput(fmt.Sprintf("  %s — cost per project (M)", stage), sp.Cost, fmt.Sprintf("%s_%s_Cost", prefix, tag), false); err != nil {
				return err
			}
			if err := setInput(fmt.Sprintf("  %s — research staff per project", stage), sp.FTEResearch, fmt.Sprintf("%s_%s_Res", prefix, tag), false); err != nil {
				return err
			}
			if err := setInput(fmt.Sprintf("  %s — developer staff per project", stage), sp.FTEDeveloper, fmt.Sprintf("%s_%s_Dev", prefix, tag), false); err != nil {
				return err
			}
		}
	}
	row++

	setSection("DERIVED VALUES (formulas — do not edit)")

	// Weighted cost: share-weighted expected cost across entry points, with
	// early entries carrying the probabilistic late-stage continuation.
	terms := make([]string, len(cfg.Archetypes))
	for i := range cfg.Archetypes {
		p := archPrefix(i)
		terms[i] = fmt.Sprintf("%s_Share*(AllocEarly*(%s_E_Cost+ConvEarly*%s_L_Cost)+AllocLate*%s_L_Cost)", p, p, p, p)
	}
	if err := setFormula("Weighted cost per project (M)", strings.Join(terms, "+"), "WtdCost"); err != nil {
		return err
	}
	if err := setFormula("Projects per year", "IF(WtdCost>0, NetBudget/WtdCost, 0)", "ProjPerYr"); err != nil {
		return err
	}

	return nil
}

// engineMonths returns the number of monthly rows on the Engine sheet:
// the configured years plus a 12-month tail for cohorts to run out.
func engineMonths(cfg model.Config) int {
	return (cfg.EndYear-cfg.StartYear+1)*12 + 12
}

func buildEngineSheet(f *excelize.File, cfg model.Config, st *workbookStyles) (int, error) {
	ws := sheetEngine
	nMonths := engineMonths(cfg)
	colsPerArch := 9
	archStartCol := 4
	totalsCol := archStartCol + len(cfg.Archetypes)*colsPerArch

	// Group headers (row 1) and column headers (row 2).
	for i, arch := range cfg.Archetypes {
		start := archStartCol + i*colsPerArch
		startName, _ := excelize.ColumnNumberToName(start)
		endName, _ := excelize.ColumnNumberToName(start + colsPerArch - 1)
		_ = f.MergeCell(ws, startName+"1", endName+"1")
		_ = f.SetCellValue(ws, startName+"1", arch.Name)
		_ = f.SetCellStyle(ws, startName+"1", endName+"1", st.header)
	}
	tcName, _ := excelize.ColumnNumberToName(totalsCol)
	tcEnd, _ := excelize.ColumnNumberToName(totalsCol + 2)
	_ = f.MergeCell(ws, tcName+"1", tcEnd+"1")
	_ = f.SetCellValue(ws, tcName+"1", "GRAND TOTALS")
	_ = f.SetCellStyle(ws, tcName+"1", tcEnd+"1", st.header)

	_ = f.SetCellValue(ws, "A2", "Date")
	_ = f.SetCellValue(ws, "B2", "Year")
	_ = f.SetCellValue(ws, "C2", "Month")
	subHeaders := []string{
		"Early Starts/mo", "Early Active",
		"Late Conv Starts", "Late Direct Starts", "Late Total Starts", "Late Active",
		"Research FTE", "Developer FTE", "Total FTE",
	}
	for i := range cfg.Archetypes {
		start := archStartCol + i*colsPerArch
		for si, h := range subHeaders {
			name, _ := excelize.ColumnNumberToName(start + si)
			_ = f.SetCellValue(ws, name+"2", h)
		}
	}
	_ = f.SetCellValue(ws, tcName+"2", "Total Research")
	tc1, _ := excelize.ColumnNumberToName(totalsCol + 1)
	_ = f.SetCellValue(ws, tc1+"2", "Total Developer")
	_ = f.SetCellValue(ws, tcEnd+"2", "Total FTE")
	endName, _ := excelize.ColumnNumberToName(totalsCol + 2)
	_ = f.SetCellStyle(ws, "A2", endName+"2", st.header)

	ds := engineDataStart
	for off := 0; off < nMonths; off++ {
		r := ds + off

		if err := f.SetCellFormula(ws, fmt.Sprintf("A%d", r),
			fmt.Sprintf("DATE(StartYear + INT(%d/12), MOD(%d,12)+1, 1)", off, off)); err != nil {
			return 0, err
		}
		_ = f.SetCellFormula(ws, fmt.Sprintf("B%d", r), fmt.Sprintf("YEAR(A%d)", r))
		_ = f.SetCellFormula(ws, fmt.Sprintf("C%d", r), fmt.Sprintf("MONTH(A%d)", r))

		for i := range cfg.Archetypes {
			sc := archStartCol + i*colsPerArch
			p := archPrefix(i)

			earlyStarts, _ := excelize.ColumnNumberToName(sc)
			earlyActive, _ := excelize.ColumnNumberToName(sc + 1)
			lateConv, _ := excelize.ColumnNumberToName(sc + 2)
			lateDirect, _ := excelize.ColumnNumberToName(sc + 3)
			lateTotal, _ := excelize.ColumnNumberToName(sc + 4)
			lateActive, _ := excelize.ColumnNumberToName(sc + 5)
			resCol, _ := excelize.ColumnNumberToName(sc + 6)
			devCol, _ := excelize.ColumnNumberToName(sc + 7)
			totCol, _ := excelize.ColumnNumberToName(sc + 8)

			// Early direct starts: even intake spread inside the window.
			_ = f.SetCellFormula(ws, fmt.Sprintf("%s%d", earlyStarts, r), fmt.Sprintf(
				"IF(AND(B%d>=StartYear, B%d<=EndYear, C%d<=IntakeMonths), ProjPerYr*%s_Share*AllocEarly/IntakeMonths, 0)",
				r, r, r, p))

			// Early active stock: trailing sliding-window sum over the
			// stage duration.
			if off == 0 {
				_ = f.SetCellFormula(ws, fmt.Sprintf("%s%d", earlyActive, r), fmt.Sprintf("%s%d", earlyStarts, r))
			} else {
				_ = f.SetCellFormula(ws, fmt.Sprintf("%s%d", earlyActive, r), fmt.Sprintf(
					"IF(%d-%d < %s_E_Dur, SUM(%s$%d:%s%d), SUM(OFFSET(%s%d,-%s_E_Dur+1,0,%s_E_Dur,1)))",
					r, ds, p, earlyStarts, ds, earlyStarts, r, earlyStarts, r, p, p))
			}

			// Late conversion starts: early cohort completions times the
			// conversion rate, landing with no lag.
			_ = f.SetCellFormula(ws, fmt.Sprintf("%s%d", lateConv, r), fmt.Sprintf(
				"IF(%d-%d >= %s_E_Dur, OFFSET(%s%d, -%s_E_Dur, 0) * ConvEarly, 0)",
				r, ds, p, earlyStarts, r, p))

			_ = f.SetCellFormula(ws, fmt.Sprintf("%s%d", lateDirect, r), fmt.Sprintf(
				"IF(AND(B%d>=StartYear, B%d<=EndYear, C%d<=IntakeMonths), ProjPerYr*%s_Share*AllocLate/IntakeMonths, 0)",
				r, r, r, p))

			_ = f.SetCellFormula(ws, fmt.Sprintf("%s%d", lateTotal, r), fmt.Sprintf(
				"%s%d+%s%d", lateConv, r, lateDirect, r))

			if off == 0 {
				_ = f.SetCellFormula(ws, fmt.Sprintf("%s%d", lateActive, r), fmt.Sprintf("%s%d", lateTotal, r))
			} else {
				_ = f.SetCellFormula(ws, fmt.Sprintf("%s%d", lateActive, r), fmt.Sprintf(
					"IF(%d-%d < %s_L_Dur, SUM(%s$%d:%s%d), SUM(OFFSET(%s%d,-%s_L_Dur+1,0,%s_L_Dur,1)))",
					r, ds, p, lateTotal, ds, lateTotal, r, lateTotal, r, p, p))
			}

			// Gross FTE: active stock times staffing, divided by utilization.
			_ = f.SetCellFormula(ws, fmt.Sprintf("%s%d", resCol, r), fmt.Sprintf(
				"(%s%d*%s_E_Res + %s%d*%s_L_Res) / Utilization", earlyActive, r, p, lateActive, r, p))
			_ = f.SetCellFormula(ws, fmt.Sprintf("%s%d", devCol, r), fmt.Sprintf(
				"(%s%d*%s_E_Dev + %s%d*%s_L_Dev) / Utilization", earlyActive, r, p, lateActive, r, p))
			_ = f.SetCellFormula(ws, fmt.Sprintf("%s%d", totCol, r), fmt.Sprintf(
				"%s%d+%s%d", resCol, r, devCol, r))
		}

		// Grand totals across archetypes.
		var resTerms, devTerms []string
		for i := range cfg.Archetypes {
			rc, _ := excelize.ColumnNumberToName(archStartCol + i*colsPerArch + 6)
			dc, _ := excelize.ColumnNumberToName(archStartCol + i*colsPerArch + 7)
			resTerms = append(resTerms, fmt.Sprintf("%s%d", rc, r))
			devTerms = append(devTerms, fmt.Sprintf("%s%d", dc, r))
		}
		_ = f.SetCellFormula(ws, fmt.Sprintf("%s%d", tcName, r), strings.Join(resTerms, "+"))
		_ = f.SetCellFormula(ws, fmt.Sprintf("%s%d", tc1, r), strings.Join(devTerms, "+"))
		_ = f.SetCellFormula(ws, fmt.Sprintf("%s%d", tcEnd, r), fmt.Sprintf("%s%d+%s%d", tcName, r, tc1, r))
	}

	// Hide the intermediate per-archetype columns; keep the FTE triples.
	for i := range cfg.Archetypes {
		sc := archStartCol + i*colsPerArch
		first, _ := excelize.ColumnNumberToName(sc)
		last, _ := excelize.ColumnNumberToName(sc + 5)
		_ = f.SetColVisible(ws, fmt.Sprintf("%s:%s", first, last), false)
	}

	return totalsCol, nil
}

func buildSummarySheet(f *excelize.File, cfg model.Config, st *workbookStyles, totalsCol int) error {
	ws := sheetSummary
	_ = f.SetColWidth(ws, "A", "A", 3)
	_ = f.SetColWidth(ws, "B", "B", 10)
	_ = f.SetColWidth(ws, "C", "G", 18)

	_ = f.SetCellValue(ws, "B2", "Annual FTE Summary")
	_ = f.SetCellStyle(ws, "B2", "B2", st.title)
	_ = f.SetCellValue(ws, "B3", "Avg = average across all months. Min/Max = lowest and highest single-month FTE that year.")

	headers := []string{"Year", "Avg monthly FTE", "Min monthly FTE", "Max monthly FTE", "Avg Research FTE", "Avg Developer FTE"}
	for i, h := range headers {
		name, _ := excelize.ColumnNumberToName(2 + i)
		_ = f.SetCellValue(ws, name+"5", h)
	}
	_ = f.SetCellStyle(ws, "B5", "G5", st.header)

	tcRes, _ := excelize.ColumnNumberToName(totalsCol)
	tcDev, _ := excelize.ColumnNumberToName(totalsCol + 1)
	tcTot, _ := excelize.ColumnNumberToName(totalsCol + 2)

	ds := engineDataStart
	de := ds + engineMonths(cfg) - 1
	totRange := fmt.Sprintf("Engine!%s$%d:%s$%d", tcTot, ds, tcTot, de)
	resRange := fmt.Sprintf("Engine!%s$%d:%s$%d", tcRes, ds, tcRes, de)
	devRange := fmt.Sprintf("Engine!%s$%d:%s$%d", tcDev, ds, tcDev, de)
	yearRange := fmt.Sprintf("Engine!$B$%d:$B$%d", ds, de)

	nYears := cfg.EndYear - cfg.StartYear + 1
	for yi := 0; yi < nYears; yi++ {
		r := 6 + yi
		_ = f.SetCellFormula(ws, fmt.Sprintf("B%d", r), fmt.Sprintf("StartYear+%d", yi))
		yearRef := fmt.Sprintf("B%d", r)

		// Empty months are excluded from the aggregates, matching the
		// engine's months-with-records grouping.
		cells := []struct {
			col     string
			formula string
		}{
			{"C", fmt.Sprintf("IFERROR(AVERAGEIFS(%s,%s,%s,%s,\">0\"), 0)", totRange, yearRange, yearRef, totRange)},
			{"D", fmt.Sprintf("IFERROR(_xlfn.MINIFS(%s,%s,%s,%s,\">0\"), 0)", totRange, yearRange, yearRef, totRange)},
			{"E", fmt.Sprintf("IFERROR(_xlfn.MAXIFS(%s,%s,%s,%s,\">0\"), 0)", totRange, yearRange, yearRef, totRange)},
			{"F", fmt.Sprintf("IFERROR(AVERAGEIFS(%s,%s,%s,%s,\">0\"), 0)", resRange, yearRange, yearRef, totRange)},
			{"G", fmt.Sprintf("IFERROR(AVERAGEIFS(%s,%s,%s,%s,\">0\"), 0)", devRange, yearRange, yearRef, totRange)},
		}
		for _, c := range cells {
			if err := f.SetCellFormula(ws, fmt.Sprintf("%s%d", c.col, r), c.formula); err != nil {
				return err
			}
			_ = f.SetCellStyle(ws, fmt.Sprintf("%s%d", c.col, r), fmt.Sprintf("%s%d", c.col, r), st.formula)
		}
	}

	return nil
}
