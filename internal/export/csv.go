package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fteplan/internal/model"
)

// WriteMonthlyCSV writes the monthly record table in the column order the
// results surface presents it.
func WriteMonthlyCSV(w io.Writer, records []model.MonthlyRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"month", "year", "archetype", "stage",
		"effective_projects", "fte_research", "fte_developer", "fte_total",
	}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			fmt.Sprintf("%d-%02d", r.Year, r.Month),
			fmt.Sprintf("%d", r.Year),
			r.Archetype,
			r.Stage,
			fmt.Sprintf("%.4f", r.EffectiveProjects),
			fmt.Sprintf("%.4f", r.FTEResearch),
			fmt.Sprintf("%.4f", r.FTEDeveloper),
			fmt.Sprintf("%.4f", r.FTETotal),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAnnualCSV writes the annual summary table.
func WriteAnnualCSV(w io.Writer, rows []model.AnnualSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"year", "avg_monthly_fte", "min_monthly_fte", "max_monthly_fte",
		"avg_research_fte", "avg_developer_fte",
	}); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			fmt.Sprintf("%d", r.Year),
			fmt.Sprintf("%.1f", r.AvgFTE),
			fmt.Sprintf("%.1f", r.MinFTE),
			fmt.Sprintf("%.1f", r.MaxFTE),
			fmt.Sprintf("%.1f", r.AvgResearch),
			fmt.Sprintf("%.1f", r.AvgDeveloper),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFiles writes fte_monthly.csv and fte_annual.csv into dir and
// returns the paths written.
func WriteCSVFiles(dir string, res model.Result) ([]string, error) {
	monthlyPath := filepath.Join(dir, "fte_monthly.csv")
	annualPath := filepath.Join(dir, "fte_annual.csv")

	mf, err := os.Create(monthlyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", monthlyPath, err)
	}
	defer mf.Close()
	if err := WriteMonthlyCSV(mf, res.Monthly); err != nil {
		return nil, fmt.Errorf("failed to write monthly table: %w", err)
	}

	af, err := os.Create(annualPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", annualPath, err)
	}
	defer af.Close()
	if err := WriteAnnualCSV(af, res.Annual); err != nil {
		return nil, fmt.Errorf("failed to write annual table: %w", err)
	}

	return []string{monthlyPath, annualPath}, nil
}
