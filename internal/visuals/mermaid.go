package visuals

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"fteplan/internal/model"
)

// GenerateFTECurveChart creates a Mermaid xychart-beta of total monthly FTE
// over the forecast horizon.
func GenerateFTECurveChart(records []model.MonthlyRecord) string {
	if len(records) == 0 {
		return ""
	}

	totals := make(map[int]float64)
	for _, r := range records {
		totals[r.Year*12+r.Month-1] += r.FTETotal
	}

	keys := make([]int, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var labels []string
	var values []string
	maxVal := 0.0

	for _, k := range keys {
		labels = append(labels, fmt.Sprintf("\"%d-%02d\"", k/12, k%12+1))
		values = append(values, fmt.Sprintf("%.1f", totals[k]))
		if totals[k] > maxVal {
			maxVal = totals[k]
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Monthly FTE Baseload\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"FTE\" 0 --> %d\n", int(math.Ceil(maxVal*1.1))+1))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateAnnualRangeChart creates a Mermaid chart of the annual average FTE
// with the within-year min/max band as companion lines.
func GenerateAnnualRangeChart(annual []model.AnnualSummary) string {
	if len(annual) == 0 {
		return ""
	}

	var labels []string
	var avgs []string
	var mins []string
	var maxs []string
	maxVal := 0.0

	for _, row := range annual {
		labels = append(labels, fmt.Sprintf("\"%d\"", row.Year))
		avgs = append(avgs, fmt.Sprintf("%.1f", row.AvgFTE))
		mins = append(mins, fmt.Sprintf("%.1f", row.MinFTE))
		maxs = append(maxs, fmt.Sprintf("%.1f", row.MaxFTE))
		if row.MaxFTE > maxVal {
			maxVal = row.MaxFTE
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Annual FTE (Avg with Min/Max Band)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"FTE\" 0 --> %d\n", int(math.Ceil(maxVal*1.1))+1))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(avgs, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(mins, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(maxs, ", ")))
	sb.WriteString("```")
	return sb.String()
}
