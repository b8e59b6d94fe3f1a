package model

import "math"

// monthlyTotals sums records by calendar month within one year. Only months
// that actually carry records appear in the result.
type monthTotal struct {
	total     float64
	research  float64
	developer float64
}

func monthlyTotals(records []MonthlyRecord, year int) map[int]monthTotal {
	totals := make(map[int]monthTotal)
	for _, r := range records {
		if r.Year != year {
			continue
		}
		t := totals[r.Month]
		t.total += r.FTETotal
		t.research += r.FTEResearch
		t.developer += r.FTEDeveloper
		totals[r.Month] = t
	}
	return totals
}

// BuildAnnualSummary rolls the monthly records into one row per calendar
// year in the configured range. Years with no records still appear as
// explicit zero rows so downstream consumers see the full range. An empty
// record set yields an empty table.
func BuildAnnualSummary(records []MonthlyRecord, cfg Config) []AnnualSummary {
	if len(records) == 0 {
		return []AnnualSummary{}
	}

	rows := make([]AnnualSummary, 0, cfg.EndYear-cfg.StartYear+1)
	for yr := cfg.StartYear; yr <= cfg.EndYear; yr++ {
		totals := monthlyTotals(records, yr)
		if len(totals) == 0 {
			rows = append(rows, AnnualSummary{Year: yr})
			continue
		}

		sumT, sumR, sumD := 0.0, 0.0, 0.0
		minT, maxT := math.Inf(1), math.Inf(-1)
		for _, t := range totals {
			sumT += t.total
			sumR += t.research
			sumD += t.developer
			if t.total < minT {
				minT = t.total
			}
			if t.total > maxT {
				maxT = t.total
			}
		}
		n := float64(len(totals))

		rows = append(rows, AnnualSummary{
			Year:         yr,
			AvgFTE:       round1(sumT / n),
			MinFTE:       round1(minT),
			MaxFTE:       round1(maxT),
			AvgResearch:  round1(sumR / n),
			AvgDeveloper: round1(sumD / n),
		})
	}
	return rows
}

// SteadyState reports (avg, min, max) monthly total FTE over the last
// intake year, falling back to the year before when the last year carries
// no data, and to zeros when neither does. The final configured year stands
// in for the pipeline's long-run equilibrium; convergence is not verified.
func SteadyState(records []MonthlyRecord, cfg Config) (avg, min, max float64) {
	if len(records) == 0 {
		return 0, 0, 0
	}

	totals := monthlyTotals(records, cfg.EndYear)
	if len(totals) == 0 {
		totals = monthlyTotals(records, cfg.EndYear-1)
	}
	if len(totals) == 0 {
		return 0, 0, 0
	}

	sum := 0.0
	min, max = math.Inf(1), math.Inf(-1)
	for _, t := range totals {
		sum += t.total
		if t.total < min {
			min = t.total
		}
		if t.total > max {
			max = t.total
		}
	}
	return sum / float64(len(totals)), min, max
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
