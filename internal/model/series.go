package model

// MonthIndex is a fixed monthly grid starting at January of StartYear.
// Months are plain integer offsets from that epoch, which keeps all date
// arithmetic exact (no day-of-month drift, no calendar library).
type MonthIndex struct {
	StartYear int
	Months    int
}

// NewMonthIndex covers January of startYear through December of endYear plus
// tailMonths beyond, so cohorts started in the last intake year can age out
// inside the grid.
func NewMonthIndex(startYear, endYear, tailMonths int) MonthIndex {
	years := endYear - startYear + 1
	if years < 1 {
		years = 1
	}
	return MonthIndex{StartYear: startYear, Months: years*12 + tailMonths}
}

// Offset converts a calendar (year, month) to a grid offset. The second
// return is false when the month falls outside the grid.
func (ix MonthIndex) Offset(year, month int) (int, bool) {
	off := (year-ix.StartYear)*12 + (month - 1)
	if off < 0 || off >= ix.Months {
		return 0, false
	}
	return off, true
}

// YearOf returns the calendar year of a grid offset.
func (ix MonthIndex) YearOf(offset int) int {
	return ix.StartYear + offset/12
}

// MonthOf returns the calendar month (1-12) of a grid offset.
func (ix MonthIndex) MonthOf(offset int) int {
	return offset%12 + 1
}

// NewSeries allocates a zeroed series aligned to the grid.
func (ix MonthIndex) NewSeries() []float64 {
	return make([]float64, ix.Months)
}

// ActiveStock converts monthly start quantities into the active project
// stock per month. Without a ramp each start of size n contributes n for
// exactly duration months (a sliding-window sum). With rampMonths > 0 the
// contribution builds linearly from 1/rampMonths in the first month to full
// strength once the offset reaches the ramp, then holds flat until the
// cohort ends. Events past the end of the grid are dropped; callers size the
// grid with enough tail to cover the durations they care about.
func ActiveStock(starts []float64, duration int, ix MonthIndex, rampMonths int) []float64 {
	active := ix.NewSeries()
	if duration <= 0 {
		return active
	}

	for m, n := range starts {
		if n < negligible {
			continue
		}
		for k := 0; k < duration; k++ {
			at := m + k
			if at >= ix.Months {
				break
			}
			if rampMonths > 0 {
				factor := float64(k+1) / float64(rampMonths)
				if factor > 1 {
					factor = 1
				}
				active[at] += n * factor
			} else {
				active[at] += n
			}
		}
	}
	return active
}

// Completions places each start event exactly duration months later,
// producing the inflow series for the next stage.
func Completions(starts []float64, duration int, ix MonthIndex) []float64 {
	done := ix.NewSeries()
	for m, n := range starts {
		if n < negligible {
			continue
		}
		at := m + duration
		if at < ix.Months {
			done[at] += n
		}
	}
	return done
}
