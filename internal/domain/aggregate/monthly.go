package aggregate

import (
	"time"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	"github.com/google/uuid"
)

// MonthWindow is the number of months in the chart, current month included
const MonthWindow = 6

// MonthSeries is the per-agency quote count of one month
type MonthSeries struct {
	Month  string // YYYY-MM
	Counts map[string]int
}

// ByMonthAgency counts quotes per reception month and agency name over the
// trailing window ending with now's month. Every month carries a zero for
// each known agency. Quotes outside the window, without a reception date or
// for an unknown agency are ignored.
func ByMonthAgency(quotes []entity.Quote, agencies []entity.Agency, now time.Time) []MonthSeries {
	loc := now.Location()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -(MonthWindow - 1), 0)

	series := make([]MonthSeries, MonthWindow)
	months := make(map[string]int, MonthWindow)
	for i := range series {
		key := first.AddDate(0, i, 0).Format("2006-01")
		counts := make(map[string]int, len(agencies))
		for _, a := range agencies {
			counts[a.Name] = 0
		}
		series[i] = MonthSeries{Month: key, Counts: counts}
		months[key] = i
	}

	names := make(map[uuid.UUID]string, len(agencies))
	for _, a := range agencies {
		names[a.ID] = a.Name
	}

	for _, q := range quotes {
		if q.ReceivedAt == nil {
			continue
		}
		name, ok := names[q.AgencyID]
		if !ok {
			continue
		}
		i, ok := months[q.ReceivedAt.In(loc).Format("2006-01")]
		if !ok {
			continue
		}
		series[i].Counts[name]++
	}
	return series
}
