package aggregate

import (
	"math"
	"time"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/enum"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/schedule"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/utils"
)

// RecentWindowDays bounds the recent conversion rate
const RecentWindowDays = 30

// Stats are the dashboard headline figures
type Stats struct {
	Total          int
	Awaiting       int
	EmailJ4Stage   int
	Converted      int
	Clients        int
	ConversionRate int

	ReceivedToday        int
	RemindersJ2Due       int
	EmailsJ4Due          int
	RecentConversionRate int
}

// ComputeStats derives the dashboard figures from the full quote set
func ComputeStats(quotes []entity.Quote, now time.Time) Stats {
	var s Stats
	today := schedule.Day(now, now.Location())
	tomorrow := today.AddDate(0, 0, 1)
	recentFrom := today.AddDate(0, 0, -RecentWindowDays)
	emails := make(map[string]struct{})
	var recent, recentConverted int

	for i := range quotes {
		q := &quotes[i]
		s.Total++
		switch q.Status {
		case enum.QuoteStatusReceived, enum.QuoteStatusReminderJ2Sent:
			s.Awaiting++
		case enum.QuoteStatusEmailJ4Sent:
			s.EmailJ4Stage++
		case enum.QuoteStatusConverted:
			s.Converted++
		}
		if e := utils.NormalizeEmail(q.ClientEmail); e != "" {
			emails[e] = struct{}{}
		}
		if q.ReceivedAt == nil {
			continue
		}
		if !q.ReceivedAt.Before(today) && q.ReceivedAt.Before(tomorrow) {
			s.ReceivedToday++
		}
		if !q.ReceivedAt.Before(recentFrom) {
			recent++
			if q.Converted() {
				recentConverted++
			}
		}
	}

	for _, a := range schedule.DeriveActions(quotes, now) {
		if !a.Pending() || a.Due.After(today) {
			continue
		}
		switch a.Kind {
		case enum.ActionReminderJ2:
			s.RemindersJ2Due++
		case enum.ActionEmailJ4:
			s.EmailsJ4Due++
		}
	}

	s.Clients = len(emails)
	s.ConversionRate = roundPercent(s.Converted, s.Total)
	s.RecentConversionRate = roundPercent(recentConverted, recent)
	return s
}

func roundPercent(part, total int) int {
	return int(math.Round(Percent(part, total)))
}
