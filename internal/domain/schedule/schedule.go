// Package schedule derives the follow-up calendar from quote reception dates.
// Actions are never stored: they are recomputed from the quotes and the
// current time on every read.
package schedule

import (
	"sort"
	"time"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/enum"
)

// Action is a follow-up due on a quote
type Action struct {
	Kind  enum.ActionKind
	Due   time.Time
	Quote *entity.Quote

	Done bool
	// Suppressed is set when contact was established before the action was done
	Suppressed bool
	Overdue    bool
}

// Pending reports whether the action still has to be performed
func (a Action) Pending() bool {
	return !a.Done && !a.Suppressed
}

// Counts summarises a derived action list for the calendar header
type Counts struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Overdue int `json:"overdue"`
	Done    int `json:"done"`
}

var kinds = []enum.ActionKind{enum.ActionReminderJ2, enum.ActionEmailJ4}

// DeriveActions emits one action per kind for every open quote with a
// reception date, sorted by due date. Quotes sharing a due date keep their
// input order.
func DeriveActions(quotes []entity.Quote, now time.Time) []Action {
	today := Day(now, now.Location())
	actions := make([]Action, 0, len(quotes)*len(kinds))

	for i := range quotes {
		q := &quotes[i]
		if q.ReceivedAt == nil || q.IsTerminal() {
			continue
		}
		received := Day(*q.ReceivedAt, now.Location())
		for _, kind := range kinds {
			a := Action{
				Kind:  kind,
				Due:   received.AddDate(0, 0, kind.OffsetDays()),
				Quote: q,
				Done:  milestoneDone(q, kind),
			}
			a.Suppressed = !a.Done && q.ContactEstablished()
			a.Overdue = a.Pending() && today.After(a.Due)
			actions = append(actions, a)
		}
	}

	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Due.Before(actions[j].Due)
	})
	return actions
}

func milestoneDone(q *entity.Quote, kind enum.ActionKind) bool {
	switch kind {
	case enum.ActionReminderJ2:
		return q.ReminderJ2Sent()
	case enum.ActionEmailJ4:
		return q.EmailJ4Sent()
	}
	return false
}

// Filter returns a new slice holding the actions matching f. The input is
// left untouched.
func Filter(actions []Action, f enum.ActionFilter) []Action {
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		switch f {
		case enum.ActionFilterPending:
			if !a.Pending() {
				continue
			}
		case enum.ActionFilterOverdue:
			if !a.Overdue || a.Done {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

// Count tallies actions by state
func Count(actions []Action) Counts {
	c := Counts{Total: len(actions)}
	for _, a := range actions {
		if a.Done {
			c.Done++
		}
		if a.Pending() {
			c.Pending++
		}
		if a.Overdue {
			c.Overdue++
		}
	}
	return c
}

// Day truncates t to midnight of its calendar date in loc
func Day(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DaysSinceReception is the signed number of calendar days between the
// reception date and now. A reception date in the future gives a negative
// value. ok is false when the quote has no reception date.
func DaysSinceReception(q *entity.Quote, now time.Time) (days int, ok bool) {
	if q.ReceivedAt == nil {
		return 0, false
	}
	from := Day(*q.ReceivedAt, now.Location())
	to := Day(now, now.Location())
	// both ends sit on local midnight; rounding absorbs DST shifts
	return roundDays(to.Sub(from)), true
}

func roundDays(d time.Duration) int {
	h := d.Hours()
	if h >= 0 {
		return int((h + 12) / 24)
	}
	return -int((-h + 12) / 24)
}
