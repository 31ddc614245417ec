package enum

import "fmt"

// ActionKind names a scheduled follow-up derived from the reception date
type ActionKind string

const (
	ActionReminderJ2 ActionKind = "reminder_j2"
	ActionEmailJ4    ActionKind = "email_j4"
)

// OffsetDays is the number of days after reception the action falls due
func (k ActionKind) OffsetDays() int {
	switch k {
	case ActionReminderJ2:
		return 2
	case ActionEmailJ4:
		return 4
	}
	return 0
}

// Label is the display name used by the calendar
func (k ActionKind) Label() string {
	switch k {
	case ActionReminderJ2:
		return "Relance J+2"
	case ActionEmailJ4:
		return "Email J+4"
	}
	return string(k)
}

// ActionFilter selects a view over derived actions
type ActionFilter string

const (
	ActionFilterAll     ActionFilter = "all"
	ActionFilterPending ActionFilter = "pending"
	ActionFilterOverdue ActionFilter = "overdue"
)

// ParseActionFilter defaults to pending, the calendar's landing view
func ParseActionFilter(s string) (ActionFilter, error) {
	switch ActionFilter(s) {
	case "":
		return ActionFilterPending, nil
	case ActionFilterAll, ActionFilterPending, ActionFilterOverdue:
		return ActionFilter(s), nil
	}
	return "", fmt.Errorf("unknown action filter %q", s)
}
