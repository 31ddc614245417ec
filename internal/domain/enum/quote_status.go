package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// QuoteStatus is the primary lifecycle stage of a quote
type QuoteStatus string

const (
	QuoteStatusReceived       QuoteStatus = "received"
	QuoteStatusReminderJ2Sent QuoteStatus = "reminder_j2_sent"
	QuoteStatusEmailJ4Sent    QuoteStatus = "email_j4_sent"
	QuoteStatusConverted      QuoteStatus = "converted"
	QuoteStatusLost           QuoteStatus = "lost"
)

// QuoteStatuses lists the known statuses in lifecycle order
var QuoteStatuses = []QuoteStatus{
	QuoteStatusReceived,
	QuoteStatusReminderJ2Sent,
	QuoteStatusEmailJ4Sent,
	QuoteStatusConverted,
	QuoteStatusLost,
}

var quoteStatusLabels = map[QuoteStatus]string{
	QuoteStatusReceived:       "Reçu",
	QuoteStatusReminderJ2Sent: "Relancé J+2",
	QuoteStatusEmailJ4Sent:    "Email J+4",
	QuoteStatusConverted:      "Converti",
	QuoteStatusLost:           "Perdu",
}

// ParseQuoteStatus accepts a known status code
func ParseQuoteStatus(s string) (QuoteStatus, error) {
	st := QuoteStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("unknown quote status %q", s)
	}
	return st, nil
}

func (s QuoteStatus) String() string {
	return string(s)
}

// Label is the display name used by the dashboard
func (s QuoteStatus) Label() string {
	if l, ok := quoteStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// IsValid reports whether s is one of the known statuses
func (s QuoteStatus) IsValid() bool {
	_, ok := quoteStatusLabels[s]
	return ok
}

// IsTerminal reports whether no further lifecycle transition is accepted
func (s QuoteStatus) IsTerminal() bool {
	return s == QuoteStatusConverted || s == QuoteStatusLost
}

// Rank orders the non-terminal stages; terminal and unknown statuses rank -1
func (s QuoteStatus) Rank() int {
	switch s {
	case QuoteStatusReceived:
		return 0
	case QuoteStatusReminderJ2Sent:
		return 1
	case QuoteStatusEmailJ4Sent:
		return 2
	}
	return -1
}

// Advance returns the later of s and target among non-terminal stages
func (s QuoteStatus) Advance(target QuoteStatus) QuoteStatus {
	if s.Rank() >= target.Rank() {
		return s
	}
	return target
}

func (s *QuoteStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	st, err := ParseQuoteStatus(str)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

func (s QuoteStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Scan keeps unrecognized values as-is so that they surface instead of being lost
func (s *QuoteStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = QuoteStatusReceived
	case string:
		*s = QuoteStatus(v)
	case []byte:
		*s = QuoteStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into QuoteStatus", value)
	}
	return nil
}
