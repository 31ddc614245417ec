package response

import (
	"time"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/application/service"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/aggregate"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/enum"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/schedule"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/pagination"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// QuoteView renders a quote with its milestone projections
type QuoteView struct {
	ID              uuid.UUID        `json:"id"`
	Number          string           `json:"number"`
	ClientFirstName string           `json:"client_first_name"`
	ClientLastName  string           `json:"client_last_name"`
	ClientEmail     string           `json:"client_email"`
	ClientPhone     *string          `json:"client_phone,omitempty"`
	ClientCommune   *string          `json:"client_commune,omitempty"`
	Amount          *float64         `json:"amount,omitempty"`
	AgencyID        uuid.UUID        `json:"agency_id"`
	AgencyName      string           `json:"agency_name,omitempty"`
	Status          enum.QuoteStatus `json:"status"`
	StatusLabel     string           `json:"status_label"`
	Notes           *string          `json:"notes,omitempty"`

	ReceivedAt   *time.Time `json:"received_at,omitempty"`
	ReminderJ2At *time.Time `json:"reminder_j2_at,omitempty"`
	EmailJ4At    *time.Time `json:"email_j4_at,omitempty"`
	CallJ0At     *time.Time `json:"call_j0_at,omitempty"`
	CallJ2At     *time.Time `json:"call_j2_at,omitempty"`
	ContactAt    *time.Time `json:"contact_at,omitempty"`
	ConvertedAt  *time.Time `json:"converted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	ReminderJ2Sent     bool `json:"reminder_j2_sent"`
	EmailJ4Sent        bool `json:"email_j4_sent"`
	CallJ0Done         bool `json:"call_j0_done"`
	CallJ2Done         bool `json:"call_j2_done"`
	ContactEstablished bool `json:"contact_established"`
	Converted          bool `json:"converted"`

	DaysSinceReception *int `json:"days_since_reception,omitempty"`
}

// NewQuoteView builds the view of q as seen at now
func NewQuoteView(q *entity.Quote, now time.Time) QuoteView {
	v := QuoteView{
		ID:                 q.ID,
		Number:             q.Number,
		ClientFirstName:    q.ClientFirstName,
		ClientLastName:     q.ClientLastName,
		ClientEmail:        q.ClientEmail,
		ClientPhone:        q.ClientPhone,
		ClientCommune:      q.ClientCommune,
		Amount:             q.Amount,
		AgencyID:           q.AgencyID,
		AgencyName:         q.AgencyName(),
		Status:             q.Status,
		StatusLabel:        q.Status.Label(),
		Notes:              q.Notes,
		ReceivedAt:         q.ReceivedAt,
		ReminderJ2At:       q.ReminderJ2At,
		EmailJ4At:          q.EmailJ4At,
		CallJ0At:           q.CallJ0At,
		CallJ2At:           q.CallJ2At,
		ContactAt:          q.ContactAt,
		ConvertedAt:        q.ConvertedAt,
		CreatedAt:          q.CreatedAt,
		UpdatedAt:          q.UpdatedAt,
		ReminderJ2Sent:     q.ReminderJ2Sent(),
		EmailJ4Sent:        q.EmailJ4Sent(),
		CallJ0Done:         q.CallJ0Done(),
		CallJ2Done:         q.CallJ2Done(),
		ContactEstablished: q.ContactEstablished(),
		Converted:          q.Converted(),
	}
	if days, ok := schedule.DaysSinceReception(q, now); ok {
		v.DaysSinceReception = &days
	}
	return v
}

// NewQuoteViews renders a list of quotes
func NewQuoteViews(quotes []entity.Quote, now time.Time) []QuoteView {
	views := make([]QuoteView, len(quotes))
	for i := range quotes {
		views[i] = NewQuoteView(&quotes[i], now)
	}
	return views
}

// NewQuotePage renders a page of quotes
func NewQuotePage(page *pagination.PaginatedResult[entity.Quote], now time.Time) *pagination.PaginatedResult[QuoteView] {
	return pagination.NewPaginatedResult(NewQuoteViews(page.Items, now), page.Pagination)
}

// ActionView is one calendar entry
type ActionView struct {
	Kind       enum.ActionKind `json:"kind"`
	Label      string          `json:"label"`
	Due        string          `json:"due"`
	Done       bool            `json:"done"`
	Suppressed bool            `json:"suppressed"`
	Overdue    bool            `json:"overdue"`
	Quote      QuoteSummary    `json:"quote"`
}

// QuoteSummary is the short form of a quote embedded in other views
type QuoteSummary struct {
	ID          uuid.UUID        `json:"id"`
	Number      string           `json:"number"`
	ClientName  string           `json:"client_name"`
	ClientEmail string           `json:"client_email"`
	ClientPhone *string          `json:"client_phone,omitempty"`
	AgencyName  string           `json:"agency_name,omitempty"`
	Status      enum.QuoteStatus `json:"status"`
	Amount      *float64         `json:"amount,omitempty"`
	ReceivedAt  *time.Time       `json:"received_at,omitempty"`
}

func newQuoteSummary(q *entity.Quote) QuoteSummary {
	return QuoteSummary{
		ID:          q.ID,
		Number:      q.Number,
		ClientName:  q.ClientName(),
		ClientEmail: q.ClientEmail,
		ClientPhone: q.ClientPhone,
		AgencyName:  q.AgencyName(),
		Status:      q.Status,
		Amount:      q.Amount,
		ReceivedAt:  q.ReceivedAt,
	}
}

// CalendarView is the calendar page payload
type CalendarView struct {
	Filter  enum.ActionFilter `json:"filter"`
	Counts  schedule.Counts   `json:"counts"`
	Actions []ActionView      `json:"actions"`
}

// NewCalendarView renders the calendar
func NewCalendarView(cal *service.Calendar) CalendarView {
	actions := make([]ActionView, len(cal.Actions))
	for i, a := range cal.Actions {
		actions[i] = ActionView{
			Kind:       a.Kind,
			Label:      a.Kind.Label(),
			Due:        a.Due.Format(dateLayout),
			Done:       a.Done,
			Suppressed: a.Suppressed,
			Overdue:    a.Overdue,
			Quote:      newQuoteSummary(a.Quote),
		}
	}
	return CalendarView{Filter: cal.Filter, Counts: cal.Counts, Actions: actions}
}

// ColumnView is one kanban column
type ColumnView struct {
	Status enum.QuoteStatus `json:"status"`
	Label  string           `json:"label"`
	Count  int              `json:"count"`
	Quotes []QuoteSummary   `json:"quotes"`
}

// NewKanbanView renders the kanban columns
func NewKanbanView(columns []aggregate.Column) []ColumnView {
	out := make([]ColumnView, len(columns))
	for i, col := range columns {
		quotes := make([]QuoteSummary, len(col.Quotes))
		for j, q := range col.Quotes {
			quotes[j] = newQuoteSummary(q)
		}
		out[i] = ColumnView{Status: col.Status, Label: col.Label, Count: len(quotes), Quotes: quotes}
	}
	return out
}

// ClientView is one client roll-up row
type ClientView struct {
	Email          string  `json:"email"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Phone          *string `json:"phone,omitempty"`
	Commune        *string `json:"commune,omitempty"`
	QuoteCount     int     `json:"quote_count"`
	ConvertedCount int     `json:"converted_count"`
	ConversionRate float64 `json:"conversion_rate"`
}

// NewClientViews renders the client roll-up
func NewClientViews(clients []aggregate.Client) []ClientView {
	out := make([]ClientView, len(clients))
	for i, c := range clients {
		out[i] = ClientView{
			Email:          c.Email,
			FirstName:      c.FirstName,
			LastName:       c.LastName,
			Phone:          c.Phone,
			Commune:        c.Commune,
			QuoteCount:     c.Total,
			ConvertedCount: c.Converted,
			ConversionRate: c.Rate,
		}
	}
	return out
}

// DashboardView is the dashboard page payload
type DashboardView struct {
	TotalQuotes          int               `json:"total_quotes"`
	Awaiting             int               `json:"awaiting"`
	EmailJ4Stage         int               `json:"email_j4_stage"`
	Converted            int               `json:"converted"`
	Clients              int               `json:"clients"`
	ConversionRate       int               `json:"conversion_rate"`
	ReceivedToday        int               `json:"received_today"`
	RemindersJ2Due       int               `json:"reminders_j2_due"`
	EmailsJ4Due          int               `json:"emails_j4_due"`
	RecentConversionRate int               `json:"recent_conversion_rate"`
	Agencies             []string          `json:"agencies"`
	Monthly              []MonthSeriesView `json:"monthly"`
}

// MonthSeriesView is one chart point
type MonthSeriesView struct {
	Month  string         `json:"month"`
	Counts map[string]int `json:"counts"`
}

// NewDashboardView renders the dashboard
func NewDashboardView(d *service.Dashboard) DashboardView {
	names := make([]string, len(d.Agencies))
	for i, a := range d.Agencies {
		names[i] = a.Name
	}
	monthly := make([]MonthSeriesView, len(d.Monthly))
	for i, m := range d.Monthly {
		monthly[i] = MonthSeriesView{Month: m.Month, Counts: m.Counts}
	}
	s := d.Stats
	return DashboardView{
		TotalQuotes:          s.Total,
		Awaiting:             s.Awaiting,
		EmailJ4Stage:         s.EmailJ4Stage,
		Converted:            s.Converted,
		Clients:              s.Clients,
		ConversionRate:       s.ConversionRate,
		ReceivedToday:        s.ReceivedToday,
		RemindersJ2Due:       s.RemindersJ2Due,
		EmailsJ4Due:          s.EmailsJ4Due,
		RecentConversionRate: s.RecentConversionRate,
		Agencies:             names,
		Monthly:              monthly,
	}
}
