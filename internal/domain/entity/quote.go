package entity

import (
	"strings"
	"time"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quote is a sales estimate tracked through the follow-up lifecycle.
//
// Status and the milestone timestamps are the only stored lifecycle state.
// The boolean milestones (ReminderJ2Sent, Converted, ...) are projections
// computed from them, so contradictory combinations cannot be persisted.
type Quote struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Number          string           `gorm:"size:50;not null;index" json:"number"`
	ClientFirstName string           `gorm:"size:255" json:"client_first_name"`
	ClientLastName  string           `gorm:"size:255" json:"client_last_name"`
	ClientEmail     string           `gorm:"size:255;index" json:"client_email"`
	ClientPhone     *string          `gorm:"size:50" json:"client_phone,omitempty"`
	ClientCommune   *string          `gorm:"size:255" json:"client_commune,omitempty"`
	Amount          *float64         `gorm:"type:decimal(12,2)" json:"amount,omitempty"`
	AgencyID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"agency_id"`
	ReceivedAt      *time.Time       `gorm:"index" json:"received_at,omitempty"`
	Status          enum.QuoteStatus `gorm:"size:32;not null;default:received;index" json:"status"`
	ReminderJ2At    *time.Time       `json:"reminder_j2_at,omitempty"`
	EmailJ4At       *time.Time       `gorm:"column:email_j4_at" json:"email_j4_at,omitempty"`
	CallJ0At        *time.Time       `gorm:"column:call_j0_at" json:"call_j0_at,omitempty"`
	CallJ2At        *time.Time       `gorm:"column:call_j2_at" json:"call_j2_at,omitempty"`
	ContactAt       *time.Time       `json:"contact_at,omitempty"`
	ConvertedAt     *time.Time       `json:"converted_at,omitempty"`
	Notes           *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	// Relationships
	Agency *Agency `gorm:"foreignKey:AgencyID" json:"agency,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quote
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// ClientName joins first and last name
func (q *Quote) ClientName() string {
	return strings.TrimSpace(q.ClientFirstName + " " + q.ClientLastName)
}

// AgencyName returns the preloaded agency name, if any
func (q *Quote) AgencyName() string {
	if q.Agency == nil {
		return ""
	}
	return q.Agency.Name
}

func (q *Quote) ReminderJ2Sent() bool     { return q.ReminderJ2At != nil }
func (q *Quote) EmailJ4Sent() bool        { return q.EmailJ4At != nil }
func (q *Quote) CallJ0Done() bool         { return q.CallJ0At != nil }
func (q *Quote) CallJ2Done() bool         { return q.CallJ2At != nil }
func (q *Quote) ContactEstablished() bool { return q.ContactAt != nil }
func (q *Quote) Converted() bool          { return q.Status == enum.QuoteStatusConverted }

// IsTerminal reports whether the quote is converted or lost
func (q *Quote) IsTerminal() bool {
	return q.Status.IsTerminal()
}

// QuotePatch lists the columns a lifecycle transition writes. Nil fields are
// left untouched; UpdatedAt is always written.
type QuotePatch struct {
	Status       *enum.QuoteStatus
	ReminderJ2At *time.Time
	EmailJ4At    *time.Time
	CallJ0At     *time.Time
	CallJ2At     *time.Time
	ContactAt    *time.Time
	ConvertedAt  *time.Time
	Notes        *string
	UpdatedAt    time.Time
}

// Columns renders the patch as a column map for a single UPDATE statement
func (p *QuotePatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{"updated_at": p.UpdatedAt}
	if p.Status != nil {
		cols["status"] = *p.Status
	}
	if p.ReminderJ2At != nil {
		cols["reminder_j2_at"] = *p.ReminderJ2At
	}
	if p.EmailJ4At != nil {
		cols["email_j4_at"] = *p.EmailJ4At
	}
	if p.CallJ0At != nil {
		cols["call_j0_at"] = *p.CallJ0At
	}
	if p.CallJ2At != nil {
		cols["call_j2_at"] = *p.CallJ2At
	}
	if p.ContactAt != nil {
		cols["contact_at"] = *p.ContactAt
	}
	if p.ConvertedAt != nil {
		cols["converted_at"] = *p.ConvertedAt
	}
	if p.Notes != nil {
		cols["notes"] = *p.Notes
	}
	return cols
}

// ApplyTo writes the patch onto q in memory
func (p *QuotePatch) ApplyTo(q *Quote) {
	if p.Status != nil {
		q.Status = *p.Status
	}
	if p.ReminderJ2At != nil {
		q.ReminderJ2At = timePtr(*p.ReminderJ2At)
	}
	if p.EmailJ4At != nil {
		q.EmailJ4At = timePtr(*p.EmailJ4At)
	}
	if p.CallJ0At != nil {
		q.CallJ0At = timePtr(*p.CallJ0At)
	}
	if p.CallJ2At != nil {
		q.CallJ2At = timePtr(*p.CallJ2At)
	}
	if p.ContactAt != nil {
		q.ContactAt = timePtr(*p.ContactAt)
	}
	if p.ConvertedAt != nil {
		q.ConvertedAt = timePtr(*p.ConvertedAt)
	}
	if p.Notes != nil {
		notes := *p.Notes
		q.Notes = &notes
	}
	q.UpdatedAt = p.UpdatedAt
}

func timePtr(t time.Time) *time.Time {
	return &t
}
