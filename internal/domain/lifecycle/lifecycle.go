// Package lifecycle holds the follow-up state machine of a quote.
//
// Every function is pure: it inspects a quote, decides whether the requested
// transition is legal, and returns the patch to persist. The quote itself is
// never mutated, so a rejected transition cannot leave partial state behind.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/enum"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/apperror"
)

// Command is a transition request as received from a caller
type Command struct {
	Transition enum.Transition
	Notes      string
}

// Apply dispatches cmd to the matching transition
func Apply(q *entity.Quote, cmd Command, now time.Time) (*entity.QuotePatch, error) {
	switch cmd.Transition {
	case enum.TransitionCallJ0Done:
		return MarkCallJ0Done(q, now)
	case enum.TransitionCallJ2Done:
		return MarkCallJ2Done(q, now)
	case enum.TransitionContactEstablished:
		return MarkContactEstablished(q, now)
	case enum.TransitionReminderJ2Sent:
		return MarkReminderJ2Sent(q, now)
	case enum.TransitionEmailJ4Sent:
		return MarkEmailJ4Sent(q, now)
	case enum.TransitionConvert:
		return Convert(q, now)
	case enum.TransitionMarkLost:
		return MarkLost(q, now)
	case enum.TransitionSaveNotes:
		return SaveNotes(q, cmd.Notes, now), nil
	}
	return nil, apperror.NewBadRequestError(fmt.Sprintf("Unknown transition %q", cmd.Transition))
}

// MarkCallJ0Done records the first phone call to the client
func MarkCallJ0Done(q *entity.Quote, now time.Time) (*entity.QuotePatch, error) {
	if err := requireOpen(q); err != nil {
		return nil, err
	}
	if q.ContactEstablished() {
		return nil, apperror.NewInvalidTransitionError("Contact already established, no further calls are scheduled")
	}
	return &entity.QuotePatch{CallJ0At: &now, UpdatedAt: now}, nil
}

// MarkCallJ2Done records the second phone call. A confirmed J+2 call also
// satisfies the automatic J+2 reminder, so both tracks merge here and the
// status is set to reminder_j2_sent whatever stage the quote had reached.
func MarkCallJ2Done(q *entity.Quote, now time.Time) (*entity.QuotePatch, error) {
	if err := requireOpen(q); err != nil {
		return nil, err
	}
	if q.ContactEstablished() {
		return nil, apperror.NewInvalidTransitionError("Contact already established, no further calls are scheduled")
	}
	if !q.CallJ0Done() {
		return nil, apperror.NewInvalidTransitionError("J+0 call must be recorded before the J+2 call")
	}
	if q.CallJ2Done() {
		return nil, apperror.NewInvalidTransitionError("J+2 call already recorded")
	}

	status := enum.QuoteStatusReminderJ2Sent
	return &entity.QuotePatch{
		CallJ2At:     &now,
		ReminderJ2At: &now,
		Status:       &status,
		UpdatedAt:    now,
	}, nil
}

// MarkContactEstablished records a confirmed human touchpoint, which
// suppresses the remaining automatic follow-ups
func MarkContactEstablished(q *entity.Quote, now time.Time) (*entity.QuotePatch, error) {
	if err := requireOpen(q); err != nil {
		return nil, err
	}
	return &entity.QuotePatch{ContactAt: &now, UpdatedAt: now}, nil
}

// MarkReminderJ2Sent records the automatic J+2 reminder
func MarkReminderJ2Sent(q *entity.Quote, now time.Time) (*entity.QuotePatch, error) {
	if err := requireOpen(q); err != nil {
		return nil, err
	}
	if q.ReminderJ2Sent() {
		return nil, apperror.NewInvalidTransitionError("J+2 reminder already sent")
	}
	status := q.Status.Advance(enum.QuoteStatusReminderJ2Sent)
	return &entity.QuotePatch{ReminderJ2At: &now, Status: &status, UpdatedAt: now}, nil
}

// MarkEmailJ4Sent records the J+4 follow-up email
func MarkEmailJ4Sent(q *entity.Quote, now time.Time) (*entity.QuotePatch, error) {
	if err := requireOpen(q); err != nil {
		return nil, err
	}
	if q.EmailJ4Sent() {
		return nil, apperror.NewInvalidTransitionError("J+4 email already sent")
	}
	status := q.Status.Advance(enum.QuoteStatusEmailJ4Sent)
	return &entity.QuotePatch{EmailJ4At: &now, Status: &status, UpdatedAt: now}, nil
}

// Convert closes the quote as won
func Convert(q *entity.Quote, now time.Time) (*entity.QuotePatch, error) {
	if err := requireOpen(q); err != nil {
		return nil, err
	}
	status := enum.QuoteStatusConverted
	return &entity.QuotePatch{ConvertedAt: &now, Status: &status, UpdatedAt: now}, nil
}

// MarkLost closes the quote as lost
func MarkLost(q *entity.Quote, now time.Time) (*entity.QuotePatch, error) {
	if err := requireOpen(q); err != nil {
		return nil, err
	}
	status := enum.QuoteStatusLost
	return &entity.QuotePatch{Status: &status, UpdatedAt: now}, nil
}

// SaveNotes replaces the free-text notes. Notes stay editable on closed quotes.
func SaveNotes(q *entity.Quote, notes string, now time.Time) *entity.QuotePatch {
	return &entity.QuotePatch{Notes: &notes, UpdatedAt: now}
}

// MoveTo resolves a kanban drop onto target into the transition reaching it
func MoveTo(q *entity.Quote, target enum.QuoteStatus, now time.Time) (*entity.QuotePatch, error) {
	if !target.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "status", Message: fmt.Sprintf("unknown status %q", target)},
		})
	}
	if q.Status == target {
		return nil, apperror.NewInvalidTransitionError(fmt.Sprintf("Quote is already %s", target))
	}
	if err := requireOpen(q); err != nil {
		return nil, err
	}

	switch target {
	case enum.QuoteStatusReminderJ2Sent:
		if q.Status.Rank() > target.Rank() {
			return nil, moveBackError(q.Status, target)
		}
		return MarkReminderJ2Sent(q, now)
	case enum.QuoteStatusEmailJ4Sent:
		return MarkEmailJ4Sent(q, now)
	case enum.QuoteStatusConverted:
		return Convert(q, now)
	case enum.QuoteStatusLost:
		return MarkLost(q, now)
	}
	return nil, moveBackError(q.Status, target)
}

func requireOpen(q *entity.Quote) error {
	if q.IsTerminal() {
		return apperror.NewInvalidTransitionError(fmt.Sprintf("Quote is closed (%s)", q.Status))
	}
	return nil
}

func moveBackError(from, to enum.QuoteStatus) error {
	return apperror.NewInvalidTransitionError(fmt.Sprintf("Cannot move a quote back from %s to %s", from, to))
}
