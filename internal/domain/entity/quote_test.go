package entity

import (
	"testing"
	"time"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/enum"
	"github.com/stretchr/testify/assert"
)

func TestQuote_Projections(t *testing.T) {
	now := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	q := Quote{Status: enum.QuoteStatusReceived}

	assert.False(t, q.ReminderJ2Sent())
	assert.False(t, q.Converted())

	q.ReminderJ2At = &now
	q.Status = enum.QuoteStatusConverted
	assert.True(t, q.ReminderJ2Sent())
	assert.True(t, q.Converted())
	assert.True(t, q.IsTerminal())
}

func TestQuotePatch_ColumnsAndApply(t *testing.T) {
	now := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	status := enum.QuoteStatusReminderJ2Sent
	p := &QuotePatch{Status: &status, CallJ2At: &now, ReminderJ2At: &now, UpdatedAt: now}

	cols := p.Columns()
	assert.Len(t, cols, 4)
	assert.Equal(t, status, cols["status"])
	assert.Equal(t, now, cols["call_j2_at"])

	q := Quote{Status: enum.QuoteStatusReceived}
	p.ApplyTo(&q)
	assert.Equal(t, status, q.Status)
	assert.True(t, q.CallJ2Done())
	assert.True(t, q.ReminderJ2Sent())
	assert.Equal(t, now, q.UpdatedAt)
	assert.Nil(t, q.ContactAt)
}

func TestQuote_ClientName(t *testing.T) {
	q := Quote{ClientFirstName: "Marie", ClientLastName: "Curie"}
	assert.Equal(t, "Marie Curie", q.ClientName())
	assert.Equal(t, "", (&Quote{}).ClientName())
}
