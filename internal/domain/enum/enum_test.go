package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteStatus_TerminalAndRank(t *testing.T) {
	assert.True(t, QuoteStatusConverted.IsTerminal())
	assert.True(t, QuoteStatusLost.IsTerminal())
	assert.False(t, QuoteStatusEmailJ4Sent.IsTerminal())

	assert.Equal(t, QuoteStatusReminderJ2Sent, QuoteStatusReceived.Advance(QuoteStatusReminderJ2Sent))
	assert.Equal(t, QuoteStatusEmailJ4Sent, QuoteStatusEmailJ4Sent.Advance(QuoteStatusReminderJ2Sent))
}

func TestQuoteStatus_UnmarshalRejectsUnknown(t *testing.T) {
	var s QuoteStatus
	require.NoError(t, json.Unmarshal([]byte(`"converted"`), &s))
	assert.Equal(t, QuoteStatusConverted, s)

	assert.Error(t, json.Unmarshal([]byte(`"Accepté"`), &s))
}

func TestQuoteStatus_ScanKeepsUnknown(t *testing.T) {
	var s QuoteStatus
	require.NoError(t, s.Scan("archived"))
	assert.Equal(t, QuoteStatus("archived"), s)
	assert.False(t, s.IsValid())

	require.NoError(t, s.Scan(nil))
	assert.Equal(t, QuoteStatusReceived, s)
}

func TestParseActionFilter(t *testing.T) {
	f, err := ParseActionFilter("")
	require.NoError(t, err)
	assert.Equal(t, ActionFilterPending, f)

	_, err = ParseActionFilter("late")
	assert.Error(t, err)
}
