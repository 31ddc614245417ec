package aggregate

import (
	"testing"
	"time"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
	return &t
}

func TestByStatus_KeepsUnknown(t *testing.T) {
	quotes := []entity.Quote{
		{Number: "1", Status: enum.QuoteStatusReceived},
		{Number: "2", Status: enum.QuoteStatus("Accepté")},
		{Number: "3", Status: enum.QuoteStatusLost},
		{Number: "4", Status: enum.QuoteStatusReceived},
	}

	columns := ByStatus(quotes)
	require.Len(t, columns, len(enum.QuoteStatuses)+1)
	assert.Equal(t, enum.QuoteStatusReceived, columns[0].Status)
	assert.Len(t, columns[0].Quotes, 2)
	assert.Len(t, columns[4].Quotes, 1)
	assert.Empty(t, columns[2].Quotes)

	last := columns[len(columns)-1]
	assert.Equal(t, StatusUnknown, last.Status)
	require.Len(t, last.Quotes, 1)
	assert.Equal(t, "2", last.Quotes[0].Number)

	total := 0
	for _, c := range columns {
		total += len(c.Quotes)
	}
	assert.Equal(t, len(quotes), total)
}

func TestByClient_RollUp(t *testing.T) {
	quotes := []entity.Quote{
		{ClientEmail: "b@x.fr", Status: enum.QuoteStatusReceived},
		{ClientEmail: "A@x.fr", Status: enum.QuoteStatusConverted, ClientLastName: "Old"},
		{ClientEmail: " a@x.fr ", Status: enum.QuoteStatusReceived, ClientLastName: "New"},
		{ClientEmail: "", Status: enum.QuoteStatusConverted},
	}

	clients := ByClient(quotes)
	require.Len(t, clients, 2)

	a, b := clients[0], clients[1]
	assert.Equal(t, "a@x.fr", a.Email)
	assert.Equal(t, 2, a.Total)
	assert.Equal(t, 1, a.Converted)
	assert.InDelta(t, 50.0, a.Rate, 0.001)
	assert.Equal(t, "New", a.LastName)

	assert.Equal(t, "b@x.fr", b.Email)
	assert.Equal(t, 1, b.Total)
	assert.Equal(t, 0, b.Converted)
	assert.Zero(t, b.Rate)
}

func TestByClient_TiesKeepFirstSeenOrder(t *testing.T) {
	quotes := []entity.Quote{
		{ClientEmail: "c@x.fr"},
		{ClientEmail: "a@x.fr"},
		{ClientEmail: "b@x.fr"},
	}
	clients := ByClient(quotes)
	require.Len(t, clients, 3)
	assert.Equal(t, "c@x.fr", clients[0].Email)
	assert.Equal(t, "a@x.fr", clients[1].Email)
	assert.Equal(t, "b@x.fr", clients[2].Email)
}

func TestPercent(t *testing.T) {
	assert.Zero(t, Percent(0, 0))
	assert.InDelta(t, 25.0, Percent(1, 4), 0.001)
}

func TestByMonthAgency(t *testing.T) {
	x := entity.Agency{ID: uuid.New(), Name: "X"}
	y := entity.Agency{ID: uuid.New(), Name: "Y"}
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	quotes := []entity.Quote{
		{AgencyID: x.ID, ReceivedAt: day(2024, 3, 15)},
		{AgencyID: y.ID, ReceivedAt: day(2023, 11, 30)}, // before the window
		{AgencyID: uuid.New(), ReceivedAt: day(2024, 3, 15)},
		{AgencyID: y.ID},
	}

	series := ByMonthAgency(quotes, []entity.Agency{x, y}, now)
	require.Len(t, series, MonthWindow)
	assert.Equal(t, "2023-12", series[0].Month)
	assert.Equal(t, "2024-05", series[5].Month)

	for _, s := range series {
		require.Len(t, s.Counts, 2)
		want := 0
		if s.Month == "2024-03" {
			want = 1
		}
		assert.Equal(t, want, s.Counts["X"], s.Month)
		assert.Equal(t, 0, s.Counts["Y"], s.Month)
	}
}

func TestByMonthAgency_YearBoundary(t *testing.T) {
	now := time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)
	series := ByMonthAgency(nil, nil, now)

	var months []string
	for _, s := range series {
		months = append(months, s.Month)
	}
	assert.Equal(t, []string{"2023-09", "2023-10", "2023-11", "2023-12", "2024-01", "2024-02"}, months)
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2024, 3, 20, 15, 0, 0, 0, time.UTC)
	quotes := []entity.Quote{
		{ClientEmail: "a@x.fr", Status: enum.QuoteStatusReceived, ReceivedAt: day(2024, 3, 20)},
		{ClientEmail: "a@x.fr", Status: enum.QuoteStatusReceived, ReceivedAt: day(2024, 3, 17)},
		{ClientEmail: "b@x.fr", Status: enum.QuoteStatusReminderJ2Sent, ReceivedAt: day(2024, 3, 15), ReminderJ2At: day(2024, 3, 17)},
		{ClientEmail: "c@x.fr", Status: enum.QuoteStatusEmailJ4Sent, ReceivedAt: day(2024, 3, 10), ReminderJ2At: day(2024, 3, 12), EmailJ4At: day(2024, 3, 14)},
		{ClientEmail: "d@x.fr", Status: enum.QuoteStatusConverted, ReceivedAt: day(2024, 3, 1)},
		{ClientEmail: "", Status: enum.QuoteStatusLost, ReceivedAt: day(2024, 1, 2)},
	}

	s := ComputeStats(quotes, now)
	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 3, s.Awaiting)
	assert.Equal(t, 1, s.EmailJ4Stage)
	assert.Equal(t, 1, s.Converted)
	assert.Equal(t, 4, s.Clients)
	assert.Equal(t, 17, s.ConversionRate)
	assert.Equal(t, 1, s.ReceivedToday)
	// received 03-17: J+2 due 03-19
	assert.Equal(t, 1, s.RemindersJ2Due)
	// received 03-15: J+4 due 03-19
	assert.Equal(t, 1, s.EmailsJ4Due)
	// five quotes since 02-19, one converted
	assert.Equal(t, 20, s.RecentConversionRate)
}

func TestComputeStats_ReceivedTodayExcludesOtherDays(t *testing.T) {
	now := time.Date(2024, 3, 20, 15, 0, 0, 0, time.UTC)
	midnight := time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC)
	quotes := []entity.Quote{
		{Status: enum.QuoteStatusReceived, ReceivedAt: day(2024, 3, 20)},
		{Status: enum.QuoteStatusReceived, ReceivedAt: day(2024, 3, 19)},
		{Status: enum.QuoteStatusReceived, ReceivedAt: &midnight},
		{Status: enum.QuoteStatusReceived, ReceivedAt: day(2024, 3, 30)},
	}

	s := ComputeStats(quotes, now)
	assert.Equal(t, 1, s.ReceivedToday)
	assert.Equal(t, 4, s.Total)
}

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(nil, time.Now())
	assert.Equal(t, Stats{}, s)
}
