package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/application/service"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/config"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	domainRepo "github.com/LeFrancilien/dash-kangourou-nova/internal/domain/repository"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/infrastructure/memstore"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/presentation/http/handler"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/apperror"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/email"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedNow = time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type recordingSender struct {
	sent []email.FollowUp
	err  error
}

func (r *recordingSender) SendFollowUp(msg email.FollowUp) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

// downQuotes fails every list call as an unreachable database would
type downQuotes struct {
	domainRepo.QuoteRepository
}

func (downQuotes) List(ctx context.Context, params *domainRepo.QuoteFilterParams) ([]entity.Quote, error) {
	return nil, apperror.NewStoreUnavailableError(errors.New("connection refused"))
}

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Kind    string                `json:"kind"`
	Data    json.RawMessage       `json:"data"`
	Errors  []apperror.FieldError `json:"errors"`
}

type testServer struct {
	router *gin.Engine
	mailer *recordingSender
	agency entity.Agency
}

func newServer(t *testing.T, auth bool, quotes domainRepo.QuoteRepository) *testServer {
	t.Helper()
	store := memstore.New()
	if quotes == nil {
		quotes = store.Quotes()
	}

	agencies := service.NewAgencyService(store.Agencies())
	_, err := agencies.SeedAgencies(context.Background(), []string{"Paris 15", "Versailles"})
	require.NoError(t, err)
	agency, err := store.Agencies().GetByName(context.Background(), "Paris 15")
	require.NoError(t, err)

	mailer := &recordingSender{}
	cfg := &config.Config{
		App:  config.AppConfig{Name: "dash-test"},
		Auth: config.AuthConfig{Enabled: auth, Secret: "secret"},
	}
	h := &Handlers{
		Quote:    handler.NewQuoteHandler(service.NewQuoteService(quotes, store.Agencies(), mailer, fixedClock), fixedClock),
		Calendar: handler.NewCalendarHandler(service.NewCalendarService(quotes, fixedClock)),
		Insight:  handler.NewInsightHandler(service.NewInsightService(quotes, store.Agencies(), fixedClock)),
		Agency:   handler.NewAgencyHandler(agencies),
	}
	router := Setup(h, &Deps{
		JWTManager: utils.NewJWTManager(cfg.Auth.Secret, ""),
		Cfg:        cfg,
		Logger:     zerolog.Nop(),
	})
	return &testServer{router: router, mailer: mailer, agency: *agency}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

type quoteData struct {
	ID                 uuid.UUID `json:"id"`
	Number             string    `json:"number"`
	Status             string    `json:"status"`
	ReminderJ2Sent     bool      `json:"reminder_j2_sent"`
	EmailJ4Sent        bool      `json:"email_j4_sent"`
	CallJ0Done         bool      `json:"call_j0_done"`
	CallJ2Done         bool      `json:"call_j2_done"`
	Converted          bool      `json:"converted"`
	Notes              *string   `json:"notes"`
	DaysSinceReception *int      `json:"days_since_reception"`
}

func (s *testServer) createQuote(t *testing.T) quoteData {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/api/v1/quotes", map[string]interface{}{
		"client_first_name": "Jeanne",
		"client_last_name":  "Martin",
		"client_email":      "jeanne@example.fr",
		"agency_id":         s.agency.ID.String(),
		"received_at":       "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var q quoteData
	require.NoError(t, json.Unmarshal(env.Data, &q))
	return q
}

func TestHealth(t *testing.T) {
	s := newServer(t, false, nil)
	w, _ := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"dash-test"}`, w.Body.String())
}

func TestCreateQuote(t *testing.T) {
	s := newServer(t, false, nil)

	q := s.createQuote(t)
	assert.Equal(t, "DV-000001", q.Number)
	assert.Equal(t, "received", q.Status)
	require.NotNil(t, q.DaysSinceReception)
	assert.Equal(t, 3, *q.DaysSinceReception)

	t.Run("malformed agency id", func(t *testing.T) {
		w, env := s.do(t, http.MethodPost, "/api/v1/quotes", map[string]interface{}{
			"client_last_name": "Martin",
			"agency_id":        "nope",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "validation", env.Kind)
		require.Len(t, env.Errors, 1)
		assert.Equal(t, "agency_id", env.Errors[0].Field)
	})

	t.Run("unknown agency", func(t *testing.T) {
		w, env := s.do(t, http.MethodPost, "/api/v1/quotes", map[string]interface{}{
			"client_last_name": "Martin",
			"agency_id":        uuid.NewString(),
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "validation", env.Kind)
	})

	t.Run("bad reception date", func(t *testing.T) {
		w, env := s.do(t, http.MethodPost, "/api/v1/quotes", map[string]interface{}{
			"client_last_name": "Martin",
			"agency_id":        s.agency.ID.String(),
			"received_at":      "01/01/2024",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.Len(t, env.Errors, 1)
		assert.Equal(t, "received_at", env.Errors[0].Field)
	})
}

func TestGetQuote(t *testing.T) {
	s := newServer(t, false, nil)
	q := s.createQuote(t)

	w, env := s.do(t, http.MethodGet, "/api/v1/quotes/"+q.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, _ = s.do(t, http.MethodGet, "/api/v1/quotes/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(t, http.MethodGet, "/api/v1/quotes/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", env.Kind)
}

func TestListQuotes(t *testing.T) {
	s := newServer(t, false, nil)
	s.createQuote(t)
	s.createQuote(t)

	w, env := s.do(t, http.MethodGet, "/api/v1/quotes?per_page=1&status=received", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items      []quoteData `json:"items"`
		Pagination struct {
			Total   int64 `json:"total"`
			HasNext bool  `json:"has_next"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Pagination.Total)
	assert.True(t, page.Pagination.HasNext)

	w, env = s.do(t, http.MethodGet, "/api/v1/quotes?status=archived", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "validation", env.Kind)
}

func TestListQuotes_ReceivedFrom(t *testing.T) {
	s := newServer(t, false, nil)
	s.createQuote(t)
	w, _ := s.do(t, http.MethodPost, "/api/v1/quotes", map[string]interface{}{
		"client_email": "paul@example.fr",
		"agency_id":    s.agency.ID.String(),
		"received_at":  "2024-01-03",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := s.do(t, http.MethodGet, "/api/v1/quotes?received_from=2024-01-02", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []struct {
			ClientEmail string `json:"client_email"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "paul@example.fr", page.Items[0].ClientEmail)

	w, env = s.do(t, http.MethodGet, "/api/v1/quotes?received_from=02/01/2024", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "received_from", env.Errors[0].Field)
}

func TestFollowUpFlow(t *testing.T) {
	s := newServer(t, false, nil)
	q := s.createQuote(t)
	base := "/api/v1/quotes/" + q.ID.String()

	w, env := s.do(t, http.MethodPost, base+"/call-j2", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_transition", env.Kind)

	w, _ = s.do(t, http.MethodPost, base+"/call-j0", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(t, http.MethodPost, base+"/call-j2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got quoteData
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.True(t, got.CallJ2Done)
	assert.True(t, got.ReminderJ2Sent)
	assert.Equal(t, "reminder_j2_sent", got.Status)

	w, env = s.do(t, http.MethodPost, base+"/email-j4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "email_j4_sent", got.Status)
	require.Len(t, s.mailer.sent, 1)
	assert.Equal(t, "jeanne@example.fr", s.mailer.sent[0].To)

	w, _ = s.do(t, http.MethodPost, base+"/convert", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(t, http.MethodPost, base+"/lost", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_transition", env.Kind)

	w, env = s.do(t, http.MethodPut, base+"/notes", map[string]string{"notes": "signé"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.NotNil(t, got.Notes)
	assert.Equal(t, "signé", *got.Notes)
	assert.True(t, got.Converted)
}

func TestEmailJ4DeliveryFailure(t *testing.T) {
	s := newServer(t, false, nil)
	s.mailer.err = errors.New("relay down")
	q := s.createQuote(t)

	w, env := s.do(t, http.MethodPost, "/api/v1/quotes/"+q.ID.String()+"/email-j4", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "delivery_failed", env.Kind)

	_, env = s.do(t, http.MethodGet, "/api/v1/quotes/"+q.ID.String(), nil)
	var got quoteData
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.False(t, got.EmailJ4Sent)
}

func TestMoveQuote(t *testing.T) {
	s := newServer(t, false, nil)
	q := s.createQuote(t)
	path := "/api/v1/quotes/" + q.ID.String() + "/status"

	w, env := s.do(t, http.MethodPut, path, map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "validation", env.Kind)

	w, env = s.do(t, http.MethodPut, path, map[string]string{"status": "received"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_transition", env.Kind)

	w, env = s.do(t, http.MethodPut, path, map[string]string{"status": "email_j4_sent"})
	require.Equal(t, http.StatusOK, w.Code)
	var got quoteData
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "email_j4_sent", got.Status)
	assert.True(t, got.EmailJ4Sent)
	assert.Empty(t, s.mailer.sent)
}

func TestCalendar(t *testing.T) {
	s := newServer(t, false, nil)
	s.createQuote(t)

	w, env := s.do(t, http.MethodGet, "/api/v1/calendar?filter=overdue", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cal struct {
		Filter string `json:"filter"`
		Counts struct {
			Total   int `json:"total"`
			Pending int `json:"pending"`
			Overdue int `json:"overdue"`
		} `json:"counts"`
		Actions []struct {
			Kind    string `json:"kind"`
			Due     string `json:"due"`
			Overdue bool   `json:"overdue"`
		} `json:"actions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cal))
	assert.Equal(t, "overdue", cal.Filter)
	require.Len(t, cal.Actions, 1)
	assert.Equal(t, "reminder_j2", cal.Actions[0].Kind)
	assert.Equal(t, "2024-01-03", cal.Actions[0].Due)
	assert.Equal(t, 2, cal.Counts.Total)
	assert.Equal(t, 2, cal.Counts.Pending)
	assert.Equal(t, 1, cal.Counts.Overdue)

	w, env = s.do(t, http.MethodGet, "/api/v1/calendar?filter=soon", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "validation", env.Kind)
}

func TestInsights(t *testing.T) {
	s := newServer(t, false, nil)
	s.createQuote(t)

	w, env := s.do(t, http.MethodGet, "/api/v1/kanban", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var columns []struct {
		Status string `json:"status"`
		Count  int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &columns))
	require.Len(t, columns, 6)
	assert.Equal(t, "received", columns[0].Status)
	assert.Equal(t, 1, columns[0].Count)
	assert.Equal(t, "unknown", columns[5].Status)

	w, env = s.do(t, http.MethodGet, "/api/v1/clients?search=jeanne", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var clients []struct {
		Email      string `json:"email"`
		QuoteCount int    `json:"quote_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &clients))
	require.Len(t, clients, 1)
	assert.Equal(t, "jeanne@example.fr", clients[0].Email)

	w, env = s.do(t, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dash struct {
		TotalQuotes int      `json:"total_quotes"`
		Agencies    []string `json:"agencies"`
		Monthly     []struct {
			Month string `json:"month"`
		} `json:"monthly"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dash))
	assert.Equal(t, 1, dash.TotalQuotes)
	assert.ElementsMatch(t, []string{"Paris 15", "Versailles"}, dash.Agencies)
	assert.Len(t, dash.Monthly, 6)

	w, _ = s.do(t, http.MethodGet, "/api/v1/agencies", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExport(t *testing.T) {
	s := newServer(t, false, nil)
	s.createQuote(t)

	w, _ := s.do(t, http.MethodGet, "/api/v1/quotes/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "export-devis-2024-01-04.xlsx")

	book, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer book.Close()
	rows, err := book.GetRows("Devis")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "N° Devis", rows[0][1])
	assert.Equal(t, "DV-000001", rows[1][1])
	assert.Equal(t, "01/01/2024", rows[1][8])
	assert.Equal(t, "Non", rows[1][10])
}

func TestStoreUnavailable(t *testing.T) {
	s := newServer(t, false, downQuotes{})

	w, env := s.do(t, http.MethodGet, "/api/v1/calendar", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "store_unavailable", env.Kind)
	assert.NotContains(t, env.Message, "connection refused")
}

func TestAuthRequired(t *testing.T) {
	s := newServer(t, true, nil)

	w, _ := s.do(t, http.MethodGet, "/api/v1/kanban", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := utils.NewJWTManager("secret", "").GenerateAccessToken("user-1", "a@x.fr", "authenticated", time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/kanban", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	w, _ = s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
