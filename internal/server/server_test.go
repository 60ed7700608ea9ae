package server

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimezsa/creatorleads/internal/extract"
	"github.com/jimezsa/creatorleads/internal/models"
)

type fakeSearcher struct {
	result   models.SearchResult
	err      error
	query    models.SearchQuery
	existing []string
	calls    int
}

func (f *fakeSearcher) Search(ctx context.Context, q models.SearchQuery, existing []string) (models.SearchResult, error) {
	f.calls++
	f.query = q
	f.existing = existing
	return f.result, f.err
}

func newTestServer(searcher Searcher) *Server {
	s := New(searcher, Config{AllowedOrigins: []string{"http://localhost:5173"}}, zerolog.Nop())
	s.now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	return s
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestSearchCreatorsSuccess(t *testing.T) {
	searcher := &fakeSearcher{result: models.SearchResult{
		Leads:   []models.CreatorLead{{ID: "1", Username: "anna", Email: "anna@example.com"}},
		Sources: []models.Source{{Title: "Social Source", URI: "https://instagram.com/anna"}},
	}}
	s := newTestServer(searcher)

	rec := do(t, s, http.MethodPost, "/api/search-creators",
		`{"query":{"role":"UGC Creator","industry":"Beauty","city":"Napoli","platform":"instagram.com","minFollowers":"1000"},"existingUsernames":["old.one"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, "Beauty", searcher.query.Industry)
	assert.Equal(t, "1000", searcher.query.MinFollowers)
	assert.Equal(t, []string{"old.one"}, searcher.existing)

	var result models.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Leads, 1)
	assert.Equal(t, "anna", result.Leads[0].Username)
	require.Len(t, result.Sources, 1)
}

func TestSearchCreatorsEmptyResultUsesArrays(t *testing.T) {
	s := newTestServer(&fakeSearcher{})

	rec := do(t, s, http.MethodPost, "/api/search-creators", `{"query":{"city":"Napoli"}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"leads":[],"sources":[]}`, rec.Body.String())
}

func TestSearchCreatorsWrongMethod(t *testing.T) {
	s := newTestServer(&fakeSearcher{})

	rec := do(t, s, http.MethodGet, "/api/search-creators", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method Not Allowed", decodeError(t, rec))
}

func TestSearchCreatorsBadBody(t *testing.T) {
	searcher := &fakeSearcher{}
	s := newTestServer(searcher)

	rec := do(t, s, http.MethodPost, "/api/search-creators", `{"query":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/search-creators", `{"existingUsernames":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "query is required", decodeError(t, rec))
	assert.Zero(t, searcher.calls)
}

func TestSearchCreatorsErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		text   string
	}{
		{
			name:   "configuration",
			err:    &extract.ConfigurationError{Reason: "API key missing"},
			status: http.StatusInternalServerError,
			text:   "API_KEY",
		},
		{
			name:   "upstream",
			err:    &extract.UpstreamError{Code: 503, Message: "The model is overloaded."},
			status: http.StatusBadGateway,
			text:   "The model is overloaded.",
		},
		{
			name:   "other",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			text:   "lead search failed",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(&fakeSearcher{err: tc.err})
			rec := do(t, s, http.MethodPost, "/api/search-creators", `{"query":{}}`)
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, decodeError(t, rec), tc.text)
		})
	}
}

func TestExportCSV(t *testing.T) {
	s := newTestServer(&fakeSearcher{})
	body, err := json.Marshal(exportRequest{Leads: []models.CreatorLead{
		{Name: "Anna", Username: "anna", Followers: "12k", Phone: "+39 333 1234567", City: "Napoli"},
	}})
	require.NoError(t, err)

	rec := do(t, s, http.MethodPost, "/api/export-csv", string(body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="creator_leads_2026-10-15.csv"`, rec.Header().Get("Content-Disposition"))
	records, err := csv.NewReader(bytes.NewReader(rec.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Profile URL", records[0][2])
	assert.Equal(t, "+39 333 1234567", records[1][6])
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(&fakeSearcher{})

	req := httptest.NewRequest(http.MethodOptions, "/api/search-creators", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthz(t *testing.T) {
	s := newTestServer(&fakeSearcher{})
	rec := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	s := New(&fakeSearcher{}, Config{Addr: "127.0.0.1:0"}, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
}
