package extract

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *Gemini {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := NewGemini(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		Model:   "test-model",
		BaseURL: srv.URL + "/",
	}, zerolog.Nop())
	require.NoError(t, err)
	return g
}

func TestNewGeminiMissingKeyIsConfigurationError(t *testing.T) {
	_, err := NewGemini(context.Background(), GeminiConfig{APIKey: "  "}, zerolog.Nop())
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestGenerateReturnsTextAndSources(t *testing.T) {
	var captured map[string]any
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)
		assert.True(t, strings.Contains(r.URL.Path, "test-model"), "path %s", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
  "candidates": [{
    "content": {"role": "model", "parts": [{"text": "[{\"username\":\"a\"}]"}]},
    "groundingMetadata": {"groundingChunks": [
      {"web": {"uri": "https://instagram.com/a", "title": "A on Instagram"}},
      {"web": {"uri": ""}},
      {}
    ]}
  }]
}`)
	})

	resp, err := g.Generate(context.Background(), Request{Prompt: "find creators", Grounding: true})
	require.NoError(t, err)
	assert.Equal(t, `[{"username":"a"}]`, resp.Text)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "https://instagram.com/a", resp.Sources[0].URI)
	assert.Equal(t, "A on Instagram", resp.Sources[0].Title)

	tools, ok := captured["tools"].([]any)
	require.True(t, ok, "request should carry tools: %v", captured)
	require.Len(t, tools, 1)
	assert.Contains(t, tools[0], "googleSearch")
}

func TestGenerateInvalidKeyIsConfigurationError(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`)
	})

	_, err := g.Generate(context.Background(), Request{Prompt: "x"})
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr), "got %T: %v", err, err)
}

func TestGenerateOtherFailureIsUpstreamError(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":400,"message":"Request contains an invalid argument.","status":"INVALID_ARGUMENT"}}`)
	})

	_, err := g.Generate(context.Background(), Request{Prompt: "x"})
	require.Error(t, err)

	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr), "got %T: %v", err, err)
	assert.Equal(t, http.StatusBadRequest, upErr.Code)
	assert.Equal(t, "Request contains an invalid argument.", upErr.Error())
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		config bool
	}{
		{"unauthorized", genai.APIError{Code: 401, Message: "unauthenticated"}, true},
		{"key message", genai.APIError{Code: 403, Message: "API key expired"}, true},
		{"quota", genai.APIError{Code: 429, Message: "Resource has been exhausted"}, false},
		{"transport", errors.New("dial tcp: connection refused"), false},
		{"plain key text", errors.New("missing api key"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err)
			var cfgErr *ConfigurationError
			var upErr *UpstreamError
			if tc.config {
				assert.True(t, errors.As(got, &cfgErr), "want ConfigurationError, got %T", got)
			} else {
				assert.True(t, errors.As(got, &upErr), "want UpstreamError, got %T", got)
			}
		})
	}
}

func TestLeadSchemaDescribesArrayOfLeads(t *testing.T) {
	schema, err := LeadSchema()
	require.NoError(t, err)

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `"array"`)
	assert.Contains(t, text, `"profileUrl"`)
	assert.Contains(t, text, `"username"`)
}
