package extract

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jimezsa/creatorleads/internal/models"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// GeminiConfig holds the settings for the Gemini generator.
type GeminiConfig struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint; empty uses the SDK default.
	BaseURL string
	// HTTPClient is used for the outbound calls; nil uses the SDK default.
	HTTPClient *http.Client
}

// Gemini is a Generator backed by the Gemini API with Google Search grounding.
type Gemini struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

// NewGemini validates the credential and builds the SDK client. A missing
// key is a *ConfigurationError.
func NewGemini(ctx context.Context, cfg GeminiConfig, logger zerolog.Logger) (*Gemini, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, &ConfigurationError{Reason: "API key is missing"}
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, &ConfigurationError{Reason: "cannot initialize the Gemini client", Err: eris.Wrap(err, "genai new client")}
	}

	logger.Debug().Str("model", model).Msg("gemini client ready")
	return &Gemini{client: client, model: model, logger: logger}, nil
}

// Model returns the configured model name.
func (g *Gemini) Model() string {
	return g.model
}

func (g *Gemini) Generate(ctx context.Context, req Request) (Response, error) {
	config := &genai.GenerateContentConfig{}
	if req.Grounding {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	if req.Strict {
		schema, err := LeadSchema()
		if err != nil {
			return Response{}, &UpstreamError{Message: "build response schema: " + err.Error(), Err: err}
		}
		config.ResponseMIMEType = "application/json"
		config.ResponseJsonSchema = schema
	}

	g.logger.Debug().
		Str("model", g.model).
		Bool("grounding", req.Grounding).
		Bool("strict", req.Strict).
		Int("prompt_len", len(req.Prompt)).
		Msg("generate content")

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), config)
	if err != nil {
		return Response{}, classify(err)
	}

	return Response{
		Text:    resp.Text(),
		Sources: groundingSources(resp),
	}, nil
}

// classify maps SDK failures onto the configuration/upstream split.
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classifyAPIError(apiErr, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return classifyAPIError(*apiErrPtr, err)
	}
	if mentionsAPIKey(err.Error()) {
		return &ConfigurationError{Reason: "the API key was rejected", Err: err}
	}
	return &UpstreamError{Message: err.Error(), Err: err}
}

func classifyAPIError(apiErr genai.APIError, err error) error {
	if apiErr.Code == http.StatusUnauthorized || mentionsAPIKey(apiErr.Message) {
		return &ConfigurationError{Reason: "the API key is invalid or was rejected", Err: err}
	}
	message := apiErr.Message
	if message == "" {
		message = err.Error()
	}
	return &UpstreamError{Code: apiErr.Code, Message: message, Err: err}
}

func groundingSources(resp *genai.GenerateContentResponse) []models.Source {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return []models.Source{}
	}
	metadata := resp.Candidates[0].GroundingMetadata
	if metadata == nil {
		return []models.Source{}
	}

	sources := make([]models.Source, 0, len(metadata.GroundingChunks))
	for _, chunk := range metadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		sources = append(sources, models.Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	return sources
}
