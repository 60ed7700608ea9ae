// Package extract talks to the generative model that performs the
// search-grounded lead extraction.
package extract

import (
	"context"

	"github.com/jimezsa/creatorleads/internal/models"
)

// Request is one extraction call.
type Request struct {
	Prompt string
	// Grounding enables the provider's web search tool.
	Grounding bool
	// Strict asks for schema-constrained JSON output instead of free text.
	Strict bool
}

// Response carries the raw model text and the grounding citations.
type Response struct {
	Text    string
	Sources []models.Source
}

// Generator performs a single generate-content round trip. Implementations
// return *ConfigurationError or *UpstreamError on failure and never retry.
type Generator interface {
	Generate(ctx context.Context, req Request) (Response, error)
}
