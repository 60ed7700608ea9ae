// Package pipeline runs one lead search: query building, the extraction
// round trip, lenient parsing and local validation.
package pipeline

import (
	"context"
	"slices"

	"github.com/jimezsa/creatorleads/internal/extract"
	"github.com/jimezsa/creatorleads/internal/leads"
	"github.com/jimezsa/creatorleads/internal/models"
	"github.com/jimezsa/creatorleads/internal/parse"
	"github.com/jimezsa/creatorleads/internal/query"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// EmptyResultMessage is shown when no candidate survives validation.
const EmptyResultMessage = "no new profiles found with these criteria, try a different city or niche"

// Options controls response mode and local checks.
type Options struct {
	Strict               bool
	EnforceFollowerFloor bool
	EnforceCity          bool
}

// DefaultOptions enforces every local check and uses free-text responses,
// since search grounding and schema-constrained output do not combine on
// every model.
func DefaultOptions() Options {
	return Options{EnforceFollowerFloor: true, EnforceCity: true}
}

// Service is stateless; the caller owns any accumulation across searches.
type Service struct {
	generator extract.Generator
	opts      Options
	logger    zerolog.Logger
}

func New(generator extract.Generator, opts Options, logger zerolog.Logger) *Service {
	return &Service{generator: generator, opts: opts, logger: logger}
}

// Search runs one extraction. existing holds the usernames the caller has
// already collected; none of them appears in the result. Errors are
// *extract.ConfigurationError or *extract.UpstreamError from the provider.
func (s *Service) Search(ctx context.Context, q models.SearchQuery, existing []string) (models.SearchResult, error) {
	q = query.Normalize(q)

	prompt, err := query.Prompt(q, existing)
	if err != nil {
		return models.SearchResult{}, eris.Wrap(err, "render prompt")
	}

	s.logger.Debug().
		Str("platform", q.Platform).
		Str("city", q.City).
		Str("min_followers", q.MinFollowers).
		Int("excluded", len(existing)).
		Str("search", query.SearchString(q, existing)).
		Msg("searching creators")

	resp, err := s.generator.Generate(ctx, extract.Request{
		Prompt:    prompt,
		Grounding: true,
		Strict:    s.opts.Strict,
	})
	if err != nil {
		return models.SearchResult{}, err
	}

	raw := parse.Leads(resp.Text, s.opts.Strict)
	found, stats := leads.Filter(raw, leads.Options{
		Query:                q,
		Exclude:              existing,
		EnforceFollowerFloor: s.opts.EnforceFollowerFloor,
		EnforceCity:          s.opts.EnforceCity,
	})

	s.logger.Debug().
		Int("candidates", stats.Total).
		Int("accepted", stats.Accepted).
		Int("missing_username", stats.MissingUsername).
		Int("missing_contact", stats.MissingContact).
		Int("duplicate", stats.Duplicate).
		Int("below_floor", stats.BelowFloor).
		Int("outside_city", stats.OutsideCity).
		Msg("filtered candidates")

	return models.SearchResult{
		Leads:   found,
		Sources: leads.MergeSources(nil, resp.Sources),
	}, nil
}

// SearchMore runs rounds successive searches, threading the accumulated
// usernames plus exclude into each one. It stops early on an error or an
// empty round and returns what was accumulated so far.
func (s *Service) SearchMore(ctx context.Context, q models.SearchQuery, acc models.SearchResult, exclude []string, rounds int) (models.SearchResult, error) {
	for i := 0; i < rounds; i++ {
		// Newest first: only the head of the list reaches the query string.
		existing := leads.Usernames(acc.Leads)
		slices.Reverse(existing)
		existing = append(existing, exclude...)
		next, err := s.Search(ctx, q, existing)
		if err != nil {
			return acc, err
		}
		if len(next.Leads) == 0 {
			acc.Sources = leads.MergeSources(acc.Sources, next.Sources)
			break
		}
		acc = leads.Accumulate(acc, next)
	}
	if acc.Leads == nil {
		acc.Leads = []models.CreatorLead{}
	}
	if acc.Sources == nil {
		acc.Sources = []models.Source{}
	}
	return acc, nil
}
