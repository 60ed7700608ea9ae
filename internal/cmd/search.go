package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"github.com/rotisserie/eris"

	"github.com/jimezsa/creatorleads/internal/export"
	"github.com/jimezsa/creatorleads/internal/models"
	"github.com/jimezsa/creatorleads/internal/pipeline"
	"github.com/jimezsa/creatorleads/internal/query"
	"github.com/jimezsa/creatorleads/internal/seen"
)

type SearchCmd struct {
	Role         string        `help:"Creator role, e.g. UGC Creator."`
	Industry     string        `help:"Industry or niche, e.g. Beauty."`
	City         string        `help:"City the bio must mention."`
	Platform     string        `help:"Platform domain (instagram.com, tiktok.com) or alias (ig, tt)."`
	MinFollowers string        `name:"min-followers" help:"Follower floor, e.g. 300, 5k, 1.2m."`
	Exclude      []string      `help:"Usernames to leave out (comma-separated or repeated)."`
	More         int           `help:"Additional searches after the first, each excluding everything found so far." default:"0"`
	Strict       bool          `help:"Ask the model for schema-constrained JSON."`
	Format       string        `help:"Output format: table, csv, tsv, json, md." enum:",table,csv,tsv,json,md" default:""`
	Links        string        `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Output       string        `name:"output" short:"o" help:"Write output to a file."`
	Proxies      string        `help:"Comma-separated proxy URLs." env:"CREATORLEADS_PROXIES"`
	Seen         string        `help:"Lead history JSON; its usernames are excluded from the search."`
	SeenUpdate   bool          `help:"Merge the new leads into --seen after the search."`
	Timeout      time.Duration `help:"Overall deadline for the search." default:"5m"`
}

func (s *SearchCmd) Run(ctx *Context) error {
	if s.SeenUpdate && strings.TrimSpace(s.Seen) == "" {
		return eris.New("--seen-update requires --seen")
	}
	if s.More < 0 {
		return eris.New("--more must not be negative")
	}
	if strings.TrimSpace(s.Seen) != "" && pathsEqual(s.Output, s.Seen) {
		return eris.New("--output path must differ from --seen")
	}

	q := s.query(ctx)
	if !slices.Contains(query.KnownPlatforms(), q.Platform) {
		ctx.UI.Warnf("platform %q is not one of %s; searching anyway", q.Platform, strings.Join(query.KnownPlatforms(), ", "))
	}
	exclude := splitUsernames(s.Exclude)

	var history []models.CreatorLead
	if strings.TrimSpace(s.Seen) != "" {
		var err error
		history, err = seen.ReadLeadsAllowMissing(s.Seen)
		if err != nil {
			return eris.Wrap(err, "read --seen")
		}
		exclude = append(exclude, seen.Usernames(history)...)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, s.Timeout)
		defer cancel()
	}

	svc, err := ctx.searchService(runCtx, s.Proxies, s.Strict)
	if err != nil {
		return err
	}

	stopIndicator := startSearchIndicator(ctx)
	result, err := runRounds(runCtx, svc, q, exclude, s.More)
	if stopIndicator != nil {
		stopIndicator()
	}
	if err != nil {
		if len(result.Leads) == 0 {
			return err
		}
		ctx.UI.Warnf("search stopped early: %v", err)
	}

	if len(result.Leads) == 0 {
		ctx.UI.Noticef("%s", pipeline.EmptyResultMessage)
	}

	if err := s.write(ctx, result); err != nil {
		return err
	}

	if s.SeenUpdate {
		if err := updateSeenHistory(s.Seen, result.Leads); err != nil {
			return err
		}
	}

	printSearchSummary(ctx, q, result)
	return nil
}

func (s *SearchCmd) query(ctx *Context) models.SearchQuery {
	cfg := ctx.Config
	return query.Normalize(models.SearchQuery{
		Role:         firstNonEmpty(s.Role, cfg.DefaultRole),
		Industry:     firstNonEmpty(s.Industry, cfg.DefaultIndustry),
		City:         firstNonEmpty(s.City, cfg.DefaultCity),
		Platform:     firstNonEmpty(s.Platform, cfg.DefaultPlatform),
		MinFollowers: firstNonEmpty(s.MinFollowers, cfg.DefaultMinFollowers),
	})
}

// searcher is the part of *pipeline.Service the command drives.
type searcher interface {
	Search(ctx context.Context, q models.SearchQuery, existing []string) (models.SearchResult, error)
	SearchMore(ctx context.Context, q models.SearchQuery, acc models.SearchResult, exclude []string, rounds int) (models.SearchResult, error)
}

func runRounds(ctx context.Context, svc searcher, q models.SearchQuery, exclude []string, more int) (models.SearchResult, error) {
	result, err := svc.Search(ctx, q, exclude)
	if err != nil {
		return result, err
	}
	if more == 0 || len(result.Leads) == 0 {
		return result, nil
	}
	return svc.SearchMore(ctx, q, result, exclude, more)
}

func (s *SearchCmd) write(ctx *Context, result models.SearchResult) error {
	format, err := resolveFormat(ctx, s.Format, s.Output)
	if err != nil {
		return err
	}

	writer := ctx.Out
	if s.Output != "" {
		file, err := os.Create(s.Output)
		if err != nil {
			return eris.Wrap(err, "create --output")
		}
		defer file.Close()
		writer = file
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled && s.Output == ""
	linkStyle := export.LinkStyleShort
	if strings.EqualFold(s.Links, string(export.LinkStyleFull)) {
		linkStyle = export.LinkStyleFull
	}
	return export.WriteResult(writer, result, format, export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   colorEnabled && isTTY(writer),
		LinkStyle:    linkStyle,
	})
}

func splitUsernames(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimPrefix(strings.TrimSpace(part), "@")
			if part == "" {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

func pathsEqual(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil {
		return absA == absB
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

func updateSeenHistory(seenPath string, found []models.CreatorLead) error {
	history, err := seen.ReadLeadsAllowMissing(seenPath)
	if err != nil {
		return eris.Wrap(err, "read --seen")
	}

	merged, _ := seen.Merge(history, found)
	if err := seen.WriteLeads(seenPath, merged); err != nil {
		return eris.Wrap(err, "write --seen")
	}
	return nil
}

func printSearchSummary(ctx *Context, q models.SearchQuery, result models.SearchResult) {
	if ctx == nil || ctx.Err == nil {
		return
	}
	_, _ = fmt.Fprintf(ctx.Err, "%s\n", formatSearchSummary(q, result))
}

func formatSearchSummary(q models.SearchQuery, result models.SearchResult) string {
	withEmail := 0
	for _, lead := range result.Leads {
		if strings.Contains(lead.Email, "@") {
			withEmail++
		}
	}
	return fmt.Sprintf(
		"summary: leads=%d with_email=%d with_phone_only=%d sources=%d city=%s platform=%s",
		len(result.Leads),
		withEmail,
		len(result.Leads)-withEmail,
		len(result.Sources),
		q.City,
		q.Platform,
	)
}

func resolveFormat(ctx *Context, flag string, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if flag != "" {
		return parseFormat(flag)
	}
	if outputPath != "" {
		return formatFromExtension(outputPath), nil
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func formatFromExtension(path string) export.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return export.FormatJSON
	case ".md", ".markdown":
		return export.FormatMarkdown
	case ".tsv":
		return export.FormatTSV
	default:
		return export.FormatCSV
	}
}

func parseFormat(value string) (export.Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return export.FormatCSV, nil
	case "json":
		return export.FormatJSON, nil
	case "md", "markdown":
		return export.FormatMarkdown, nil
	case "tsv":
		return export.FormatTSV, nil
	case "table", "":
		return export.FormatTable, nil
	default:
		return "", eris.Errorf("unknown format: %s", value)
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}

func startSearchIndicator(ctx *Context) func() {
	if ctx == nil || ctx.Err == nil || ctx.UI == nil {
		return nil
	}
	if !isTTY(ctx.Err) {
		return nil
	}

	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		start := time.Now()
		frames := []string{"|", "/", "-", "\\"}
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		index := 0

		for {
			select {
			case <-done:
				fmt.Fprint(ctx.Err, "\r\033[2K")
				return
			case <-ticker.C:
				seconds := int(time.Since(start).Seconds())
				frame := frames[index%len(frames)]
				fmt.Fprintf(ctx.Err, "\r\033[2KSearching creators... %ds %s", seconds, frame)
				index++
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
	}
}

var _ searcher = (*pipeline.Service)(nil)
