package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jimezsa/creatorleads/internal/leads"
	"github.com/jimezsa/creatorleads/internal/models"
	"github.com/jimezsa/creatorleads/internal/ui"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

// Filename is the download name for a CSV export made on day.
func Filename(day time.Time) string {
	return fmt.Sprintf("creator_leads_%s.csv", day.Format("2006-01-02"))
}

// WriteResult renders a search result. CSV and TSV carry leads only; JSON
// keeps the {leads, sources} envelope.
func WriteResult(w io.Writer, result models.SearchResult, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatCSV:
		return WriteCSV(w, result.Leads)
	case FormatTSV:
		return writeTSV(w, result.Leads)
	case FormatMarkdown:
		return writeMarkdown(w, result)
	default:
		return writeTable(w, result.Leads, opts)
	}
}

func writeJSON(w io.Writer, result models.SearchResult) error {
	if result.Leads == nil {
		result.Leads = []models.CreatorLead{}
	}
	if result.Sources == nil {
		result.Sources = []models.Source{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// WriteCSV writes the lead sheet with the Name..City columns, every field quoted.
func WriteCSV(w io.Writer, rows []models.CreatorLead) error {
	bw := bufio.NewWriter(w)
	writeQuotedRecord(bw, csvHeader())
	for _, lead := range rows {
		writeQuotedRecord(bw, csvRow(lead))
	}
	return bw.Flush()
}

func writeQuotedRecord(w *bufio.Writer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(field, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteByte('\n')
}

func writeTSV(w io.Writer, rows []models.CreatorLead) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'
	if err := writer.Write(csvHeader()); err != nil {
		return err
	}
	for _, lead := range rows {
		if err := writer.Write(csvRow(lead)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, rows []models.CreatorLead, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader(), "\t"))
	output := termenv.NewOutput(w)
	for _, lead := range rows {
		fmt.Fprintln(tw, strings.Join(tableRow(lead, output, opts), "\t"))
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, result models.SearchResult) error {
	if len(result.Leads) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for _, lead := range result.Leads {
		lines := []string{
			fmt.Sprintf("- **%s** (@%s)", firstNonEmpty(safe(lead.Name), safe(lead.Username)), safe(lead.Username)),
			fmt.Sprintf("  Followers: %s", orDash(lead.Followers)),
			fmt.Sprintf("  City: %s", orDash(lead.City)),
		}
		if profile := safe(lead.ProfileURL); profile != "" {
			lines = append(lines, fmt.Sprintf("  Profile: [Open profile](<%s>)", profile))
		}
		if lead.Email != "" {
			lines = append(lines, fmt.Sprintf("  Email: %s", safe(lead.Email)))
		}
		if lead.Phone != "" {
			lines = append(lines, fmt.Sprintf("  Phone: %s", safe(lead.Phone)))
		}
		if link := leads.ContactLink(lead); link != "" {
			lines = append(lines, fmt.Sprintf("  Contact: <%s>", link))
		}
		if lead.Bio != "" {
			lines = append(lines, fmt.Sprintf("  Bio: %s", safe(lead.Bio)))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	if len(result.Sources) > 0 {
		if _, err := fmt.Fprintln(w, "\nSources:"); err != nil {
			return err
		}
		for _, source := range result.Sources {
			if _, err := fmt.Fprintf(w, "- [%s](<%s>)\n", sourceLabel(source), source.URI); err != nil {
				return err
			}
		}
	}
	return nil
}

func csvHeader() []string {
	return []string{
		"Name",
		"Username",
		"Profile URL",
		"Followers",
		"Bio",
		"Email",
		"Phone",
		"Category",
		"City",
	}
}

func csvRow(lead models.CreatorLead) []string {
	return []string{
		lead.Name,
		lead.Username,
		lead.ProfileURL,
		lead.Followers,
		lead.Bio,
		lead.Email,
		lead.Phone,
		lead.Category,
		lead.City,
	}
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func orDash(value string) string {
	if safe(value) == "" {
		return "-"
	}
	return safe(value)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func sourceLabel(source models.Source) string {
	if title := safe(source.Title); title != "" {
		return title
	}
	if parsed, err := url.Parse(source.URI); err == nil && parsed.Host != "" {
		return parsed.Host
	}
	return source.URI
}

func tableHeader() []string {
	return []string{
		"username",
		"followers",
		"contact",
		"profile",
	}
}

func tableRow(lead models.CreatorLead, output *termenv.Output, opts WriteOptions) []string {
	contact := firstNonEmpty(safe(lead.Email), safe(lead.Phone), "-")

	profile := safe(lead.ProfileURL)
	display := "-"
	if profile != "" {
		display = profile
		if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
			display = shortURLLabel(profile)
		}
		display = ui.ColorizeLink(output, opts.ColorEnabled, display)
		if opts.Hyperlinks {
			display = hyperlink(profile, display)
		}
	}
	return []string{
		"@" + safe(lead.Username),
		orDash(lead.Followers),
		contact,
		display,
	}
}

func hyperlink(target string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + target + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
