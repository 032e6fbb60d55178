// Package cli provides CLI output helpers for homefax.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/homefax/internal/models"
	"github.com/hyperjump/homefax/internal/scoring"
	"github.com/hyperjump/homefax/pkg/utils"
)

// OutputFormat is the format for listing output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact is one line per home.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// addressWidth is the address column width in compact output.
const addressWidth = 36

// ParseOutputFormat validates an -output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(s)) {
	case OutputText, "":
		return OutputText, nil
	case OutputCompact:
		return OutputCompact, nil
	case OutputJSON:
		return OutputJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, compact or json)", s)
}

// WriteHomes writes a listing response to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteHomes(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case OutputCompact:
		for _, r := range response.Results {
			fmt.Fprintf(w, "%3d %-4s %-10s %-*s %d\n", r.Score, BadgeFor(r.Score), r.Home.ID,
				addressWidth, utils.Truncate(r.Home.Address, addressWidth-3), r.Home.YearBuilt)
		}
		return nil
	default:
		writeHomesText(w, response)
		return nil
	}
}

func writeHomesText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nShowing %d of %d homes in %dms\n\n", response.Total, response.Available, response.QueryTime)
	for _, r := range response.Results {
		writeOneHome(w, r)
	}
	if response.Total == 0 {
		fmt.Fprintln(w, "No homes match your filters.")
		if response.CorrectedText != "" {
			fmt.Fprintf(w, "Did you mean: %s\n", response.CorrectedText)
		}
		for _, s := range response.Suggestions {
			fmt.Fprintf(w, "  %s  %s\n", s.ID, s.Address)
		}
	}
}

func writeOneHome(w io.Writer, r models.ScoredHome) {
	h := r.Home
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "%s  %s\n", h.ID, h.Address)
	fmt.Fprintf(w, "Health: %d (%s) | Built %d | %d bd / %s ba | %s sqft\n",
		r.Score, scoring.BandFor(r.Score), h.YearBuilt, h.Beds, formatBaths(h.Baths), groupDigits(h.SqFt))
	if len(r.RiskTags) > 0 {
		fmt.Fprintf(w, "Risks: %s\n", strings.Join(r.RiskTags, ", "))
	}
	fmt.Fprintln(w)
}

// BadgeFor returns a short badge label for a health score.
func BadgeFor(score int) string {
	switch scoring.BandFor(score) {
	case scoring.BandGood:
		return "GOOD"
	case scoring.BandFair:
		return "FAIR"
	default:
		return "POOR"
	}
}

func formatBaths(v float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", v), ".0")
}

func groupDigits(n int) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + groupDigits(-n)
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
