package export

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/hyperjump/homefax/internal/models"
)

// ErrUnsupportedFormat is returned for an unknown export format.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format is an output encoding for homes.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
	FormatText Format = "text"
)

// ParseFormat maps a user-supplied name (case-insensitive, "yml" and "txt"
// accepted) to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatYAML, FormatXLSX, FormatHTML, FormatText:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ReportFormats are the formats WriteReport renders.
var ReportFormats = []Format{FormatHTML, FormatText, FormatJSON}

// CollectionFormats are the formats WriteCollection writes.
var CollectionFormats = []Format{FormatCSV, FormatXLSX, FormatJSON, FormatYAML}

// ParseFormatFor parses s like ParseFormat and rejects formats not in allowed.
func ParseFormatFor(s string, allowed []Format) (Format, error) {
	f, err := ParseFormat(s)
	if err != nil {
		return "", err
	}
	if !slices.Contains(allowed, f) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
	return f, nil
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// WriteCollection writes a filtered collection in format. Raw dumps (json,
// yaml) contain the homes only; tables also carry the score.
func WriteCollection(w io.Writer, format Format, rows []models.ScoredHome) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatXLSX:
		return WriteXLSX(w, rows)
	case FormatJSON:
		return DumpJSON(w, homesOf(rows))
	case FormatYAML:
		return DumpYAML(w, homesOf(rows))
	default:
		return fmt.Errorf("%w: %q cannot hold a collection", ErrUnsupportedFormat, format)
	}
}

// WriteReport renders r in format: html, text or json.
func WriteReport(w io.Writer, format Format, r Report) error {
	switch format {
	case FormatHTML:
		return RenderReportHTML(w, r)
	case FormatText:
		return RenderReportText(w, r)
	case FormatJSON:
		return DumpJSON(w, r)
	default:
		return fmt.Errorf("%w: %q cannot hold a report", ErrUnsupportedFormat, format)
	}
}

func homesOf(rows []models.ScoredHome) []models.Home {
	homes := make([]models.Home, len(rows))
	for i := range rows {
		homes[i] = rows[i].Home
	}
	return homes
}
