package export

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"math"
	"strconv"
	"strings"
	texttemplate "text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateFuncs = map[string]any{
	"thousands": func(n int) string { return groupThousands(strconv.Itoa(n)) },
	"money":     func(v float64) string { return groupThousands(formatNumber(v)) },
	"number":    formatNumber,
	"percent":   func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
	"bar":       textBar,
	"deref":     func(p *int) int { return *p },
	"join":      strings.Join,
}

var (
	htmlReport = htmltemplate.Must(htmltemplate.New("report.html.tmpl").
			Funcs(htmltemplate.FuncMap(templateFuncs)).
			ParseFS(templateFS, "templates/report.html.tmpl"))
	textReport = texttemplate.Must(texttemplate.New("report.txt.tmpl").
			Funcs(texttemplate.FuncMap(templateFuncs)).
			ParseFS(templateFS, "templates/report.txt.tmpl"))
)

// RenderReportHTML writes r as a self-contained HTML document. Home values are escaped.
func RenderReportHTML(w io.Writer, r Report) error {
	if err := htmlReport.Execute(w, r); err != nil {
		return fmt.Errorf("failed to render html report: %w", err)
	}
	return nil
}

// RenderReportText writes r as plain text.
func RenderReportText(w io.Writer, r Report) error {
	if err := textReport.Execute(w, r); err != nil {
		return fmt.Errorf("failed to render text report: %w", err)
	}
	return nil
}

// textBarWidth is the number of cells in a plain-text proportion bar.
const textBarWidth = 20

// textBar draws a 0-100 proportion as a fixed-width bar, e.g. [#####...............].
func textBar(proportion float64) string {
	filled := int(math.Round(proportion / 100 * textBarWidth))
	filled = max(0, min(textBarWidth, filled))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", textBarWidth-filled) + "]"
}

// formatNumber prints v without exponent or trailing zeros (2.5, 350000).
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// groupThousands inserts commas into the integer part of a decimal string.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return sign + intPart + frac
	}
	var b strings.Builder
	head := len(intPart) % 3
	if head > 0 {
		b.WriteString(intPart[:head])
	}
	for i := head; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return sign + b.String() + frac
}
