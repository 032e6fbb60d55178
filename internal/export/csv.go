package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hyperjump/homefax/internal/models"
)

// Columns is the fixed column order of tabular exports.
var Columns = []string{
	"id", "address", "yearBuilt", "sqFt", "beds", "baths", "lotSqFt",
	"lastSoldDate", "lastSoldPrice",
	"roofYear", "hvacYear", "plumbingYear", "electricalYear", "waterHeaterYear",
	"score",
}

// cell is one tabular value. Text cells are always quoted; numeric cells are not.
type cell struct {
	text    string
	numeric bool
}

func textCell(s string) cell   { return cell{text: s} }
func intCell(n int) cell       { return cell{text: strconv.Itoa(n), numeric: true} }
func floatCell(v float64) cell { return cell{text: formatNumber(v), numeric: true} }
func missingCell() cell        { return textCell("") }
func yearCell(year *int) cell {
	if year == nil || *year == 0 {
		return missingCell()
	}
	return intCell(*year)
}

// tableRow flattens a scored home into Columns order. An absent or zero sale
// date, price or system year is a missing value.
func tableRow(row models.ScoredHome) []cell {
	h := &row.Home
	lastSoldDate, lastSoldPrice := missingCell(), missingCell()
	if h.LastSold != nil {
		if h.LastSold.Date != "" {
			lastSoldDate = textCell(h.LastSold.Date)
		}
		if h.LastSold.Price != 0 {
			lastSoldPrice = floatCell(h.LastSold.Price)
		}
	}
	cells := []cell{
		textCell(h.ID),
		textCell(h.Address),
		intCell(h.YearBuilt),
		intCell(h.SqFt),
		intCell(h.Beds),
		floatCell(h.Baths),
		intCell(h.LotSqFt),
		lastSoldDate,
		lastSoldPrice,
	}
	for _, k := range models.SystemKeys {
		cells = append(cells, yearCell(h.Systems.Year(k)))
	}
	return append(cells, intCell(row.Score))
}

// quoteCSV wraps s in double quotes, doubling any inside it.
func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteCSV writes the header and one line per row. Lines are separated by
// "\n" with no trailing newline.
func WriteCSV(w io.Writer, rows []models.ScoredHome) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(Columns, ","))
	for _, row := range rows {
		bw.WriteByte('\n')
		for i, c := range tableRow(row) {
			if i > 0 {
				bw.WriteByte(',')
			}
			if c.numeric {
				bw.WriteString(c.text)
			} else {
				bw.WriteString(quoteCSV(c.text))
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
