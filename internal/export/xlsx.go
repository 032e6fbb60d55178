package export

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/hyperjump/homefax/internal/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet tabular exports are written to.
const SheetName = "Homes"

// WriteXLSX writes the same table as WriteCSV into a workbook with a single
// SheetName worksheet. Numeric cells stay numbers; missing values are blank.
func WriteXLSX(w io.Writer, rows []models.ScoredHome) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}
	for i, row := range rows {
		cells := tableRow(row)
		values := make([]any, len(cells))
		for j, c := range cells {
			values[j] = c.value()
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(SheetName, axis, &values); err != nil {
			return fmt.Errorf("failed to write xlsx row %d: %w", i+2, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

// value converts a cell to the type excelize should store.
func (c cell) value() any {
	if !c.numeric {
		return c.text
	}
	if n, err := strconv.ParseFloat(c.text, 64); err == nil {
		return n
	}
	return c.text
}

// ReadXLSXRows returns every row of the SheetName worksheet in r.
func ReadXLSXRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows for sheet %q: %w", SheetName, err)
	}
	return rows, nil
}

// ParseXLSXHomes reads homes back from a workbook laid out like WriteXLSX.
// Columns are matched by header name and unknown ones (score included) are
// ignored. The table carries no permits, maintenance, disclosures or system
// types, so those come back empty. Rows without an id are skipped.
func ParseXLSXHomes(r io.Reader) ([]models.Home, error) {
	rows, err := ReadXLSXRows(r)
	if err != nil {
		return nil, err
	}
	homes := []models.Home{}
	if len(rows) == 0 {
		return homes, nil
	}
	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.TrimSpace(name)] = i
	}
	if _, ok := index["id"]; !ok {
		return nil, fmt.Errorf("sheet %q has no id column", SheetName)
	}

	for n, row := range rows[1:] {
		t := xlsxRow{index: index, cells: row, line: n + 2}
		id := t.get("id")
		if id == "" {
			continue
		}
		h := models.Home{
			ID:          id,
			Address:     t.get("address"),
			YearBuilt:   t.whole("yearBuilt"),
			SqFt:        t.whole("sqFt"),
			Beds:        t.whole("beds"),
			Baths:       t.number("baths"),
			LotSqFt:     t.whole("lotSqFt"),
			Permits:     []models.Permit{},
			Maintenance: []models.MaintenanceRecord{},
			Disclosures: []string{},
		}
		if date, price := t.get("lastSoldDate"), t.number("lastSoldPrice"); date != "" || price != 0 {
			h.LastSold = &models.LastSold{Date: date, Price: price}
		}
		for _, k := range models.SystemKeys {
			if year := t.whole(k.String() + "Year"); year != 0 {
				if h.Systems == nil {
					h.Systems = &models.Systems{}
				}
				h.Systems.Set(k, &models.HomeSystem{Year: models.IntPtr(year)})
			}
		}
		if t.err != nil {
			return nil, t.err
		}
		homes = append(homes, h)
	}
	return homes, nil
}

// xlsxRow reads typed cells from one sheet row, keeping the first parse error.
type xlsxRow struct {
	index map[string]int
	cells []string
	line  int
	err   error
}

func (t *xlsxRow) get(col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(t.cells) {
		return ""
	}
	return strings.TrimSpace(t.cells[i])
}

func (t *xlsxRow) number(col string) float64 {
	s := t.get(col)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		if t.err == nil {
			t.err = fmt.Errorf("row %d: invalid %s %q", t.line, col, s)
		}
		return 0
	}
	return v
}

func (t *xlsxRow) whole(col string) int {
	v := t.number(col)
	if v != math.Trunc(v) {
		if t.err == nil {
			t.err = fmt.Errorf("row %d: %s %q is not a whole number", t.line, col, t.get(col))
		}
		return 0
	}
	return int(v)
}
