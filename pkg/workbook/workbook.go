// Package workbook reads seed data for the inventory collections out of an
// Excel workbook. One sheet per collection; the first row carries the form
// field names, every following row one record. The seed tool feeds the rows
// through the entity services so workbook data is validated exactly like a
// form submission.
package workbook

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/tealeg/xlsx/v3"
)

// Sheet names recognized by the seed tool.
const (
	SheetEmployees           = "Employees"
	SheetDevices             = "Devices"
	SheetAccessories         = "Accessories"
	SheetAssignedDevices     = "AssignedDevices"
	SheetAssignedAccessories = "AssignedAccessories"
)

// Data holds the parsed rows keyed by sheet name. Rows are url.Values so
// they drop straight into Service.Create.
type Data struct {
	Sheets map[string][]url.Values
}

// Rows returns the rows of one sheet, or nil when the sheet is absent.
func (d Data) Rows(sheet string) []url.Values {
	return d.Sheets[sheet]
}

// Parse reads the workbook and extracts the rows of every recognized sheet.
// Unknown sheets are ignored. Blank rows are skipped.
func Parse(r io.Reader) (Data, error) {
	data := Data{Sheets: map[string][]url.Values{}}

	raw, err := io.ReadAll(r)
	if err != nil {
		return data, fmt.Errorf("read workbook: %w", err)
	}
	file, err := xlsx.OpenBinary(raw)
	if err != nil {
		return data, fmt.Errorf("open workbook: %w", err)
	}

	recognized := map[string]bool{
		SheetEmployees:           true,
		SheetDevices:             true,
		SheetAccessories:         true,
		SheetAssignedDevices:     true,
		SheetAssignedAccessories: true,
	}

	for _, sheet := range file.Sheets {
		if !recognized[sheet.Name] {
			continue
		}
		rows, err := parseSheet(sheet)
		if err != nil {
			return data, fmt.Errorf("sheet %s: %w", sheet.Name, err)
		}
		data.Sheets[sheet.Name] = rows
	}

	return data, nil
}

func parseSheet(sheet *xlsx.Sheet) ([]url.Values, error) {
	headerRow, err := sheet.Row(0)
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}

	headers := []string{}
	for col := 0; ; col++ {
		cell := headerRow.GetCell(col)
		if cell == nil {
			break
		}
		name := strings.TrimSpace(cell.String())
		if name == "" {
			break
		}
		headers = append(headers, name)
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	rows := []url.Values{}
	for idx := 1; idx < sheet.MaxRow; idx++ {
		row, err := sheet.Row(idx)
		if err != nil {
			break
		}
		values := url.Values{}
		for col, header := range headers {
			cell := row.GetCell(col)
			if cell == nil {
				continue
			}
			if v := strings.TrimSpace(cell.String()); v != "" {
				values.Set(header, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		rows = append(rows, values)
	}

	return rows, nil
}
