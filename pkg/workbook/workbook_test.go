package workbook

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
)

func buildWorkbook(t *testing.T, sheets map[string][][]string) *bytes.Buffer {
	t.Helper()
	file := xlsx.NewFile()
	for name, rows := range sheets {
		sheet, err := file.AddSheet(name)
		require.NoError(t, err)
		for _, cells := range rows {
			row := sheet.AddRow()
			for _, v := range cells {
				row.AddCell().SetString(v)
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	return &buf
}

func TestParseReadsRecognizedSheets(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]string{
		SheetDevices: {
			{"serialNumber", "manufacturer", "model"},
			{"SN001", "Acme", "Rocket 9"},
			{"SN002", "Lenovo", ""},
		},
		SheetEmployees: {
			{"name", "department"},
			{"Bob Smith", "IT"},
		},
		"Notes": {
			{"whatever"},
			{"ignored"},
		},
	})

	data, err := Parse(buf)
	require.NoError(t, err)

	devices := data.Rows(SheetDevices)
	require.Len(t, devices, 2)
	assert.Equal(t, "SN001", devices[0].Get("serialNumber"))
	assert.Equal(t, "Acme", devices[0].Get("manufacturer"))
	assert.Equal(t, "Rocket 9", devices[0].Get("model"))
	assert.Empty(t, devices[1].Get("model"), "empty cells are omitted")

	employees := data.Rows(SheetEmployees)
	require.Len(t, employees, 1)
	assert.Equal(t, "Bob Smith", employees[0].Get("name"))

	assert.Nil(t, data.Rows("Notes"), "unrecognized sheets are ignored")
	assert.Nil(t, data.Rows(SheetAccessories), "absent sheets read as nil")
}

func TestParseSkipsBlankRowsAndTrims(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]string{
		SheetAccessories: {
			{" name ", "manufacturer"},
			{"", ""},
			{"  Charger TEST  ", "Anker"},
		},
	})

	data, err := Parse(buf)
	require.NoError(t, err)

	rows := data.Rows(SheetAccessories)
	require.Len(t, rows, 1)
	assert.Equal(t, "Charger TEST", rows[0].Get("name"))
}

func TestParseRejectsMissingHeader(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]string{
		SheetEmployees: {{""}},
	})

	_, err := Parse(buf)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse(bytes.NewReader([]byte("not a zip archive")))
	assert.Error(t, err)
}
