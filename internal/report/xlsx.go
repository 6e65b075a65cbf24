package report

import (
	"io"
	"strconv"

	"github.com/360EntSecGroup-Skylar/excelize"

	"github.com/talkincode/supermarkt/internal/inventory"
)

const (
	sheetDays    = "Sheet1"
	sheetSummary = "Summary"
)

var xlsxHeader = []string{"Product ID", "Day", "Date", "Quality", "Price", "Expired", "Remove From Shelf"}

// WriteXLSX writes a workbook with one row per product and day, plus a
// summary sheet.
func WriteXLSX(w io.Writer, results []inventory.Result) error {
	xlsx := excelize.NewFile()
	for i, h := range xlsxHeader {
		xlsx.SetCellValue(sheetDays, cellName(i, 1), h)
	}
	for n, row := range Rows(results) {
		line := n + 2
		values := []interface{}{row.ProductID, row.Day, row.Date, row.Quality, row.Price, row.Expired, row.RemoveFromShelf}
		for i, v := range values {
			xlsx.SetCellValue(sheetDays, cellName(i, line), v)
		}
	}

	s := Summarize(results)
	xlsx.NewSheet(sheetSummary)
	summary := [][2]interface{}{
		{"Products", s.Products},
		{"Days simulated", s.Days},
		{"Mean quality", s.MeanQuality},
		{"Median quality", s.MedianQuality},
		{"Min quality", s.MinQuality},
		{"Max quality", s.MaxQuality},
		{"Shelf value", s.TotalValue},
		{"Expired", s.Expired},
		{"To remove from shelves", s.ToRemove},
	}
	for i, kv := range summary {
		xlsx.SetCellValue(sheetSummary, cellName(0, i+1), kv[0])
		xlsx.SetCellValue(sheetSummary, cellName(1, i+1), kv[1])
	}
	return xlsx.Write(w)
}

// cellName converts a 0-based column and 1-based row to an A1 reference.
func cellName(col, row int) string {
	name := ""
	for col >= 0 {
		name = string(rune('A'+col%26)) + name
		col = col/26 - 1
	}
	return name + strconv.Itoa(row)
}
