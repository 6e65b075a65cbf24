// Package report writes simulation results as text, JSON, CSV or XLSX and
// computes summary statistics over them.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/talkincode/supermarkt/internal/inventory"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	case "", "txt":
		return FormatText, nil
	default:
		return "", errors.Errorf("unknown report format %q", s)
	}
}

// Row is one product on one simulated day, flattened for tabular output.
type Row struct {
	ProductID       string  `json:"product_id" csv:"product_id"`
	Day             int     `json:"day" csv:"day"`
	Date            string  `json:"date" csv:"date"`
	Quality         float64 `json:"quality" csv:"quality"`
	Price           float64 `json:"price" csv:"price"`
	Expired         bool    `json:"expired" csv:"expired"`
	RemoveFromShelf bool    `json:"remove_from_shelf" csv:"remove_from_shelf"`
}

// Rows flattens results, product by product.
func Rows(results []inventory.Result) []*Row {
	var rows []*Row
	for _, r := range results {
		for _, s := range r.Snapshots {
			rows = append(rows, &Row{
				ProductID:       s.ProductID,
				Day:             s.Day,
				Date:            s.Date.String(),
				Quality:         s.Quality,
				Price:           s.Price,
				Expired:         s.Expired,
				RemoveFromShelf: s.RemoveFromShelf,
			})
		}
	}
	return rows
}

// Write renders results to w in the given format.
func Write(w io.Writer, f Format, results []inventory.Result) error {
	switch f {
	case FormatText:
		return WriteText(w, results)
	case FormatJSON:
		return WriteJSON(w, results)
	case FormatCSV:
		return WriteCSV(w, results)
	case FormatXLSX:
		return WriteXLSX(w, results)
	default:
		return errors.Errorf("unknown report format %q", f)
	}
}

// WriteText prints every product's description day by day, the way the
// interactive menu shows a simulation.
func WriteText(w io.Writer, results []inventory.Result) error {
	days := 0
	for _, r := range results {
		if len(r.Snapshots) > days {
			days = len(r.Snapshots)
		}
	}
	var sb strings.Builder
	for d := 0; d < days; d++ {
		fmt.Fprintf(&sb, "=== Day %d ===\n", d)
		for _, r := range results {
			if d >= len(r.Snapshots) {
				continue
			}
			sb.WriteString(r.Snapshots[d].Description)
			sb.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

type jsonProduct struct {
	ProductID string `json:"product_id"`
	Rows      []*Row `json:"days"`
}

type jsonReport struct {
	Summary  Summary       `json:"summary"`
	Products []jsonProduct `json:"products"`
}

func WriteJSON(w io.Writer, results []inventory.Result) error {
	out := jsonReport{Summary: Summarize(results)}
	for _, r := range results {
		out.Products = append(out.Products, jsonProduct{
			ProductID: r.ProductID,
			Rows:      Rows([]inventory.Result{r}),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func WriteCSV(w io.Writer, results []inventory.Result) error {
	rows := Rows(results)
	if rows == nil {
		rows = []*Row{}
	}
	return gocsv.Marshal(rows, w)
}
