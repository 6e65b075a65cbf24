package report

import (
	"fmt"
	"io"

	"github.com/montanaflynn/stats"

	"github.com/talkincode/supermarkt/internal/goods"
	"github.com/talkincode/supermarkt/internal/inventory"
)

// Summary describes the last simulated day across all products.
type Summary struct {
	Products      int     `json:"products"`
	Days          int     `json:"days"`
	MeanQuality   float64 `json:"mean_quality"`
	MedianQuality float64 `json:"median_quality"`
	MinQuality    float64 `json:"min_quality"`
	MaxQuality    float64 `json:"max_quality"`
	TotalValue    float64 `json:"total_value"`
	Expired       int     `json:"expired"`
	ToRemove      int     `json:"to_remove"`
}

// Summarize computes statistics over the final snapshot of every product.
func Summarize(results []inventory.Result) Summary {
	var (
		sum       Summary
		qualities stats.Float64Data
		prices    stats.Float64Data
	)
	for _, r := range results {
		if len(r.Snapshots) == 0 {
			continue
		}
		last := r.Snapshots[len(r.Snapshots)-1]
		sum.Products++
		if last.Day > sum.Days {
			sum.Days = last.Day
		}
		qualities = append(qualities, last.Quality)
		prices = append(prices, last.Price)
		if last.Expired {
			sum.Expired++
		}
		if last.RemoveFromShelf {
			sum.ToRemove++
		}
	}
	if len(qualities) == 0 {
		return sum
	}
	sum.MeanQuality, _ = stats.Round(mustStat(qualities.Mean()), 2)
	sum.MedianQuality = mustStat(qualities.Median())
	sum.MinQuality = mustStat(qualities.Min())
	sum.MaxQuality = mustStat(qualities.Max())
	sum.TotalValue, _ = stats.Round(mustStat(prices.Sum()), 2)
	return sum
}

// mustStat drops the error stats returns for empty input, which Summarize
// rules out before calling.
func mustStat(v float64, _ error) float64 {
	return v
}

// WriteSummary prints s as a short text block.
func WriteSummary(w io.Writer, s Summary) error {
	_, err := fmt.Fprintf(w,
		"Products: %d\nDays simulated: %d\nQuality mean/median: %s / %s\nQuality min/max: %s / %s\nShelf value: %s\nExpired: %d\nTo remove from shelves: %d\n",
		s.Products, s.Days,
		goods.FormatQuality(s.MeanQuality), goods.FormatQuality(s.MedianQuality),
		goods.FormatQuality(s.MinQuality), goods.FormatQuality(s.MaxQuality),
		goods.FormatPrice(s.TotalValue), s.Expired, s.ToRemove)
	return err
}
