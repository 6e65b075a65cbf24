// Package simulate runs a product forward day by day on a private copy and
// records what the shelf would show each day.
package simulate

import (
	"errors"

	"github.com/talkincode/supermarkt/internal/goods"
)

// ErrNegativeHorizon is returned for a negative number of days.
var ErrNegativeHorizon = errors.New("simulation days must not be negative")

// Snapshot is the state of a product on one simulated day.
type Snapshot struct {
	ProductID       string
	Day             int
	Date            goods.Date
	Quality         float64
	Price           float64
	Expired         bool
	RemoveFromShelf bool
	Description     string
}

// Take captures the current state of p as day n.
func Take(p *goods.Product, n int) Snapshot {
	remove, _ := p.ShouldBeRemoved()
	return Snapshot{
		ProductID:       p.ID(),
		Day:             n,
		Date:            p.Today(),
		Quality:         p.Quality(),
		Price:           p.Price(),
		Expired:         p.IsExpired(),
		RemoveFromShelf: remove,
		Description:     p.Describe(),
	}
}

// Run is a lazy simulation over a clone of a product. It yields days+1
// snapshots and cannot be restarted.
type Run struct {
	product *goods.Product
	days    int
	next    int
}

// NewRun prepares a simulation of p for the given number of days after its
// current day. p itself is never modified.
func NewRun(p *goods.Product, days int) (*Run, error) {
	if days < 0 {
		return nil, ErrNegativeHorizon
	}
	return &Run{product: p.Clone(), days: days}, nil
}

// Next returns the snapshot for the current day and advances the clone.
// ok is false once the horizon is exhausted.
func (r *Run) Next() (s Snapshot, ok bool) {
	if r.next > r.days {
		return Snapshot{}, false
	}
	s = Take(r.product, r.next)
	r.product.AdvanceOneDay()
	r.next++
	return s, true
}

// Remaining is the number of snapshots still to come.
func (r *Run) Remaining() int {
	return r.days + 1 - r.next
}

// Days simulates p for the given number of days and returns every snapshot,
// today first.
func Days(p *goods.Product, days int) ([]Snapshot, error) {
	run, err := NewRun(p, days)
	if err != nil {
		return nil, err
	}
	out := make([]Snapshot, 0, days+1)
	for {
		s, ok := run.Next()
		if !ok {
			return out, nil
		}
		out = append(out, s)
	}
}
