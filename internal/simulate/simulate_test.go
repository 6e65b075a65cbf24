package simulate

import (
	"testing"
	"time"

	"github.com/talkincode/supermarkt/internal/goods"
)

var day0 = goods.NewDate(2026, time.March, 1)

func cheese(t *testing.T) *goods.Product {
	t.Helper()
	p, err := goods.NewCheese("C1", "Gouda", 35, day0.AddDays(75), 15, day0)
	if err != nil {
		t.Fatalf("cheese: %v", err)
	}
	return p
}

func TestDaysEmitsHorizonPlusOne(t *testing.T) {
	p := cheese(t)
	snaps, err := Days(p, 5)
	if err != nil {
		t.Fatalf("Days: %v", err)
	}
	if len(snaps) != 6 {
		t.Fatalf("len = %d, want 6", len(snaps))
	}
	for i, s := range snaps {
		if s.Day != i {
			t.Fatalf("snapshot %d has day %d", i, s.Day)
		}
		if !s.Date.Equal(day0.AddDays(i)) {
			t.Fatalf("snapshot %d date = %s", i, s.Date)
		}
		if s.Quality != float64(35-i) {
			t.Fatalf("snapshot %d quality = %v", i, s.Quality)
		}
	}
	if snaps[1].Price != 18.4 {
		t.Fatalf("day 1 price = %v, want 18.4", snaps[1].Price)
	}
}

func TestSimulationLeavesOriginalUntouched(t *testing.T) {
	p := cheese(t)
	if _, err := Days(p, 30); err != nil {
		t.Fatalf("Days: %v", err)
	}
	if p.Quality() != 35 || !p.Today().Equal(day0) {
		t.Fatalf("original changed: quality=%v today=%s", p.Quality(), p.Today())
	}
}

func TestZeroDaysIsCurrentState(t *testing.T) {
	p := cheese(t)
	snaps, err := Days(p, 0)
	if err != nil {
		t.Fatalf("Days: %v", err)
	}
	if len(snaps) != 1 {
		t.Fatalf("len = %d, want 1", len(snaps))
	}
	want := Take(p, 0)
	if snaps[0] != want {
		t.Fatalf("snapshot = %+v, want %+v", snaps[0], want)
	}
}

func TestNegativeHorizon(t *testing.T) {
	if _, err := Days(cheese(t), -1); err != ErrNegativeHorizon {
		t.Fatalf("err = %v, want ErrNegativeHorizon", err)
	}
}

func TestRunIsLazyAndNotRestartable(t *testing.T) {
	run, err := NewRun(cheese(t), 2)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	if run.Remaining() != 3 {
		t.Fatalf("remaining = %d, want 3", run.Remaining())
	}
	count := 0
	for {
		if _, ok := run.Next(); !ok {
			break
		}
		count++
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
	if _, ok := run.Next(); ok {
		t.Fatalf("exhausted run must stay exhausted")
	}
}

func TestNoEarlyStopOnExpiry(t *testing.T) {
	p, err := goods.NewMeat("M1", "Chicken", 60, goods.Date{}, 5, goods.Poultry, false, day0)
	if err != nil {
		t.Fatalf("meat: %v", err)
	}
	snaps, err := Days(p, 20)
	if err != nil {
		t.Fatalf("Days: %v", err)
	}
	if len(snaps) != 21 {
		t.Fatalf("len = %d, want 21", len(snaps))
	}
	last := snaps[len(snaps)-1]
	if !last.Expired || last.Quality != 0 || !last.RemoveFromShelf {
		t.Fatalf("unexpected final snapshot %+v", last)
	}
}

func TestIndependentRunsDoNotInterfere(t *testing.T) {
	p := cheese(t)
	a, _ := NewRun(p, 10)
	b, _ := NewRun(p, 10)
	for i := 0; i < 5; i++ {
		a.Next()
	}
	first, _ := b.Next()
	if first.Quality != 35 {
		t.Fatalf("second run saw quality %v, want 35", first.Quality)
	}
}
