package goods

import (
	"errors"
	"math"
	"testing"
	"time"
)

var day0 = NewDate(2026, time.January, 10)

func must(p *Product, err error) func(*testing.T) *Product {
	return func(t *testing.T) *Product {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected construction error: %v", err)
		}
		return p
	}
}

func TestCheeseLosesOnePerDay(t *testing.T) {
	c := must(NewCheese("C1", "Gouda", 35, day0.AddDays(75), 15, day0))(t)
	c.AdvanceOneDay()
	if c.Quality() != 34 {
		t.Fatalf("quality = %v, want 34", c.Quality())
	}
	if c.Price() != 18.4 {
		t.Fatalf("price = %v, want 18.4", c.Price())
	}
	if !c.Today().Equal(day0.AddDays(1)) {
		t.Fatalf("today = %s, want %s", c.Today(), day0.AddDays(1))
	}
}

func TestCheeseQualityFloorMessage(t *testing.T) {
	_, err := NewCheese("C2", "Cheddar", 29, day0.AddDays(75), 12, day0)
	if err == nil {
		t.Fatalf("expected rejection")
	}
	if err.Error() != "Cheese quality must be at least 30 to be put on stands." {
		t.Fatalf("message = %q", err.Error())
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Category != CategoryCheese || ve.Field != "quality" {
		t.Fatalf("unexpected error value %#v", err)
	}
}

func TestCheeseExpiryWindow(t *testing.T) {
	cases := []struct {
		name   string
		expiry Date
		ok     bool
	}{
		{"exactly 50 days", day0.AddDays(50), false},
		{"51 days", day0.AddDays(51), true},
		{"99 days", day0.AddDays(99), true},
		{"exactly 100 days", day0.AddDays(100), false},
		{"in the past", day0.AddDays(-3), false},
		{"missing", Date{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCheese("C3", "Brie", 40, tc.expiry, 9, day0)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && (err == nil || err.Error() != MsgCheeseExpiry) {
				t.Fatalf("err = %v, want %q", err, MsgCheeseExpiry)
			}
		})
	}
}

func TestMeatDailyLoss(t *testing.T) {
	beef := must(NewMeat("MT001", "Beef Steak", 60, day0.AddDays(3), 15, Beef, false, day0))(t)
	beef.UpdateQuality()
	// floor((60-50)/5) = 2
	if beef.Quality() != 58 {
		t.Fatalf("beef quality = %v, want 58", beef.Quality())
	}

	lamb := must(NewMeat("MT002", "Lamb Chops", 62, day0.AddDays(9), 20, Lamb, true, day0))(t)
	lamb.UpdateQuality()
	if lamb.Quality() != 61 {
		t.Fatalf("lamb quality = %v, want 61", lamb.Quality())
	}
}

func TestMeatLosesTwiceAsFastAfterExpiry(t *testing.T) {
	pork := must(NewMeat("MT006", "Expired Pork", 55, day0.AddDays(3), 10, Pork, false, day0))(t)
	pork.SetExpiryDate(day0.AddDays(-3))
	if !pork.IsExpired() {
		t.Fatalf("expected pork to be expired")
	}
	pork.UpdateQuality()
	if pork.Quality() != 53 {
		t.Fatalf("quality = %v, want 53", pork.Quality())
	}
}

func TestMeatValidation(t *testing.T) {
	cases := []struct {
		name    string
		quality float64
		expiry  Date
		kind    MeatKind
		vacuum  bool
		want    string
	}{
		{"quality below floor", 49, day0.AddDays(3), Poultry, false, MsgMeatQuality},
		{"quality checked before expiry", 49, day0.AddDays(30), Beef, false, MsgMeatQuality},
		{"fresh too far out", 55, day0.AddDays(6), Pork, false, MsgMeatFreshExpiry},
		{"fresh five days", 55, day0.AddDays(5), Pork, false, MsgMeatFreshExpiry},
		{"fresh today", 55, day0, Pork, false, MsgMeatFreshExpiry},
		{"fresh one day", 55, day0.AddDays(1), Pork, false, ""},
		{"fresh four days", 55, day0.AddDays(4), Pork, false, ""},
		{"vacuum too far out", 58, day0.AddDays(11), Venison, true, MsgMeatVacuumExpiry},
		{"vacuum too soon", 58, day0.AddDays(3), Venison, true, MsgMeatVacuumExpiry},
		{"vacuum four days", 58, day0.AddDays(4), Venison, true, ""},
		{"vacuum ten days", 58, day0.AddDays(10), Venison, true, ""},
		{"vacuum without expiry", 58, Date{}, Veal, true, MsgMeatVacuumExpiry},
		{"unknown kind", 58, day0.AddDays(3), MeatKind("GOAT"), false, MsgMeatKindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMeat("M", "meat", tc.quality, tc.expiry, 10, tc.kind, tc.vacuum, day0)
			if tc.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tc.want {
				t.Fatalf("err = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestFreshMeatWithoutExpiryUsesShelfDays(t *testing.T) {
	chicken := must(NewMeat("M1", "Chicken", 70, Date{}, 8, Poultry, false, day0))(t)
	exp, ok := chicken.ExpiryDate()
	if !ok || !exp.Equal(day0.AddDays(2)) {
		t.Fatalf("expiry = %s (set=%v), want %s", exp, ok, day0.AddDays(2))
	}
	info, isMeat := chicken.Meat()
	if !isMeat || info.StartingQuality != 70 || info.Kind != Poultry || info.VacuumPacked {
		t.Fatalf("unexpected meat info %+v", info)
	}
}

func TestWineImprovesEveryTenthDayAfterExpiry(t *testing.T) {
	w1 := must(NewWine("W002", "Chardonnay", 45, day0.AddDays(-10), 10, day0))(t)
	w2 := must(NewWine("W003", "Chardonnay", 35, day0.AddDays(-7), 10, day0))(t)
	w1.UpdateQuality()
	w2.UpdateQuality()
	if w1.Quality() != 46 {
		t.Fatalf("w1 quality = %v, want 46", w1.Quality())
	}
	if w2.Quality() != 35 {
		t.Fatalf("w2 quality = %v, want 35", w2.Quality())
	}
}

func TestWineNeverExceedsFifty(t *testing.T) {
	w := must(NewWine("W1", "Merlot", 45, day0.AddDays(-10), 10, day0))(t)
	for i := 0; i < 10; i++ {
		w.UpdateQuality()
	}
	if w.Quality() != 50 {
		t.Fatalf("quality = %v, want 50", w.Quality())
	}

	frac := must(NewWine("W2", "Rioja", 49.5, day0.AddDays(-20), 10, day0))(t)
	frac.UpdateQuality()
	if frac.Quality() != 50 {
		t.Fatalf("quality = %v, want capped 50", frac.Quality())
	}

	long := must(NewWine("W3", "Port", 0, day0, 10, day0))(t)
	for i := 0; i < 2000; i++ {
		long.AdvanceOneDay()
		if long.Quality() > 50 {
			t.Fatalf("day %d: quality %v exceeds 50", i, long.Quality())
		}
	}
	if long.Quality() != 50 {
		t.Fatalf("quality after 2000 days = %v, want 50", long.Quality())
	}
}

func TestWineDefaultsAndPrice(t *testing.T) {
	w := must(NewWine("W4", "Riesling", 20, Date{}, 12.5, day0))(t)
	exp, ok := w.ExpiryDate()
	if !ok || !exp.Equal(day0) {
		t.Fatalf("expiry = %s, want creation day", exp)
	}
	for i := 0; i < 30; i++ {
		w.AdvanceOneDay()
	}
	if w.IsExpired() {
		t.Fatalf("wine never expires")
	}
	if w.Price() != 12.5 {
		t.Fatalf("price = %v, want base price", w.Price())
	}
	if _, err := NewWine("W5", "Vinegar", -1, Date{}, 1, day0); err == nil || err.Error() != MsgWineQuality {
		t.Fatalf("err = %v, want %q", err, MsgWineQuality)
	}
}

func TestCommonProduct(t *testing.T) {
	p := must(NewCommonProduct("001", "Test Product", 40, day0.AddDays(10), 10, day0))(t)
	if p.Price() != 14 {
		t.Fatalf("price = %v, want 14", p.Price())
	}
	if d, ok := p.DaysToExpiry(); !ok || d != 10 {
		t.Fatalf("days to expiry = %d, want 10", d)
	}
	p.AdvanceOneDay()
	if p.Quality() != 39.76 {
		t.Fatalf("quality = %v, want 39.76", p.Quality())
	}
	if p.Price() != 13.98 {
		t.Fatalf("price = %v, want 13.98", p.Price())
	}

	past := must(NewCommonProduct("002", "Old", 40, day0.AddDays(-10), 10, day0))(t)
	if d, _ := past.DaysToExpiry(); d != -10 {
		t.Fatalf("days to expiry = %d, want -10", d)
	}
	if !past.IsExpired() {
		t.Fatalf("expected expired")
	}

	noDate := must(NewCommonProduct("003", "Bread", 5, Date{}, 2, day0))(t)
	if exp, _ := noDate.ExpiryDate(); !exp.Equal(day0) {
		t.Fatalf("expiry = %s, want creation day", exp)
	}
	if noDate.IsExpired() {
		t.Fatalf("not expired on its expiry day")
	}
	noDate.AdvanceOneDay()
	if !noDate.IsExpired() {
		t.Fatalf("expired the day after expiry")
	}
}

func TestQualityNeverNegative(t *testing.T) {
	products := []*Product{
		must(NewCommonProduct("c", "almost gone", 0.1, Date{}, 1, day0))(t),
		must(NewCommonProduct("n", "negative", -5, Date{}, 1, day0))(t),
		must(NewCheese("ch", "cheese", 30, day0.AddDays(60), 1, day0))(t),
		must(NewWine("w", "wine", 0, Date{}, 1, day0))(t),
		must(NewMeat("m", "meat", 100, day0.AddDays(2), 1, Poultry, false, day0))(t),
	}
	for _, p := range products {
		for i := 0; i < 200; i++ {
			p.AdvanceOneDay()
			if p.Quality() < 0 {
				t.Fatalf("%s: quality %v below zero on day %d", p.ID(), p.Quality(), i)
			}
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	products := []*Product{
		must(NewCommonProduct("c", "bread", 40, day0.AddDays(10), 1, day0))(t),
		must(NewCheese("ch", "cheese", 40, day0.AddDays(60), 1, day0))(t),
		must(NewWine("w", "wine", 10, day0.AddDays(-10), 1, day0))(t),
		must(NewMeat("m", "meat", 80, day0.AddDays(8), 1, Beef, true, day0))(t),
	}
	for _, orig := range products {
		clone := orig.Clone()
		if clone == orig {
			t.Fatalf("%s: clone returned the same pointer", orig.ID())
		}
		beforeQ, beforeDay := orig.Quality(), orig.Today()
		clone.SetQuality(3)
		clone.AdvanceOneDay()
		clone.SetExpiryDate(day0.AddDays(400))
		if orig.Quality() != beforeQ || !orig.Today().Equal(beforeDay) {
			t.Fatalf("%s: original changed after mutating clone", orig.ID())
		}
		if exp, _ := orig.ExpiryDate(); exp.Equal(day0.AddDays(400)) {
			t.Fatalf("%s: original expiry changed", orig.ID())
		}
	}
}

func TestNonFiniteInputRejected(t *testing.T) {
	if _, err := NewCommonProduct("x", "x", math.NaN(), Date{}, 1, day0); err == nil || err.Error() != MsgQualityNotFinite {
		t.Fatalf("err = %v", err)
	}
	if _, err := NewCommonProduct("x", "x", 1, Date{}, math.Inf(1), day0); err == nil || err.Error() != MsgPriceNotFinite {
		t.Fatalf("err = %v", err)
	}
}

func TestBuildFromTag(t *testing.T) {
	p, err := Build("Bread", "B1", "Rye", 20, Date{}, 3, "", false, day0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Category() != CategoryCommon {
		t.Fatalf("category = %s, want CommonProduct", p.Category())
	}
	_, err = Build("Cheese", "C1", "Feta", 10, day0.AddDays(60), 3, "", false, day0)
	if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDescribeCheese(t *testing.T) {
	c := must(NewCheese("C1", "Gouda", 35, day0.AddDays(75), 15, day0))(t)
	want := "Product ID: C1\n" +
		"Product Name: Gouda\n" +
		"Category: Cheese\n" +
		"Current Quality: 35\n" +
		"Expiry Date: 2026-03-26\n" +
		"Daily Price: 18.50\n" +
		"Should be removed from shelves: No\n"
	if got := c.Describe(); got != want {
		t.Fatalf("describe mismatch:\n%s\nwant:\n%s", got, want)
	}
}

func TestDescribeMeatAndRemovalFlag(t *testing.T) {
	m := must(NewMeat("M1", "Veal", 50, day0.AddDays(2), 20, Veal, false, day0))(t)
	want := "Product ID: M1\n" +
		"Product Name: Veal\n" +
		"Category: Meat\n" +
		"Current Quality: 50\n" +
		"Expiry Date: 2026-01-12\n" +
		"Daily Price: 25.00\n" +
		"Meat Kind: VEAL\n" +
		"Is vacuum packed: No\n" +
		"Should be removed from shelves: Yes\n"
	if got := m.Describe(); got != want {
		t.Fatalf("describe mismatch:\n%s\nwant:\n%s", got, want)
	}

	w := must(NewWine("W", "Wine", 1, Date{}, 1, day0))(t)
	if _, applies := w.ShouldBeRemoved(); applies {
		t.Fatalf("wine has no removal threshold")
	}
}
