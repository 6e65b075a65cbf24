package goods

import (
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	cases := map[string]Category{
		"Cheese":        CategoryCheese,
		"Wine":          CategoryWine,
		"Meat":          CategoryMeat,
		"CommonProduct": CategoryCommon,
		" Wine ":        CategoryWine,
		"cheese":        CategoryCommon,
		"Bread":         CategoryCommon,
		"":              CategoryCommon,
	}
	for in, want := range cases {
		if got := ParseCategory(in); got != want {
			t.Errorf("ParseCategory(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestCategoriesRegistry(t *testing.T) {
	list := Categories()
	if len(list) != 4 {
		t.Fatalf("len = %d, want 4", len(list))
	}
	list[0].Label = "mutated"
	if Categories()[0].Label == "mutated" {
		t.Fatalf("Categories must return a copy")
	}
	for _, info := range list {
		if _, ok := info.Category.Info(); !ok {
			t.Fatalf("%s missing from registry", info.Category)
		}
	}
}

func TestParseMeatKind(t *testing.T) {
	k, err := ParseMeatKind("beef")
	if err != nil || k != Beef {
		t.Fatalf("ParseMeatKind(beef) = %s, %v", k, err)
	}
	if _, err := ParseMeatKind("goat"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	if sd := Poultry.ShelfDays(); sd.Fresh != 2 || sd.Vacuum != 10 {
		t.Fatalf("poultry shelf days = %+v", sd)
	}
	if len(MeatKinds()) != 6 {
		t.Fatalf("expected six meat kinds")
	}
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2024, time.February, 28)
	if got := d.AddDays(1).String(); got != "2024-02-29" {
		t.Fatalf("leap day = %s", got)
	}
	if n := d.DaysUntil(NewDate(2024, time.March, 10)); n != 11 {
		t.Fatalf("DaysUntil = %d, want 11", n)
	}
	if n := NewDate(2024, time.March, 10).DaysUntil(d); n != -11 {
		t.Fatalf("DaysUntil = %d, want -11", n)
	}
	if (Date{}).String() != "none" {
		t.Fatalf("zero date should render as none")
	}
	loc := time.FixedZone("UTC+14", 14*3600)
	if got := DateOf(time.Date(2024, 5, 1, 23, 30, 0, 0, loc)); !got.Equal(NewDate(2024, time.May, 1)) {
		t.Fatalf("DateOf = %s", got)
	}
}

func TestDaysUntilFarApart(t *testing.T) {
	cases := []struct {
		to   Date
		want int
	}{
		{NewDate(1700, time.January, 1), -119078},
		{NewDate(2400, time.January, 1), 136591},
	}
	for _, c := range cases {
		if n := day0.DaysUntil(c.to); n != c.want {
			t.Errorf("DaysUntil(%s) = %d, want %d", c.to, n, c.want)
		}
	}
	w := must(NewWine("W1", "Madeira", 10, NewDate(1700, time.January, 1), 10, day0))(t)
	if d, ok := w.DaysToExpiry(); !ok || d != -119078 {
		t.Fatalf("DaysToExpiry = %d, %v", d, ok)
	}
}
