package goods

import (
	"fmt"
	"strings"
)

// MeatKind is a cut of meat with its own shelf life.
type MeatKind string

const (
	Poultry MeatKind = "POULTRY"
	Beef    MeatKind = "BEEF"
	Pork    MeatKind = "PORK"
	Venison MeatKind = "VENISON"
	Veal    MeatKind = "VEAL"
	Lamb    MeatKind = "LAMB"
)

// ShelfDays is how long a meat kind keeps fresh and vacuum packed.
type ShelfDays struct {
	Fresh  int
	Vacuum int
}

var meatKinds = []MeatKind{Poultry, Beef, Pork, Venison, Veal, Lamb}

var shelfDays = map[MeatKind]ShelfDays{
	Poultry: {Fresh: 2, Vacuum: 10},
	Beef:    {Fresh: 5, Vacuum: 10},
	Pork:    {Fresh: 5, Vacuum: 10},
	Venison: {Fresh: 5, Vacuum: 10},
	Veal:    {Fresh: 5, Vacuum: 10},
	Lamb:    {Fresh: 5, Vacuum: 10},
}

// MeatKinds returns all meat kinds in menu order.
func MeatKinds() []MeatKind {
	out := make([]MeatKind, len(meatKinds))
	copy(out, meatKinds)
	return out
}

// ParseMeatKind accepts a kind name in any letter case.
func ParseMeatKind(s string) (MeatKind, error) {
	k := MeatKind(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := shelfDays[k]; !ok {
		return "", fmt.Errorf("unknown meat kind %q", s)
	}
	return k, nil
}

// ShelfDays returns the shelf life table entry of k.
func (k MeatKind) ShelfDays() ShelfDays {
	sd, ok := shelfDays[k]
	if !ok {
		panic(fmt.Sprintf("goods: unknown meat kind %q", string(k)))
	}
	return sd
}

func (k MeatKind) Valid() bool {
	_, ok := shelfDays[k]
	return ok
}

func (k MeatKind) String() string {
	return string(k)
}

// MeatInfo is the meat-specific state of a product.
type MeatInfo struct {
	Kind            MeatKind
	VacuumPacked    bool
	StartingQuality float64
}
