package goods

import (
	"strconv"
	"strings"
)

// Describe renders the product as a multi-line record for display.
func (p *Product) Describe() string {
	var sb strings.Builder
	sb.WriteString("Product ID: " + p.id + "\n")
	sb.WriteString("Product Name: " + p.name + "\n")
	sb.WriteString("Category: " + p.Category().String() + "\n")
	sb.WriteString("Current Quality: " + FormatQuality(p.quality) + "\n")
	sb.WriteString("Expiry Date: " + p.expiry.String() + "\n")
	sb.WriteString("Daily Price: " + FormatPrice(p.Price()) + "\n")
	if meat, ok := p.Meat(); ok {
		sb.WriteString("Meat Kind: " + meat.Kind.String() + "\n")
		sb.WriteString("Is vacuum packed: " + yesNo(meat.VacuumPacked) + "\n")
	}
	if remove, applies := p.ShouldBeRemoved(); applies {
		sb.WriteString("Should be removed from shelves: " + yesNo(remove) + "\n")
	}
	return sb.String()
}

func (p *Product) String() string {
	return p.Describe()
}

// FormatQuality prints a quality with the shortest exact representation.
func FormatQuality(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// FormatPrice prints a price with two decimals.
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
