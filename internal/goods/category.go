package goods

import "strings"

// Category selects the decay, expiry and pricing rules of a product.
type Category string

const (
	CategoryCommon Category = "CommonProduct"
	CategoryCheese Category = "Cheese"
	CategoryWine   Category = "Wine"
	CategoryMeat   Category = "Meat"
)

// CategoryInfo describes a category for prompts and listings.
type CategoryInfo struct {
	Category    Category
	Label       string
	Description string

	// RemovalThreshold is the quality at or below which the product should
	// leave the shelf; zero means the category never reports it.
	RemovalThreshold float64
	NeedsExpiry      bool
}

var categories = []CategoryInfo{
	{
		Category:    CategoryCommon,
		Label:       "Common Product",
		Description: "loses 0.24 quality per day, expiry defaults to today",
	},
	{
		Category:         CategoryCheese,
		Label:            "Cheese",
		Description:      "loses 1 quality per day, expires 50 to 100 days out",
		RemovalThreshold: cheeseMinQuality,
		NeedsExpiry:      true,
	},
	{
		Category:    CategoryWine,
		Label:       "Wine",
		Description: "gains quality every 10 days after expiry, up to 50, fixed price",
	},
	{
		Category:         CategoryMeat,
		Label:            "Meat",
		Description:      "loses quality by a kind-specific rate, twice as fast after expiry",
		RemovalThreshold: meatMinQuality,
	},
}

// Categories returns the known categories in menu order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categories))
	copy(out, categories)
	return out
}

// Info returns the descriptor of c.
func (c Category) Info() (CategoryInfo, bool) {
	for _, info := range categories {
		if info.Category == c {
			return info, true
		}
	}
	return CategoryInfo{}, false
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory maps an external type tag to a category. Unknown tags fall
// back to CommonProduct.
func ParseCategory(tag string) Category {
	switch strings.TrimSpace(tag) {
	case string(CategoryCheese):
		return CategoryCheese
	case string(CategoryWine):
		return CategoryWine
	case string(CategoryMeat):
		return CategoryMeat
	default:
		return CategoryCommon
	}
}
