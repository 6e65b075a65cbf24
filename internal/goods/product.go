// Package goods models perishable shelf products: their per-category quality
// and price rules, the checks a product must pass to be put on the shelf, and
// the day-by-day update step.
//
// A Product holds value fields only. Copying it (or calling Clone) gives an
// independent product whose quality, expiry and day cursor evolve separately.
package goods

import "math"

// Params are the construction arguments of a product.
type Params struct {
	Category  Category
	ID        string
	Name      string
	Quality   float64
	Expiry    Date // zero means unknown
	BasePrice float64

	// Meat only.
	MeatKind     MeatKind
	VacuumPacked bool

	// Today is the creation day; zero means the current local day.
	Today Date
}

// Product is a shelf item. Create it with New or one of the category helpers.
type Product struct {
	id        string
	name      string
	quality   float64
	expiry    Date
	basePrice float64
	today     Date
	rules     policy
	meat      MeatInfo
}

// New validates p and creates the product. A rejected product is never
// returned; the error is a *ValidationError.
func New(p Params) (*Product, error) {
	if p.Today.IsZero() {
		p.Today = Today()
	}
	if _, ok := p.Category.Info(); !ok {
		p.Category = CategoryCommon
	}

	expiry, err := validate(p)
	if err != nil {
		return nil, err
	}

	prod := &Product{
		id:        p.ID,
		name:      p.Name,
		quality:   p.Quality,
		expiry:    expiry,
		basePrice: p.BasePrice,
		today:     p.Today,
	}
	if p.Category == CategoryMeat {
		prod.meat = MeatInfo{
			Kind:            p.MeatKind,
			VacuumPacked:    p.VacuumPacked,
			StartingQuality: p.Quality,
		}
	}
	prod.rules = policyFor(p.Category, prod.meat)
	return prod, nil
}

// Build creates a product from an external type tag. Unknown tags create a
// CommonProduct.
func Build(tag, id, name string, quality float64, expiry Date, basePrice float64, meatKind MeatKind, vacuumPacked bool, today Date) (*Product, error) {
	return New(Params{
		Category:     ParseCategory(tag),
		ID:           id,
		Name:         name,
		Quality:      quality,
		Expiry:       expiry,
		BasePrice:    basePrice,
		MeatKind:     meatKind,
		VacuumPacked: vacuumPacked,
		Today:        today,
	})
}

func NewCommonProduct(id, name string, quality float64, expiry Date, basePrice float64, today Date) (*Product, error) {
	return New(Params{Category: CategoryCommon, ID: id, Name: name, Quality: quality, Expiry: expiry, BasePrice: basePrice, Today: today})
}

func NewCheese(id, name string, quality float64, expiry Date, basePrice float64, today Date) (*Product, error) {
	return New(Params{Category: CategoryCheese, ID: id, Name: name, Quality: quality, Expiry: expiry, BasePrice: basePrice, Today: today})
}

func NewWine(id, name string, quality float64, expiry Date, basePrice float64, today Date) (*Product, error) {
	return New(Params{Category: CategoryWine, ID: id, Name: name, Quality: quality, Expiry: expiry, BasePrice: basePrice, Today: today})
}

func NewMeat(id, name string, quality float64, expiry Date, basePrice float64, kind MeatKind, vacuumPacked bool, today Date) (*Product, error) {
	return New(Params{
		Category:     CategoryMeat,
		ID:           id,
		Name:         name,
		Quality:      quality,
		Expiry:       expiry,
		BasePrice:    basePrice,
		MeatKind:     kind,
		VacuumPacked: vacuumPacked,
		Today:        today,
	})
}

func (p *Product) ID() string { return p.id }

func (p *Product) Name() string { return p.name }

func (p *Product) Category() Category { return p.rules.category() }

func (p *Product) Quality() float64 { return p.quality }

// BasePrice is the price fixed at construction.
func (p *Product) BasePrice() float64 { return p.basePrice }

// Today is the day the product state refers to.
func (p *Product) Today() Date { return p.today }

// ExpiryDate returns the expiry date and whether one is set.
func (p *Product) ExpiryDate() (Date, bool) {
	return p.expiry, !p.expiry.IsZero()
}

// Meat returns the meat attributes when the product is meat.
func (p *Product) Meat() (MeatInfo, bool) {
	return p.meat, p.Category() == CategoryMeat
}

// Price is today's shelf price.
func (p *Product) Price() float64 {
	return p.rules.price(p.state())
}

// IsExpired reports whether the product is past its expiry as of Today.
func (p *Product) IsExpired() bool {
	return p.rules.expired(p.state())
}

// DaysToExpiry returns expiry minus today in days, negative once the expiry
// date has passed. ok is false when no expiry date is set.
func (p *Product) DaysToExpiry() (days int, ok bool) {
	if p.expiry.IsZero() {
		return 0, false
	}
	return p.today.DaysUntil(p.expiry), true
}

// ShouldBeRemoved reports whether quality has dropped to the category's
// removal threshold. applies is false for categories without one.
func (p *Product) ShouldBeRemoved() (remove bool, applies bool) {
	info, _ := p.Category().Info()
	if info.RemovalThreshold == 0 {
		return false, false
	}
	return p.quality <= info.RemovalThreshold, true
}

// UpdateQuality applies one day of the category quality rule without moving
// the day cursor.
func (p *Product) UpdateQuality() {
	p.quality = p.rules.nextQuality(p.state())
	if p.quality < 0 || math.IsNaN(p.quality) || math.IsInf(p.quality, 0) {
		panic("goods: quality left the valid range after update")
	}
}

// AdvanceOneDay updates quality for the current day and moves to the next.
func (p *Product) AdvanceOneDay() {
	p.UpdateQuality()
	p.today = p.today.AddDays(1)
}

// SetQuality corrects the quality. Negative and non-finite values become 0.
func (p *Product) SetQuality(q float64) {
	if math.IsInf(q, 0) {
		q = 0
	}
	p.quality = clampQuality(q)
}

// SetExpiryDate corrects the expiry date. The zero Date clears it.
func (p *Product) SetExpiryDate(d Date) {
	p.expiry = d
}

// Clone returns an independent copy.
func (p *Product) Clone() *Product {
	c := *p
	return &c
}

func (p *Product) state() state {
	return state{
		quality:   p.quality,
		expiry:    p.expiry,
		today:     p.today,
		basePrice: p.basePrice,
	}
}
