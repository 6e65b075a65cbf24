package goods

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	commonDailyLoss  = 0.24
	priceQualityRate = 0.10
	wineMaxQuality   = 50
	wineStepDays     = 10
)

// state is the part of a product the daily rules read.
type state struct {
	quality   float64
	expiry    Date
	today     Date
	basePrice float64
}

func (s state) pastExpiry() bool {
	return !s.expiry.IsZero() && s.today.After(s.expiry)
}

// policy holds the per-category rules. Implementations are immutable values,
// so copying a Product copies its policy safely.
type policy interface {
	category() Category
	nextQuality(s state) float64
	expired(s state) bool
	price(s state) float64
}

func policyFor(c Category, meat MeatInfo) policy {
	switch c {
	case CategoryCommon:
		return commonPolicy{}
	case CategoryCheese:
		return cheesePolicy{}
	case CategoryWine:
		return winePolicy{}
	case CategoryMeat:
		return meatPolicy{
			kind:            meat.Kind,
			vacuumPacked:    meat.VacuumPacked,
			startingQuality: meat.StartingQuality,
		}
	}
	panic("goods: no policy for category " + string(c))
}

type commonPolicy struct{}

func (commonPolicy) category() Category { return CategoryCommon }

func (commonPolicy) nextQuality(s state) float64 {
	if s.quality <= 0 {
		return clampQuality(s.quality)
	}
	q := decimal.NewFromFloat(s.quality).Sub(decimal.NewFromFloat(commonDailyLoss)).Round(2)
	return clampQuality(toFloat(q))
}

func (commonPolicy) expired(s state) bool { return s.pastExpiry() }

func (commonPolicy) price(s state) float64 { return qualityPrice(s) }

type cheesePolicy struct{}

func (cheesePolicy) category() Category { return CategoryCheese }

func (cheesePolicy) nextQuality(s state) float64 {
	if s.quality <= 0 {
		return clampQuality(s.quality)
	}
	return clampQuality(s.quality - 1)
}

func (cheesePolicy) expired(s state) bool { return s.pastExpiry() }

func (cheesePolicy) price(s state) float64 { return qualityPrice(s) }

// winePolicy improves quality every tenth day measured from the expiry date.
type winePolicy struct{}

func (winePolicy) category() Category { return CategoryWine }

func (winePolicy) nextQuality(s state) float64 {
	if !s.pastExpiry() || s.quality >= wineMaxQuality {
		return s.quality
	}
	diff := s.today.DaysUntil(s.expiry)
	if diff < 0 {
		diff = -diff
	}
	if diff%wineStepDays != 0 {
		return s.quality
	}
	return math.Min(s.quality+1, wineMaxQuality)
}

func (winePolicy) expired(state) bool { return false }

func (winePolicy) price(s state) float64 { return s.basePrice }

type meatPolicy struct {
	kind            MeatKind
	vacuumPacked    bool
	startingQuality float64
}

func (meatPolicy) category() Category { return CategoryMeat }

// modifier is the daily loss that brings the starting quality down to the
// removal threshold over the kind's shelf life.
func (p meatPolicy) modifier() float64 {
	sd := p.kind.ShelfDays()
	days := sd.Fresh
	if p.vacuumPacked {
		days = sd.Vacuum
	}
	return math.Floor((p.startingQuality - meatMinQuality) / float64(days))
}

func (p meatPolicy) nextQuality(s state) float64 {
	loss := p.modifier()
	if p.expired(s) {
		loss *= 2
	}
	return clampQuality(s.quality - loss)
}

func (meatPolicy) expired(s state) bool { return s.pastExpiry() }

func (meatPolicy) price(s state) float64 { return qualityPrice(s) }

// qualityPrice is base + 10% of quality, rounded to cents.
func qualityPrice(s state) float64 {
	p := decimal.NewFromFloat(s.basePrice).
		Add(decimal.NewFromFloat(s.quality).Mul(decimal.NewFromFloat(priceQualityRate))).
		Round(2)
	return toFloat(p)
}

func clampQuality(q float64) float64 {
	if q < 0 || math.IsNaN(q) {
		return 0
	}
	return q
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
