package goods

import (
	"errors"
	"math"
)

const (
	cheeseMinQuality  = 30
	cheeseMinDays     = 50
	cheeseMaxDays     = 100
	meatMinQuality    = 50
	meatFreshMinDays  = 1
	meatFreshMaxDays  = 4
	meatVacuumMinDays = 4
	meatVacuumMaxDays = 10
	wineMinQuality    = 0
)

const (
	MsgQualityNotFinite = "Product quality must be a finite number."
	MsgPriceNotFinite   = "Product base price must be a finite number."
	MsgCheeseQuality    = "Cheese quality must be at least 30 to be put on stands."
	MsgCheeseExpiry     = "Cheese expiry date must be between 50 and 100 days in the future."
	MsgMeatQuality      = "Meat quality must be at least 50 to be put on stands."
	MsgMeatFreshExpiry  = "Meat expiry date must be between 1 and 4 days for fresh meat."
	MsgMeatVacuumExpiry = "Meat expiry date must be between 5 and 10 days for vacuum packed meat."
	MsgWineQuality      = "Wine quality must be at least 0."
	MsgMeatKindUnknown  = "Meat kind must be one of POULTRY, BEEF, PORK, VENISON, VEAL, LAMB."
)

// ValidationError rejects a construction attempt. Its message is fixed per
// rule so callers can match it verbatim.
type ValidationError struct {
	Category Category
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func reject(c Category, field, reason string) *ValidationError {
	return &ValidationError{Category: c, Field: field, Reason: reason}
}

// validate checks p against its category rules and fills in derived expiry
// dates. It returns the expiry the product must be created with.
func validate(p Params) (Date, error) {
	if math.IsNaN(p.Quality) || math.IsInf(p.Quality, 0) {
		return Date{}, reject(p.Category, "quality", MsgQualityNotFinite)
	}
	if math.IsNaN(p.BasePrice) || math.IsInf(p.BasePrice, 0) {
		return Date{}, reject(p.Category, "base_price", MsgPriceNotFinite)
	}

	switch p.Category {
	case CategoryCheese:
		return validateCheese(p)
	case CategoryMeat:
		return validateMeat(p)
	case CategoryWine:
		if p.Quality < wineMinQuality {
			return Date{}, reject(p.Category, "quality", MsgWineQuality)
		}
		return expiryOrToday(p), nil
	default:
		return expiryOrToday(p), nil
	}
}

func expiryOrToday(p Params) Date {
	if p.Expiry.IsZero() {
		return p.Today
	}
	return p.Expiry
}

func validateCheese(p Params) (Date, error) {
	if p.Quality < cheeseMinQuality {
		return Date{}, reject(p.Category, "quality", MsgCheeseQuality)
	}
	if p.Expiry.IsZero() {
		return Date{}, reject(p.Category, "expiry_date", MsgCheeseExpiry)
	}
	days := p.Today.DaysUntil(p.Expiry)
	// Both ends are excluded.
	if days <= cheeseMinDays || days >= cheeseMaxDays {
		return Date{}, reject(p.Category, "expiry_date", MsgCheeseExpiry)
	}
	return p.Expiry, nil
}

func validateMeat(p Params) (Date, error) {
	if !p.MeatKind.Valid() {
		return Date{}, reject(p.Category, "meat_kind", MsgMeatKindUnknown)
	}
	if p.Quality < meatMinQuality {
		return Date{}, reject(p.Category, "quality", MsgMeatQuality)
	}

	expiry := p.Expiry
	switch {
	case !p.VacuumPacked && expiry.IsZero():
		expiry = p.Today.AddDays(p.MeatKind.ShelfDays().Fresh)
	case !p.VacuumPacked:
		days := p.Today.DaysUntil(expiry)
		if days < meatFreshMinDays || days > meatFreshMaxDays {
			return Date{}, reject(p.Category, "expiry_date", MsgMeatFreshExpiry)
		}
	case expiry.IsZero():
		return Date{}, reject(p.Category, "expiry_date", MsgMeatVacuumExpiry)
	}

	// The upper bound applies whether or not the meat is vacuum packed.
	days := p.Today.DaysUntil(expiry)
	if (p.VacuumPacked && days < meatVacuumMinDays) || days > meatVacuumMaxDays {
		return Date{}, reject(p.Category, "expiry_date", MsgMeatVacuumExpiry)
	}
	return expiry, nil
}
