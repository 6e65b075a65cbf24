// Package importer turns CSV files and SQL tables into shelf products.
// Rows that fail to parse or are rejected by the product rules are reported
// individually; the remaining rows still import.
package importer

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/multierr"

	"github.com/talkincode/supermarkt/internal/goods"
)

// Options control how rows become products.
type Options struct {
	// Today is the creation day of every imported product; zero means the
	// current local day.
	Today goods.Date
	// NewID assigns an id to rows that have none. Must be safe for
	// concurrent use. Rows without id are rejected when nil.
	NewID func() string
}

// RowError describes one rejected row. Line is 1-based and counts the CSV
// header; for SQL imports it is the row position.
type RowError struct {
	Source string
	Line   int
	Type   string
	ID     string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: failed to create product of type %s (id %q): %v", e.Source, e.Line, e.Type, e.ID, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Result is the outcome of one import.
type Result struct {
	Products []*goods.Product
	Rejected []*RowError
}

// Err combines all row errors, or returns nil when every row imported.
func (r *Result) Err() error {
	var err error
	for _, re := range r.Rejected {
		err = multierr.Append(err, re)
	}
	return err
}

func (r *Result) merge(other *Result) {
	r.Products = append(r.Products, other.Products...)
	r.Rejected = append(r.Rejected, other.Rejected...)
}

// fields are the typed construction arguments shared by every source.
type fields struct {
	typ          string
	id           string
	name         string
	quality      float64
	expiry       goods.Date
	basePrice    float64
	meatKind     goods.MeatKind
	vacuumPacked bool
}

func (o Options) construct(f fields) (*goods.Product, error) {
	if f.id == "" {
		if o.NewID == nil {
			return nil, errors.New("missing product id")
		}
		f.id = o.NewID()
	}
	return goods.New(goods.Params{
		Category:     goods.ParseCategory(f.typ),
		ID:           f.id,
		Name:         f.name,
		Quality:      f.quality,
		Expiry:       f.expiry,
		BasePrice:    f.basePrice,
		MeatKind:     f.meatKind,
		VacuumPacked: f.vacuumPacked,
		Today:        o.Today,
	})
}

// meatFields parses the meat columns when the row is meat.
func meatFields(typ, kind string, vacuum interface{}) (goods.MeatKind, bool, error) {
	if goods.ParseCategory(typ) != goods.CategoryMeat {
		return "", false, nil
	}
	k, err := goods.ParseMeatKind(kind)
	if err != nil {
		return "", false, err
	}
	return k, vacuumFlag(vacuum), nil
}

// vacuumFlag is true only for a boolean true or the text "true" in any case.
// Anything else, including "yes" and "1" in text columns, reads as false.
func vacuumFlag(v interface{}) bool {
	switch t := v.(type) {
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true")
	case []byte:
		return strings.EqualFold(strings.TrimSpace(string(t)), "true")
	}
	return cast.ToBool(v)
}
