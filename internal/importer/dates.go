package importer

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"

	"github.com/talkincode/supermarkt/internal/goods"
)

// Layouts tried before falling back to dateparse. dd-mm-yyyy must be checked
// explicitly because dateparse reads dashed numeric dates month first.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
}

// dayMonthSlash matches numeric slash dates such as 01/02/2026, which are
// day first in some sources and month first in others.
var dayMonthSlash = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`)

// ErrAmbiguousDate is returned for numeric slash dates without a leading year.
var ErrAmbiguousDate = errors.New("ambiguous date, use yyyy-mm-dd or dd-mm-yyyy")

// ParseDate reads a day-precision date. Empty strings, "none" and "null"
// mean no date and return the zero Date.
func ParseDate(s string) (goods.Date, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "none", "null":
		return goods.Date{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return goods.DateOf(t), nil
		}
	}
	if dayMonthSlash.MatchString(s) {
		return goods.Date{}, errors.Wrapf(ErrAmbiguousDate, "invalid date %q", s)
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return goods.Date{}, errors.Wrapf(err, "invalid date %q", s)
	}
	return goods.DateOf(t), nil
}

// dateValue converts a value read from a database driver.
func dateValue(v interface{}) (goods.Date, error) {
	switch t := v.(type) {
	case nil:
		return goods.Date{}, nil
	case time.Time:
		return goods.DateOf(t), nil
	case *time.Time:
		if t == nil {
			return goods.Date{}, nil
		}
		return goods.DateOf(*t), nil
	case string:
		return ParseDate(t)
	case []byte:
		return ParseDate(string(t))
	default:
		return goods.Date{}, errors.Errorf("unsupported date value %T", v)
	}
}
