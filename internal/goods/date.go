package goods

import "time"

const (
	isoLayout     = "2006-01-02"
	secondsPerDay = 24 * 60 * 60
)

// Date is a calendar day without time-of-day. The zero value is "no date".
type Date struct {
	t time.Time
}

// NewDate returns the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Today returns the current local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// AddDays returns d moved n days forward (or back when n is negative).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysUntil returns the signed number of days from d to other. It counts
// Unix seconds since a time.Duration saturates past 292 years.
func (d Date) DaysUntil(other Date) int {
	return int((other.t.Unix() - d.t.Unix()) / secondsPerDay)
}

func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return d.t
}

// String renders d as yyyy-mm-dd, or "none" for the zero value.
func (d Date) String() string {
	if d.IsZero() {
		return "none"
	}
	return d.t.Format(isoLayout)
}

// Format renders d with a time layout.
func (d Date) Format(layout string) string {
	return d.t.Format(layout)
}
