package model

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date as the backend serializes it ("2006-01-02").
// A zero Date marshals to null and an empty or null value unmarshals to the
// zero Date, so optional fields like a goal deadline round-trip cleanly.
type Date struct {
	time.Time
}

// NewDate builds a Date from a point in time, dropping the time of day.
func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	return NewDate(time.Now())
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		// A malformed date must never break rendering of the rest of the
		// record, treat it as absent.
		*d = Date{}
		return nil
	}
	*d = Date{Time: t}
	return nil
}

// String returns the wire form of the date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// Short returns the date in the compact display form used on chart axes and
// transaction rows ("Jan 2").
func (d Date) Short() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("Jan 2")
}

// Long returns the full display form ("Jan 2, 2006").
func (d Date) Long() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("Jan 2, 2006")
}
