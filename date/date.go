// Package date provides a day-granularity Date used for trade dates.
package date

import (
	"fmt"
	"strings"
	"time"
)

// brokerDateFormat is the format of dates in broker exports (month/day/year).
// It is permissive and allows single-digit month and day.
const brokerDateFormat = "1/2/2006"

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// DisplayFormat is the format used to print dates in reports.
const DisplayFormat = "02.01.2006"

// Date represents a date with day-level granularity.
//
// The zero Date is not a valid day: it stands for a missing or unparseable date.
type Date struct {
	y int
	m time.Month
	d int
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// IsZero reports whether d is the zero Date, i.e. no date at all.
func (d Date) IsZero() bool { return d == Date{} }

// Year returns current year.
func (d Date) Year() int { return d.y }

// String format the date in its standard format, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(DateFormat)
}

// Display formats the date the way reports show it (DD.MM.YYYY).
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(DisplayFormat)
}

// Parse parses an ISO-8601 date (2006-01-02).
func Parse(str string) (Date, error) {
	on, err := time.Parse(DateFormat, strings.TrimSpace(str))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, DateFormat, err)
	}
	return New(on.Date()), nil
}

// ParseBroker parses a date as found in broker exports: month/day/year, like "1/15/2023" or "01/15/2023".
func ParseBroker(str string) (Date, error) {
	on, err := time.Parse(brokerDateFormat, strings.TrimSpace(str))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, "MM/DD/YYYY", err)
	}
	return New(on.Date()), nil
}
