package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Date is a calendar day without a time of day
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD value
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// DateOf returns the calendar day of t in t's location
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Compare returns -1, 0 or +1 when d is before, equal to or after o
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// FilterCriteria is the validated filter set of one export request. Nil
// fields impose no constraint.
type FilterCriteria struct {
	ClientSearch *string
	Month        *int
	Year         *int
	ProductName  *string
	MontoMin     *decimal.Decimal
	MontoMax     *decimal.Decimal
	FechaInicio  *Date
	FechaFin     *Date
	Status       *string
}

// IsEmpty reports whether no criterion is set
func (c FilterCriteria) IsEmpty() bool {
	return c.ClientSearch == nil && c.Month == nil && c.Year == nil &&
		c.ProductName == nil && c.MontoMin == nil && c.MontoMax == nil &&
		c.FechaInicio == nil && c.FechaFin == nil && c.Status == nil
}

// FieldErrors maps a request parameter to its validation messages
type FieldErrors map[string][]string

// Add appends a message for field
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// HasErrors reports whether any message was collected
func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}

// Error implements the error interface
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e[f], " "))
	}
	return "invalid filters: " + strings.Join(parts, "; ")
}
