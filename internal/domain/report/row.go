package report

import "time"

const (
	timestampLayout = "2006-01-02 15:04:05"
	dayLayout       = "2006-01-02"
)

// Row is the normalized, format-agnostic view of one sale. Serializers read
// every value from it and never go back to the record.
type Row struct {
	ID             int64
	Date           time.Time
	CustomerName   string
	CustomerEmail  string
	TotalAmount    Amount
	Status         string
	ProductSummary string
}

// Timestamp formats the date as YYYY-MM-DD HH:MM:SS
func (r Row) Timestamp() string {
	if r.Date.IsZero() {
		return NotAvailable
	}
	return r.Date.Format(timestampLayout)
}

// Day formats the date as YYYY-MM-DD
func (r Row) Day() string {
	if r.Date.IsZero() {
		return NotAvailable
	}
	return r.Date.Format(dayLayout)
}
