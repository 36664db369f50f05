package model

import "time"

// Sale is an immutable entry of the sales log. ProductName and Total are
// snapshots taken when the sale was recorded; later product edits do not
// change them.
type Sale struct {
	ID          string  `json:"id"`
	Timestamp   string  `json:"timestamp"` // RFC 3339 / ISO-8601, UTC
	ProductCode string  `json:"productCode"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
}

// TimestampFormat is the layout used for Sale.Timestamp.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in the sale log layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// Time parses Timestamp back. It returns the zero time when malformed.
func (s Sale) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, s.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}
