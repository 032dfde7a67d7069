package shared

import (
	"time"
)

// DocDateLayout is the wire format for document dates (DD-MM-YYYY)
const DocDateLayout = "02-01-2006"

// ParseDocDate parses a document date in DD-MM-YYYY format.
// Returns INVALID_FORMAT for anything else, including empty input.
func ParseDocDate(value string) (time.Time, error) {
	t, err := time.Parse(DocDateLayout, value)
	if err != nil {
		return time.Time{}, NewDomainErrorf("INVALID_FORMAT", "Invalid date format %q. Use DD-MM-YYYY.", value)
	}
	return t, nil
}

// FormatDocDate renders a stored date back to the DD-MM-YYYY wire format
func FormatDocDate(t time.Time) string {
	return t.Format(DocDateLayout)
}
