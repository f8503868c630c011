package loader

import (
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// parseDate validates a YYYY-MM-DD date and returns it normalized.
func parseDate(s string) (string, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return t.Format(dateLayout), true
}

func parseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseRating accepts integers in [1,5].
func parseRating(s string) (int64, bool) {
	n, ok := parseInt(s)
	if !ok || n < 1 || n > 5 {
		return 0, false
	}
	return n, true
}

// parsePrice parses a price string. Empty or unparsable input is not an
// error: the offer stores NULL and stock=false in that case.
func parsePrice(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseState normalizes the sale state and checks it against the NEW/USED
// enumeration.
func parseState(s string) (string, bool) {
	state := strings.ToUpper(strings.TrimSpace(s))
	if state != "NEW" && state != "USED" {
		return "", false
	}
	return state, true
}

// validGroup checks the product group enumeration.
func validGroup(s string) bool {
	return s == "Music" || s == "DVD" || s == "Book"
}
