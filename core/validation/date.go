package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the normalized date format
const DateLayout = "02/01/2006"

// GB order only: d/m/yyyy. ISO (yyyy-mm-dd) and dashed forms do not match.
var datePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// Date checks a day/month/year answer and returns it padded as dd/mm/yyyy.
// The date must exist and must not be after today in now's location.
func Date(field, raw string, now time.Time) (string, *FieldError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", newFieldError(field, KindNotEntered, MsgNotEntered)
	}

	m := datePattern.FindStringSubmatch(raw)
	if m == nil {
		return "", newFieldError(field, KindDateFormat, MsgDateFormat)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", newFieldError(field, KindDateInvalid, MsgDateInvalid)
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
	// time.Date normalizes 29/02 in a non-leap year to 01/03
	if date.Day() != day || int(date.Month()) != month {
		return "", newFieldError(field, KindDateInvalid, MsgDateInvalid)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.After(today) {
		return "", newFieldError(field, KindDateFuture, MsgDateFuture)
	}

	return fmt.Sprintf("%02d/%02d/%04d", day, month, year), nil
}

// DateParts validates a date entered as separate day, month and year inputs
func DateParts(field, day, month, year string, now time.Time) (string, *FieldError) {
	day, month, year = strings.TrimSpace(day), strings.TrimSpace(month), strings.TrimSpace(year)
	if day == "" && month == "" && year == "" {
		return "", newFieldError(field, KindNotEntered, MsgNotEntered)
	}
	return Date(field, day+"/"+month+"/"+year, now)
}

// parseDate parses a normalized dd/mm/yyyy date
func parseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}
