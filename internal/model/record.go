package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Delimiter separates fields inside a record line. Field values containing
// the delimiter are not escaped; the presentation layer keeps them out.
const Delimiter = "|"

// DateLayout is the day/month/year format used for all persisted dates.
const DateLayout = "02/01/2006"

// SkippedLine describes a line that could not be parsed during a file load.
// Malformed lines are skipped, never fatal.
type SkippedLine struct {
	Number int    `json:"number"`
	Line   string `json:"line"`
	Reason string `json:"reason"`
}

func splitRecord(line string, minFields int) ([]string, error) {
	fields := strings.Split(line, Delimiter)
	if len(fields) < minFields {
		return nil, fmt.Errorf("expected at least %d fields, got %d", minFields, len(fields))
	}
	return fields, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}
