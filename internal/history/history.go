// Package history aggregates, orders, and paginates a user's stored time
// entries for display.
package history

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sharewarp/timetrack/internal/store"
)

// RecordMinutes extracts one record's duration in minutes. The store may
// hand back a number, a numeric string, or nothing at all; anything that
// does not parse contributes 0 so a single malformed record can never
// break an aggregate.
func RecordMinutes(r store.Record) float64 {
	switch v := r.Fields.Duration.(type) {
	case float64:
		return v
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return 0
}

// TotalMinutes sums durations across records. Order-independent; an empty
// input yields 0.
func TotalMinutes(records []store.Record) float64 {
	var total float64
	for _, r := range records {
		total += RecordMinutes(r)
	}
	return total
}

// StartInstant returns a record's start time for ordering. A missing or
// unparseable Start_Time sorts as the epoch, i.e. last in a newest-first
// ordering.
func StartInstant(r store.Record) time.Time {
	if t, err := time.Parse(time.RFC3339, r.Fields.StartTime); err == nil {
		return t
	}
	return time.Unix(0, 0).UTC()
}

// SortNewestFirst orders records by start instant descending, in place.
// The sort is stable so repeated calls on the same input always produce
// the same order.
func SortNewestFirst(records []store.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return StartInstant(records[i]).After(StartInstant(records[j]))
	})
}
