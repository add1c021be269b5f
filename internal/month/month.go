// Package month provides calendar arithmetic over "YYYY-MM" month keys.
//
// Month keys are the canonical time unit for the planner. Zero-padded months
// and four-digit years make lexicographic comparison equivalent to calendar
// order, and several callers rely on that.
package month

import (
	"fmt"
	"time"
)

const keyLayout = "2006-01"

// Key formats a date as a "YYYY-MM" month key.
func Key(t time.Time) string {
	return t.Format(keyLayout)
}

// Label formats a date as a short human label, e.g. "Jan 2026".
func Label(t time.Time) string {
	return t.Format("Jan 2006")
}

// Parse returns the first-of-month date for a month key, in local time.
func Parse(key string) (time.Time, error) {
	t, err := time.ParseInLocation(keyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing month key %q: %w", key, err)
	}
	return t, nil
}

// LabelKey formats a month key as a short human label.
// Returns the key unchanged if it does not parse.
func LabelKey(key string) string {
	t, err := Parse(key)
	if err != nil {
		return key
	}
	return Label(t)
}

// Add returns the date shifted by n months. n may be negative.
func Add(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// Range returns n consecutive month keys starting at start, forward-ordered.
func Range(start time.Time, n int) []string {
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, Key(Add(start, i)))
	}
	return keys
}

// Before returns the n month keys strictly before start, forward-ordered
// (the last element is the month immediately preceding start).
func Before(start time.Time, n int) []string {
	keys := make([]string, 0, n)
	for i := n; i > 0; i-- {
		keys = append(keys, Key(Add(start, -i)))
	}
	return keys
}

// CurrentStart returns the first day of the current month in local time.
func CurrentStart() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
}

// Index returns the offset in months of key relative to from, where from is
// a first-of-month date. Months before from yield negative indexes.
func Index(key string, from time.Time) (int, error) {
	t, err := Parse(key)
	if err != nil {
		return 0, err
	}
	return (t.Year()-from.Year())*12 + int(t.Month()) - int(from.Month()), nil
}
