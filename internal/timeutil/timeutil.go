// Package timeutil formats timestamps for output.
package timeutil

import (
	"fmt"
	"time"
)

// Ptr formats t as RFC3339Nano in UTC and returns a pointer to
// the string, or nil when t is the zero time.
func Ptr(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339Nano)
	return &s
}

// Format formats t as RFC3339Nano in UTC, or "" when t is the
// zero time.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// Relative renders how long before now t was, in the coarsest
// unit that still reads naturally: seconds, then minutes, hours,
// days, weeks up to four, calendar-ish months up to eleven, then
// years. Future timestamps clamp to "0s ago".
func Relative(t, now time.Time) string {
	seconds := int(now.Sub(t).Seconds())
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return fmt.Sprintf("%ds ago", seconds)
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%dd ago", days)
	}
	if weeks := days / 7; weeks < 5 {
		return fmt.Sprintf("%dw ago", weeks)
	}
	if months := days / 30; months < 12 {
		return fmt.Sprintf("%dmo ago", months)
	}
	return fmt.Sprintf("%dy ago", days/365)
}
