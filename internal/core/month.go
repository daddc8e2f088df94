package core

import "time"

const (
	monthBucketLayout = "2006-01"
	monthLabelLayout  = "January 2006"
)

// MonthBucket returns the YYYY-MM bucket of t.
func MonthBucket(t time.Time) string {
	return t.Format(monthBucketLayout)
}

// PreviousMonth returns the first day of the calendar month before t.
// Day overflow never applies: March 31 yields February 1, not March 3.
func PreviousMonth(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, -1, 0)
}

// MonthLabel renders a human readable month, e.g. "January 2024".
func MonthLabel(t time.Time) string {
	return t.Format(monthLabelLayout)
}
