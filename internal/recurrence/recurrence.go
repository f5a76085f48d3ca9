// Package recurrence projects recurring tasks onto calendar dates at read
// time. Rules are never materialized into event rows; every view recomputes
// from the stored recurrence fields.
package recurrence

import (
	"time"

	"tasktracker/internal/domain"
)

// DateLayout is the wire and map-key format for calendar dates.
const DateLayout = "2006-01-02"

// Clock supplies "today" so callers and tests can fix it.
type Clock interface {
	Today() time.Time
}

// SystemClock reads the wall clock, truncated to a UTC calendar day.
type SystemClock struct{}

func (SystemClock) Today() time.Time { return Day(time.Now().UTC()) }

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Expandable reports whether the type gets true per-day enumeration in
// calendar views. Only daily rules do. Weekly and monthly rules are accepted
// and count as active through their end date for single-date filters, but are
// never expanded on their actual cadence.
func Expandable(rt domain.RecurrenceType) bool { return rt == domain.RecurDaily }

// ActiveOn reports whether the task's recurrence rule, of any type, is still
// running as of date: a nil end date recurs indefinitely, otherwise the rule
// ends (inclusive) on its end date.
func ActiveOn(t domain.Task, date time.Time) bool {
	if !t.Recurring() {
		return false
	}
	if t.RecurringEndDate == nil {
		return true
	}
	return !Day(date).After(Day(*t.RecurringEndDate))
}

// OccursOn reports whether the task occupies the given date in a calendar
// view. Daily rules occur on every active day; weekly and monthly rules never
// occur here (see Expandable) and show up only through their due date.
func OccursOn(t domain.Task, date time.Time) bool {
	if !t.Recurring() || !Expandable(*t.RecurringType) {
		return false
	}
	return ActiveOn(t, date)
}

// ExpandRange buckets tasks by date across the inclusive window [start, end].
// A task lands in a bucket when its due date is that day or OccursOn passes.
// Bucket order follows the input order, which carries the store's sort; dates
// with no tasks get no bucket.
func ExpandRange(tasks []domain.Task, start, end time.Time) map[string][]domain.Task {
	buckets := make(map[string][]domain.Task)
	start, end = Day(start), Day(end)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		for _, t := range tasks {
			if dueOn(t, d) || OccursOn(t, d) {
				key := d.Format(DateLayout)
				buckets[key] = append(buckets[key], t)
			}
		}
	}
	return buckets
}

func dueOn(t domain.Task, date time.Time) bool {
	return t.DueDate != nil && Day(*t.DueDate).Equal(date)
}
