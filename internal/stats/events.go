// Package stats derives reading metrics from a book snapshot and its
// recorded progress events: completion, pace, streaks, and a consistency
// classification. Everything here is a pure function over the supplied
// slices; nothing touches the database or the wall clock. Missing values
// are represented as nil pointers, never as sentinel numbers.
package stats

import (
	"sort"
	"time"

	"github.com/virtualcode/readingvault/internal/entities"
)

// toDay truncates a timestamp to its calendar date at UTC midnight so
// dates can be compared and stepped by whole days.
func toDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DistinctReadDates returns the deduplicated calendar dates on which any
// of the given progress events were recorded, in no particular order.
func DistinctReadDates(events []entities.ReadingProgress) []time.Time {
	seen := make(map[time.Time]struct{}, len(events))
	dates := make([]time.Time, 0, len(events))
	for _, e := range events {
		day := toDay(e.Timestamp)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		dates = append(dates, day)
	}
	return dates
}

// sortedDays truncates the given dates to calendar days, deduplicates
// them, and returns them in ascending order.
func sortedDays(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := toDay(d)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// sortedByTimestamp returns a copy of events ordered by timestamp.
// Events arrive in no guaranteed order, so every delta computation
// must start from this.
func sortedByTimestamp(events []entities.ReadingProgress) []entities.ReadingProgress {
	sorted := make([]entities.ReadingProgress, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

// timedSessionTotals sums the minutes declared on progress events and the
// page deltas those same events account for. Each event's delta is taken
// against the immediately preceding event in the full timestamp-sorted
// sequence (which may itself lack a minutes value); only events that
// declare minutes contribute to either sum. Negative deltas mean the page
// number went backwards upstream and are skipped rather than propagated.
func timedSessionTotals(events []entities.ReadingProgress) (totalMinutes, totalPages int) {
	sorted := sortedByTimestamp(events)
	prevPage := 0
	for _, e := range sorted {
		delta := e.CurrentPage - prevPage
		prevPage = e.CurrentPage
		if e.MinutesRead == nil || delta < 0 {
			continue
		}
		totalMinutes += *e.MinutesRead
		totalPages += delta
	}
	return totalMinutes, totalPages
}
