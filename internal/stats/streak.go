package stats

import (
	"sort"
	"time"
)

// Streak describes runs of consecutive reading days. Current is the run
// ending at the latest supplied date; it is measured purely against the
// supplied data, with no notion of "today" — callers that care whether
// the trailing run is stale compare CurrentStart and the last date to
// their own as-of date.
type Streak struct {
	Current      int        `json:"current"`
	Longest      int        `json:"longest"`
	CurrentStart *time.Time `json:"current_start,omitempty"`
	LongestStart *time.Time `json:"longest_start,omitempty"`
}

// CalculateStreaks computes the current and longest streaks over a set of
// distinct calendar dates supplied in any order. A streak is a maximal run
// of dates each exactly one day after the previous. Ties for the longest
// run resolve to the earliest-occurring run.
func CalculateStreaks(dates []time.Time) Streak {
	if len(dates) == 0 {
		return Streak{}
	}

	days := make([]time.Time, len(dates))
	for i, d := range dates {
		days[i] = toDay(d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest := 1
	longestStart := days[0]
	runLength := 1
	runStart := days[0]

	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			runLength++
		} else {
			runLength = 1
			runStart = days[i]
		}
		if runLength > longest {
			longest = runLength
			longestStart = runStart
		}
	}

	// The loop leaves runLength/runStart describing the trailing run.
	currentStart := runStart
	return Streak{
		Current:      runLength,
		Longest:      longest,
		CurrentStart: &currentStart,
		LongestStart: &longestStart,
	}
}
