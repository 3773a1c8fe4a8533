package stats

import (
	"math"

	"github.com/virtualcode/readingvault/internal/entities"
)

// ReadingStats summarizes how far along a book is and how fast it is
// being read, derived from its progress history.
type ReadingStats struct {
	PercentageComplete      float64  `json:"percentage_complete"`
	AverageMinutesPerPage   *float64 `json:"average_minutes_per_page,omitempty"`
	EstimatedTimeToComplete *int     `json:"estimated_time_to_complete,omitempty"`
	DaysReading             int      `json:"days_reading"`
	CurrentStreak           int      `json:"current_streak"`
}

// CalculateReadingStats derives completion and pacing metrics for a book
// from its progress events. A book without a known total page count has no
// denominator for percentage or projections, so the whole computation
// short-circuits to the degenerate zero result. PercentageComplete is not
// clamped: a current page pushed past the total upstream yields >100.
func CalculateReadingStats(book *entities.Book, events []entities.ReadingProgress) ReadingStats {
	if book.TotalPages == nil {
		return ReadingStats{}
	}
	totalPages := *book.TotalPages

	result := ReadingStats{
		PercentageComplete: float64(book.CurrentPage) / float64(totalPages) * 100,
	}

	totalMinutes, pagesRead := timedSessionTotals(events)
	if pagesRead > 0 && totalMinutes > 0 {
		avg := float64(totalMinutes) / float64(pagesRead)
		result.AverageMinutesPerPage = &avg

		estimated := int(math.Round(float64(totalPages-book.CurrentPage) * avg))
		result.EstimatedTimeToComplete = &estimated
	}

	dates := DistinctReadDates(events)
	result.DaysReading = len(dates)
	result.CurrentStreak = CalculateStreaks(dates).Current

	return result
}
