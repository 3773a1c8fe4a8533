package stats

import (
	"math"

	"github.com/virtualcode/readingvault/internal/entities"
)

// ReadingPace is the throughput view of a book's progress history: pages
// per hour and a projected completion horizon.
type ReadingPace struct {
	PagesPerHour            *float64    `json:"pages_per_hour,omitempty"`
	EstimatedDaysToComplete *int        `json:"estimated_days_to_complete,omitempty"`
	ReadingConsistency      Consistency `json:"reading_consistency"`
}

// readingHoursPerDay is the assumed daily reading-session budget used to
// turn remaining hours into a day count.
const readingHoursPerDay = 2

// CalculateReadingPace derives throughput and a completion horizon from a
// book's progress events. Only events that declare minutes contribute to
// the throughput; the horizon needs both a measurable pace and a known
// total page count. If the current page exceeds the total, the projection
// goes negative and is passed through as-is rather than clamped.
func CalculateReadingPace(book *entities.Book, events []entities.ReadingProgress) ReadingPace {
	if len(events) == 0 {
		return ReadingPace{ReadingConsistency: ConsistencyPoor}
	}

	result := ReadingPace{
		ReadingConsistency: ClassifyConsistency(DistinctReadDates(events)),
	}

	totalMinutes, pagesRead := timedSessionTotals(events)
	if totalMinutes > 0 {
		pph := float64(pagesRead) / float64(totalMinutes) * 60
		result.PagesPerHour = &pph

		if book.TotalPages != nil && pph != 0 {
			remaining := *book.TotalPages - book.CurrentPage
			estimatedHours := float64(remaining) / pph
			days := int(math.Floor(estimatedHours / readingHoursPerDay))
			result.EstimatedDaysToComplete = &days
		}
	}

	return result
}
