package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyConsistency_InsufficientData(t *testing.T) {
	assert.Equal(t, ConsistencyPoor, ClassifyConsistency(nil))
	assert.Equal(t, ConsistencyPoor, ClassifyConsistency([]time.Time{day(2024, time.March, 1)}))
}

func TestClassifyConsistency_DailyReadingIsExcellent(t *testing.T) {
	// Gaps of exactly one day: mean 1.0, stddev 0.
	dates := []time.Time{
		day(2024, time.March, 1),
		day(2024, time.March, 2),
		day(2024, time.March, 3),
		day(2024, time.March, 4),
	}
	assert.Equal(t, ConsistencyExcellent, ClassifyConsistency(dates))
}

func TestClassifyConsistency_FourDayGapIsIrregular(t *testing.T) {
	// Mean gap of exactly 4.0 sits on the IRREGULAR boundary, not POOR.
	dates := []time.Time{
		day(2024, time.March, 1),
		day(2024, time.March, 5),
	}
	assert.Equal(t, ConsistencyIrregular, ClassifyConsistency(dates))
}

func TestClassifyConsistency_Bands(t *testing.T) {
	tests := []struct {
		name     string
		dates    []time.Time
		expected Consistency
	}{
		{
			// Gaps 1, 2: mean 1.5, stddev 0.5.
			name: "excellent boundary",
			dates: []time.Time{
				day(2024, time.March, 1),
				day(2024, time.March, 2),
				day(2024, time.March, 4),
			},
			expected: ConsistencyExcellent,
		},
		{
			// Gaps 1, 4: mean 2.5, stddev 1.5.
			name: "good",
			dates: []time.Time{
				day(2024, time.March, 1),
				day(2024, time.March, 2),
				day(2024, time.March, 6),
			},
			expected: ConsistencyGood,
		},
		{
			// Gaps 3, 3: mean 3.0, stddev 0.
			name: "irregular",
			dates: []time.Time{
				day(2024, time.March, 1),
				day(2024, time.March, 4),
				day(2024, time.March, 7),
			},
			expected: ConsistencyIrregular,
		},
		{
			// Gaps 1, 9: mean 5.0 exceeds every band.
			name: "poor on mean",
			dates: []time.Time{
				day(2024, time.March, 1),
				day(2024, time.March, 2),
				day(2024, time.March, 11),
			},
			expected: ConsistencyPoor,
		},
		{
			// Gaps 1, 1, 8: mean ~3.33 within IRREGULAR, stddev ~3.3 above it.
			name: "poor on dispersion",
			dates: []time.Time{
				day(2024, time.March, 1),
				day(2024, time.March, 2),
				day(2024, time.March, 3),
				day(2024, time.March, 11),
			},
			expected: ConsistencyPoor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyConsistency(tt.dates))
		})
	}
}

func TestClassifyConsistency_UnorderedInput(t *testing.T) {
	dates := []time.Time{
		day(2024, time.March, 3),
		day(2024, time.March, 1),
		day(2024, time.March, 2),
	}
	assert.Equal(t, ConsistencyExcellent, ClassifyConsistency(dates))
}
