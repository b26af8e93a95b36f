package accounting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinancialYear(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-05-10", "2024-2025"},
		{"2025-02-01", "2024-2025"},
		{"2025-04-01", "2025-2026"},
		{"2025-03-31", "2024-2025"},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := ParseDate(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FinancialYear(d))
		})
	}
}

func TestInRange_InclusiveBounds(t *testing.T) {
	from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)

	assert.True(t, InRange(from, &from, &to))
	assert.True(t, InRange(time.Date(2024, 4, 30, 23, 59, 0, 0, time.UTC), &from, &to))
	assert.False(t, InRange(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), &from, &to))
	assert.False(t, InRange(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), &from, &to))
	assert.True(t, InRange(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), nil, nil))
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("10/05/2024")
	assert.Error(t, err)
}
