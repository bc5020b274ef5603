package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		scale    float64
		want     string
	}{
		{name: "aum in billions", value: 2_500_000_000, decimals: 2, scale: OneBillion, want: "2.50"},
		{name: "thousands separator", value: 1_234_567_890_000_000, decimals: 2, scale: OneBillion, want: "1,234,567.89"},
		{name: "unscaled", value: 1234.5, decimals: 0, scale: One, want: "1,235"},
		{name: "zero scale is one", value: 12.345, decimals: 1, scale: 0, want: "12.3"},
		{name: "negative zero", value: -0.0001, decimals: 2, scale: One, want: "0.00"},
		{name: "zero", value: 0, decimals: 2, scale: OneBillion, want: "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Number(tt.value, tt.decimals, tt.scale))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "43.21", Percent(0.4321))
	assert.Equal(t, "100.00", Percent(1))
	assert.Equal(t, "0.00", Percent(0))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "18,248", Count(18248))
	assert.Equal(t, "7", Count(7))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "05/03/2020", Date(time.Date(2020, 3, 5, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, Placeholder, Date(time.Time{}))
}

func TestAge(t *testing.T) {
	now := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "3 days ago", Age(now.AddDate(0, 0, -3), now))
	assert.Equal(t, Placeholder, Age(time.Time{}, now))
}
