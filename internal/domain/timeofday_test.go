package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClock(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"07:30", "07:30", false},
		{"7:05", "07:05", false},
		{"23:59", "23:59", false},
		{"24:00", "", true},
		{"12:60", "", true},
		{"1230", "", true},
		{"", "", true},
		{"ab:cd", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeClock(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeBucket(t *testing.T) {
	assert.Equal(t, BadgeMorning, TimeBucket("06:00"))
	assert.Equal(t, BadgeMorning, TimeBucket("11:59"))
	assert.Equal(t, BadgeNoon, TimeBucket("12:00"))
	assert.Equal(t, BadgeNoon, TimeBucket("16:59"))
	assert.Equal(t, BadgeEvening, TimeBucket("17:00"))
	assert.Equal(t, BadgeMorning, TimeBucket("garbage"))
}
