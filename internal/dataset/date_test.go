package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trafficpulse/pkg/contracts/domain"
)

func TestIsValidFolderName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"2023-10-21", true},
		{"2023-10-21_h", true},
		{"2023-10-21_l", true},
		{"2023-13-01", true}, // pattern only; calendar check is separate
		{"20230101", false},
		{"2023-10-21_x", false},
		{"2023-10-21_hl", false},
		{"2023-10-21 ", false},
		{"notes", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidFolderName(tt.name))
		})
	}
}

func TestParseFolderName(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		quality domain.Quality
		wantErr bool
	}{
		{"2023-10-21", "2023-10-21", domain.QualityUnspecified, false},
		{"2023-10-21_h", "2023-10-21", domain.QualityHigh, false},
		{"2023-10-21_l", "2023-10-21", domain.QualityLow, false},
		{"garbage", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseFolderName(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.date, parsed.DateStr)
			assert.Equal(t, tt.quality, parsed.Quality)
		})
	}
}

func TestInferDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"2024-06-01", "2024-06-01", true},
		{"2024-06-01_h", "2024-06-01", true},
		{"2024-06-01 10:00:00", "2024-06-01", true},
		{"2023-13-01", "", false}, // matches the prefix shape, not the calendar
		{"2023-02-29", "", false}, // not a leap year
		{"20240601", "", false},
		{"img001.jpg", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, ok := InferDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, d.Format("2006-01-02"))
			}
		})
	}
}

func TestYearInRange(t *testing.T) {
	d2021 := time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)
	d2024 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	assert.False(t, YearInRange(d2021, 2022, 2025))
	assert.True(t, YearInRange(d2024, 2022, 2025))
	assert.True(t, YearInRange(d2021, 2021, 2025))
}
