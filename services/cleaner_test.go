package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"howth-congestion/models"
	"howth-congestion/storage"
	"howth-congestion/utils"
)

func TestCleanerParsePrice(t *testing.T) {
	tests := []struct {
		raw      string
		want     float64
		answered bool
	}{
		{"5", 5, true},
		{"€7", 7, true},
		{"2.50", 2.5, true},
		{"2,50", 2.5, true},
		{"0", 0, true},
		{"", 0, false},
		{"  ", 0, false},
	}
	for _, tt := range tests {
		got, answered, err := parsePrice(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
		assert.Equal(t, tt.answered, answered, tt.raw)
	}

	for _, bad := range []string{"free", "-3"} {
		_, _, err := parsePrice(bad)
		assert.ErrorIs(t, err, models.ErrInvalidValue, bad)
	}
}

func TestCleanerParseRating(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"1", 1},
		{"5", 5},
		{"4.0", 4},
		{" 3 ", 3},
	}
	for _, tt := range tests {
		got, err := parseRating(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}

	for _, bad := range []string{"", "0", "6", "3.5", "high"} {
		_, err := parseRating(bad)
		assert.ErrorIs(t, err, models.ErrInvalidValue, bad)
	}
}

func TestCleanerParseFlag(t *testing.T) {
	for _, yes := range []string{"true", "TRUE", "Yes", "1"} {
		b, err := parseFlag(yes)
		require.NoError(t, err)
		assert.True(t, b, yes)
	}
	for _, no := range []string{"", "false", "No", "0"} {
		b, err := parseFlag(no)
		require.NoError(t, err)
		assert.False(t, b, no)
	}
	_, err := parseFlag("sometimes")
	assert.ErrorIs(t, err, models.ErrInvalidValue)
}

func TestCleanerClean(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawResponse{
		{Row: 1, Fields: map[string]string{
			storage.KeyTimestamp:  "2024-03-01 09:15:00",
			storage.KeyRegion:     "North  County",
			storage.KeyFrequency:  "Daily",
			storage.KeyCar:        "true",
			storage.KeyWalk:       "true",
			storage.KeyWork:       "true",
			storage.KeyCongestion: "5",
			storage.KeySupport:    "Yes",
			storage.KeyPrice:      "€4",
		}},
		{Row: 2, Fields: map[string]string{
			storage.KeyFrequency:  "Once a week",
			storage.KeyCongestion: "1",
		}},
	}

	table, err := c.Clean(raw)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	first := table.Records[0]
	assert.Equal(t, "North County", first.Region)
	assert.Equal(t, 2024, first.SubmittedAt.Year())
	assert.True(t, first.Modes.Car)
	assert.True(t, first.Modes.Walk)
	assert.True(t, first.CarPlus())
	assert.True(t, first.Reasons.Work)
	assert.Equal(t, 5, first.Congestion)
	assert.True(t, first.Supports())
	assert.Equal(t, 4.0, first.Price)
	assert.True(t, first.PriceAnswered)

	second := table.Records[1]
	assert.Equal(t, models.NoAnswer, second.Region)
	assert.Equal(t, models.NoAnswer, second.Support)
	assert.False(t, second.Supports())
	assert.False(t, second.PriceAnswered)
	assert.True(t, second.NoCar())
}

func TestCleanerLogsSubmissionWindow(t *testing.T) {
	var logs bytes.Buffer
	c := NewCleaner(utils.NewLoggerTo(&logs, utils.LevelDebug))
	raw := []*models.RawResponse{
		{Row: 1, Fields: map[string]string{storage.KeyTimestamp: "2024-03-02 10:00:00", storage.KeyCongestion: "3"}},
		{Row: 2, Fields: map[string]string{storage.KeyTimestamp: "2024-03-01 08:30:00", storage.KeyCongestion: "4"}},
		{Row: 3, Fields: map[string]string{storage.KeyTimestamp: "last tuesday", storage.KeyCongestion: "2"}},
		{Row: 4, Fields: map[string]string{storage.KeyCongestion: "1"}},
	}

	table, err := c.Clean(raw)
	require.NoError(t, err)
	assert.True(t, table.Records[2].SubmittedAt.IsZero())

	out := logs.String()
	assert.Contains(t, out, "Responses submitted between 2024-03-01T08:30:00Z and 2024-03-02T10:00:00Z")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "1 submission timestamps could not be parsed")
}

func TestParseTimestamp(t *testing.T) {
	ts, ok := parseTimestamp("01/03/2024 09:15:00")
	require.True(t, ok)
	assert.Equal(t, time.March, ts.Month())

	_, ok = parseTimestamp("yesterday")
	assert.False(t, ok)
}

func TestCleanerRejectsBadRow(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawResponse{
		{Row: 1, Fields: map[string]string{storage.KeyCongestion: "3"}},
		{Row: 2, Fields: map[string]string{storage.KeyCongestion: "9"}},
	}

	_, err := c.Clean(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidValue)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), storage.KeyCongestion)
}
