package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"howth-congestion/models"
)

func TestStatsCongestionRating(t *testing.T) {
	res := NewStatsService(newTestLogger()).Generate(sampleSurvey())
	assert.Equal(t, 5, res.Respondents)
	assert.Equal(t, 3.6, res.CongestionRating)
	assert.GreaterOrEqual(t, res.CongestionRating, 1.0)
	assert.LessOrEqual(t, res.CongestionRating, 5.0)
}

func TestStatsCongestionRatingRounds(t *testing.T) {
	table := models.NewSurveyTable([]models.SurveyRecord{
		{Congestion: 1}, {Congestion: 2}, {Congestion: 2},
	})
	res := NewStatsService(newTestLogger()).Generate(table)
	assert.Equal(t, 1.67, res.CongestionRating)
}

func TestStatsDistributions(t *testing.T) {
	res := NewStatsService(newTestLogger()).Generate(sampleSurvey())

	assert.Equal(t, models.Distribution{{Value: "Dublin", Count: 2}, {Value: "Howth", Count: 2}, {Value: "Sutton", Count: 1}}, res.Region)
	assert.Equal(t, models.Distribution{
		{Value: "Daily", Count: 2}, {Value: "Once a month", Count: 1}, {Value: "Once a week", Count: 1}, {Value: "Rarely or never", Count: 1},
	}, res.Frequency)
	assert.Equal(t, models.Distribution{{Value: "Yes", Count: 3}, {Value: "No", Count: 2}}, res.Support)

	for _, d := range []models.Distribution{res.Region, res.Frequency, res.Support} {
		assert.Equal(t, res.Respondents, d.Sum())
	}
}

func TestStatsRates(t *testing.T) {
	res := NewStatsService(newTestLogger()).Generate(sampleSurvey())

	want := map[string]float64{"car": 0.6, "bus": 0.4, "train": 0.2, "bike": 0, "walk": 0.2}
	require.Len(t, res.EntryModes, 5)
	for _, r := range res.EntryModes {
		assert.InDelta(t, want[r.Name], r.Value, 1e-9, r.Name)
	}
	assert.Equal(t, "car", res.EntryModes[0].Name)
	assert.Equal(t, "walk", res.EntryModes[4].Name)

	wantReasons := map[string]float64{"work": 0.4, "kids": 0.2, "pleasure": 0.4, "other": 0.2}
	require.Len(t, res.Reasons, 4)
	for _, r := range res.Reasons {
		assert.InDelta(t, wantReasons[r.Name], r.Value, 1e-9, r.Name)
	}
}

func TestStatsPriceLadder(t *testing.T) {
	res := NewStatsService(newTestLogger()).Generate(sampleSurvey())

	assert.Equal(t, 4, res.PriceAnswered)
	assert.Equal(t, 3.25, res.AvgPrice)
	assert.Equal(t, models.PriceDistribution{{Price: 0, Count: 1}, {Price: 3, Count: 1}, {Price: 5, Count: 2}}, res.Price)
	assert.Equal(t, models.PriceDistribution{{Price: 3, Count: 1}, {Price: 5, Count: 2}}, res.Price.Positive())
}

func TestStatsEmptyTable(t *testing.T) {
	res := NewStatsService(newTestLogger()).Generate(models.NewSurveyTable(nil))
	assert.Equal(t, 0, res.Respondents)
	assert.Empty(t, res.Region)
	assert.Zero(t, res.CongestionRating)
}

func TestStatsDoesNotMutateTable(t *testing.T) {
	table := sampleSurvey()
	before := make([]models.SurveyRecord, len(table.Records))
	copy(before, table.Records)

	NewStatsService(newTestLogger()).Generate(table)
	assert.Equal(t, before, table.Records)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 33.33, Percent(1, 3))
	assert.Equal(t, 66.67, Percent(2, 3))
	assert.Equal(t, 100.0, Percent(5, 5))
	assert.Equal(t, 0.0, Percent(1, 0))
}
