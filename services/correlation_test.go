package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"howth-congestion/models"
)

func TestPearson(t *testing.T) {
	assert.InDelta(t, 1.0, Pearson([]float64{1, 2, 3, 4}, []float64{2, 4, 6, 8}), 1e-12)
	assert.InDelta(t, -1.0, Pearson([]float64{1, 2, 3, 4}, []float64{8, 6, 4, 2}), 1e-12)
	assert.InDelta(t, 0.0, Pearson([]float64{1, 2, 3}, []float64{1, 0, 1}), 1e-12)
}

func TestPearsonConstantSeriesIsNaN(t *testing.T) {
	assert.True(t, math.IsNaN(Pearson([]float64{1, 1, 1}, []float64{1, 2, 3})))
}

func TestPearsonStaysInRange(t *testing.T) {
	levels := []float64{1, 2, 3, 4, 5}
	for n := 2; n < 200; n++ {
		x := make([]float64, n)
		y := make([]float64, n)
		for i := range x {
			x[i] = levels[(i*7+n)%len(levels)]
			y[i] = x[i]*1.1 + 0.3
		}
		r := Pearson(x, y)
		if math.IsNaN(r) {
			continue
		}
		assert.LessOrEqual(t, r, 1.0, "n=%d", n)
		assert.GreaterOrEqual(t, r, -1.0, "n=%d", n)
		assert.InDelta(t, 1.0, r, 1e-9, "n=%d", n)
	}
}

func TestFrequencyCongestionPerfectlyCorrelated(t *testing.T) {
	freq := []string{"Rarely or never", "Once a month", "Once a week", "A few times a week", "Every weekday"}
	var records []models.SurveyRecord
	for i := 0; i < 38; i++ {
		c := i%5 + 1
		records = append(records, models.SurveyRecord{
			Region: "Howth", Frequency: freq[c-1], Congestion: c, Support: "Yes",
		})
	}

	res, err := NewCorrelationService(newTestLogger()).Calculate(models.NewSurveyTable(records))
	require.NoError(t, err)
	c, ok := pairByKey(res, "frequency-congestion")
	require.True(t, ok)
	assert.LessOrEqual(t, c.Coefficient, 1.0)
	assert.InDelta(t, 1.0, c.Coefficient, 1e-12)
}

func TestVariables(t *testing.T) {
	vars, err := Variables(sampleSurvey())
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, 1, 0, 1}, vars[VarNoCar])
	assert.Equal(t, []float64{0, 1, 0, 0, 0}, vars[VarCarPlus])
	assert.Equal(t, []float64{1, 0, 1, 0, 1}, vars[VarSupport])
	assert.Equal(t, []float64{6, 3, 1, 6, 2}, vars[VarFrequency])
	assert.Equal(t, []float64{5, 4, 2, 4, 3}, vars[VarCongestion])
	assert.Equal(t, []float64{5, 0, 3, 0, 5}, vars[VarPrice])

	for i := range vars[VarCarPlus] {
		if vars[VarCarPlus][i] == 1 {
			assert.Equal(t, 0.0, vars[VarNoCar][i], "car+ implies car")
		}
	}
}

func TestCalculateCorrelations(t *testing.T) {
	res, err := NewCorrelationService(newTestLogger()).Calculate(sampleSurvey())
	require.NoError(t, err)
	require.Len(t, res.Pairs, 10)

	wantKeys := []string{
		"noCar-support", "noCar-frequency", "noCar-congestion",
		"car+-support", "car+-frequency", "car+-congestion",
		"congestion-support", "congestion-price",
		"frequency-congestion", "frequency-support",
	}
	for i, k := range wantKeys {
		assert.Equal(t, k, res.Pairs[i].Key)
	}

	for _, c := range res.Pairs {
		require.False(t, c.Skipped, c.Key)
		require.False(t, math.IsNaN(c.Coefficient), c.Key)
		assert.GreaterOrEqual(t, c.Coefficient, -1.0, c.Key)
		assert.LessOrEqual(t, c.Coefficient, 1.0, c.Key)
	}

	price, ok := pairByKey(res, "congestion-price")
	require.True(t, ok)
	assert.Equal(t, 3, price.N)
	full, _ := pairByKey(res, "noCar-support")
	assert.Equal(t, 5, full.N)
}

func TestCongestionPriceUsesPositivePricesOnly(t *testing.T) {
	table := models.NewSurveyTable([]models.SurveyRecord{
		{Frequency: "Daily", Congestion: 1, Price: 2, PriceAnswered: true},
		{Frequency: "Daily", Congestion: 2, Price: 4, PriceAnswered: true},
		{Frequency: "Daily", Congestion: 3, Price: 6, PriceAnswered: true},
		{Frequency: "Daily", Congestion: 5, Price: 0, PriceAnswered: true},
		{Frequency: "Daily", Congestion: 4},
	})

	res, err := NewCorrelationService(newTestLogger()).Calculate(table)
	require.NoError(t, err)

	c, ok := pairByKey(res, PairKey(VarCongestion, VarPrice))
	require.True(t, ok)
	assert.Equal(t, 3, c.N)
	assert.InDelta(t, 1.0, c.Coefficient, 1e-12)
}

func TestCongestionPriceSkippedWhenNoPrices(t *testing.T) {
	table := models.NewSurveyTable([]models.SurveyRecord{
		{Frequency: "Daily", Congestion: 1, Price: 0, PriceAnswered: true},
		{Frequency: "Once a week", Congestion: 4, Price: 0, PriceAnswered: true},
	})

	res, err := NewCorrelationService(newTestLogger()).Calculate(table)
	require.NoError(t, err)

	c, _ := pairByKey(res, "congestion-price")
	assert.True(t, c.Skipped)
	assert.Equal(t, 0, c.N)
	assert.True(t, math.IsNaN(c.Coefficient))
}

func TestCalculateUnknownFrequency(t *testing.T) {
	table := models.NewSurveyTable([]models.SurveyRecord{
		{Frequency: "Daily", Congestion: 1},
		{Frequency: "Weekends", Congestion: 2},
	})

	_, err := NewCorrelationService(newTestLogger()).Calculate(table)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUnknownCategory)
	assert.Contains(t, err.Error(), "Weekends")
}
