package services

import (
	"bytes"

	"howth-congestion/models"
	"howth-congestion/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLoggerTo(&bytes.Buffer{}, utils.LevelDebug) }

// pairByKey looks up a correlation pair by key.
func pairByKey(res *models.CorrelationResult, key string) (models.Correlation, bool) {
	for _, c := range res.Pairs {
		if c.Key == key {
			return c, true
		}
	}
	return models.Correlation{}, false
}

// demandAt returns the curve's demand at price.
func demandAt(c models.ElasticityCurve, price int) (float64, bool) {
	for _, p := range c.Points {
		if p.Price == price {
			return p.Demand, true
		}
	}
	return 0, false
}

func sampleSurvey() *models.SurveyTable {
	return models.NewSurveyTable([]models.SurveyRecord{
		{
			Region: "Dublin", Frequency: "Daily",
			Modes:      models.EntryModes{Car: true},
			Reasons:    models.Reasons{Work: true},
			Congestion: 5, Support: "Yes", Price: 5, PriceAnswered: true,
		},
		{
			Region: "Dublin", Frequency: "Once a week",
			Modes:      models.EntryModes{Car: true, Bus: true},
			Reasons:    models.Reasons{Pleasure: true},
			Congestion: 4, Support: "No", Price: 0, PriceAnswered: true,
		},
		{
			Region: "Howth", Frequency: "Rarely or never",
			Modes:      models.EntryModes{Walk: true},
			Reasons:    models.Reasons{Other: true},
			Congestion: 2, Support: "Yes", Price: 3, PriceAnswered: true,
		},
		{
			Region: "Sutton", Frequency: "Daily",
			Modes:      models.EntryModes{Car: true},
			Reasons:    models.Reasons{Work: true, Kids: true},
			Congestion: 4, Support: "No",
		},
		{
			Region: "Howth", Frequency: "Once a month",
			Modes:      models.EntryModes{Bus: true, Train: true},
			Reasons:    models.Reasons{Pleasure: true},
			Congestion: 3, Support: "Yes", Price: 5, PriceAnswered: true,
		},
	})
}
