package services

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"howth-congestion/models"
	"howth-congestion/utils"
)

// StatsService derives summary statistics from a survey table.
type StatsService struct {
	logger *utils.Logger
}

func NewStatsService(logger *utils.Logger) *StatsService {
	return &StatsService{logger: logger}
}

// Generate computes the StatsResult for t. t is not modified.
func (s *StatsService) Generate(t *models.SurveyTable) *models.StatsResult {
	res := &models.StatsResult{Respondents: t.Len()}
	if res.Respondents == 0 {
		s.logger.Warn("[stats] Survey table is empty")
		return res
	}

	var (
		ratings   = make([]float64, 0, res.Respondents)
		regions   = make(map[string]int)
		frequency = make(map[string]int)
		support   = make(map[string]int)
		prices    []float64
		priceSeen = make(map[float64]int)
	)
	for _, r := range t.Records {
		ratings = append(ratings, float64(r.Congestion))
		regions[r.Region]++
		frequency[r.Frequency]++
		support[r.Support]++
		if r.PriceAnswered {
			prices = append(prices, r.Price)
			priceSeen[r.Price]++
		}
	}

	res.CongestionRating = round2(stat.Mean(ratings, nil))
	res.Region = byCount(regions)
	res.Frequency = byCount(frequency)
	res.Support = byCount(support)

	res.EntryModes = rates(t, []namedFlag{
		{"car", func(r models.SurveyRecord) bool { return r.Modes.Car }},
		{"bus", func(r models.SurveyRecord) bool { return r.Modes.Bus }},
		{"train", func(r models.SurveyRecord) bool { return r.Modes.Train }},
		{"bike", func(r models.SurveyRecord) bool { return r.Modes.Bike }},
		{"walk", func(r models.SurveyRecord) bool { return r.Modes.Walk }},
	})
	res.Reasons = rates(t, []namedFlag{
		{"work", func(r models.SurveyRecord) bool { return r.Reasons.Work }},
		{"kids", func(r models.SurveyRecord) bool { return r.Reasons.Kids }},
		{"pleasure", func(r models.SurveyRecord) bool { return r.Reasons.Pleasure }},
		{"other", func(r models.SurveyRecord) bool { return r.Reasons.Other }},
	})

	res.PriceAnswered = len(prices)
	if len(prices) > 0 {
		res.AvgPrice = stat.Mean(prices, nil)
	}
	res.Price = PriceDistributionOf(priceSeen)

	s.logger.Debug("[stats] %d respondents, %d regions, %d price answers",
		res.Respondents, len(res.Region), res.PriceAnswered)
	return res
}

// PriceDistributionOf turns price counts into a ladder sorted by price.
func PriceDistributionOf(counts map[float64]int) models.PriceDistribution {
	out := make(models.PriceDistribution, 0, len(counts))
	for p, n := range counts {
		out = append(out, models.PriceLevel{Price: p, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out
}

type namedFlag struct {
	name string
	get  func(models.SurveyRecord) bool
}

// rates returns, per flag, the mean of its 0/1 series.
func rates(t *models.SurveyTable, flags []namedFlag) []models.Rate {
	out := make([]models.Rate, 0, len(flags))
	for _, f := range flags {
		xs := make([]float64, len(t.Records))
		for i, r := range t.Records {
			xs[i] = boolFloat(f.get(r))
		}
		out = append(out, models.Rate{Name: f.name, Value: stat.Mean(xs, nil)})
	}
	return out
}

// byCount orders categories by descending count, ties by value.
func byCount(counts map[string]int) models.Distribution {
	out := make(models.Distribution, 0, len(counts))
	for v, n := range counts {
		out = append(out, models.Category{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// Percent is count as a share of total, in percent, rounded to 2 decimals.
func Percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(count) / float64(total) * 100)
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
