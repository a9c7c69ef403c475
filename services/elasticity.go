package services

import (
	"fmt"

	"howth-congestion/models"
	"howth-congestion/utils"
)

// Toll prices evaluated on every curve, in euro.
const (
	MinTollPrice = 0
	MaxTollPrice = 9
)

// AllRegions labels the curve over every respondent.
const AllRegions = "All"

// CalculateElasticity estimates retained demand at each toll price as the
// share of respondents whose maximum price is strictly above it, times
// baseDemand. priceData must not be empty; callers skip groups without
// positive price answers.
func CalculateElasticity(baseDemand float64, priceData models.PriceDistribution) ([]models.CurvePoint, error) {
	total := priceData.Sum()
	if total == 0 {
		return nil, models.ErrEmptyDistribution
	}

	points := make([]models.CurvePoint, 0, MaxTollPrice-MinTollPrice+1)
	for p := MinTollPrice; p <= MaxTollPrice; p++ {
		above := 0
		for _, level := range priceData {
			if level.Price > float64(p) {
				above += level.Count
			}
		}
		points = append(points, models.CurvePoint{
			Price:  p,
			Demand: baseDemand * float64(above) / float64(total),
		})
	}
	return points, nil
}

// ElasticityService builds the per-region demand curve family.
type ElasticityService struct {
	logger *utils.Logger
}

func NewElasticityService(logger *utils.Logger) *ElasticityService {
	return &ElasticityService{logger: logger}
}

// Curves returns one curve per region, in the given order, followed by the
// All curve. Zero and unanswered prices are excluded; a group left with no
// answers is skipped.
func (s *ElasticityService) Curves(t *models.SurveyTable, regions []string, baseDemand float64) ([]models.ElasticityCurve, error) {
	groups := make([]string, 0, len(regions)+1)
	groups = append(groups, regions...)
	groups = append(groups, AllRegions)

	var curves []models.ElasticityCurve
	for _, g := range groups {
		subset := t
		if g != AllRegions {
			subset = t.FilterRegion(g)
		}

		priceData := PositivePrices(subset)
		if priceData.Sum() == 0 {
			s.logger.Debug("[elasticity] No positive price answers for %s, skipping", g)
			continue
		}

		points, err := CalculateElasticity(baseDemand, priceData)
		if err != nil {
			return nil, fmt.Errorf("[elasticity] %s: %w", g, err)
		}
		curves = append(curves, models.ElasticityCurve{Label: g, Points: points})
	}

	s.logger.Info("[elasticity] Built %d demand curves from a baseline of %.0f vehicles", len(curves), baseDemand)
	return curves, nil
}

// PositivePrices counts answered prices above zero.
func PositivePrices(t *models.SurveyTable) models.PriceDistribution {
	counts := make(map[float64]int)
	for _, r := range t.Records {
		if r.PriceAnswered {
			counts[r.Price]++
		}
	}
	return PriceDistributionOf(counts).Positive()
}

// RegionNames returns the region values of a stats result in report order.
func RegionNames(res *models.StatsResult) []string {
	names := make([]string, 0, len(res.Region))
	for _, c := range res.Region {
		names = append(names, c.Value)
	}
	return names
}

// BaselineDemand is the total vehicle count of the reference window.
func BaselineDemand(s *models.TrafficCountSeries) float64 {
	if s == nil {
		return 0
	}
	return float64(s.TotalCount())
}
