package services

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"howth-congestion/models"
	"howth-congestion/utils"
)

// Variable names derived from each respondent.
const (
	VarNoCar      = "noCar"
	VarCarPlus    = "car+"
	VarSupport    = "support"
	VarFrequency  = "frequency"
	VarCongestion = "congestion"
	VarPrice      = "price"
)

// pairDef is one reported correlation. positivePrice restricts the pair to
// respondents who named a price above zero.
type pairDef struct {
	x, y          string
	label         string
	positivePrice bool
}

var correlationPairs = []pairDef{
	{VarNoCar, VarSupport, "No car - support", false},
	{VarNoCar, VarFrequency, "No car - frequency", false},
	{VarNoCar, VarCongestion, "No car - congestion", false},
	{VarCarPlus, VarSupport, "Car+ - support", false},
	{VarCarPlus, VarFrequency, "Car+ - frequency", false},
	{VarCarPlus, VarCongestion, "Car+ - congestion", false},
	{VarCongestion, VarSupport, "Congestion - support", false},
	{VarCongestion, VarPrice, "Congestion - price", true},
	{VarFrequency, VarCongestion, "Frequency - congestion", false},
	{VarFrequency, VarSupport, "Frequency - support", false},
}

// PairKey joins two variable names the way results are keyed.
func PairKey(x, y string) string {
	return x + "-" + y
}

// CorrelationService computes Pearson coefficients between derived survey
// variables.
type CorrelationService struct {
	logger *utils.Logger
}

func NewCorrelationService(logger *utils.Logger) *CorrelationService {
	return &CorrelationService{logger: logger}
}

// Variables derives the numeric series for every variable, one element per
// respondent. Booleans become 0/1.
func Variables(t *models.SurveyTable) (map[string][]float64, error) {
	n := t.Len()
	vars := map[string][]float64{
		VarNoCar:      make([]float64, n),
		VarCarPlus:    make([]float64, n),
		VarSupport:    make([]float64, n),
		VarFrequency:  make([]float64, n),
		VarCongestion: make([]float64, n),
		VarPrice:      make([]float64, n),
	}
	for i, r := range t.Records {
		freq, err := models.EncodeFrequency(r.Frequency)
		if err != nil {
			return nil, fmt.Errorf("respondent %d: %w", i+1, err)
		}
		vars[VarNoCar][i] = boolFloat(r.NoCar())
		vars[VarCarPlus][i] = boolFloat(r.CarPlus())
		vars[VarSupport][i] = boolFloat(r.Supports())
		vars[VarFrequency][i] = float64(freq)
		vars[VarCongestion][i] = float64(r.Congestion)
		vars[VarPrice][i] = r.Price
	}
	return vars, nil
}

// Calculate returns every configured pair in report order. A pair left
// with fewer than two observations is marked Skipped instead of computed.
// A constant series gives a NaN coefficient, which is kept as is.
func (s *CorrelationService) Calculate(t *models.SurveyTable) (*models.CorrelationResult, error) {
	vars, err := Variables(t)
	if err != nil {
		return nil, fmt.Errorf("[correlation] %w", err)
	}

	keep := positivePriceMask(t)
	res := &models.CorrelationResult{Pairs: make([]models.Correlation, 0, len(correlationPairs))}
	for _, p := range correlationPairs {
		x, y := vars[p.x], vars[p.y]
		if p.positivePrice {
			x, y = filter(x, keep), filter(y, keep)
		}

		c := models.Correlation{Key: PairKey(p.x, p.y), Label: p.label, N: len(x)}
		if len(x) < 2 {
			c.Skipped = true
			c.Coefficient = math.NaN()
			s.logger.Warn("[correlation] %s skipped: %d observations", c.Key, len(x))
		} else {
			c.Coefficient = Pearson(x, y)
			if math.IsNaN(c.Coefficient) {
				s.logger.Warn("[correlation] %s undefined: constant series", c.Key)
			}
		}
		res.Pairs = append(res.Pairs, c)
	}
	return res, nil
}

// Pearson returns the Pearson correlation of x and y, clipped to [-1,1].
// The result is NaN when either series is constant. x and y must have
// equal length.
func Pearson(x, y []float64) float64 {
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return r
	}
	return math.Max(-1, math.Min(1, r))
}

func positivePriceMask(t *models.SurveyTable) []bool {
	mask := make([]bool, t.Len())
	for i, r := range t.Records {
		mask[i] = r.PriceAnswered && r.Price > 0
	}
	return mask
}

func filter(xs []float64, keep []bool) []float64 {
	var out []float64
	for i, x := range xs {
		if keep[i] {
			out = append(out, x)
		}
	}
	return out
}
