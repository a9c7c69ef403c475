package models

// Category is one value of a categorical answer and how many respondents
// gave it.
type Category struct {
	Value string
	Count int
}

// Distribution is an ordered value-count table.
type Distribution []Category

// Sum returns the total of all counts.
func (d Distribution) Sum() int {
	n := 0
	for _, c := range d {
		n += c.Count
	}
	return n
}

// PriceLevel is one stated maximum price and its respondent count.
type PriceLevel struct {
	Price float64
	Count int
}

// PriceDistribution is ordered ascending by Price.
type PriceDistribution []PriceLevel

// Sum returns the total of all counts.
func (d PriceDistribution) Sum() int {
	n := 0
	for _, p := range d {
		n += p.Count
	}
	return n
}

// Positive drops levels at or below zero.
func (d PriceDistribution) Positive() PriceDistribution {
	var out PriceDistribution
	for _, p := range d {
		if p.Price > 0 {
			out = append(out, p)
		}
	}
	return out
}

// Rate is the share of respondents with a yes/no answer set, in [0,1].
type Rate struct {
	Name  string
	Value float64
}

// StatsResult holds the aggregate survey statistics.
type StatsResult struct {
	Respondents int

	// CongestionRating is the mean 1-5 rating rounded to 2 decimals.
	CongestionRating float64

	Region    Distribution
	Frequency Distribution
	Support   Distribution

	EntryModes []Rate
	Reasons    []Rate

	// AvgPrice is the unrounded mean over answered prices.
	AvgPrice      float64
	PriceAnswered int
	Price         PriceDistribution
}

// Correlation is the Pearson coefficient for one variable pair. Skipped is
// set when too few observations remained to compute it; Coefficient is NaN
// when either series is constant.
type Correlation struct {
	Key         string
	Label       string
	Coefficient float64
	N           int
	Skipped     bool
}

// CorrelationResult keeps pairs in report order.
type CorrelationResult struct {
	Pairs []Correlation
}

// CurvePoint is the estimated retained vehicle demand at a price.
type CurvePoint struct {
	Price  int
	Demand float64
}

// ElasticityCurve is a demand curve for one group of respondents.
type ElasticityCurve struct {
	Label  string
	Points []CurvePoint
}
