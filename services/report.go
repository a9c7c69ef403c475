package services

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"howth-congestion/models"
)

const (
	ansiTitle = "\033[91m"
	ansiLabel = "\033[92m"
	ansiValue = "\033[94m"
	ansiReset = "\033[0m"
)

var separator = strings.Repeat("-", 20)

// Metric is one labelled report line. Value is evaluated when the report
// is written.
type Metric struct {
	Label string
	Value func() string
}

// Section is a titled block of metrics.
type Section struct {
	Title   string
	Metrics []Metric
}

// Reporter writes sections as plain or ANSI-coloured text.
type Reporter struct {
	color bool
}

func NewReporter(color bool) *Reporter {
	return &Reporter{color: color}
}

// Write renders sections in order: title, dashes, "Label: value" lines,
// dashes.
func (r *Reporter) Write(w io.Writer, sections ...Section) error {
	for _, s := range sections {
		if _, err := fmt.Fprintf(w, "%s\n%s\n", r.paint(ansiTitle, s.Title), separator); err != nil {
			return err
		}
		for _, m := range s.Metrics {
			if _, err := fmt.Fprintf(w, "%s: %s\n", r.paint(ansiLabel, m.Label), r.paint(ansiValue, m.Value())); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, separator); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reporter) paint(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + ansiReset
}

// StatsSection lays out the survey statistics.
func StatsSection(res *models.StatsResult) Section {
	total := res.Respondents
	return Section{
		Title: "SURVEY STATS",
		Metrics: []Metric{
			{"Congestion rating", func() string { return formatFloat(res.CongestionRating) }},
			{"Region", func() string { return formatDistribution(res.Region, total) }},
			{"Frequency", func() string { return formatDistribution(res.Frequency, total) }},
			{"Entry modes", func() string { return formatRates(res.EntryModes) }},
			{"Reason", func() string { return formatRates(res.Reasons) }},
			{"Support", func() string { return formatDistribution(res.Support, total) }},
			{"Avg Price", func() string { return formatFloat(round2(res.AvgPrice)) }},
			{"Price distribution", func() string { return formatPrices(res.Price, total) }},
		},
	}
}

// CorrelationSection lists every pair, rounded to 2 decimals.
func CorrelationSection(res *models.CorrelationResult) Section {
	s := Section{Title: "CORRELATIONS"}
	for _, c := range res.Pairs {
		c := c
		s.Metrics = append(s.Metrics, Metric{c.Label, func() string {
			if c.Skipped {
				return fmt.Sprintf("skipped (n=%d)", c.N)
			}
			return formatFloat(round2(c.Coefficient))
		}})
	}
	return s
}

// ElasticitySection lists "price (demand)" pairs per curve.
func ElasticitySection(curves []models.ElasticityCurve, baseDemand float64) Section {
	s := Section{Title: "PRICE ELASTICITY"}
	s.Metrics = append(s.Metrics, Metric{"Baseline demand", func() string { return formatFloat(baseDemand) }})
	for _, c := range curves {
		c := c
		s.Metrics = append(s.Metrics, Metric{c.Label, func() string {
			parts := make([]string, len(c.Points))
			for i, p := range c.Points {
				parts[i] = fmt.Sprintf("%d (%s)", p.Price, formatFloat(round2(p.Demand)))
			}
			return strings.Join(parts, ", ")
		}})
	}
	return s
}

func formatDistribution(d models.Distribution, total int) string {
	parts := make([]string, len(d))
	for i, c := range d {
		parts[i] = fmt.Sprintf("%s (%s%%)", c.Value, formatFloat(Percent(c.Count, total)))
	}
	return strings.Join(parts, ", ")
}

func formatRates(rates []models.Rate) string {
	parts := make([]string, len(rates))
	for i, r := range rates {
		parts[i] = fmt.Sprintf("%s (%s%%)", r.Name, formatFloat(round2(r.Value*100)))
	}
	return strings.Join(parts, ", ")
}

func formatPrices(d models.PriceDistribution, total int) string {
	parts := make([]string, len(d))
	for i, p := range d {
		parts[i] = fmt.Sprintf("%s (%s%%)", formatFloat(p.Price), formatFloat(Percent(p.Count, total)))
	}
	return strings.Join(parts, ", ")
}

// formatFloat prints the shortest exact decimal, always with a fractional
// part, e.g. 50 -> "50.0", 33.33 -> "33.33".
func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if f == 0 {
		f = 0 // drop the sign of -0
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") && !math.IsInf(f, 0) {
		s += ".0"
	}
	return s
}
