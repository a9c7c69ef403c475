package services

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"howth-congestion/models"
	"howth-congestion/utils"
)

// Chart renders demand curves as a price-vs-quantity line chart.
type Chart struct {
	logger *utils.Logger
	width  vg.Length
	height vg.Length
}

func NewChart(logger *utils.Logger) *Chart {
	return &Chart{logger: logger, width: 8 * vg.Inch, height: 6 * vg.Inch}
}

// Build lays out one line per curve with quantity on X and price on Y.
func (c *Chart) Build(curves []models.ElasticityCurve) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Price Elasticity of Demand"
	p.X.Label.Text = "Quantity (Cars)"
	p.Y.Label.Text = "Price (€)"
	p.Legend.Top = true

	lines := make([]interface{}, 0, 2*len(curves))
	for _, curve := range curves {
		pts := make(plotter.XYs, len(curve.Points))
		for i, pt := range curve.Points {
			pts[i].X = pt.Demand
			pts[i].Y = float64(pt.Price)
		}
		lines = append(lines, curve.Label, pts)
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return nil, fmt.Errorf("chart: add lines: %w", err)
	}
	return p, nil
}

// Render writes the chart to path; the format follows the extension.
func (c *Chart) Render(curves []models.ElasticityCurve, path string) error {
	if len(curves) == 0 {
		return fmt.Errorf("chart: %w", models.ErrEmptyDistribution)
	}
	p, err := c.Build(curves)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("chart: create output dir: %w", err)
	}
	if err := p.Save(c.width, c.height, path); err != nil {
		return fmt.Errorf("chart: save %q: %w", path, err)
	}
	c.logger.Info("[chart] Demand curves written to %s", path)
	return nil
}
