package plotting

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"loanlens/internal/dataset"
	"loanlens/internal/profile"
)

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
)

// Histogram renders the distribution of a numeric column to a PNG file.
// Null cells are excluded.
func Histogram(ds *dataset.Dataset, column string, bins int, path string) error {
	col, err := ds.Column(column)
	if err != nil {
		return err
	}
	values := col.NonNullFloats()
	if len(values) == 0 {
		return fmt.Errorf("column %s has no values to plot", column)
	}

	p := plot.New()
	p.Title.Text = column
	p.X.Label.Text = column
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return fmt.Errorf("build histogram for %s: %w", column, err)
	}
	h.FillColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	p.Add(h)

	return save(p, path)
}

// NullComparison renders a grouped bar chart of missing-value percentages
// before and after remediation.
func NullComparison(before, after []profile.MissingValue, path string) error {
	afterByColumn := make(map[string]float64, len(after))
	for _, m := range after {
		afterByColumn[m.Column] = m.PercentMissing
	}

	labels := make([]string, len(before))
	beforeVals := make(plotter.Values, len(before))
	afterVals := make(plotter.Values, len(before))
	for i, m := range before {
		labels[i] = m.Column
		beforeVals[i] = m.PercentMissing
		afterVals[i] = afterByColumn[m.Column]
	}

	p := plot.New()
	p.Title.Text = "Missing values before and after remediation"
	p.Y.Label.Text = "% missing"

	width := vg.Points(12)
	beforeBars, err := plotter.NewBarChart(beforeVals, width)
	if err != nil {
		return fmt.Errorf("build bar chart: %w", err)
	}
	beforeBars.Offset = -width / 2
	beforeBars.Color = color.RGBA{R: 214, G: 96, B: 77, A: 255}

	afterBars, err := plotter.NewBarChart(afterVals, width)
	if err != nil {
		return fmt.Errorf("build bar chart: %w", err)
	}
	afterBars.Offset = width / 2
	afterBars.Color = color.RGBA{R: 67, G: 147, B: 195, A: 255}

	p.Add(beforeBars, afterBars)
	p.Legend.Add("before", beforeBars)
	p.Legend.Add("after", afterBars)
	p.Legend.Top = true
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = -0.6
	p.X.Tick.Label.XAlign = draw.XLeft

	return save(p, path)
}

// corrGrid adapts a correlation matrix to the heat map grid interface.
// Row 0 is drawn at the bottom of the plot.
type corrGrid struct {
	m *mat.SymDense
}

func (g corrGrid) Dims() (int, int) { n := g.m.SymmetricDim(); return n, n }
func (g corrGrid) Z(c, r int) float64 {
	n := g.m.SymmetricDim()
	return g.m.At(n-1-r, c)
}
func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }

// CorrelationHeatmap renders a Pearson correlation matrix to a PNG file.
func CorrelationHeatmap(m *mat.SymDense, names []string, path string) error {
	if m.SymmetricDim() != len(names) {
		return fmt.Errorf("matrix size %d does not match %d names", m.SymmetricDim(), len(names))
	}

	p := plot.New()
	p.Title.Text = "Correlation matrix"

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	h := plotter.NewHeatMap(corrGrid{m: m}, cm.Palette(255))
	h.Min, h.Max = -1, 1
	p.Add(h)

	ticks := make([]plot.Tick, len(names))
	for i, name := range names {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = -0.6
	p.X.Tick.Label.XAlign = draw.XLeft

	reversed := make([]plot.Tick, len(names))
	for i, name := range names {
		reversed[i] = plot.Tick{Value: float64(len(names) - 1 - i), Label: name}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(reversed)

	return save(p, path)
}

// SkewComparison renders the distribution of a column before and after a
// skew transform as overlaid histograms.
func SkewComparison(column string, before, after []float64, bins int, path string) error {
	if len(before) == 0 || len(after) == 0 {
		return fmt.Errorf("column %s has no values to plot", column)
	}

	p := plot.New()
	p.Title.Text = column + ": before (red) and after (blue) transform"
	p.Y.Label.Text = "count"

	beforeHist, err := plotter.NewHist(plotter.Values(before), bins)
	if err != nil {
		return fmt.Errorf("build histogram for %s: %w", column, err)
	}
	beforeHist.FillColor = color.RGBA{R: 214, G: 96, B: 77, A: 160}

	afterHist, err := plotter.NewHist(plotter.Values(after), bins)
	if err != nil {
		return fmt.Errorf("build histogram for %s: %w", column, err)
	}
	afterHist.FillColor = color.RGBA{R: 67, G: 147, B: 195, A: 160}

	p.Add(beforeHist, afterHist)

	return save(p, path)
}

func save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create plot directory: %w", err)
	}
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}
