// Package report writes light curves as CSV tables and plots.
package report

import (
	"encoding/csv"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cmcgrud1/spotrod"
	"github.com/cmcgrud1/spotrod/internal/model"
)

var header = []string{"time", "flux", "x", "y", "z"}

// WriteCSV writes one row per sample, preceded by a header row.
func WriteCSV(w io.Writer, c *model.Curve) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for i := range c.Time {
		for j, v := range []float64{c.Time[i], c.Flux[i], c.X[i], c.Y[i], c.Z[i]} {
			row[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the curve to a file, see WriteCSV.
func SaveCSV(path string, c *model.Curve) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, c); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// SavePlot renders the light curve to path. The format follows the file
// extension (png, svg, pdf, ...).
func SavePlot(path, title string, c *model.Curve) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time from mid-transit"
	p.Y.Label.Text = "Relative flux"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(c.Time))
	for i := range pts {
		pts[i] = plotter.XY{X: c.Time[i], Y: c.Flux[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	line.Width = vg.Points(1)
	p.Add(line)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

// SaveTrackPlot renders the planet's track across the stellar disk, with the
// spots drawn as they appear foreshortened.
func SaveTrackPlot(path string, c *model.Curve, spots spotrod.Spots) error {
	p := plot.New()
	p.Title.Text = "Planet track"
	p.X.Label.Text = "x (stellar radii)"
	p.Y.Label.Text = "y (stellar radii)"
	p.X.Min, p.X.Max = -1.2, 1.2
	p.Y.Min, p.Y.Max = -1.2, 1.2

	limb, err := outline(0, 0, 1, color.Black)
	if err != nil {
		return err
	}
	p.Add(limb)
	for l, n := 0, spots.Len(); l < n; l++ {
		o, err := outline(spots.X[l], spots.Y[l], spots.Radius[l], color.RGBA{R: 214, G: 39, B: 40, A: 255})
		if err != nil {
			return err
		}
		p.Add(o)
	}

	var pts plotter.XYs
	for i := range c.X {
		if c.Z[i] <= 1.2 {
			pts = append(pts, plotter.XY{X: c.X[i], Y: c.Y[i]})
		}
	}
	if len(pts) > 0 {
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(sc)
	}

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save track plot: %w", err)
	}
	return nil
}

// outline returns the projected boundary of a spot of radius a centered at
// (x, y). The stellar limb is the spot of radius 1 at the origin.
func outline(x, y, a float64, col color.Color) (*plotter.Line, error) {
	const segments = 128
	center := spotrod.Pt(x, y)
	b := spotrod.ProjectedSemiMinor(a, center.Hypot())
	rs, rc := math.Sincos(center.Angle())
	pts := make(plotter.XYs, segments+1)
	for i := range pts {
		s, c := math.Sincos(2 * math.Pi * float64(i) / segments)
		// b along the radius, a across it.
		u, v := b*c, a*s
		pts[i] = plotter.XY{X: x + u*rc - v*rs, Y: y + u*rs + v*rc}
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.Color = col
	l.Width = vg.Points(0.75)
	return l, nil
}
