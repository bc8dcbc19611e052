// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/katalvlaran/difftrace/contour"
	"github.com/katalvlaran/difftrace/field"
	"github.com/katalvlaran/difftrace/profile"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	// ErrBadSize indicates a non-positive figure size.
	ErrBadSize = errors.New("render: figure size must be positive")

	// ErrEmptyProfile indicates a profile without steps or points.
	ErrEmptyProfile = errors.New("render: empty profile")
)

// Default figure size in pixels.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// colorBarWidth is the horizontal space reserved for the color bar.
const colorBarWidth = vg.Length(80)

// paletteSize is the number of colors sampled from the color map.
const paletteSize = 256

// HeatOptions configures HeatMap.
type HeatOptions struct {
	Title         string
	Width, Height int // pixels; zero selects the defaults

	// Min and Max bound the color range. Cells below Min take the
	// Underflow color. Max <= Min selects the field's own range.
	Min, Max  float64
	Underflow color.Color

	ColorBar bool
	Contours []contour.Contour // outlines drawn over the map
	Outline  color.Color       // contour color, black when nil
}

func (o *HeatOptions) size() (w, h int, err error) {
	w, h = o.Width, o.Height
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}
	if w < 0 || h < 0 {
		return 0, 0, ErrBadSize
	}

	return w, h, nil
}

// HeatMap renders f to a PNG at path.
func HeatMap(path string, f *field.Field, opts HeatOptions) error {
	if f == nil {
		return field.ErrNilField
	}
	w, h, err := opts.size()
	if err != nil {
		return err
	}
	lo, hi := opts.Min, opts.Max
	if hi <= lo {
		lo, hi = f.Min(), f.Max()
	}
	if hi <= lo {
		hi = lo + 1
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(lo)
	cm.SetMax(hi)

	hm := plotter.NewHeatMap(Grid{F: f}, cm.Palette(paletteSize))
	hm.Min, hm.Max = lo, hi
	hm.Underflow = opts.Underflow

	p := plot.New()
	p.Title.Text = opts.Title
	p.Add(hm)
	if err := addContours(p, f.Rows(), opts.Contours, opts.Outline); err != nil {
		return err
	}
	p.X.Min, p.X.Max = -0.5, float64(f.Cols())-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(f.Rows())-0.5

	img := vgimg.NewWith(vgimg.UseWH(vg.Length(w), vg.Length(h)), vgimg.UseDPI(72))
	dc := draw.New(img)
	if opts.ColorBar {
		bar := plot.New()
		bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})
		bar.HideX()
		bar.Y.Padding = 0
		bar.Title.Text = " "

		right := draw.Crop(dc, vg.Length(w)-colorBarWidth, 0, 0, 0)
		bar.Draw(right)
		dc = draw.Crop(dc, 0, -colorBarWidth, 0, 0)
	}
	p.Draw(dc)

	return savePNG(path, img)
}

// addContours draws every contour as a closed line.
func addContours(p *plot.Plot, rows int, cs []contour.Contour, col color.Color) error {
	if col == nil {
		col = color.Black
	}
	for i, c := range cs {
		if len(c.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, 0, len(c.Points)+1)
		for _, pt := range c.Points {
			xys = append(xys, pointXY(rows, pt))
		}
		xys = append(xys, xys[0])
		l, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("contour %d: %w", i, err)
		}
		l.Color = col
		l.Width = vg.Points(1)
		p.Add(l)
	}

	return nil
}

// LineOptions configures Profiles.
type LineOptions struct {
	Title         string
	XLabel        string
	YLabel        string
	Width, Height int
}

// Profiles plots every trace of prof against the step index (0-based).
// Lines are labeled by their point index: "0", "1", ...
func Profiles(path string, prof *profile.Profile, opts LineOptions) error {
	if prof == nil || prof.Steps() == 0 || len(prof.Points) == 0 {
		return ErrEmptyProfile
	}
	hopts := HeatOptions{Width: opts.Width, Height: opts.Height}
	w, h, err := hopts.size()
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Legend.Top = true

	var lines []interface{}
	for j := range prof.Points {
		tr, err := prof.Trace(j)
		if err != nil {
			return err
		}
		xys := make(plotter.XYs, len(tr))
		for t, v := range tr {
			xys[t] = plotter.XY{X: float64(t), Y: v}
		}
		lines = append(lines, fmt.Sprint(j), xys)
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return err
	}

	img := vgimg.NewWith(vgimg.UseWH(vg.Length(w), vg.Length(h)), vgimg.UseDPI(72))
	p.Draw(draw.New(img))

	return savePNG(path, img)
}

// savePNG writes the canvas to path.
func savePNG(path string, img *vgimg.Canvas) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fh.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if _, err = (vgimg.PngCanvas{Canvas: img}).WriteTo(fh); err != nil {
		return fmt.Errorf("figure %q: %w", path, err)
	}

	return nil
}
