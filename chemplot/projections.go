/*
 * projections.go, part of pdbrecon
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
*/

package chemplot

import (
	"fmt"
	"image/color"
	"os"

	v3 "github.com/rmera/pdbrecon/v3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// The pairs of axes for each projection, and their labels.
var projections = [3]struct {
	a, b   int
	la, lb string
}{
	{0, 1, "X", "Y"},
	{0, 2, "X", "Z"},
	{1, 2, "Y", "Z"},
}

// indexColors returns one color per vector, along a blue to red gradient that follows
// the order of the vectors.
func indexColors(n int) ([]color.Color, error) {
	ret := make([]color.Color, n)
	if n == 0 {
		return ret, nil
	}
	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(0)
	cmap.SetMax(float64(n))
	for i := range ret {
		c, err := cmap.At(float64(i))
		if err != nil {
			return nil, err
		}
		ret[i] = c
	}
	return ret, nil
}

func projectionPlot(c *v3.Matrix, colors []color.Color, proj int, title string) (*plot.Plot, error) {
	pr := projections[proj]
	p := plot.New()
	p.Title.Padding = vg.Millimeter * 3
	p.Title.Text = fmt.Sprintf("%s (%s%s)", title, pr.la, pr.lb)
	p.X.Label.Text = pr.la
	p.Y.Label.Text = pr.lb
	p.Add(plotter.NewGrid())
	if c.Empty() {
		return p, nil
	}
	pts := make(plotter.XYs, c.NVecs())
	for i := range pts {
		pts[i].X = c.At(i, pr.a)
		pts[i].Y = c.At(i, pr.b)
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{Color: colors[i], Radius: vg.Points(2), Shape: draw.CircleGlyph{}}
	}
	p.Add(s)
	return p, nil
}

// ProjectionsPNG saves a PNG image with the XY, XZ and YZ projections of the coordinates in c,
// side by side. Each point is colored according to its position in c, from blue for the first one
// to red for the last.
func ProjectionsPNG(name, title string, c *v3.Matrix) error {
	colors, err := indexColors(c.NVecs())
	if err != nil {
		return err
	}
	plots := make([][]*plot.Plot, 1)
	plots[0] = make([]*plot.Plot, len(projections))
	for i := range projections {
		if plots[0][i], err = projectionPlot(c, colors, i, title); err != nil {
			return err
		}
	}
	const side = 10 * vg.Centimeter
	img := vgimg.New(side*vg.Length(len(projections)), side)
	dc := draw.New(img)
	t := draw.Tiles{
		Rows:      1,
		Cols:      len(projections),
		PadX:      vg.Millimeter * 2,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, t, dc)
	for i, p := range plots[0] {
		p.Draw(canvases[0][i])
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err = png.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
