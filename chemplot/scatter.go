/*
 * scatter.go, part of pdbrecon
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

// Package chemplot renders sets of coordinates, as an interactive 3D scatter plot in an HTML page,
// or as 2D projections in a PNG image.
package chemplot

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	v3 "github.com/rmera/pdbrecon/v3"
	"gonum.org/v1/plot/palette/moreland"
)

// AssetsHost is the location of the echarts scripts loaded by the HTML pages.
var AssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// gradientStops is the number of colors given to the visual map.
const gradientStops = 9

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// gradient returns n colors evenly spaced along the blue to red gradient
// used for the PNG projections, from one end to the other.
func gradient(n int) ([]string, error) {
	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(0)
	cmap.SetMax(1)
	ret := make([]string, n)
	for i := range ret {
		c, err := cmap.At(float64(i) / float64(n-1))
		if err != nil {
			return nil, err
		}
		ret[i] = hexColor(c)
	}
	return ret, nil
}

// scatterChart builds the echarts 3D scatter for c. Each point carries its index as a
// fourth value, which the visual map uses to color the points by their position in c.
func scatterChart(title string, c *v3.Matrix) (*charts.Scatter3D, error) {
	n := c.NVecs()
	stops, err := gradient(gradientStops)
	if err != nil {
		return nil, err
	}
	data := make([]opts.Chart3DData, n)
	for i := range data {
		data[i] = opts.Chart3DData{Value: []interface{}{c.At(i, 0), c.At(i, 1), c.At(i, 2), i}}
	}
	max := float32(0)
	if n > 1 {
		max = float32(n - 1)
	}
	sc := charts.NewScatter3D()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:  title,
			Width:      "100%",
			Height:     "95vh",
			AssetsHost: AssetsHost,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Y"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Z"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Type:       "continuous",
			Calculable: opts.Bool(true),
			Dimension:  "3",
			Min:        0,
			Max:        max,
			Text:       []string{"last", "first"},
			InRange:    &opts.VisualMapInRange{Color: stops},
		}),
	)
	sc.AddSeries("atoms", data)
	return sc, nil
}

// Scatter3D writes to w an HTML page with an interactive 3D scatter plot of the
// coordinates in c. Points are colored by their position in c, from blue for the first one
// to red for the last.
func Scatter3D(w io.Writer, title string, c *v3.Matrix) error {
	sc, err := scatterChart(title, c)
	if err != nil {
		return err
	}
	return sc.Render(w)
}

// Scatter3DHTML saves the page produced by Scatter3D to the file name.
func Scatter3DHTML(name, title string, c *v3.Matrix) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	b := bufio.NewWriter(f)
	if err = Scatter3D(b, title, c); err != nil {
		f.Close()
		return err
	}
	if err = b.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
