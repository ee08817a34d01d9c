/*
 * plot.go, part of golephar.
 *
 *
 * Copyright 2026 The golephar authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package dockplot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	lephar "github.com/scipion-chem/golephar"
)

// Side of the square plots.
const plotSize = 5 * vg.Inch

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return p
}

// ScoreHistogram plots the distribution of the scores in S, one histogram per pocket,
// with the given number of bins, and saves it to filename. The format is taken from the
// extension (png, svg, pdf...).
func ScoreHistogram(S *lephar.SetOfSmallMolecules, bins int, filename string) error {
	byPocket, _, ids := scores(S)
	if len(ids) == 0 {
		return lephar.NewError(lephar.ErrValidation, "", filename, "ScoreHistogram", fmt.Errorf("no docked molecules to plot"))
	}
	if bins < 1 {
		bins = 10
	}
	p := basicPlot("Docking scores", "Score (kcal/mol)", "Poses")
	for i, id := range ids {
		h, err := plotter.NewHist(plotter.Values(byPocket[id]), bins)
		if err != nil {
			return lephar.NewError(lephar.ErrCantInput, "", filename, "ScoreHistogram", err)
		}
		r, g, b := colors(i, len(ids))
		h.FillColor = color.RGBA{R: r, G: g, B: b, A: 160}
		p.Add(h)
		p.Legend.Add(fmt.Sprintf("pocket %d", id), h)
	}
	if err := p.Save(plotSize, plotSize, filename); err != nil {
		return lephar.NewError(lephar.ErrCantInput, "", filename, "ScoreHistogram", err)
	}
	return nil
}

// PoseScatter plots the score of each pose against its index, with one color and
// glyph per pocket, and saves it to filename.
func PoseScatter(S *lephar.SetOfSmallMolecules, filename string) error {
	_, mols, ids := scores(S)
	if len(ids) == 0 {
		return lephar.NewError(lephar.ErrValidation, "", filename, "PoseScatter", fmt.Errorf("no docked molecules to plot"))
	}
	p := basicPlot("Scores per pose", "Pose", "Score (kcal/mol)")
	for i, id := range ids {
		pts := make(plotter.XYs, len(mols[id]))
		for j, m := range mols[id] {
			pts[j].X = float64(m.PoseID)
			pts[j].Y = m.Energy
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return lephar.NewError(lephar.ErrCantInput, "", filename, "PoseScatter", err)
		}
		r, g, b := colors(i, len(ids))
		s.GlyphStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		s.GlyphStyle.Shape = shape(i)
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("pocket %d", id), s)
	}
	if err := p.Save(plotSize, plotSize, filename); err != nil {
		return lephar.NewError(lephar.ErrCantInput, "", filename, "PoseScatter", err)
	}
	return nil
}

// shape returns a different glyph for each of the first five pockets, then
// starts over.
func shape(i int) draw.GlyphDrawer {
	switch i % 5 {
	case 0:
		return draw.CircleGlyph{}
	case 1:
		return draw.PyramidGlyph{}
	case 2:
		return draw.SquareGlyph{}
	case 3:
		return draw.CrossGlyph{}
	default:
		return draw.RingGlyph{}
	}
}

// colors returns the key-th of steps colors spread along the hue circle,
// skipping the yellows, which are hard to see on white.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	h := hp + 20.0
	if hp < 55 {
		h = hp - 20.0
	}
	return hsv2rgb(h, 1, 1)
}

func hsv2rgb(h, s, v float64) (uint8, uint8, uint8) {
	c := 255.0 * v
	if s == 0 {
		return uint8(c), uint8(c), uint8(c)
	}
	h /= 60
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	var r, g, b float64
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return uint8(r * c), uint8(g * c), uint8(b * c)
}
