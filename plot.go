package trkhits

import (
	"fmt"
	"image/color"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
)

var lineColors = []color.Color{
	color.RGBA{A: 255},
	color.RGBA{R: 255, A: 255},
	color.RGBA{G: 255, A: 255},
	color.RGBA{B: 255, A: 255},
	color.RGBA{R: 255, B: 127, G: 127, A: 255},
	color.RGBA{R: 127, B: 255, A: 255},
}

// DensityHist returns the hits/cm^2 of each layer of s as a histogram with
// one unit-wide bin per layer. It returns nil when s has no layer of known
// area.
func (s SystemReport) DensityHist() *hbook.H1D {
	nLayers := 0
	for _, l := range s.Layers {
		if l.AreaKnown && l.Index+1 > nLayers {
			nLayers = l.Index + 1
		}
	}
	if nLayers == 0 {
		return nil
	}

	hist := hbook.NewH1D(nLayers, -0.5, float64(nLayers)-0.5)
	for _, l := range s.Layers {
		if l.AreaKnown {
			hist.Fill(float64(l.Index), l.HitsPerCm2)
		}
	}
	return hist
}

// Plot draws the hit density against layer index for every subsystem with a
// known area.
func (r *Report) Plot(title string) (*plot.Plot, error) {
	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	p.Title.Text = title
	p.X.Label.Text = "layer"
	p.Y.Label.Text = "hits/cm^2"
	p.X.Tick.Marker = LayerTicks{}
	p.Y.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}
	p.Legend.Top = true

	n := 0
	for _, s := range r.Systems {
		hist := s.DensityHist()
		if hist == nil {
			continue
		}

		h := hplot.NewH1D(hist)
		h.FillColor = nil
		h.LineStyle.Color = lineColors[n%len(lineColors)]
		h.Infos.Style = hplot.HInfoNone

		p.Add(h)
		p.Legend.Add(s.Name, h)
		n++
	}
	if n == 0 {
		return nil, fmt.Errorf("no subsystem with a known sensitive area")
	}

	p.Y.Min = 0
	return p, nil
}
