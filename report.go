package trkhits

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Report is the end-of-job summary of a HitCounter.
type Report struct {
	Detector string
	Events   int64
	Runs     int
	Skipped  Skipped
	Systems  []SystemReport
}

type SystemReport struct {
	ID        int
	Name      string
	Type      string
	Shape     Shape
	NHits     int64
	Area      float64
	AreaKnown bool
	Layers    []LayerReport
}

// HitsPerCm2 is the density over the whole subsystem.
func (s SystemReport) HitsPerCm2() (float64, bool) {
	if !s.AreaKnown {
		return 0, false
	}
	return float64(s.NHits) / s.Area, true
}

// LayerReport has Index -1 for the total counter of a subsystem of unknown
// shape.
type LayerReport struct {
	Index          int
	NHits          int64
	Area           float64
	AreaKnown      bool
	HitsPerCm2     float64
	MeanPerEvent   float64
	StdDevPerEvent float64
	MeanPerCm2     float64 // hits per event per cm^2
	Runs           []RunStats
	RunMean        float64 // mean over runs of the per-run mean hits per event
	RunStdDev      float64
}

func newSystemReport(sys *SystemCounter) SystemReport {
	rep := SystemReport{
		ID:    sys.ID,
		Name:  sys.Name,
		Type:  sys.Type,
		Shape: sys.Shape,
		NHits: sys.NHits(),
	}
	rep.Area, rep.AreaKnown = sys.Area()

	for _, c := range sys.Layers() {
		lr := LayerReport{
			Index:          c.Index,
			NHits:          c.NHits,
			Area:           c.Area,
			AreaKnown:      c.AreaKnown(),
			MeanPerEvent:   c.PerEvent.Mean(),
			StdDevPerEvent: c.PerEvent.StdDev(),
			Runs:           append([]RunStats(nil), c.Runs...),
			RunMean:        c.RunToRun.Mean(),
			RunStdDev:      c.RunToRun.StdDev(),
		}
		lr.HitsPerCm2, _ = c.HitsPerCm2()
		lr.MeanPerCm2, _ = c.MeanHitsPerCm2()
		rep.Layers = append(rep.Layers, lr)
	}
	return rep
}

// System returns the report of the subsystem with the given name.
func (r *Report) System(name string) (SystemReport, bool) {
	for _, s := range r.Systems {
		if s.Name == name {
			return s, true
		}
	}
	return SystemReport{}, false
}

// WriteTo writes the report as text.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var b bytes.Buffer
	rule := strings.Repeat("*", 70)

	fmt.Fprintf(&b, "%s\nREPORT: %s\n", rule, r.Detector)
	fmt.Fprintf(&b, "events: %d, runs: %d\n", r.Events, r.Runs)

	for _, s := range r.Systems {
		fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 50))
		fmt.Fprintf(&b, "Subsystem: %s (ID=%d, %s)\n", s.Name, s.ID, s.Shape)
		if d, ok := s.HitsPerCm2(); ok {
			fmt.Fprintf(&b, "  total: %d hits, %g cm^2 (%g hits/cm^2)\n", s.NHits, s.Area, d)
		} else {
			fmt.Fprintf(&b, "  total: %d hits, area unknown\n", s.NHits)
		}

		for _, l := range s.Layers {
			name := fmt.Sprintf("Layer %d", l.Index)
			if l.Index < 0 {
				name = "All layers"
			}
			if l.AreaKnown {
				fmt.Fprintf(&b, "  %s: %d hits (%g hits/cm^2), %g +- %g hits/event (%g hits/cm^2/event)\n",
					name, l.NHits, l.HitsPerCm2, l.MeanPerEvent, l.StdDevPerEvent, l.MeanPerCm2)
			} else {
				fmt.Fprintf(&b, "  %s: %d hits, %g +- %g hits/event\n",
					name, l.NHits, l.MeanPerEvent, l.StdDevPerEvent)
			}
			for _, run := range l.Runs {
				fmt.Fprintf(&b, "    run %d: %d events, %d hits, %g +- %g hits/event\n",
					run.Run, run.Events, run.Hits, run.Mean, run.StdDev)
			}
			if len(l.Runs) > 1 {
				fmt.Fprintf(&b, "    run-to-run: %g +- %g hits/event\n", l.RunMean, l.RunStdDev)
			}
		}
		fmt.Fprintln(&b)
	}

	sk := r.Skipped
	if sk != (Skipped{}) {
		fmt.Fprintf(&b, "skipped: %d missing collections, %d foreign collections, %d bad encodings, %d hits in unknown systems, %d hits in unknown layers\n",
			sk.MissingCollections, sk.ForeignCollections, sk.BadEncodings, sk.UnknownSystems, sk.UnknownLayers)
	}
	fmt.Fprintf(&b, "%s\n", rule)

	return b.WriteTo(w)
}
