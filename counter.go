package trkhits

import "sort"

// RunStats summarises the hits of one layer during one run.
type RunStats struct {
	Run    int64
	Events int64
	Hits   int64
	Mean   float64 // hits per event
	StdDev float64
}

// LayerCounter counts the hits of one layer. Area is in cm^2 and zero when
// the layering of the subsystem is unknown.
type LayerCounter struct {
	Index int
	Area  float64

	NHits     int64
	PerEvent  Welford // hits per event over completed runs
	RunToRun  Welford // per-run mean hits per event
	Runs      []RunStats
	eventHits int64
	runHits   int64
	run       Welford
}

func NewLayerCounter(index int, area float64) *LayerCounter {
	return &LayerCounter{Index: index, Area: area}
}

func (c *LayerCounter) AddHits(n int64) {
	c.NHits += n
	c.eventHits += n
	c.runHits += n
}

// EndEvent records the hits of the current event.
func (c *LayerCounter) EndEvent() {
	c.run.Add(float64(c.eventHits))
	c.eventHits = 0
}

// EndRun records the statistics of the current run. A run without events
// leaves no record.
func (c *LayerCounter) EndRun(run int64) {
	if c.run.N > 0 {
		c.Runs = append(c.Runs, RunStats{
			Run:    run,
			Events: c.run.N,
			Hits:   c.runHits,
			Mean:   c.run.Mean(),
			StdDev: c.run.StdDev(),
		})
		c.RunToRun.Add(c.run.Mean())
		c.PerEvent.Merge(c.run)
	}
	c.run = Welford{}
	c.runHits = 0
}

func (c *LayerCounter) AreaKnown() bool {
	return c.Area > 0
}

// HitsPerCm2 returns the total number of hits per cm^2 of sensitive area.
func (c *LayerCounter) HitsPerCm2() (float64, bool) {
	if !c.AreaKnown() {
		return 0, false
	}
	return float64(c.NHits) / c.Area, true
}

// MeanHitsPerCm2 returns the mean number of hits per event per cm^2.
func (c *LayerCounter) MeanHitsPerCm2() (float64, bool) {
	if !c.AreaKnown() {
		return 0, false
	}
	return c.PerEvent.Mean() / c.Area, true
}

// SystemCounter holds the layer counters of one subsystem. A subsystem of
// unknown shape has a single Total counter that takes every hit.
type SystemCounter struct {
	ID    int
	Name  string
	Type  string
	Shape Shape

	layers map[int]*LayerCounter
	Total  *LayerCounter
}

func NewSystemCounter(e Element) *SystemCounter {
	shape, areas := e.Layering()
	sys := &SystemCounter{
		ID:     e.ID,
		Name:   e.Name,
		Type:   e.Type,
		Shape:  shape,
		layers: make(map[int]*LayerCounter, len(areas)),
	}
	if shape == ShapeUnknown {
		sys.Total = NewLayerCounter(-1, 0)
		return sys
	}
	for _, l := range areas {
		sys.layers[l.Index] = NewLayerCounter(l.Index, l.Area)
	}
	return sys
}

// Lookup returns the counter for a layer index.
func (s *SystemCounter) Lookup(layer int) (*LayerCounter, bool) {
	if s.Total != nil {
		return s.Total, true
	}
	c, ok := s.layers[layer]
	return c, ok
}

// Layers returns the per-layer counters sorted by index, or the single total
// counter.
func (s *SystemCounter) Layers() []*LayerCounter {
	if s.Total != nil {
		return []*LayerCounter{s.Total}
	}
	layers := make([]*LayerCounter, 0, len(s.layers))
	for _, c := range s.layers {
		layers = append(layers, c)
	}
	sort.Slice(layers, func(i, j int) bool { return layers[i].Index < layers[j].Index })
	return layers
}

func (s *SystemCounter) NHits() int64 {
	var n int64
	for _, c := range s.Layers() {
		n += c.NHits
	}
	return n
}

// Area returns the summed sensitive area. It is only known when every
// layer's area is.
func (s *SystemCounter) Area() (float64, bool) {
	layers := s.Layers()
	if len(layers) == 0 {
		return 0, false
	}
	var area float64
	for _, c := range layers {
		if !c.AreaKnown() {
			return 0, false
		}
		area += c.Area
	}
	return area, true
}

func (s *SystemCounter) endEvent() {
	for _, c := range s.Layers() {
		c.EndEvent()
	}
}

func (s *SystemCounter) endRun(run int64) {
	for _, c := range s.Layers() {
		c.EndRun(run)
	}
}
