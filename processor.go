package trkhits

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DefaultCollections are the tracker hit collections of the ILD simulation.
var DefaultCollections = []string{
	"VXDCollection",
	"SITCollection",
	"FTDCollection",
	"TPCCollection",
	"SETCollection",
}

// Config configures a HitCounter. Zero fields take their defaults.
type Config struct {
	Collections []string
	ElementType string // "tracker"
	Encoding    string // used when a collection carries no encoding
	SystemField string // "system"
	LayerField  string // "layer"
	Logger      logrus.FieldLogger
}

// Skipped counts what ProcessEvent had to ignore.
type Skipped struct {
	MissingCollections int64
	ForeignCollections int64
	BadEncodings       int64
	UnknownSystems     int64
	UnknownLayers      int64
}

// HitCounter counts tracker hits per subsystem and layer. Init, then
// ProcessRunHeader and ProcessEvent, then End.
type HitCounter struct {
	cfg Config
	log logrus.FieldLogger

	detector string
	systems  map[int]*SystemCounter
	order    []int
	decoders map[string]*cellIDDecoder

	run       int64
	inRun     bool
	nRuns     int
	nEvents   int64
	skipped   Skipped
	warnedEnc map[string]bool
}

func NewHitCounter(cfg Config) *HitCounter {
	if len(cfg.Collections) == 0 {
		cfg.Collections = DefaultCollections
	}
	if cfg.ElementType == "" {
		cfg.ElementType = "tracker"
	}
	if cfg.SystemField == "" {
		cfg.SystemField = "system"
	}
	if cfg.LayerField == "" {
		cfg.LayerField = "layer"
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	return &HitCounter{
		cfg:       cfg,
		log:       cfg.Logger,
		systems:   make(map[int]*SystemCounter),
		decoders:  make(map[string]*cellIDDecoder),
		warnedEnc: make(map[string]bool),
	}
}

// Init scans the geometry and creates the hit counters of every selected
// element.
func (hc *HitCounter) Init(geom *Geometry) error {
	elements := geom.Select(hc.cfg.ElementType)
	if len(elements) == 0 {
		return fmt.Errorf("no detector element of type %q", hc.cfg.ElementType)
	}

	hc.detector = geom.Detector
	if hc.cfg.Encoding == "" {
		hc.cfg.Encoding = geom.CellIDEncoding
	}

	hc.log.Infof("collections: %v", hc.cfg.Collections)
	for _, e := range elements {
		if _, dup := hc.systems[e.ID]; dup {
			return fmt.Errorf("detector element %q: ID %d already counted", e.Name, e.ID)
		}

		log := hc.log.WithField("system", e.Name)
		log.Infof("detector element %q of type %q with ID=%d", e.Name, e.Type, e.ID)

		sys := NewSystemCounter(e)
		switch sys.Shape {
		case ShapeZPlanar:
			if e.ZDiskPetals != nil {
				log.Debug("both ZPlanar and ZDiskPetals layering given, using ZPlanar")
			}
			for i, l := range e.ZPlanar.Layers {
				log.WithField("layer", i).Infof(
					"length %g mm, width %g mm, %d ladders, sensitive area %g cm^2",
					2*l.ZHalfSensitive/mm, l.WidthSensitive/mm, l.LadderNumber, l.Area()/cm2,
				)
			}
		case ShapeZDiskPetals:
			for i, l := range e.ZDiskPetals.Layers {
				log.WithField("layer", i).Infof(
					"length %g mm, inner width %g mm, outer width %g mm, %d petals, sensitive area %g cm^2",
					l.LengthSensitive/mm, l.WidthInnerSensitive/mm, l.WidthOuterSensitive/mm, l.PetalNumber, l.Area()/cm2,
				)
			}
		default:
			log.Info("no layering data, total hits will be counted")
		}
		if sys.Shape != ShapeUnknown && len(sys.layers) == 0 {
			log.Warnf("%s layering has no layers, every hit will be out of range", sys.Shape)
		}

		hc.systems[e.ID] = sys
		hc.order = append(hc.order, e.ID)
		log.Debugf("added %d hit counters for ID=%d", len(sys.Layers()), e.ID)
	}
	return nil
}

// ProcessRunHeader closes the current run, if any, and opens a new one.
func (hc *HitCounter) ProcessRunHeader(hdr RunHeader) {
	hc.endRun()
	hc.run = hdr.Number
	hc.inRun = true
	hc.nRuns++
	if hc.detector == "" {
		hc.detector = hdr.Detector
	}
	hc.log.Debugf("run %d, detector %q", hdr.Number, hdr.Detector)
}

func (hc *HitCounter) endRun() {
	if !hc.inRun {
		return
	}
	for _, id := range hc.order {
		hc.systems[id].endRun(hc.run)
	}
	hc.inRun = false
}

// ProcessEvent counts the hits of the configured collections of evt.
func (hc *HitCounter) ProcessEvent(evt *Event) {
	if !hc.inRun || evt.Run != hc.run {
		hc.ProcessRunHeader(RunHeader{Number: evt.Run})
	}

	log := hc.log.WithField("event", evt.Number)
	for _, name := range hc.cfg.Collections {
		hc.processCollection(log.WithField("collection", name), name, evt.Collections[name])
	}

	for _, id := range hc.order {
		hc.systems[id].endEvent()
	}
	hc.nEvents++
}

func (hc *HitCounter) processCollection(log logrus.FieldLogger, name string, coll *Collection) {
	if coll == nil {
		hc.skipped.MissingCollections++
		log.Warnf("collection %s not in event, skipping", name)
		return
	}
	if coll.Foreign > 0 {
		hc.skipped.ForeignCollections++
		log.Warnf("collection %s does not contain SimTrackerHits, skipping collection", name)
		return
	}
	if len(coll.Hits) == 0 {
		return
	}

	dec, err := hc.decoder(coll.Encoding)
	if err != nil {
		hc.skipped.BadEncodings++
		if !hc.warnedEnc[coll.Encoding] {
			hc.warnedEnc[coll.Encoding] = true
			log.Errorf("collection %s: %v", name, err)
		}
		return
	}

	for _, hit := range coll.Hits {
		nsys := dec.System(hit)
		sys, ok := hc.systems[nsys]
		if !ok {
			hc.skipped.UnknownSystems++
			log.Warnf("hit belongs to system #%d that is not analysed", nsys)
			continue
		}

		nlay := dec.Layer(hit)
		ctr, ok := sys.Lookup(nlay)
		if !ok {
			hc.skipped.UnknownLayers++
			log.WithField("system", sys.Name).Errorf(
				"hit in system ID=%d belongs to layer %d: out of range, the geometry differs from the simulated one",
				sys.ID, nlay,
			)
			continue
		}
		ctr.AddHits(1)
	}
}

func (hc *HitCounter) decoder(codec string) (*cellIDDecoder, error) {
	if codec == "" {
		codec = hc.cfg.Encoding
	}
	if dec, ok := hc.decoders[codec]; ok {
		return dec, nil
	}
	dec, err := newCellIDDecoder(codec, hc.cfg.SystemField, hc.cfg.LayerField)
	if err != nil {
		return nil, err
	}
	hc.decoders[codec] = dec
	return dec, nil
}

// End closes the open run and reports the accumulated counts.
func (hc *HitCounter) End() *Report {
	hc.endRun()

	report := &Report{
		Detector: hc.detector,
		Events:   hc.nEvents,
		Runs:     hc.nRuns,
		Skipped:  hc.skipped,
	}
	for _, id := range hc.order {
		report.Systems = append(report.Systems, newSystemReport(hc.systems[id]))
	}
	return report
}

// Process feeds every event of src to hc, announcing each new run first.
func Process(src Source, hc *HitCounter) error {
	first := true
	var run int64
	for src.Next() {
		evt := src.Event()
		if first || evt.Run != run {
			hdr := src.RunHeader()
			hdr.Number = evt.Run
			hc.ProcessRunHeader(hdr)
			run = evt.Run
			first = false
		}
		hc.ProcessEvent(evt)
	}
	return src.Err()
}
