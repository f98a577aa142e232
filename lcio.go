package trkhits

import (
	"fmt"
	"io"

	"go-hep.org/x/hep/lcio"
)

// LCIOSource reads events from a sequence of LCIO files. Only the
// collections listed in Collections are decoded.
type LCIOSource struct {
	Collections []string

	files  []string
	r      *lcio.Reader
	evt    *Event
	rhdr   RunHeader
	fname  string
	err    error
	closed bool
}

func NewLCIOSource(files []string, collections []string) *LCIOSource {
	return &LCIOSource{Collections: collections, files: files}
}

func (src *LCIOSource) Next() bool {
	if src.err != nil || src.closed {
		return false
	}

	for {
		if src.r == nil {
			if len(src.files) == 0 {
				return false
			}
			src.fname, src.files = src.files[0], src.files[1:]
			r, err := lcio.Open(src.fname)
			if err != nil {
				src.err = fmt.Errorf("could not open LCIO file %q: %w", src.fname, err)
				return false
			}
			src.r = r
		}

		if src.r.Next() {
			break
		}

		err := src.r.Err()
		src.r.Close()
		src.r = nil
		if err != nil && err != io.EOF {
			src.err = fmt.Errorf("could not read LCIO file %q: %w", src.fname, err)
			return false
		}
	}

	lcevt := src.r.Event()
	src.evt = convertLCIOEvent(&lcevt, src.Collections)

	hdr := src.r.RunHeader()
	if int64(hdr.RunNumber) == src.evt.Run {
		src.rhdr = RunHeader{
			Number:       int64(hdr.RunNumber),
			Detector:     hdr.Detector,
			Description:  hdr.Descr,
			SubDetectors: hdr.SubDetectors,
		}
	} else {
		// no run header record for this run
		src.rhdr = RunHeader{Number: src.evt.Run, Detector: lcevt.Detector}
	}
	return true
}

func convertLCIOEvent(lcevt *lcio.Event, collections []string) *Event {
	evt := &Event{
		Run:         int64(lcevt.RunNumber),
		Number:      int64(lcevt.EventNumber),
		Collections: make(map[string]*Collection, len(collections)),
	}

	for _, name := range collections {
		if !lcevt.Has(name) {
			continue
		}

		coll := &Collection{}
		switch c := lcevt.Get(name).(type) {
		case *lcio.SimTrackerHitContainer:
			if enc, ok := c.Params.Strings["CellIDEncoding"]; ok && len(enc) > 0 {
				coll.Encoding = enc[0]
			}
			coll.Hits = make([]Hit, len(c.Hits))
			for i := range c.Hits {
				coll.Hits[i] = &c.Hits[i]
			}
		default:
			// not tracker hits
			coll.Foreign = 1
		}
		evt.Collections[name] = coll
	}
	return evt
}

func (src *LCIOSource) Event() *Event {
	return src.evt
}

func (src *LCIOSource) RunHeader() RunHeader {
	return src.rhdr
}

func (src *LCIOSource) Err() error {
	return src.err
}

func (src *LCIOSource) Close() error {
	src.closed = true
	if src.r == nil {
		return nil
	}
	err := src.r.Close()
	src.r = nil
	return err
}
