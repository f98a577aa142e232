package trkhits

import (
	"fmt"

	"github.com/proio-org/go-proio"
	model "github.com/proio-org/go-proio-pb/model/lcio"
)

// ProioSource reads events from a sequence of proio files. Entries are
// looked up by tag, one tag per collection name; entries other than LCIO
// SimTrackerHits make the collection foreign. proio streams carry no run
// headers, so every file is one run, numbered from FirstRun.
type ProioSource struct {
	Collections []string
	FirstRun    int64

	files   []string
	nOpened int64
	reader  *proio.Reader
	events  <-chan *proio.Event
	evt     *Event
	rhdr    RunHeader
	nEvents int64
	err     error
}

func NewProioSource(files []string, collections []string, firstRun int64) *ProioSource {
	return &ProioSource{Collections: collections, FirstRun: firstRun, files: files}
}

func (src *ProioSource) Next() bool {
	if src.err != nil {
		return false
	}

	for {
		if src.reader == nil {
			if len(src.files) == 0 {
				return false
			}
			fname := src.files[0]
			src.files = src.files[1:]
			reader, err := proio.Open(fname)
			if err != nil {
				src.err = fmt.Errorf("could not open proio file %q: %w", fname, err)
				return false
			}
			src.reader = reader
			src.events = reader.ScanEvents()
			src.rhdr = RunHeader{Number: src.FirstRun + src.nOpened, Description: fname}
			src.nOpened++
			src.nEvents = 0
		}

		event, ok := <-src.events
		if ok {
			src.evt = convertProioEvent(event, src.rhdr.Number, src.nEvents, src.Collections)
			src.nEvents++
			return true
		}

		src.reader.Close()
		src.reader = nil
		src.events = nil
	}
}

func convertProioEvent(event *proio.Event, run, number int64, collections []string) *Event {
	evt := &Event{
		Run:         run,
		Number:      number,
		Collections: make(map[string]*Collection, len(collections)),
	}

	for _, name := range collections {
		ids := event.TaggedEntries(name)
		if len(ids) == 0 {
			continue
		}

		coll := &Collection{}
		for _, id := range ids {
			hit, ok := event.GetEntry(id).(*model.SimTrackerHit)
			if !ok {
				coll.Foreign++
				continue
			}
			coll.Hits = append(coll.Hits, hit)
		}
		evt.Collections[name] = coll
	}
	return evt
}

func (src *ProioSource) Event() *Event {
	return src.evt
}

func (src *ProioSource) RunHeader() RunHeader {
	return src.rhdr
}

func (src *ProioSource) Err() error {
	return src.err
}

func (src *ProioSource) Close() error {
	src.files = nil
	if src.reader == nil {
		return nil
	}
	src.reader.Close()
	src.reader = nil
	src.events = nil
	return nil
}
