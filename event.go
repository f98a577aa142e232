package trkhits

import (
	"fmt"
	"strings"

	"go-hep.org/x/hep/lcio"
)

// Hit is a tracker hit carrying a 64-bit cell ID.
type Hit interface {
	GetCellID0() int32
	GetCellID1() int32
}

// Collection is one named hit collection of an event. Foreign counts the
// elements that are not tracker hits.
type Collection struct {
	Encoding string
	Hits     []Hit
	Foreign  int
}

// Event is a decoded event, independent of the file format it came from.
type Event struct {
	Run         int64
	Number      int64
	Collections map[string]*Collection
}

type RunHeader struct {
	Number       int64
	Detector     string
	Description  string
	SubDetectors []string
}

// Source is a sequential reader of events.
type Source interface {
	Next() bool
	Event() *Event
	// RunHeader describes the run of the last event returned.
	RunHeader() RunHeader
	Err() error
	Close() error
}

// encodingFields returns the field names of a cell ID encoding such as
// "system:5,side:-2,layer:9,module:8,sensor:8" or "system:0:5,layer:5:9".
func encodingFields(codec string) ([]string, error) {
	if strings.TrimSpace(codec) == "" {
		return nil, fmt.Errorf("empty cell ID encoding")
	}
	var names []string
	for _, field := range strings.Split(codec, ",") {
		parts := strings.Split(strings.TrimSpace(field), ":")
		if len(parts) < 2 || len(parts) > 3 || parts[0] == "" {
			return nil, fmt.Errorf("invalid field %q in cell ID encoding %q", field, codec)
		}
		names = append(names, parts[0])
	}
	return names, nil
}

// cellIDDecoder extracts the system and layer fields from hit cell IDs.
type cellIDDecoder struct {
	dec    *lcio.CellIDDecoder
	system string
	layer  string
}

func newCellIDDecoder(codec, system, layer string) (*cellIDDecoder, error) {
	names, err := encodingFields(codec)
	if err != nil {
		return nil, err
	}
	for _, want := range []string{system, layer} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("cell ID encoding %q has no field %q", codec, want)
		}
	}
	return &cellIDDecoder{
		dec:    lcio.NewCellIDDecoder(codec),
		system: system,
		layer:  layer,
	}, nil
}

func (d *cellIDDecoder) System(hit Hit) int {
	return int(d.dec.Get(hit, d.system))
}

func (d *cellIDDecoder) Layer(hit Hit) int {
	return int(d.dec.Get(hit, d.layer))
}
