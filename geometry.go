package trkhits

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Unit conversions. Geometry lengths are given in mm.
const (
	mm  = 1.
	cm  = 10 * mm
	cm2 = cm * cm
)

// Geometry is the subset of a detector description needed to normalise hit
// counts: detector elements and the layering of their sensitive material.
type Geometry struct {
	Detector       string    `yaml:"detector"`
	CellIDEncoding string    `yaml:"cellIDEncoding"`
	Elements       []Element `yaml:"elements"`
}

// Element is a top-level detector element (a subsystem). At most one of
// ZPlanar and ZDiskPetals is used; when both are set ZPlanar wins.
type Element struct {
	Name        string           `yaml:"name"`
	ID          int              `yaml:"id"`
	Type        string           `yaml:"type"`
	ZPlanar     *ZPlanarData     `yaml:"zplanar,omitempty"`
	ZDiskPetals *ZDiskPetalsData `yaml:"zdiskpetals,omitempty"`
}

// ZPlanarData describes ladders arranged parallel to the beam axis.
type ZPlanarData struct {
	Layers []ZPlanarLayer `yaml:"layers"`
}

type ZPlanarLayer struct {
	ZHalfSensitive float64 `yaml:"zHalfSensitive"`
	WidthSensitive float64 `yaml:"widthSensitive"`
	LadderNumber   int     `yaml:"ladderNumber"`
}

// Area returns the sensitive area of the layer in mm^2.
func (l ZPlanarLayer) Area() float64 {
	return 2 * l.ZHalfSensitive * l.WidthSensitive * float64(l.LadderNumber)
}

// ZDiskPetalsData describes disks made of trapezoidal petals.
type ZDiskPetalsData struct {
	Layers []ZDiskPetalsLayer `yaml:"layers"`
}

type ZDiskPetalsLayer struct {
	LengthSensitive     float64 `yaml:"lengthSensitive"`
	WidthInnerSensitive float64 `yaml:"widthInnerSensitive"`
	WidthOuterSensitive float64 `yaml:"widthOuterSensitive"`
	PetalNumber         int     `yaml:"petalNumber"`
}

// Area returns the sensitive area of the layer in mm^2.
func (l ZDiskPetalsLayer) Area() float64 {
	return l.LengthSensitive * (l.WidthInnerSensitive + l.WidthOuterSensitive) * float64(l.PetalNumber) / 2
}

// Shape is the layering description found on an element.
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeZPlanar
	ShapeZDiskPetals
)

func (s Shape) String() string {
	switch s {
	case ShapeZPlanar:
		return "ZPlanar"
	case ShapeZDiskPetals:
		return "ZDiskPetals"
	}
	return "unknown"
}

// LayerArea is the sensitive area of one layer, in cm^2.
type LayerArea struct {
	Index int
	Area  float64
}

// Layering returns the shape of the element and the sensitive area of each
// of its layers. Layers are numbered from 0 in declaration order. An element
// without layering data has ShapeUnknown and no layers.
func (e Element) Layering() (Shape, []LayerArea) {
	switch {
	case e.ZPlanar != nil:
		layers := make([]LayerArea, len(e.ZPlanar.Layers))
		for i, l := range e.ZPlanar.Layers {
			layers[i] = LayerArea{Index: i, Area: l.Area() / cm2}
		}
		return ShapeZPlanar, layers
	case e.ZDiskPetals != nil:
		layers := make([]LayerArea, len(e.ZDiskPetals.Layers))
		for i, l := range e.ZDiskPetals.Layers {
			layers[i] = LayerArea{Index: i, Area: l.Area() / cm2}
		}
		return ShapeZDiskPetals, layers
	}
	return ShapeUnknown, nil
}

// Select returns the elements of the given type, in file order. An empty
// type selects every element.
func (g *Geometry) Select(typ string) []Element {
	var elements []Element
	for _, e := range g.Elements {
		if typ == "" || e.Type == typ {
			elements = append(elements, e)
		}
	}
	return elements
}

// Validate checks element names, IDs and layer dimensions.
func (g *Geometry) Validate() error {
	ids := make(map[int]string, len(g.Elements))
	for i, e := range g.Elements {
		if e.Name == "" {
			return fmt.Errorf("element #%d: missing name", i)
		}
		if other, dup := ids[e.ID]; dup {
			return fmt.Errorf("element %q: ID %d already used by %q", e.Name, e.ID, other)
		}
		ids[e.ID] = e.Name

		if e.ZPlanar != nil {
			for j, l := range e.ZPlanar.Layers {
				if l.ZHalfSensitive < 0 || l.WidthSensitive < 0 || l.LadderNumber < 0 {
					return fmt.Errorf("element %q: layer %d: negative dimension", e.Name, j)
				}
			}
		}
		if e.ZDiskPetals != nil {
			for j, l := range e.ZDiskPetals.Layers {
				if l.LengthSensitive < 0 || l.WidthInnerSensitive < 0 || l.WidthOuterSensitive < 0 || l.PetalNumber < 0 {
					return fmt.Errorf("element %q: layer %d: negative dimension", e.Name, j)
				}
			}
		}
	}
	return nil
}

// ParseGeometry decodes and validates a YAML geometry description.
func ParseGeometry(r io.Reader) (*Geometry, error) {
	var geom Geometry
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&geom); err != nil {
		return nil, fmt.Errorf("could not decode geometry: %w", err)
	}

	if err := geom.Validate(); err != nil {
		return nil, fmt.Errorf("invalid geometry: %w", err)
	}
	return &geom, nil
}

// LoadGeometry reads a YAML geometry description from a file.
func LoadGeometry(path string) (*Geometry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	geom, err := ParseGeometry(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return geom, nil
}
