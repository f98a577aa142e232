package trkhits

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGeometry(t *testing.T) {
	geom, err := LoadGeometry("testdata/geometry.yaml")
	require.NoError(t, err)

	assert.Equal(t, "test_tracker_v01", geom.Detector)
	assert.Equal(t, "system:5,side:-2,layer:9,module:8,sensor:8", geom.CellIDEncoding)
	require.Len(t, geom.Elements, 4)

	trackers := geom.Select("tracker")
	require.Len(t, trackers, 3)
	assert.Equal(t, "VXD", trackers[0].Name)
	assert.Equal(t, "FTD", trackers[1].Name)
	assert.Equal(t, "TPC", trackers[2].Name)

	assert.Len(t, geom.Select(""), 4)
	assert.Empty(t, geom.Select("muon"))
}

func TestLayering(t *testing.T) {
	geom, err := LoadGeometry("testdata/geometry.yaml")
	require.NoError(t, err)

	shape, layers := geom.Elements[0].Layering()
	assert.Equal(t, ShapeZPlanar, shape)
	require.Len(t, layers, 2)
	assert.Equal(t, 0, layers[0].Index)
	assert.InDelta(t, 137.5, layers[0].Area, 1e-9)
	assert.Equal(t, 1, layers[1].Index)
	assert.InDelta(t, 165., layers[1].Area, 1e-9)

	shape, layers = geom.Elements[1].Layering()
	assert.Equal(t, ShapeZDiskPetals, shape)
	require.Len(t, layers, 1)
	assert.InDelta(t, 640., layers[0].Area, 1e-9)

	shape, layers = geom.Elements[2].Layering()
	assert.Equal(t, ShapeUnknown, shape)
	assert.Empty(t, layers)
}

func TestLayeringPrefersZPlanar(t *testing.T) {
	e := Element{
		Name:        "SIT",
		ZPlanar:     &ZPlanarData{Layers: []ZPlanarLayer{{ZHalfSensitive: 5, WidthSensitive: 10, LadderNumber: 1}}},
		ZDiskPetals: &ZDiskPetalsData{Layers: []ZDiskPetalsLayer{{LengthSensitive: 1, PetalNumber: 1}}},
	}
	shape, layers := e.Layering()
	assert.Equal(t, ShapeZPlanar, shape)
	require.Len(t, layers, 1)
	assert.InDelta(t, 1., layers[0].Area, 1e-12)
}

func TestParseGeometryErrors(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		errMsg string
	}{
		{
			name:   "duplicate id",
			yaml:   "elements:\n  - {name: A, id: 1}\n  - {name: B, id: 1}\n",
			errMsg: `ID 1 already used by "A"`,
		},
		{
			name:   "missing name",
			yaml:   "elements:\n  - {id: 1}\n",
			errMsg: "missing name",
		},
		{
			name:   "negative width",
			yaml:   "elements:\n  - name: A\n    zplanar:\n      layers:\n        - {zHalfSensitive: 1, widthSensitive: -1, ladderNumber: 2}\n",
			errMsg: "negative dimension",
		},
		{
			name:   "negative petals",
			yaml:   "elements:\n  - name: A\n    zdiskpetals:\n      layers:\n        - {lengthSensitive: 1, petalNumber: -3}\n",
			errMsg: "negative dimension",
		},
		{
			name:   "unknown field",
			yaml:   "elements:\n  - {name: A, id: 1, ladders: 3}\n",
			errMsg: "ladders",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGeometry(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadGeometryMissingFile(t *testing.T) {
	_, err := LoadGeometry("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}
