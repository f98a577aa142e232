package trkhits

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArrayFlags(t *testing.T) {
	colls := &StringArrayFlags{Array: DefaultCollections}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(colls, "coll", "collections")

	require.NoError(t, fs.Parse(nil))
	assert.Equal(t, DefaultCollections, colls.Array)

	require.NoError(t, fs.Parse([]string{"-coll", "VXDCollection", "-coll", "FTDCollection, SITCollection"}))
	assert.Equal(t, []string{"VXDCollection", "FTDCollection", "SITCollection"}, colls.Array)
	assert.Equal(t, "VXDCollection,FTDCollection,SITCollection", colls.String())
	assert.Len(t, DefaultCollections, 5)

	assert.Error(t, colls.Set("a,,b"))
}
