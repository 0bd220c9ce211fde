package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex() *StaticBlockIndex {
	return NewStaticBlockIndex([]BlockRecord{
		{Pincode: "411001", District: "Pune", Block: "Pune City", Lat: 18.5204, Lon: 73.8567},
		{Pincode: "412306", District: "Pune", Block: "Baramati", Lat: 18.1514, Lon: 74.5775},
		{Pincode: "415001", District: "Satara", Block: "Satara", Lat: 17.6868, Lon: 73.9957},
	})
}

func TestLookupPincode(t *testing.T) {
	idx := testIndex()

	block, ok := idx.LookupPincode("412306")
	require.True(t, ok)
	assert.Equal(t, "Baramati", block.Block)

	_, ok = idx.LookupPincode("999999")
	assert.False(t, ok)
}

func TestLookupNearest_PicksMinimumDistance(t *testing.T) {
	idx := testIndex()

	// A point a few km from Baramati.
	block, dist, ok := idx.LookupNearest(18.20, 74.60)
	require.True(t, ok)
	assert.Equal(t, "Baramati", block.Block)
	assert.Less(t, dist, 10.0)
}

func TestLookupNearest_AbsentBeyondRadius(t *testing.T) {
	idx := testIndex()

	// Delhi is far outside the 50 km radius of every catalog block.
	_, _, ok := idx.LookupNearest(28.61, 77.21)
	assert.False(t, ok)
}

func TestLookupNearest_TieBreaksByCatalogOrder(t *testing.T) {
	idx := NewStaticBlockIndex([]BlockRecord{
		{Pincode: "1", Block: "first", Lat: 18.0, Lon: 74.0},
		{Pincode: "2", Block: "second", Lat: 18.0, Lon: 74.0},
	})

	block, _, ok := idx.LookupNearest(18.0, 74.0)
	require.True(t, ok)
	assert.Equal(t, "first", block.Block)
}

func TestLookupNearest_EmptyCatalog(t *testing.T) {
	idx := NewStaticBlockIndex(nil)

	_, _, ok := idx.LookupNearest(18.0, 74.0)
	assert.False(t, ok)
}

func TestHaversine_KnownDistance(t *testing.T) {
	// Pune to Mumbai is roughly 120 km great-circle.
	d := Haversine(18.5204, 73.8567, 19.0760, 72.8777)
	assert.InDelta(t, 120, d, 10)

	assert.Zero(t, Haversine(18.5, 73.8, 18.5, 73.8))
}

func TestZoneForPincode(t *testing.T) {
	assert.Equal(t, "Western Maharashtra", ZoneForPincode("412306"))
	assert.Equal(t, "Marathwada", ZoneForPincode("431001"))
	assert.Equal(t, "Vidarbha", ZoneForPincode("440001"))
	assert.Equal(t, "General", ZoneForPincode("560001"))
	assert.Equal(t, "General", ZoneForPincode(""))
	assert.Equal(t, "General", ZoneForPincode("41"))
}
