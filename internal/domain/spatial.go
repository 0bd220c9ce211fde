package domain

import "math"

// NearestRadiusKm bounds the nearest-block search. Points farther than this
// from every catalog block resolve to absent and callers supply defaults.
const NearestRadiusKm = 50.0

const earthRadiusKm = 6371.0

// BlockIndex resolves locations to administrative blocks. The static
// implementation scans linearly, which is fine at catalog sizes of tens of
// records; larger catalogs should swap in a bucketed or R-tree index behind
// this interface, keeping the minimum-distance and radius-cutoff contract.
type BlockIndex interface {
	// LookupPincode returns the block keyed by an exact pincode match.
	LookupPincode(pincode string) (BlockRecord, bool)

	// LookupNearest returns the catalog block closest to the point and its
	// great-circle distance in km, or false when no block lies within
	// NearestRadiusKm. Ties break toward the first record in catalog order.
	LookupNearest(lat, lon float64) (BlockRecord, float64, bool)
}

// StaticBlockIndex is an in-memory BlockIndex over an immutable catalog.
type StaticBlockIndex struct {
	records   []BlockRecord
	byPincode map[string]BlockRecord
}

// NewStaticBlockIndex builds an index over the given records. The slice is
// not copied; callers must not mutate it afterwards.
func NewStaticBlockIndex(records []BlockRecord) *StaticBlockIndex {
	byPincode := make(map[string]BlockRecord, len(records))
	for _, r := range records {
		if _, exists := byPincode[r.Pincode]; !exists {
			byPincode[r.Pincode] = r
		}
	}
	return &StaticBlockIndex{records: records, byPincode: byPincode}
}

func (idx *StaticBlockIndex) LookupPincode(pincode string) (BlockRecord, bool) {
	r, ok := idx.byPincode[pincode]
	return r, ok
}

func (idx *StaticBlockIndex) LookupNearest(lat, lon float64) (BlockRecord, float64, bool) {
	best := BlockRecord{}
	bestDist := math.Inf(1)
	found := false
	for _, r := range idx.records {
		d := Haversine(lat, lon, r.Lat, r.Lon)
		if d < bestDist {
			best = r
			bestDist = d
			found = true
		}
	}
	if !found || bestDist > NearestRadiusKm {
		return BlockRecord{}, 0, false
	}
	return best, bestDist, true
}

// Haversine returns the great-circle distance in kilometres between two
// WGS-84 coordinate pairs.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
