package analytics

import "github.com/paulmach/orb/geojson"

// Result holds both derived collections.
type Result struct {
	Population *geojson.FeatureCollection
	Expansion  *geojson.FeatureCollection
}

// Memo caches the derived collections for the last input key. Callers build
// the key from the revisions of the source layers only, so layer config
// changes (opacity, visibility) never trigger a recompute.
type Memo[K comparable] struct {
	valid        bool
	key          K
	result       Result
	computations int
}

// Get returns the cached result for key or computes it from inputs.
func (m *Memo[K]) Get(key K, inputs func() (locations, boundaries *geojson.FeatureCollection)) Result {
	if m.valid && m.key == key {
		return m.result
	}

	locations, boundaries := inputs()
	m.result = Result{
		Population: PopulationAnalysis(locations, boundaries),
		Expansion:  ExpansionAnalysis(locations, boundaries),
	}
	m.key = key
	m.valid = true
	m.computations++

	return m.result
}

// Computations reports how many times the transforms actually ran.
func (m *Memo[K]) Computations() int {
	return m.computations
}
