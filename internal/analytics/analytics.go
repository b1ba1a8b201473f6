// Package analytics computes the derived spatial-analytics layers.
//
// Both transforms take a locations collection and a boundaries collection
// and return the boundary polygons annotated with aggregated scores. They
// never fail: empty, nil or malformed input degrades to an empty
// FeatureCollection.
package analytics

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Output property names.
const (
	PropTotalPopulation    = "totalPopulation"
	PropExpansionScore     = "expansionScore"
	PropExpansionRank      = "expansionRank"
	PropLocationCount      = "locationCount"
	PropAvgMarketPotential = "avgMarketPotential"
	PropAvgCompetition     = "avgCompetition"
)

// Expansion score weights.
const (
	populationScale   = 100000.0
	populationWeight  = 0.4
	marketWeight      = 0.4
	competitionWeight = 0.2
	rankedBoundaries  = 3
)

// aggregate is what one boundary accumulates from its contained points.
type aggregate struct {
	count       int
	population  float64
	market      float64
	competition float64
}

// PopulationAnalysis sums the population of the points inside each boundary
// polygon into totalPopulation.
func PopulationAnalysis(locations, boundaries *geojson.FeatureCollection) *geojson.FeatureCollection {
	polygons, aggregates, ok := aggregateBoundaries(locations, boundaries)
	if !ok {
		return geojson.NewFeatureCollection()
	}

	out := geojson.NewFeatureCollection()
	for idx, boundary := range polygons {
		feature := annotate(boundary)
		feature.Properties[PropTotalPopulation] = aggregates[idx].population
		out.Append(feature)
	}

	return out
}

// ExpansionAnalysis scores each boundary for expansion and ranks the top three.
//
//	score = 0.4*(population/100000) + 0.4*avg(market_potential) - 0.2*avg(competition)
//
// Boundaries with no contained point score 0. Ties keep input order.
func ExpansionAnalysis(locations, boundaries *geojson.FeatureCollection) *geojson.FeatureCollection {
	polygons, aggregates, ok := aggregateBoundaries(locations, boundaries)
	if !ok {
		return geojson.NewFeatureCollection()
	}

	scores := make([]float64, len(polygons))
	for idx, agg := range aggregates {
		scores[idx] = expansionScore(agg)
	}

	order := make([]int, len(polygons))
	for idx := range order {
		order[idx] = idx
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	ranks := make([]int, len(polygons))
	for position := 0; position < len(order) && position < rankedBoundaries; position++ {
		ranks[order[position]] = position + 1
	}

	out := geojson.NewFeatureCollection()
	for idx, boundary := range polygons {
		agg := aggregates[idx]
		feature := annotate(boundary)
		feature.Properties[PropExpansionScore] = scores[idx]
		feature.Properties[PropExpansionRank] = ranks[idx]
		feature.Properties[PropLocationCount] = agg.count
		feature.Properties[PropAvgMarketPotential] = average(agg.market, agg.count)
		feature.Properties[PropAvgCompetition] = average(agg.competition, agg.count)
		out.Append(feature)
	}

	return out
}

func expansionScore(agg aggregate) float64 {
	if agg.count == 0 {
		return 0
	}

	return populationWeight*(agg.population/populationScale) +
		marketWeight*average(agg.market, agg.count) -
		competitionWeight*average(agg.competition, agg.count)
}

func average(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}

	return sum / float64(count)
}

// aggregateBoundaries runs the point-in-polygon pass shared by both transforms.
// It returns false when either input is empty.
func aggregateBoundaries(locations, boundaries *geojson.FeatureCollection) ([]*geojson.Feature, []aggregate, bool) {
	if locations == nil || boundaries == nil || len(locations.Features) == 0 || len(boundaries.Features) == 0 {
		return nil, nil, false
	}

	polygons := polygonFeatures(boundaries)
	if len(polygons) == 0 {
		return nil, nil, false
	}

	grid := newPointGrid(collectSamples(locations), defaultCellSizeDeg)
	aggregates := make([]aggregate, len(polygons))

	for idx, boundary := range polygons {
		agg := &aggregates[idx]
		geometry := boundary.Geometry
		grid.within(geometry.Bound(), func(s *sample) {
			if !contains(geometry, s.point) {
				return
			}
			agg.count++
			agg.population += s.population
			agg.market += s.marketPotential
			agg.competition += s.competition
		})
	}

	return polygons, aggregates, true
}

// polygonFeatures keeps the Polygon and MultiPolygon boundary features.
func polygonFeatures(boundaries *geojson.FeatureCollection) []*geojson.Feature {
	polygons := make([]*geojson.Feature, 0, len(boundaries.Features))
	for _, feature := range boundaries.Features {
		if feature == nil {
			continue
		}
		switch feature.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
			polygons = append(polygons, feature)
		}
	}

	return polygons
}

func contains(geometry orb.Geometry, point orb.Point) bool {
	switch g := geometry.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, point)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, point)
	default:
		return false
	}
}

// annotate copies a boundary feature so the source layer stays untouched.
func annotate(boundary *geojson.Feature) *geojson.Feature {
	feature := geojson.NewFeature(boundary.Geometry)
	feature.ID = boundary.ID
	for key, value := range boundary.Properties {
		feature.Properties[key] = value
	}

	return feature
}
