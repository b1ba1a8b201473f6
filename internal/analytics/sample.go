package analytics

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Competition levels and their scores.
const (
	competitionHigh   = 3.0
	competitionMedium = 2.0
	competitionLow    = 1.0
)

// sample is the numeric view of one location point.
type sample struct {
	point           orb.Point
	population      float64
	marketPotential float64
	competition     float64
}

// collectSamples extracts Point features; everything else is ignored.
func collectSamples(locations *geojson.FeatureCollection) []sample {
	if locations == nil {
		return nil
	}

	samples := make([]sample, 0, len(locations.Features))
	for _, feature := range locations.Features {
		if feature == nil {
			continue
		}
		point, ok := feature.Geometry.(orb.Point)
		if !ok {
			continue
		}

		samples = append(samples, sample{
			point:           point,
			population:      population(feature.Properties),
			marketPotential: nestedNumber(feature.Properties, "business_metrics", "market_potential"),
			competition:     competitionScore(feature.Properties),
		})
	}

	return samples
}

func population(props geojson.Properties) float64 {
	if value, ok := numberValue(props["population"]); ok {
		return value
	}

	return nestedNumber(props, "demographics", "population")
}

func competitionScore(props geojson.Properties) float64 {
	metrics, _ := props["business_metrics"].(map[string]any)
	level, _ := metrics["competition_level"].(string)

	switch strings.ToLower(strings.TrimSpace(level)) {
	case "high":
		return competitionHigh
	case "medium":
		return competitionMedium
	case "low":
		return competitionLow
	default:
		return 0
	}
}

func nestedNumber(props geojson.Properties, object, key string) float64 {
	nested, ok := props[object].(map[string]any)
	if !ok {
		return 0
	}
	value, _ := numberValue(nested[key])

	return value
}

// numberValue accepts the numeric shapes JSON decoding and form input produce.
func numberValue(raw any) (float64, bool) {
	switch value := raw.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case json.Number:
		parsed, err := value.Float64()

		return parsed, err == nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)

		return parsed, err == nil
	default:
		return 0, false
	}
}
