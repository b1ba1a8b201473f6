// Package entity contains the core business objects of the project.
package entity

import (
	"fmt"

	"github.com/paulmach/orb/geojson"
)

// Well-known property keys on drawing-toolkit features.
const (
	PropID            = "id"
	PropName          = "name"
	PropColor         = "color"
	PropSelected      = "selected"
	PropLocationType  = "locationType"
	PropCustomerCount = "customer_count"
)

// PersistedID returns properties.id of a toolkit feature, the only join key
// between toolkit-local and persisted representations.
func PersistedID(feature *geojson.Feature) (string, bool) {
	if feature == nil || feature.Properties == nil {
		return "", false
	}

	return stringID(feature.Properties[PropID])
}

// ToolkitID returns the toolkit-level feature id.
func ToolkitID(feature *geojson.Feature) (string, bool) {
	if feature == nil {
		return "", false
	}

	return stringID(feature.ID)
}

// FeatureLocationType returns the locationType tag of a point feature.
func FeatureLocationType(feature *geojson.Feature) (LocationType, bool) {
	if feature == nil || feature.Properties == nil {
		return "", false
	}
	raw, _ := feature.Properties[PropLocationType].(string)
	locationType := LocationType(raw)

	return locationType, locationType.IsValid()
}

func stringID(raw any) (string, bool) {
	switch id := raw.(type) {
	case nil:
		return "", false
	case string:
		return id, id != ""
	case float64:
		return fmt.Sprintf("%.0f", id), true
	case int:
		return fmt.Sprintf("%d", id), true
	case int64:
		return fmt.Sprintf("%d", id), true
	default:
		return fmt.Sprint(id), true
	}
}

// NormalizeID formats a remote id (string or JSON number) as the persisted id.
func NormalizeID(raw any) (string, bool) {
	return stringID(raw)
}
