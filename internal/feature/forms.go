package feature

import (
	"github.com/go-playground/validator/v10"
)

// TerritoryForm is the submitted territory-detail form.
type TerritoryForm struct {
	ScratchID     string `json:"scratchId" validate:"required"`
	Name          string `json:"name" validate:"required,max=200"`
	Description   string `json:"description" validate:"max=2000"`
	Color         string `json:"color" validate:"omitempty,hexcolor"`
	CustomerCount int    `json:"customerCount" validate:"gte=0"`
}

// LocationForm is the submitted location-detail form.
type LocationForm struct {
	ScratchID  string         `json:"scratchId" validate:"required"`
	Name       string         `json:"name" validate:"required,max=200"`
	Properties map[string]any `json:"properties"`
}

// newValidator returns the form validator.
func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}
