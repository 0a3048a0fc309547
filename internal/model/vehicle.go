package model

import "strings"

// Vehicle represents the decoded attributes of a single VIN.
// An empty string means the decoding API did not report the value.
type Vehicle struct {
	VIN               string `json:"vin"`
	Make              string `json:"make"`
	Model             string `json:"model"`
	ModelYear         string `json:"model_year"`
	BodyClass         string `json:"body_class"`
	FuelTypePrimary   string `json:"fuel_type_primary"`
	DriveType         string `json:"drive_type"`
	EngineModel       string `json:"engine_model"`
	EngineCylinders   string `json:"engine_cylinders"`
	EngineHP          string `json:"engine_hp"`
	DisplacementCC    string `json:"displacement_cc"`
	SuggestedVIN      string `json:"suggested_vin"`
	TransmissionStyle string `json:"transmission_style"`
}

// Ref returns the make/model/year triple used by the image search
func (v *Vehicle) Ref() VehicleRef {
	if v == nil {
		return VehicleRef{}
	}
	return VehicleRef{
		Make:  v.Make,
		Model: v.Model,
		Year:  v.ModelYear,
	}
}

// VehicleRef identifies a decoded vehicle for the image search
type VehicleRef struct {
	Make  string
	Model string
	Year  string
}

// Complete reports whether make, model and year are all present
func (r VehicleRef) Complete() bool {
	return strings.TrimSpace(r.Make) != "" &&
		strings.TrimSpace(r.Model) != "" &&
		strings.TrimSpace(r.Year) != ""
}

// Line is one labeled value of the decode display
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
