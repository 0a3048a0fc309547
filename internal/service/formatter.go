package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jjenkins/vinlookup/internal/model"
)

// NotAvailable is rendered for any value the API did not report
const NotAvailable = "N/A"

// FormatVehicle returns the display lines for a decoded vehicle in their fixed order
func FormatVehicle(v *model.Vehicle) []model.Line {
	if v == nil {
		v = &model.Vehicle{}
	}

	return []model.Line{
		{Label: "Make", Value: orNA(v.Make)},
		{Label: "Model", Value: orNA(v.Model)},
		{Label: "Year", Value: orNA(v.ModelYear)},
		{Label: "Body", Value: orNA(v.BodyClass)},
		{Label: "Fuel", Value: orNA(v.FuelTypePrimary)},
		{Label: "Drive", Value: orNA(v.DriveType)},
		{Label: "Engine", Value: FormatEngine(v)},
		{Label: "Displacement", Value: FormatDisplacement(v.DisplacementCC)},
		{Label: "Transmission", Value: orNA(v.TransmissionStyle)},
		{Label: "Suggested VIN", Value: orNA(v.SuggestedVIN)},
	}
}

// FormatEngine composes "{model} ({cylinders} cyl, {hp} HP)"
func FormatEngine(v *model.Vehicle) string {
	if v == nil {
		return NotAvailable
	}
	if isBlank(v.EngineModel) && isBlank(v.EngineCylinders) && isBlank(v.EngineHP) {
		return NotAvailable
	}
	return fmt.Sprintf("%s (%s cyl, %s HP)", orNA(v.EngineModel), orNA(v.EngineCylinders), orNA(v.EngineHP))
}

// FormatDisplacement converts whole cubic centimeters to liters with one decimal
func FormatDisplacement(cc string) string {
	n, err := strconv.Atoi(strings.TrimSpace(cc))
	if err != nil {
		return NotAvailable
	}
	liters := math.Round(float64(n)/100) / 10
	return fmt.Sprintf("%.1fL", liters)
}

func orNA(s string) string {
	if isBlank(s) {
		return NotAvailable
	}
	return s
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
