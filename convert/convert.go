// Package convert converts values between units of the same physical category.
//
// Linear categories convert through a base unit (meter, kilogram, liter, square
// meter). Temperature converts through Celsius.
package convert

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/abacus/engine"
)

// Category groups units that convert into each other.
type Category string

const (
	Length      Category = "length"
	Weight      Category = "weight"
	Temperature Category = "temperature"
	Volume      Category = "volume"
	Area        Category = "area"
)

var (
	ErrUnknownCategory = errors.New("convert: unknown category")
	ErrUnknownUnit     = errors.New("convert: unknown unit")
)

// Unit describes one unit of a category. ToBase is the base-unit amount in one unit.
type Unit struct {
	Key    string  `json:"key"`
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	ToBase float64 `json:"toBase"`
}

// Conversion is the outcome of Convert.
type Conversion struct {
	Value    float64  `json:"value"`
	From     string   `json:"fromUnit"`
	To       string   `json:"toUnit"`
	Category Category `json:"category"`
}

// String renders the converted value followed by the target unit key.
func (c Conversion) String() string {
	return engine.FormatResult(c.Value) + " " + c.To
}

var categories = []Category{Length, Weight, Temperature, Volume, Area}

var tables = map[Category][]Unit{
	Length: {
		{"m", "m", "Meter", 1},
		{"km", "km", "Kilometer", 1000},
		{"cm", "cm", "Centimeter", 0.01},
		{"mm", "mm", "Millimeter", 0.001},
		{"mi", "mi", "Mile", 1609.34},
		{"yd", "yd", "Yard", 0.9144},
		{"ft", "ft", "Foot", 0.3048},
		{"in", "in", "Inch", 0.0254},
	},
	Weight: {
		{"kg", "kg", "Kilogram", 1},
		{"g", "g", "Gram", 0.001},
		{"mg", "mg", "Milligram", 0.000001},
		{"lb", "lb", "Pound", 0.453592},
		{"oz", "oz", "Ounce", 0.0283495},
		{"ton", "ton", "Metric Ton", 1000},
	},
	Temperature: {
		{"C", "°C", "Celsius", 1},
		{"F", "°F", "Fahrenheit", 5.0 / 9.0},
		{"K", "K", "Kelvin", 1},
	},
	Volume: {
		{"l", "L", "Liter", 1},
		{"ml", "mL", "Milliliter", 0.001},
		{"m3", "m³", "Cubic Meter", 1000},
		{"gal", "gal", "Gallon", 3.78541},
		{"qt", "qt", "Quart", 0.946353},
		{"pt", "pt", "Pint", 0.473176},
		{"cup", "cup", "Cup", 0.236588},
	},
	Area: {
		{"m2", "m²", "Square Meter", 1},
		{"km2", "km²", "Square Kilometer", 1000000},
		{"ha", "ha", "Hectare", 10000},
		{"acre", "acre", "Acre", 4046.86},
		{"ft2", "ft²", "Square Foot", 0.092903},
	},
}

// Categories returns the supported categories in display order.
func Categories() []Category {
	return slices.Clone(categories)
}

// ParseCategory resolves a category name, ignoring case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tables[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}

	return c, nil
}

// Units returns the units of category in display order.
func Units(category Category) ([]Unit, error) {
	units, ok := tables[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	return slices.Clone(units), nil
}

// Lookup returns the unit with key in category. Keys are case-sensitive.
func Lookup(category Category, key string) (Unit, error) {
	units, err := Units(category)
	if err != nil {
		return Unit{}, err
	}
	for _, u := range units {
		if u.Key == key {
			return u, nil
		}
	}

	return Unit{}, fmt.Errorf("%w: %q in %s", ErrUnknownUnit, key, category)
}

// Convert converts value from one unit to another within category.
func Convert(value float64, from, to string, category Category) (Conversion, error) {
	fromUnit, err := Lookup(category, from)
	if err != nil {
		return Conversion{}, err
	}
	toUnit, err := Lookup(category, to)
	if err != nil {
		return Conversion{}, err
	}

	var result float64
	if category == Temperature {
		result = fromCelsius(toCelsius(value, fromUnit.Key), toUnit.Key)
	} else {
		result = value * fromUnit.ToBase / toUnit.ToBase
	}

	return Conversion{Value: result, From: from, To: to, Category: category}, nil
}

func toCelsius(v float64, unit string) float64 {
	switch unit {
	case "F":
		return (v - 32) * 5 / 9
	case "K":
		return v - 273.15
	default:
		return v
	}
}

func fromCelsius(c float64, unit string) float64 {
	switch unit {
	case "F":
		return c*9/5 + 32
	case "K":
		return c + 273.15
	default:
		return c
	}
}
