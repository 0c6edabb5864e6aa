package domain

const (
	gramsPerKg = 1000.0
	gramsPerLb = 453.59237
)

// ConvertGrams converts a weight in grams to "g", "kg" or "lb".
// Returns the gram value unchanged if the unit is unrecognised.
func ConvertGrams(grams int, unit string) float64 {
	switch unit {
	case "kg":
		return float64(grams) / gramsPerKg
	case "lb":
		return float64(grams) / gramsPerLb
	}
	return float64(grams)
}

// ValidUnit reports whether unit is accepted by ConvertGrams.
func ValidUnit(unit string) bool {
	return unit == "g" || unit == "kg" || unit == "lb"
}
