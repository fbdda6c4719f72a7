package domain

// Built-in defaults, applied when no stored settings exist and no
// configuration override is provided.
const (
	DefaultRestTimerSeconds = 75
	DefaultWeightIncrement  = 5.0

	// Pounds-to-kilograms conversion used for metric display.
	KgConversionFactor = 0.453592
)

// Settings are the single user's tunables. Weights are stored in pounds;
// UseMetric only affects display conversion.
type Settings struct {
	RestTimerSeconds int     `bson:"restTimerSeconds" json:"restTimerSeconds"`
	WeightIncrement  float64 `bson:"weightIncrement" json:"weightIncrement"`
	UseMetric        bool    `bson:"useMetric" json:"useMetric"`
}

// DisplayWeight converts a stored weight to the unit the user wants to see.
func (s Settings) DisplayWeight(lbs float64) float64 {
	if s.UseMetric {
		return lbs * KgConversionFactor
	}
	return lbs
}

// WeightUnit returns the display unit label.
func (s Settings) WeightUnit() string {
	if s.UseMetric {
		return "kg"
	}
	return "lbs"
}
