package analytics

// Settings contains the thresholds used to classify test performance
type Settings struct {
	// TopperThreshold is the lowest average that counts as Topper (default: 85)
	TopperThreshold float64 `mapstructure:"topper_threshold"`
	// AverageThreshold is the lowest average that counts as Average (default: 50)
	AverageThreshold float64 `mapstructure:"average_threshold"`
	// StrongThreshold is the lowest subject percentage that counts as strong (default: 70)
	StrongThreshold float64 `mapstructure:"strong_threshold"`
	// PredictionSpread is the half width of the predicted score band (default: 5)
	PredictionSpread float64 `mapstructure:"prediction_spread"`
}

// DefaultSettings returns the default classification thresholds
func DefaultSettings() Settings {
	return Settings{
		TopperThreshold:  85,
		AverageThreshold: 50,
		StrongThreshold:  70,
		PredictionSpread: 5,
	}
}
