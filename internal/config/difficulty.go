package config

// DifficultyManager advances the speed multiplier on the coarse cadence.
// The ramp is linear and has no ceiling.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	if cfg.SpeedStep < 0 {
		cfg.SpeedStep = 0
	}
	return &DifficultyManager{cfg: cfg}
}

// SetEnabled enables or disables the ramp.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether the multiplier grows over time.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.SpeedStep > 0
}

// Step returns the per-interval increase, zero when disabled.
func (d *DifficultyManager) Step() float64 {
	if !d.IsEnabled() {
		return 0
	}
	return d.cfg.SpeedStep
}

// Next returns the multiplier after one accrue interval.
func (d *DifficultyManager) Next(multiplier float64) float64 {
	return multiplier + d.Step()
}
