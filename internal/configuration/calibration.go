package configuration

// CalibrationConfig carries the named calibration function blocks supplied by
// the platform vendor, the userspace stand-in for the ECT AP_THERMAL block.
type CalibrationConfig struct {
	Functions []FunctionConfig `json:"functions"`
}

type FunctionConfig struct {
	Name   string        `json:"name"`
	Ranges []RangeConfig `json:"ranges"`
}

// RangeConfig is a single calibration range. Declaration order matters, the
// throttle table is built by walking the ranges in the order given here.
type RangeConfig struct {
	// LowerBound is the lower bound temperature of the range in °C.
	LowerBound int `json:"lowerBound"`
	// MaxFps is the frame rate ceiling that applies while this range is active.
	MaxFps uint `json:"maxFps"`
}

type ZoneConfig struct {
	Name string `json:"name"`
	// Trips is the number of trip point instances this zone binds to a
	// registered cooling device.
	Trips int `json:"trips"`
}
