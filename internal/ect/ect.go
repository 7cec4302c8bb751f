package ect

import (
	"errors"

	"github.com/thermalkit/isp2go/internal/configuration"
)

// FunctionISP is the calibration function the ISP cooling device is built from.
const FunctionISP = "ISP"

var (
	// ErrBlockUnavailable indicates that no calibration data block was supplied at all.
	ErrBlockUnavailable = errors.New("calibration block unavailable")
	// ErrFunctionUnavailable indicates that the requested function is missing from the block.
	ErrFunctionUnavailable = errors.New("calibration function unavailable")
)

// Range is one calibration range of a thermal function.
type Range struct {
	// LowerBound is the lower bound temperature of the range in °C.
	LowerBound int
	// MaxFps is the frame rate ceiling for this range.
	MaxFps uint
}

// Function is a named, ordered list of calibration ranges.
type Function struct {
	Name   string
	Ranges []Range
}

// Provider answers named lookups into the thermal calibration block.
type Provider interface {
	// Function returns the calibration function with the given name.
	Function(name string) (*Function, error)
}

type configProvider struct {
	functions map[string]*Function
}

// NewProvider builds a Provider backed by the calibration section of the
// configuration. An empty calibration section models a missing data block.
func NewProvider(config configuration.CalibrationConfig) Provider {
	if len(config.Functions) <= 0 {
		return &configProvider{}
	}

	functions := map[string]*Function{}
	for _, functionConfig := range config.Functions {
		function := &Function{
			Name: functionConfig.Name,
		}
		for _, rangeConfig := range functionConfig.Ranges {
			function.Ranges = append(function.Ranges, Range{
				LowerBound: rangeConfig.LowerBound,
				MaxFps:     rangeConfig.MaxFps,
			})
		}
		functions[function.Name] = function
	}

	return &configProvider{
		functions: functions,
	}
}

func (p *configProvider) Function(name string) (*Function, error) {
	if p.functions == nil {
		return nil, ErrBlockUnavailable
	}

	function, exists := p.functions[name]
	if !exists {
		return nil, ErrFunctionUnavailable
	}

	return function, nil
}
