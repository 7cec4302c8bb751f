package configuration

import (
	"errors"
	"fmt"

	"github.com/thermalkit/isp2go/internal/ui"
	"golang.org/x/exp/slices"
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	err := validateCalibration(config)
	if err != nil {
		return err
	}

	err = validateZones(config)
	if err != nil {
		return err
	}

	if config.Node == "" {
		return errors.New("node name must not be empty")
	}
	if config.MaxDevices <= 0 {
		return errors.New(fmt.Sprintf("maxDevices must be > 0, got %d", config.MaxDevices))
	}

	return nil
}

func validateCalibration(config *Configuration) error {
	var seen []string
	for _, function := range config.Calibration.Functions {
		if function.Name == "" {
			return errors.New("calibration function name must not be empty")
		}
		if slices.Contains(seen, function.Name) {
			return errors.New(fmt.Sprintf("duplicate calibration function: %s", function.Name))
		}
		seen = append(seen, function.Name)

		if len(function.Ranges) <= 0 {
			ui.Warning("Calibration function %s has no ranges, translation will be unavailable", function.Name)
		}

		for idx, r := range function.Ranges {
			if r.MaxFps <= 0 {
				return errors.New(fmt.Sprintf("calibration function %s: range %d has no frame rate ceiling", function.Name, idx))
			}
		}
	}

	return nil
}

func validateZones(config *Configuration) error {
	var seen []string
	for _, zone := range config.Zones {
		if zone.Name == "" {
			return errors.New("zone name must not be empty")
		}
		if slices.Contains(seen, zone.Name) {
			return errors.New(fmt.Sprintf("duplicate zone: %s", zone.Name))
		}
		seen = append(seen, zone.Name)

		if zone.Trips < 0 {
			return errors.New(fmt.Sprintf("zone %s: trips must be >= 0", zone.Name))
		}

		if !hasCalibrationFunction(config, zone.Name) {
			ui.Warning("Zone %s has no matching calibration function, trip bounds will not be seeded", zone.Name)
		}
	}

	return nil
}

func hasCalibrationFunction(config *Configuration, name string) bool {
	for _, function := range config.Calibration.Functions {
		if function.Name == name {
			return true
		}
	}

	return false
}
