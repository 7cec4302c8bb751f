package configuration

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// calibrationRangeHookFunc returns a mapstructure decode hook that accepts a
// compact single-pair form for calibration ranges:
//
//	ranges:
//	  - 40: 60
//
// as shorthand for
//
//	ranges:
//	  - lowerBound: 40
//	    maxFps: 60
//
// The long form passes through untouched.
func calibrationRangeHookFunc() mapstructure.DecodeHookFuncType {
	rangeType := reflect.TypeOf(RangeConfig{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != rangeType {
			return data, nil
		}

		pairs, ok := toStringKeyedMap(data)
		if !ok {
			return data, nil
		}

		if hasRangeKeys(pairs) {
			return data, nil
		}

		if len(pairs) != 1 {
			return nil, fmt.Errorf("calibration range must be either {lowerBound, maxFps} or a single 'temperature: fps' pair, got %v", data)
		}

		for key, value := range pairs {
			lowerBound, err := strconv.Atoi(key)
			if err != nil {
				return nil, fmt.Errorf("calibration range key %q is not a temperature: %w", key, err)
			}
			return map[string]interface{}{
				"lowerBound": lowerBound,
				"maxFps":     value,
			}, nil
		}

		return data, nil
	}
}

func toStringKeyedMap(data interface{}) (map[string]interface{}, bool) {
	switch m := data.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		result := map[string]interface{}{}
		for key, value := range m {
			result[fmt.Sprintf("%v", key)] = value
		}
		return result, true
	}
	return nil, false
}

func hasRangeKeys(pairs map[string]interface{}) bool {
	for key := range pairs {
		if _, err := strconv.Atoi(key); err != nil {
			return true
		}
	}
	return false
}
