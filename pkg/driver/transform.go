package driver

import (
	"fmt"
	"strconv"
	"strings"
)

// Float parses the raw wire value as a float64.
func Float(value interface{}) (interface{}, error) {
	return AsFloat64(value)
}

// Int parses the raw wire value as an int64.
func Int(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	default:
		return nil, fmt.Errorf("cannot parse %T as int", value)
	}
}

// Scale multiplies a numeric value by factor. Read and write directions
// use reciprocal factors, e.g. Scale(0.1) on read, Scale(10) on write.
func Scale(factor float64) Transform {
	return func(value interface{}) (interface{}, error) {
		f, err := AsFloat64(value)
		if err != nil {
			return nil, err
		}
		return f * factor, nil
	}
}

// AsFloat64 coerces wire and caller values to float64.
func AsFloat64(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("cannot parse %T as float", value)
	}
}
