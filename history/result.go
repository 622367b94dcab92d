package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ErrorMarker is the serialized form of a failed result.
const ErrorMarker = "Error"

// Result is either a finite number or the error marker.
// The zero value is the number 0.
type Result struct {
	value   float64
	isError bool
}

// Number returns a numeric result.
func Number(v float64) Result {
	return Result{value: v}
}

// ErrorResult returns the error marker.
func ErrorResult() Result {
	return Result{isError: true}
}

// IsNumber reports whether r holds a number.
func (r Result) IsNumber() bool {
	return !r.isError
}

// Float64 returns the numeric value, or 0 for the error marker.
func (r Result) Float64() float64 {
	if r.isError {
		return 0
	}

	return r.value
}

func (r Result) String() string {
	if r.isError {
		return ErrorMarker
	}

	return strconv.FormatFloat(r.value, 'g', -1, 64)
}

// MarshalJSON encodes a number as a JSON number and the marker as "Error".
func (r Result) MarshalJSON() ([]byte, error) {
	if r.isError {
		return []byte(`"` + ErrorMarker + `"`), nil
	}

	return json.Marshal(r.value)
}

// UnmarshalJSON accepts a JSON number or the string "Error".
func (r *Result) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != ErrorMarker {
			return fmt.Errorf("history: invalid result %q", s)
		}
		*r = ErrorResult()

		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("history: invalid result %s: %w", data, err)
	}
	*r = Number(v)

	return nil
}
