package history

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestResult_JSON verifies numbers and the error marker encode as the persisted format expects.
func TestResult_JSON(t *testing.T) {
	data, err := json.Marshal([]Result{Number(2.5), ErrorResult(), Number(0)})
	require.NoError(t, err)
	require.JSONEq(t, `[2.5, "Error", 0]`, string(data))

	var out []Result
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 3)
	require.True(t, out[0].IsNumber())
	require.Equal(t, 2.5, out[0].Float64())
	require.False(t, out[1].IsNumber())
	require.Equal(t, 0.0, out[1].Float64())
	require.Equal(t, "Error", out[1].String())
	require.Equal(t, "2.5", out[0].String())
}

// TestResult_UnmarshalInvalid verifies anything but a number or "Error" is rejected.
func TestResult_UnmarshalInvalid(t *testing.T) {
	var r Result
	require.Error(t, json.Unmarshal([]byte(`"oops"`), &r))
	require.Error(t, json.Unmarshal([]byte(`true`), &r))
	require.Error(t, json.Unmarshal([]byte(`{}`), &r))
}

// TestCalculation_Constructors verifies Success and Failure shapes.
func TestCalculation_Constructors(t *testing.T) {
	ok := Success("1 + 1", 2)
	require.Equal(t, "1 + 1", ok.Expression)
	require.True(t, ok.Value.IsNumber())
	require.Empty(t, ok.Error)

	bad := Failure("1 / 0", "Division by zero")
	require.False(t, bad.Value.IsNumber())
	require.Equal(t, "Division by zero", bad.Error)
}
