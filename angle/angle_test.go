package angle

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMode_String verifies the text form of each mode.
func TestMode_String(t *testing.T) {
	require.Equal(t, "deg", Degrees.String())
	require.Equal(t, "rad", Radians.String())
	require.Equal(t, "grad", Gradians.String())
	require.Equal(t, "unknown", Mode(0).String())
}

// TestMode_Factors verifies the radian conversion factors are inverses.
func TestMode_Factors(t *testing.T) {
	require.InDelta(t, math.Pi/180, Degrees.ToRadians(), 1e-15)
	require.InDelta(t, 1.0, Radians.ToRadians(), 0)
	require.InDelta(t, math.Pi/200, Gradians.ToRadians(), 1e-15)

	for _, m := range []Mode{Degrees, Radians, Gradians} {
		require.InDelta(t, 1.0, m.ToRadians()*m.FromRadians(), 1e-12, m.String())
	}

	// The zero value behaves like Degrees.
	require.Equal(t, Degrees.ToRadians(), Mode(0).ToRadians())
	require.Equal(t, Degrees, Mode(0).Normalize())
}

// TestParse verifies accepted spellings and rejection of unknown modes.
func TestParse(t *testing.T) {
	tests := map[string]Mode{"deg": Degrees, "RAD": Radians, " grad ": Gradians, "degrees": Degrees, "gon": Gradians}
	for in, want := range tests {
		got, err := Parse(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := Parse("turns")
	require.Error(t, err)
}

// TestMode_JSON verifies modes serialize as their text form.
func TestMode_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Mode Mode `json:"angleMode"`
	}{Radians})
	require.NoError(t, err)
	require.JSONEq(t, `{"angleMode":"rad"}`, string(data))

	var out struct {
		Mode Mode `json:"angleMode"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"angleMode":"grad"}`), &out))
	require.Equal(t, Gradians, out.Mode)

	_, err = json.Marshal(Mode(9))
	require.Error(t, err)
}
