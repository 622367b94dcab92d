package abacus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/abacus/angle"
	"github.com/arloliu/abacus/convert"
	"github.com/arloliu/abacus/engine"
)

// TestEvaluate verifies the default degree-mode evaluation.
func TestEvaluate(t *testing.T) {
	v, err := Evaluate("sqrt(16) + 2^3")
	require.NoError(t, err)
	require.Equal(t, 12.0, v)

	v, err = Evaluate("cos(60)")
	require.NoError(t, err)
	require.Equal(t, 0.5, v)

	_, err = Evaluate("log(-1)")
	require.ErrorIs(t, err, engine.ErrNonPositiveLog)
}

// TestEvaluateIn verifies the angle mode is honored.
func TestEvaluateIn(t *testing.T) {
	v, err := EvaluateIn("sin(pi/2)", angle.Radians)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)

	v, err = EvaluateIn("sin(100)", angle.Gradians)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

// TestFormat verifies display formatting.
func TestFormat(t *testing.T) {
	require.Equal(t, "15", Format(15))
	require.Equal(t, "1e-7", Format(0.0000001))
	require.Equal(t, "1e+16", Format(1e16))
}

// TestNewSession verifies an in-memory session calculates and records.
func TestNewSession(t *testing.T) {
	s, err := NewSession()
	require.NoError(t, err)

	s.AppendToDisplay("12")
	s.AppendOperator("+")
	s.AppendToDisplay("3")
	item, err := s.Calculate()
	require.NoError(t, err)
	require.Equal(t, "12 + 3", item.Expression)
	require.Equal(t, "15", s.Display())
}

// TestOpenSession verifies state survives reopening the directory.
func TestOpenSession(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenSession(dir)
	require.NoError(t, err)
	require.NoError(t, s.SetAngleMode(angle.Radians))
	s.MemoryStore(7)
	_, err = s.Submit("2 ^ 8")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = OpenSession(dir)
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, angle.Radians, s.AngleMode())
	require.Equal(t, 7.0, s.Memory())
	require.Len(t, s.History(), 1)
	require.Equal(t, "2 ^ 8", s.History()[0].Expression)
}

// TestConvert verifies category names are resolved.
func TestConvert(t *testing.T) {
	c, err := Convert(1, "kg", "g", "weight")
	require.NoError(t, err)
	require.Equal(t, 1000.0, c.Value)

	_, err = Convert(1, "kg", "g", "mass")
	require.ErrorIs(t, err, convert.ErrUnknownCategory)
}
