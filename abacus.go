// Package abacus is a scientific calculator library with persistent history.
//
// Expressions support the four arithmetic operators, exponentiation (^), modulo
// and percent (%), parentheses, implicit multiplication, the constants pi and e,
// and the functions sin, cos, tan, asin, acos, atan, sqrt, log, log10, exp,
// factorial and abs. Trigonometric functions honor an angle mode (degrees,
// radians or gradians).
//
// # Basic Usage
//
// One-shot evaluation:
//
//	v, err := abacus.Evaluate("sqrt(16) + 2^3")   // 12
//	v, err = abacus.EvaluateIn("sin(pi/2)", angle.Radians) // 1
//	fmt.Println(abacus.Format(v))
//
// An interactive session keeps a display, a pending expression, memory and
// a bounded history of calculations:
//
//	s, _ := abacus.NewSession()
//	s.AppendToDisplay("12")
//	s.AppendOperator("+")
//	s.AppendToDisplay("3")
//	item, _ := s.Calculate() // display "15", item recorded in history
//
// A session opened on disk survives restarts:
//
//	s, err := abacus.OpenSession("/var/lib/abacus")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
// # Package Structure
//
// This package provides top-level wrappers for the common cases. The engine,
// session, history, stats, keypad and convert packages offer finer control.
package abacus

import (
	"github.com/arloliu/abacus/angle"
	"github.com/arloliu/abacus/convert"
	"github.com/arloliu/abacus/engine"
	"github.com/arloliu/abacus/session"
	"github.com/arloliu/abacus/storage/badgerkv"
)

var defaultEngine = engine.Default()

// Evaluate evaluates expr with angles in degrees.
//
// Parameters:
//   - expr: The expression, e.g. "2 * (3 + 4)" or "log(8, 2)"
//
// Returns:
//   - float64: The finite result
//   - error: A *engine.Error; use errors.Is with the engine sentinels
//     (engine.ErrDivisionByZero, engine.ErrValidation, ...) to classify it
func Evaluate(expr string) (float64, error) {
	return defaultEngine.Evaluate(expr)
}

// EvaluateIn evaluates expr with angles in mode.
func EvaluateIn(expr string, mode angle.Mode) (float64, error) {
	return defaultEngine.EvaluateIn(expr, mode)
}

// Format renders a result the way the calculator display shows it.
//
// Magnitudes above 1e15 or below 1e-6 use exponent notation.
func Format(v float64) string {
	return engine.FormatResult(v)
}

// NewSession creates a session that keeps its state in memory only.
func NewSession(opts ...session.Option) (*session.Session, error) {
	return session.New(nil, opts...)
}

// StoredSession is a session persisted in a BadgerDB directory.
// Call Close to release the database.
type StoredSession struct {
	*session.Session
	store *badgerkv.Store
}

// OpenSession opens, or creates, a session persisted under dir.
//
// Parameters:
//   - dir: Database directory; created when missing
//   - opts: Session options (see session.Option)
//
// Returns:
//   - *StoredSession: The restored session
//   - error: The database could not be opened or an option is invalid
func OpenSession(dir string, opts ...session.Option) (*StoredSession, error) {
	store, err := badgerkv.Open(badgerkv.DefaultConfig(dir))
	if err != nil {
		return nil, err
	}

	s, err := session.New(store, opts...)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &StoredSession{Session: s, store: store}, nil
}

// Close closes the underlying database.
func (s *StoredSession) Close() error {
	return s.store.Close()
}

// Convert converts value between two units of the named category
// (length, weight, temperature, volume or area).
func Convert(value float64, from, to, category string) (convert.Conversion, error) {
	c, err := convert.ParseCategory(category)
	if err != nil {
		return convert.Conversion{}, err
	}

	return convert.Convert(value, from, to, c)
}
