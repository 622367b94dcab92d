// Package keypad maps calculator buttons and keyboard keys onto session events.
package keypad

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/abacus/engine"
	"github.com/arloliu/abacus/session"
	"github.com/arloliu/abacus/validate"
)

// Kind classifies a token.
type Kind uint8

const (
	Number Kind = iota + 1
	Operator
	Function
	Special
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Operator:
		return "operator"
	case Function:
		return "function"
	case Special:
		return "special"
	default:
		return "unknown"
	}
}

// Token is one calculator input.
type Token struct {
	Kind  Kind
	Value string
}

// Button is a labelled token on the keypad.
type Button struct {
	Label string
	Token Token
}

var (
	ErrUnknownToken = errors.New("keypad: unknown token")
	ErrNotANumber   = errors.New("keypad: display is not a number")
)

// wrappingFunctions wrap the display in a call: "f(" on a fresh display, "f(x)" otherwise.
var wrappingFunctions = map[string]string{
	"sin":   "sin",
	"cos":   "cos",
	"tan":   "tan",
	"sqrt":  "sqrt",
	"log":   "log",
	"log10": "log10",
	"!":     "factorial",
}

var layout = [][]Button{
	{
		{"MC", Token{Special, "MC"}},
		{"MR", Token{Special, "MR"}},
		{"M+", Token{Special, "M+"}},
		{"M-", Token{Special, "M-"}},
		{"MS", Token{Special, "MS"}},
	},
	{
		{"sin", Token{Function, "sin"}},
		{"cos", Token{Function, "cos"}},
		{"tan", Token{Function, "tan"}},
		{"√", Token{Function, "sqrt"}},
		{"x²", Token{Function, "^2"}},
	},
	{
		{"ln", Token{Function, "log"}},
		{"log", Token{Function, "log10"}},
		{"π", Token{Function, "pi"}},
		{"e", Token{Function, "e"}},
		{"x!", Token{Function, "!"}},
	},
	{
		{"C", Token{Special, "clear"}},
		{"⌫", Token{Special, "backspace"}},
		{"(", Token{Operator, "("}},
		{")", Token{Operator, ")"}},
		{"÷", Token{Operator, "/"}},
	},
	{
		{"7", Token{Number, "7"}},
		{"8", Token{Number, "8"}},
		{"9", Token{Number, "9"}},
		{"×", Token{Operator, "*"}},
		{"xʸ", Token{Operator, "^"}},
	},
	{
		{"4", Token{Number, "4"}},
		{"5", Token{Number, "5"}},
		{"6", Token{Number, "6"}},
		{"−", Token{Operator, "-"}},
		{"1/x", Token{Function, "inverse"}},
	},
	{
		{"1", Token{Number, "1"}},
		{"2", Token{Number, "2"}},
		{"3", Token{Number, "3"}},
		{"+", Token{Operator, "+"}},
		{"±", Token{Function, "negate"}},
	},
	{
		{"0", Token{Number, "0"}},
		{".", Token{Number, "."}},
		{"=", Token{Special, "="}},
	},
}

// Layout returns the button rows, top to bottom. The result is a copy.
func Layout() [][]Button {
	rows := make([][]Button, len(layout))
	for i, row := range layout {
		rows[i] = append([]Button(nil), row...)
	}

	return rows
}

// Dispatch applies t to s.
//
// The error from "=" is the evaluation error, already reflected in the session.
// Tokens that need a numeric display (memory, inverse, negate) return
// ErrNotANumber and leave the session untouched when the display does not parse.
func Dispatch(s *session.Session, t Token) error {
	switch t.Kind {
	case Number:
		s.AppendToDisplay(t.Value)
		return nil
	case Operator:
		if t.Value == "(" || t.Value == ")" {
			s.AppendToDisplay(t.Value)
		} else {
			s.AppendOperator(t.Value)
		}

		return nil
	case Function:
		return dispatchFunction(s, t.Value)
	case Special:
		return dispatchSpecial(s, t.Value)
	default:
		return fmt.Errorf("%w: %+v", ErrUnknownToken, t)
	}
}

func dispatchFunction(s *session.Session, fn string) error {
	if name, ok := wrappingFunctions[fn]; ok {
		display := s.Display()
		if display == "0" {
			s.SetDisplay(name + "(")
		} else {
			s.SetDisplay(name + "(" + display + ")")
		}

		return nil
	}

	switch fn {
	case "^2":
		s.AppendOperator("^")
		s.SetDisplay("2")
	case "pi", "e":
		s.SetDisplay(fn)
	case "inverse":
		v, err := displayValue(s)
		if err != nil {
			return err
		}
		if v != 0 {
			s.SetDisplay(engine.FormatResult(1 / v))
		}
	case "negate":
		if s.Display() == "0" {
			return nil
		}
		v, err := displayValue(s)
		if err != nil {
			return err
		}
		s.SetDisplay(engine.FormatResult(-v))
	default:
		return fmt.Errorf("%w: function %q", ErrUnknownToken, fn)
	}

	return nil
}

func dispatchSpecial(s *session.Session, action string) error {
	switch action {
	case "clear":
		s.Clear()
	case "backspace":
		s.Backspace()
	case "=":
		_, err := s.Calculate()
		return err
	case "MC":
		s.MemoryClear()
	case "MR":
		s.MemoryRecall()
	case "M+", "M-", "MS":
		v, err := displayValue(s)
		if err != nil {
			return err
		}
		switch action {
		case "M+":
			s.MemoryAdd(v)
		case "M-":
			s.MemorySubtract(v)
		default:
			s.MemoryStore(v)
		}
	default:
		return fmt.Errorf("%w: special %q", ErrUnknownToken, action)
	}

	return nil
}

// displayValue parses the display as a finite number.
func displayValue(s *session.Session) (float64, error) {
	display := s.Display()
	if err := validate.Number(display); err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrNotANumber, display, err)
	}

	return strconv.ParseFloat(strings.TrimSpace(display), 64)
}

// keyTokens maps keyboard keys to tokens. Named keys are matched case-insensitively.
var keyTokens = map[string]Token{
	"+":         {Operator, "+"},
	"-":         {Operator, "-"},
	"*":         {Operator, "*"},
	"/":         {Operator, "/"},
	"^":         {Operator, "^"},
	"(":         {Operator, "("},
	")":         {Operator, ")"},
	".":         {Number, "."},
	",":         {Number, "."},
	"=":         {Special, "="},
	"enter":     {Special, "="},
	"escape":    {Special, "clear"},
	"esc":       {Special, "clear"},
	"delete":    {Special, "clear"},
	"backspace": {Special, "backspace"},
}

// FromKey maps a keyboard key name to a token.
func FromKey(key string) (Token, bool) {
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return Token{Number, key}, true
	}

	t, ok := keyTokens[strings.ToLower(key)]

	return t, ok
}
