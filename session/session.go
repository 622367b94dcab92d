// Package session implements the calculator state machine.
//
// A Session owns the display and expression being composed, the angle mode,
// the memory register and the last result. It evaluates through an engine
// and records every evaluation in a history store.
//
// The angle mode and memory register are persisted under the state key; the
// history persists itself under its own key. Display, expression and last
// result are transient.
package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/arloliu/abacus/angle"
	"github.com/arloliu/abacus/engine"
	"github.com/arloliu/abacus/history"
	"github.com/arloliu/abacus/internal/options"
	"github.com/arloliu/abacus/section"
	"github.com/arloliu/abacus/stats"
	"github.com/arloliu/abacus/storage"
)

const (
	initialDisplay = "0"
	errorDisplay   = "Error"
)

// State is a point-in-time copy of everything a renderer shows.
type State struct {
	Display       string         `json:"display"`
	Expression    string         `json:"expression"`
	AngleMode     angle.Mode     `json:"angleMode"`
	Memory        float64        `json:"memory"`
	LastResult    float64        `json:"lastResult"`
	HasLastResult bool           `json:"hasLastResult"`
	History       []history.Item `json:"history"`
}

// Session is the calculator state machine. It is safe for concurrent use;
// events are applied one at a time.
type Session struct {
	mu         sync.Mutex
	display    string
	expression string
	mode       angle.Mode
	memory     float64
	lastResult float64
	hasResult  bool

	engine   *engine.Engine
	history  *history.Store
	kv       storage.KV
	stateKey string
	logger   *slog.Logger
}

// New creates a Session persisted in kv and restores any saved state.
//
// A nil kv keeps everything in memory. Unreadable saved state is logged and
// replaced by defaults; only invalid options produce an error.
func New(kv storage.KV, opts ...Option) (*Session, error) {
	cfg := &config{
		stateKey: DefaultStateKey,
		logger:   slog.New(slog.DiscardHandler),
		mode:     angle.Degrees,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if cfg.engine == nil {
		cfg.engine = engine.Default()
	}
	if cfg.history == nil {
		historyOpts := append([]history.Option{history.WithLogger(cfg.logger)}, cfg.historyOpts...)
		h, err := history.New(kv, historyOpts...)
		if err != nil {
			return nil, fmt.Errorf("session: create history: %w", err)
		}
		cfg.history = h
	}

	s := &Session{
		display:  initialDisplay,
		mode:     cfg.mode,
		engine:   cfg.engine,
		history:  cfg.history,
		kv:       kv,
		stateKey: cfg.stateKey,
		logger:   cfg.logger,
	}
	s.loadState()

	return s, nil
}

// SetDisplay replaces the display text.
func (s *Session) SetDisplay(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.display = value
}

// AppendToDisplay appends input to the display. A display of "0" (or "Error")
// is replaced rather than extended, except by ".", and a second decimal point
// is ignored.
func (s *Session) AppendToDisplay(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.display == errorDisplay {
		s.display = initialDisplay
	}

	switch {
	case s.display == initialDisplay && value != ".":
		s.display = value
	case value == "." && strings.Contains(s.display, "."):
		// one decimal point per number
	default:
		s.display += value
	}
}

// Clear resets the display and expression.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.display = initialDisplay
	s.expression = ""
}

// Backspace removes the last display character; a single character becomes "0".
func (s *Session) Backspace() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.display) <= 1 {
		s.display = initialDisplay
		return
	}
	s.display = s.display[:len(s.display)-1]
}

// SetExpression replaces the pending expression.
func (s *Session) SetExpression(expression string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expression = expression
}

// AppendOperator moves the display into the expression followed by op and resets the display.
func (s *Session) AppendOperator(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expression += s.display + " " + op + " "
	s.display = initialDisplay
}

// SetAngleMode changes the mode used by every later evaluation.
func (s *Session) SetAngleMode(mode angle.Mode) error {
	if !mode.IsValid() {
		return fmt.Errorf("session: invalid angle mode %d", uint8(mode))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = mode
	s.saveState()

	return nil
}

// MemoryStore sets the memory register.
func (s *Session) MemoryStore(v float64) {
	s.updateMemory(func(float64) float64 { return v })
}

// MemoryAdd adds v to the memory register.
func (s *Session) MemoryAdd(v float64) {
	s.updateMemory(func(m float64) float64 { return m + v })
}

// MemorySubtract subtracts v from the memory register.
func (s *Session) MemorySubtract(v float64) {
	s.updateMemory(func(m float64) float64 { return m - v })
}

// MemoryClear resets the memory register to 0.
func (s *Session) MemoryClear() {
	s.updateMemory(func(float64) float64 { return 0 })
}

func (s *Session) updateMemory(fn func(float64) float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memory = fn(s.memory)
	s.saveState()
}

// MemoryRecall shows the memory register on the display.
func (s *Session) MemoryRecall() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.display = engine.FormatResult(s.memory)
}

// Calculate evaluates the pending expression followed by the display.
//
// On success the display shows the formatted result and the last result is
// updated. On failure the display shows "Error" and the last result is kept.
// Either way the expression is cleared and a history item is recorded. The
// returned error is informational; the session state already reflects it.
func (s *Session) Calculate() (history.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	full := s.display
	if s.expression != "" {
		full = s.expression + s.display
	}

	return s.evaluate(full)
}

// Submit replaces the pending input with expression and calculates it, as one
// event.
func (s *Session) Submit(expression string) (history.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.evaluate(expression)
}

// evaluate requires s.mu.
func (s *Session) evaluate(full string) (history.Item, error) {
	s.expression = ""

	v, err := s.engine.EvaluateIn(full, s.mode)
	if err != nil {
		s.display = errorDisplay
		s.logger.Debug("calculation failed", slog.String("expression", full), slog.String("error", err.Error()))

		return s.history.Add(history.Failure(full, err.Error())), err
	}

	s.display = engine.FormatResult(v)
	s.lastResult = v
	s.hasResult = true

	return s.history.Add(history.Success(full, v)), nil
}

// ClearHistory removes every history item and nothing else.
func (s *Session) ClearHistory() {
	s.history.Clear()
}

// Reset restores display, expression, angle mode, memory and last result to
// their defaults. History is kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.display = initialDisplay
	s.expression = ""
	s.mode = angle.Degrees
	s.memory = 0
	s.lastResult = 0
	s.hasResult = false
	s.saveState()
}

// Display returns the display text.
func (s *Session) Display() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.display
}

// Expression returns the pending expression.
func (s *Session) Expression() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.expression
}

// AngleMode returns the current angle mode.
func (s *Session) AngleMode() angle.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mode
}

// Memory returns the memory register.
func (s *Session) Memory() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.memory
}

// LastResult returns the most recent successful result, if any.
func (s *Session) LastResult() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastResult, s.hasResult
}

// History returns the recorded calculations, newest first.
func (s *Session) History() []history.Item {
	return s.history.All()
}

// HistoryStore returns the underlying history store.
func (s *Session) HistoryStore() *history.Store {
	return s.history
}

// Statistics aggregates the numeric results in history.
func (s *Session) Statistics() stats.Statistics {
	return stats.Calculate(s.history.All())
}

// Engine returns the evaluation engine bound to the current angle mode.
func (s *Session) Engine() *engine.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.WithAngleMode(s.mode)
}

// Snapshot returns a copy of the full session state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	st := State{
		Display:       s.display,
		Expression:    s.expression,
		AngleMode:     s.mode,
		Memory:        s.memory,
		LastResult:    s.lastResult,
		HasLastResult: s.hasResult,
	}
	s.mu.Unlock()

	st.History = s.history.All()

	return st
}

// persistedState is the stored form. State holds the same fields when the
// snapshot was written by a store that nests them under "state".
type persistedState struct {
	AngleMode angle.Mode      `json:"angleMode"`
	Memory    float64         `json:"memory"`
	State     *persistedState `json:"state,omitempty"`
}

func (s *Session) loadState() {
	if s.kv == nil {
		return
	}

	data, ok, err := s.kv.Get(s.stateKey)
	if err != nil {
		s.logger.Warn("failed to read session state", slog.String("key", s.stateKey), slog.String("error", err.Error()))
		return
	}
	if !ok {
		return
	}

	raw, err := section.Open(data)
	if err != nil {
		s.logger.Warn("discarding unreadable session state", slog.String("key", s.stateKey), slog.String("error", err.Error()))
		return
	}

	var ps persistedState
	if err := json.Unmarshal(raw, &ps); err != nil {
		s.logger.Warn("discarding corrupted session state", slog.String("key", s.stateKey), slog.String("error", err.Error()))
		return
	}
	if ps.State != nil {
		ps = *ps.State
	}

	s.mode = ps.AngleMode.Normalize()
	s.memory = ps.Memory
}

// saveState persists the angle mode and memory. Callers hold s.mu.
func (s *Session) saveState() {
	if s.kv == nil {
		return
	}

	raw, err := json.Marshal(persistedState{AngleMode: s.mode, Memory: s.memory})
	if err == nil {
		var sealed []byte
		if sealed, err = section.Seal(raw); err == nil {
			err = s.kv.Set(s.stateKey, sealed)
		}
	}
	if err != nil {
		s.logger.Error("failed to save session state", slog.String("key", s.stateKey), slog.String("error", err.Error()))
	}
}
