package session

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/arloliu/abacus/angle"
	"github.com/arloliu/abacus/engine"
	"github.com/arloliu/abacus/history"
	"github.com/arloliu/abacus/internal/options"
)

// DefaultStateKey is the storage key for the persisted angle mode and memory.
const DefaultStateKey = "calculator-storage"

type config struct {
	engine      *engine.Engine
	history     *history.Store
	historyOpts []history.Option
	stateKey    string
	logger      *slog.Logger
	mode        angle.Mode
}

// Option configures a Session.
type Option = options.Option[*config]

// WithEngine sets the evaluation engine. Its own angle mode is ignored; the
// session passes its mode on every evaluation.
func WithEngine(e *engine.Engine) Option {
	return options.New(func(c *config) error {
		if e == nil {
			return errors.New("session: nil engine")
		}
		c.engine = e

		return nil
	})
}

// WithHistory uses an existing history store instead of creating one.
func WithHistory(h *history.Store) Option {
	return options.New(func(c *config) error {
		if h == nil {
			return errors.New("session: nil history store")
		}
		c.history = h

		return nil
	})
}

// WithHistoryOptions passes options to the history store the session creates.
// They are ignored when WithHistory is used.
func WithHistoryOptions(opts ...history.Option) Option {
	return options.NoError(func(c *config) {
		c.historyOpts = append(c.historyOpts, opts...)
	})
}

// WithStateKey sets the storage key for the persisted session state.
func WithStateKey(key string) Option {
	return options.New(func(c *config) error {
		if key == "" {
			return errors.New("session: empty state key")
		}
		c.stateKey = key

		return nil
	})
}

// WithDefaultAngleMode sets the angle mode of a session without saved state.
func WithDefaultAngleMode(mode angle.Mode) Option {
	return options.New(func(c *config) error {
		if !mode.IsValid() {
			return fmt.Errorf("session: invalid angle mode %d", uint8(mode))
		}
		c.mode = mode

		return nil
	})
}

// WithLogger sets the logger used for persistence warnings.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}
