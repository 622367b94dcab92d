package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/arloliu/abacus/history"
	"github.com/arloliu/abacus/internal/config"
	"github.com/arloliu/abacus/session"
	"github.com/arloliu/abacus/storage/badgerkv"
)

// app holds the state shared by every command. The session and its store are
// opened on first use.
type app struct {
	configPath string
	dataDir    string
	logLevel   string
	inMemory   bool

	cfg        *config.Config
	logger     *slog.Logger
	logOutput  io.Writer
	isTerminal func() bool

	store *badgerkv.Store
	sess  *session.Session
}

func newApp() *app {
	return &app{
		logOutput: os.Stderr,
		isTerminal: func() bool {
			fd := os.Stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
	}
}

// load reads the config file and applies flag overrides.
func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.inMemory {
		cfg.Storage.InMemory = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.logOutput, &slog.HandlerOptions{Level: cfg.Level()}))

	return nil
}

// session opens the store and session on first call.
func (a *app) session() (*session.Session, error) {
	if a.sess != nil {
		return a.sess, nil
	}

	storeCfg := badgerkv.DefaultConfig(a.cfg.DataDir)
	if a.cfg.Storage.InMemory {
		storeCfg = badgerkv.InMemoryConfig()
	}
	storeCfg.SyncWrites = a.cfg.Storage.SyncWrites
	storeCfg.Logger = a.logger

	store, err := badgerkv.Open(storeCfg)
	if err != nil {
		return nil, err
	}

	sess, err := session.New(store,
		session.WithLogger(a.logger),
		session.WithDefaultAngleMode(a.cfg.Angle()),
		session.WithHistoryOptions(
			history.WithCapacity(a.cfg.History.Capacity),
			history.WithCompression(a.cfg.Compression()),
		),
	)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	a.store = store
	a.sess = sess
	a.logger.Debug("session opened",
		slog.String("data_dir", a.cfg.DataDir),
		slog.Bool("in_memory", a.cfg.Storage.InMemory))

	return sess, nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	a.sess = nil

	return err
}
