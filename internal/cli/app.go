package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/roomtodo/internal/config"
	"github.com/idilsaglam/roomtodo/internal/logger"
	"github.com/idilsaglam/roomtodo/internal/store/sqlitestore"
	"github.com/idilsaglam/roomtodo/internal/ui"
	"github.com/idilsaglam/roomtodo/internal/viewmodel"
	"github.com/idilsaglam/roomtodo/internal/worker"
)

// app is one process's wiring: store, pool and view-model.
type app struct {
	cfg   config.Config
	log   *logrus.Entry
	store *sqlitestore.Store
	pool  *worker.Pool
	home  *viewmodel.Home

	logFile *os.File
}

// openApp loads config and opens the store. screen selects the log file
// so log lines never land on the terminal the screen draws on.
func openApp(opts *RootOptions, stderr io.Writer, screen bool) (*app, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.DBPath != "" {
		cfg.DBPath = opts.DBPath
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	ui.SetTheme(cfg.Theme)

	a := &app{cfg: cfg}

	var out io.Writer = stderr
	logPath := cfg.LogFile
	if screen {
		logPath = cfg.ScreenLogFile()
	}
	if logPath != "" {
		f, err := logger.OpenFile(logPath)
		if err != nil {
			return nil, err
		}
		a.logFile, out = f, f
	}
	a.log = logger.New(cfg.LogLevel, out)

	a.store, err = sqlitestore.Open(cfg.DBPath)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.pool = worker.New(cfg.Workers, a.log)
	a.home = viewmodel.New(a.store, a.pool)
	a.log.WithField("db", cfg.DBPath).Debug("store opened")
	return a, nil
}

// settle waits for dispatched writes and reports whether any failed.
func (a *app) settle() error {
	a.pool.Wait()
	if n := a.pool.Failures(); n > 0 {
		return fmt.Errorf("%d write(s) failed, see log", n)
	}
	return nil
}

func (a *app) close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.WithError(err).Warn("close store")
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}
