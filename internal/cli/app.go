package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexanderramin/brdtrack/internal/config"
	"github.com/alexanderramin/brdtrack/internal/db"
	"github.com/alexanderramin/brdtrack/internal/handler"
	"github.com/alexanderramin/brdtrack/internal/logging"
	"github.com/alexanderramin/brdtrack/internal/repository"
	"github.com/alexanderramin/brdtrack/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects  service.ProjectService
	Imports   service.ImportService
	Dashboard service.DashboardService
	Gantt     service.GanttService
	Backups   service.BackupService
	History   service.HistoryService

	Config config.Config
	Log    *slog.Logger

	// LogOutput receives process logs when Wire builds the logger.
	// Defaults to stderr.
	LogOutput io.Writer

	// IsInteractive reports whether prompts may be shown. Nil means never.
	IsInteractive func() bool

	// Bootstrap runs once the configuration is loaded, before any
	// subcommand. Nil when the services were wired up front.
	Bootstrap func(cfg config.Config) error

	closers []func() error
}

// Wire builds the store, the history journal and every service from cfg.
// It is the usual Bootstrap.
func (a *App) Wire(cfg config.Config) error {
	out := a.LogOutput
	if out == nil {
		out = os.Stderr
	}
	log := logging.New(out, cfg.Log.Level, cfg.Log.Format)
	a.Log = log

	store := repository.NewXLSXStore(cfg.DataFile(), cfg.BackupDir(), repository.WithLogger(log))

	var recorder service.HistoryRecorder = service.NoopRecorder{}
	history := service.NewHistoryService(nil)
	if path := cfg.HistoryDBPath(); path != "" {
		database, err := db.OpenDB(path)
		if err != nil {
			return fmt.Errorf("opening history journal: %w", err)
		}
		a.closers = append(a.closers, database.Close)
		recorder = service.NewJournal(db.NewSQLiteUnitOfWork(database), log)
		history = service.NewHistoryService(repository.NewSQLiteHistoryRepo(database))
	}

	obs := service.NewLogUseCaseObserver(log)
	a.Projects = service.NewProjectService(store, recorder, log, obs)
	a.Imports = service.NewImportService(store, recorder, obs)
	a.Dashboard = service.NewDashboardService(store, log)
	a.Gantt = service.NewGanttService(store, recorder, log, nil, obs)
	a.Backups = service.NewBackupService(store, store, obs)
	a.History = history

	log.Debug("wired services",
		slog.String("data_file", cfg.DataFile()),
		slog.String("backup_dir", cfg.BackupDir()),
		slog.String("history_db", cfg.HistoryDBPath()))
	return nil
}

// Close releases whatever Wire opened.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) services() handler.Services {
	return handler.Services{
		Projects:  a.Projects,
		Imports:   a.Imports,
		Dashboard: a.Dashboard,
		Gantt:     a.Gantt,
		Backups:   a.Backups,
		History:   a.History,
	}
}

func (a *App) logger() *slog.Logger {
	if a.Log == nil {
		return logging.Discard()
	}
	return a.Log
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
