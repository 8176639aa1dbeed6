package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/mriscan/internal/client/client"
	"github.com/dmitrijs2005/mriscan/internal/client/config"
	"github.com/dmitrijs2005/mriscan/internal/client/models"
	"github.com/dmitrijs2005/mriscan/internal/client/preview"
	"github.com/dmitrijs2005/mriscan/internal/client/services"
	"github.com/dmitrijs2005/mriscan/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config    *config.Config
	log       logging.Logger
	db        *sql.DB
	inference client.Client
	sessions  services.SessionManager
	workflow  *services.AnalysisWorkflow
	reports   *services.ReportService

	// lastReport is the report saved from the current result, if any.
	lastReport *models.Report

	modeMu sync.Mutex
	Mode   Mode

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the profile database, builds the inference client and wires
// the services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing profile %s: %w", c.ProfilePath, err)
	}

	apiClient, err := client.NewHTTPClient(c.InferenceURL, nil)
	if err != nil {
		db.Close()
		return nil, err
	}

	repos := client.NewRepositories(db)

	a := &App{
		config:    c,
		log:       log,
		db:        db,
		inference: apiClient,
		sessions:  services.NewSessionManager(repos.Accounts, repos.Sessions, log),
		reports:   services.NewReportService(repos.Reports, c.ExportDir, log),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}
	a.workflow = services.NewAnalysisWorkflow(apiClient, preview.NewRegistry(), log, services.WorkflowOptions{
		RequestTimeout: c.RequestTimeout,
		MaxUploadSize:  c.MaxUploadSize,
		OnTransition:   a.notify,
	})
	return a, nil
}

// Run restores the previous session, starts the connectivity watcher and
// blocks in the REPL until the user exits or ctx ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Welcome to the MRI scan analyzer (type 'help' for commands)")

	if s, ok, err := a.sessions.RestoreSession(ctx); err != nil {
		printlnFn("Could not restore previous session:", err)
	} else if ok {
		printlnFn(fmt.Sprintf("Welcome back, %s!", s.DisplayName))
	}

	watchCtx, stop := context.WithCancel(ctx)
	defer stop()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close tears down the workflow and releases the client and database.
func (a *App) Close() {
	a.workflow.Close()
	_ = a.inference.Close()
	if err := a.db.Close(); err != nil {
		a.log.Error(context.Background(), "closing profile database", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.sessions.Current()
	return ok
}

func (a *App) getStatus() string {
	var parts []string
	if cur, ok := a.sessions.Current(); ok {
		parts = append(parts, cur.DisplayName)
	}
	if m := a.mode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (a *App) mode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.Mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(ctx, "inference endpoint status changed", "mode", mode)
	}
}

// StartOnlineStatusWatcher pings the inference endpoint every interval and
// flips Mode between online and offline. A non-positive interval checks
// once. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	check := func() {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := a.inference.Ping(pctx)
		cancel()

		if err != nil {
			a.log.Debug(ctx, "inference endpoint ping failed", "error", err)
			a.setMode(ctx, ModeOffline)
		} else {
			a.setMode(ctx, ModeOnline)
		}
	}

	check()

	if interval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			check()
		case <-ctx.Done():
			return
		}
	}
}
