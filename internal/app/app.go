package app

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ruth561/DAG-BPF/internal/config"
	"github.com/ruth561/DAG-BPF/internal/metrics"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
	runID  string

	promRegistry *prometheus.Registry
	metrics      *metrics.Metrics
	httpServer   *http.Server
}

// NewApp is the constructor for the main application. Reports go to outW and
// logs to logW; each App gets its own logger, metrics registry and run id.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	runID := uuid.NewString()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW).With("run_id", runID)
	logger.Debug("Logger configured successfully.")

	reg := prometheus.NewRegistry()
	return &App{
		outW:         outW,
		logW:         logW,
		logger:       logger,
		config:       cfg,
		loader:       loader,
		runID:        runID,
		promRegistry: reg,
		metrics:      metrics.New(reg),
	}
}

// RunID returns the identifier attached to every log line of this App.
func (a *App) RunID() string { return a.runID }

// Metrics returns the application's metrics. This is primarily for testing.
func (a *App) Metrics() *metrics.Metrics { return a.metrics }
