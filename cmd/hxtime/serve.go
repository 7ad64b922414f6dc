package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/pthm/hxtime"
	"github.com/pthm/hxtime/components/timefield"
	"github.com/pthm/hxtime/components/timepicker"
	"github.com/pthm/hxtime/internal/logger"
	"github.com/pthm/hxtime/middleware"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		key        string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo server",
		Long: `Serve a demo page with a time picker and one field per kind.

Flags override values from the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("key") {
				cfg.Key = key
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Listen address")
	cmd.Flags().StringVar(&key, "key", "", "Props signing key (random when empty)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	return cmd
}

func runServer(ctx context.Context, cfg Config) error {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logger.New(os.Stdout, level, logger.RequestID, logger.TraceID)

	if cfg.Key == "" {
		cfg.Key = uuid.NewString()
		log.Warn("no key configured, using an ephemeral key; props will not survive a restart")
	}

	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Addr, "version", version)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// app is the wired demo server.
type app struct {
	router http.Handler
	field  *timefield.Field
	picker *timepicker.Picker
}

// newApp wires the registry, instrumentation and demo page.
func newApp(cfg Config, log *slog.Logger) (*app, error) {
	table, err := cfg.Table()
	if err != nil {
		return nil, err
	}

	reg, err := hxtime.NewRegistry([]byte(cfg.Key), hxtime.WithLogger(log))
	if err != nil {
		return nil, err
	}

	field := timefield.New(timefield.WithTable(table))
	picker := timepicker.New(timepicker.WithTable(table))
	reg.Add(field, picker)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	components := reg.Handler()
	if cfg.Metrics {
		promReg := prometheus.NewRegistry()
		promReg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		components = middleware.Metrics(middleware.WithRegistry(promReg))(components)
		r.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))
	}
	if cfg.Tracing {
		components = middleware.Tracing()(components)
	}
	r.Handle("/_c/*", components)

	page := &demoPage{field: field, picker: picker, cfg: cfg.Demo}
	r.Get("/", page.ServeHTTP)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "ok")
	})

	log.Debug("components mounted", "prefixes", reg.Prefixes())
	return &app{router: r, field: field, picker: picker}, nil
}
