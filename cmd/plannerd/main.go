// Plannerd is a plan-generation daemon for editor-integrated coding
// assistants, speaking MCP over stdio.
//
// The daemon wires workspace context gathering, prompt construction, a
// chat-completion client, and plan normalization into a single
// generate_plan pipeline, and optionally serves /healthz and /metrics
// on an HTTP sidecar.
//
// Usage:
//
//	# Serve MCP on stdio with defaults
//	plannerd
//
//	# Explicit config file and workspace root
//	plannerd -config /etc/plannerd/config.yaml -workspace /src/app
//
//	# Configure via environment
//	PLANNERD_PROVIDER_API_KEY=sk-... PLANNERD_SERVER_ADDR=:9091 plannerd
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/plannerd/internal/completion"
	"github.com/fyrsmithlabs/plannerd/internal/config"
	"github.com/fyrsmithlabs/plannerd/internal/history"
	"github.com/fyrsmithlabs/plannerd/internal/logging"
	mcpserver "github.com/fyrsmithlabs/plannerd/internal/mcp"
	"github.com/fyrsmithlabs/plannerd/internal/metrics"
	"github.com/fyrsmithlabs/plannerd/internal/planner"
	"github.com/fyrsmithlabs/plannerd/internal/workspace"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "config file path (default: ~/.config/plannerd/config.yaml)")
	workspaceRoot := flag.String("workspace", "", "workspace root (default: discover from cwd)")
	flag.Parse()

	if args := flag.Args(); len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  plannerd           Serve MCP on stdio\n")
			fmt.Fprintf(os.Stderr, "  plannerd version   Show version information\n")
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	if err := run(ctx, *configPath, *workspaceRoot); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Server error: %v", err)
	}
}

func printVersion() {
	fmt.Printf("plannerd by Fyrsmith Labs\n")
	fmt.Printf("Version:    %s\n", version)
	fmt.Printf("Commit:     %s\n", gitCommit)
	fmt.Printf("Build Date: %s\n", buildDate)
}

// run wires all services and blocks until ctx is cancelled.
func run(ctx context.Context, configPath, workspaceRoot string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if !cfg.IsConfigured() {
		return fmt.Errorf("no provider credential configured; set provider.api_key or PLANNERD_PROVIDER_API_KEY")
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("starting plannerd",
		zap.String("version", version),
		zap.String("model", cfg.Provider.Model),
		zap.String("endpoint", cfg.Provider.Endpoint))

	if workspaceRoot == "" {
		workspaceRoot = cfg.Workspace.Root
	}
	local, ok := workspace.NewLocal(workspaceRoot)
	if !ok {
		logger.Warn("no workspace root established; snapshots will be empty")
	} else {
		root, _ := local.Root()
		logger.Info("workspace ready", zap.String("root", root))
	}

	client := completion.NewClient(completion.Config{
		APIKey:    cfg.Provider.APIKey.Value(),
		Endpoint:  cfg.Provider.Endpoint,
		Model:     cfg.Provider.Model,
		MaxTokens: cfg.Provider.MaxTokens,
	},
		completion.WithLogger(logger.Named("completion")),
		completion.WithHTTPClient(&http.Client{Timeout: cfg.Provider.Timeout.Duration()}),
		completion.WithRateLimit(cfg.Provider.RateLimit, cfg.Provider.RateBurst),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	gatherer := workspace.NewGatherer(local, logger.Named("workspace"))
	plannerSvc := planner.NewService(gatherer, client, logger.Named("planner"), m)

	store, err := history.NewFileStore(cfg.History.Path, cfg.History.MaxPlans, logger.Named("history"))
	if err != nil {
		return fmt.Errorf("failed to initialize history store: %w", err)
	}

	srv, err := mcpserver.NewServer(&mcpserver.Config{
		Name:    "plannerd",
		Version: version,
		Logger:  logger.Named("mcp"),
	}, plannerSvc, store, local)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	if cfg.Server.Addr != "" {
		go runSidecar(ctx, cfg, registry, logger.Named("sidecar"))
	}

	return srv.Run(ctx)
}

// runSidecar serves /healthz and /metrics until ctx is cancelled.
func runSidecar(ctx context.Context, cfg *config.Config, registry *prometheus.Registry, logger *zap.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": version})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Warn("sidecar shutdown error", zap.Error(err))
		}
	}()

	logger.Info("sidecar listening", zap.String("addr", cfg.Server.Addr))
	if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("sidecar error", zap.Error(err))
	}
}
