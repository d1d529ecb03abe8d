package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/drpaneas/askgate/internal/config"
	"github.com/drpaneas/askgate/internal/gateway"
	"github.com/drpaneas/askgate/internal/llm"
	"github.com/drpaneas/askgate/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var cfg config.Config
	var envFile string
	flag.StringVar(&cfg.Addr, "addr", "", "Listen address (default: $HOST:$PORT, 0.0.0.0:5000)")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Prometheus metrics listen address (default: $METRICS_ADDR, disabled if empty)")
	flag.StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before reading the environment")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: askgate [flags]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	// Variables already in the environment take precedence over the file.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("loading %s: %v", envFile, err)
	}

	cfg.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg.Warn()

	var m *metrics.Metrics
	if cfg.MetricsAddr != "" {
		m = metrics.New()
	}

	provider := llm.NewProvider(llm.ProviderConfig{
		AnthropicAPIKey: cfg.AnthropicAPIKey,
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		OllamaHost:      cfg.OllamaHost,
		MaxTokens:       cfg.MaxTokens,
	})
	srv := gateway.New(gateway.Options{
		Provider:     provider,
		DefaultModel: cfg.DefaultModel,
		ServiceName:  config.ServiceName,
		Metrics:      m,
	})

	servers := []*http.Server{{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if m != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		servers = append(servers, &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	slog.Info("starting askgate", "addr", cfg.Addr, "metrics_addr", cfg.MetricsAddr, "default_model", cfg.DefaultModel)

	g, gCtx := errgroup.WithContext(ctx)
	for _, hs := range servers {
		g.Go(func() error {
			slog.Info("listening", "addr", hs.Addr)
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving on %s: %w", hs.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		var errs []error
		for _, hs := range servers {
			if err := hs.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutting down %s: %w", hs.Addr, err))
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("done")
	return nil
}
