// sagemaker-gateway - HTTP gateway for a SageMaker question-answering endpoint.
// Entry point: flags, configuration, server lifecycle.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sefineh-ai/sagemaker-gateway/internal/api"
	"github.com/sefineh-ai/sagemaker-gateway/internal/domain/predict"
	"github.com/sefineh-ai/sagemaker-gateway/internal/infra/config"
	"github.com/sefineh-ai/sagemaker-gateway/internal/infra/sagemaker"
	"github.com/sefineh-ai/sagemaker-gateway/internal/server"
	"github.com/sefineh-ai/sagemaker-gateway/internal/version"
)

const shutdownGrace = 10 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("gateway", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")
	configPath := fs.String("config", "", "Path to YAML config file (optional)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	if *showHelp {
		printHelp(out)
		return 0
	}

	return serve(*configPath, out)
}

func serve(configPath string, out io.Writer) int {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(out, "config: %v\n", err) //nolint:errcheck
		return 1
	}
	if cfg.EndpointName == "" {
		// Startup proceeds: /health reports the mis-configuration and
		// predictions fail per-request instead of crashing the process.
		logger.Warn("SAGEMAKER_ENDPOINT_NAME is not set; predictions will fail until configured")
	}

	ctx := context.Background()
	client, err := sagemaker.New(ctx, cfg.Region, cfg.EndpointName, logger)
	if err != nil {
		logger.Error("initialize sagemaker client", "error", err)
		return 1
	}

	service := predict.NewService(client, predict.Config{
		ModelName:        cfg.ModelName,
		ModelID:          cfg.ModelID,
		EndpointName:     cfg.EndpointName,
		Region:           cfg.Region,
		InvokeTimeout:    cfg.InvokeTimeout,
		BatchConcurrency: cfg.BatchConcurrency,
	}, logger)

	serverCfg := server.DefaultConfig()
	serverCfg.Host = cfg.Host
	serverCfg.Port = cfg.Port
	srv := server.NewServer(api.NewRouter(service), serverCfg, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", "error", err)
			return 1
		}
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
			return 1
		}
	}
	return 0
}

func printHelp(out io.Writer) {
	helpText := `sagemaker-gateway - HTTP gateway for a SageMaker question-answering endpoint

Usage:
  gateway [options]

Options:
  --version        Show version information
  --help           Show this help message
  --config <file>  Load configuration from a YAML file (env vars win)

Environment:
  SAGEMAKER_ENDPOINT_NAME  SageMaker endpoint to invoke (required for predictions)
  AWS_REGION               AWS region (default eu-north-1)
  MODEL_NAME               Display name of the model
  HTTP_HOST / HTTP_PORT    Listen address (default 0.0.0.0:8000)
  INVOKE_TIMEOUT           Bound on each endpoint call (default 30s)
  BATCH_CONCURRENCY        Parallel batch items (default 4)`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
