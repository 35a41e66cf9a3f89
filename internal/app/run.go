package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/your-org/chat-gateway/internal/audit"
	"github.com/your-org/chat-gateway/internal/config"
	"github.com/your-org/chat-gateway/internal/gateway"
	"github.com/your-org/chat-gateway/internal/metrics"
	"github.com/your-org/chat-gateway/internal/trace"
)

const serviceName = "chat-gateway"

// Runtime bundles the wired collaborators for one gateway process.
type Runtime struct {
	Settings config.Settings
	Gateway  *gateway.Gateway
	Logger   *zap.Logger
	Counters *metrics.InMemoryRecorder

	shutdowns []func(context.Context) error
}

// NewLogger builds the process logger: production JSON by default,
// development output when DEBUG=true.
func NewLogger() *zap.Logger {
	if envBool("DEBUG") {
		l, err := zap.NewDevelopment()
		if err == nil {
			return l
		}
	}
	l, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// LoadSettings resolves settings from SETTINGS_PATH (YAML) when set,
// falling back to environment variables.
func LoadSettings() (config.Settings, error) {
	if path := strings.TrimSpace(os.Getenv("SETTINGS_PATH")); path != "" {
		return config.LoadSettings(path)
	}
	return config.FromEnv(), nil
}

// Setup wires settings, logger, provider, metrics, tracing, and audit into
// a ready Runtime. Call Close when done.
func Setup() (*Runtime, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}
	return SetupWith(settings)
}

// SetupWith wires a Runtime from already-loaded settings.
func SetupWith(settings config.Settings) (*Runtime, error) {
	logger := NewLogger()

	provider := gateway.BuildProvider(gateway.DefaultRegistry(), settings, logger)
	gw := gateway.New(provider, logger)
	gw.SetAuditLogger(audit.NewLogger(settings.Gateway.AuditLogPath))
	if settings.Gateway.HistoryWindow > 0 {
		gw.SetHistoryWindow(settings.Gateway.HistoryWindow)
	}

	rt := &Runtime{Settings: settings, Gateway: gw, Logger: logger}

	counters := metrics.NewInMemoryRecorder()
	rt.Counters = counters
	recorder := metrics.Recorder(counters)
	if envBool("METRICS_ENABLED") {
		promRegistry := prometheus.NewRegistry()
		promRecorder, err := metrics.NewPrometheusRecorder(promRegistry)
		if err != nil {
			return nil, fmt.Errorf("setup prometheus recorder: %w", err)
		}
		recorder = metrics.NewMultiRecorder(counters, promRecorder)

		var metricsServer interface {
			Shutdown(context.Context) error
		}
		if envBool("METRICS_TLS_ENABLED") {
			metricsServer, err = metrics.StartPrometheusServerTLS(
				settings.Gateway.MetricsAddr,
				promRegistry,
				os.Getenv("METRICS_TLS_CERT_FILE"),
				os.Getenv("METRICS_TLS_KEY_FILE"),
				os.Getenv("METRICS_TLS_CA_FILE"),
				envBool("METRICS_TLS_REQUIRE_CLIENT_CERT"),
			)
		} else {
			metricsServer, err = metrics.StartPrometheusServer(settings.Gateway.MetricsAddr, promRegistry)
		}
		if err != nil {
			return nil, fmt.Errorf("start metrics endpoint: %w", err)
		}
		rt.shutdowns = append(rt.shutdowns, metricsServer.Shutdown)
	}
	gw.SetMetricsRecorder(recorder)

	otelRuntime, err := trace.SetupOTelFromEnv(serviceName)
	if err != nil {
		return nil, fmt.Errorf("setup tracing: %w", err)
	}
	gw.SetTracer(otelRuntime.Tracer)
	rt.shutdowns = append(rt.shutdowns, otelRuntime.Shutdown)

	return rt, nil
}

// Close releases runtime resources in reverse wiring order.
func (rt *Runtime) Close(ctx context.Context) {
	for i := len(rt.shutdowns) - 1; i >= 0; i-- {
		_ = rt.shutdowns[i](ctx)
	}
	_ = rt.Logger.Sync()
}

// RunChat performs a one-shot completion and writes the result, used by
// the CLI chat subcommand.
func RunChat(ctx context.Context, message string, systemPrompt string, out io.Writer) error {
	rt, err := Setup()
	if err != nil {
		return err
	}
	defer rt.Close(context.Background())

	result := rt.Gateway.ProcessMessage(ctx, message, nil, systemPrompt)
	_, _ = fmt.Fprintf(out, "%s\n\n[%s]\n", result.Response, result.Model)

	snap := rt.Counters.Snapshot()
	if snap.ErrorChats > 0 {
		return fmt.Errorf("chat completed with an upstream error (provider=%s)", rt.Gateway.Provider().Name())
	}
	return nil
}

// ValidateSettings loads and validates a settings file only.
func ValidateSettings(path string) error {
	_, err := config.LoadSettings(path)
	return err
}

func envBool(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}
