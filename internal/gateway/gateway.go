// Package gateway dispatches chat requests to the selected provider and
// converts adapter failures into the in-band result shape callers display.
package gateway

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/your-org/chat-gateway/internal/audit"
	"github.com/your-org/chat-gateway/internal/metrics"
	"github.com/your-org/chat-gateway/pkg/chat"
)

// Result is the two-field shape callers display. On failure Response holds
// a human-readable diagnostic and Model carries the "(Error)" suffix; the
// caller needs no special control flow to handle it.
type Result struct {
	Response string `json:"response"`
	Model    string `json:"model"`
}

// Gateway owns one selected provider plus the observability collaborators.
// It is immutable after construction and safe for concurrent use.
type Gateway struct {
	provider chat.Provider
	window   int
	log      *zap.Logger
	audit    *audit.Logger
	metrics  metrics.Recorder
	tracer   oteltrace.Tracer
}

func New(provider chat.Provider, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{
		provider: provider,
		window:   chat.HistoryWindow,
		log:      log,
		audit:    audit.NewLogger(""),
		metrics:  metrics.NoopRecorder{},
	}
}

func (g *Gateway) SetAuditLogger(l *audit.Logger) {
	if l != nil {
		g.audit = l
	}
}

func (g *Gateway) SetMetricsRecorder(r metrics.Recorder) {
	if r != nil {
		g.metrics = r
	}
}

func (g *Gateway) SetTracer(t oteltrace.Tracer) {
	g.tracer = t
}

// SetHistoryWindow overrides the turn cap applied before dispatch. Adapters
// still enforce the provider-independent cap on their own.
func (g *Gateway) SetHistoryWindow(n int) {
	if n > 0 {
		g.window = n
	}
}

// Provider returns the provider this gateway dispatches to.
func (g *Gateway) Provider() chat.Provider {
	return g.provider
}

// ProcessMessage runs one chat completion. It never returns an error and
// never panics: every failure comes back as a Result whose Model label ends
// in "(Error)".
func (g *Gateway) ProcessMessage(ctx context.Context, message string, history []chat.Turn, systemPrompt string) Result {
	start := time.Now()
	name := g.provider.Name()

	var span oteltrace.Span
	if g.tracer != nil {
		ctx, span = g.tracer.Start(ctx, "chat.process_message",
			oteltrace.WithAttributes(attribute.String("chat.provider", name)))
		defer span.End()
	}

	reply, err := g.chat(ctx, chat.Request{
		Message: message,
		History: chat.Window(history, g.window),
		System:  systemPrompt,
	})
	duration := time.Since(start)

	if err != nil {
		cerr, ok := chat.AsError(err)
		if !ok {
			cerr = &chat.Error{
				Provider: name,
				Kind:     chat.KindUpstream,
				Message:  "The AI provider failed unexpectedly. Please try again.",
				Err:      err,
			}
		}
		g.log.Error("chat completion failed",
			zap.String("provider", name),
			zap.String("kind", string(cerr.Kind)),
			zap.Int("status", cerr.Status),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		g.metrics.ObserveChat(name, "error", duration)
		g.metrics.ObserveFailure(name, string(cerr.Kind))
		_ = g.audit.Write(name, cerr.Provider, "error", duration, err)
		if span != nil {
			span.SetAttributes(attribute.String("chat.status", "error"), attribute.String("chat.error_kind", string(cerr.Kind)))
		}
		return Result{
			Response: cerr.Message,
			Model:    cerr.Provider + " (Error)",
		}
	}

	g.metrics.ObserveChat(name, "success", duration)
	_ = g.audit.Write(name, reply.Model, "success", duration, nil)
	if span != nil {
		span.SetAttributes(attribute.String("chat.status", "success"), attribute.String("chat.model", reply.Model))
	}
	return Result{Response: reply.Text, Model: reply.Model}
}

// chat calls the provider with a panic guard so no adapter bug can take
// down the calling process.
func (g *Gateway) chat(ctx context.Context, req chat.Request) (reply chat.Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &chat.Error{
				Provider: g.provider.Name(),
				Kind:     chat.KindUpstream,
				Message:  "The AI provider failed unexpectedly. Please try again.",
				Err:      fmt.Errorf("provider panic: %v", r),
			}
		}
	}()
	return g.provider.Chat(ctx, req)
}
