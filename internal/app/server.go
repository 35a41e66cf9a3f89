package app

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/your-org/chat-gateway/internal/gateway"
	"github.com/your-org/chat-gateway/internal/security"
	"github.com/your-org/chat-gateway/pkg/chat"
)

// chatRequest is the inbound wire shape for one completion.
type chatRequest struct {
	Message      string      `json:"message"`
	History      []chat.Turn `json:"history"`
	SystemPrompt string      `json:"system_prompt"`
}

// Handler exposes the gateway over HTTP.
func Handler(gw *gateway.Gateway) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	mux.HandleFunc("/v1/chat", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// Upstream failures are in-band: this endpoint answers 200 with
		// an error-labeled result rather than surfacing a 5xx.
		result := gw.ProcessMessage(r.Context(), req.Message, req.History, req.SystemPrompt)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	})
	return mux
}

func StartServer(ctx context.Context, addr string, gw *gateway.Gateway) error {
	if addr == "" {
		addr = ":8080"
	}
	s := &http.Server{Addr: addr, Handler: Handler(gw), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		_ = s.Shutdown(context.Background())
	}()
	return s.ListenAndServe()
}

func StartServerTLS(ctx context.Context, addr string, gw *gateway.Gateway, certFile string, keyFile string, caFile string, requireClientCert bool) error {
	if addr == "" {
		addr = ":8080"
	}
	cfg, err := security.BuildServerTLSConfig(certFile, keyFile, caFile, requireClientCert)
	if err != nil {
		return err
	}
	s := &http.Server{Addr: addr, Handler: Handler(gw), ReadHeaderTimeout: 5 * time.Second, TLSConfig: cfg}
	go func() {
		<-ctx.Done()
		_ = s.Shutdown(context.Background())
	}()
	ln, err := tls.Listen("tcp", addr, cfg)
	if err != nil {
		return fmt.Errorf("gateway tls listen: %w", err)
	}
	return s.Serve(ln)
}

// StartServerFromEnv starts the gateway with TLS when GATEWAY_TLS_ENABLED
// is set.
func StartServerFromEnv(ctx context.Context, rt *Runtime) error {
	addr := rt.Settings.Gateway.Addr
	if envBool("GATEWAY_TLS_ENABLED") {
		return StartServerTLS(
			ctx,
			addr,
			rt.Gateway,
			os.Getenv("GATEWAY_TLS_CERT_FILE"),
			os.Getenv("GATEWAY_TLS_KEY_FILE"),
			os.Getenv("GATEWAY_TLS_CA_FILE"),
			envBool("GATEWAY_TLS_REQUIRE_CLIENT_CERT"),
		)
	}
	return StartServer(ctx, addr, rt.Gateway)
}
