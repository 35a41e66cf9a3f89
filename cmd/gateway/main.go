package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"

	"github.com/your-org/chat-gateway/internal/app"
)

func main() {
	_ = gotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := app.Setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gateway setup failed: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close(context.Background())

	if err := app.StartServerFromEnv(ctx, rt); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "gateway failed: %v\n", err)
		os.Exit(1)
	}
}
