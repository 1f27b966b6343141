package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"hanabi/client/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("%v", err)
	}
}
