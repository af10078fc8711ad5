package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// @title studydash API
// @version 1.0.0
// @description Academic progress dashboard: module enrollments, KPIs and forecasts.
// @BasePath /
// @schemes http

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
