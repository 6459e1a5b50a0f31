package main

import (
	"context"

	"github.com/fleetstack/fleetpoint/internal/bootstrap"
	"github.com/fleetstack/fleetpoint/internal/logger"
)

func main() {
	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		panic(err)
	}

	logger.InfoLog(ctx, "Starting server")
	if err := app.Run(); err != nil {
		logger.ErrorLog(ctx, "Server stopped", err)
		panic(err)
	}
}
