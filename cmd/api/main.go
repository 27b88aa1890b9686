package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"roster/internal/app/bootstrap"
)

//go:generate swag init --parseInternal -d ../../ -g cmd/api/main.go -o ../../internal/platform/httpserver/docs --outputTypes go

// @title Roster API
// @version 1.0
// @description Client distribution across sales executives.
// @BasePath /

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (store + adapters + use cases).
// 3) Serve HTTP until SIGINT/SIGTERM.
func main() {
	log.Println("roster api starting")
	app, err := bootstrap.BuildAPI()
	if err != nil {
		log.Fatalf("bootstrap api failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("api shutdown close failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := app.Run(ctx); err != nil {
		log.Printf("roster api stopped with error: %v", err)
	}
}
