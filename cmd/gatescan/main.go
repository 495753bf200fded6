package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gatescan/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	findings, err := app.Run(ctx, os.Args[1:])
	if err != nil {
		log.Printf("gatescan: %v", err)
		os.Exit(2)
	}
	if findings > 0 {
		os.Exit(1)
	}
}
