// Command demo streams one itinerary to stdout using the configured backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"
	"yatrojana/internal/config"
	"yatrojana/internal/infra"
	"yatrojana/internal/models/request_models"
	"yatrojana/internal/services"
)

func main() {
	destination := flag.String("destination", "Goa", "destination to plan")
	days := flag.Int("days", 4, "trip length in days")
	refresh := flag.Int("refresh", 0, "variation counter")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client, err := infra.InitAIClient(ctx, cfg.AI, logger)
	if err != nil {
		logger.Fatal("ai backend", zap.Error(err))
	}
	defer infra.CloseAIClient(client, logger)

	search := services.NewSearchService(services.NewTravelGateway(client, logger), logger)
	stream, err := search.StreamItinerary(ctx, request_models.TripQuery{
		Destination:  *destination,
		Days:         *days,
		RefreshCount: *refresh,
	})
	if err != nil {
		logger.Fatal("invalid query", zap.Error(err))
	}
	defer stream.Close()

	for {
		chunk, ok := stream.Next()
		if !ok {
			break
		}
		fmt.Print(chunk.Delta)
	}
	fmt.Println()

	for i, src := range stream.Grounding() {
		fmt.Printf("[%d] %s %s\n", i+1, src.Title, src.URI)
	}
	if stream.Degraded() {
		os.Exit(1)
	}
}
