package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"

	"github.com/notemark/notemark/config"
	"github.com/notemark/notemark/pkg/otel"
	"github.com/notemark/notemark/server"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	configFlag := flag.String("config", "config.yaml", "configuration file")
	addressFlag := flag.String("address", "", "server address")

	flag.Parse()

	ctx := context.Background()

	if otel.EnableTelemetry {
		if err := otel.Init(ctx); err != nil {
			panic(err)
		}
	}

	cfg, err := config.Parse(*configFlag)

	if err != nil {
		panic(err)
	}

	if *addressFlag != "" {
		cfg.Address = *addressFlag
	}

	h, err := server.New(cfg)

	if err != nil {
		panic(err)
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	h.Attach(r)

	slog.Info("starting server", "address", cfg.Address)

	if err := http.ListenAndServe(cfg.Address, r); err != nil {
		panic(err)
	}
}
