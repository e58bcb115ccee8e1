package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oabstudy/internal/api"
	"oabstudy/internal/auth"
	"oabstudy/internal/config"
	"oabstudy/internal/database"
)

func main() {
	log.SetPrefix("[DEVSERVER] ")

	if file := config.LoadEnvFiles(); file != "" {
		log.Printf("loaded environment from %s", file)
	}

	cfg, err := config.LoadDevServer()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	log.Printf("token lifetime: %s", issuer.TTL())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.SetupRouter(api.NewServer(db, issuer, nil), cfg.AllowedOrigins, true),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
