package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"oabstudy/internal/cli"
	"oabstudy/internal/client"
	"oabstudy/internal/config"
	"oabstudy/internal/session"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("[OAB] ")

	config.LoadEnvFiles()

	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store, err := session.OpenSQLite(cfg.SessionDB)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	opts := client.Options{BaseURL: cfg.APIURL}
	if cfg.Verbose {
		opts.Logger = log.New(os.Stderr, "[OAB] ", log.LstdFlags)
	}

	c, err := client.New(ctx, opts, store)
	if err != nil {
		log.Fatalf("client: %v", err)
	}

	app := &cli.App{Client: c, In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
	if cfg.ChatURL != "" {
		app.Chat = client.NewChatClient(cfg.ChatURL, cfg.ChatAPIKey, nil)
	}

	code := cli.Run(ctx, app, os.Args[1:])

	stop()
	store.Close()
	os.Exit(code)
}
