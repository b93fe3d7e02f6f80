package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/psychedelic-theory/climbing-log-manager/internal/config"
	"github.com/psychedelic-theory/climbing-log-manager/internal/db"
	"github.com/psychedelic-theory/climbing-log-manager/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the climbing log API server",
		Long:  "Opens the database, migrates the schema, seeds first-run data, and serves the JSON API until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "climblog.yaml", "path to config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Port = port
	}

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return err
	}

	// Storage readiness is a startup phase, not a per-request guard.
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	seeded, err := db.SeedIfEmpty(gormDB, cfg.SeedPath)
	if err != nil {
		return err
	}
	if seeded > 0 {
		fmt.Fprintf(out, "Seeded %d log records from %s\n", seeded, cfg.SeedPath)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(out, "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	return server.Start(ctx, server.StartOpts{
		DB:             gormDB,
		Port:           cfg.Port,
		AllowedOrigins: cfg.AllowedOrigins,
		Out:            out,
	})
}
