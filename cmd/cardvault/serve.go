package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fadedpez/cardvault/internal/logging"
	"github.com/fadedpez/cardvault/pkg/api"
	"github.com/fadedpez/cardvault/pkg/scheduler"
)

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reveal API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if len(cfg.ArchiveRooms) > 0 {
				archiver := scheduler.NewShowdownArchiver(a.ledger, a.reveals, a.showdowns, cfg.ArchiveRooms, cfg.ArchiveInterval)
				archiver.Start(ctx)
				defer archiver.Stop()
			}

			server := api.NewServer(a.reveals, api.Options{
				CORSOrigins: cfg.CORSOrigins,
				Showdowns:   a.showdowns,
			})

			err = server.ListenAndServe(ctx, cfg.ListenAddr)
			logging.Default.Info("Shutting down...")
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides LISTEN_ADDR")
	return cmd
}
