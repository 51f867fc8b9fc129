package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"gigflow/internal/config"
	"gigflow/internal/logger"
)

type options struct {
	Reset    bool
	Tokens   bool
	Password string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the GigFlow store with demo users, gigs and bids",
		Long: `Seed creates demo users (bcrypt-hashed passwords), gigs and bids in the
store selected by DATABASE_URL. SQL schemas are migrated and Mongo indexes
created first.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.Init(cfg.AppEnv)
			return run(cmd.Context(), cfg, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.Reset, "reset", false, "delete all existing data first")
	cmd.Flags().BoolVar(&opts.Tokens, "tokens", false, "print a dev JWT for every seeded user")
	cmd.Flags().StringVar(&opts.Password, "password", "password123", "password for every seeded user")
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}
