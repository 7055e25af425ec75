// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taibuivan/secureblog/internal/platform/constants"
	"github.com/taibuivan/secureblog/internal/seed"
)

func newRootCommand() *cobra.Command {
	serve := newServeCommand()

	root := &cobra.Command{
		Use:           "secureblog",
		Short:         "Hardened blog and user API",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	root.AddCommand(serve, newMigrateCommand(), newSeedCommand())
	return root
}

// newServeCommand starts the HTTP server.
//
// # Startup Sequence
//
//  1. Load configuration, then build the structured logger.
//  2. Open the configured database and run migrations (idempotent).
//  3. Connect to Redis when configured.
//  4. Wire services, guards and handlers.
//  5. Serve until a signal arrives, then drain in-flight requests.
func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runtime, err := bootstrap(ctx, true)
			if err != nil {
				return err
			}
			defer runtime.Close()

			server, err := runtime.server()
			if err != nil {
				return runtime.fail(err, "wire http server")
			}

			go runtime.limiter.Run(ctx)

			serverErr := make(chan error, 1)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Block until OS signal or server error.
			select {
			case <-ctx.Done():
				runtime.log.Info("shutdown signal received")
			case err := <-serverErr:
				return runtime.fail(err, "serve http")
			}

			runtime.log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))
			if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
				return runtime.fail(err, "shutdown")
			}

			runtime.log.Info("server stopped cleanly")
			return nil
		},
	}
}

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := bootstrap(cmd.Context(), true)
			if err != nil {
				return err
			}
			runtime.Close()
			return nil
		},
	})

	return cmd
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo users and posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := bootstrap(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer runtime.Close()

			accounts, err := runtime.authService()
			if err != nil {
				return runtime.fail(err, "wire auth service")
			}

			report, err := seed.Run(cmd.Context(), seed.Dependencies{
				Accounts: accounts,
				Users:    runtime.storage.users,
				Posts:    runtime.postService(),
				Logger:   runtime.log,
			})
			if err != nil {
				return runtime.fail(err, "seed demo data")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seed: %d users, %d posts created\n", report.UsersCreated, report.PostsCreated)
			return nil
		},
	}
}
