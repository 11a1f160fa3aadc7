// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the car
// rental web service. Commands are organized using the cobra library.
// The root command starts the web server itself, the "db" sub-command
// can be used for the database initialization actions, and the "token"
// sub-command issues bearer tokens for the REST API callers.
//
//	./crweb [-c /path/of/config.yaml]           # start web server
//	./crweb db init-dev [-c /path/of/config.yaml]
//	./crweb db init-prod [-c /path/of/config.yaml]
//	./crweb token --user u1 --role customer [-c /path/of/config.yaml]
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momeni/car-rental/pkg/adapter/config"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/routes"
	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/spf13/cobra"
)

// shutdownTimeout bounds the graceful shutdown of the web server.
const shutdownTimeout = 15 * time.Second

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "crweb",
	Short: "Car rental booking and payment web service",
	Long: `Car rental booking and payment web service which lets
customers quote and book cars for a date range, pay for their pending
bookings, and follow their notifications, while admins approve, reject,
or track the bookings and cars.
Bookings of one car may not overlap unless they are cancelled or
rejected, and a booking is confirmed as soon as it is paid.`,
	RunE: startWebServer,
	Args: cobra.NoArgs,
}

// loadConfig loads the configuration file and installs its logger as
// the default slog logger.
func loadConfig() (*config.Config, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	slog.SetDefault(slog.New(c.Logger.NewHandler(os.Stderr)))
	return c, nil
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	e := c.Gin.NewEngine()
	if err = routes.Register(e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	err = gin.Serve(ctx, e, c.Gin.Address, shutdownTimeout)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving REST API: %w", err)
	}
	log.Info(ctx, "web server stopped")
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		cfgPath = "configs/sample-config.yaml"
	}
}
