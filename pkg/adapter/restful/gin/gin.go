// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic engine, so the REST API may be
// instantiated and served without importing gin-gonic in the cmd
// layer. Resources are kept in the sub-packages which are named like
// bookingsrs and are registered by the routes package.
package gin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-rental/pkg/core/log"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

// New instantiates an engine using the given middlewares. Unknown
// routes and methods are reported with the JSON response envelope.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.HandleMethodNotAllowed = true
	// handlers pass *gin.Context as the use cases context, so it must
	// expose the request context values and cancellation
	e.ContextWithFallback = true
	e.Use(middlewares...)
	e.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, serdser.Response{
			Message: "Route not found",
		})
	})
	e.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, serdser.Response{
			Message: "Method not allowed",
		})
	})
	return e
}

func Logger() HandlerFunc {
	return gin.Logger()
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}

// Serve listens on addr and serves e until ctx is cancelled. Then,
// the server is shut down gracefully, waiting for the in-flight
// requests at most for the timeout duration.
func Serve(
	ctx context.Context, e *Engine, addr string, timeout time.Duration,
) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "serving REST API", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(
		context.WithoutCancel(ctx), timeout,
	)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
