// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/momeni/car-rental/pkg/adapter/config/settings"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/authmw"
)

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized.
type Gin struct {
	Logger   *bool  // Whether to register the gin.Logger() middleware
	Recovery *bool  // Whether to register the gin.Recovery() middleware
	Address  string // listening address, like :8080
}

// DefaultAddress is the listening address when none is configured.
const DefaultAddress = ":8080"

func (g *Gin) normalize() {
	settings.Default(&g.Logger, false)
	settings.Default(&g.Recovery, true)
	if g.Address == "" {
		g.Address = DefaultAddress
	}
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// Logger contains the slog handler settings.
type Logger struct {
	Level  *string // debug, info (default), warn, or error
	Format *string // text (default) or json
}

// ValidateAndNormalize validates the logger settings and fills their
// default values.
func (l *Logger) ValidateAndNormalize() error {
	settings.Default(&l.Level, "info")
	settings.Default(&l.Format, "text")
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(*l.Level)); err != nil {
		return fmt.Errorf("level: %w", err)
	}
	switch *l.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported format: %q", *l.Format)
	}
	return nil
}

// NewHandler creates a slog handler which writes to w.
func (l Logger) NewHandler(w io.Writer) slog.Handler {
	var lvl slog.Level
	_ = lvl.UnmarshalText([]byte(*l.Level))
	opts := &slog.HandlerOptions{Level: lvl}
	if *l.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Auth contains the bearer tokens verification settings.
// The HMAC key is kept in a separate file, so the configuration file
// may be shared without disclosing it.
type Auth struct {
	KeyFile  string             `yaml:"key-file"`
	TokenTTL *settings.Duration `yaml:"token-ttl"`
}

// DefaultTokenTTL is the lifetime of the development tokens.
const DefaultTokenTTL = 24 * time.Hour

// Validate ensures that a key file is configured and fills the
// default token lifetime.
func (a *Auth) Validate() error {
	if a.KeyFile == "" {
		return errors.New("key-file is required")
	}
	settings.Default(&a.TokenTTL, settings.Duration(DefaultTokenTTL))
	if *a.TokenTTL <= 0 {
		return fmt.Errorf("token-ttl must be positive")
	}
	return nil
}

// NewAuthenticator reads the key file and instantiates an
// authmw.Authenticator.
func (a Auth) NewAuthenticator() (*authmw.Authenticator, error) {
	key, err := readSecret(a.KeyFile)
	if err != nil {
		return nil, err
	}
	return authmw.New([]byte(key), nil)
}

func readSecret(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading secret file: %w", err)
	}
	s := strings.TrimSpace(string(b))
	if s == "" {
		return "", fmt.Errorf("secret file %q is empty", path)
	}
	return s, nil
}
