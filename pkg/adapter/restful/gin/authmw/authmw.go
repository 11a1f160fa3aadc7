// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package authmw contains the authentication middleware which verifies
// the bearer JSON web tokens of incoming requests and stores their
// model.Caller in the gin context, so resources can pass it to the
// use cases. Tokens are issued by an external identity service and
// are signed with a shared HMAC key.
package authmw

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/model"
)

const callerKey = "crweb.caller"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrShortKey     = errors.New("signing key must have at least 32 bytes")
)

// Claims are the JWT claims which are expected in a bearer token.
// The subject identifies the user and Role must be a valid model.Role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator verifies and signs HS256 tokens using a shared key.
type Authenticator struct {
	key    []byte
	parser *jwt.Parser
	now    func() time.Time
}

// New instantiates an Authenticator. The now function is used as the
// clock of token validation and signing. It defaults to time.Now.
func New(key []byte, now func() time.Time) (*Authenticator, error) {
	if len(key) < 32 {
		return nil, ErrShortKey
	}
	if now == nil {
		now = time.Now
	}
	return &Authenticator{
		key: key,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithTimeFunc(now),
		),
		now: now,
	}, nil
}

// Handler returns a middleware which rejects requests without a valid
// bearer token by a 401 response.
func (a *Authenticator) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := a.Verify(c.GetHeader("Authorization"))
		if err != nil {
			serdser.SerErr(c, err)
			c.Abort()
			return
		}
		c.Set(callerKey, caller)
		c.Request = c.Request.WithContext(log.WithAttrs(
			c.Request.Context(),
			slog.String("user", caller.UserID),
			log.Stringer("role", caller.Role),
		))
		c.Next()
	}
}

// Verify parses the authz Authorization header value and returns the
// authenticated caller. All failures are cerr.Authentication errors.
func (a *Authenticator) Verify(authz string) (model.Caller, error) {
	raw, ok := strings.CutPrefix(authz, "Bearer ")
	if !ok || raw == "" {
		return model.Caller{}, cerr.Authentication(ErrMissingToken)
	}
	claims := &Claims{}
	_, err := a.parser.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) {
			return a.key, nil
		},
	)
	if err != nil {
		return model.Caller{}, cerr.Authentication(
			fmt.Errorf("%w: %w", ErrInvalidToken, err),
		)
	}
	if claims.Subject == "" {
		return model.Caller{}, cerr.Authentication(
			fmt.Errorf("%w: empty subject", ErrInvalidToken),
		)
	}
	role, err := model.ParseRole(claims.Role)
	if err != nil {
		return model.Caller{}, cerr.Authentication(
			fmt.Errorf("%w: %w", ErrInvalidToken, err),
		)
	}
	return model.Caller{UserID: claims.Subject, Role: role}, nil
}

// Sign issues a token for the caller which expires after ttl.
// It is used by the development tooling and tests since production
// tokens are issued by the identity service.
func (a *Authenticator) Sign(caller model.Caller, ttl time.Duration) (string, error) {
	if err := caller.Role.Validate(); err != nil {
		return "", fmt.Errorf("role: %w", err)
	}
	now := a.now()
	claims := Claims{
		Role: caller.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.key)
}

// Caller returns the authenticated caller of the c request. It returns
// an anonymous caller if the Handler middleware was not used, so the
// use cases reject the request.
func Caller(c *gin.Context) model.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(model.Caller); ok {
			return caller
		}
	}
	return model.Caller{}
}
