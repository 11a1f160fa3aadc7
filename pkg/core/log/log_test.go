// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })
	slog.SetDefault(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: level,
	})))
	return buf
}

func TestContextAttrs(t *testing.T) {
	buf := capture(t, slog.LevelInfo)
	ctx := log.WithAttrs(context.Background(), slog.String("user", "u1"))
	ctx = log.WithAttrs(ctx, slog.String("method", "POST"))
	id := uuid.MustParse("9d2e6f10-7a1b-4c2d-8e3f-000000000001")
	log.Info(ctx, "booking created", log.Stringer("car", id))
	log.Debug(ctx, "hidden")

	out := buf.String()
	assert.Contains(t, out, `msg="booking created"`)
	assert.Contains(t, out, "user=u1 method=POST car="+id.String())
	assert.NotContains(t, out, "hidden")
}

func TestErr(t *testing.T) {
	buf := capture(t, slog.LevelDebug)
	log.Warn(context.Background(), "notify", log.Err("err", errors.New("smtp down")))
	log.Error(context.Background(), "nothing", log.Err("err", nil))
	assert.Contains(t, buf.String(), `err="smtp down"`)
	assert.Contains(t, buf.String(), "err=no-error")
}
