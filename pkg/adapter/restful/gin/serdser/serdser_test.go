// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package serdser_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serErr(t *testing.T, err error) (int, serdser.Response) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	serdser.SerErr(c, err)
	res := serdser.Response{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return w.Code, res
}

func TestSerErr(t *testing.T) {
	wrapped := fmt.Errorf("creating booking: %w", cerr.Conflict(model.ErrDatesOverlap))
	code, res := serErr(t, wrapped)
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, res.Success)
	assert.Equal(t, model.ErrDatesOverlap.Error(), res.Message)

	code, res = serErr(t, errors.New("connection refused to 10.0.0.1"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "An internal error occurred", res.Message,
		"internal details must not be exposed",
	)
}

func TestAssert(t *testing.T) {
	var errs map[string][]string
	assert.True(t, serdser.Assert(&errs, true, "a", "never"))
	assert.Nil(t, errs)
	assert.False(t, serdser.Assert(&errs, false, "a", "first"))
	serdser.AddErr(&errs, "a", "second")
	assert.Equal(t, map[string][]string{"a": {"first", "second"}}, errs)
}
