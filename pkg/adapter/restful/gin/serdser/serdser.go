// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser contains the serialization and deserialization
// helpers which are shared by the REST resources. All responses are
// wrapped in a Response envelope which reports the success of the
// request, a human readable message, the payload, and the invalid
// request fields (if any).
package serdser

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/log"
)

// Response is the JSON envelope of all responses.
type Response struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Bind deserializes the request into req using the b binding and
// validates it. In case of errors, a 400 response is written and false
// is returned, so the caller may return immediately.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	return respond(c, c.ShouldBindWith(req, b))
}

func respond(c *gin.Context, err error) bool {
	switch err := err.(type) {
	case *validator.InvalidValidationError:
		SerErr(c, err)
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		Invalid(c, nameToErrs)
	default:
		if err == nil {
			return true
		}
		c.JSON(http.StatusBadRequest, Response{Message: err.Error()})
	}
	return false
}

// BindOptional is like Bind, but accepts a request without a body and
// leaves req untouched in that case.
func BindOptional(c *gin.Context, req any, b binding.Binding) bool {
	r := c.Request
	if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
		return true
	}
	err := c.ShouldBindWith(req, b)
	if errors.Is(err, io.EOF) {
		return true
	}
	return respond(c, err)
}

// BindURI deserializes the path parameters into req.
func BindURI(c *gin.Context, req any) bool {
	if err := c.ShouldBindUri(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			var nameToErrs map[string][]string
			for _, ferr := range verrs {
				AddErr(&nameToErrs, ferr.Field(), ferr.Error())
			}
			Invalid(c, nameToErrs)
			return false
		}
		c.JSON(http.StatusBadRequest, Response{Message: err.Error()})
		return false
	}
	return true
}

// AddErr appends msgs to the name field errors, allocating the errs
// map if it is nil.
func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	if elist, ok := (*errs)[name]; !ok {
		(*errs)[name] = msgs
	} else {
		(*errs)[name] = append(elist, msgs...)
	}
}

// Assert adds msgs to the name field errors if ok is false.
func Assert(errs *map[string][]string, ok bool, name string, msgs ...string) bool {
	if ok {
		return true
	}
	AddErr(errs, name, msgs...)
	return false
}

// Invalid writes a 400 response listing the errs field errors.
func Invalid(c *gin.Context, errs map[string][]string) {
	c.JSON(http.StatusBadRequest, Response{
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Ok writes a successful response with the given status code.
func Ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// SerErr writes the err error using its cerr.Error status code.
// Messages of internal errors are logged and are not exposed.
func SerErr(c *gin.Context, err error) {
	status := cerr.StatusCode(err)
	if status == http.StatusInternalServerError {
		log.Error(c, "request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			log.Err("err", err),
		)
		c.JSON(status, Response{Message: "An internal error occurred"})
		return
	}
	var ce *cerr.Error
	msg := err.Error()
	if errors.As(err, &ce) {
		msg = ce.Err.Error()
	}
	c.JSON(status, Response{Message: msg})
}
