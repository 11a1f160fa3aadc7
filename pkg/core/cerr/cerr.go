// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr contains the core errors. An Error wraps another error
// and annotates it with the kind of failure, expressed as an HTTP
// status code so the adapters layer can report it without knowing all
// sentinel errors of the model package. Errors which are not wrapped by
// an Error instance are infrastructure failures.
package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

// BadRequest indicates a validation error.
func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

func Authentication(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusUnauthorized}
}

// Authorization indicates that the caller is neither the resource
// owner nor has an accepted role.
func Authorization(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusForbidden}
}

func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// Conflict indicates a date overlap, an already paid booking, or
// a unique constraint violation.
func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}

// InvalidState indicates that an operation is not permitted in the
// current status of its target entity.
func InvalidState(err error) *Error {
	return &Error{
		Err:            err,
		HTTPStatusCode: http.StatusUnprocessableEntity,
	}
}

// StatusCode returns the HTTP status code of err if it wraps an Error
// and http.StatusInternalServerError otherwise.
func StatusCode(err error) int {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.HTTPStatusCode
	}
	return http.StatusInternalServerError
}

// Is reports if err wraps an Error with the given status code.
func Is(err error, statusCode int) bool {
	return StatusCode(err) == statusCode
}
