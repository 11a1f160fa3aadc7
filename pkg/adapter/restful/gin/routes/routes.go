// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/car-rental/pkg/adapter/config"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/bookingsrp"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/carsrp"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/locationsrp"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/notificationsrp"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/paymentsrp"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/bookingsrs"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/carsrs"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/notificationsrs"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/paymentsrs"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/bookingsuc"
	"github.com/momeni/car-rental/pkg/core/usecase/carsuc"
	"github.com/momeni/car-rental/pkg/core/usecase/notificationsuc"
	"github.com/momeni/car-rental/pkg/core/usecase/paymentsuc"
)

// BasePath is the prefix of all REST APIs.
const BasePath = "/api/crweb/v1"

// Repos contains the repositories which are guided by the connections
// of one connection pool.
type Repos struct {
	Cars          repo.Cars
	Locations     repo.Locations
	Bookings      repo.Bookings
	Payments      repo.Payments
	Notifications repo.Notifications
}

// PostgresRepos returns the PostgreSQL repositories.
func PostgresRepos() Repos {
	return Repos{
		Cars:          carsrp.New(),
		Locations:     locationsrp.New(),
		Bookings:      bookingsrp.New(),
		Payments:      paymentsrp.New(),
		Notifications: notificationsrp.New(),
	}
}

// UseCases contains the use case instances which are adapted by the
// REST resources.
type UseCases struct {
	Bookings      *bookingsuc.UseCase
	Payments      *paymentsuc.UseCase
	Cars          *carsuc.UseCase
	Notifications *notificationsuc.UseCase
}

// NewUseCases instantiates all use cases based on the c configuration
// settings. The p connections pool is passed to the use case
// instances, so they may acquire/release connections and transactions
// on demand. These connections/transactions will be passed to the r
// repositories later in order to run relevant queries on them.
// The notifications use case is shared as the notification sink of the
// bookings and payments use cases.
func NewUseCases(p repo.Pool, c *config.Config, r Repos) (*UseCases, error) {
	ucs := &UseCases{
		Notifications: notificationsuc.New(p, r.Notifications),
	}
	var err error
	ucs.Bookings, err = c.NewBookingsUseCase(
		p, r.Cars, r.Locations, r.Bookings, r.Payments, ucs.Notifications,
	)
	if err != nil {
		return nil, fmt.Errorf("creating bookings use case: %w", err)
	}
	ucs.Payments, err = c.NewPaymentsUseCase(
		p, r.Bookings, r.Payments, r.Cars, r.Locations, ucs.Notifications,
	)
	if err != nil {
		return nil, fmt.Errorf("creating payments use case: %w", err)
	}
	ucs.Cars, err = c.NewCarsUseCase(p, r.Cars)
	if err != nil {
		return nil, fmt.Errorf("creating cars use case: %w", err)
	}
	return ucs, nil
}

// Register instantiates the PostgreSQL repositories and all use cases
// based on the c configuration settings and registers their resources
// as request handlers using the e gin-gonic engine instance.
// Possible errors will be returned after possible wrapping.
func Register(e *gin.Engine, p repo.Pool, c *config.Config) error {
	authn, err := c.Auth.NewAuthenticator()
	if err != nil {
		return fmt.Errorf("creating authenticator: %w", err)
	}
	ucs, err := NewUseCases(p, c, PostgresRepos())
	if err != nil {
		return err
	}
	Mount(e, authn.Handler(), ucs)
	return nil
}

// Mount registers the resources of the ucs use cases under BasePath.
// All APIs require the authn middleware to authenticate the caller.
// Administrative APIs are grouped under the admin prefix, while the
// role checks are performed by the use cases.
func Mount(e *gin.Engine, authn gin.HandlerFunc, ucs *UseCases) {
	r := e.Group(BasePath, authn)
	admin := r.Group("admin")
	bookingsrs.Register(r, admin, ucs.Bookings, ucs.Payments)
	paymentsrs.Register(r, ucs.Payments)
	carsrs.Register(r, admin, ucs.Cars, ucs.Bookings)
	notificationsrs.Register(r, ucs.Notifications)
}
