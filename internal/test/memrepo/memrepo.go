// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memrepo provides an in-memory implementation of the repo
// package interfaces. It is used by the use case and REST tests which
// need realistic repositories without a PostgreSQL server.
//
// Transactions are serialized by a global mutex, so the car locking
// of the bookings repository is implied. Changes of a transaction are
// reverted if its handler returns an error or panics.
package memrepo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

// ErrRawSQL is returned by the Exec methods since the
// in-memory store cannot interpret SQL statements.
var ErrRawSQL = errors.New("raw sql is not supported by memrepo")

// Store keeps all entities in memory and implements the repo.Pool
// interface. Its Cars, Locations, Bookings, Payments, and
// Notifications methods return the repositories which must be guided
// by connections of the same Store.
type Store struct {
	txMu sync.Mutex   // held during a transaction
	mu   sync.RWMutex // guards the following maps
	data tables

	// Now returns the creation timestamps of notifications and of the
	// fixtures which are added without one. It defaults to the current
	// UTC time.
	Now func() time.Time
}

type tables struct {
	cars          map[uuid.UUID]model.Car
	locations     map[uuid.UUID]model.Location
	bookings      map[uuid.UUID]model.Booking
	payments      map[uuid.UUID]model.Payment
	notifications map[uuid.UUID]model.Notification
}

func (t tables) clone() tables {
	return tables{
		cars:          cloneMap(t.cars),
		locations:     cloneMap(t.locations),
		bookings:      cloneMap(t.bookings),
		payments:      cloneMap(t.payments),
		notifications: cloneMap(t.notifications),
	}
}

func cloneMap[V any](m map[uuid.UUID]V) map[uuid.UUID]V {
	c := make(map[uuid.UUID]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// New creates an empty Store.
func New() *Store {
	s := &Store{
		Now: func() time.Time {
			return time.Now().UTC()
		},
	}
	s.data = tables{}.clone()
	return s
}

// Conn passes a connection of s to the handler.
func (s *Store) Conn(ctx context.Context, handler repo.ConnHandler) error {
	return handler(ctx, &Conn{s: s})
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// AddCar stores a copy of c, assigning a new ID if it is nil, and
// returns the stored car.
func (s *Store) AddCar(c model.Car) model.Car {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.cars[c.ID] = c
	return c
}

// AddLocation stores a copy of l, assigning a new ID if it is nil,
// and returns the stored location.
func (s *Store) AddLocation(l model.Location) model.Location {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.locations[l.ID] = l
	return l
}

// AddBooking stores a copy of b as is, assigning a new ID if it is
// nil, and returns the stored booking. Tests use it in order to
// prepare bookings with arbitrary statuses.
func (s *Store) AddBooking(b model.Booking) model.Booking {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = s.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.bookings[b.ID] = b
	return b
}

// Counts returns the number of stored bookings, payments, and
// notifications.
func (s *Store) Counts() (bookings, payments, notifications int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.bookings), len(s.data.payments),
		len(s.data.notifications)
}

// Conn is a connection to a Store.
type Conn struct {
	s *Store
}

// Tx runs f in a transaction. Transactions of a Store are serialized.
// If f returns an error or panics, all changes are reverted.
func (c *Conn) Tx(ctx context.Context, f repo.TxHandler) (err error) {
	s := c.s
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()
	defer func() {
		if r := recover(); r != nil {
			s.restore(snapshot)
			err = fmt.Errorf("panicked: %v", r)
			return
		}
		if err != nil {
			s.restore(snapshot)
			err = fmt.Errorf("handler: %w", err)
		}
	}()
	return f(ctx, &Tx{s: s})
}

func (s *Store) restore(t tables) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = t
}

// Exec always fails with ErrRawSQL.
func (c *Conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawSQL
}

// IsConn marks Conn as a repo.Conn implementation.
func (c *Conn) IsConn() {
}

// Tx is a transaction on a Store.
type Tx struct {
	s *Store
}

// Exec always fails with ErrRawSQL.
func (tx *Tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawSQL
}

// IsTx marks Tx as a repo.Tx implementation.
func (tx *Tx) IsTx() {
}

func storeOf(q repo.Queryer) *Store {
	switch qq := q.(type) {
	case *Conn:
		return qq.s
	case *Tx:
		return qq.s
	default:
		panic(fmt.Sprintf("unexpected queryer type: %T", q))
	}
}
