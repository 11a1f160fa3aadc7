// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package memrepo

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

// Cars returns the in-memory cars repository.
func (s *Store) Cars() repo.Cars {
	return carsRepo{}
}

type carsRepo struct{}

func (carsRepo) Conn(c repo.Conn) repo.CarsConnQueryer {
	return cars{storeOf(c)}
}

func (carsRepo) Tx(tx repo.Tx) repo.CarsTxQueryer {
	return cars{storeOf(tx)}
}

type cars struct {
	s *Store
}

func (q cars) Get(_ context.Context, id uuid.UUID) (*model.Car, error) {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()
	c, ok := q.s.data.cars[id]
	if !ok {
		return nil, cerr.NotFound(model.ErrCarNotFound)
	}
	return &c, nil
}

func (q cars) GetRateCard(
	ctx context.Context, id uuid.UUID,
) (*model.RateCard, error) {
	c, err := q.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &c.RateCard, nil
}

func (q cars) update(id uuid.UUID, f func(c *model.Car)) (*model.Car, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	c, ok := q.s.data.cars[id]
	if !ok {
		return nil, cerr.NotFound(model.ErrCarNotFound)
	}
	f(&c)
	q.s.data.cars[id] = c
	return &c, nil
}

func (q cars) SetStatus(
	_ context.Context, id uuid.UUID, st model.CarStatus,
) (*model.Car, error) {
	return q.update(id, func(c *model.Car) {
		c.Status = st
	})
}

func (q cars) Track(
	_ context.Context, id uuid.UUID, coord model.Coordinate,
) (*model.Car, error) {
	return q.update(id, func(c *model.Car) {
		c.Coordinate = coord
	})
}

// Locations returns the in-memory locations repository.
func (s *Store) Locations() repo.Locations {
	return locationsRepo{}
}

type locationsRepo struct{}

func (locationsRepo) Conn(c repo.Conn) repo.LocationsConnQueryer {
	return locations{storeOf(c)}
}

func (locationsRepo) Tx(tx repo.Tx) repo.LocationsTxQueryer {
	return locations{storeOf(tx)}
}

type locations struct {
	s *Store
}

func (q locations) Get(
	_ context.Context, id uuid.UUID,
) (*model.Location, error) {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()
	l, ok := q.s.data.locations[id]
	if !ok {
		return nil, cerr.NotFound(model.ErrLocationNotFound)
	}
	return &l, nil
}

// Bookings returns the in-memory bookings repository.
func (s *Store) Bookings() repo.Bookings {
	return bookingsRepo{}
}

type bookingsRepo struct{}

func (bookingsRepo) Conn(c repo.Conn) repo.BookingsConnQueryer {
	return bookings{storeOf(c)}
}

func (bookingsRepo) Tx(tx repo.Tx) repo.BookingsTxQueryer {
	return bookings{storeOf(tx)}
}

type bookings struct {
	s *Store
}

// LockCar is a no-op because transactions are serialized.
func (q bookings) LockCar(context.Context, uuid.UUID) error {
	return nil
}

func (q bookings) Get(
	_ context.Context, id uuid.UUID,
) (*model.Booking, error) {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()
	b, ok := q.s.data.bookings[id]
	if !ok {
		return nil, cerr.NotFound(model.ErrBookingNotFound)
	}
	return &b, nil
}

func (q bookings) GetForUpdate(
	ctx context.Context, id uuid.UUID,
) (*model.Booking, error) {
	return q.Get(ctx, id)
}

func (q bookings) GetByNumber(
	_ context.Context, number string,
) (*model.Booking, error) {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()
	for _, b := range q.s.data.bookings {
		if b.Number == number {
			return &b, nil
		}
	}
	return nil, cerr.NotFound(model.ErrBookingNotFound)
}

func (q bookings) ExistsOverlap(
	_ context.Context,
	carID uuid.UUID,
	start, end time.Time,
	excludeID *uuid.UUID,
) (bool, error) {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()
	for _, b := range q.s.data.bookings {
		if b.CarID != carID || !b.Status.Blocking() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if model.DateRangesOverlap(b.StartDate, b.EndDate, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (q bookings) ListByUser(
	_ context.Context, userID string,
) ([]model.Booking, error) {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()
	var bs []model.Booking
	for _, b := range q.s.data.bookings {
		if b.UserID == userID {
			bs = append(bs, b)
		}
	}
	slices.SortFunc(bs, func(a, b model.Booking) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return bs, nil
}

func (q bookings) Insert(_ context.Context, b *model.Booking) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	for _, o := range q.s.data.bookings {
		if o.Number == b.Number {
			return cerr.Conflict(fmt.Errorf(
				"number %q: %w", b.Number, model.ErrDuplicateBookingNumber,
			))
		}
	}
	b.ID = uuid.New()
	b.UpdatedAt = nil
	q.s.data.bookings[b.ID] = *b
	return nil
}

func (q bookings) Update(_ context.Context, b *model.Booking) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	o, ok := q.s.data.bookings[b.ID]
	if !ok {
		return cerr.NotFound(model.ErrBookingNotFound)
	}
	o.Status = b.Status
	o.Notes = b.Notes
	o.CancellationReason = b.CancellationReason
	o.CancelledAt = b.CancelledAt
	o.ActualPickupTime = b.ActualPickupTime
	o.ActualReturnTime = b.ActualReturnTime
	o.AssignedDriverID = b.AssignedDriverID
	o.UpdatedAt = b.UpdatedAt
	q.s.data.bookings[b.ID] = o
	return nil
}

// Payments returns the in-memory payments repository.
func (s *Store) Payments() repo.Payments {
	return paymentsRepo{}
}

type paymentsRepo struct{}

func (paymentsRepo) Conn(c repo.Conn) repo.PaymentsConnQueryer {
	return payments{storeOf(c)}
}

func (paymentsRepo) Tx(tx repo.Tx) repo.PaymentsTxQueryer {
	return payments{storeOf(tx)}
}

type payments struct {
	s *Store
}

func (q payments) Get(
	_ context.Context, id uuid.UUID,
) (*model.Payment, error) {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()
	p, ok := q.s.data.payments[id]
	if !ok {
		return nil, cerr.NotFound(model.ErrPaymentNotFound)
	}
	return &p, nil
}

func (q payments) find(bookingID uuid.UUID, f func(*model.Payment) bool) *model.Payment {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()
	for _, p := range q.s.data.payments {
		if p.BookingID == bookingID && f(&p) {
			return &p
		}
	}
	return nil
}

func (q payments) ForBooking(
	_ context.Context, bookingID uuid.UUID,
) (*model.Payment, error) {
	return q.find(bookingID, func(*model.Payment) bool {
		return true
	}), nil
}

func (q payments) FindCompletedForBooking(
	_ context.Context, bookingID uuid.UUID,
) (*model.Payment, error) {
	return q.find(bookingID, func(p *model.Payment) bool {
		return p.Status == model.PaymentStatusCompleted
	}), nil
}

func (q payments) ListByUser(
	_ context.Context, userID string,
) ([]model.Payment, error) {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()
	var ps []model.Payment
	for _, p := range q.s.data.payments {
		if p.UserID == userID {
			ps = append(ps, p)
		}
	}
	slices.SortFunc(ps, func(a, b model.Payment) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return ps, nil
}

func (q payments) Insert(_ context.Context, p *model.Payment) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	for _, o := range q.s.data.payments {
		if o.BookingID == p.BookingID {
			return cerr.Conflict(fmt.Errorf(
				"booking %v has a payment", p.BookingID,
			))
		}
	}
	p.ID = uuid.New()
	p.UpdatedAt = nil
	q.s.data.payments[p.ID] = *p
	return nil
}

func (q payments) Update(_ context.Context, p *model.Payment) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	o, ok := q.s.data.payments[p.ID]
	if !ok {
		return cerr.NotFound(model.ErrPaymentNotFound)
	}
	stored := *p
	stored.BookingID, stored.UserID = o.BookingID, o.UserID
	stored.CreatedAt = o.CreatedAt
	q.s.data.payments[p.ID] = stored
	return nil
}

// Notifications returns the in-memory notifications repository.
func (s *Store) Notifications() repo.Notifications {
	return notificationsRepo{}
}

type notificationsRepo struct{}

func (notificationsRepo) Conn(c repo.Conn) repo.NotificationsConnQueryer {
	return notifications{storeOf(c)}
}

func (notificationsRepo) Tx(tx repo.Tx) repo.NotificationsTxQueryer {
	return notifications{storeOf(tx)}
}

type notifications struct {
	s *Store
}

func (q notifications) Insert(
	_ context.Context, n *model.Notification,
) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	n.ID = uuid.New()
	n.CreatedAt = q.s.Now()
	q.s.data.notifications[n.ID] = *n
	return nil
}

func (q notifications) ListByUser(
	_ context.Context, userID string,
) ([]model.Notification, error) {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()
	var ns []model.Notification
	for _, n := range q.s.data.notifications {
		if n.UserID == userID {
			ns = append(ns, n)
		}
	}
	slices.SortFunc(ns, func(a, b model.Notification) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Title, b.Title)
	})
	return ns, nil
}

func (q notifications) MarkRead(
	_ context.Context, userID string, id uuid.UUID,
) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	n, ok := q.s.data.notifications[id]
	if !ok || n.UserID != userID {
		return cerr.NotFound(model.ErrNotificationNotFound)
	}
	n.IsRead = true
	q.s.data.notifications[id] = n
	return nil
}
