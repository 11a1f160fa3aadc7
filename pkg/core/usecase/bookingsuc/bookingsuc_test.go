// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookingsuc_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/internal/test/memrepo"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/notify"
	"github.com/momeni/car-rental/pkg/core/usecase/bookingsuc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BookingsTestSuite struct {
	suite.Suite

	Ctx   context.Context
	Store *memrepo.Store
	UC    *bookingsuc.UseCase
	Car   model.Car
	Loc   model.Location
	Today time.Time

	mu    sync.Mutex
	Sent  []string // titles of sent notifications
	Fails atomic.Bool
}

var (
	customer = model.Caller{UserID: "u1", Role: model.RoleCustomer}
	stranger = model.Caller{UserID: "u2", Role: model.RoleCustomer}
	admin    = model.Caller{UserID: "a1", Role: model.RoleAdmin}
)

func TestBookingsTestSuite(t *testing.T) {
	suite.Run(t, &BookingsTestSuite{Ctx: context.Background()})
}

func (bts *BookingsTestSuite) SetupTest() {
	bts.Store = memrepo.New()
	bts.Today = time.Date(2030, 6, 1, 9, 30, 0, 0, time.UTC)
	bts.Sent = nil
	bts.Fails.Store(false)
	bts.Car = bts.Store.AddCar(model.Car{
		Brand:  "Toyota",
		Model:  "Corolla",
		Year:   2022,
		Status: model.CarStatusAvailable,
		RateCard: model.RateCard{
			PricePerDay:   decimal.NewFromInt(50),
			DepositAmount: decimal.NewFromInt(200),
		},
	})
	bts.Loc = bts.Store.AddLocation(model.Location{Name: "Airport"})
	n := notify.NotifierFunc(func(_ context.Context, _, _, title, _ string) error {
		bts.mu.Lock()
		defer bts.mu.Unlock()
		bts.Sent = append(bts.Sent, title)
		if bts.Fails.Load() {
			return errNotifier
		}
		return nil
	})
	uc, err := bookingsuc.New(
		bts.Store,
		bts.Store.Cars(),
		bts.Store.Locations(),
		bts.Store.Bookings(),
		bts.Store.Payments(),
		bookingsuc.WithNotifier(n),
		bookingsuc.WithClock(func() time.Time { return bts.Today }),
	)
	bts.Require().NoError(err)
	bts.UC = uc
}

var errNotifier = errors.New("notifier is down")

func (bts *BookingsTestSuite) request(startDay, endDay int) *model.RentalRequest {
	return &model.RentalRequest{
		CarID:            bts.Car.ID,
		StartDate:        bts.Today.AddDate(0, 0, startDay),
		EndDate:          bts.Today.AddDate(0, 0, endDay),
		PickupLocationID: bts.Loc.ID,
		ReturnLocationID: bts.Loc.ID,
		ContactEmail:     "u1@example.com",
	}
}

func (bts *BookingsTestSuite) TestCreate() {
	b, err := bts.UC.Create(bts.Ctx, customer, bts.request(1, 3))
	bts.Require().NoError(err)
	bts.Equal(model.BookingStatusPending, b.Status)
	bts.Equal(3, b.TotalDays)
	bts.True(decimal.NewFromInt(177).Equal(b.TotalAmount), b.TotalAmount)
	bts.True(decimal.NewFromInt(200).Equal(b.DepositAmount))
	bts.Regexp(`^BK20300601[0-9A-F]{6}$`, b.Number)
	bts.NotEqual(uuid.Nil, b.ID)
	bts.Equal([]string{"Booking Created"}, bts.Sent)

	got, err := bts.UC.GetByNumber(bts.Ctx, customer, b.Number)
	bts.Require().NoError(err)
	bts.Equal(b.ID, got.ID)
	bts.True(bts.Today.Equal(got.CreatedAt), "stamped by the use case clock")
	bts.Nil(got.UpdatedAt)
}

func (bts *BookingsTestSuite) TestCreateOverlapIsConflict() {
	_, err := bts.UC.Create(bts.Ctx, customer, bts.request(1, 3))
	bts.Require().NoError(err)

	// touching ranges share the third day
	_, err = bts.UC.Create(bts.Ctx, stranger, bts.request(3, 5))
	bts.ErrorIs(err, model.ErrDatesOverlap)
	bts.Equal(http.StatusConflict, cerr.StatusCode(err))

	_, err = bts.UC.Create(bts.Ctx, stranger, bts.request(4, 5))
	bts.NoError(err)
	nb, _, _ := bts.Store.Counts()
	bts.Equal(2, nb)
}

func (bts *BookingsTestSuite) TestCancelledBookingReleasesDates() {
	b, err := bts.UC.Create(bts.Ctx, customer, bts.request(1, 3))
	bts.Require().NoError(err)
	_, err = bts.UC.Cancel(bts.Ctx, customer, b.ID, "plans changed")
	bts.Require().NoError(err)

	overlap, err := bts.UC.IsOverlapping(
		bts.Ctx, bts.Car.ID, b.StartDate, b.EndDate, nil,
	)
	bts.Require().NoError(err)
	bts.False(overlap)
	_, err = bts.UC.Create(bts.Ctx, stranger, bts.request(2, 2))
	bts.NoError(err)
}

func (bts *BookingsTestSuite) TestIsOverlappingExcludesItself() {
	b, err := bts.UC.Create(bts.Ctx, customer, bts.request(1, 3))
	bts.Require().NoError(err)
	overlap, err := bts.UC.IsOverlapping(
		bts.Ctx, bts.Car.ID, b.StartDate, b.EndDate, &b.ID,
	)
	bts.Require().NoError(err)
	bts.False(overlap)
	overlap, err = bts.UC.IsOverlapping(
		bts.Ctx, bts.Car.ID, b.EndDate, b.EndDate.AddDate(0, 0, 4), nil,
	)
	bts.Require().NoError(err)
	bts.True(overlap)
}

func (bts *BookingsTestSuite) TestConcurrentCreateAllowsOneWinner() {
	const n = 16
	var wg sync.WaitGroup
	var succeeded, conflicted atomic.Int32
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := bts.UC.Create(bts.Ctx, customer, bts.request(5, 7))
			switch {
			case err == nil:
				succeeded.Add(1)
			case cerr.Is(err, http.StatusConflict):
				conflicted.Add(1)
			}
		}()
	}
	wg.Wait()
	bts.Equal(int32(1), succeeded.Load())
	bts.Equal(int32(n-1), conflicted.Load())
}

func (bts *BookingsTestSuite) TestCreateValidation() {
	req := bts.request(-1, 2)
	_, err := bts.UC.Create(bts.Ctx, customer, req)
	bts.Equal(http.StatusBadRequest, cerr.StatusCode(err))

	req = bts.request(3, 1)
	_, err = bts.UC.Create(bts.Ctx, customer, req)
	bts.Equal(http.StatusBadRequest, cerr.StatusCode(err))

	_, err = bts.UC.Create(bts.Ctx, model.Caller{}, bts.request(1, 2))
	bts.Equal(http.StatusUnauthorized, cerr.StatusCode(err))

	req = bts.request(1, 2)
	req.CarID = uuid.New()
	_, err = bts.UC.Create(bts.Ctx, customer, req)
	bts.ErrorIs(err, model.ErrCarNotFound)
	bts.Equal(http.StatusNotFound, cerr.StatusCode(err))

	req = bts.request(1, 2)
	req.ReturnLocationID = uuid.New()
	_, err = bts.UC.Create(bts.Ctx, customer, req)
	bts.ErrorIs(err, model.ErrLocationNotFound)

	nb, _, _ := bts.Store.Counts()
	bts.Zero(nb)
}

func (bts *BookingsTestSuite) TestCreateRejectsCarInMaintenance() {
	car := bts.Car
	car.ID = uuid.Nil
	car.Status = model.CarStatusMaintenance
	car = bts.Store.AddCar(car)
	req := bts.request(1, 2)
	req.CarID = car.ID
	_, err := bts.UC.Create(bts.Ctx, customer, req)
	bts.ErrorIs(err, model.ErrCarUnavailable)
	bts.Equal(http.StatusConflict, cerr.StatusCode(err))
}

func (bts *BookingsTestSuite) TestCalculateCost() {
	req := bts.request(1, 3)
	req.NeedsDriver = true
	req.WithInsurance = true
	cb, err := bts.UC.CalculateCost(bts.Ctx, req)
	bts.Require().NoError(err)
	bts.True(decimal.RequireFromString("389.4").Equal(cb.TotalAmount))
	nb, _, _ := bts.Store.Counts()
	bts.Zero(nb)
}

func (bts *BookingsTestSuite) TestCancelCompletedIsInvalidState() {
	b := bts.Store.AddBooking(model.Booking{
		UserID:    customer.UserID,
		CarID:     bts.Car.ID,
		Number:    "BK20300601AAAAAA",
		StartDate: bts.Today,
		EndDate:   bts.Today,
		Status:    model.BookingStatusCompleted,
	})
	_, err := bts.UC.Cancel(bts.Ctx, customer, b.ID, "")
	bts.ErrorIs(err, model.ErrInvalidTransition)
	bts.Equal(http.StatusUnprocessableEntity, cerr.StatusCode(err))

	got, err := bts.UC.Get(bts.Ctx, customer, b.ID)
	bts.Require().NoError(err)
	bts.Equal(model.BookingStatusCompleted, got.Status)
	bts.Nil(got.CancelledAt)
}

func (bts *BookingsTestSuite) TestCancelErrorOrder() {
	_, err := bts.UC.Cancel(bts.Ctx, customer, uuid.New(), "")
	bts.Equal(http.StatusNotFound, cerr.StatusCode(err))

	b := bts.Store.AddBooking(model.Booking{
		UserID: customer.UserID,
		CarID:  bts.Car.ID,
		Number: "BK20300601BBBBBB",
		Status: model.BookingStatusRejected,
	})
	_, err = bts.UC.Cancel(bts.Ctx, stranger, b.ID, "")
	bts.Equal(http.StatusForbidden, cerr.StatusCode(err))
	_, err = bts.UC.Cancel(bts.Ctx, customer, b.ID, "")
	bts.Equal(http.StatusUnprocessableEntity, cerr.StatusCode(err))
}

func (bts *BookingsTestSuite) TestAdminCancelsConfirmedBooking() {
	b, err := bts.UC.Create(bts.Ctx, customer, bts.request(1, 3))
	bts.Require().NoError(err)
	_, err = bts.UC.Approve(bts.Ctx, admin, b.ID)
	bts.Require().NoError(err)
	got, err := bts.UC.Cancel(bts.Ctx, admin, b.ID, "car damaged")
	bts.Require().NoError(err)
	bts.Equal(model.BookingStatusCancelled, got.Status)
	bts.Equal("car damaged", got.CancellationReason)
	bts.Require().NotNil(got.CancelledAt)
	bts.Equal(bts.Today, *got.CancelledAt)
}

func (bts *BookingsTestSuite) TestApproveAndReject() {
	b, err := bts.UC.Create(bts.Ctx, customer, bts.request(1, 3))
	bts.Require().NoError(err)

	_, err = bts.UC.Approve(bts.Ctx, customer, b.ID)
	bts.Equal(http.StatusForbidden, cerr.StatusCode(err))
	_, err = bts.UC.Reject(bts.Ctx, admin, b.ID, "")
	bts.ErrorIs(err, model.ErrReasonRequired)

	got, err := bts.UC.Approve(bts.Ctx, admin, b.ID)
	bts.Require().NoError(err)
	bts.Equal(model.BookingStatusConfirmed, got.Status)
	bts.Require().NotNil(got.UpdatedAt)
	bts.True(bts.Today.Equal(*got.UpdatedAt))
	stored, err := bts.UC.Get(bts.Ctx, admin, b.ID)
	bts.Require().NoError(err)
	bts.Require().NotNil(stored.UpdatedAt)
	bts.True(bts.Today.Equal(*stored.UpdatedAt))

	_, err = bts.UC.Approve(bts.Ctx, admin, b.ID)
	bts.Equal(http.StatusUnprocessableEntity, cerr.StatusCode(err))
	_, err = bts.UC.Reject(bts.Ctx, admin, b.ID, "no documents")
	bts.Equal(http.StatusUnprocessableEntity, cerr.StatusCode(err))

	b2, err := bts.UC.Create(bts.Ctx, stranger, bts.request(10, 11))
	bts.Require().NoError(err)
	got, err = bts.UC.Reject(bts.Ctx, admin, b2.ID, "no documents")
	bts.Require().NoError(err)
	bts.Equal(model.BookingStatusRejected, got.Status)
	bts.Equal("no documents", got.CancellationReason)
}

func (bts *BookingsTestSuite) TestUpdateStatusOverride() {
	b, err := bts.UC.Create(bts.Ctx, customer, bts.request(1, 3))
	bts.Require().NoError(err)

	_, err = bts.UC.UpdateStatus(
		bts.Ctx, customer, b.ID, model.BookingStatusInProgress, "",
	)
	bts.Equal(http.StatusForbidden, cerr.StatusCode(err))
	_, err = bts.UC.UpdateStatus(
		bts.Ctx, admin, b.ID, model.BookingStatusInvalid, "",
	)
	bts.Equal(http.StatusBadRequest, cerr.StatusCode(err))

	got, err := bts.UC.UpdateStatus(
		bts.Ctx, admin, b.ID, model.BookingStatusInProgress, "keys handed over",
	)
	bts.Require().NoError(err)
	bts.Require().NotNil(got.ActualPickupTime)
	bts.Equal("keys handed over", got.Notes)
	bts.Nil(got.ActualReturnTime)

	got, err = bts.UC.UpdateStatus(
		bts.Ctx, admin, b.ID, model.BookingStatusCompleted, "",
	)
	bts.Require().NoError(err)
	bts.NotNil(got.ActualReturnTime)
	bts.Equal("keys handed over", got.Notes, "empty notes keep the old ones")

	got, err = bts.UC.UpdateStatus(
		bts.Ctx, admin, b.ID, model.BookingStatusInProgress, "returned early by mistake",
	)
	bts.Require().NoError(err, "admins may leave terminal statuses")
	bts.Equal(model.BookingStatusInProgress, got.Status)
	bts.Equal("returned early by mistake", got.Notes)

	got, err = bts.UC.UpdateStatus(
		bts.Ctx, admin, b.ID, model.BookingStatusCancelled, "",
	)
	bts.Require().NoError(err)
	bts.NotNil(got.CancelledAt)
	got, err = bts.UC.UpdateStatus(
		bts.Ctx, admin, b.ID, model.BookingStatusPending, "",
	)
	bts.Require().NoError(err)
	bts.Equal(model.BookingStatusPending, got.Status)

	// the dedicated operations keep guarding the state machine
	_, err = bts.UC.UpdateStatus(
		bts.Ctx, admin, b.ID, model.BookingStatusCompleted, "",
	)
	bts.Require().NoError(err)
	_, err = bts.UC.Cancel(bts.Ctx, customer, b.ID, "")
	bts.Equal(http.StatusUnprocessableEntity, cerr.StatusCode(err))
	_, err = bts.UC.Approve(bts.Ctx, admin, b.ID)
	bts.Equal(http.StatusUnprocessableEntity, cerr.StatusCode(err))
}

func (bts *BookingsTestSuite) TestAccessControl() {
	b, err := bts.UC.Create(bts.Ctx, customer, bts.request(1, 3))
	bts.Require().NoError(err)

	_, err = bts.UC.Get(bts.Ctx, stranger, b.ID)
	bts.ErrorIs(err, model.ErrNotOwner)
	_, err = bts.UC.Details(bts.Ctx, stranger, b.ID)
	bts.Equal(http.StatusForbidden, cerr.StatusCode(err))

	d, err := bts.UC.Details(bts.Ctx, admin, b.ID)
	bts.Require().NoError(err)
	bts.Equal(bts.Car.ID, d.Car.ID)
	bts.Equal("Airport", d.PickupLocation.Name)
	bts.Nil(d.Payment)

	mine, err := bts.UC.ListMine(bts.Ctx, stranger)
	bts.Require().NoError(err)
	bts.NotNil(mine)
	bts.Empty(mine)
	mine, err = bts.UC.ListMine(bts.Ctx, customer)
	bts.Require().NoError(err)
	bts.Len(mine, 1)
}

func (bts *BookingsTestSuite) TestNotificationFailureIsIgnored() {
	bts.Fails.Store(true)
	b, err := bts.UC.Create(bts.Ctx, customer, bts.request(1, 3))
	bts.Require().NoError(err)
	bts.NotNil(b)
	bts.Equal([]string{"Booking Created"}, bts.Sent)
}

func TestOptions(t *testing.T) {
	s := memrepo.New()
	now := func() time.Time { return time.Time{} }
	_, err := bookingsuc.New(
		s, s.Cars(), s.Locations(), s.Bookings(), s.Payments(),
		bookingsuc.WithClock(now), bookingsuc.WithClock(now),
	)
	if err == nil {
		t.Fatal("duplicate clock option is accepted")
	}
}
