// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus specifies the booking lifecycle status enum.
//
//	pending -> confirmed -> in-progress -> completed
//	pending|confirmed -> cancelled
//	pending -> rejected
//
// The completed, cancelled, and rejected statuses are terminal.
type BookingStatus int

// Valid values for the BookingStatus enum.
const (
	BookingStatusInvalid BookingStatus = iota // zero value is invalid

	BookingStatusPending // initial status
	BookingStatusConfirmed
	BookingStatusInProgress
	BookingStatusCompleted
	BookingStatusCancelled
	BookingStatusRejected
)

var bookingStatusNames = [...]string{
	BookingStatusPending:    "pending",
	BookingStatusConfirmed:  "confirmed",
	BookingStatusInProgress: "in-progress",
	BookingStatusCompleted:  "completed",
	BookingStatusCancelled:  "cancelled",
	BookingStatusRejected:   "rejected",
}

// ErrUnknownBookingStatus indicates that a given string may not be
// parsed as a known booking status.
var ErrUnknownBookingStatus = errors.New("unknown booking status")

// BookingStatusError indicates an invalid booking status integer.
type BookingStatusError int

// Error implements the error interface.
func (e BookingStatusError) Error() string {
	return fmt.Sprintf("invalid booking status: %d", e)
}

// Validate returns nil if BookingStatus value is valid. For invalid
// values, an instance of the BookingStatusError will be returned.
func (s BookingStatus) Validate() error {
	if s <= BookingStatusInvalid || int(s) >= len(bookingStatusNames) {
		return BookingStatusError(s)
	}
	return nil
}

// String converts the BookingStatus enum to a string.
// Invalid booking status causes a panic.
func (s BookingStatus) String() string {
	if err := s.Validate(); err != nil {
		panic(err)
	}
	return bookingStatusNames[s]
}

// ParseBookingStatus parses the given string and returns a
// BookingStatus. For invalid strings, BookingStatusInvalid and
// ErrUnknownBookingStatus will be returned.
func ParseBookingStatus(s string) (BookingStatus, error) {
	for i, name := range bookingStatusNames {
		if i != 0 && name == s {
			return BookingStatus(i), nil
		}
	}
	return BookingStatusInvalid, ErrUnknownBookingStatus
}

// MarshalText implements the encoding.TextMarshaler interface.
func (s BookingStatus) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(bookingStatusNames[s]), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (s *BookingStatus) UnmarshalText(text []byte) (err error) {
	*s, err = ParseBookingStatus(string(text))
	return err
}

// Blocking reports if a booking with this status occupies its car for
// its date range. Only cancelled and rejected bookings release a car.
func (s BookingStatus) Blocking() bool {
	return s != BookingStatusCancelled && s != BookingStatusRejected
}

// Terminal reports if no further status change is permitted.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingStatusCompleted,
		BookingStatusCancelled,
		BookingStatusRejected:
		return true
	default:
		return false
	}
}

// Cancellable reports if a booking with this status may be cancelled.
func (s BookingStatus) Cancellable() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// NonBlockingBookingStatuses returns the statuses which never block
// a car. See BookingStatus.Blocking.
func NonBlockingBookingStatuses() []BookingStatus {
	return []BookingStatus{BookingStatusCancelled, BookingStatusRejected}
}

// AddOns contains the optional paid extras of a rental. Each one of
// them is priced per rental day.
type AddOns struct {
	NeedsDriver       bool `json:"needsDriver"`
	WithInsurance     bool `json:"withInsurance"`
	WithGPS           bool `json:"withGps"`
	WithChildSeat     bool `json:"withChildSeat"`
	AdditionalDrivers int  `json:"additionalDrivers"`
}

// RentalRequest is the input of booking creation and cost calculation.
// StartDate and EndDate are calendar dates (time of day is ignored) and
// the range includes both of them.
type RentalRequest struct {
	CarID            uuid.UUID
	StartDate        time.Time
	EndDate          time.Time
	PickupLocationID uuid.UUID
	ReturnLocationID uuid.UUID
	AddOns
	ContactPhone string
	ContactEmail string
	Notes        string
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TotalDays returns the number of calendar days in the request range,
// counting both of the pickup and return days. A single-day rental
// takes one day, not zero.
func (r *RentalRequest) TotalDays() int {
	return TotalDays(r.StartDate, r.EndDate)
}

// MaxRentalDays bounds the number of days of a single rental request.
const MaxRentalDays = 365

// TotalDays returns the inclusive number of calendar days between
// start and end dates. It is at least one.
func TotalDays(start, end time.Time) int {
	const secondsPerDay = 24 * 60 * 60
	d := (DateOf(end).Unix() - DateOf(start).Unix()) / secondsPerDay
	if d < 0 {
		return 1
	}
	return int(d) + 1
}

// Validate checks the request fields which can be verified without
// any I/O. The today argument is the current calendar date which
// bounds the start date from below.
func (r *RentalRequest) Validate(today time.Time) error {
	switch {
	case r.CarID == uuid.Nil:
		return errors.New("car id is required")
	case r.PickupLocationID == uuid.Nil:
		return errors.New("pickup location is required")
	case r.ReturnLocationID == uuid.Nil:
		return errors.New("return location is required")
	case r.StartDate.IsZero(), r.EndDate.IsZero():
		return errors.New("start and end dates are required")
	case DateOf(r.EndDate).Before(DateOf(r.StartDate)):
		return errors.New("end date is before start date")
	case DateOf(r.StartDate).Before(DateOf(today)):
		return errors.New("start date is in the past")
	case r.TotalDays() > MaxRentalDays:
		return fmt.Errorf("rental is longer than %d days", MaxRentalDays)
	case r.AdditionalDrivers < 0:
		return errors.New("additional drivers count is negative")
	case r.ContactEmail == "":
		return errors.New("contact email is required")
	}
	return nil
}

// DateRangesOverlap reports if [aStart, aEnd] and [bStart, bEnd]
// inclusive calendar date ranges share at least one day. A range
// ending on day N overlaps with a range starting on day N.
func DateRangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !(DateOf(aEnd).Before(DateOf(bStart)) ||
		DateOf(aStart).After(DateOf(bEnd)))
}

// CostBreakdown is the result of pricing a rental request.
// It is copied into the booking at creation time and is never
// recomputed afterwards.
type CostBreakdown struct {
	TotalDays             int             `json:"totalDays"`
	PricePerDay           decimal.Decimal `json:"pricePerDay"`
	SubTotal              decimal.Decimal `json:"subTotal"`
	DriverCost            decimal.Decimal `json:"driverCost"`
	InsuranceCost         decimal.Decimal `json:"insuranceCost"`
	GPSCost               decimal.Decimal `json:"gpsCost"`
	ChildSeatCost         decimal.Decimal `json:"childSeatCost"`
	AdditionalDriversCost decimal.Decimal `json:"additionalDriversCost"`
	TaxAmount             decimal.Decimal `json:"taxAmount"`
	DiscountAmount        decimal.Decimal `json:"discountAmount"`
	DepositAmount         decimal.Decimal `json:"depositAmount"`
	TotalAmount           decimal.Decimal `json:"totalAmount"`
}

// AddOnTotal returns the sum of all add-on costs.
func (cb CostBreakdown) AddOnTotal() decimal.Decimal {
	return decimal.Sum(
		cb.DriverCost,
		cb.InsuranceCost,
		cb.GPSCost,
		cb.ChildSeatCost,
		cb.AdditionalDriversCost,
	)
}

// Booking is the aggregate root of the booking lifecycle.
type Booking struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"userId"`
	CarID     uuid.UUID `json:"carId"`
	Number    string    `json:"bookingNumber"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	CostBreakdown

	PickupLocationID uuid.UUID  `json:"pickupLocationId"`
	ReturnLocationID uuid.UUID  `json:"returnLocationId"`
	AssignedDriverID *uuid.UUID `json:"assignedDriverId,omitempty"`
	AddOns

	Status             BookingStatus `json:"status"`
	Notes              string        `json:"notes,omitempty"`
	CancellationReason string        `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time    `json:"cancelledAt,omitempty"`
	ActualPickupTime   *time.Time    `json:"actualPickupTime,omitempty"`
	ActualReturnTime   *time.Time    `json:"actualReturnTime,omitempty"`
	ContactPhone       string        `json:"contactPhone"`
	ContactEmail       string        `json:"contactEmail"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          *time.Time    `json:"updatedAt,omitempty"`
}

// NewBooking creates a pending booking for the userID user, copying
// the request fields and the computed cost breakdown.
func NewBooking(
	userID, number string, req *RentalRequest, cost CostBreakdown,
) *Booking {
	return &Booking{
		UserID:           userID,
		CarID:            req.CarID,
		Number:           number,
		StartDate:        DateOf(req.StartDate),
		EndDate:          DateOf(req.EndDate),
		CostBreakdown:    cost,
		PickupLocationID: req.PickupLocationID,
		ReturnLocationID: req.ReturnLocationID,
		AddOns:           req.AddOns,
		Status:           BookingStatusPending,
		Notes:            req.Notes,
		ContactPhone:     req.ContactPhone,
		ContactEmail:     req.ContactEmail,
	}
}

// SetStatus changes the booking status to s and stamps UpdatedAt plus
// the timestamp which corresponds to the s status (if any) using now.
func (b *Booking) SetStatus(s BookingStatus, now time.Time) {
	b.Status = s
	b.UpdatedAt = &now
	switch s {
	case BookingStatusInProgress:
		b.ActualPickupTime = &now
	case BookingStatusCompleted:
		b.ActualReturnTime = &now
	case BookingStatusCancelled, BookingStatusRejected:
		b.CancelledAt = &now
	}
}

// BookingDetails is a booking together with its associations which
// are fetched explicitly by the bookings use case.
// Payment is nil if the booking has not been paid yet.
type BookingDetails struct {
	Booking        *Booking  `json:"booking"`
	Car            *Car      `json:"car"`
	PickupLocation *Location `json:"pickupLocation"`
	ReturnLocation *Location `json:"returnLocation"`
	Payment        *Payment  `json:"payment,omitempty"`
}
