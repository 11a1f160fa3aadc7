// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2030, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestTotalDays(t *testing.T) {
	assert.Equal(t, 1, model.TotalDays(day(5), day(5)), "single day")
	assert.Equal(t, 3, model.TotalDays(day(1), day(3)))
	late := time.Date(2030, time.March, 1, 23, 59, 0, 0, time.UTC)
	early := time.Date(2030, time.March, 2, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 2, model.TotalDays(late, early), "time of day ignored")
	assert.Equal(t, 1, model.TotalDays(day(3), day(1)), "clamped")
	far := time.Date(2500, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 171_665, model.TotalDays(day(1), far), "beyond 292 years")
}

func TestDateRangesOverlap(t *testing.T) {
	for _, tc := range []struct {
		name           string
		aStart, aEnd   int
		bStart, bEnd   int
		expectsOverlap bool
	}{
		{"identical", 1, 3, 1, 3, true},
		{"same-day turnover", 1, 3, 3, 5, true},
		{"inside", 2, 2, 1, 5, true},
		{"containing", 1, 9, 4, 5, true},
		{"gap after", 1, 3, 4, 6, false},
		{"gap before", 7, 9, 1, 6, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := model.DateRangesOverlap(
				day(tc.aStart), day(tc.aEnd), day(tc.bStart), day(tc.bEnd),
			)
			assert.Equal(t, tc.expectsOverlap, got)
			reversed := model.DateRangesOverlap(
				day(tc.bStart), day(tc.bEnd), day(tc.aStart), day(tc.aEnd),
			)
			assert.Equal(t, got, reversed, "overlap must be symmetric")
		})
	}
}

func TestBookingStatusPredicates(t *testing.T) {
	blocking := map[model.BookingStatus]bool{
		model.BookingStatusPending:    true,
		model.BookingStatusConfirmed:  true,
		model.BookingStatusInProgress: true,
		model.BookingStatusCompleted:  true,
		model.BookingStatusCancelled:  false,
		model.BookingStatusRejected:   false,
	}
	for s, b := range blocking {
		assert.Equal(t, b, s.Blocking(), "blocking of %s", s)
	}
	assert.True(t, model.BookingStatusCompleted.Terminal())
	assert.True(t, model.BookingStatusRejected.Terminal())
	assert.False(t, model.BookingStatusConfirmed.Terminal())
	assert.True(t, model.BookingStatusConfirmed.Cancellable())
	assert.False(t, model.BookingStatusInProgress.Cancellable())
}

func TestParseBookingStatus(t *testing.T) {
	s, err := model.ParseBookingStatus("in-progress")
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusInProgress, s)
	assert.Equal(t, "in-progress", s.String())

	_, err = model.ParseBookingStatus("archived")
	assert.ErrorIs(t, err, model.ErrUnknownBookingStatus)
	assert.Error(t, model.BookingStatusInvalid.Validate())
	assert.Panics(t, func() { _ = model.BookingStatus(42).String() })
}

func TestRentalRequestValidate(t *testing.T) {
	valid := func() *model.RentalRequest {
		return &model.RentalRequest{
			CarID:            uuid.New(),
			StartDate:        day(10),
			EndDate:          day(12),
			PickupLocationID: uuid.New(),
			ReturnLocationID: uuid.New(),
			ContactEmail:     "jane@example.com",
		}
	}
	today := day(9)
	require.NoError(t, valid().Validate(today))

	r := valid()
	r.EndDate = r.StartDate
	assert.NoError(t, r.Validate(today), "single day rental")

	r = valid()
	r.EndDate = day(9)
	assert.ErrorContains(t, r.Validate(day(1)), "end date is before")

	r = valid()
	assert.ErrorContains(t, r.Validate(day(11)), "in the past")

	r = valid()
	r.AdditionalDrivers = -1
	assert.ErrorContains(t, r.Validate(today), "negative")

	r = valid()
	r.PickupLocationID = uuid.Nil
	assert.ErrorContains(t, r.Validate(today), "pickup location")

	r = valid()
	r.EndDate = r.StartDate.AddDate(0, 0, model.MaxRentalDays-1)
	assert.NoError(t, r.Validate(today), "the longest rental")
	r.EndDate = r.EndDate.AddDate(0, 0, 1)
	assert.ErrorContains(t, r.Validate(today), "longer than 365 days")
	r.EndDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	assert.ErrorContains(t, r.Validate(today), "longer than 365 days")
}

func TestBookingSetStatusStampsTimes(t *testing.T) {
	now := day(20)
	b := &model.Booking{Status: model.BookingStatusConfirmed}
	b.SetStatus(model.BookingStatusInProgress, now)
	require.NotNil(t, b.ActualPickupTime)
	assert.Equal(t, now, *b.ActualPickupTime)
	require.NotNil(t, b.UpdatedAt)
	assert.Equal(t, now, *b.UpdatedAt)
	b.SetStatus(model.BookingStatusCompleted, now.Add(time.Hour))
	require.NotNil(t, b.ActualReturnTime)
	assert.Nil(t, b.CancelledAt)
}

func ExampleDetectCardBrand() {
	for _, n := range []string{
		"4111 1111 1111 1111",
		"5500-0000-0000-0004",
		"340000000000009",
		"6011000000000004",
		"9999",
	} {
		fmt.Println(model.DetectCardBrand(n), model.CardLast4(n))
	}
	// Output:
	// Visa 1111
	// Mastercard 0004
	// Amex 0009
	// Discover 0004
	// Unknown 9999
}
