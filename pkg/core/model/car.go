// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., json tags as required by
// the REST resources) since adding more tags does not complicate the
// definition of a struct, but can prevent unnecessary duplication.
// Database specific structs are kept in the adapter layer though (see
// the unexported gCar struct in pkg/adapter/db/postgres/carsrp).
package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Car models a rentable car as it is kept by the car catalog.
// The RateCard is owned by the catalog and is read-only for the
// booking and payment use cases.
type Car struct {
	ID           uuid.UUID  `json:"id"`
	Brand        string     `json:"brand"`
	Model        string     `json:"model"`
	Year         int        `json:"year"`
	LicensePlate string     `json:"licensePlate"`
	Status       CarStatus  `json:"status"`
	RateCard     RateCard   `json:"rateCard"`
	Coordinate   Coordinate `json:"coordinate"` // last tracked location
}

// Bookable reports if a new booking may be created for this car.
// Cars which are reserved or rented for other dates are bookable,
// but cars in maintenance or out of service are not.
func (c *Car) Bookable() bool {
	switch c.Status {
	case CarStatusMaintenance, CarStatusOutOfService:
		return false
	default:
		return true
	}
}

// RateCard contains the pricing inputs of a car.
type RateCard struct {
	PricePerDay        decimal.Decimal `json:"pricePerDay"`
	DepositAmount      decimal.Decimal `json:"depositAmount"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
}

var hundred = decimal.NewFromInt(100)

// Validate returns an error if the rate card contains negative amounts
// or a discount percentage which is not in the [0, 100] range.
func (rc RateCard) Validate() error {
	switch {
	case rc.PricePerDay.IsNegative():
		return errors.New("negative price per day")
	case rc.DepositAmount.IsNegative():
		return errors.New("negative deposit amount")
	case rc.DiscountPercentage.IsNegative(),
		rc.DiscountPercentage.GreaterThan(hundred):
		return fmt.Errorf(
			"discount percentage %s is out of [0, 100]",
			rc.DiscountPercentage,
		)
	}
	return nil
}

// CarStatus specifies the car availability status enum. Although this
// enum is numeric, it is (de)serialized as a string for readability in
// the adapter layer.
type CarStatus int

// Valid values for the CarStatus enum.
const (
	CarStatusInvalid CarStatus = iota // zero value is invalid

	CarStatusAvailable
	CarStatusRented
	CarStatusMaintenance
	CarStatusOutOfService
	CarStatusReserved // a paid booking holds the car
)

var carStatusNames = [...]string{
	CarStatusAvailable:    "available",
	CarStatusRented:       "rented",
	CarStatusMaintenance:  "maintenance",
	CarStatusOutOfService: "out-of-service",
	CarStatusReserved:     "reserved",
}

// ErrUnknownCarStatus indicates that a given string may not be parsed
// as a known car status.
var ErrUnknownCarStatus = errors.New("unknown car status")

// CarStatusError indicates an invalid car status integer.
type CarStatusError int

// Error implements the error interface.
func (e CarStatusError) Error() string {
	return fmt.Sprintf("invalid car status: %d", e)
}

// Validate returns nil if CarStatus value is valid. For invalid
// values, an instance of the CarStatusError will be returned.
func (s CarStatus) Validate() error {
	if s <= CarStatusInvalid || int(s) >= len(carStatusNames) {
		return CarStatusError(s)
	}
	return nil
}

// String converts the CarStatus enum to a string.
// Invalid car status causes a panic.
func (s CarStatus) String() string {
	if err := s.Validate(); err != nil {
		panic(err)
	}
	return carStatusNames[s]
}

// ParseCarStatus parses the given string and returns a CarStatus.
// For invalid strings, CarStatusInvalid and ErrUnknownCarStatus
// will be returned.
func ParseCarStatus(s string) (CarStatus, error) {
	for i, name := range carStatusNames {
		if i != 0 && name == s {
			return CarStatus(i), nil
		}
	}
	return CarStatusInvalid, ErrUnknownCarStatus
}

// MarshalText implements the encoding.TextMarshaler interface.
func (s CarStatus) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(carStatusNames[s]), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (s *CarStatus) UnmarshalText(text []byte) (err error) {
	*s, err = ParseCarStatus(string(text))
	return err
}
