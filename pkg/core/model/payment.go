// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus specifies the payment status enum.
type PaymentStatus int

// Valid values for the PaymentStatus enum.
const (
	PaymentStatusInvalid PaymentStatus = iota // zero value is invalid

	PaymentStatusPending
	PaymentStatusCompleted
	PaymentStatusFailed
	PaymentStatusRefunded
	PaymentStatusPartiallyRefunded
)

var paymentStatusNames = [...]string{
	PaymentStatusPending:           "pending",
	PaymentStatusCompleted:         "completed",
	PaymentStatusFailed:            "failed",
	PaymentStatusRefunded:          "refunded",
	PaymentStatusPartiallyRefunded: "partially-refunded",
}

// ErrUnknownPaymentStatus indicates that a given string may not be
// parsed as a known payment status.
var ErrUnknownPaymentStatus = errors.New("unknown payment status")

// PaymentStatusError indicates an invalid payment status integer.
type PaymentStatusError int

// Error implements the error interface.
func (e PaymentStatusError) Error() string {
	return fmt.Sprintf("invalid payment status: %d", e)
}

// Validate returns nil if PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if s <= PaymentStatusInvalid || int(s) >= len(paymentStatusNames) {
		return PaymentStatusError(s)
	}
	return nil
}

// String converts the PaymentStatus enum to a string.
// Invalid payment status causes a panic.
func (s PaymentStatus) String() string {
	if err := s.Validate(); err != nil {
		panic(err)
	}
	return paymentStatusNames[s]
}

// ParsePaymentStatus parses the given string and returns a
// PaymentStatus, or ErrUnknownPaymentStatus for invalid strings.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for i, name := range paymentStatusNames {
		if i != 0 && name == s {
			return PaymentStatus(i), nil
		}
	}
	return PaymentStatusInvalid, ErrUnknownPaymentStatus
}

// MarshalText implements the encoding.TextMarshaler interface.
func (s PaymentStatus) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(paymentStatusNames[s]), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (s *PaymentStatus) UnmarshalText(text []byte) (err error) {
	*s, err = ParsePaymentStatus(string(text))
	return err
}

// PaymentMethod specifies how a booking is paid.
type PaymentMethod int

// Valid values for the PaymentMethod enum.
const (
	PaymentMethodInvalid PaymentMethod = iota // zero value is invalid

	PaymentMethodCreditCard
	PaymentMethodDebitCard
	PaymentMethodCash
	PaymentMethodBankTransfer
	PaymentMethodStripe
	PaymentMethodPayPal
)

var paymentMethodNames = [...]string{
	PaymentMethodCreditCard:   "credit-card",
	PaymentMethodDebitCard:    "debit-card",
	PaymentMethodCash:         "cash",
	PaymentMethodBankTransfer: "bank-transfer",
	PaymentMethodStripe:       "stripe",
	PaymentMethodPayPal:       "paypal",
}

// ErrUnknownPaymentMethod indicates that a given string may not be
// parsed as a known payment method.
var ErrUnknownPaymentMethod = errors.New("unknown payment method")

// PaymentMethodError indicates an invalid payment method integer.
type PaymentMethodError int

// Error implements the error interface.
func (e PaymentMethodError) Error() string {
	return fmt.Sprintf("invalid payment method: %d", e)
}

// Validate returns nil if PaymentMethod value is valid.
func (m PaymentMethod) Validate() error {
	if m <= PaymentMethodInvalid || int(m) >= len(paymentMethodNames) {
		return PaymentMethodError(m)
	}
	return nil
}

// String converts the PaymentMethod enum to a string.
// Invalid payment method causes a panic.
func (m PaymentMethod) String() string {
	if err := m.Validate(); err != nil {
		panic(err)
	}
	return paymentMethodNames[m]
}

// ParsePaymentMethod parses the given string and returns a
// PaymentMethod, or ErrUnknownPaymentMethod for invalid strings.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for i, name := range paymentMethodNames {
		if i != 0 && name == s {
			return PaymentMethod(i), nil
		}
	}
	return PaymentMethodInvalid, ErrUnknownPaymentMethod
}

// MarshalText implements the encoding.TextMarshaler interface.
func (m PaymentMethod) MarshalText() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return []byte(paymentMethodNames[m]), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (m *PaymentMethod) UnmarshalText(text []byte) (err error) {
	*m, err = ParsePaymentMethod(string(text))
	return err
}

// IsCard reports if the method charges a payment card.
func (m PaymentMethod) IsCard() bool {
	return m == PaymentMethodCreditCard || m == PaymentMethodDebitCard
}

// Card brands which are detected from the card number prefix.
const (
	CardBrandVisa       = "Visa"
	CardBrandMastercard = "Mastercard"
	CardBrandAmex       = "Amex"
	CardBrandDiscover   = "Discover"
	CardBrandUnknown    = "Unknown"
)

// DetectCardBrand returns the card brand of the given card number
// based on its issuer identification prefix. Spaces and dashes are
// ignored. An empty number has no brand and yields an empty string.
func DetectCardBrand(number string) string {
	n := normalizeCardNumber(number)
	switch {
	case n == "":
		return ""
	case strings.HasPrefix(n, "4"):
		return CardBrandVisa
	case len(n) >= 2 && n[:2] >= "51" && n[:2] <= "55":
		return CardBrandMastercard
	case strings.HasPrefix(n, "34"), strings.HasPrefix(n, "37"):
		return CardBrandAmex
	case strings.HasPrefix(n, "60"),
		strings.HasPrefix(n, "64"),
		strings.HasPrefix(n, "65"):
		return CardBrandDiscover
	default:
		return CardBrandUnknown
	}
}

// CardLast4 returns the last four digits of the given card number
// (or all of its digits if it is shorter).
func CardLast4(number string) string {
	n := normalizeCardNumber(number)
	if len(n) <= 4 {
		return n
	}
	return n[len(n)-4:]
}

func normalizeCardNumber(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(number)
}

// PaymentRequest is the input of a payment settlement.
// A zero Amount asks to charge the booking total amount.
// Card fields are only used for card methods and are never stored
// besides the last four digits and the detected brand. The Token is
// an opaque gateway-side payment method reference (e.g., a Stripe
// payment method id).
type PaymentRequest struct {
	Method         PaymentMethod
	Amount         decimal.Decimal
	CardNumber     string
	CardHolderName string
	ExpiryMonth    int
	ExpiryYear     int
	CVV            string
	Token          string
}

// Validate checks the payment request fields.
func (r *PaymentRequest) Validate() error {
	if err := r.Method.Validate(); err != nil {
		return fmt.Errorf("method: %w", err)
	}
	if r.Amount.IsNegative() {
		return errors.New("negative amount")
	}
	if r.Method.IsCard() && r.CardNumber == "" && r.Token == "" {
		return errors.New("card number or token is required")
	}
	return nil
}

// Payment records the outcome of charging a booking. There is at most
// one Payment per Booking and a completed Payment is never replaced.
type Payment struct {
	ID               uuid.UUID       `json:"id"`
	BookingID        uuid.UUID       `json:"bookingId"`
	UserID           string          `json:"userId"`
	TransactionID    string          `json:"transactionId"`
	Reference        string          `json:"paymentReference"`
	Amount           decimal.Decimal `json:"amount"`
	RefundedAmount   decimal.Decimal `json:"refundedAmount"`
	Method           PaymentMethod   `json:"method"`
	Status           PaymentStatus   `json:"status"`
	PaidAt           *time.Time      `json:"paidAt,omitempty"`
	CardLast4        string          `json:"cardLast4,omitempty"`
	CardBrand        string          `json:"cardBrand,omitempty"`
	GatewayResponse  string          `json:"-"`
	FailureReason    string          `json:"failureReason,omitempty"`
	InvoiceURL       string          `json:"invoiceUrl,omitempty"`
	InvoiceGenerated bool            `json:"invoiceGenerated"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        *time.Time      `json:"updatedAt,omitempty"`
}

// PaymentResult reports a settlement outcome. A declined charge is a
// valid result with Success=false (not an error).
type PaymentResult struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message"`
	Payment       *Payment `json:"payment"`
	FailureReason string   `json:"failureReason,omitempty"`
}
