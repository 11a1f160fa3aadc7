// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package paymentsuc contains the payments UseCase which settles the
// booking payments through a payment.Gateway and applies the outcome
// to the booking and its car.
//
// A settlement runs in one transaction which locks the booking row.
// Declined charges are business outcomes and are committed as failed
// payments, while gateway errors roll the whole transaction back.
package paymentsuc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/notify"
	"github.com/momeni/car-rental/pkg/core/payment"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/authz"
)

// DefaultInvoiceBaseURL is the prefix of the invoice URLs unless the
// WithInvoiceBaseURL option is used.
const DefaultInvoiceBaseURL = "https://citycars.az/invoices"

// UseCase represents a payments use case.
type UseCase struct {
	pool        repo.Pool
	bookingsrp  repo.Bookings
	paymentsrp  repo.Payments
	carsrp      repo.Cars
	locationsrp repo.Locations
	gateway     payment.Gateway

	notifier       notify.Notifier
	mailer         notify.Mailer
	invoiceBaseURL string
	now            func() time.Time
	newTxnID       func(time.Time) string
}

// New instantiates a payments use case.
// The gateway is used for charging payments. Notifications and
// emails are discarded unless WithNotifier and WithMailer options
// are passed.
func New(
	p repo.Pool,
	bookings repo.Bookings,
	payments repo.Payments,
	cars repo.Cars,
	locations repo.Locations,
	gw payment.Gateway,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{
		pool:        p,
		bookingsrp:  bookings,
		paymentsrp:  payments,
		carsrp:      cars,
		locationsrp: locations,
		gateway:     gw,
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.notifier == nil {
		uc.notifier = notify.Discard
	}
	if uc.invoiceBaseURL == "" {
		uc.invoiceBaseURL = DefaultInvoiceBaseURL
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.newTxnID == nil {
		uc.newTxnID = NewTransactionID
	}
	return uc, nil
}

// NewTransactionID returns a transaction id like
// TXN20300601093000A1B2C3D4, consisting of the TXN prefix, the
// timestamp, and eight random hexadecimal digits.
func NewTransactionID(now time.Time) string {
	id := uuid.New()
	suffix := strings.ToUpper(fmt.Sprintf("%x", id[:4]))
	return "TXN" + now.UTC().Format("20060102150405") + suffix
}

// Settle charges the bookingID booking of the caller using the req
// payment request. A zero req.Amount charges the booking total amount.
//
// The booking row is locked during the settlement. A missing booking
// is reported as cerr.NotFound, a booking of another user as
// cerr.Authorization, a cancelled, rejected, or completed booking as
// cerr.InvalidState, and an already paid booking as cerr.Conflict
// wrapping model.ErrAlreadyPaid.
//
// A successful charge stores a completed payment, confirms a pending
// booking, and reserves its car. A declined charge stores a failed
// payment and leaves the booking intact; it is reported by the result
// Success field rather than an error. A previously failed payment row
// is reused by the next attempt. Gateway errors roll back everything.
// Notifications and the confirmation email are sent after the commit.
func (payments *UseCase) Settle(
	ctx context.Context,
	caller model.Caller,
	bookingID uuid.UUID,
	req *model.PaymentRequest,
) (*model.PaymentResult, error) {
	if err := authz.RequireIdentified(caller); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, cerr.BadRequest(fmt.Errorf("payment request: %w", err))
	}
	var (
		b   *model.Booking
		p   *model.Payment
		res *payment.ChargeResult
		d   *model.BookingDetails
	)
	err := payments.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		err := c.Tx(ctx, func(ctx context.Context, tx repo.Tx) (err error) {
			b, p, res, err = payments.settle(ctx, tx, caller, bookingID, req)
			return err
		})
		if err != nil || !res.Success {
			return err
		}
		d = payments.details(ctx, c, b, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	amount := p.Amount.StringFixed(2)
	if !res.Success {
		log.Info(ctx, "payment declined",
			slog.String("booking", b.Number),
			slog.String("reason", res.FailureReason),
		)
		payments.notify(ctx, b.UserID, "Payment Failed", fmt.Sprintf(
			"Your payment of $%s failed. %s", amount, res.FailureReason,
		))
		return &model.PaymentResult{
			Success:       false,
			Message:       "Payment failed",
			Payment:       p,
			FailureReason: res.FailureReason,
		}, nil
	}
	log.Info(ctx, "payment completed",
		slog.String("booking", b.Number),
		slog.String("txn", p.TransactionID),
		slog.String("amount", amount),
	)
	if payments.mailer != nil && d != nil && b.ContactEmail != "" {
		err := payments.mailer.SendBookingConfirmation(ctx, b.ContactEmail, d)
		if err != nil {
			log.Warn(ctx, "failed to send booking confirmation",
				slog.String("booking", b.Number),
				log.Err("err", err),
			)
		}
	}
	payments.notify(ctx, b.UserID, "Payment Successful", fmt.Sprintf(
		"Your payment of $%s has been processed successfully. "+
			"Booking #%s is confirmed.", amount, b.Number,
	))
	return &model.PaymentResult{
		Success: true,
		Message: "Payment processed successfully",
		Payment: p,
	}, nil
}

func (payments *UseCase) settle(
	ctx context.Context,
	tx repo.Tx,
	caller model.Caller,
	bookingID uuid.UUID,
	req *model.PaymentRequest,
) (*model.Booking, *model.Payment, *payment.ChargeResult, error) {
	bq := payments.bookingsrp.Tx(tx)
	b, err := bq.GetForUpdate(ctx, bookingID)
	if err != nil {
		return nil, nil, nil, err
	}
	if err = authz.RequireAccess(caller, b.UserID); err != nil {
		return nil, nil, nil, err
	}
	if b.Status.Terminal() {
		return nil, nil, nil, cerr.InvalidState(fmt.Errorf(
			"booking is %s: %w", b.Status, model.ErrInvalidTransition,
		))
	}
	pq := payments.paymentsrp.Tx(tx)
	paid, err := pq.FindCompletedForBooking(ctx, b.ID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("finding completed payment: %w", err)
	}
	if paid != nil {
		return nil, nil, nil, cerr.Conflict(fmt.Errorf(
			"transaction %s: %w", paid.TransactionID, model.ErrAlreadyPaid,
		))
	}
	prev, err := pq.ForBooking(ctx, b.ID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("finding payment: %w", err)
	}
	amount := req.Amount
	if amount.IsZero() {
		amount = b.TotalAmount
	}
	now := payments.now().UTC()
	txn := payments.newTxnID(now)
	res, err := payments.gateway.Charge(ctx, payment.ChargeRequest{
		BookingID:      b.ID,
		BookingNumber:  b.Number,
		UserID:         b.UserID,
		Amount:         amount,
		Payment:        req,
		IdempotencyKey: txn,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("charging: %w", err)
	}
	p := &model.Payment{
		BookingID:       b.ID,
		UserID:          b.UserID,
		TransactionID:   txn,
		Reference:       "PAY-" + now.Format("20060102150405"),
		Amount:          amount,
		Method:          req.Method,
		CardLast4:       model.CardLast4(req.CardNumber),
		CardBrand:       model.DetectCardBrand(req.CardNumber),
		GatewayResponse: res.RawResponse,
	}
	if res.Success {
		p.Status = model.PaymentStatusCompleted
		p.PaidAt = &now
		p.InvoiceURL = payments.invoiceURL(txn)
		p.InvoiceGenerated = true
	} else {
		p.Status = model.PaymentStatusFailed
		p.FailureReason = res.FailureReason
	}
	if prev != nil {
		p.ID, p.CreatedAt, p.UpdatedAt = prev.ID, prev.CreatedAt, &now
		err = pq.Update(ctx, p)
	} else {
		p.CreatedAt = now
		err = pq.Insert(ctx, p)
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("storing payment: %w", err)
	}
	if !res.Success {
		return b, p, res, nil
	}
	if b.Status == model.BookingStatusPending {
		b.SetStatus(model.BookingStatusConfirmed, now)
		if err = bq.Update(ctx, b); err != nil {
			return nil, nil, nil, fmt.Errorf("confirming booking: %w", err)
		}
	}
	_, err = payments.carsrp.Tx(tx).SetStatus(
		ctx, b.CarID, model.CarStatusReserved,
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reserving car: %w", err)
	}
	return b, p, res, nil
}

// details fetches the booking associations for the confirmation
// email. Failures are logged and yield nil since the payment is
// already committed.
func (payments *UseCase) details(
	ctx context.Context, c repo.Conn, b *model.Booking, p *model.Payment,
) *model.BookingDetails {
	d := &model.BookingDetails{Booking: b, Payment: p}
	var err error
	defer func() {
		if err != nil {
			log.Warn(ctx, "failed to fetch booking details",
				slog.String("booking", b.Number),
				log.Err("err", err),
			)
		}
	}()
	if d.Car, err = payments.carsrp.Conn(c).Get(ctx, b.CarID); err != nil {
		return nil
	}
	lq := payments.locationsrp.Conn(c)
	if d.PickupLocation, err = lq.Get(ctx, b.PickupLocationID); err != nil {
		return nil
	}
	if d.ReturnLocation, err = lq.Get(ctx, b.ReturnLocationID); err != nil {
		return nil
	}
	return d
}

// Get returns the id payment if the caller owns it or is an admin.
func (payments *UseCase) Get(
	ctx context.Context, caller model.Caller, id uuid.UUID,
) (p *model.Payment, err error) {
	err = payments.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		p, err = payments.paymentsrp.Conn(c).Get(ctx, id)
		if err != nil {
			return err
		}
		return authz.RequireAccess(caller, p.UserID)
	})
	if err != nil {
		p = nil
	}
	return
}

// GenerateInvoice (re)generates the invoice of the id completed
// payment and returns the payment with its InvoiceURL field. The
// payment owner or an admin may ask for it. A failed payment is
// reported as a cerr.InvalidState error.
func (payments *UseCase) GenerateInvoice(
	ctx context.Context, caller model.Caller, id uuid.UUID,
) (p *model.Payment, err error) {
	if err = authz.RequireIdentified(caller); err != nil {
		return nil, err
	}
	err = payments.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			pq := payments.paymentsrp.Tx(tx)
			p, err = pq.Get(ctx, id)
			if err != nil {
				return err
			}
			if err := authz.RequireAccess(caller, p.UserID); err != nil {
				return err
			}
			if p.Status != model.PaymentStatusCompleted {
				return cerr.InvalidState(fmt.Errorf(
					"payment is %s: %w", p.Status, model.ErrPaymentNotCompleted,
				))
			}
			now := payments.now().UTC()
			p.InvoiceURL = payments.invoiceURL(p.TransactionID)
			p.InvoiceGenerated = true
			p.UpdatedAt = &now
			return pq.Update(ctx, p)
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "invoice generated",
		slog.String("txn", p.TransactionID),
		slog.String("url", p.InvoiceURL),
	)
	return p, nil
}

func (payments *UseCase) invoiceURL(txn string) string {
	return payments.invoiceBaseURL + "/" + txn + ".pdf"
}

// ListMine returns the caller payments, newest first.
func (payments *UseCase) ListMine(
	ctx context.Context, caller model.Caller,
) (ps []model.Payment, err error) {
	if err = authz.RequireIdentified(caller); err != nil {
		return nil, err
	}
	err = payments.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		ps, err = payments.paymentsrp.Conn(c).ListByUser(ctx, caller.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if ps == nil {
		ps = []model.Payment{}
	}
	return ps, nil
}

func (payments *UseCase) notify(
	ctx context.Context, userID, title, message string,
) {
	err := payments.notifier.Notify(
		ctx, userID, model.NotificationKindPayment, title, message,
	)
	if err != nil {
		log.Warn(ctx, "failed to notify user",
			slog.String("user", userID),
			slog.String("title", title),
			log.Err("err", err),
		)
	}
}
