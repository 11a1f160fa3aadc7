// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package paymentsrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gPayment struct {
	PID              uuid.UUID `gorm:"primaryKey;type:uuid;column:pid"`
	BID              uuid.UUID `gorm:"type:uuid;column:bid"`
	UserID           string
	TransactionID    string
	Reference        string `gorm:"column:payment_reference"`
	Amount           decimal.Decimal
	RefundedAmount   decimal.Decimal
	Method           string
	Status           string
	PaidAt           *time.Time
	CardLast4        string `gorm:"column:card_last4"`
	CardBrand        string
	GatewayResponse  string
	FailureReason    string
	InvoiceURL       string `gorm:"column:invoice_url"`
	InvoiceGenerated bool
	CreatedAt        time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt        *time.Time `gorm:"autoUpdateTime:false"`
	DeletedAt        gorm.DeletedAt
}

func (gp *gPayment) TableName() string {
	return "payments"
}

func fromModel(p *model.Payment) gPayment {
	return gPayment{
		PID:              p.ID,
		BID:              p.BookingID,
		UserID:           p.UserID,
		TransactionID:    p.TransactionID,
		Reference:        p.Reference,
		Amount:           p.Amount,
		RefundedAmount:   p.RefundedAmount,
		Method:           p.Method.String(),
		Status:           p.Status.String(),
		PaidAt:           p.PaidAt,
		CardLast4:        p.CardLast4,
		CardBrand:        p.CardBrand,
		GatewayResponse:  p.GatewayResponse,
		FailureReason:    p.FailureReason,
		InvoiceURL:       p.InvoiceURL,
		InvoiceGenerated: p.InvoiceGenerated,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (gp *gPayment) Model() (*model.Payment, error) {
	m, err := model.ParsePaymentMethod(gp.Method)
	if err != nil {
		return nil, fmt.Errorf("payment %v: %w", gp.PID, err)
	}
	s, err := model.ParsePaymentStatus(gp.Status)
	if err != nil {
		return nil, fmt.Errorf("payment %v: %w", gp.PID, err)
	}
	return &model.Payment{
		ID:               gp.PID,
		BookingID:        gp.BID,
		UserID:           gp.UserID,
		TransactionID:    gp.TransactionID,
		Reference:        gp.Reference,
		Amount:           gp.Amount,
		RefundedAmount:   gp.RefundedAmount,
		Method:           m,
		Status:           s,
		PaidAt:           gp.PaidAt,
		CardLast4:        gp.CardLast4,
		CardBrand:        gp.CardBrand,
		GatewayResponse:  gp.GatewayResponse,
		FailureReason:    gp.FailureReason,
		InvoiceURL:       gp.InvoiceURL,
		InvoiceGenerated: gp.InvoiceGenerated,
		CreatedAt:        gp.CreatedAt,
		UpdatedAt:        gp.UpdatedAt,
	}, nil
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID) (*model.Payment, error) {
	p, err := take(q.GORM(ctx).Where("pid = ?", id))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, cerr.NotFound(
			fmt.Errorf("%w: %v", model.ErrPaymentNotFound, id),
		)
	}
	return p, nil
}

func ForBooking[Q postgres.Queryer](ctx context.Context, q Q, bookingID uuid.UUID) (*model.Payment, error) {
	return take(q.GORM(ctx).Where("bid = ?", bookingID))
}

func FindCompletedForBooking[Q postgres.Queryer](ctx context.Context, q Q, bookingID uuid.UUID) (*model.Payment, error) {
	return take(q.GORM(ctx).Where(
		"bid = ? AND status = ?",
		bookingID, model.PaymentStatusCompleted.String(),
	))
}

// take returns nil without any error if no row matches.
func take(gdb *gorm.DB) (*model.Payment, error) {
	var gp gPayment
	err := gdb.Take(&gp).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gp.Model()
}

func Insert(ctx context.Context, tx *postgres.Tx, p *model.Payment) error {
	gp := fromModel(p)
	gp.PID = uuid.New()
	gp.UpdatedAt = nil
	if err := tx.GORM(ctx).Create(&gp).Error; err != nil {
		return fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	p.ID, p.UpdatedAt = gp.PID, nil
	return nil
}

func Update(ctx context.Context, tx *postgres.Tx, p *model.Payment) error {
	values := fromModel(p)
	var gps []gPayment
	err := tx.GORM(ctx).Model(&gps).Clauses(clause.Returning{}).Select(
		"transaction_id", "payment_reference", "amount", "refunded_amount",
		"method", "status", "paid_at", "card_last4", "card_brand",
		"gateway_response", "failure_reason", "invoice_url",
		"invoice_generated", "updated_at",
	).Where(
		"pid = ?", p.ID,
	).Updates(values).Error
	if err != nil {
		return fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	if n := len(gps); n != 1 {
		return cerr.NotFound(
			fmt.Errorf("%w: %v", model.ErrPaymentNotFound, p.ID),
		)
	}
	return nil
}

func ListByUser[Q postgres.Queryer](ctx context.Context, q Q, userID string) ([]model.Payment, error) {
	var gps []gPayment
	err := q.GORM(ctx).Where(
		"user_id = ?", userID,
	).Order("created_at DESC").Find(&gps).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	ps := make([]model.Payment, 0, len(gps))
	for i := range gps {
		p, err := gps[i].Model()
		if err != nil {
			return nil, err
		}
		ps = append(ps, *p)
	}
	return ps, nil
}
