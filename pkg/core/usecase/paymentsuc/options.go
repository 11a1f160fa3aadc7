// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package paymentsuc

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/momeni/car-rental/pkg/core/notify"
)

// Option is a functional option for the payments use case.
type Option func(uc *UseCase) error

// WithNotifier option configures the in-app notifications sink.
func WithNotifier(n notify.Notifier) Option {
	return func(uc *UseCase) error {
		if n == nil {
			return errors.New("notifier is nil")
		}
		if uc.notifier != nil {
			return errors.New("notifier is already configured")
		}
		uc.notifier = n
		return nil
	}
}

// WithMailer option configures the mailer which sends the booking
// confirmation emails after successful payments.
func WithMailer(m notify.Mailer) Option {
	return func(uc *UseCase) error {
		if m == nil {
			return errors.New("mailer is nil")
		}
		if uc.mailer != nil {
			return errors.New("mailer is already configured")
		}
		uc.mailer = m
		return nil
	}
}

// WithInvoiceBaseURL option configures the absolute URL which is
// prefixed to the invoice file names. A trailing slash is ignored.
func WithInvoiceBaseURL(base string) Option {
	return func(uc *UseCase) error {
		u, err := url.Parse(base)
		if err != nil {
			return fmt.Errorf("parsing invoice base url: %w", err)
		}
		if !u.IsAbs() {
			return fmt.Errorf("invoice base url %q is not absolute", base)
		}
		if uc.invoiceBaseURL != "" {
			return errors.New("invoice base url is already configured")
		}
		uc.invoiceBaseURL = strings.TrimSuffix(base, "/")
		return nil
	}
}

// WithClock option replaces the time.Now function.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock is nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}

// WithTransactionIDGenerator option replaces the NewTransactionID
// function.
func WithTransactionIDGenerator(gen func(time.Time) string) Option {
	return func(uc *UseCase) error {
		if gen == nil {
			return errors.New("transaction id generator is nil")
		}
		if uc.newTxnID != nil {
			return errors.New("transaction id generator is already configured")
		}
		uc.newTxnID = gen
		return nil
	}
}
