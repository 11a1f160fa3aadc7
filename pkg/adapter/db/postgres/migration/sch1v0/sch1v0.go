// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sch1v0 provides the Initializer type for database schema
// version 1.0.x which creates the tables of the crweb1 schema and
// fills them with development or production suitable data.
package sch1v0

import (
	"context"
	"fmt"

	"github.com/momeni/car-rental/pkg/core/repo"
)

// These constants define the major, minor, and patch version of the
// database schema which is managed by the Initializer struct.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Initializer implements the repo.SchemaInitializer interface for the
// v1.0 schema. It wraps a transaction of the normal role which has its
// search_path set to the crweb1 schema, so tables are created in that
// schema. The caller remains responsible to commit that transaction.
type Initializer struct {
	tx repo.Tx
}

// New creates an Initializer instance, wrapping the given `tx`.
func New(tx repo.Tx) *Initializer {
	return &Initializer{tx: tx}
}

// InitDevSchema creates the v1.0 tables and fills them with sample
// locations and cars which are suitable for development.
func (s1v0 *Initializer) InitDevSchema(ctx context.Context) error {
	if err := s1v0.createTables(ctx); err != nil {
		return err
	}
	if _, err := s1v0.tx.Exec(ctx, devData); err != nil {
		return fmt.Errorf("inserting development data: %w", err)
	}
	return nil
}

// InitProdSchema creates the v1.0 tables with an empty car catalog.
// Locations and cars are expected to be managed by the operators.
func (s1v0 *Initializer) InitProdSchema(ctx context.Context) error {
	return s1v0.createTables(ctx)
}

func (s1v0 *Initializer) createTables(ctx context.Context) error {
	if _, err := s1v0.tx.Exec(ctx, tables); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// The is_deleted columns are generated from deleted_at, so rows are
// soft-deleted by setting their deleted_at timestamps.
const tables = `
CREATE TABLE locations (
    lid        uuid PRIMARY KEY,
    name       text NOT NULL,
    address    text NOT NULL DEFAULT '',
    city       text NOT NULL DEFAULT '',
    lat        double precision NOT NULL DEFAULT 0,
    lon        double precision NOT NULL DEFAULT 0,
    created_at timestamptz NOT NULL DEFAULT now(),
    updated_at timestamptz,
    deleted_at timestamptz,
    is_deleted boolean GENERATED ALWAYS AS (deleted_at IS NOT NULL) STORED
);

CREATE TABLE cars (
    cid                 uuid PRIMARY KEY,
    brand               text NOT NULL,
    model               text NOT NULL,
    year                integer NOT NULL DEFAULT 0,
    license_plate       text NOT NULL UNIQUE,
    status              text NOT NULL CHECK (status IN (
        'available', 'rented', 'maintenance', 'out-of-service', 'reserved'
    )),
    price_per_day       numeric(12, 2) NOT NULL CHECK (price_per_day >= 0),
    deposit_amount      numeric(12, 2) NOT NULL DEFAULT 0
        CHECK (deposit_amount >= 0),
    discount_percentage numeric(5, 2) NOT NULL DEFAULT 0
        CHECK (discount_percentage BETWEEN 0 AND 100),
    lat                 double precision NOT NULL DEFAULT 0,
    lon                 double precision NOT NULL DEFAULT 0,
    created_at          timestamptz NOT NULL DEFAULT now(),
    updated_at          timestamptz,
    deleted_at          timestamptz,
    is_deleted          boolean GENERATED ALWAYS AS (deleted_at IS NOT NULL) STORED
);

CREATE TABLE bookings (
    bid                     uuid PRIMARY KEY,
    user_id                 text NOT NULL,
    cid                     uuid NOT NULL REFERENCES cars (cid),
    booking_number          text NOT NULL UNIQUE,
    start_date              date NOT NULL,
    end_date                date NOT NULL,
    total_days              integer NOT NULL CHECK (total_days >= 1),
    price_per_day           numeric(12, 2) NOT NULL,
    sub_total               numeric(12, 2) NOT NULL,
    driver_cost             numeric(12, 2) NOT NULL DEFAULT 0,
    insurance_cost          numeric(12, 2) NOT NULL DEFAULT 0,
    gps_cost                numeric(12, 2) NOT NULL DEFAULT 0,
    child_seat_cost         numeric(12, 2) NOT NULL DEFAULT 0,
    additional_drivers_cost numeric(12, 2) NOT NULL DEFAULT 0,
    tax_amount              numeric(12, 2) NOT NULL,
    discount_amount         numeric(12, 2) NOT NULL DEFAULT 0,
    deposit_amount          numeric(12, 2) NOT NULL DEFAULT 0,
    total_amount            numeric(12, 2) NOT NULL,
    pickup_location_id      uuid NOT NULL REFERENCES locations (lid),
    return_location_id      uuid NOT NULL REFERENCES locations (lid),
    assigned_driver_id      uuid,
    needs_driver            boolean NOT NULL DEFAULT false,
    with_insurance          boolean NOT NULL DEFAULT false,
    with_gps                boolean NOT NULL DEFAULT false,
    with_child_seat         boolean NOT NULL DEFAULT false,
    additional_drivers      integer NOT NULL DEFAULT 0
        CHECK (additional_drivers >= 0),
    status                  text NOT NULL CHECK (status IN (
        'pending', 'confirmed', 'in-progress', 'completed',
        'cancelled', 'rejected'
    )),
    notes                   text NOT NULL DEFAULT '',
    cancellation_reason     text NOT NULL DEFAULT '',
    cancelled_at            timestamptz,
    actual_pickup_time      timestamptz,
    actual_return_time      timestamptz,
    contact_phone           text NOT NULL DEFAULT '',
    contact_email           text NOT NULL,
    created_at              timestamptz NOT NULL DEFAULT now(),
    updated_at              timestamptz,
    deleted_at              timestamptz,
    is_deleted              boolean GENERATED ALWAYS AS (deleted_at IS NOT NULL) STORED,
    CHECK (end_date >= start_date)
);

CREATE INDEX bookings_blocking_idx ON bookings (cid, start_date, end_date)
    WHERE status NOT IN ('cancelled', 'rejected') AND deleted_at IS NULL;
CREATE INDEX bookings_user_idx ON bookings (user_id, created_at DESC);

CREATE TABLE payments (
    pid               uuid PRIMARY KEY,
    bid               uuid NOT NULL UNIQUE
        REFERENCES bookings (bid) ON DELETE CASCADE,
    user_id           text NOT NULL,
    transaction_id    text NOT NULL UNIQUE,
    payment_reference text NOT NULL,
    amount            numeric(12, 2) NOT NULL CHECK (amount >= 0),
    refunded_amount   numeric(12, 2) NOT NULL DEFAULT 0,
    method            text NOT NULL,
    status            text NOT NULL CHECK (status IN (
        'pending', 'completed', 'failed', 'refunded', 'partially-refunded'
    )),
    paid_at           timestamptz,
    card_last4        text NOT NULL DEFAULT '',
    card_brand        text NOT NULL DEFAULT '',
    gateway_response  text NOT NULL DEFAULT '',
    failure_reason    text NOT NULL DEFAULT '',
    invoice_url       text NOT NULL DEFAULT '',
    invoice_generated boolean NOT NULL DEFAULT false,
    created_at        timestamptz NOT NULL DEFAULT now(),
    updated_at        timestamptz,
    deleted_at        timestamptz,
    is_deleted        boolean GENERATED ALWAYS AS (deleted_at IS NOT NULL) STORED
);

CREATE INDEX payments_user_idx ON payments (user_id, created_at DESC);

CREATE TABLE notifications (
    nid        uuid PRIMARY KEY,
    user_id    text NOT NULL,
    title      text NOT NULL,
    message    text NOT NULL,
    kind       text NOT NULL,
    is_read    boolean NOT NULL DEFAULT false,
    created_at timestamptz NOT NULL DEFAULT now(),
    deleted_at timestamptz,
    is_deleted boolean GENERATED ALWAYS AS (deleted_at IS NOT NULL) STORED
);

CREATE INDEX notifications_user_idx ON notifications (user_id, created_at DESC);
`

const devData = `
INSERT INTO locations (lid, name, address, city, lat, lon) VALUES
('6b5c5a0e-3f43-4c4e-9c3e-1a2b3c4d5e01', 'Airport', 'Heydar Aliyev International Airport', 'Baku', 40.4675, 50.0467),
('6b5c5a0e-3f43-4c4e-9c3e-1a2b3c4d5e02', 'Downtown', '28 May Street 1', 'Baku', 40.3795, 49.8486),
('6b5c5a0e-3f43-4c4e-9c3e-1a2b3c4d5e03', 'Railway Station', 'Azadliq Avenue 2', 'Ganja', 40.6828, 46.3606);

INSERT INTO cars (cid, brand, model, year, license_plate, status, price_per_day, deposit_amount, discount_percentage, lat, lon) VALUES
('9d2e6f10-7a1b-4c2d-8e3f-000000000001', 'Toyota', 'Corolla', 2022, '10-AA-001', 'available', 50.00, 200.00, 0, 40.4675, 50.0467),
('9d2e6f10-7a1b-4c2d-8e3f-000000000002', 'Hyundai', 'Elantra', 2021, '10-AA-002', 'available', 45.00, 150.00, 5, 40.3795, 49.8486),
('9d2e6f10-7a1b-4c2d-8e3f-000000000003', 'Mercedes-Benz', 'E 200', 2023, '90-BB-003', 'available', 120.00, 500.00, 10, 40.3795, 49.8486),
('9d2e6f10-7a1b-4c2d-8e3f-000000000004', 'Kia', 'Sportage', 2020, '20-CC-004', 'maintenance', 60.00, 250.00, 0, 40.6828, 46.3606);
`
