// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/core/model"
)

type LocationsConnQueryer interface {
	LocationsQueryer
}

type LocationsTxQueryer interface {
	LocationsQueryer
}

// LocationsQueryer is the read-only location catalog.
type LocationsQueryer interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Location, error)
}

type Locations interface {
	Conn(Conn) LocationsConnQueryer
	Tx(Tx) LocationsTxQueryer
}
