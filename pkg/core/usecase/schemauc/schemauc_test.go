// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemauc_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/momeni/car-rental/internal/test/memrepo"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/schemauc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder keeps the performed steps in order, so the settings,
// schema repository, and initializer fakes can share it.
type recorder struct {
	steps  []string
	failAt string
}

func (r *recorder) step(format string, args ...any) error {
	s := fmt.Sprintf(format, args...)
	r.steps = append(r.steps, s)
	if s == r.failAt {
		return errors.New("failed at " + s)
	}
	return nil
}

type fakeSettings struct {
	*recorder
}

func (fs fakeSettings) ConnectionPool(_ context.Context, r repo.Role) (repo.Pool, error) {
	return memrepo.New(), fs.step("pool %s", r)
}

func (fs fakeSettings) NewSchemaRepo() repo.Schema {
	return fakeSchema(fs)
}

func (fs fakeSettings) SchemaInitializer(repo.Tx) (repo.SchemaInitializer, error) {
	return fakeInitializer(fs), nil
}

func (fs fakeSettings) RenewPasswords(
	ctx context.Context,
	change func(context.Context, []repo.Role, []string) error,
	roles ...repo.Role,
) (func() error, error) {
	passes := make([]string, len(roles))
	for i := range roles {
		passes[i] = "secret"
	}
	if err := change(ctx, roles, passes); err != nil {
		return nil, err
	}
	return func() error {
		return fs.step("finalize")
	}, nil
}

func (fs fakeSettings) SchemaVersion() model.SemVer {
	return model.SemVer{1, 0, 0}
}

type fakeSchema fakeSettings

func (s fakeSchema) Conn(repo.Conn) repo.SchemaConnQueryer {
	return s
}

func (s fakeSchema) Tx(repo.Tx) repo.SchemaTxQueryer {
	return s
}

func (s fakeSchema) DropIfExists(_ context.Context, schema string) error {
	return s.step("drop %s", schema)
}

func (s fakeSchema) CreateSchema(_ context.Context, schema string) error {
	return s.step("create %s", schema)
}

func (s fakeSchema) CreateRoleIfNotExists(_ context.Context, r repo.Role) error {
	return s.step("role %s", r)
}

func (s fakeSchema) GrantPrivileges(_ context.Context, schema string, r repo.Role) error {
	return s.step("grant %s %s", schema, r)
}

func (s fakeSchema) SetSearchPath(_ context.Context, schema string, r repo.Role) error {
	return s.step("search_path %s %s", schema, r)
}

func (s fakeSchema) ChangePasswords(
	_ context.Context, roles []repo.Role, passes []string,
) error {
	return s.step("passwords %v %d", roles, len(passes))
}

type fakeInitializer fakeSettings

func (fi fakeInitializer) InitDevSchema(context.Context) error {
	return fi.step("dev")
}

func (fi fakeInitializer) InitProdSchema(context.Context) error {
	return fi.step("prod")
}

func TestInitDev(t *testing.T) {
	rec := &recorder{}
	uc := schemauc.New(fakeSettings{rec})
	require.NoError(t, uc.InitDev(context.Background()))
	assert.Equal(t, []string{
		"pool admin",
		"drop crweb1",
		"create crweb1",
		"role crweb",
		"grant crweb1 crweb",
		"search_path crweb1 crweb",
		"passwords [admin crweb] 2",
		"finalize",
		"pool crweb",
		"dev",
	}, rec.steps)
}

func TestInitProdStopsOnFailure(t *testing.T) {
	rec := &recorder{failAt: "grant crweb1 crweb"}
	uc := schemauc.New(fakeSettings{rec})
	err := uc.InitProd(context.Background())
	require.Error(t, err)
	assert.NotContains(t, rec.steps, "finalize")
	assert.NotContains(t, rec.steps, "prod")

	rec = &recorder{}
	uc = schemauc.New(fakeSettings{rec})
	require.NoError(t, uc.InitProd(context.Background()))
	assert.Equal(t, "prod", rec.steps[len(rec.steps)-1])
}

func TestSchemaName(t *testing.T) {
	assert.Equal(t, "crweb1", schemauc.SchemaName(1))
}
