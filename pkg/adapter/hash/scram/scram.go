// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram implements the SCRAM-SHA-1 and SCRAM-SHA-256 verifier
// generation using the github.com/xdg-go/scram module. The verifiers
// are accepted by PostgreSQL in CREATE or ALTER ROLE statements in
// place of a plaintext password.
package scram

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/xdg-go/scram"
)

// MinIterations is the least accepted PBKDF2 iterations count.
const MinIterations = 4096

// Errors which are returned by Mechanism.Hash for invalid arguments.
var (
	ErrEmptyPassword = errors.New("password must be non-empty")
	ErrFewIterations = fmt.Errorf("iterations must be at least %d", MinIterations)
)

// Mechanism computes SCRAM verifiers with a fixed hash function.
// It implements the core scram.Hasher interface.
type Mechanism struct {
	gen     scram.HashGeneratorFcn
	saltLen int
	name    string
}

// SHA1 returns the SCRAM-SHA-1 mechanism.
func SHA1() *Mechanism {
	return &Mechanism{gen: scram.SHA1, saltLen: 20, name: "SCRAM-SHA-1"}
}

// SHA256 returns the SCRAM-SHA-256 mechanism.
func SHA256() *Mechanism {
	return &Mechanism{gen: scram.SHA256, saltLen: 32, name: "SCRAM-SHA-256"}
}

// Name returns the mechanism name, like SCRAM-SHA-256.
func (m *Mechanism) Name() string {
	return m.name
}

// Hash computes the SCRAM verifier of pass with the base64 encoded
// salt (or a random one if salt is empty) and iters iterations.
// The pass is normalized by SASLprep, so its failure is reported too.
func (m *Mechanism) Hash(pass, salt string, iters int) (string, error) {
	switch {
	case pass == "":
		return "", ErrEmptyPassword
	case iters < MinIterations:
		return "", fmt.Errorf("%w: got %d", ErrFewIterations, iters)
	}
	if salt == "" {
		b := make([]byte, m.saltLen)
		if _, err := rand.Read(b); err != nil {
			return "", fmt.Errorf("creating random salt: %w", err)
		}
		salt = base64.StdEncoding.EncodeToString(b)
	}
	raw, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("decoding base64 salt: %w", err)
	}
	// user and authzID do not affect the stored credentials
	c, err := m.gen.NewClient("crweb", pass, "")
	if err != nil {
		return "", fmt.Errorf("creating SCRAM client: %w", err)
	}
	sc := c.GetStoredCredentials(scram.KeyFactors{
		Salt:  string(raw),
		Iters: iters,
	})
	enc := base64.StdEncoding.EncodeToString
	return fmt.Sprintf("%s$%d:%s$%s:%s",
		m.name, iters, salt, enc(sc.StoredKey), enc(sc.ServerKey),
	), nil
}
