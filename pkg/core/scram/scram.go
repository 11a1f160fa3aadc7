// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram defines the Hasher interface which is used while the
// database role passwords are renewed. Roles are altered with a SCRAM
// verifier string instead of a plaintext password, so the DDL
// statements may be logged by the DBMS without leaking passwords.
// The implementation lives in the adapter layer.
package scram

// Hasher computes SCRAM verifiers for one underlying hash function,
// like SHA-1 or SHA-256 (RFC 5802 and RFC 7677).
type Hasher interface {
	// Hash returns a verifier string in this format
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	//
	// for the non-empty pass password. An empty salt asks for a
	// random salt, otherwise, salt must be base64 encoded. The iters
	// must be at least 4096.
	Hash(pass, salt string, iters int) (string, error)
}
