// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package iam

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"io"

	"github.com/outpost-sec/warden/internal/errors"
	"golang.org/x/crypto/argon2"
)

// argon2Config holds the cost parameters for the argon2id key derivation
// function used for account passwords. The cost parameters should be
// increased as memory latency and CPU parallelism increases.
type argon2Config struct {
	iterations uint32
	memory     uint32
	threads    uint8
	saltLength uint32
	keyLength  uint32
}

func defaultArgon2Config() argon2Config {
	return argon2Config{
		iterations: 3,
		memory:     64 * 1024,
		threads:    1,
		saltLength: 32,
		keyLength:  32,
	}
}

// deriveKey generates a random salt and derives a key from the password.
func (c argon2Config) deriveKey(ctx context.Context, password string, randReader io.Reader) (salt, key []byte, err error) {
	const op = "iam.(argon2Config).deriveKey"
	if password == "" {
		return nil, nil, errors.New(ctx, errors.InvalidParameter, op, "missing password")
	}
	if randReader == nil {
		randReader = rand.Reader
	}
	salt = make([]byte, c.saltLength)
	if _, err := io.ReadFull(randReader, salt); err != nil {
		return nil, nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.Io))
	}
	key = argon2.IDKey([]byte(password), salt, c.iterations, c.memory, c.threads, c.keyLength)
	return salt, key, nil
}

// verify re-derives the key from the candidate password and compares it in
// constant time against the stored key.
func (c argon2Config) verify(password string, salt, storedKey []byte) bool {
	if password == "" || len(salt) == 0 || len(storedKey) == 0 {
		return false
	}
	candidate := argon2.IDKey([]byte(password), salt, c.iterations, c.memory, c.threads, c.keyLength)
	return subtle.ConstantTimeCompare(candidate, storedKey) == 1
}
