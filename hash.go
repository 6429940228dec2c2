// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package keydelta

import (
	"github.com/OneOfOne/xxhash"
)

// twoxSeed is the xxHash seed used by the convenience constructors,
// the same seed the twox-64 storage hasher uses.
const twoxSeed = 0

// NewBytes creates an empty changeset for byte slice keys, fingerprinted
// with the 64-bit xxHash checksum at seed 0. Keys are cloned before
// being retained, so callers can reuse their key buffers.
func NewBytes() (changeset *Changeset[[]byte]) {
	hashKey := func(key []byte) uint64 {
		return xxhash.Checksum64S(key, twoxSeed)
	}
	cloneKey := func(key []byte) (cloned []byte) {
		cloned = make([]byte, len(key))
		copy(cloned, key)
		return cloned
	}
	return New(hashKey, cloneKey)
}

// NewStrings creates an empty changeset for string keys, fingerprinted
// with the 64-bit xxHash checksum at seed 0, without the bytes to string
// conversion cost.
func NewStrings() (changeset *Changeset[string]) {
	hashKey := func(key string) uint64 {
		return xxhash.ChecksumString64S(key, twoxSeed)
	}
	return New[string](hashKey, nil)
}
