// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package keydelta

import (
	"testing"
)

func Benchmark_Changeset(b *testing.B) {
	generator := newGenerator()
	const poolSize = 256
	keys := generateKeys(b, generator, poolSize)

	// Workload shaped like block execution: transactions nested up to
	// ten levels deep, ten to twenty keys per transaction with keys
	// heavily repeating across transactions, and deltas taken at
	// block boundaries.
	b.Run("nested_transactions_with_deltas", func(b *testing.B) {
		changeset := NewBytes()
		for i := 0; i < b.N; i++ {
			depth := 1 + i%10
			for d := 0; d < depth; d++ {
				changeset.StartTransaction()
				keysInTransaction := 10 + generator.Intn(11)
				for k := 0; k < keysInTransaction; k++ {
					changeset.AddKey(pickKey(keys, generator), Updated)
				}
			}
			for d := 0; d < depth; d++ {
				changeset.CommitTransaction()
			}
			if i%16 == 0 {
				changeset.TakeDelta()
			}
		}
	})

	b.Run("flat_adds_with_deltas", func(b *testing.B) {
		changeset := NewBytes()
		for i := 0; i < b.N; i++ {
			changeset.AddKey(pickKey(keys, generator), Updated)
			if i%32 == 0 {
				changeset.TakeDelta()
			}
		}
	})

	b.Run("take_delta", func(b *testing.B) {
		changeset := NewBytes()
		for i := 0; i < b.N; i++ {
			for k := 0; k < dirtyKeysCapacity; k++ {
				changeset.AddKey(pickKey(keys, generator), Updated)
			}
			changeset.TakeDelta()
		}
	})
}
