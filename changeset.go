// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package keydelta tracks storage key changes across nested reversible
// transactions and extracts incremental deltas: the keys changed since
// the previous still live delta, without re-reporting captured keys.
package keydelta

import (
	"github.com/ChainSafe/keydelta/log"
	"golang.org/x/exp/maps"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "keydelta"))

// Op is the kind of change recorded for a key.
type Op uint8

const (
	// Updated is a key insertion or update.
	Updated Op = iota
	// Deleted is a key deletion. Once a deletion is reported in a delta,
	// later Updated operations on the same key are filtered from all
	// following deltas until the layer recording the deletion is
	// rolled back.
	Deleted
)

func (op Op) String() (s string) {
	switch op {
	case Updated:
		return "Updated"
	case Deleted:
		return "Deleted"
	default:
		return "Unknown"
	}
}

// HashKey computes the 64-bit fingerprint of a key. It must be
// deterministic for the lifetime of the changeset holding it.
type HashKey[K any] func(key K) uint64

// CloneKey returns a copy of a key that stays valid if the
// original key is modified.
type CloneKey[K any] func(key K) K

// DeltaKeys holds the keys reported by one delta, by key fingerprint.
// The fingerprints can be ignored by consumers.
type DeltaKeys[K any] map[uint64]K

const dirtyKeysCapacity = 16

type change[K any] struct {
	key K
	op  Op
}

type transactionLayer[K any] struct {
	// dirty holds the key changes not yet reported in any live delta,
	// by key fingerprint. At most one change per fingerprint, the last
	// one recorded.
	dirty map[uint64]change[K]
	// captured holds the fingerprints already reported in a delta taken
	// while this layer was the active layer. It stays nil until the
	// first non empty delta is taken.
	captured map[uint64]struct{}
	// tombstones holds the fingerprints deleted while this layer was
	// live. A tombstoned fingerprint suppresses Updated reports for as
	// long as the layer recording it is live.
	tombstones map[uint64]struct{}
}

func newTransactionLayer[K any]() transactionLayer[K] {
	return transactionLayer[K]{
		dirty:      make(map[uint64]change[K], dirtyKeysCapacity),
		tombstones: make(map[uint64]struct{}),
	}
}

func (l *transactionLayer[K]) deepCopy(cloneKey CloneKey[K]) (deepCopy transactionLayer[K]) {
	deepCopy = transactionLayer[K]{
		dirty:      make(map[uint64]change[K], len(l.dirty)),
		captured:   maps.Clone(l.captured),
		tombstones: maps.Clone(l.tombstones),
	}
	for fingerprint, c := range l.dirty {
		deepCopy.dirty[fingerprint] = change[K]{key: cloneKey(c.key), op: c.op}
	}
	return deepCopy
}

// Changeset records storage key operations through nested reversible
// transactions and extracts incremental deltas with TakeDelta.
//
// Keys are identified internally by their 64-bit fingerprint only, so
// two distinct keys hashing to the same fingerprint are treated as the
// same key. This trade-off keeps full keys out of the lookup structures;
// the intended key spaces are fixed-length cryptographic digests with a
// negligible collision probability.
//
// A Changeset is not safe for concurrent use.
type Changeset[K any] struct {
	// stack of layers for the open transactions, from outermost to
	// innermost, excluding the active layer.
	stack []transactionLayer[K]
	// active is the innermost layer, the only one written to.
	active   transactionLayer[K]
	hashKey  HashKey[K]
	cloneKey CloneKey[K]
}

// New creates an empty changeset for keys of type K.
// hashKey must not be nil. cloneKey may be nil if assigning a key
// fully copies it, for example for string or array keys.
func New[K any](hashKey HashKey[K], cloneKey CloneKey[K]) (changeset *Changeset[K]) {
	if hashKey == nil {
		panic("hash key function is nil")
	}
	if cloneKey == nil {
		cloneKey = func(key K) K { return key }
	}
	return &Changeset[K]{
		active:   newTransactionLayer[K](),
		hashKey:  hashKey,
		cloneKey: cloneKey,
	}
}

// AddKey records the key as updated or deleted in the active
// transaction layer, retaining a clone of the key. Recording the same
// key again in the active layer overwrites the previously recorded
// operation.
func (cs *Changeset[K]) AddKey(key K, op Op) {
	logger.Tracef("adding key %s as %s", keyString(key), op)
	fingerprint := cs.hashKey(key)
	cs.active.dirty[fingerprint] = change[K]{key: cs.cloneKey(key), op: op}
}

// StartTransaction pushes the active layer onto the transaction stack
// and installs a new empty active layer. Operations recorded from this
// point on stay isolated until the matching CommitTransaction or
// RollbackTransaction call.
func (cs *Changeset[K]) StartTransaction() {
	logger.Tracef("starting transaction at depth %d", len(cs.stack))
	cs.stack = append(cs.stack, cs.active)
	cs.active = newTransactionLayer[K]()
}

// CommitTransaction merges the active layer into its parent layer and
// makes the parent the active layer again. Dirty changes move to the
// parent, overwriting older parent changes for the same fingerprint, and
// the captured and tombstone sets are merged in. Deltas taken later are
// the same as if the transaction had never been opened.
// It is a no-op if no transaction is open.
func (cs *Changeset[K]) CommitTransaction() {
	logger.Tracef("committing transaction at depth %d", len(cs.stack))
	if len(cs.stack) == 0 {
		return
	}

	parent := cs.stack[len(cs.stack)-1]
	cs.stack = cs.stack[:len(cs.stack)-1]

	if cs.active.captured != nil {
		if parent.captured == nil {
			parent.captured = cs.active.captured
		} else {
			maps.Copy(parent.captured, cs.active.captured)
		}
	}
	maps.Copy(parent.dirty, cs.active.dirty)
	maps.Copy(parent.tombstones, cs.active.tombstones)

	cs.active = parent
}

// RollbackTransaction discards the active layer together with its dirty
// changes, captured set and tombstones, and makes the parent layer the
// active layer again. Keys reported by deltas taken inside the rolled
// back transaction become reportable again.
// It is a no-op if no transaction is open.
func (cs *Changeset[K]) RollbackTransaction() {
	logger.Tracef("rolling back transaction at depth %d", len(cs.stack))
	if len(cs.stack) == 0 {
		return
	}

	cs.active = cs.stack[len(cs.stack)-1]
	cs.stack = cs.stack[:len(cs.stack)-1]
}

// TransactionDepth returns the number of open nested transactions.
func (cs *Changeset[K]) TransactionDepth() int {
	return len(cs.stack)
}

// TakeDelta returns the keys changed since the last still live delta
// and marks them as reported in the active layer.
//
// Dirty changes are drained from the active layer and collected without
// removal from stack layers, up to and including the first layer already
// holding a captured set; everything below that layer was reported
// before its captured set was created. A Deleted change is reported once
// and tombstones its fingerprint. An Updated change is skipped if its
// fingerprint is tombstoned or already captured in any live layer.
//
// Taking a delta with no activity to report returns an empty delta and
// changes nothing.
func (cs *Changeset[K]) TakeDelta() (delta DeltaKeys[K]) {
	delta = make(DeltaKeys[K], dirtyKeysCapacity)
	newTombstones := make(map[uint64]struct{})

	process := func(fingerprint uint64, key K, op Op) {
		if cs.isTombstoned(fingerprint) {
			return
		}

		if op == Deleted {
			newTombstones[fingerprint] = struct{}{}
			delta[fingerprint] = key
			return
		}

		if !cs.isCaptured(fingerprint) {
			delta[fingerprint] = key
		}
	}

	for fingerprint, c := range cs.active.dirty {
		process(fingerprint, c.key, c.op)
	}
	cs.active.dirty = make(map[uint64]change[K], dirtyKeysCapacity)

	for i := len(cs.stack) - 1; i >= 0; i-- {
		layer := &cs.stack[i]
		for fingerprint, c := range layer.dirty {
			process(fingerprint, cs.cloneKey(c.key), c.op)
		}
		if layer.captured != nil {
			break
		}
	}

	maps.Copy(cs.active.tombstones, newTombstones)

	logger.Tracef("took delta of %d keys at depth %d", len(delta), len(cs.stack))

	if len(delta) > 0 {
		if cs.active.captured == nil {
			cs.active.captured = make(map[uint64]struct{}, len(delta))
		}
		for fingerprint := range delta {
			cs.active.captured[fingerprint] = struct{}{}
		}
	}

	return delta
}

func (cs *Changeset[K]) isTombstoned(fingerprint uint64) bool {
	if _, ok := cs.active.tombstones[fingerprint]; ok {
		return true
	}
	for i := range cs.stack {
		if _, ok := cs.stack[i].tombstones[fingerprint]; ok {
			return true
		}
	}
	return false
}

func (cs *Changeset[K]) isCaptured(fingerprint uint64) bool {
	if _, ok := cs.active.captured[fingerprint]; ok {
		return true
	}
	for i := range cs.stack {
		if _, ok := cs.stack[i].captured[fingerprint]; ok {
			return true
		}
	}
	return false
}

// DeepCopy returns a deep copy of the changeset.
func (cs *Changeset[K]) DeepCopy() (deepCopy *Changeset[K]) {
	deepCopy = &Changeset[K]{
		stack:    make([]transactionLayer[K], len(cs.stack)),
		active:   cs.active.deepCopy(cs.cloneKey),
		hashKey:  cs.hashKey,
		cloneKey: cs.cloneKey,
	}
	for i := range cs.stack {
		deepCopy.stack[i] = cs.stack[i].deepCopy(cs.cloneKey)
	}
	return deepCopy
}
