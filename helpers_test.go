// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package keydelta

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/maps"
)

// newGenerator creates a new PRNG seeded with the
// unix nanoseconds value of the current time.
func newGenerator() (prng *rand.Rand) {
	seed := time.Now().UnixNano()
	source := rand.NewSource(seed)
	return rand.New(source) //skipcq: GSC-G404
}

func generateRandBytes(tb testing.TB, size int,
	generator *rand.Rand) (b []byte) {
	tb.Helper()
	b = make([]byte, size)
	_, err := generator.Read(b)
	require.NoError(tb, err)
	return b
}

func generateRandBytesMinMax(tb testing.TB, minSize, maxSize int,
	generator *rand.Rand) (b []byte) {
	tb.Helper()
	size := minSize + generator.Intn(maxSize-minSize)
	return generateRandBytes(tb, size, generator)
}

// generateKeys generates count distinct keys shaped like the intended
// key space, as concatenated digests of 64 to 162 bytes.
func generateKeys(tb testing.TB, generator *rand.Rand,
	count int) (keys [][]byte) {
	tb.Helper()
	const minKeySize, maxKeySize = 64, 162
	seen := make(map[string]struct{}, count)
	keys = make([][]byte, 0, count)
	for len(keys) < count {
		key := generateRandBytesMinMax(tb, minKeySize, maxKeySize, generator)
		asString := string(key)
		if _, ok := seen[asString]; ok {
			continue
		}
		seen[asString] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

func pickKey(keys [][]byte, generator *rand.Rand) (key []byte) {
	return keys[generator.Intn(len(keys))]
}

// requireDeltaKeys asserts the delta holds exactly the
// expected keys, in any order.
func requireDeltaKeys(t *testing.T, delta DeltaKeys[string],
	expectedKeys ...string) {
	t.Helper()
	require.ElementsMatch(t, expectedKeys, maps.Values(delta))
}

// assertCapturedSetsNotEmpty asserts no layer holds a
// captured set that is present but empty.
func assertCapturedSetsNotEmpty[K any](t *testing.T, cs *Changeset[K]) {
	t.Helper()
	layers := append([]transactionLayer[K]{}, cs.stack...)
	layers = append(layers, cs.active)
	for i, layer := range layers {
		if layer.captured != nil {
			assert.NotEmptyf(t, layer.captured,
				"captured set of layer %d is present but empty", i)
		}
	}
}

func getPointer(t *testing.T, v interface{}) (pointer uintptr) {
	t.Helper()
	value := reflect.ValueOf(v)
	switch value.Kind() {
	case reflect.Map, reflect.Ptr, reflect.Slice, reflect.Func:
	default:
		t.Fatalf("cannot get pointer of kind %s", value.Kind())
	}
	return value.Pointer()
}

func assertPointersNotEqual(t *testing.T, a, b interface{}) {
	t.Helper()
	pointerA := getPointer(t, a)
	pointerB := getPointer(t, b)
	assert.NotEqual(t, pointerA, pointerB)
}
