// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package keydelta

import (
	"fmt"
	"strings"

	"github.com/qdm12/gotree"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// String returns a human readable representation
// of the changeset, for debugging purposes.
func (cs *Changeset[K]) String() string {
	return cs.StringNode().String()
}

// StringNode returns a gotree compatible node for String methods.
func (cs *Changeset[K]) StringNode() (stringNode *gotree.Node) {
	stringNode = gotree.New("Changeset")
	for i := range cs.stack {
		label := fmt.Sprintf("transaction layer %d", i)
		stringNode.AppendNode(cs.stack[i].stringNode(label))
	}
	stringNode.AppendNode(cs.active.stringNode("active layer"))
	return stringNode
}

func (l *transactionLayer[K]) stringNode(label string) (node *gotree.Node) {
	node = gotree.New(label)
	fingerprints := maps.Keys(l.dirty)
	slices.Sort(fingerprints)
	for _, fingerprint := range fingerprints {
		c := l.dirty[fingerprint]
		node.Appendf("dirty %#x: %s %s", fingerprint, c.op, keyString(c.key))
	}
	node.Appendf("captured: %s", fingerprintSetString(l.captured))
	node.Appendf("tombstones: %s", fingerprintSetString(l.tombstones))
	return node
}

func fingerprintSetString(set map[uint64]struct{}) (s string) {
	if set == nil {
		return "none"
	}
	fingerprints := maps.Keys(set)
	slices.Sort(fingerprints)
	elements := make([]string, len(fingerprints))
	for i, fingerprint := range fingerprints {
		elements[i] = fmt.Sprintf("%#x", fingerprint)
	}
	return "[" + strings.Join(elements, ", ") + "]"
}

func keyString(key any) (s string) {
	switch typed := key.(type) {
	case []byte:
		return bytesToString(typed)
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprintf("%v", key)
	}
}

func bytesToString(b []byte) (s string) {
	switch {
	case b == nil:
		return "nil"
	case len(b) <= 20:
		return fmt.Sprintf("0x%x", b)
	default:
		return fmt.Sprintf("0x%x...%x", b[:8], b[len(b)-8:])
	}
}
