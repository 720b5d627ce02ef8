// Package ident generates the string identifiers used for every stored entity.
//
// Identifiers are timestamp-derived ("card-1724500000000-7") rather than UUIDs
// so that rows created together sort together and stay readable in exports.
// A process-wide sequence disambiguates ids minted within the same millisecond.
package ident

import (
	"fmt"
	"sync/atomic"
	"time"
)

var seq atomic.Uint64

// New returns a fresh identifier with the given prefix, e.g. "card", "group".
func New(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixMilli(), seq.Add(1))
}

// Namespace returns a millisecond timestamp used to stamp a batch of ids
// minted by one operation (sample cloning creates its whole tree under one
// namespace so related rows are recognizable).
func Namespace() int64 {
	return time.Now().UnixMilli()
}

// InNamespace returns an identifier tied to a previously captured namespace.
func InNamespace(prefix string, namespace int64, n int) string {
	return fmt.Sprintf("%s-%d-%d", prefix, namespace, n)
}
