// Package ident provides pluggable task ID generation. Production code uses
// random UUIDs; tests inject a sequential generator for deterministic graphs.
package ident

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces unique task IDs.
type Generator interface {
	NewID() string
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

// UUID returns a Generator backed by random UUIDs.
func UUID() Generator {
	return uuidGenerator{}
}

type sequentialGenerator struct {
	prefix string
	n      atomic.Uint64
}

func (g *sequentialGenerator) NewID() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.n.Add(1))
}

// Sequential returns a Generator that emits "<prefix>-1", "<prefix>-2", ...
// It is safe for concurrent use.
func Sequential(prefix string) Generator {
	return &sequentialGenerator{prefix: prefix}
}
