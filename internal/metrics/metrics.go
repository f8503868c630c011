// Package metrics is a tiny counter facade. The loader emits counters
// through package functions; a backend is installed once at startup and a
// nop backend is the default, so the core stays free of any vendor SDK.
package metrics

import "sync"

// Backend receives counter increments and submits them somewhere.
type Backend interface {
	// Count adds delta to the named counter with the given tags.
	Count(name string, delta float64, tags []string)

	// Flush submits anything buffered. Safe to call at any time.
	Flush() error
}

type nop struct{}

func (nop) Count(string, float64, []string) {}
func (nop) Flush() error                    { return nil }

var (
	mu      sync.RWMutex
	backend Backend = nop{}
)

// SetBackend installs the process backend. Call once at startup.
func SetBackend(b Backend) {
	mu.Lock()
	defer mu.Unlock()
	if b == nil {
		b = nop{}
	}
	backend = b
}

// Count adds delta to a counter on the installed backend.
func Count(name string, delta float64, tags ...string) {
	mu.RLock()
	b := backend
	mu.RUnlock()
	b.Count(name, delta, tags)
}

// Flush submits buffered metrics on the installed backend.
func Flush() error {
	mu.RLock()
	b := backend
	mu.RUnlock()
	return b.Flush()
}
