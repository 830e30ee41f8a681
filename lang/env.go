package lang

// This file defines the environment shared by every render: the named values
// bound as script globals and the prelude of helper functions. Each value
// lives in its own lockable cell so concurrent renders only contend on the
// value they are converting at that moment.

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/ardnew/lawl/log"
	"github.com/ardnew/lawl/value"
)

// cell holds one environment value behind its own lock.
type cell struct {
	mu    sync.Mutex
	value value.Serializer
}

// Environment maps names to values visible as globals in every render, and
// holds the prelude executed before those globals are bound.
//
// Environment is safe for concurrent use. Insert and Remove take a write
// lock on the key set; building a [Context] takes a read lock on the key set
// and locks each value only while converting it.
type Environment struct {
	mu        sync.RWMutex
	values    map[string]*cell
	functions []string
	logger    log.Logger
}

// Option configures an Environment.
type Option func(*Environment)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(e *Environment) {
		e.logger = logger
	}
}

// NewEnvironment returns an empty Environment seeded with the
// [DefaultPrelude].
func NewEnvironment(opts ...Option) *Environment {
	e := &Environment{
		values:    make(map[string]*cell),
		functions: DefaultPrelude(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Insert stores v under key, replacing any previous value.
// The value is not converted until a render reads it.
func (e *Environment) Insert(key string, v value.Serializer) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.values[key] = &cell{value: v}

	e.logger.Trace("insert", slog.String("key", key))
}

// Remove deletes the value stored under key. Removing an absent key is a
// no-op.
func (e *Environment) Remove(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.values, key)

	e.logger.Trace("remove", slog.String("key", key))
}

// Lookup returns the value stored under key.
func (e *Environment) Lookup(key string) (value.Serializer, bool) {
	e.mu.RLock()
	c, ok := e.values[key]
	e.mu.RUnlock()

	if !ok {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.value, true
}

// Keys returns the names currently stored, sorted.
func (e *Environment) Keys() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return sortedKeys(e.values)
}

// Len returns the number of values stored.
func (e *Environment) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.values)
}

// Prelude returns a copy of the script fragments executed at the start of
// every render.
func (e *Environment) Prelude() []string {
	return slices.Clone(e.functions)
}
