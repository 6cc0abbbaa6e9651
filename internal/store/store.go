// Package store persists JSON values under string keys on top of a pluggable
// key-value backend. A Store is scoped to one visitor namespace; scopes share
// the backend and a single writer lock.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned by a Backend when no value exists for a key.
var ErrNotFound = errors.New("store: key not found")

// Backend is the raw byte-level key-value capability.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Ping(ctx context.Context) error
}

// Store is the JSON get/set capability handed to repositories. Lock and
// Unlock bracket read-modify-write sequences.
type Store interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	sync.Locker
}

// Adapter implements Store over a Backend.
type Adapter struct {
	backend Backend
	prefix  string
	mu      *sync.Mutex
}

// New wraps backend in an unscoped Adapter.
func New(backend Backend) *Adapter {
	return &Adapter{backend: backend, mu: &sync.Mutex{}}
}

// Scope returns an Adapter whose keys live under namespace.
func (a *Adapter) Scope(namespace string) *Adapter {
	return &Adapter{
		backend: a.backend,
		prefix:  a.prefix + namespace + ":",
		mu:      a.mu,
	}
}

// ForVisitor returns the store for one visitor.
func (a *Adapter) ForVisitor(visitorID string) Store {
	return a.Scope("visitor:" + visitorID)
}

// Get decodes the value stored under key into dst. A missing key reports
// found=false and leaves dst untouched.
func (a *Adapter) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := a.backend.Load(ctx, a.prefix+key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Set encodes value and persists it under key.
func (a *Adapter) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := a.backend.Save(ctx, a.prefix+key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (a *Adapter) Lock()   { a.mu.Lock() }
func (a *Adapter) Unlock() { a.mu.Unlock() }

// Ping checks the backend.
func (a *Adapter) Ping(ctx context.Context) error {
	return a.backend.Ping(ctx)
}

// GetOr returns the value under key, or fallback when the key is absent.
func GetOr[T any](ctx context.Context, s Store, key string, fallback T) (T, error) {
	var value T
	found, err := s.Get(ctx, key, &value)
	if err != nil {
		return fallback, err
	}
	if !found {
		return fallback, nil
	}
	return value, nil
}
