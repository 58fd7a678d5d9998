package storage

import "sync"

// LockContext scopes structural mutations (resize and the check-then-grow
// sequence around it). A single context may be shared by several storage
// instances so that they coordinate under one lock.
//
// The lock is advisory and not reentrant: a goroutine holding it must not
// call any method that acquires it again. Plain reads and writes never take
// it; page-table access inside PagedStorage has its own synchronization.
type LockContext struct {
	mu sync.Mutex
}

// NewLockContext returns a context usable by one or more storage instances.
func NewLockContext() *LockContext {
	return &LockContext{}
}

// Lock acquires the structural lock.
func (c *LockContext) Lock() { c.mu.Lock() }

// Unlock releases the structural lock.
func (c *LockContext) Unlock() { c.mu.Unlock() }
