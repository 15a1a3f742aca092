// internal/app/system/entlock/entlock.go

// Package entlock serializes mutations that perform read-check-write
// sequences against the same subject. Membership ceilings span several
// documents, so the check cannot be expressed as a single conditional
// update; holding the subject's lock for the duration of check+write keeps
// two concurrent adds for the same user from both passing the check.
//
// Locks are scoped to this process. Single-document guards (the $ne
// filters on the append itself) still hold across processes.
package entlock

import "sync"

// Registry hands out one mutex per key. Keys are formed by the caller,
// e.g. "org-member:<userID>" or "project-member:<email>".
type Registry struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	sync.Mutex
	refs int
}

// New creates an empty lock registry.
func New() *Registry {
	return &Registry{locks: make(map[string]*entry)}
}

// Lock acquires the mutex for key, creating it on first use.
func (r *Registry) Lock(key string) {
	r.mu.Lock()
	e, ok := r.locks[key]
	if !ok {
		e = &entry{}
		r.locks[key] = e
	}
	e.refs++
	r.mu.Unlock()

	e.Lock()
}

// Unlock releases the mutex for key and discards it once no goroutine
// holds or waits on it.
func (r *Registry) Unlock(key string) {
	r.mu.Lock()
	e, ok := r.locks[key]
	if ok {
		e.refs--
		if e.refs == 0 {
			delete(r.locks, key)
		}
	}
	r.mu.Unlock()

	if ok {
		e.Unlock()
	}
}
