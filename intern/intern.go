// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package intern provides a reference-counted string interning pool.
//
// A Pool deduplicates strings: interning the same content twice yields
// handles to one shared entry, so equality checks reduce to a pointer
// comparison and each distinct string is stored once.
//
// The pool is an explicitly constructed instance, not a process-wide
// singleton, and it does not own the strings it indexes. The map holds
// non-owning lookup entries keyed by hash; ownership lives with the Ref
// holders, and the entry is removed exactly when the last holder calls
// Release. A pool therefore never pins a string that nobody uses.
//
//	pool := intern.NewPool()
//
//	a := pool.Intern("content-type")
//	b := pool.Intern("content-type")
//	// a.Is(b) == true, one copy stored
//
//	a.Release()
//	b.Release() // entry removed here
package intern

import (
	"sync"

	"code.hybscloud.com/atomix"
	"github.com/cespare/xxhash/v2"
)

// Pool is a mutex-protected intern table. The zero value is not usable;
// construct with NewPool. A Pool may be shared freely between
// goroutines.
type Pool struct {
	mu      sync.Mutex
	entries map[uint64]*entry
}

// entry is a non-owning record of one interned string. It lives in the
// pool map while at least one Ref holds it; refs is maintained outside
// the pool lock, removal is decided under it.
type entry struct {
	pool *Pool // nil for uncached (collision) entries
	hash uint64
	str  string
	refs atomix.Int64
}

// Ref is a counted handle to an interned string. The zero Ref is empty
// and safe to Release. Refs are comparable; two Refs compare equal iff
// they share one interned entry.
//
// Each Ref obtained from Intern, Lookup or Retain must be released
// exactly once. Releasing more often than retaining corrupts the count.
type Ref struct {
	e *entry
}

// NewPool creates an empty intern pool.
func NewPool() *Pool {
	return &Pool{entries: make(map[uint64]*entry)}
}

// Intern returns a counted handle to the pooled copy of s, adding an
// entry if none exists.
//
// The table is keyed by the 64-bit xxhash of s. In the astronomically
// rare event that s collides with a different pooled string, Intern
// returns a valid but uncached handle rather than the wrong string.
func (p *Pool) Intern(s string) Ref {
	hash := xxhash.Sum64String(s)

	p.mu.Lock()
	defer p.mu.Unlock()

	if e, ok := p.entries[hash]; ok {
		if e.str != s {
			return newOrphan(hash, s)
		}
		e.refs.Add(1)
		return Ref{e: e}
	}

	e := &entry{pool: p, hash: hash, str: s}
	e.refs.Store(1)
	p.entries[hash] = e
	return Ref{e: e}
}

// Lookup returns a counted handle to the entry with the given hash, if
// one is pooled.
func (p *Pool) Lookup(hash uint64) (Ref, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[hash]
	if !ok {
		return Ref{}, false
	}
	e.refs.Add(1)
	return Ref{e: e}, true
}

// Contains reports whether s is currently pooled. The answer is a
// snapshot: a concurrent Release may remove the entry immediately after.
func (p *Pool) Contains(s string) bool {
	hash := xxhash.Sum64String(s)

	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[hash]
	return ok && e.str == s
}

// Len returns the number of pooled entries.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// newOrphan builds a handle that is never registered in the pool map.
func newOrphan(hash uint64, s string) Ref {
	e := &entry{hash: hash, str: s}
	e.refs.Store(1)
	return Ref{e: e}
}

// String returns the interned string. The empty Ref returns "".
func (r Ref) String() string {
	if r.e == nil {
		return ""
	}
	return r.e.str
}

// Hash returns the pool key of the interned string.
func (r Ref) Hash() uint64 {
	if r.e == nil {
		return 0
	}
	return r.e.hash
}

// Len returns the length of the interned string in bytes.
func (r Ref) Len() int {
	if r.e == nil {
		return 0
	}
	return len(r.e.str)
}

// Empty reports whether the Ref holds no entry or an empty string.
func (r Ref) Empty() bool {
	return r.e == nil || r.e.str == ""
}

// Is reports whether two Refs share the same interned entry.
func (r Ref) Is(other Ref) bool {
	return r.e == other.e
}

// Retain acquires an additional count on the entry and returns the same
// handle, for passing ownership to another holder.
func (r Ref) Retain() Ref {
	if r.e != nil {
		r.e.refs.Add(1)
	}
	return r
}

// Release drops this holder's count. The pooled entry is removed exactly
// when the last holder releases it. Safe on the zero Ref.
func (r Ref) Release() {
	e := r.e
	if e == nil {
		return
	}
	if e.refs.Add(-1) != 0 {
		return
	}
	p := e.pool
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// A concurrent Intern may have resurrected the entry between the
	// decrement and taking the lock; remove only if it is still dead.
	if e.refs.Load() == 0 && p.entries[e.hash] == e {
		delete(p.entries, e.hash)
	}
}
