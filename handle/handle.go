/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package handle is the process-wide registry that lets one thread hand a
// heap object to another without a data race: Make wraps an object behind a
// generation-tagged Handle, Acquire resolves that Handle back to the object
// under the slot's mutex, and Release drops the reference, disposing of the
// object exactly once when the last reference goes away.
package handle

import (
	"context"
	"sync"
	"time"

	uuid "github.com/hashicorp/go-uuid"

	liberr "github.com/libptk/protocoltk/errors"
	libsem "github.com/libptk/protocoltk/semaphore"
)

// maxRefCount is the hard ceiling acquire enforces on a slot's reference
// count; it exists so a runaway caller cannot wrap the counter back through
// zero.
const maxRefCount = 1 << 32

// waiterFanoutFactor bounds how many timed Acquire calls may have a
// lock-waiting goroutine in flight at once, relative to the table's
// capacity: lockWithTimeout's goroutine outlives a timed-out select (it only
// returns once the mutex is actually granted), so an unbounded caller could
// otherwise pile up one leaked goroutine per timed-out Acquire.
const waiterFanoutFactor = 4

// minWaiterFanout is the floor applied to tiny tables so the gate never
// starves a table of capacity 1 or 2 down to zero concurrent waiters.
const minWaiterFanout = 16

// Handle is an opaque identifier into the table: a generation paired with a
// slot index. The zero Handle is never issued by Make.
type Handle struct {
	generation uint32
	slot       uint32
}

// DisposeFunc releases whatever an object holds (file descriptors, memory,
// locks) once its last reference is gone.
type DisposeFunc func(object interface{})

type slot struct {
	mu          sync.Mutex
	generation  uint32
	refCount    int64 // guarded by Table.mu, not the slot mutex
	object      interface{}
	dispose     DisposeFunc
	inUse       bool
	fingerprint string // debug-only, see Table.Fingerprint
}

// Table is a fixed-capacity registry of reference-counted objects. The zero
// Table is not usable; construct one with New.
type Table struct {
	mu      sync.Mutex
	slots   []*slot
	free    []uint32
	waiters *libsem.Gate
}

// New creates a table that can hold up to capacity live objects at once.
func New(capacity int) *Table {
	fanout := capacity * waiterFanoutFactor
	if fanout < minWaiterFanout {
		fanout = minWaiterFanout
	}

	t := &Table{
		slots:   make([]*slot, capacity),
		free:    make([]uint32, capacity),
		waiters: libsem.NewGate(int64(fanout)),
	}
	for i := range t.slots {
		t.slots[i] = &slot{generation: 1}
		t.free[capacity-1-i] = uint32(i)
	}
	return t
}

// Make registers object under a fresh Handle with ref_count = 1 and returns
// it. dispose is invoked exactly once, outside any slot lock, when the
// reference count later drops to zero. Make fails with NoResources when the
// table has no free slot and with InvalidParam when object is nil.
func (t *Table) Make(object interface{}, dispose DisposeFunc) (Handle, error) {
	if object == nil {
		return Handle{}, liberr.InvalidParam.Error(nil)
	}

	t.mu.Lock()
	if len(t.free) == 0 {
		t.mu.Unlock()
		return Handle{}, liberr.NoResources.Error(nil)
	}
	idx := t.free[len(t.free)-1]
	t.free = t.free[:len(t.free)-1]
	t.mu.Unlock()

	fp, ferr := uuid.GenerateUUID()
	if ferr != nil {
		fp = ""
	}

	s := t.slots[idx]
	s.mu.Lock()
	s.object = object
	s.dispose = dispose
	s.refCount = 1
	s.inUse = true
	s.fingerprint = fp
	gen := s.generation
	s.mu.Unlock()

	return Handle{generation: gen, slot: idx}, nil
}

// Acquire validates h's generation, increments the slot's reference count,
// and blocks on the slot's mutex for up to timeout. On success the caller
// has exclusive access to the object until the matching Release. A zero
// timeout blocks indefinitely.
//
// Acquire fails with Invalid if h is stale (generation mismatch or the slot
// is free), with NoResources if the reference count has hit its ceiling,
// and with ErrTimeout if the mutex was not obtained within timeout.
func (t *Table) Acquire(h Handle, timeout time.Duration) (interface{}, error) {
	if int(h.slot) >= len(t.slots) {
		return nil, liberr.Invalid.Error(nil)
	}
	s := t.slots[h.slot]

	if err := t.reserve(s, h.generation); err != nil {
		return nil, err
	}

	if !t.lockWithTimeout(s, timeout) {
		// lockWithTimeout gave up without this goroutine ever holding
		// s.mu (the background locker may still acquire it later), so
		// only the refcount/disposal half of Release applies here.
		t.releaseRef(h)
		return nil, liberr.ErrTimeout.Error(nil)
	}

	// Re-validate: the object may have been disposed while we were
	// waiting on the mutex (its last other reference released first).
	if !s.inUse || s.generation != h.generation {
		s.mu.Unlock()
		return nil, liberr.Invalid.Error(nil)
	}
	return s.object, nil
}

// reserve bumps refCount provided the handle's generation still matches and
// the slot is occupied (Invalid otherwise) and not already at the
// reference ceiling (NoResources otherwise). It runs under t.mu, the same
// lock Release uses to decide disposal, so a reserve and a disposal can
// never interleave.
func (t *Table) reserve(s *slot, generation uint32) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !s.inUse || s.generation != generation {
		return liberr.Invalid.Error(nil)
	}
	if s.refCount >= maxRefCount {
		return liberr.NoResources.Error(nil)
	}
	s.refCount++
	return nil
}

func (t *Table) lockWithTimeout(s *slot, timeout time.Duration) bool {
	if timeout <= 0 {
		s.mu.Lock()
		return true
	}

	if err := t.waiters.Acquire(context.Background()); err != nil {
		return false
	}

	done := make(chan struct{})
	go func() {
		defer t.waiters.Release()
		s.mu.Lock()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Release unlocks the slot's mutex and decrements its reference count.
// When the mutex is free, as for the create-time reference from Make
// released without an Acquire, Release only drops the reference.
// When the count reaches zero, dispose runs exactly once (outside the
// mutex) and the slot's generation advances, invalidating every Handle
// that still names it.
func (t *Table) Release(h Handle) {
	if int(h.slot) >= len(t.slots) {
		return
	}
	s := t.slots[h.slot]
	_ = s.mu.TryLock()
	s.mu.Unlock()
	t.releaseRef(h)
}

// releaseRef decrements the slot's reference count and disposes of the
// object once it reaches zero, exactly like the second half of Release,
// but without touching s.mu. It is the only safe path for a caller that
// bumped refCount via reserve but never obtained the slot mutex, such as
// Acquire's lockWithTimeout-failure branch.
func (t *Table) releaseRef(h Handle) {
	if int(h.slot) >= len(t.slots) {
		return
	}
	s := t.slots[h.slot]

	t.mu.Lock()
	if s.generation != h.generation || !s.inUse {
		t.mu.Unlock()
		return
	}
	s.refCount--
	if s.refCount > 0 {
		t.mu.Unlock()
		return
	}

	dispose := s.dispose
	object := s.object
	s.inUse = false
	s.object = nil
	s.dispose = nil
	s.generation++
	t.free = append(t.free, h.slot)
	t.mu.Unlock()

	if dispose != nil {
		dispose(object)
	}
}

// Len reports how many handles are currently live.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.slots) - len(t.free)
}

// Capacity reports the table's fixed slot count.
func (t *Table) Capacity() int {
	return len(t.slots)
}

// Fingerprint returns a debug-only identifier minted for h's slot the last
// time it was issued by Make. It exists purely so diagnostic logging can
// tell two unrelated objects that happen to land on the same slot index
// apart across a process's lifetime; it plays no part in Acquire's
// generation check, which remains the sole arbiter of a Handle's validity.
// Fingerprint fails with Invalid under the same conditions Acquire would.
func (t *Table) Fingerprint(h Handle) (string, error) {
	if int(h.slot) >= len(t.slots) {
		return "", liberr.Invalid.Error(nil)
	}
	s := t.slots[h.slot]

	t.mu.Lock()
	defer t.mu.Unlock()
	if !s.inUse || s.generation != h.generation {
		return "", liberr.Invalid.Error(nil)
	}
	return s.fingerprint, nil
}
