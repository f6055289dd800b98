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

// Package thread is the cooperative worker runtime: a Registry spawns
// Threads that carry a 64-bit signal mailbox, a parent/child relationship,
// and a run function that observes its own signals to cooperatively exit.
// Shared state crosses Threads only through the handle package's
// reference-counted table, never through a raw pointer.
package thread

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/libptk/protocoltk/handle"
	"github.com/libptk/protocoltk/reactor"
)

// Signal is a bit in a Thread's pending-signal mailbox.
type Signal uint64

const (
	// SignalAbort asks the target's run function to return as soon as it
	// can observe the bit; there is no asynchronous termination.
	SignalAbort Signal = 1 << iota
	// SignalInterrupt asks a blocking operation to return early without
	// necessarily exiting the run function.
	SignalInterrupt
	// SignalChildDied is posted to a parent when one of its children
	// reaches Exited.
	SignalChildDied

	signalUserBase
)

// UserSignal returns the n-th user-defined signal bit (USER_0, USER_1, …).
func UserSignal(n uint) Signal {
	return signalUserBase << n
}

// State is a Thread's position in its NEW → RUNNABLE → RUNNING → EXITED
// lifecycle.
type State uint8

const (
	New State = iota
	Runnable
	Running
	Exited
)

func (s State) String() string {
	switch s {
	case New:
		return "NEW"
	case Runnable:
		return "RUNNABLE"
	case Running:
		return "RUNNING"
	case Exited:
		return "EXITED"
	default:
		return "UNKNOWN"
	}
}

// ArgKind tags the payload carried by a thread argument.
type ArgKind uint8

const (
	ArgScalar ArgKind = iota
	ArgHandle
	ArgBytes
)

// Arg is one typed entry in a Thread's argument list.
type Arg struct {
	Kind   ArgKind
	Scalar int64
	Handle handle.Handle
	Bytes  []byte
}

// WaitResult is the three-way outcome of Thread.Wait.
type WaitResult uint8

const (
	WaitOK WaitResult = iota
	WaitSignal
	WaitTimeout
)

// RunFunc is a Thread's entry point. It receives the Thread so it can read
// its own arguments and poll its signal mailbox.
type RunFunc func(t *Thread) error

// Thread is one worker descriptor. Everything but the signal mailbox is
// guarded by mu; the mailbox is atomic so Signal never has to block on a
// busy thread.
type Thread struct {
	mu        sync.Mutex
	self      handle.Handle
	parent    handle.Handle
	hasParent bool
	args      []Arg
	run       RunFunc
	state     State
	children  map[handle.Handle]struct{}
	exited    chan struct{}

	pending uint64
	wakeMu  sync.Mutex
	wake    chan struct{}

	reactor *reactor.Reactor
}

func newThread(parent handle.Handle, hasParent bool) *Thread {
	return &Thread{
		parent:    parent,
		hasParent: hasParent,
		state:     New,
		children:  make(map[handle.Handle]struct{}),
		exited:    make(chan struct{}),
		wake:      make(chan struct{}),
	}
}

// Handle returns the Thread's own handle.
func (t *Thread) Handle() handle.Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.self
}

// State reports the Thread's current lifecycle state.
func (t *Thread) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Args returns the Thread's argument list in append order.
func (t *Thread) Args() []Arg {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Arg, len(t.args))
	copy(out, t.args)
	return out
}

// BindReactor records the reactor a blocking socket operation is about to
// wait on, so that a later Signal delivered to this Thread wakes it
// immediately instead of waiting out the reactor's poll slice, and so the
// reactor's own SignalState can observe this Thread's pending bits. Pass
// nil once the operation returns to clear the binding.
func (t *Thread) BindReactor(r *reactor.Reactor) {
	t.mu.Lock()
	t.reactor = r
	t.mu.Unlock()

	if r != nil {
		r.BindSignalSource(t)
	}
}

// AbortRequested reports whether SignalAbort is pending. It implements
// reactor.SignalSource.
func (t *Thread) AbortRequested() bool {
	return t.HasSignal(SignalAbort)
}

// InterruptRequested reports whether SignalInterrupt is pending. It
// implements reactor.SignalSource.
func (t *Thread) InterruptRequested() bool {
	return t.HasSignal(SignalInterrupt)
}

// Pending returns the Thread's current signal mailbox.
func (t *Thread) Pending() Signal {
	return Signal(atomic.LoadUint64(&t.pending))
}

// HasSignal reports whether every bit of mask is currently pending.
func (t *Thread) HasSignal(mask Signal) bool {
	return Signal(atomic.LoadUint64(&t.pending))&mask == mask
}

// ClearSignals clears every bit of mask from the pending mailbox.
func (t *Thread) ClearSignals(mask Signal) {
	clearBits(&t.pending, uint64(mask))
}

// deliver ORs bits into the mailbox, wakes a parked Wait if any, and
// wakes the bound reactor if this Thread is currently parked inside a
// blocking socket operation.
func (t *Thread) deliver(bits Signal) {
	orBits(&t.pending, uint64(bits))

	t.wakeMu.Lock()
	close(t.wake)
	t.wake = make(chan struct{})
	t.wakeMu.Unlock()

	t.mu.Lock()
	r := t.reactor
	t.mu.Unlock()
	if r != nil {
		r.Notify()
	}
}

// Wait blocks the calling goroutine — expected to be this Thread's own
// run function — until a signal arrives or d elapses. d <= 0 performs a
// single non-blocking check.
func (t *Thread) Wait(d time.Duration) WaitResult {
	if atomic.LoadUint64(&t.pending) != 0 {
		return WaitSignal
	}
	if d <= 0 {
		return WaitOK
	}

	t.wakeMu.Lock()
	wake := t.wake
	t.wakeMu.Unlock()

	select {
	case <-wake:
		return WaitSignal
	case <-time.After(d):
		return WaitTimeout
	}
}

func orBits(addr *uint64, bits uint64) {
	for {
		old := atomic.LoadUint64(addr)
		if old&bits == bits {
			return
		}
		if atomic.CompareAndSwapUint64(addr, old, old|bits) {
			return
		}
	}
}

func clearBits(addr *uint64, mask uint64) {
	for {
		old := atomic.LoadUint64(addr)
		next := old &^ mask
		if next == old {
			return
		}
		if atomic.CompareAndSwapUint64(addr, old, next) {
			return
		}
	}
}
