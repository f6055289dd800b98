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

package thread

import (
	"context"
	"time"

	"github.com/libptk/protocoltk/handle"
	liberr "github.com/libptk/protocoltk/errors"
	libmet "github.com/libptk/protocoltk/metrics"
	libsem "github.com/libptk/protocoltk/semaphore"
)

// Registry is the process-wide thread table. Descriptors live in a
// handle.Table so a Thread can be safely named and passed across
// goroutines as a handle.Handle. concurrency bounds how many Threads may
// be RUNNING (as opposed to merely RUNNABLE) at once.
type Registry struct {
	table       *handle.Table
	concurrency *libsem.Gate
	metrics     *libmet.Collector
}

// SetMetrics wires a metrics.Collector into the registry: Create and
// CleanupDeadChildren update its active-thread gauge, and Signal its
// signals-delivered counter. Instrumentation is entirely optional: an un-set registry behaves
// exactly as before.
func (r *Registry) SetMetrics(c *libmet.Collector) {
	r.metrics = c
}

// NewRegistry creates a registry that can hold up to capacity live thread
// descriptors, with at most concurrency of them RUNNING simultaneously. A
// concurrency of 0 leaves the worker count unbounded.
func NewRegistry(capacity int, concurrency int64) *Registry {
	r := &Registry{table: handle.New(capacity)}
	if concurrency > 0 {
		r.concurrency = libsem.NewGate(concurrency)
	}
	return r
}

// Create reserves a NEW descriptor, optionally as a child of parent, and
// returns its handle.
func (r *Registry) Create(parent handle.Handle, hasParent bool) (handle.Handle, error) {
	t := newThread(parent, hasParent)
	h, err := r.table.Make(t, nil)
	if err != nil {
		return handle.Handle{}, err
	}

	t.mu.Lock()
	t.self = h
	t.mu.Unlock()

	if hasParent {
		if pobj, perr := r.table.Acquire(parent, 0); perr == nil {
			pt := pobj.(*Thread)
			pt.mu.Lock()
			pt.children[h] = struct{}{}
			pt.mu.Unlock()
			r.table.Release(parent)
		}
	}

	r.metrics.SetActiveThreads(r.table.Len())
	return h, nil
}

func (r *Registry) withThread(h handle.Handle, fn func(t *Thread) error) error {
	obj, err := r.table.Acquire(h, 0)
	if err != nil {
		return err
	}
	defer r.table.Release(h)
	return fn(obj.(*Thread))
}

// AddArg appends a typed argument to a NEW descriptor's argument list.
func (r *Registry) AddArg(h handle.Handle, a Arg) error {
	return r.withThread(h, func(t *Thread) error {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.state != New {
			return liberr.InvalidParam.Error(nil)
		}
		t.args = append(t.args, a)
		return nil
	})
}

// SetRun binds a NEW descriptor's entry function.
func (r *Registry) SetRun(h handle.Handle, fn RunFunc) error {
	return r.withThread(h, func(t *Thread) error {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.state != New {
			return liberr.InvalidParam.Error(nil)
		}
		if fn == nil {
			return liberr.InvalidParam.Error(nil)
		}
		t.run = fn
		return nil
	})
}

// Start transitions a descriptor NEW → RUNNABLE and launches its worker
// goroutine, which itself transitions RUNNABLE → RUNNING once it has
// acquired a concurrency slot.
func (r *Registry) Start(h handle.Handle) error {
	err := r.withThread(h, func(t *Thread) error {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.state != New || t.run == nil {
			return liberr.InvalidParam.Error(nil)
		}
		t.state = Runnable
		return nil
	})
	if err != nil {
		return err
	}

	go r.runWorker(h)
	return nil
}

func (r *Registry) runWorker(h handle.Handle) {
	if r.concurrency != nil {
		_ = r.concurrency.Acquire(context.Background())
		defer r.concurrency.Release()
	}

	var run RunFunc
	var self *Thread
	err := r.withThread(h, func(t *Thread) error {
		t.mu.Lock()
		t.state = Running
		run = t.run
		t.mu.Unlock()
		self = t
		return nil
	})
	if err != nil || run == nil {
		return
	}

	_ = run(self) // run_fn failures are the caller's responsibility

	var parent handle.Handle
	hasParent := false
	_ = r.withThread(h, func(t *Thread) error {
		t.mu.Lock()
		t.state = Exited
		parent = t.parent
		hasParent = t.hasParent
		close(t.exited)
		t.mu.Unlock()
		return nil
	})

	if hasParent {
		_ = r.Signal(parent, SignalChildDied)
	}
}

// Signal ORs bits into the target's pending mailbox and wakes it if it is
// parked in Wait.
func (r *Registry) Signal(h handle.Handle, bits Signal) error {
	err := r.withThread(h, func(t *Thread) error {
		t.deliver(bits)
		return nil
	})
	if err == nil {
		r.metrics.IncSignalsDelivered()
	}
	return err
}

// State returns the target's current lifecycle state.
func (r *Registry) State(h handle.Handle) (State, error) {
	var st State
	err := r.withThread(h, func(t *Thread) error {
		st = t.State()
		return nil
	})
	return st, err
}

// GetPending returns the target's current signal mailbox.
func (r *Registry) GetPending(h handle.Handle) (Signal, error) {
	var pending Signal
	err := r.withThread(h, func(t *Thread) error {
		pending = t.Pending()
		return nil
	})
	return pending, err
}

// HasSignal reports whether every bit of mask is pending on the target.
func (r *Registry) HasSignal(h handle.Handle, mask Signal) (bool, error) {
	var has bool
	err := r.withThread(h, func(t *Thread) error {
		has = t.HasSignal(mask)
		return nil
	})
	return has, err
}

// ClearSignals clears mask from the target's mailbox.
func (r *Registry) ClearSignals(h handle.Handle, mask Signal) error {
	return r.withThread(h, func(t *Thread) error {
		t.ClearSignals(mask)
		return nil
	})
}

// SignalAllChildren fans bits out to every child currently registered
// under parent.
func (r *Registry) SignalAllChildren(parent handle.Handle, bits Signal) error {
	return r.withThread(parent, func(t *Thread) error {
		t.mu.Lock()
		children := make([]handle.Handle, 0, len(t.children))
		for c := range t.children {
			children = append(children, c)
		}
		t.mu.Unlock()

		for _, c := range children {
			_ = r.Signal(c, bits)
		}
		return nil
	})
}

// CleanupDeadChildren reaps EXITED children of parent — releasing their
// descriptor's create-time reference — and returns the handles it
// reclaimed. Acquiring parent blocks for up to timeout.
func (r *Registry) CleanupDeadChildren(parent handle.Handle, timeout time.Duration) ([]handle.Handle, error) {
	obj, err := r.table.Acquire(parent, timeout)
	if err != nil {
		return nil, err
	}
	pt := obj.(*Thread)

	pt.mu.Lock()
	var dead []handle.Handle
	for c := range pt.children {
		cobj, cerr := r.table.Acquire(c, 0)
		if cerr != nil {
			delete(pt.children, c)
			continue
		}
		ct := cobj.(*Thread)
		ct.mu.Lock()
		exited := ct.state == Exited
		ct.mu.Unlock()
		r.table.Release(c)

		if exited {
			dead = append(dead, c)
			delete(pt.children, c)
		}
	}
	pt.mu.Unlock()
	r.table.Release(parent)

	for _, c := range dead {
		r.table.Release(c)
	}
	r.metrics.SetActiveThreads(r.table.Len())
	return dead, nil
}

// Len reports how many descriptors are currently live.
func (r *Registry) Len() int {
	return r.table.Len()
}
