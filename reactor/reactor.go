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

// Package reactor is the per-thread event multiplexer: it owns the
// thread's timers and its wakeable user-event channel (an
// eventfd-equivalent), and is the single blocking primitive every socket
// operation folds its own wait loop around.
package reactor

import (
	"sync"
	"time"

	"github.com/libptk/protocoltk/reactor/internal/pollset"

	liberr "github.com/libptk/protocoltk/errors"
	libmet "github.com/libptk/protocoltk/metrics"
)

// MinResolution is the shortest period/delay a timer may be registered
// with.
const MinResolution = 50 * time.Millisecond

// Outcome is why Wait returned.
type Outcome uint8

const (
	OutcomeTimeout Outcome = iota
	OutcomeSignal
	OutcomeTimerFired
)

type timer struct {
	id       int
	deadline time.Time
	period   time.Duration // 0 means one-shot
	active   bool
}

// SignalSource is queried by a Reactor to decide whether a blocking Wait
// should be treated as cut short by a cooperative-cancellation signal
// rather than having run to its timeout. thread.Thread implements it so
// that a signal delivered to the thread currently driving a Reactor can
// interrupt whatever blocking call that thread is parked in.
type SignalSource interface {
	AbortRequested() bool
	InterruptRequested() bool
}

// Reactor multiplexes one worker's timers and signal wakeups. A Reactor
// is not safe for use by more than one thread's blocking Wait at a time,
// matching "each worker owns one reactor."
type Reactor struct {
	mu       sync.Mutex
	notifier pollset.Notifier
	timers   map[int]*timer
	nextID   int
	metrics  *libmet.Collector
	signals  SignalSource
}

// SetMetrics wires a metrics.Collector into the reactor so Wait's fired
// timers are counted. Instrumentation is entirely optional: an un-set
// reactor behaves exactly as before.
func (r *Reactor) SetMetrics(c *libmet.Collector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics = c
}

// New creates a Reactor with its user-event channel ready to receive
// wakeups.
func New() (*Reactor, error) {
	n, err := pollset.New()
	if err != nil {
		return nil, err
	}
	return &Reactor{
		notifier: n,
		timers:   make(map[int]*timer),
	}, nil
}

// Close releases the reactor's notifier.
func (r *Reactor) Close() error {
	return r.notifier.Close()
}

// Notify wakes a thread parked in Wait; used to deliver a thread signal
// promptly instead of waiting out the remainder of a timeout.
func (r *Reactor) Notify() {
	r.notifier.Notify()
}

// BindSignalSource associates the owner whose pending signal bits
// SignalState reports — typically the thread.Thread currently driving a
// blocking operation on this Reactor. Pass nil to clear the binding once
// that operation returns.
func (r *Reactor) BindSignalSource(s SignalSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = s
}

// SignalState reports the bound owner's pending abort/interrupt bits.
// Both are false if nothing is bound.
func (r *Reactor) SignalState() (abort, interrupt bool) {
	r.mu.Lock()
	s := r.signals
	r.mu.Unlock()
	if s == nil {
		return false, false
	}
	return s.AbortRequested(), s.InterruptRequested()
}

// StartPeriodic registers a recurring timer and returns its id. Fails
// with InvalidParam if period is below MinResolution.
func (r *Reactor) StartPeriodic(period time.Duration) (int, error) {
	if period < MinResolution {
		return 0, liberr.InvalidParam.Error(nil)
	}
	return r.addTimer(period, period), nil
}

// StartOneShot registers a timer that fires once after delay. Fails with
// InvalidParam if delay is below MinResolution.
func (r *Reactor) StartOneShot(delay time.Duration) (int, error) {
	if delay < MinResolution {
		return 0, liberr.InvalidParam.Error(nil)
	}
	return r.addTimer(delay, 0), nil
}

func (r *Reactor) addTimer(firstDelay, period time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	r.timers[id] = &timer{
		id:       id,
		deadline: time.Now().Add(firstDelay),
		period:   period,
		active:   true,
	}
	return id
}

// CancelTimer deactivates a previously registered timer. Canceling an
// unknown or already-canceled id is a no-op.
func (r *Reactor) CancelTimer(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.timers, id)
}

// nextDeadline returns the soonest active timer's deadline.
func (r *Reactor) nextDeadline() (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var soonest time.Time
	found := false
	for _, t := range r.timers {
		if !t.active {
			continue
		}
		if !found || t.deadline.Before(soonest) {
			soonest = t.deadline
			found = true
		}
	}
	return soonest, found
}

// fireExpired advances every timer whose deadline has passed and returns
// their ids; periodic timers are rescheduled, one-shot timers removed.
func (r *Reactor) fireExpired(now time.Time) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var fired []int
	for id, t := range r.timers {
		if !t.active || t.deadline.After(now) {
			continue
		}
		fired = append(fired, id)
		if t.period > 0 {
			t.deadline = now.Add(t.period)
		} else {
			delete(r.timers, id)
		}
	}
	return fired
}

// Wait blocks until the soonest registered timer fires, the notifier is
// woken (a thread signal arrived), or timeout elapses, whichever comes
// first. A timeout <= 0 means "no caller-imposed timeout" — only timers
// and signals can end the wait.
func (r *Reactor) Wait(timeout time.Duration) (Outcome, []int) {
	deadline, hasTimer := r.nextDeadline()

	var waitFor time.Duration
	haveWait := false
	if hasTimer {
		waitFor = time.Until(deadline)
		haveWait = true
	}
	if timeout > 0 && (!haveWait || timeout < waitFor) {
		waitFor = timeout
		haveWait = true
	}

	if !haveWait {
		<-r.notifier.Chan()
		return OutcomeSignal, nil
	}
	if waitFor < 0 {
		waitFor = 0
	}

	timer := time.NewTimer(waitFor)
	defer timer.Stop()

	select {
	case <-r.notifier.Chan():
		return OutcomeSignal, nil
	case <-timer.C:
		fired := r.fireExpired(time.Now())
		if len(fired) > 0 {
			r.mu.Lock()
			m := r.metrics
			r.mu.Unlock()
			m.IncTimerFires(len(fired))
			return OutcomeTimerFired, fired
		}
		return OutcomeTimeout, nil
	}
}
