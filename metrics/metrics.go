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

// Package metrics exposes the small set of prometheus collectors PTK's
// runtime fills in as it runs: how many threads are alive, how many
// signals have been delivered through the thread registry, and how many
// reactor timers have fired. A Collector is inert until wired into a
// thread.Registry or reactor.Reactor via their SetMetrics setters, so
// instrumentation stays entirely opt-in.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "ptk"
	subsystem = "runtime"
)

// Collector bundles the runtime's prometheus instruments. The zero value is
// not usable; construct one with New.
type Collector struct {
	activeThreads    prometheus.Gauge
	signalsDelivered prometheus.Counter
	timerFires       prometheus.Counter
}

// New builds a Collector. When reg is non-nil, the collector registers its
// instruments into it immediately; pass prometheus.DefaultRegisterer for the
// global registry, or a private prometheus.NewRegistry() in tests that must
// not pollute it. A nil reg leaves the instruments unregistered, which is
// useful for a Collector that is only ever read locally (e.g. in a test
// assertion) rather than scraped.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		activeThreads: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "active_threads",
			Help:      "Number of thread descriptors currently live in the registry.",
		}),
		signalsDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "signals_delivered_total",
			Help:      "Total number of signals delivered to a thread's mailbox.",
		}),
		timerFires: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "timer_fires_total",
			Help:      "Total number of reactor timer callbacks that have fired.",
		}),
	}

	if reg != nil {
		reg.MustRegister(c.activeThreads, c.signalsDelivered, c.timerFires)
	}

	return c
}

// SetActiveThreads records the registry's current live descriptor count.
func (c *Collector) SetActiveThreads(n int) {
	if c == nil {
		return
	}
	c.activeThreads.Set(float64(n))
}

// IncSignalsDelivered records one signal delivery.
func (c *Collector) IncSignalsDelivered() {
	if c == nil {
		return
	}
	c.signalsDelivered.Inc()
}

// IncTimerFires records n reactor timer callbacks firing in one Wait call.
func (c *Collector) IncTimerFires(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.timerFires.Add(float64(n))
}
