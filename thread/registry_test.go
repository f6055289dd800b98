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

package thread_test

import (
	"sync/atomic"
	"time"

	"github.com/libptk/protocoltk/handle"
	"github.com/libptk/protocoltk/thread"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registry", func() {
	It("runs a thread from NEW through RUNNABLE to EXITED", func() {
		r := thread.NewRegistry(4, 0)
		h, err := r.Create(handle.Handle{}, false)
		Expect(err).NotTo(HaveOccurred())

		ran := make(chan struct{})
		Expect(r.SetRun(h, func(t *thread.Thread) error {
			close(ran)
			return nil
		})).To(Succeed())

		Expect(r.Start(h)).To(Succeed())
		Eventually(ran, time.Second).Should(BeClosed())

		Eventually(func() (thread.State, error) {
			return r.State(h)
		}, time.Second).Should(Equal(thread.Exited))
	})

	It("carries typed arguments into the run function", func() {
		r := thread.NewRegistry(4, 0)
		h, _ := r.Create(handle.Handle{}, false)
		Expect(r.AddArg(h, thread.Arg{Kind: thread.ArgScalar, Scalar: 42})).To(Succeed())
		Expect(r.AddArg(h, thread.Arg{Kind: thread.ArgBytes, Bytes: []byte("hi")})).To(Succeed())

		var seen []thread.Arg
		done := make(chan struct{})
		Expect(r.SetRun(h, func(t *thread.Thread) error {
			seen = t.Args()
			close(done)
			return nil
		})).To(Succeed())
		Expect(r.Start(h)).To(Succeed())

		Eventually(done, time.Second).Should(BeClosed())
		Expect(seen).To(HaveLen(2))
		Expect(seen[0].Scalar).To(Equal(int64(42)))
		Expect(seen[1].Bytes).To(Equal([]byte("hi")))
	})

	It("delivers ABORT cooperatively and the run function observes it", func() {
		r := thread.NewRegistry(4, 0)
		h, _ := r.Create(handle.Handle{}, false)

		started := make(chan struct{})
		finished := make(chan struct{})
		Expect(r.SetRun(h, func(t *thread.Thread) error {
			close(started)
			for {
				if t.HasSignal(thread.SignalAbort) {
					close(finished)
					return nil
				}
				if t.Wait(50 * time.Millisecond) == thread.WaitTimeout {
					continue
				}
			}
		})).To(Succeed())

		Expect(r.Start(h)).To(Succeed())
		Eventually(started, time.Second).Should(BeClosed())

		Expect(r.Signal(h, thread.SignalAbort)).To(Succeed())
		Eventually(finished, time.Second).Should(BeClosed())
	})

	It("posts CHILD_DIED to the parent when a child exits", func() {
		r := thread.NewRegistry(4, 0)
		parent, _ := r.Create(handle.Handle{}, false)
		child, _ := r.Create(parent, true)

		Expect(r.SetRun(child, func(t *thread.Thread) error { return nil })).To(Succeed())
		Expect(r.Start(child)).To(Succeed())

		Eventually(func() (bool, error) {
			return r.HasSignal(parent, thread.SignalChildDied)
		}, time.Second).Should(BeTrue())
	})

	It("fans a signal out to every child via SignalAllChildren", func() {
		r := thread.NewRegistry(8, 0)
		parent, _ := r.Create(handle.Handle{}, false)

		var children []handle.Handle
		for i := 0; i < 3; i++ {
			c, _ := r.Create(parent, true)
			children = append(children, c)
		}

		Expect(r.SignalAllChildren(parent, thread.UserSignal(0))).To(Succeed())
		for _, c := range children {
			has, err := r.HasSignal(c, thread.UserSignal(0))
			Expect(err).NotTo(HaveOccurred())
			Expect(has).To(BeTrue())
		}
	})

	It("reaps exited children via CleanupDeadChildren", func() {
		r := thread.NewRegistry(8, 0)
		parent, _ := r.Create(handle.Handle{}, false)
		child, _ := r.Create(parent, true)

		done := make(chan struct{})
		Expect(r.SetRun(child, func(t *thread.Thread) error {
			close(done)
			return nil
		})).To(Succeed())
		Expect(r.Start(child)).To(Succeed())
		Eventually(done, time.Second).Should(BeClosed())

		Eventually(func() ([]handle.Handle, error) {
			return r.CleanupDeadChildren(parent, 0)
		}, time.Second).Should(ContainElement(child))
	})

	It("bounds concurrent RUNNING workers when a concurrency limit is set", func() {
		r := thread.NewRegistry(8, 2)

		var running, maxRunning atomic.Int32
		release := make(chan struct{})

		start := func() {
			h, _ := r.Create(handle.Handle{}, false)
			_ = r.SetRun(h, func(t *thread.Thread) error {
				n := running.Add(1)
				for {
					old := maxRunning.Load()
					if n <= old || maxRunning.CompareAndSwap(old, n) {
						break
					}
				}
				<-release
				running.Add(-1)
				return nil
			})
			_ = r.Start(h)
		}

		for i := 0; i < 5; i++ {
			start()
		}
		time.Sleep(100 * time.Millisecond)
		Expect(maxRunning.Load()).To(BeNumerically("<=", 2))
		close(release)
	})
})
