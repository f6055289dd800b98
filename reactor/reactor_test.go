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

package reactor_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/libptk/protocoltk/reactor"
)

var _ = Describe("Reactor", func() {
	var r *reactor.Reactor

	BeforeEach(func() {
		var err error
		r, err = reactor.New()
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(r.Close()).To(Succeed())
	})

	Context("timer registration", func() {
		It("rejects a period below the minimum resolution", func() {
			_, err := r.StartPeriodic(10 * time.Millisecond)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a one-shot delay below the minimum resolution", func() {
			_, err := r.StartOneShot(time.Millisecond)
			Expect(err).To(HaveOccurred())
		})

		It("fires a one-shot timer and then does not fire it again", func() {
			id, err := r.StartOneShot(reactor.MinResolution)
			Expect(err).NotTo(HaveOccurred())

			outcome, fired := r.Wait(2 * time.Second)
			Expect(outcome).To(Equal(reactor.OutcomeTimerFired))
			Expect(fired).To(ContainElement(id))

			outcome, _ = r.Wait(150 * time.Millisecond)
			Expect(outcome).To(Equal(reactor.OutcomeTimeout))
		})

		It("fires a periodic timer more than once", func() {
			_, err := r.StartPeriodic(reactor.MinResolution)
			Expect(err).NotTo(HaveOccurred())

			outcome, _ := r.Wait(2 * time.Second)
			Expect(outcome).To(Equal(reactor.OutcomeTimerFired))

			outcome, _ = r.Wait(2 * time.Second)
			Expect(outcome).To(Equal(reactor.OutcomeTimerFired))
		})

		It("stops firing a canceled timer", func() {
			id, err := r.StartPeriodic(reactor.MinResolution)
			Expect(err).NotTo(HaveOccurred())
			r.CancelTimer(id)

			outcome, _ := r.Wait(150 * time.Millisecond)
			Expect(outcome).To(Equal(reactor.OutcomeTimeout))
		})
	})

	Context("signal wakeup", func() {
		It("wakes a blocked Wait as soon as Notify is called", func() {
			done := make(chan reactor.Outcome, 1)
			go func() {
				outcome, _ := r.Wait(5 * time.Second)
				done <- outcome
			}()

			time.Sleep(50 * time.Millisecond)
			r.Notify()

			Eventually(done, time.Second).Should(Receive(Equal(reactor.OutcomeSignal)))
		})

		It("wakes immediately when a notification already happened before Wait", func() {
			r.Notify()
			outcome, _ := r.Wait(time.Second)
			Expect(outcome).To(Equal(reactor.OutcomeSignal))
		})
	})

	Context("plain timeout", func() {
		It("returns OutcomeTimeout when nothing else happens", func() {
			outcome, fired := r.Wait(100 * time.Millisecond)
			Expect(outcome).To(Equal(reactor.OutcomeTimeout))
			Expect(fired).To(BeEmpty())
		})
	})
})
