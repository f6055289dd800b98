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

// Package pollset is the reactor's user-event channel: a Notifier that a
// thread signal wakes and that a reactor's blocking wait selects on,
// alongside the soonest timer deadline. On Linux it
// is backed by a real eventfd; elsewhere, by an equivalent buffered
// channel.
package pollset

// Notifier wakes a parked reactor exactly once per Notify, coalescing
// repeated notifications the way a level-triggered eventfd does.
type Notifier interface {
	// Notify wakes a consumer blocked on Chan. Safe to call from any
	// goroutine, any number of times; wakeups coalesce.
	Notify()
	// Chan returns the channel a reactor selects on. A receive means "you
	// were notified at least once since your last receive."
	Chan() <-chan struct{}
	// Close releases the underlying resource.
	Close() error
}
