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

//go:build !linux

package pollset

// chanNotifier is the portable Notifier used on platforms without an
// eventfd equivalent wired up: a buffered channel plays the same
// coalescing-wakeup role.
type chanNotifier struct {
	ch chan struct{}
}

// New creates a channel-backed Notifier.
func New() (Notifier, error) {
	return &chanNotifier{ch: make(chan struct{}, 1)}, nil
}

func (c *chanNotifier) Notify() {
	select {
	case c.ch <- struct{}{}:
	default:
	}
}

func (c *chanNotifier) Chan() <-chan struct{} {
	return c.ch
}

func (c *chanNotifier) Close() error {
	return nil
}
