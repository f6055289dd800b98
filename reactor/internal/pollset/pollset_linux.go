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

//go:build linux

package pollset

import (
	"sync"

	"golang.org/x/sys/unix"
)

// eventFD backs Notifier with a real Linux eventfd: Notify writes to it,
// and a background goroutine drains it and forwards a wakeup onto ch.
type eventFD struct {
	fd   int
	ch   chan struct{}
	once sync.Once
}

// New creates an eventfd-backed Notifier. The eventfd is left in
// blocking mode: the pump goroutine's Read parks until Notify writes to
// it, so there is no busy polling.
func New() (Notifier, error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC)
	if err != nil {
		return nil, err
	}
	e := &eventFD{
		fd: fd,
		ch: make(chan struct{}, 1),
	}
	go e.pump()
	return e, nil
}

func (e *eventFD) pump() {
	buf := make([]byte, 8)
	for {
		_, err := unix.Read(e.fd, buf)
		if err != nil {
			return
		}
		select {
		case e.ch <- struct{}{}:
		default:
		}
	}
}

func (e *eventFD) Notify() {
	buf := make([]byte, 8)
	buf[7] = 1
	_, _ = unix.Write(e.fd, buf)
}

func (e *eventFD) Chan() <-chan struct{} {
	return e.ch
}

func (e *eventFD) Close() error {
	var err error
	e.once.Do(func() { err = unix.Close(e.fd) })
	return err
}
