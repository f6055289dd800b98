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

// Package socket implements the reactor-backed TCP and UDP operations:
// connect, listen/accept, read, write, send_to and recv_from over a socket
// bound to exactly one reactor at a time. Accept, Read, Write and a timed
// RecvFrom are bounded, abortable blocking calls; Connect is bounded by its
// timeout only, and SendTo is a single send.
package socket

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	liberr "github.com/libptk/protocoltk/errors"
	"github.com/libptk/protocoltk/reactor"
)

// Kind identifies what a Socket was created to do.
type Kind uint8

const (
	KindTCPClient Kind = iota
	KindTCPServer
	KindUDP
)

// State is the socket's position in the lifecycle described in the
// package overview: INVALID -> UNBOUND -> {LISTENING, CONNECTING ->
// CONNECTED} -> {CLOSED, ABORTED}.
type State uint8

const (
	StateInvalid State = iota
	StateUnbound
	StateListening
	StateConnecting
	StateConnected
	StateClosed
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateUnbound:
		return "UNBOUND"
	case StateListening:
		return "LISTENING"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateClosed:
		return "CLOSED"
	case StateAborted:
		return "ABORTED"
	default:
		return "INVALID"
	}
}

// pollSlice bounds how long a single underlying syscall attempt blocks
// before the abort/signal/timer loop gets a chance to run again; it
// matches the reactor's own minimum timer resolution.
const pollSlice = reactor.MinResolution

// Socket is a TCP or UDP endpoint bound to at most one reactor at a
// time. The zero value is not usable; construct with Connect, Listen, or
// NewUDP.
type Socket struct {
	mu      sync.Mutex
	kind    Kind
	state   State
	local   Address
	remote  Address
	aborted atomic.Bool

	ownerReactor *reactor.Reactor

	conn     net.Conn
	listener net.Listener
	pconn    net.PacketConn

	readBufSize int
	writeChunk  int
}

// defaultScratchSize is the Read/Write scratch allocation used when no
// explicit size has been set via SetReadBufferSize/SetWriteChunkSize.
const defaultScratchSize = 64 * 1024

// SetReadBufferSize overrides the per-Read scratch allocation. A size <= 0
// restores the default.
func (s *Socket) SetReadBufferSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readBufSize = n
}

// SetWriteChunkSize bounds how many bytes of a Write's source buffer are
// peeked and sent to the kernel per iteration. A size <= 0 restores the
// default (the whole remaining buffer in one chunk).
func (s *Socket) SetWriteChunkSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeChunk = n
}

// State reports the socket's current lifecycle state.
func (s *Socket) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LocalAddr reports the address this socket is bound to, valid once the
// socket has connected, listened, or been constructed for UDP.
func (s *Socket) LocalAddr() Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.local
}

// RemoteAddr reports the peer address, valid once a TCP socket is
// CONNECTED.
func (s *Socket) RemoteAddr() Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remote
}

// Abort marks the socket aborted and wakes whatever reactor currently
// owns it, so that any in-flight blocking operation observes ABORT
// before its next OS call, per the cooperative cancellation model.
func (s *Socket) Abort() {
	s.aborted.Store(true)

	s.mu.Lock()
	owner := s.ownerReactor
	s.mu.Unlock()

	if owner != nil {
		owner.Notify()
	}
}

// bindReactor implements the ownership-transfer rule: the first
// operation from a thread registers the socket with that thread's
// reactor; a later operation from a different reactor migrates it,
// never leaving the socket monitored by two reactors at once.
func (s *Socket) bindReactor(r *reactor.Reactor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownerReactor = r
}

func (s *Socket) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Close tears the socket down and marks it CLOSED.
func (s *Socket) Close() error {
	s.mu.Lock()
	conn, listener, pconn := s.conn, s.listener, s.pconn
	s.state = StateClosed
	s.mu.Unlock()

	var err error
	if conn != nil {
		err = conn.Close()
	}
	if listener != nil {
		if e := listener.Close(); err == nil {
			err = e
		}
	}
	if pconn != nil {
		if e := pconn.Close(); err == nil {
			err = e
		}
	}
	return err
}

// deadlineLoop runs fn repeatedly, waiting pollSlice between attempts on
// the owning reactor (which both paces retries and lets queued timers
// fire), until fn reports done, the socket is aborted, the reactor's
// bound thread has a signal pending, or the overall timeout elapses.
// timeout <= 0 means wait forever (subject to abort/signal).
func (s *Socket) deadlineLoop(r *reactor.Reactor, timeout time.Duration, fn func() (done bool, err error)) error {
	var overall time.Time
	hasOverall := timeout > 0
	if hasOverall {
		overall = time.Now().Add(timeout)
	}

	for {
		if s.aborted.Load() {
			return liberr.Abort.Error(nil)
		}
		if abort, interrupt := r.SignalState(); abort {
			return liberr.Abort.Error(nil)
		} else if interrupt {
			return liberr.Signal.Error(nil)
		}

		done, err := fn()
		if done {
			return err
		}

		if hasOverall && !time.Now().Before(overall) {
			return liberr.ErrTimeout.Error(nil)
		}

		slice := pollSlice
		if hasOverall {
			if remaining := time.Until(overall); remaining < slice {
				slice = remaining
			}
		}
		if slice <= 0 {
			return liberr.ErrTimeout.Error(nil)
		}

		r.Wait(slice)

		if s.aborted.Load() {
			return liberr.Abort.Error(nil)
		}
		if abort, interrupt := r.SignalState(); abort {
			return liberr.Abort.Error(nil)
		} else if interrupt {
			return liberr.Signal.Error(nil)
		}
	}
}

func translateNetError(err error) error {
	if err == nil {
		return nil
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return liberr.ErrTimeout.Error(err)
	}
	switch {
	case isRefused(err):
		return liberr.ConnectionRefused.Error(err)
	case isUnreachable(err):
		return liberr.HostUnreachable.Error(err)
	case isAddrInUse(err):
		return liberr.AddressInUse.Error(err)
	default:
		return liberr.NetworkError.Error(err)
	}
}
