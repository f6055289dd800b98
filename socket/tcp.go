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

package socket

import (
	"context"
	"net"
	"time"

	"github.com/libptk/protocoltk/buffer"
	liberr "github.com/libptk/protocoltk/errors"
	"github.com/libptk/protocoltk/reactor"
)

// Connect dials remote over TCP, blocking until the connection completes,
// fails, or timeout elapses (timeout <= 0 sets no limit). The dial does not
// wait on r, so an ABORT or signal is not observed while connecting; r
// becomes the socket's owning reactor. Nagle is disabled on the
// resulting socket, matching the low-latency framing the codec is built
// for.
func Connect(r *reactor.Reactor, remote Address, timeout time.Duration) (*Socket, error) {
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.Dial("tcp4", remote.tcpAddr().String())
	if err != nil {
		return nil, translateNetError(err)
	}

	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
	}

	local, lerr := addressFromNetAddr(conn.LocalAddr())
	if lerr != nil {
		local = Address{}
	}

	s := &Socket{
		kind:   KindTCPClient,
		state:  StateConnected,
		local:  local,
		remote: remote,
		conn:   conn,
	}
	s.bindReactor(r)
	return s, nil
}

// Listen binds and listens for incoming TCP connections on local.
func Listen(r *reactor.Reactor, local Address, backlog int) (*Socket, error) {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(context.Background(), "tcp4", local.tcpAddr().String())
	if err != nil {
		return nil, translateNetError(err)
	}

	bound, err := addressFromNetAddr(ln.Addr())
	if err != nil {
		bound = local
	}

	s := &Socket{
		kind:     KindTCPServer,
		state:    StateListening,
		local:    bound,
		listener: ln,
	}
	s.bindReactor(r)
	return s, nil
}

// Accept blocks until a client connects, the deadline passes, or the
// socket is aborted, yielding the freshly connected socket to the
// caller. r implements the ownership-transfer rule: it becomes (or
// remains) this socket's owning reactor for the duration of the call.
// The child is not pre-bound to any reactor; the first operation on it
// will claim one.
func (s *Socket) Accept(r *reactor.Reactor, timeout time.Duration) (*Socket, error) {
	s.bindReactor(r)

	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()

	if ln == nil {
		return nil, liberr.InvalidParam.Error(nil)
	}

	var child *Socket
	err := s.deadlineLoop(r, timeout, func() (bool, error) {
		if tl, ok := ln.(interface{ SetDeadline(time.Time) error }); ok {
			_ = tl.SetDeadline(time.Now().Add(pollSlice))
		}
		conn, aerr := ln.Accept()
		if aerr != nil {
			if ne, ok := aerr.(net.Error); ok && ne.Timeout() {
				return false, nil
			}
			return true, translateNetError(aerr)
		}

		local, _ := addressFromNetAddr(conn.LocalAddr())
		remote, _ := addressFromNetAddr(conn.RemoteAddr())
		if tc, ok := conn.(*net.TCPConn); ok {
			_ = tc.SetNoDelay(true)
		}
		child = &Socket{
			kind:   KindTCPClient,
			state:  StateConnected,
			local:  local,
			remote: remote,
			conn:   conn,
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return child, nil
}

// Read loops recv+wait until at least one byte arrives, the deadline
// expires, the peer closes (CLOSED), or ABORT is observed. Received
// bytes are appended to dst and its write index advances.
func (s *Socket) Read(r *reactor.Reactor, dst *buffer.Buffer, timeout time.Duration) (int, error) {
	s.bindReactor(r)

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		return 0, liberr.InvalidParam.Error(nil)
	}

	s.mu.Lock()
	scratchSize := s.readBufSize
	s.mu.Unlock()
	if scratchSize <= 0 {
		scratchSize = defaultScratchSize
	}
	scratch := make([]byte, scratchSize)
	total := 0

	err := s.deadlineLoop(r, timeout, func() (bool, error) {
		_ = conn.SetReadDeadline(time.Now().Add(pollSlice))
		n, rerr := conn.Read(scratch)
		if n > 0 {
			if werr := dst.Write(scratch[:n]); werr != nil {
				return true, werr
			}
			total += n
			return true, nil
		}
		if rerr != nil {
			if ne, ok := rerr.(net.Error); ok && ne.Timeout() {
				return false, nil
			}
			s.setState(StateClosed)
			return true, liberr.Closed.Error(rerr)
		}
		// zero bytes, no error: treat as immediate CLOSED.
		s.setState(StateClosed)
		return true, liberr.Closed.Error(nil)
	})
	return total, err
}

// Write loops send+wait-writable until the entire payload has been
// transmitted, failing fast on CLOSED/NETWORK_ERROR/ABORT/TIMEOUT. The
// source buffer's read index advances by the amount sent.
func (s *Socket) Write(r *reactor.Reactor, src *buffer.Buffer, timeout time.Duration) (int, error) {
	s.bindReactor(r)

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		return 0, liberr.InvalidParam.Error(nil)
	}

	s.mu.Lock()
	chunkSize := s.writeChunk
	s.mu.Unlock()

	total := 0
	err := s.deadlineLoop(r, timeout, func() (bool, error) {
		if src.Len() == 0 {
			return true, nil
		}

		want := src.Len()
		if chunkSize > 0 && want > chunkSize {
			want = chunkSize
		}
		chunk := make([]byte, want)
		if _, perr := src.Peek(chunk); perr != nil {
			return true, perr
		}

		_ = conn.SetWriteDeadline(time.Now().Add(pollSlice))
		n, werr := conn.Write(chunk)
		if n > 0 {
			if _, derr := src.Read(chunk[:n]); derr != nil {
				return true, derr
			}
			total += n
		}
		if werr != nil {
			if ne, ok := werr.(net.Error); ok && ne.Timeout() {
				return src.Len() == 0, nil
			}
			s.setState(StateClosed)
			return true, liberr.NetworkError.Error(werr)
		}
		return src.Len() == 0, nil
	})
	return total, err
}
