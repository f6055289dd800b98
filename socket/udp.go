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
	"net"
	"time"

	"github.com/libptk/protocoltk/buffer"
	liberr "github.com/libptk/protocoltk/errors"
	"github.com/libptk/protocoltk/reactor"
)

// NewUDP opens a UDP socket bound to local (port 0 picks an ephemeral
// port).
func NewUDP(r *reactor.Reactor, local Address) (*Socket, error) {
	pc, err := net.ListenPacket("udp4", local.udpAddr().String())
	if err != nil {
		return nil, translateNetError(err)
	}

	bound, err := addressFromNetAddr(pc.LocalAddr())
	if err != nil {
		bound = local
	}

	s := &Socket{
		kind:  KindUDP,
		state: StateConnected,
		local: bound,
		pconn: pc,
	}
	s.bindReactor(r)
	return s, nil
}

// SendTo sends one datagram to dest. When broadcast is true it first
// enables SO_BROADCAST on the underlying socket; the option stays enabled
// after the call.
func (s *Socket) SendTo(payload []byte, dest Address, broadcast bool) error {
	s.mu.Lock()
	pc := s.pconn
	s.mu.Unlock()

	if pc == nil {
		return liberr.InvalidParam.Error(nil)
	}

	if broadcast {
		if udp, ok := pc.(*net.UDPConn); ok {
			if rc, err := udp.SyscallConn(); err == nil {
				_ = rc.Control(func(fd uintptr) {
					_ = setBroadcast(fd, true)
				})
			}
		}
	}

	_, err := pc.WriteTo(payload, dest.udpAddr())
	if err != nil {
		return translateNetError(err)
	}
	return nil
}

// RecvFrom waits for one datagram and writes it into out, recording the
// sender's address. When timeout is 0 it makes a single attempt that waits
// at most one poll slice (reactor.MinResolution) and reads at most one
// datagram, leaving any others queued; it fails with ErrTimeout when none
// arrives. DrainAll reads every queued datagram by repeating such calls.
func (s *Socket) RecvFrom(r *reactor.Reactor, out *buffer.Buffer, timeout time.Duration) (Address, error) {
	s.bindReactor(r)

	s.mu.Lock()
	pc := s.pconn
	s.mu.Unlock()

	if pc == nil {
		return Address{}, liberr.InvalidParam.Error(nil)
	}

	scratch := make([]byte, 64*1024)

	attempt := func() (Address, int, error) {
		_ = pc.SetReadDeadline(time.Now().Add(pollSlice))
		n, addr, rerr := pc.ReadFrom(scratch)
		if rerr != nil {
			if ne, ok := rerr.(net.Error); ok && ne.Timeout() {
				return Address{}, 0, liberr.ErrTimeout.Error(nil)
			}
			return Address{}, 0, translateNetError(rerr)
		}
		a, _ := addressFromNetAddr(addr)
		return a, n, nil
	}

	// timeout == 0 is a single attempt bounded by pollSlice: reading every
	// queued datagram is done by looping this until it gets ErrTimeout, via
	// DrainAll below.
	if timeout == 0 {
		if s.aborted.Load() {
			return Address{}, liberr.Abort.Error(nil)
		}
		addr, n, err := attempt()
		if err != nil {
			return Address{}, err
		}
		if werr := out.Write(scratch[:n]); werr != nil {
			return Address{}, werr
		}
		return addr, nil
	}

	var sender Address
	err := s.deadlineLoop(r, timeout, func() (bool, error) {
		addr, n, rerr := attempt()
		if rerr != nil {
			if ce, ok := rerr.(interface{ IsCode(liberr.CodeError) bool }); ok && ce.IsCode(liberr.ErrTimeout) {
				return false, nil
			}
			return true, rerr
		}
		if werr := out.Write(scratch[:n]); werr != nil {
			return true, werr
		}
		sender = addr
		return true, nil
	})
	return sender, err
}

// DrainAll reads every datagram currently queued on the socket into
// successive buffers supplied by alloc, stopping as soon as a read would
// block. It is the helper a caller uses to implement RecvFrom(timeout=0)
// draining semantics across many datagrams in one call.
func (s *Socket) DrainAll(r *reactor.Reactor, alloc func() *buffer.Buffer) ([]Address, error) {
	var senders []Address
	for {
		buf := alloc()
		addr, err := s.RecvFrom(r, buf, 0)
		if err != nil {
			if ce, ok := err.(interface{ IsCode(liberr.CodeError) bool }); ok && ce.IsCode(liberr.ErrTimeout) {
				return senders, nil
			}
			return senders, err
		}
		senders = append(senders, addr)
	}
}
