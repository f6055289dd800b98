/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors

// taxonomy implements the flat error enumeration of the toolkit's error
// handling design: argument errors, resource errors, transient I/O, peer/
// network errors, protocol errors, control-flow signals, and capability
// errors. Every CodeError below is a distinct numeric code so that two
// different failure modes never compare equal.
const (
	// Argument errors.
	InvalidParam CodeError = MinAvailable + iota
	NullPtr
	OutOfBounds
	BadFormat

	// Resource errors.
	NoResources
	BufferTooSmall

	// Transient I/O. WouldBlock never escapes the reactor; it is resolved
	// internally into a retry of the blocking loop.
	ErrTimeout
	WouldBlock

	// Peer/network errors.
	Closed
	ConnectionRefused
	HostUnreachable
	AddressInUse
	NetworkError

	// Protocol errors.
	ProtocolError
	ChecksumFailed
	ParseError
	UnsupportedVersion
	SequenceError

	// Control flow.
	Signal
	Abort
	Interrupt

	// Capability errors.
	Unsupported
	ConfigurationError
	AuthenticationFailed
	AuthorizationFailed
	RateLimited

	// Invalid marks a handle that failed its generation check.
	Invalid
)

var taxonomyMessage = map[CodeError]string{
	InvalidParam:         "invalid parameter",
	NullPtr:              "null pointer",
	OutOfBounds:          "index out of bounds",
	BadFormat:            "badly formatted value",
	NoResources:          "no resources available",
	BufferTooSmall:       "buffer too small",
	ErrTimeout:           "operation timed out",
	WouldBlock:           "operation would block",
	Closed:               "peer closed the connection",
	ConnectionRefused:    "connection refused",
	HostUnreachable:      "host unreachable",
	AddressInUse:         "address already in use",
	NetworkError:         "network error",
	ProtocolError:        "protocol error",
	ChecksumFailed:       "checksum verification failed",
	ParseError:           "could not parse composite value",
	UnsupportedVersion:   "unsupported protocol version",
	SequenceError:        "out of sequence",
	Signal:               "interrupted by signal",
	Abort:                "aborted",
	Interrupt:            "interrupted",
	Unsupported:          "unsupported operation",
	ConfigurationError:   "configuration error",
	AuthenticationFailed: "authentication failed",
	AuthorizationFailed:  "authorization failed",
	RateLimited:          "rate limited",
	Invalid:              "invalid or stale handle",
}

func init() {
	RegisterIdFctMessage(MinAvailable, func(code CodeError) string {
		if m, ok := taxonomyMessage[code]; ok {
			return m
		}
		return NullMessage
	})
}
