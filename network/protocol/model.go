/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package protocol enumerates the transport protocols a socket endpoint can
// bind to. Only NetworkTCP4 and NetworkUDP4 are exercised by the reactor and
// socket packages; the remaining constants are kept for completeness of the
// wire/config representation (struct tags, viper keys) and so the toolkit's
// error messages and config dumps can name a protocol precisely.
package protocol

// NetworkProtocol identifies a transport/address family pairing, matching
// the values accepted by Go's net.Dial/net.Listen family string argument.
type NetworkProtocol uint8

const (
	NetworkEmpty NetworkProtocol = iota
	NetworkUnix
	NetworkTCP
	NetworkTCP4
	NetworkTCP6
	NetworkUDP
	NetworkUDP4
	NetworkUDP6
	NetworkIP
	NetworkIP4
	NetworkIP6
	NetworkUnixGram
)

var protocolName = map[NetworkProtocol]string{
	NetworkUnix:     "unix",
	NetworkTCP:      "tcp",
	NetworkTCP4:     "tcp4",
	NetworkTCP6:     "tcp6",
	NetworkUDP:      "udp",
	NetworkUDP4:     "udp4",
	NetworkUDP6:     "udp6",
	NetworkIP:       "ip",
	NetworkIP4:      "ip4",
	NetworkIP6:      "ip6",
	NetworkUnixGram: "unixgram",
}

var nameProtocol = func() map[string]NetworkProtocol {
	m := make(map[string]NetworkProtocol, len(protocolName))
	for p, n := range protocolName {
		m[n] = p
	}
	return m
}()

// String returns the lowercase wire name of the protocol, or "" if p is not
// one of the defined constants.
func (p NetworkProtocol) String() string {
	return protocolName[p]
}

// Code is an alias of String kept for symmetry with other enum types in the
// toolkit that distinguish a display label from a machine code.
func (p NetworkProtocol) Code() string {
	return p.String()
}

// IsKnown reports whether p is one of the defined protocol constants other
// than NetworkEmpty.
func (p NetworkProtocol) IsKnown() bool {
	_, ok := protocolName[p]
	return ok
}

// Int returns the numeric protocol code, or 0 if p is not a known constant.
func (p NetworkProtocol) Int() int {
	if !p.IsKnown() {
		return 0
	}
	return int(p)
}

// Int64 is Int widened to int64.
func (p NetworkProtocol) Int64() int64 {
	return int64(p.Int())
}

// Uint is Int widened to uint.
func (p NetworkProtocol) Uint() uint {
	return uint(p.Int())
}

// Uint64 is Int widened to uint64.
func (p NetworkProtocol) Uint64() uint64 {
	return uint64(p.Int())
}
