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
	"encoding/binary"
	"fmt"
	"net"
	"strconv"

	liberr "github.com/libptk/protocoltk/errors"
)

// Family identifies an address family. Only IPv4 literal addressing (plus
// a single forward lookup) is supported; IPv6 is out of scope.
type Family uint8

const FamilyIPv4 Family = 1

// Address is a plain {ipv4, port, family} value: no DNS state, no
// pointers, safe to copy and compare by value.
type Address struct {
	IPv4   uint32 // network byte order
	Port   uint16 // host byte order
	Family Family
}

// NewAddress builds an Address from a dotted-quad (or resolvable
// hostname) and a port. A hostname triggers exactly one forward lookup;
// the first IPv4 result is used.
func NewAddress(host string, port uint16) (Address, error) {
	ip := net.ParseIP(host)
	if ip == nil {
		ips, err := net.LookupIP(host)
		if err != nil {
			return Address{}, liberr.HostUnreachable.Error(err)
		}
		for _, candidate := range ips {
			if v4 := candidate.To4(); v4 != nil {
				ip = v4
				break
			}
		}
		if ip == nil {
			return Address{}, liberr.HostUnreachable.Error(nil)
		}
	}

	v4 := ip.To4()
	if v4 == nil {
		return Address{}, liberr.InvalidParam.Error(nil)
	}

	return Address{
		IPv4:   binary.BigEndian.Uint32(v4),
		Port:   port,
		Family: FamilyIPv4,
	}, nil
}

// IP renders the address's network-order 32-bit field back into a
// net.IP.
func (a Address) IP() net.IP {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, a.IPv4)
	return net.IP(buf)
}

// Equal reports whether every field of two addresses matches.
func (a Address) Equal(other Address) bool {
	return a.IPv4 == other.IPv4 && a.Port == other.Port && a.Family == other.Family
}

// String renders "host:port".
func (a Address) String() string {
	return net.JoinHostPort(a.IP().String(), strconv.Itoa(int(a.Port)))
}

func (a Address) tcpAddr() *net.TCPAddr {
	return &net.TCPAddr{IP: a.IP(), Port: int(a.Port)}
}

func (a Address) udpAddr() *net.UDPAddr {
	return &net.UDPAddr{IP: a.IP(), Port: int(a.Port)}
}

func addressFromNetAddr(addr net.Addr) (Address, error) {
	switch v := addr.(type) {
	case *net.TCPAddr:
		ip4 := v.IP.To4()
		if ip4 == nil {
			return Address{}, liberr.Unsupported.Error(nil)
		}
		return Address{IPv4: binary.BigEndian.Uint32(ip4), Port: uint16(v.Port), Family: FamilyIPv4}, nil
	case *net.UDPAddr:
		ip4 := v.IP.To4()
		if ip4 == nil {
			return Address{}, liberr.Unsupported.Error(nil)
		}
		return Address{IPv4: binary.BigEndian.Uint32(ip4), Port: uint16(v.Port), Family: FamilyIPv4}, nil
	default:
		return Address{}, liberr.Unsupported.Error(fmt.Errorf("unrecognized address type %T", addr))
	}
}
