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

package protocol

import (
	"math"
	"strings"
)

func trimDecoration(s string) string {
	s = strings.TrimSpace(s)
	for _, pair := range [][2]byte{{'"', '"'}, {'\'', '\''}, {'`', '`'}} {
		if len(s) >= 2 && s[0] == pair[0] && s[len(s)-1] == pair[1] {
			s = s[1 : len(s)-1]
			break
		}
	}
	return strings.TrimSpace(s)
}

// Parse resolves a wire/config protocol name into a NetworkProtocol, case
// insensitively and tolerant of surrounding whitespace or quoting. Unknown
// input returns NetworkEmpty.
func Parse(s string) NetworkProtocol {
	s = strings.ToLower(trimDecoration(s))
	if p, ok := nameProtocol[s]; ok {
		return p
	}
	return NetworkEmpty
}

// ParseBytes is Parse over a byte slice.
func ParseBytes(b []byte) NetworkProtocol {
	return Parse(string(b))
}

// ParseInt64 resolves a raw protocol code into a NetworkProtocol. Values
// outside the uint8 range, or not matching a defined constant, return
// NetworkEmpty.
func ParseInt64(v int64) NetworkProtocol {
	if v < 0 || v > math.MaxUint8 {
		return NetworkEmpty
	}
	p := NetworkProtocol(v)
	if !p.IsKnown() {
		return NetworkEmpty
	}
	return p
}
