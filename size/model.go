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

// Package size provides a byte-size type with arithmetic, formatting and
// parsing of human-readable notations such as "5MB" or "1.5GB".
package size

import "math"

// Size represents a quantity of bytes.
type Size uint64

const (
	SizeNul  Size = 0
	SizeUnit Size = 1

	SizeKilo Size = 1 << (10 * (iota - 1))
	SizeMega
	SizeGiga
	SizeTera
	SizePeta
	SizeExa
)

// defaultUnit is the suffix rune appended after the scale letter (K, M, ...)
// when none is explicitly requested. 'B' by default, meaning "bytes".
var defaultUnit = 'B'

// SetDefaultUnit changes the suffix rune used by Code and Unit when called
// with a zero rune. Passing 0 resets it back to 'B'.
func SetDefaultUnit(r rune) {
	if r == 0 {
		defaultUnit = 'B'
		return
	}
	defaultUnit = r
}

// scale returns the letter prefix ("", "K", "M", ...) and the divisor for
// the largest unit not exceeding s.
func (s Size) scale() (string, Size) {
	switch {
	case s >= SizeExa:
		return "E", SizeExa
	case s >= SizePeta:
		return "P", SizePeta
	case s >= SizeTera:
		return "T", SizeTera
	case s >= SizeGiga:
		return "G", SizeGiga
	case s >= SizeMega:
		return "M", SizeMega
	case s >= SizeKilo:
		return "K", SizeKilo
	default:
		return "", SizeUnit
	}
}

// Unit returns the unit code ("B", "KB", "MB", ...) for s, using r as the
// trailing rune instead of the default unit when r is non-zero.
func (s Size) Unit(r rune) string {
	return s.Code(r)
}

// Code returns the scale prefix of s followed by r, or by the default unit
// if r is zero.
func (s Size) Code(r rune) string {
	if r == 0 {
		r = defaultUnit
	}

	p, _ := s.scale()
	return p + string(r)
}

// absFloat64 returns the non-negative magnitude of v, saturating to
// math.MaxUint64 if v overflows the Size range.
func absFloat64(v float64) uint64 {
	if v < 0 {
		v = -v
	}
	v = math.Floor(v)
	if v >= maxUint64 {
		return maxUint64
	}
	return uint64(v)
}
