/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

package network

import (
	"fmt"
	"math"
	"strconv"
)

// Number is a raw counter formatted with decimal (base-1000) SI prefixes,
// suited to packet/error/event counts.
type Number uint64

// String returns the undecorated decimal value.
func (n Number) String() string {
	return strconv.FormatUint(uint64(n), 10)
}

// AsBytes reinterprets the same raw value as a Bytes counter.
func (n Number) AsBytes() Bytes {
	return Bytes(n)
}

// AsUint64 returns the raw value.
func (n Number) AsUint64() uint64 {
	return uint64(n)
}

// AsFloat64 returns the raw value widened to float64.
func (n Number) AsFloat64() float64 {
	return float64(n)
}

// FormatUnitInt renders n scaled to the largest SI unit it reaches, rounded
// to the nearest integer and padded to _MaxSizeOfPad_ digits.
func (n Number) FormatUnitInt() string {
	power, unit := scalePower(n.AsFloat64(), 10, powerList(), power2Unit)

	if unit == "" {
		return fmt.Sprintf(_PadIntPattern_, int64(n))
	}

	scaled := n.AsFloat64() / math.Pow(10, float64(power))
	return fmt.Sprintf(_PadIntPattern_+" %s", int64(math.Round(scaled)), unit)
}

// FormatUnitFloat renders n scaled to the largest SI unit it reaches, with
// the requested number of decimal places. precision <= 0 delegates to
// FormatUnitInt.
func (n Number) FormatUnitFloat(precision int) string {
	if precision <= 0 {
		return n.FormatUnitInt()
	}

	power, unit := scalePower(n.AsFloat64(), 10, powerList(), power2Unit)

	if unit == "" {
		return fmt.Sprintf(_PadIntPattern_, int64(n))
	}

	scaled := n.AsFloat64() / math.Pow(10, float64(power))
	pattern := fmt.Sprintf("%%%d.%df %%s", _MaxSizeOfPad_+1+precision, precision)
	return fmt.Sprintf(pattern, scaled, unit)
}

// scalePower finds the largest power in steps (expected descending) such
// that value >= base^power, returning that power and its unit. A value
// below every non-zero step returns (_PowerUnit_, "").
func scalePower(value float64, base float64, steps []int, unitFn func(int) string) (int, string) {
	for _, p := range steps {
		if p == _PowerUnit_ {
			continue
		}
		if value >= math.Pow(base, float64(p)) {
			return p, unitFn(p)
		}
	}
	return _PowerUnit_, ""
}
