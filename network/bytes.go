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

const (
	_BitsKilo_  = 10
	_BitsMega_  = 20
	_BitsGiga_  = 30
	_BitsTera_  = 40
	_BitsPeta_  = 50
	_BitsExa_   = 60
)

var unitByBits = map[int]string{
	_BitsKilo_: "KB",
	_BitsMega_: "MB",
	_BitsGiga_: "GB",
	_BitsTera_: "TB",
	_BitsPeta_: "PB",
	_BitsExa_:  "EB",
}

func bitsList() []int {
	return []int{_BitsExa_, _BitsPeta_, _BitsTera_, _BitsGiga_, _BitsMega_, _BitsKilo_, _PowerUnit_}
}

func bits2Unit(p int) string {
	return unitByBits[p]
}

// Bytes is a raw byte counter formatted with binary (base-1024) units,
// suited to throughput and buffer-size display.
type Bytes uint64

// String returns the undecorated decimal value.
func (b Bytes) String() string {
	return strconv.FormatUint(uint64(b), 10)
}

// AsNumber reinterprets the same raw value as a decimal Number.
func (b Bytes) AsNumber() Number {
	return Number(b)
}

// AsUint64 returns the raw value.
func (b Bytes) AsUint64() uint64 {
	return uint64(b)
}

// AsFloat64 returns the raw value widened to float64.
func (b Bytes) AsFloat64() float64 {
	return float64(b)
}

// FormatUnitInt renders b scaled to the largest binary unit it reaches,
// rounded to the nearest integer and padded to _MaxSizeOfPad_ digits.
func (b Bytes) FormatUnitInt() string {
	power, unit := scalePower(b.AsFloat64(), 2, bitsList(), bits2Unit)

	if unit == "" {
		return fmt.Sprintf(_PadIntPattern_, int64(b))
	}

	scaled := b.AsFloat64() / math.Pow(2, float64(power))
	return fmt.Sprintf(_PadIntPattern_+" %s", int64(math.Round(scaled)), unit)
}

// FormatUnitFloat renders b scaled to the largest binary unit it reaches,
// with the requested number of decimal places. precision <= 0 delegates to
// FormatUnitInt.
func (b Bytes) FormatUnitFloat(precision int) string {
	if precision <= 0 {
		return b.FormatUnitInt()
	}

	power, unit := scalePower(b.AsFloat64(), 2, bitsList(), bits2Unit)

	if unit == "" {
		return fmt.Sprintf(_PadIntPattern_, int64(b))
	}

	scaled := b.AsFloat64() / math.Pow(2, float64(power))
	pattern := fmt.Sprintf("%%%d.%df %%s", _MaxSizeOfPad_+1+precision, precision)
	return fmt.Sprintf(pattern, scaled, unit)
}
