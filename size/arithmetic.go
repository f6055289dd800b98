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

package size

import (
	"errors"
	"math"
)

var ErrOverflow = errors.New("size: arithmetic overflow")

// maxUint64 is the saturation ceiling for Size arithmetic; math.MaxUint64
// does not exist in the standard math package.
const maxUint64 = 1<<64 - 1

// Add increases s by n in place, saturating at math.MaxUint64.
func (s *Size) Add(n Size) {
	_ = s.AddErr(n)
}

// AddErr increases s by n in place, returning ErrOverflow if the result
// saturates at math.MaxUint64.
func (s *Size) AddErr(n Size) error {
	if uint64(*s) > maxUint64-uint64(n) {
		*s = Size(maxUint64)
		return ErrOverflow
	}
	*s += n
	return nil
}

// Sub decreases s by n in place, floored at zero.
func (s *Size) Sub(n Size) {
	_ = s.SubErr(n)
}

// SubErr decreases s by n in place, returning ErrOverflow if n is larger
// than s (the result is floored at zero).
func (s *Size) SubErr(n Size) error {
	if n > *s {
		*s = 0
		return ErrOverflow
	}
	*s -= n
	return nil
}

// Mul scales s by f in place, rounding up and saturating at math.MaxUint64.
func (s *Size) Mul(f float64) {
	_ = s.MulErr(f)
}

// MulErr scales s by f in place, returning ErrOverflow if the result
// saturates at math.MaxUint64 or f is negative (interpreted as zero).
func (s *Size) MulErr(f float64) error {
	if f <= 0 {
		*s = 0
		return nil
	}

	res := math.Ceil(float64(*s) * f)
	if res >= float64(maxUint64) || math.IsInf(res, 1) {
		*s = Size(maxUint64)
		return ErrOverflow
	}

	*s = Size(res)
	return nil
}

// Div scales s down by f in place, saturating at zero for non-positive f.
func (s *Size) Div(f float64) {
	_ = s.DivErr(f)
}

// DivErr scales s down by f in place, returning an error for non-positive f.
func (s *Size) DivErr(f float64) error {
	if f <= 0 {
		*s = 0
		return errors.New("size: division by non-positive value")
	}

	res := math.Floor(float64(*s) / f)
	if res < 0 {
		res = 0
	}

	*s = Size(res)
	return nil
}

func (s Size) Int() int       { return int(s) }
func (s Size) Int32() int32   { return int32(s) }
func (s Size) Int64() int64   { return int64(s) }
func (s Size) Float32() float32 { return float32(s) }
func (s Size) Float64() float64 { return float64(s) }

func (s Size) KiloBytes() uint64 { return uint64(s) / uint64(SizeKilo) }
func (s Size) MegaBytes() uint64 { return uint64(s) / uint64(SizeMega) }
func (s Size) GigaBytes() uint64 { return uint64(s) / uint64(SizeGiga) }
func (s Size) TeraBytes() uint64 { return uint64(s) / uint64(SizeTera) }
func (s Size) PetaBytes() uint64 { return uint64(s) / uint64(SizePeta) }
func (s Size) ExaBytes() uint64  { return uint64(s) / uint64(SizeExa) }

// ParseInt64 returns the Size corresponding to the absolute value of i.
func ParseInt64(i int64) Size {
	if i < 0 {
		i = -i
	}
	return Size(i)
}

// SizeFromInt64 is an alias of ParseInt64.
func SizeFromInt64(i int64) Size {
	return ParseInt64(i)
}

// ParseUint64 returns the Size corresponding to u.
func ParseUint64(u uint64) Size {
	return Size(u)
}

// ParseFloat64 returns the Size corresponding to the absolute, floored
// value of f, saturating at math.MaxUint64.
func ParseFloat64(f float64) Size {
	return Size(absFloat64(f))
}

// SizeFromFloat64 is an alias of ParseFloat64.
func SizeFromFloat64(f float64) Size {
	return ParseFloat64(f)
}
