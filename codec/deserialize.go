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

package codec

import (
	"math"

	"github.com/libptk/protocoltk/buffer/cursor"
	liberr "github.com/libptk/protocoltk/errors"
)

// Deserialize parses fields in order out of c. With peek = false the
// returned cursor is advanced past every consumed byte; with peek = true
// the fields are still populated (so a caller can dispatch on an opcode or
// length prefix) but the returned cursor equals c. On any failure the
// returned cursor also equals c — deserialize never partially advances.
func Deserialize(c cursor.Cursor, peek bool, endian Endianness, fields ...Field) (cursor.Cursor, error) {
	work := c

	for _, f := range fields {
		next, err := decodeField(work, f, endian)
		if err != nil {
			return c, err
		}
		work = next
	}

	if peek {
		return c, nil
	}
	return work, nil
}

func decodeField(c cursor.Cursor, f Field, endian Endianness) (cursor.Cursor, error) {
	order := endian.order()

	if f.tag == kindCustom {
		n, err := f.custom.Decode(c.Bytes())
		if err != nil {
			return c, err
		}
		if n < 0 || n > c.Len() {
			return c, liberr.BufferTooSmall.Error(nil)
		}
		return c.Advance(n), nil
	}

	width := f.length
	if f.tag != kindBytes {
		width = widthOf(f.tag)
	}

	b, ok := c.Peek(width)
	if !ok {
		return c, liberr.BufferTooSmall.Error(nil)
	}

	switch f.tag {
	case kindU8:
		*f.ptr.(*uint8) = b[0]
	case kindI8:
		*f.ptr.(*int8) = int8(b[0])
	case kindU16:
		*f.ptr.(*uint16) = order.Uint16(b)
	case kindI16:
		*f.ptr.(*int16) = int16(order.Uint16(b))
	case kindU32:
		*f.ptr.(*uint32) = order.Uint32(b)
	case kindI32:
		*f.ptr.(*int32) = int32(order.Uint32(b))
	case kindF32:
		*f.ptr.(*float32) = math.Float32frombits(order.Uint32(b))
	case kindU64:
		*f.ptr.(*uint64) = order.Uint64(b)
	case kindI64:
		*f.ptr.(*int64) = int64(order.Uint64(b))
	case kindF64:
		*f.ptr.(*float64) = math.Float64frombits(order.Uint64(b))
	case kindBytes:
		out := *f.ptr.(*[]byte)
		if len(out) < f.length {
			out = make([]byte, f.length)
		}
		copy(out, b)
		*f.ptr.(*[]byte) = out
	default:
		return c, liberr.Unsupported.Error(nil)
	}

	return c.Advance(width), nil
}
