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

	"github.com/libptk/protocoltk/buffer"
	liberr "github.com/libptk/protocoltk/errors"
)

// Serialize encodes fields in order, appending them to buf. If any field
// fails to encode, buf is left completely unchanged (atomicity) — the
// fields are rendered into a scratch slice first and written to buf in one
// call.
func Serialize(buf *buffer.Buffer, endian Endianness, fields ...Field) error {
	scratch := make([]byte, 0, 32)

	for _, f := range fields {
		b, err := encodeField(f, endian)
		if err != nil {
			return err
		}
		scratch = append(scratch, b...)
	}

	return buf.Write(scratch)
}

func encodeField(f Field, endian Endianness) ([]byte, error) {
	order := endian.order()

	switch f.tag {
	case kindU8:
		return []byte{*f.ptr.(*uint8)}, nil
	case kindI8:
		return []byte{byte(*f.ptr.(*int8))}, nil
	case kindU16:
		b := make([]byte, 2)
		order.PutUint16(b, *f.ptr.(*uint16))
		return b, nil
	case kindI16:
		b := make([]byte, 2)
		order.PutUint16(b, uint16(*f.ptr.(*int16)))
		return b, nil
	case kindU32:
		b := make([]byte, 4)
		order.PutUint32(b, *f.ptr.(*uint32))
		return b, nil
	case kindI32:
		b := make([]byte, 4)
		order.PutUint32(b, uint32(*f.ptr.(*int32)))
		return b, nil
	case kindF32:
		b := make([]byte, 4)
		order.PutUint32(b, math.Float32bits(*f.ptr.(*float32)))
		return b, nil
	case kindU64:
		b := make([]byte, 8)
		order.PutUint64(b, *f.ptr.(*uint64))
		return b, nil
	case kindI64:
		b := make([]byte, 8)
		order.PutUint64(b, uint64(*f.ptr.(*int64)))
		return b, nil
	case kindF64:
		b := make([]byte, 8)
		order.PutUint64(b, math.Float64bits(*f.ptr.(*float64)))
		return b, nil
	case kindBytes:
		v := *f.ptr.(*[]byte)
		if len(v) < f.length {
			return nil, liberr.BufferTooSmall.Error(nil)
		}
		out := make([]byte, f.length)
		copy(out, v[:f.length])
		return out, nil
	case kindCustom:
		return f.custom.Encode()
	default:
		return nil, liberr.Unsupported.Error(nil)
	}
}
