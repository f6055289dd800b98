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

// Package cursor is a non-owning {data, length} view over bytes, consumed
// by the codec. It never copies and never outlives the slice it was built
// from.
package cursor

// Cursor is a read-only window over a byte slice. The zero value is an
// empty cursor.
type Cursor struct {
	data []byte
}

// New wraps b in a Cursor without copying it.
func New(b []byte) Cursor {
	return Cursor{data: b}
}

// Len returns the number of bytes remaining in the cursor.
func (c Cursor) Len() int {
	return len(c.data)
}

// Bytes returns the remaining bytes. The caller must not mutate them.
func (c Cursor) Bytes() []byte {
	return c.data
}

// Peek returns the first n bytes without advancing the cursor. ok is false
// if fewer than n bytes remain, in which case the returned slice is nil.
func (c Cursor) Peek(n int) (b []byte, ok bool) {
	if n < 0 || n > len(c.data) {
		return nil, false
	}
	return c.data[:n], true
}

// Advance returns a new Cursor positioned n bytes further into the data. On
// failure (n out of range) it returns an empty Cursor, per the non-owning
// slice contract: errors return {data, 0}.
func (c Cursor) Advance(n int) Cursor {
	if n < 0 || n > len(c.data) {
		return Cursor{data: c.data[:0]}
	}
	return Cursor{data: c.data[n:]}
}
