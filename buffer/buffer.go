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

// Package buffer is the sole I/O medium PTK passes between protocol layers:
// a growable byte region with independent read and write indices. A Buffer
// is not safe for concurrent use — the handle package is the cross-thread
// mechanism for sharing one.
package buffer

import (
	liberr "github.com/libptk/protocoltk/errors"
)

// Buffer is contiguous byte storage of capacity len(data), with
// 0 <= readIndex <= writeIndex <= len(data). The readIndex..writeIndex span
// is the valid, unread payload.
type Buffer struct {
	data       []byte
	readIndex  int
	writeIndex int
}

// New allocates a buffer with the given capacity and read_index =
// write_index = 0. The capacity may also be given as a human size string
// ("64KB") via NewSize.
func New(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{data: make([]byte, capacity)}
}

// NewSize allocates a buffer whose capacity is parsed from a human size
// string such as "64KB" or "1MB". An unparseable size returns a nil
// buffer and the parse error.
func NewSize(size string) (*Buffer, error) {
	n, err := parseSize(size)
	if err != nil {
		return nil, err
	}
	return New(n), nil
}

// Capacity returns the total storage size.
func (b *Buffer) Capacity() int {
	return len(b.data)
}

// Len returns the number of unread payload bytes (write_index - read_index).
func (b *Buffer) Len() int {
	return b.writeIndex - b.readIndex
}

// Remaining returns the free space left for Write (capacity - write_index).
func (b *Buffer) Remaining() int {
	return len(b.data) - b.writeIndex
}

// Reset sets both indices back to zero without reallocating; prior payload
// bytes become logically void.
func (b *Buffer) Reset() {
	b.readIndex = 0
	b.writeIndex = 0
}

// Write appends n bytes from src, advancing write_index. Fails with
// BUFFER_TOO_SMALL — without mutating the buffer — when write_index + n
// would exceed capacity.
func (b *Buffer) Write(src []byte) error {
	n := len(src)
	if b.writeIndex+n > len(b.data) {
		return liberr.BufferTooSmall.Error(nil)
	}
	copy(b.data[b.writeIndex:], src)
	b.writeIndex += n
	return nil
}

// Read copies n bytes into dst and advances read_index. Fails with
// BUFFER_TOO_SMALL — without mutating the buffer — when n exceeds Len().
func (b *Buffer) Read(dst []byte) (int, error) {
	n := len(dst)
	if n > b.Len() {
		return 0, liberr.BufferTooSmall.Error(nil)
	}
	copy(dst, b.data[b.readIndex:b.readIndex+n])
	b.readIndex += n
	return n, nil
}

// Peek copies n bytes into dst without advancing read_index. Fails with
// BUFFER_TOO_SMALL when n exceeds Len().
func (b *Buffer) Peek(dst []byte) (int, error) {
	n := len(dst)
	if n > b.Len() {
		return 0, liberr.BufferTooSmall.Error(nil)
	}
	copy(dst, b.data[b.readIndex:b.readIndex+n])
	return n, nil
}

// Trim shifts the unread payload [read_index, write_index) down to offset
// 0, resets read_index to 0 and adjusts write_index accordingly.
func (b *Buffer) Trim() {
	if b.readIndex == 0 {
		return
	}
	n := copy(b.data, b.data[b.readIndex:b.writeIndex])
	b.readIndex = 0
	b.writeIndex = n
}

// ReadIndex returns the current read index.
func (b *Buffer) ReadIndex() int {
	return b.readIndex
}

// WriteIndex returns the current write index.
func (b *Buffer) WriteIndex() int {
	return b.writeIndex
}

// Unread returns the valid, unread payload as a slice sharing the buffer's
// backing array. The caller must not retain it across further Writes.
func (b *Buffer) Unread() []byte {
	return b.data[b.readIndex:b.writeIndex]
}

// Grow appends extra zeroed capacity at the end of the buffer, preserving
// indices and payload.
func (b *Buffer) Grow(extra int) {
	if extra <= 0 {
		return
	}
	grown := make([]byte, len(b.data)+extra)
	copy(grown, b.data)
	b.data = grown
}
