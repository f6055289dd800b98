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

package buffer_test

import (
	"github.com/libptk/protocoltk/buffer"
	liberr "github.com/libptk/protocoltk/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Buffer", func() {
	Describe("allocate", func() {
		It("starts with read_index = write_index = 0", func() {
			b := buffer.New(16)
			Expect(b.Capacity()).To(Equal(16))
			Expect(b.ReadIndex()).To(Equal(0))
			Expect(b.WriteIndex()).To(Equal(0))
			Expect(b.Len()).To(Equal(0))
			Expect(b.Remaining()).To(Equal(16))
		})

		It("accepts a human size string", func() {
			b, err := buffer.NewSize("1KB")
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Capacity()).To(Equal(1024))
		})

		It("rejects a malformed size string", func() {
			_, err := buffer.NewSize("lots")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("write/read", func() {
		It("round-trips bytes written then read", func() {
			b := buffer.New(8)
			Expect(b.Write([]byte("abcd"))).To(Succeed())
			Expect(b.Len()).To(Equal(4))

			out := make([]byte, 4)
			n, err := b.Read(out)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(4))
			Expect(out).To(Equal([]byte("abcd")))
			Expect(b.Len()).To(Equal(0))
		})

		It("fails write with BUFFER_TOO_SMALL without mutating state", func() {
			b := buffer.New(2)
			err := b.Write([]byte("abc"))
			Expect(err).To(HaveOccurred())
			e, ok := err.(liberr.Error)
			Expect(ok).To(BeTrue())
			Expect(e.IsCode(liberr.BufferTooSmall)).To(BeTrue())
			Expect(b.WriteIndex()).To(Equal(0))
		})

		It("fails read with BUFFER_TOO_SMALL without mutating state", func() {
			b := buffer.New(4)
			Expect(b.Write([]byte("ab"))).To(Succeed())

			out := make([]byte, 3)
			_, err := b.Read(out)
			Expect(err).To(HaveOccurred())
			Expect(b.ReadIndex()).To(Equal(0))
		})
	})

	Describe("peek", func() {
		It("reads without advancing read_index", func() {
			b := buffer.New(8)
			Expect(b.Write([]byte("xy"))).To(Succeed())

			out := make([]byte, 2)
			_, err := b.Peek(out)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal([]byte("xy")))
			Expect(b.ReadIndex()).To(Equal(0))
			Expect(b.Len()).To(Equal(2))
		})
	})

	Describe("trim", func() {
		It("shifts unread payload to offset 0", func() {
			b := buffer.New(8)
			Expect(b.Write([]byte("abcdef"))).To(Succeed())

			out := make([]byte, 2)
			_, _ = b.Read(out)

			b.Trim()
			Expect(b.ReadIndex()).To(Equal(0))
			Expect(b.Len()).To(Equal(4))
			Expect(b.Unread()).To(Equal([]byte("cdef")))
		})
	})

	Describe("reset", func() {
		It("zeroes both indices", func() {
			b := buffer.New(8)
			Expect(b.Write([]byte("abcd"))).To(Succeed())
			b.Reset()
			Expect(b.ReadIndex()).To(Equal(0))
			Expect(b.WriteIndex()).To(Equal(0))
		})
	})

	Describe("invariant: read_index <= write_index <= capacity", func() {
		It("holds after an arbitrary sequence of operations", func() {
			b := buffer.New(32)
			_ = b.Write([]byte("0123456789"))
			out := make([]byte, 3)
			_, _ = b.Read(out)
			_, _ = b.Peek(out)
			b.Trim()
			_ = b.Write([]byte("abc"))

			Expect(b.ReadIndex()).To(BeNumerically(">=", 0))
			Expect(b.ReadIndex()).To(BeNumerically("<=", b.WriteIndex()))
			Expect(b.WriteIndex()).To(BeNumerically("<=", b.Capacity()))
		})
	})
})
