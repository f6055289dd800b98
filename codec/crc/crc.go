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

// Package crc computes CRC-8 and CRC-16 checksums with a caller-supplied
// polynomial, initial value, and bit reflection — the parameters a wire
// protocol's framing specifies, rather than one fixed variant. The standard
// library's hash/crc32 and hash/crc64 only cover the IEEE/Castagnoli widths
// PTK's PDUs don't use.
package crc

// CRC8 computes an 8-bit CRC over data using poly and init. When reflected
// is true, both input bytes and the running remainder are processed
// LSB-first (the convention a reflected polynomial, e.g. one reversed from
// its normal form, is given in).
func CRC8(data []byte, poly, init byte, reflected bool) byte {
	crc := init

	if reflected {
		for _, b := range data {
			crc ^= b
			for i := 0; i < 8; i++ {
				if crc&1 != 0 {
					crc = (crc >> 1) ^ poly
				} else {
					crc >>= 1
				}
			}
		}
		return crc
	}

	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// CRC16 computes a 16-bit CRC over data using poly and init, in either
// normal (MSB-first) or reflected (LSB-first) form. CRC16(data, 0xA001,
// 0xFFFF, true) is the CRC-16/MODBUS variant.
func CRC16(data []byte, poly, init uint16, reflected bool) uint16 {
	crc := init

	if reflected {
		for _, b := range data {
			crc ^= uint16(b)
			for i := 0; i < 8; i++ {
				if crc&1 != 0 {
					crc = (crc >> 1) ^ poly
				} else {
					crc >>= 1
				}
			}
		}
		return crc
	}

	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
