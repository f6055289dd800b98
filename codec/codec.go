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

// Package codec is the type-directed, endianness-aware serializer PTK PDUs
// are built from. A Field carries the tag of exactly one primitive (or a
// Custom delegate); Serialize/Deserialize walk a field sequence over a
// cursor.Cursor, matching the tagged-field-sequence design: Field ∈
// {U8(u8), U16(u16), …, Custom(&dyn Serializable)}.
package codec

import (
	"encoding/binary"
)

// Endianness selects the byte order used by Serialize/Deserialize.
type Endianness uint8

const (
	LITTLE Endianness = iota
	BIG
	HOST
)

func (e Endianness) order() binary.ByteOrder {
	switch e {
	case BIG:
		return binary.BigEndian
	case HOST:
		return binary.NativeEndian
	default:
		return binary.LittleEndian
	}
}

// Serializable is the delegate pair a Custom field uses to encode/decode
// itself, mirroring the Coder shape used elsewhere in the toolkit
// (Encode/Decode over raw bytes) without the streaming methods a codec
// field has no use for.
type Serializable interface {
	// Encode renders the value as bytes.
	Encode() ([]byte, error)
	// Decode parses the value from the front of b and returns how many
	// bytes it consumed.
	Decode(b []byte) (n int, err error)
}

type kind uint8

const (
	kindU8 kind = iota
	kindU16
	kindU32
	kindU64
	kindI8
	kindI16
	kindI32
	kindI64
	kindF32
	kindF64
	kindBytes
	kindCustom
)

// Field is one tagged element of a PDU's field sequence. Construct one via
// the U8/U16/.../Custom constructors — never directly.
type Field struct {
	tag    kind
	ptr    interface{}
	length int
	custom Serializable
}

func U8(v *uint8) Field   { return Field{tag: kindU8, ptr: v} }
func U16(v *uint16) Field { return Field{tag: kindU16, ptr: v} }
func U32(v *uint32) Field { return Field{tag: kindU32, ptr: v} }
func U64(v *uint64) Field { return Field{tag: kindU64, ptr: v} }
func I8(v *int8) Field    { return Field{tag: kindI8, ptr: v} }
func I16(v *int16) Field  { return Field{tag: kindI16, ptr: v} }
func I32(v *int32) Field  { return Field{tag: kindI32, ptr: v} }
func I64(v *int64) Field  { return Field{tag: kindI64, ptr: v} }
func F32(v *float32) Field { return Field{tag: kindF32, ptr: v} }
func F64(v *float64) Field { return Field{tag: kindF64, ptr: v} }

// Raw is a fixed-length run of n raw bytes.
func Raw(v *[]byte, n int) Field {
	return Field{tag: kindBytes, ptr: v, length: n}
}

// Custom delegates encode/decode of a composite or variable-length field to
// a user-supplied Serializable.
func Custom(v Serializable) Field {
	return Field{tag: kindCustom, custom: v}
}

func widthOf(tag kind) int {
	switch tag {
	case kindU8, kindI8:
		return 1
	case kindU16, kindI16:
		return 2
	case kindU32, kindI32, kindF32:
		return 4
	case kindU64, kindI64, kindF64:
		return 8
	default:
		return 0
	}
}
