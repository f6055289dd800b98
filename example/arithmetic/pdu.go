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

// Package arithmetic is PTK's bundled collaborator protocol: a minimal
// request/response PDU pair built on package codec, exercising the
// toolkit end to end (buffer, codec, crc, and — via cmd/arithmetic-server
// and cmd/arithmetic-client — the reactor and socket layers) the way a
// real integration would.
//
// Request wire format (big-endian): u8 op, f32 operand1, f32 operand2,
// u16 crc16 — the CRC covers the first 9 bytes.
//
// Response wire format (little-endian): u8 ~op (the request's opcode,
// bitwise complemented, so a response can never be mistaken for a
// request on the wire), f64 result, u8 crc8 — the CRC covers the first
// 9 bytes.
package arithmetic

import (
	"github.com/libptk/protocoltk/buffer"
	"github.com/libptk/protocoltk/buffer/cursor"
	"github.com/libptk/protocoltk/codec"
	"github.com/libptk/protocoltk/codec/crc"
	liberr "github.com/libptk/protocoltk/errors"
)

// Op identifies the arithmetic operation a Request carries.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

// RequestSize is the wire length of an encoded Request.
const RequestSize = 1 + 4 + 4 + 2

// ResponseSize is the wire length of an encoded Response.
const ResponseSize = 1 + 8 + 1

// crc16Poly/crc16Init/crc8Poly/crc8Init follow crc.CRC16/crc.CRC8's own
// documented CRC-16/MODBUS and CRC-8 (poly 0x07, not reflected) examples.
const (
	crc16Poly = 0xA001
	crc16Init = 0xFFFF
	crc8Poly  = 0x07
	crc8Init  = 0xFF
)

// Request is the arithmetic server's input PDU.
type Request struct {
	Op       Op
	Operand1 float32
	Operand2 float32
}

// Response is the arithmetic server's output PDU.
type Response struct {
	Op     Op
	Result float64
}

// EncodeRequest renders req onto buf in wire format, appending a CRC-16
// trailer over the preceding 9 bytes.
func EncodeRequest(buf *buffer.Buffer, req Request) error {
	scratch := buffer.New(RequestSize)

	op := uint8(req.Op)
	op1 := req.Operand1
	op2 := req.Operand2
	if err := codec.Serialize(scratch, codec.BIG, codec.U8(&op), codec.F32(&op1), codec.F32(&op2)); err != nil {
		return err
	}

	body := scratch.Unread()
	sum := crc.CRC16(body, crc16Poly, crc16Init, true)
	if err := codec.Serialize(scratch, codec.BIG, codec.U16(&sum)); err != nil {
		return err
	}

	return buf.Write(scratch.Unread())
}

// DecodeRequest parses a Request from the front of data, verifying its
// CRC-16 trailer. data must hold at least RequestSize bytes.
func DecodeRequest(data []byte) (Request, error) {
	if len(data) < RequestSize {
		return Request{}, liberr.BufferTooSmall.Error(nil)
	}

	var (
		op   uint8
		op1  float32
		op2  float32
		want uint16
	)

	c := cursor.New(data[:RequestSize])
	c, err := codec.Deserialize(c, false, codec.BIG, codec.U8(&op), codec.F32(&op1), codec.F32(&op2), codec.U16(&want))
	if err != nil {
		return Request{}, err
	}
	_ = c

	got := crc.CRC16(data[:RequestSize-2], crc16Poly, crc16Init, true)
	if got != want {
		return Request{}, liberr.ChecksumFailed.Error(nil)
	}

	return Request{Op: Op(op), Operand1: op1, Operand2: op2}, nil
}

// EncodeResponse renders resp onto buf in wire format, appending a CRC-8
// trailer over the preceding 9 bytes. The opcode is stored complemented so
// a response PDU is never mistaken for a request PDU on the wire.
func EncodeResponse(buf *buffer.Buffer, resp Response) error {
	scratch := buffer.New(ResponseSize)

	op := ^uint8(resp.Op)
	res := resp.Result
	if err := codec.Serialize(scratch, codec.LITTLE, codec.U8(&op), codec.F64(&res)); err != nil {
		return err
	}

	body := scratch.Unread()
	sum := crc.CRC8(body, crc8Poly, crc8Init, false)
	if err := codec.Serialize(scratch, codec.LITTLE, codec.U8(&sum)); err != nil {
		return err
	}

	return buf.Write(scratch.Unread())
}

// DecodeResponse parses a Response from the front of data, verifying its
// CRC-8 trailer. data must hold at least ResponseSize bytes.
func DecodeResponse(data []byte) (Response, error) {
	if len(data) < ResponseSize {
		return Response{}, liberr.BufferTooSmall.Error(nil)
	}

	var (
		op   uint8
		res  float64
		want uint8
	)

	c := cursor.New(data[:ResponseSize])
	c, err := codec.Deserialize(c, false, codec.LITTLE, codec.U8(&op), codec.F64(&res), codec.U8(&want))
	if err != nil {
		return Response{}, err
	}
	_ = c

	got := crc.CRC8(data[:ResponseSize-1], crc8Poly, crc8Init, false)
	if got != want {
		return Response{}, liberr.ChecksumFailed.Error(nil)
	}

	return Response{Op: Op(^op), Result: res}, nil
}
