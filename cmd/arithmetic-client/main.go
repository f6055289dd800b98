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

// Command arithmetic-client dials arithmetic-server, sends a single
// arithmetic.Request built from its flags, and prints the decoded
// arithmetic.Response.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/libptk/protocoltk/buffer"
	"github.com/libptk/protocoltk/config"
	"github.com/libptk/protocoltk/example/arithmetic"
	liblog "github.com/libptk/protocoltk/logger"
	logcfg "github.com/libptk/protocoltk/logger/config"
	loglvl "github.com/libptk/protocoltk/logger/level"
	"github.com/libptk/protocoltk/reactor"
	"github.com/libptk/protocoltk/socket"
)

const dialTimeout = 5 * time.Second
const ioTimeout = 5 * time.Second

var opNames = map[string]arithmetic.Op{
	"add": arithmetic.OpAdd,
	"sub": arithmetic.OpSub,
	"mul": arithmetic.OpMul,
	"div": arithmetic.OpDiv,
}

func main() {
	serverAddr := flag.String("server", "127.0.0.1:9091", "arithmetic-server host:port")
	op := flag.String("op", "add", "operation: add, sub, mul, div")
	op1 := flag.Float64("a", 0, "first operand")
	op2 := flag.Float64("b", 0, "second operand")
	flag.Parse()

	log := liblog.New(context.Background())
	log.SetLevel(loglvl.InfoLevel)
	if err := log.SetOptions(&logcfg.Options{Stdout: &logcfg.OptionsStd{EnableTrace: true}}); err != nil {
		panic(err)
	}
	defer func() { _ = log.Close() }()

	kind, ok := opNames[*op]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown -op %q: expected one of add, sub, mul, div\n", *op)
		os.Exit(1)
	}

	host, portStr, err := net.SplitHostPort(*serverAddr)
	if err != nil {
		log.Fatal("parsing -server", map[string]interface{}{"error": err.Error()})
		return
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		log.Fatal("parsing -server port", map[string]interface{}{"error": err.Error()})
		return
	}
	addr, err := socket.NewAddress(host, uint16(port))
	if err != nil {
		log.Fatal("resolving -server address", map[string]interface{}{"error": err.Error()})
		return
	}

	r, err := reactor.New()
	if err != nil {
		log.Fatal("creating reactor", map[string]interface{}{"error": err.Error()})
		return
	}
	defer func() { _ = r.Close() }()

	conn, err := socket.Connect(r, addr, dialTimeout)
	if err != nil {
		log.Fatal("connecting", map[string]interface{}{"error": err.Error()})
		return
	}
	defer func() { _ = conn.Close() }()

	cfg := config.Default()
	conn.SetReadBufferSize(cfg.Socket.ReadBufferSize.Int())
	conn.SetWriteChunkSize(cfg.Socket.WriteBufferSize.Int())

	req := arithmetic.Request{Op: kind, Operand1: float32(*op1), Operand2: float32(*op2)}

	reqBuf := buffer.New(arithmetic.RequestSize)
	if err := arithmetic.EncodeRequest(reqBuf, req); err != nil {
		log.Fatal("encoding request", map[string]interface{}{"error": err.Error()})
		return
	}
	if _, err := conn.Write(r, reqBuf, ioTimeout); err != nil {
		log.Fatal("writing request", map[string]interface{}{"error": err.Error()})
		return
	}

	respBuf := buffer.New(arithmetic.ResponseSize)
	if err := readFull(r, conn, respBuf, arithmetic.ResponseSize, ioTimeout); err != nil {
		log.Fatal("reading response", map[string]interface{}{"error": err.Error()})
		return
	}
	resp, err := arithmetic.DecodeResponse(respBuf.Unread())
	if err != nil {
		log.Fatal("decoding response", map[string]interface{}{"error": err.Error()})
		return
	}

	fmt.Printf("%s(%g, %g) = %g\n", *op, *op1, *op2, resp.Result)
}

// readFull keeps issuing Read calls until buf holds at least want bytes,
// since a TCP peer is free to deliver a PDU across more than one recv.
func readFull(r *reactor.Reactor, conn *socket.Socket, buf *buffer.Buffer, want int, timeout time.Duration) error {
	for buf.Len() < want {
		if _, err := conn.Read(r, buf, timeout); err != nil {
			return err
		}
	}
	return nil
}
