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

// Command arithmetic-server accepts arithmetic.Request PDUs over TCP, one
// connection per spawned thread, and replies with the evaluated
// arithmetic.Response. It exists to exercise the toolkit end to end:
// config for startup sizing, the thread registry for per-connection
// concurrency, a reactor per connection (never shared across goroutines),
// sockets for the wire I/O, and metrics when enabled.
package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/libptk/protocoltk/buffer"
	"github.com/libptk/protocoltk/config"
	liberr "github.com/libptk/protocoltk/errors"
	"github.com/libptk/protocoltk/example/arithmetic"
	"github.com/libptk/protocoltk/handle"
	liblog "github.com/libptk/protocoltk/logger"
	logcfg "github.com/libptk/protocoltk/logger/config"
	loglvl "github.com/libptk/protocoltk/logger/level"
	libmet "github.com/libptk/protocoltk/metrics"
	"github.com/libptk/protocoltk/reactor"
	"github.com/libptk/protocoltk/socket"
	"github.com/libptk/protocoltk/thread"
)

const connTimeout = 5 * time.Second

func main() {
	listenAddr := flag.String("listen", "127.0.0.1:9091", "host:port to accept arithmetic requests on")
	metricsAddr := flag.String("metrics-listen", "", "if set, host:port to serve /metrics on (requires -metrics)")
	enableMetrics := flag.Bool("metrics", false, "wire a metrics.Collector into the reactor and thread registry")
	flag.Parse()

	log := liblog.New(context.Background())
	log.SetLevel(loglvl.InfoLevel)
	if err := log.SetOptions(&logcfg.Options{Stdout: &logcfg.OptionsStd{EnableTrace: true}}); err != nil {
		panic(err)
	}
	defer func() { _ = log.Close() }()

	cfg := config.Default()
	cfg.Metrics.Enabled = *enableMetrics
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", map[string]interface{}{"error": err.Error()})
		return
	}

	var collector *libmet.Collector
	if cfg.Metrics.Enabled {
		collector = libmet.New(prometheus.DefaultRegisterer)
		if *metricsAddr != "" {
			go serveMetrics(*metricsAddr, log)
		}
	}

	registry := thread.NewRegistry(cfg.Thread.Capacity, cfg.Thread.Concurrency)
	registry.SetMetrics(collector)

	acceptReactor, err := reactor.New()
	if err != nil {
		log.Fatal("creating accept reactor", map[string]interface{}{"error": err.Error()})
		return
	}
	acceptReactor.SetMetrics(collector)
	defer func() { _ = acceptReactor.Close() }()

	host, portStr, err := net.SplitHostPort(*listenAddr)
	if err != nil {
		log.Fatal("parsing -listen", map[string]interface{}{"error": err.Error()})
		return
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		log.Fatal("parsing -listen port", map[string]interface{}{"error": err.Error()})
		return
	}
	addr, err := socket.NewAddress(host, uint16(port))
	if err != nil {
		log.Fatal("resolving -listen address", map[string]interface{}{"error": err.Error()})
		return
	}

	listener, err := socket.Listen(acceptReactor, addr, 128)
	if err != nil {
		log.Fatal("listening", map[string]interface{}{"error": err.Error()})
		return
	}
	defer func() { _ = listener.Close() }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info("shutting down", nil)
		listener.Abort()
	}()

	log.Info("arithmetic-server listening", map[string]interface{}{"addr": listener.LocalAddr().String()})

	for {
		conn, err := listener.Accept(acceptReactor, 0)
		if err != nil {
			if liberr.Has(err, liberr.Abort) {
				break
			}
			log.Warning("accept failed", map[string]interface{}{"error": err.Error()})
			continue
		}

		conn.SetReadBufferSize(cfg.Socket.ReadBufferSize.Int())
		conn.SetWriteChunkSize(cfg.Socket.WriteBufferSize.Int())

		h, err := registry.Create(handle.Handle{}, false)
		if err != nil {
			log.Warning("thread registry full, dropping connection", map[string]interface{}{"error": err.Error()})
			_ = conn.Close()
			continue
		}

		child := conn
		runErr := registry.SetRun(h, func(t *thread.Thread) error {
			return serveConn(t, child, log)
		})
		if runErr != nil {
			_ = conn.Close()
			continue
		}
		if err := registry.Start(h); err != nil {
			_ = conn.Close()
		}
	}

	log.Info("arithmetic-server stopped", nil)
}

// serveConn handles exactly one request/response exchange on conn, using a
// reactor of its own: a Reactor is only ever driven by a single goroutine
// at a time, so each concurrently-served connection needs its own. The
// reactor is bound to t for the duration so that a signal sent to this
// thread (via Registry.Signal) wakes it out of whatever socket call it is
// parked in, instead of only being observable on the next Wait poll.
func serveConn(t *thread.Thread, conn *socket.Socket, log liblog.Logger) error {
	defer func() { _ = conn.Close() }()

	r, err := reactor.New()
	if err != nil {
		log.Error("creating connection reactor", map[string]interface{}{"error": err.Error()})
		return err
	}
	defer func() { _ = r.Close() }()

	t.BindReactor(r)
	defer t.BindReactor(nil)

	reqBuf := buffer.New(arithmetic.RequestSize)
	if err := readFull(r, conn, reqBuf, arithmetic.RequestSize, connTimeout); err != nil {
		log.Warning("reading request", map[string]interface{}{"peer": conn.RemoteAddr().String(), "error": err.Error()})
		return err
	}

	req, err := arithmetic.DecodeRequest(reqBuf.Unread())
	if err != nil {
		log.Warning("decoding request", map[string]interface{}{"error": err.Error()})
		return err
	}

	resp, err := arithmetic.Evaluate(req)
	if err != nil {
		log.Warning("evaluating request", map[string]interface{}{"op": req.Op, "error": err.Error()})
		return err
	}

	respBuf := buffer.New(arithmetic.ResponseSize)
	if err := arithmetic.EncodeResponse(respBuf, resp); err != nil {
		log.Error("encoding response", map[string]interface{}{"error": err.Error()})
		return err
	}

	if _, err := conn.Write(r, respBuf, connTimeout); err != nil {
		log.Warning("writing response", map[string]interface{}{"peer": conn.RemoteAddr().String(), "error": err.Error()})
		return err
	}

	return nil
}

// readFull keeps issuing Read calls until buf holds at least want bytes,
// since a TCP peer is free to deliver a PDU across more than one send.
func readFull(r *reactor.Reactor, conn *socket.Socket, buf *buffer.Buffer, want int, timeout time.Duration) error {
	for buf.Len() < want {
		if _, err := conn.Read(r, buf, timeout); err != nil {
			return err
		}
	}
	return nil
}

func serveMetrics(addr string, log liblog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Info("metrics endpoint listening", map[string]interface{}{"addr": addr})
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error("metrics server exited", map[string]interface{}{"error": err.Error()})
	}
}
