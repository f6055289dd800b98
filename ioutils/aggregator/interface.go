/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

// Package aggregator serializes concurrent writers onto a single output
// function through a buffered channel and one processing goroutine.
package aggregator

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	libatm "github.com/libptk/protocoltk/atomic"
)

var (
	ErrInvalidWriter   = errors.New("invalid writer")
	ErrInvalidInstance = errors.New("invalid instance")
	ErrStillRunning    = errors.New("still running")
	ErrClosedResources = errors.New("closed resources")

	closedChan = make(chan []byte)
)

func init() {
	close(closedChan)
}

// Config describes the periodic callbacks and the sink used by an Aggregator.
type Config struct {
	AsyncTimer time.Duration
	AsyncMax   int
	AsyncFct   func(ctx context.Context)

	SyncTimer time.Duration
	SyncFct   func(ctx context.Context)

	BufWriter int
	FctWriter func(p []byte) (n int, err error)
}

// Aggregator writes are queued on a buffered channel and flushed sequentially
// by a single goroutine so FctWriter is never called concurrently.
type Aggregator interface {
	context.Context

	io.Writer
	io.Closer

	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	IsRunning() bool

	SetLoggerError(func(msg string, err ...error))
	SetLoggerInfo(func(msg string, arg ...any))

	NbWaiting() int64
	NbProcessing() int64
	SizeWaiting() int64
	SizeProcessing() int64
}

// New creates an Aggregator from cfg. The aggregator is stopped and must be
// started with Start before Write accepts any data.
func New(ctx context.Context, cfg Config) (Aggregator, error) {
	if cfg.FctWriter == nil {
		return nil, ErrInvalidWriter
	}

	if ctx == nil {
		ctx = context.Background()
	}

	a := &agg{
		x:  libatm.NewValue[context.Context](),
		n:  libatm.NewValue[context.CancelFunc](),
		le: libatm.NewValue[func(msg string, err ...error)](),
		li: libatm.NewValue[func(msg string, arg ...any)](),
		ch: libatm.NewValue[chan []byte](),
		at: cfg.AsyncTimer,
		am: cfg.AsyncMax,
		af: cfg.AsyncFct,
		st: cfg.SyncTimer,
		sf: cfg.SyncFct,
		fw: cfg.FctWriter,
		sh: cfg.BufWriter,
		op: new(atomic.Bool),
		rn: new(atomic.Bool),
		ab: new(atomic.Bool),
		cd: new(atomic.Int64),
		cw: new(atomic.Int64),
		sd: new(atomic.Int64),
		sw: new(atomic.Int64),
	}

	if a.st <= 0 || a.sf == nil {
		a.st = time.Hour
		a.sf = func(context.Context) {}
	}

	if a.at <= 0 || a.af == nil {
		a.at = time.Hour
		a.af = func(context.Context) {}
	}

	if a.sh <= 0 {
		a.sh = 1
	}

	a.le.Store(func(msg string, err ...error) {})
	a.li.Store(func(msg string, arg ...any) {})
	a.ctxNew(ctx)
	a.ch.Store(closedChan)

	return a, nil
}
