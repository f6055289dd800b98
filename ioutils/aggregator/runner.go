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

package aggregator

import (
	"context"
	"fmt"
	"os"
	"time"
)

// IsRunning reports whether the processing goroutine is active.
func (o *agg) IsRunning() bool {
	return o.rn.Load()
}

// Start launches the processing goroutine. It returns once the goroutine has
// signalled it is ready, or immediately with ErrStillRunning if already
// started.
func (o *agg) Start(ctx context.Context) error {
	if o.rn.Load() {
		return ErrStillRunning
	}

	sig := make(chan error, 1)
	go o.run(ctx, sig)

	return <-sig
}

// Stop cancels the aggregator's context and waits for the processing
// goroutine to observe it, bounded by ctx.
func (o *agg) Stop(ctx context.Context) error {
	if !o.rn.Load() {
		return nil
	}

	o.ctxClose()

	if ctx == nil {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-o.stopped():
		return nil
	}
}

// stopped returns a channel closed once the processing goroutine has exited.
func (o *agg) stopped() <-chan struct{} {
	c := make(chan struct{})
	go func() {
		for o.rn.Load() {
			select {
			case <-c:
				return
			default:
			}
		}
		close(c)
	}()
	return c
}

func (o *agg) run(ctx context.Context, sig chan error) {
	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(os.Stderr, "recovering panic in aggregator run loop\n%v\n", r)
		}
	}()

	if o.fw == nil {
		sig <- ErrInvalidInstance
		return
	}

	if o.rn.Swap(true) {
		sig <- ErrStillRunning
		return
	}

	o.ctxNew(ctx)
	o.chanOpen()
	o.cntReset()

	defer func() {
		o.rn.Store(false)
		o.logInfo("stopping aggregator")
		o.cleanup()
	}()

	o.logInfo("starting aggregator")
	sig <- nil

	tckAsc := time.NewTicker(o.at)
	tckSnc := time.NewTicker(o.st)
	defer tckAsc.Stop()
	defer tckSnc.Stop()

	for o.Err() == nil {
		select {
		case <-o.Done():
			return

		case <-tckAsc.C:
			o.runAsync()

		case <-tckSnc.C:
			o.runSync()

		case p, ok := <-o.chanData():
			if !ok {
				continue
			}
			o.cntDataDec(len(p))
			if n, e := o.fw(p); e != nil {
				o.logError(fmt.Sprintf("error writing %d bytes", n), e)
			}
		}
	}
}

func (o *agg) runSync() {
	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(os.Stderr, "recovering panic in aggregator sync callback\n%v\n", r)
		}
	}()
	o.sf(o.x.Load())
}

// runAsync invokes the async callback in its own goroutine. Without a
// semaphore implementation available, concurrency is bounded by a simple
// running flag instead of Config.AsyncMax slot counting.
func (o *agg) runAsync() {
	if !o.ab.CompareAndSwap(false, true) {
		return
	}

	go func() {
		defer o.ab.Store(false)
		defer func() {
			if r := recover(); r != nil {
				_, _ = fmt.Fprintf(os.Stderr, "recovering panic in aggregator async callback\n%v\n", r)
			}
		}()
		o.af(o.x.Load())
	}()
}
