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
	"sync/atomic"
	"time"

	libatm "github.com/libptk/protocoltk/atomic"
)

type agg struct {
	x libatm.Value[context.Context]
	n libatm.Value[context.CancelFunc]

	le libatm.Value[func(msg string, err ...error)]
	li libatm.Value[func(msg string, arg ...any)]

	at time.Duration
	am int
	af func(ctx context.Context)

	st time.Duration
	sf func(ctx context.Context)

	fw func(p []byte) (n int, err error)
	sh int
	ch libatm.Value[chan []byte]
	op *atomic.Bool // channel accepting writes
	rn *atomic.Bool // processing goroutine running
	ab *atomic.Bool // async callback currently in flight

	cd *atomic.Int64
	cw *atomic.Int64
	sd *atomic.Int64
	sw *atomic.Int64
}

func (o *agg) SetLoggerError(f func(msg string, err ...error)) {
	if f == nil {
		f = func(msg string, err ...error) {}
	}
	o.le.Store(f)
}

func (o *agg) SetLoggerInfo(f func(msg string, arg ...any)) {
	if f == nil {
		f = func(msg string, arg ...any) {}
	}
	o.li.Store(f)
}

func (o *agg) logError(msg string, err error) {
	if err != nil {
		o.le.Load()(msg, err)
	}
}

func (o *agg) logInfo(msg string, arg ...any) {
	o.li.Load()(msg, arg...)
}

func (o *agg) NbWaiting() int64 {
	return o.cw.Load()
}

func (o *agg) SizeWaiting() int64 {
	return o.sw.Load()
}

func (o *agg) NbProcessing() int64 {
	return o.cd.Load()
}

func (o *agg) SizeProcessing() int64 {
	return o.sd.Load()
}

func (o *agg) cntDataInc(i int) {
	o.cd.Add(1)
	o.sd.Add(int64(i))
}

func (o *agg) cntDataDec(i int) {
	if o.cd.Add(-1) < 0 {
		o.cd.Store(0)
	}
	if o.sd.Add(int64(-i)) < 0 {
		o.sd.Store(0)
	}
}

func (o *agg) cntWaitInc(i int) {
	o.cw.Add(1)
	o.sw.Add(int64(i))
}

func (o *agg) cntWaitDec(i int) {
	if o.cw.Add(-1) < 0 {
		o.cw.Store(0)
	}
	if o.sw.Add(int64(-i)) < 0 {
		o.sw.Store(0)
	}
}

func (o *agg) cntReset() {
	o.cd.Store(0)
	o.sd.Store(0)
	o.cw.Store(0)
	o.sw.Store(0)
}
