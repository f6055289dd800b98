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

// Package semaphore provides a small weighted-gate on top of
// golang.org/x/sync/semaphore.Weighted, used to bound fan-out wherever PTK
// would otherwise let callers spawn an unbounded number of concurrent
// waiters: the thread runtime's RUNNING worker count and the handle table's
// timed-acquire waiters.
package semaphore

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Gate bounds how many callers may hold it concurrently. The zero value is
// not usable; construct one with NewGate.
type Gate struct {
	sem *semaphore.Weighted
}

// NewGate creates a Gate that admits at most n concurrent holders. A
// non-positive n yields an unbounded Gate whose Acquire/TryAcquire always
// succeed immediately, so callers can hold a *Gate field unconditionally
// rather than nil-checking it at every call site.
func NewGate(n int64) *Gate {
	if n <= 0 {
		return &Gate{}
	}
	return &Gate{sem: semaphore.NewWeighted(n)}
}

// Acquire blocks until a slot is free or ctx is done.
func (g *Gate) Acquire(ctx context.Context) error {
	if g.sem == nil {
		return nil
	}
	return g.sem.Acquire(ctx, 1)
}

// TryAcquire claims a slot without blocking, reporting whether it succeeded.
func (g *Gate) TryAcquire() bool {
	if g.sem == nil {
		return true
	}
	return g.sem.TryAcquire(1)
}

// Release frees a slot previously claimed by Acquire or a successful
// TryAcquire.
func (g *Gate) Release() {
	if g.sem == nil {
		return
	}
	g.sem.Release(1)
}
