/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package pidcontroller implements a small PID (proportional/integral/derivative)
// controller used to generate non-uniform step sequences between two bounds,
// converging faster near the bounds and slower in the middle of the range.
package pidcontroller

import (
	"context"
)

// Controller is a PID step-generator: given a start and end value, it walks
// from start to end, adjusting its step size at every iteration based on
// the proportional, integral and derivative terms of the remaining error.
type Controller struct {
	rateP float64
	rateI float64
	rateD float64
}

// New returns a Controller configured with the given proportional, integral
// and derivative rates.
func New(rateP, rateI, rateD float64) *Controller {
	return &Controller{
		rateP: rateP,
		rateI: rateI,
		rateD: rateD,
	}
}

// maxSteps bounds the number of iterations RangeCtx will ever perform,
// guarding against a rate combination that never converges.
const maxSteps = 4096

// RangeCtx walks from start to end, returning every intermediate value
// visited along the way (including start and end). The context can cancel
// the walk early; whatever has been collected so far is returned.
func (c *Controller) RangeCtx(ctx context.Context, start, end float64) []float64 {
	var out = []float64{start}

	if start == end {
		return out
	}

	var (
		sign     = 1.0
		integral = 0.0
		prevErr  = end - start
		cur      = start
	)

	if end < start {
		sign = -1.0
	}

	for i := 0; i < maxSteps; i++ {
		select {
		case <-ctx.Done():
			return out
		default:
		}

		var (
			err  = end - cur
			derr = err - prevErr
		)

		integral += err

		step := c.rateP*err + c.rateI*integral + c.rateD*derr
		if step*sign <= 0 {
			step = sign
		}

		cur += step
		prevErr = err

		if sign > 0 && cur >= end {
			out = append(out, end)
			return out
		}
		if sign < 0 && cur <= end {
			out = append(out, end)
			return out
		}

		out = append(out, cur)
	}

	out = append(out, end)
	return out
}
