/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

package network

import (
	"fmt"
	"sort"
)

// Stats labels one counter of a reactor or socket's interface-style
// statistics block.
type Stats uint8

const (
	StatBytes Stats = iota + 1
	StatPackets
	StatFifo
	StatDrop
	StatErr
)

var statLabel = map[Stats]string{
	StatBytes:   "Traffic",
	StatPackets: "Packets",
	StatFifo:    "Fifo",
	StatDrop:    "Drop",
	StatErr:     "Error",
}

const _StatLabelPad_ = 9

// String returns the display label for s, or "" if s is not a defined
// constant.
func (s Stats) String() string {
	return statLabel[s]
}

func (s Stats) isKnown() bool {
	_, ok := statLabel[s]
	return ok
}

// FormatUnitInt renders n using the unit system appropriate to s: binary
// (Bytes) for StatBytes, decimal (Number) for every other counter. Returns
// "" if s is not a defined constant.
func (s Stats) FormatUnitInt(n Number) string {
	if !s.isKnown() {
		return ""
	}
	if s == StatBytes {
		return n.AsBytes().FormatUnitInt()
	}
	return n.FormatUnitInt()
}

// FormatUnitFloat is FormatUnitInt with the requested decimal precision.
// Returns "" if s is not a defined constant.
func (s Stats) FormatUnitFloat(n Number, precision int) string {
	if !s.isKnown() {
		return ""
	}
	if s == StatBytes {
		return n.AsBytes().FormatUnitFloat(precision)
	}
	return n.FormatUnitFloat(precision)
}

// FormatUnit renders n with s's default precision: two decimal places for
// StatBytes, integer for every other counter.
func (s Stats) FormatUnit(n Number) string {
	if !s.isKnown() {
		return ""
	}
	if s == StatBytes {
		return s.FormatUnitFloat(n, 2)
	}
	return s.FormatUnitInt(n)
}

// FormatLabelUnit renders "<Label>: <value>" using s's default precision.
func (s Stats) FormatLabelUnit(n Number) string {
	return fmt.Sprintf("%s: %s", s.String(), s.FormatUnit(n))
}

// FormatLabelUnitPadded is FormatLabelUnit with the label padded to a fixed
// width so a column of mixed stats lines up.
func (s Stats) FormatLabelUnitPadded(n Number) string {
	label := fmt.Sprintf("%s:", s.String())
	return fmt.Sprintf("%-*s %s", _StatLabelPad_, label, s.FormatUnit(n))
}

// ListStatsSort returns the numeric codes of every defined Stats constant,
// in ascending order.
func ListStatsSort() []int {
	list := make([]int, 0, len(statLabel))
	for stat := range statLabel {
		list = append(list, int(stat))
	}
	sort.Ints(list)
	return list
}
