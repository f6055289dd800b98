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

// Package network provides human-readable formatting for traffic counters
// (decimal SI units via Number, binary units via Bytes) and a small labeled
// enum of the interface statistics a reactor or socket can report.
package network

import "net"

const (
	_PowerUnit_  = 0
	_PowerKilo_  = 3
	_PowerMega_  = 6
	_PowerGiga_  = 9
	_PowerTera_  = 12
	_PowerPeta_  = 15
	_PowerExa_   = 18
	_PowerZetta_ = 21
	_PowerYotta_ = 24
)

const (
	_MaxSizeOfPad_  = 4
	_PadIntPattern_ = "%4d"
)

var unitByPower = map[int]string{
	_PowerUnit_:  "",
	_PowerKilo_:  "K",
	_PowerMega_:  "M",
	_PowerGiga_:  "G",
	_PowerTera_:  "T",
	_PowerPeta_:  "P",
	_PowerExa_:   "E",
	_PowerZetta_: "Z",
	_PowerYotta_: "Y",
}

// power2Unit returns the SI prefix for the largest defined power not greater
// than p. Negative values return "", values at or above _PowerYotta_ return
// "Y".
func power2Unit(p int) string {
	if p < 0 {
		return ""
	}

	unit := ""
	for _, step := range powerList() {
		if p >= step {
			unit = unitByPower[step]
			break
		}
	}
	return unit
}

// powerList returns the defined SI powers in descending order, from
// _PowerYotta_ down to _PowerUnit_.
func powerList() []int {
	return []int{
		_PowerYotta_,
		_PowerZetta_,
		_PowerExa_,
		_PowerPeta_,
		_PowerTera_,
		_PowerGiga_,
		_PowerMega_,
		_PowerKilo_,
		_PowerUnit_,
	}
}

// FindFlagInList reports whether flag's wire name appears in list.
func FindFlagInList(list []string, flag net.Flags) bool {
	name := flag.String()
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}

// FindAllFlagInList reports whether every flag in flags has its wire name
// present in list. An empty flags slice is vacuously true.
func FindAllFlagInList(list []string, flags []net.Flags) bool {
	for _, flag := range flags {
		if !FindFlagInList(list, flag) {
			return false
		}
	}
	return true
}
