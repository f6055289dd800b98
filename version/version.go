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

// Package version carries the toolkit's build metadata: the release
// string, commit, build timestamp and license, surfaced by the bundled
// example binaries' --version output and by a startup log line.
package version

import "fmt"

// Info is an immutable snapshot of build metadata, normally populated at
// link time via -ldflags and handed to the entry point's logging
// collaborator.
type Info struct {
	Package     string
	Description string
	Release     string
	Commit      string
	BuildDate   string
	License     string
}

// String renders a single human-readable line, suitable for a
// --version flag or a startup log entry.
func (i Info) String() string {
	return fmt.Sprintf("%s %s (%s, built %s) [%s]", i.Package, i.Release, i.Commit, i.BuildDate, i.License)
}

// These are overridden at build time via -ldflags
// "-X github.com/libptk/protocoltk/version.release=... -X .../commit=... -X .../buildDate=...".
var (
	release   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// Current returns the running binary's build metadata.
func Current(pkg, description, license string) Info {
	return Info{
		Package:     pkg,
		Description: description,
		Release:     release,
		Commit:      commit,
		BuildDate:   buildDate,
		License:     license,
	}
}
