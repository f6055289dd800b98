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

package config

import (
	"sync"

	liberr "github.com/libptk/protocoltk/errors"
)

// Component is a named, independently startable/stoppable piece of a
// PTK-based binary (an arithmetic server listener, a metrics exporter, a
// signal dispatcher) that wants its own slice of the top-level Config
// managed for it. This trims the teacher's much larger lifecycle (no
// per-component cobra flags, no reload/dependency graph) down to what a
// handful of collaborator components in a single process actually need:
// a name, a validation pass, and a start/stop pair.
type Component interface {
	// Name identifies the component within its Config.
	Name() string

	// Validate checks the component's own configuration, independent of
	// the fields Config itself owns.
	Validate() liberr.Error

	// Start launches the component. Called once, after Config.Validate
	// has passed.
	Start() liberr.Error

	// Stop shuts the component down. StartAll calls it on the components
	// it already started when a later one fails; StopAll calls it on every
	// registered component, whether or not it was started.
	Stop()
}

// componentList is Config's registry of named components, guarded by its
// own mutex so registration and Start/StopAll can run from different
// goroutines.
type componentList struct {
	mu   sync.Mutex
	byID map[string]Component
}

// RegisterComponent adds c to the config's registry. It fails with
// ErrorComponentDuplicate if a component under the same Name is already
// registered.
func (c *Config) RegisterComponent(comp Component) liberr.Error {
	c.cpt.mu.Lock()
	defer c.cpt.mu.Unlock()

	if c.cpt.byID == nil {
		c.cpt.byID = make(map[string]Component)
	}
	if _, ok := c.cpt.byID[comp.Name()]; ok {
		return ErrorComponentDuplicate.Error(nil)
	}
	c.cpt.byID[comp.Name()] = comp
	return nil
}

// Component retrieves a previously registered component by name.
func (c *Config) Component(name string) (Component, liberr.Error) {
	c.cpt.mu.Lock()
	defer c.cpt.mu.Unlock()

	comp, ok := c.cpt.byID[name]
	if !ok {
		return nil, ErrorComponentNotFound.Error(nil)
	}
	return comp, nil
}

// StartAll validates and starts every registered component, stopping
// whichever already started the moment one fails, and returns that first
// error.
func (c *Config) StartAll() liberr.Error {
	c.cpt.mu.Lock()
	comps := make([]Component, 0, len(c.cpt.byID))
	for _, comp := range c.cpt.byID {
		comps = append(comps, comp)
	}
	c.cpt.mu.Unlock()

	started := make([]Component, 0, len(comps))
	for _, comp := range comps {
		if err := comp.Validate(); err != nil {
			c.stopAll(started)
			return err
		}
		if err := comp.Start(); err != nil {
			c.stopAll(started)
			return err
		}
		started = append(started, comp)
	}
	return nil
}

// StopAll stops every registered component. Components are held in a map,
// so the order in which they are stopped is not defined.
func (c *Config) StopAll() {
	c.cpt.mu.Lock()
	comps := make([]Component, 0, len(c.cpt.byID))
	for _, comp := range c.cpt.byID {
		comps = append(comps, comp)
	}
	c.cpt.mu.Unlock()

	c.stopAll(comps)
}

func (c *Config) stopAll(comps []Component) {
	for i := len(comps) - 1; i >= 0; i-- {
		comps[i].Stop()
	}
}
