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

// Package config is PTK's typed configuration record: a single struct an
// embedding binary fills in (directly, or via Load from a spf13/viper
// instance bound to YAML/JSON/env) and hands to the reactor, thread
// registry, and handle table constructors. It also carries a small
// component-registration surface, mirroring the teacher's component-list
// pattern at a scale that fits a five-subsystem toolkit rather than a
// full application server.
package config

import (
	"fmt"
	"time"

	libval "github.com/go-playground/validator/v10"

	liberr "github.com/libptk/protocoltk/errors"
	logcfg "github.com/libptk/protocoltk/logger/config"
	libsiz "github.com/libptk/protocoltk/size"
)

// HandleConfig sizes the process-wide handle table.
type HandleConfig struct {
	// Capacity is the maximum number of live handles the table may hold.
	Capacity int `json:"capacity" yaml:"capacity" toml:"capacity" mapstructure:"capacity" validate:"required,gt=0"`
}

// ThreadConfig sizes the thread registry built on top of the handle table.
type ThreadConfig struct {
	// Capacity is the maximum number of live thread descriptors.
	Capacity int `json:"capacity" yaml:"capacity" toml:"capacity" mapstructure:"capacity" validate:"required,gt=0"`

	// Concurrency bounds how many threads may be RUNNING at once; 0 leaves
	// it unbounded.
	Concurrency int64 `json:"concurrency" yaml:"concurrency" toml:"concurrency" mapstructure:"concurrency" validate:"gte=0"`
}

// ReactorConfig tunes the per-worker event reactor.
type ReactorConfig struct {
	// MinResolution is the shortest period/delay a timer may be registered
	// with; leaving it zero falls back to reactor.MinResolution.
	MinResolution time.Duration `json:"minResolution" yaml:"minResolution" toml:"minResolution" mapstructure:"minResolution" validate:"gte=0"`
}

// MetricsConfig controls whether the runtime's prometheus collector is
// wired into the reactor/thread registry.
type MetricsConfig struct {
	// Enabled turns on the active-threads/signals-delivered/timer-fires
	// collector defined in package metrics.
	Enabled bool `json:"enabled" yaml:"enabled" toml:"enabled" mapstructure:"enabled"`
}

// SocketConfig bounds the buffers a socket listener/dialer allocates.
type SocketConfig struct {
	// ReadBufferSize is the per-connection read buffer allocation.
	ReadBufferSize libsiz.Size `json:"readBufferSize" yaml:"readBufferSize" toml:"readBufferSize" mapstructure:"readBufferSize"`

	// WriteBufferSize is the per-connection write buffer allocation.
	WriteBufferSize libsiz.Size `json:"writeBufferSize" yaml:"writeBufferSize" toml:"writeBufferSize" mapstructure:"writeBufferSize"`
}

// Config is the top-level record a PTK-based binary loads once at startup.
type Config struct {
	Handle  HandleConfig         `json:"handle" yaml:"handle" toml:"handle" mapstructure:"handle" validate:"required"`
	Thread  ThreadConfig         `json:"thread" yaml:"thread" toml:"thread" mapstructure:"thread" validate:"required"`
	Reactor ReactorConfig        `json:"reactor" yaml:"reactor" toml:"reactor" mapstructure:"reactor"`
	Metrics MetricsConfig        `json:"metrics" yaml:"metrics" toml:"metrics" mapstructure:"metrics"`
	Socket  SocketConfig         `json:"socket" yaml:"socket" toml:"socket" mapstructure:"socket"`
	Logger  *logcfg.Options      `json:"logger" yaml:"logger" toml:"logger" mapstructure:"logger"`

	cpt componentList
}

// Default returns a Config with reasonable standalone defaults: a handle
// table and thread registry sized for a small collaborator process, metrics
// disabled, and a 64KiB socket buffer pair.
func Default() *Config {
	return &Config{
		Handle:  HandleConfig{Capacity: 256},
		Thread:  ThreadConfig{Capacity: 256, Concurrency: 0},
		Reactor: ReactorConfig{},
		Metrics: MetricsConfig{Enabled: false},
		Socket: SocketConfig{
			ReadBufferSize:  libsiz.ParseUint64(64 * uint64(libsiz.SizeKilo)),
			WriteBufferSize: libsiz.ParseUint64(64 * uint64(libsiz.SizeKilo)),
		},
		Logger: &logcfg.Options{},
	}
}

// Validate checks every field's struct tag constraint and reports a single
// aggregated error, or nil when the configuration is well-formed.
func (c *Config) Validate() liberr.Error {
	e := ErrorValidatorError.Error(nil)

	if err := libval.New().Struct(c); err != nil {
		if er, ok := err.(*libval.InvalidValidationError); ok {
			e.Add(er)
		} else {
			for _, er := range err.(libval.ValidationErrors) {
				//nolint #goerr113
				e.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", er.Namespace(), er.ActualTag()))
			}
		}
	}

	if !e.HasParent() {
		return nil
	}
	return e
}
