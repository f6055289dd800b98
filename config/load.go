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
	"github.com/mitchellh/mapstructure"
	spfvpr "github.com/spf13/viper"

	libprm "github.com/libptk/protocoltk/file/perm"
	libprt "github.com/libptk/protocoltk/network/protocol"
	libsiz "github.com/libptk/protocoltk/size"
)

// decodeHook composes every PTK type's viper decoder hook so a single
// v.Unmarshal call can populate Size, file.Perm, and network.Protocol
// fields from plain strings or numbers found in a config file, env var, or
// flag.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		libsiz.ViperDecoderHook(),
		libprm.ViperDecoderHook(),
		libprt.ViperDecoderHook(),
	)
}

// Load reads v (already pointed at a config file, env prefix, and/or flag
// set by the caller) into a new Config seeded from Default, validates it,
// and returns it.
func Load(v *spfvpr.Viper) (*Config, error) {
	cfg := Default()

	opt := spfvpr.DecodeHook(decodeHook())
	if err := v.Unmarshal(cfg, opt); err != nil {
		return nil, ErrorDecodeError.Error(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
