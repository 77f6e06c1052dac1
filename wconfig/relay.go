/*
 * MIT License
 *
 * Copyright (c) 2026 Nicolas JUHEL
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

package wconfig

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RelayConfig carries every flag the relay endpoint accepts: where to
// listen, and how to log what crosses the wire.
type RelayConfig struct {
	Listen string

	LogFile  string
	LogLevel string

	// Root, if set, confines every path operation the Dispatcher performs
	// under this directory. Empty means no sandbox.
	Root string
}

// BindRelayFlags registers the relay endpoint's flags on cmd and binds each
// one into v under the same LEGACYBRIDGE_* environment prefix the legacy
// side uses.
func BindRelayFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.Flags()

	flags.String("listen", ":4800", "address to accept the legacy endpoint's connection on")
	flags.String("log", "", "file to write the wire trace to (default: stderr)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("root", "", "confine every filesystem operation under this directory")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)
}

// Relay reads the bound values back out of v into a RelayConfig.
func Relay(v *viper.Viper) RelayConfig {
	return RelayConfig{
		Listen:   v.GetString("listen"),
		LogFile:  v.GetString("log"),
		LogLevel: v.GetString("log-level"),
		Root:     v.GetString("root"),
	}
}
