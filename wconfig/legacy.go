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

// envPrefix is prepended (upper-cased, with "-" replaced by "_") to every
// bound flag name by viper's AutomaticEnv, giving LEGACYBRIDGE_SIMPLE,
// LEGACYBRIDGE_LOG, etc.
const envPrefix = "LEGACYBRIDGE"

// LegacyConfig carries every flag the legacy endpoint (§6's
// "<program> [flags] <host> <port>") accepts, after flag/env/file layering.
type LegacyConfig struct {
	Host string
	Port int

	Simple bool
	Resume bool

	LogFile  string
	LogLevel string

	// Root, if set, confines every path operation the Dispatcher performs
	// under this directory. Empty means no sandbox.
	Root string
}

// BindLegacyFlags registers the legacy endpoint's flags on cmd and binds
// each one into v, so later reads prefer (in order) an explicit flag, an
// LEGACYBRIDGE_* environment variable, then the flag's own default.
func BindLegacyFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.Flags()

	flags.Bool("simple", false, "downgrade terminal output to plain ASCII (no SGR/UTF-8)")
	flags.Bool("resume", false, "request the peer resume a prior session instead of starting fresh")
	flags.String("log", "", "file to write the wire trace to (default: stderr, falling back to os.TempDir if unwritable)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("root", "", "confine every filesystem operation under this directory")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)
}

// Legacy reads the bound values back out of v into a LegacyConfig. host and
// port come from cmd's positional arguments, not a flag, per §6's CLI
// surface.
func Legacy(v *viper.Viper, host string, port int) LegacyConfig {
	return LegacyConfig{
		Host:     host,
		Port:     port,
		Simple:   v.GetBool("simple"),
		Resume:   v.GetBool("resume"),
		LogFile:  v.GetString("log"),
		LogLevel: v.GetString("log-level"),
		Root:     v.GetString("root"),
	}
}
