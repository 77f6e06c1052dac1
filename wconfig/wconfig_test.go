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

package wconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nabbar/wirebridge/wconfig"
)

func newLegacyCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{Use: "legacybridged", RunE: func(*cobra.Command, []string) error { return nil }}
	wconfig.BindLegacyFlags(cmd, v)
	return cmd
}

func TestLegacyDefaults(t *testing.T) {
	v := viper.New()
	cmd := newLegacyCmd(v)
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	cfg := wconfig.Legacy(v, "example.org", 4800)
	if cfg.Host != "example.org" || cfg.Port != 4800 {
		t.Fatalf("unexpected host/port: %+v", cfg)
	}
	if cfg.Simple || cfg.Resume {
		t.Fatalf("expected simple/resume to default false, got %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.LogLevel)
	}
}

func TestLegacyFlagsOverrideDefaults(t *testing.T) {
	v := viper.New()
	cmd := newLegacyCmd(v)
	if err := cmd.ParseFlags([]string{"--simple", "--resume", "--log-level=debug", "--root=/srv"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	cfg := wconfig.Legacy(v, "host", 1)
	if !cfg.Simple || !cfg.Resume {
		t.Fatalf("expected simple/resume true, got %+v", cfg)
	}
	if cfg.LogLevel != "debug" || cfg.Root != "/srv" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLegacyEnvOverridesDefault(t *testing.T) {
	t.Setenv("LEGACYBRIDGE_SIMPLE", "true")

	v := viper.New()
	cmd := newLegacyCmd(v)
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	cfg := wconfig.Legacy(v, "host", 1)
	if !cfg.Simple {
		t.Fatalf("expected LEGACYBRIDGE_SIMPLE=true to set Simple, got %+v", cfg)
	}
}

func TestLegacyFlagTakesPrecedenceOverEnv(t *testing.T) {
	t.Setenv("LEGACYBRIDGE_LOG_LEVEL", "warn")

	v := viper.New()
	cmd := newLegacyCmd(v)
	if err := cmd.ParseFlags([]string{"--log-level=debug"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	cfg := wconfig.Legacy(v, "host", 1)
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected explicit flag to win over env, got %q", cfg.LogLevel)
	}
}

func TestRelayDefaults(t *testing.T) {
	v := viper.New()
	cmd := &cobra.Command{Use: "relaybridged", RunE: func(*cobra.Command, []string) error { return nil }}
	wconfig.BindRelayFlags(cmd, v)
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	cfg := wconfig.Relay(v)
	if cfg.Listen != ":4800" {
		t.Fatalf("expected default listen address, got %q", cfg.Listen)
	}
}

func TestOpenLoggerEmptyPathUsesStderr(t *testing.T) {
	logger, closer, err := wconfig.OpenLogger("", "info")
	if err != nil {
		t.Fatalf("OpenLogger: %v", err)
	}
	defer func() { _ = closer.Close() }()
	if logger == nil {
		t.Fatalf("expected a non-nil logger")
	}
}

func TestOpenLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wire.log")
	logger, closer, err := wconfig.OpenLogger(path, "info")
	if err != nil {
		t.Fatalf("OpenLogger: %v", err)
	}
	logger.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected log file to contain the logged line")
	}
}
