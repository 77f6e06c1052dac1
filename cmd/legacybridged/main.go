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

// Command legacybridged is the legacy endpoint of §6: it dials out to a
// relay endpoint, completes the handshake as the muxstream.RoleLegacy side,
// and then serves every inbound stream open against the local filesystem and
// process table until the peer says Goodbye.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nabbar/wirebridge/legacyside"
	"github.com/nabbar/wirebridge/legacyside/termio"
	"github.com/nabbar/wirebridge/muxstream"
	"github.com/nabbar/wirebridge/session"
	"github.com/nabbar/wirebridge/wconfig"
	"github.com/nabbar/wirebridge/wire/meta"
)

func main() {
	os.Exit(run())
}

func run() int {
	v := viper.New()
	root := newRootCommand(v)
	if err := root.Execute(); err != nil {
		color.Red("legacybridged: %v", err)
		return 1
	}
	return exitCode
}

// exitCode is set by runLegacy before Execute returns, since cobra's RunE
// only reports success/failure as an error, not an arbitrary process exit
// status.
var exitCode int

func newRootCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "legacybridged <host> <port>",
		Short: "Dial a relay endpoint and serve filesystem/process/terminal operations against the local machine",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			port, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid port %q: %w", args[1], err)
			}
			exitCode = runLegacy(wconfig.Legacy(v, args[0], port))
			return nil
		},
	}
	wconfig.BindLegacyFlags(cmd, v)
	return cmd
}

func runLegacy(cfg wconfig.LegacyConfig) int {
	logger, closer, err := wconfig.OpenLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		color.Red("legacybridged: %v", err)
		return 1
	}
	defer func() { _ = closer.Close() }()

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		logger.WithError(err).Error("dial failed")
		return 1
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}

	var flags meta.Flags
	if cfg.Simple {
		flags |= meta.FlagSimpleMode
	}
	if cfg.Resume {
		flags |= meta.FlagResume
	}

	term := &localTerminal{out: os.Stdout, filter: termio.SelectFilter(cfg.Simple)}

	sess := session.New(conn, session.Config{
		Role:            session.RoleInitiator,
		MuxRole:         muxstream.RoleLegacy,
		Flags:           flags,
		Cwd:             cwd,
		StreamHandler:   &legacyside.Dispatcher{Root: cfg.Root, Log: logger},
		TerminalHandler: term,
		Logger:          logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	saver, err := termio.New(os.Stdin, true)
	if err == nil {
		defer termio.Restore(saver)
	}

	runErrCh := make(chan error, 1)
	go func() { runErrCh <- sess.Run(ctx) }()

	select {
	case <-sess.Ready():
		serveTerminal(ctx, sess)
	case err := <-runErrCh:
		if err != nil {
			logger.WithError(err).Error("session ended before handshake completed")
			return 1
		}
		return 0
	}

	if err := <-runErrCh; err != nil {
		logger.WithError(err).Error("session ended with error")
		return 1
	}
	return 0
}

// serveTerminal wires the local console to the Terminal Channel: stdin
// becomes TerminalInput, SIGWINCH becomes TerminalResize. Raw-mode
// switching/restore is the caller's responsibility (it must outlive the
// whole session, not just this setup call); serveTerminal only starts the
// two feeder goroutines and returns immediately.
func serveTerminal(ctx context.Context, sess *session.Session) {
	go termio.WatchResize(ctx, os.Stdout, func(cols, rows uint16) {
		_ = sess.Terminal.WriteResize(cols, rows)
	})

	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				if werr := sess.Terminal.WriteInput(ctx, buf[:n]); werr != nil {
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
}
