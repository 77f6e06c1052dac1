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

// Command relaybridged is the relay endpoint of §6: it listens for the
// legacy endpoint to dial in, completes the handshake as the
// muxstream.RoleRelay side, and demonstrates two operation kinds (ListDir
// and Exec) against whatever the legacy side exposes, plus a loopback Terminal
// Channel (see terminal.go for why it is PTY-less).
package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nabbar/wirebridge/muxstream"
	"github.com/nabbar/wirebridge/relayside"
	"github.com/nabbar/wirebridge/session"
	"github.com/nabbar/wirebridge/wconfig"
	"github.com/nabbar/wirebridge/wire/meta"
	"github.com/nabbar/wirebridge/wlog"
)

func main() {
	os.Exit(run())
}

var exitCode int

func run() int {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "relaybridged",
		Short: "Accept a legacy endpoint's connection and demonstrate ListDir and Exec against it",
		RunE: func(cmd *cobra.Command, args []string) error {
			exitCode = runRelay(wconfig.Relay(v))
			return nil
		},
	}
	wconfig.BindRelayFlags(cmd, v)

	if err := cmd.Execute(); err != nil {
		color.Red("relaybridged: %v", err)
		return 1
	}
	return exitCode
}

func runRelay(cfg wconfig.RelayConfig) int {
	logger, closer, err := wconfig.OpenLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		color.Red("relaybridged: %v", err)
		return 1
	}
	defer func() { _ = closer.Close() }()

	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		logger.WithError(err).Error("listen failed")
		return 1
	}
	defer func() { _ = ln.Close() }()

	logger.WithField("addr", ln.Addr().String()).Info("waiting for the legacy endpoint")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := acceptOne(ctx, ln)
	if err != nil {
		logger.WithError(err).Error("accept failed")
		return 1
	}

	term := &loopbackTerminal{log: logger}
	sess := session.New(conn, session.Config{
		Role:            session.RoleAcceptor,
		MuxRole:         muxstream.RoleRelay,
		TerminalHandler: term,
		Logger:          logger,
	})
	term.sess = sess

	runErrCh := make(chan error, 1)
	go func() { runErrCh <- sess.Run(ctx) }()

	select {
	case <-sess.Ready():
		logger.WithField("peer_cwd", string(sess.PeerCwd())).Info("handshake complete")
		demonstrate(ctx, relayside.New(sess.Streams), logger)
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

func acceptOne(ctx context.Context, ln net.Listener) (net.Conn, error) {
	type result struct {
		conn net.Conn
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		conn, err := ln.Accept()
		ch <- result{conn, err}
	}()
	select {
	case r := <-ch:
		return r.conn, r.err
	case <-ctx.Done():
		_ = ln.Close()
		return nil, ctx.Err()
	}
}

// demonstrate exercises a couple of the twelve operation kinds against the
// peer's filesystem, logging what it finds. It is not part of the protocol;
// it exists so running relaybridged against a legacybridged peer shows
// something happening instead of a silent wait for Goodbye.
func demonstrate(ctx context.Context, client *relayside.Client, logger wlog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	entries, err := client.ListDir(ctx, ".")
	if err != nil {
		logger.WithError(err).Warn("demonstration ListDir failed")
		return
	}
	logger.WithField("count", len(entries)).Info("listed peer's working directory")

	trailer, err := client.Exec(ctx, "echo legacybridged reachable", 5*time.Second, func(ch meta.ExecChannel, data []byte) {
		logger.WithField("channel", ch).Debug(string(data))
	})
	if err != nil {
		logger.WithError(err).Warn("demonstration Exec failed")
		return
	}
	logger.WithField("outcome", trailer.Outcome).Info("demonstration Exec completed")
}
