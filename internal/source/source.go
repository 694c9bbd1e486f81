// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package source opens the byte streams the NovAtel reader consumes.
package source

import (
	"context"
	"fmt"
	"io"

	"github.com/relabs-tech/novatel_gps/internal/config"
)

// Open returns the stream selected by cfg.Kind. The caller owns the result.
func Open(ctx context.Context, cfg config.SourceConfig) (io.ReadCloser, error) {
	switch cfg.Kind {
	case config.SourceSerial:
		return OpenSerial(cfg.SerialPort, cfg.BaudRate)
	case config.SourceFile:
		return OpenFile(cfg.Path)
	case config.SourceTCP:
		return DialTCP(ctx, cfg.Addr, cfg.DialTimeout)
	case config.SourceSim:
		return NewSimulator(cfg.SimInterval), nil
	default:
		return nil, fmt.Errorf("source: unknown kind %q", cfg.Kind)
	}
}

// CloseOnDone closes c once ctx is done, unblocking any pending Read.
// The returned func stops the watcher without closing c.
func CloseOnDone(ctx context.Context, c io.Closer) (stop func()) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = c.Close()
		case <-done:
		}
	}()
	return func() { close(done) }
}
