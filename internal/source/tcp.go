// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package source

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"
)

// DialTCP connects to a receiver ICOM port or a serial-to-TCP bridge.
func DialTCP(ctx context.Context, addr string, timeout time.Duration) (io.ReadCloser, error) {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("source: dial %s: %w", addr, err)
	}
	return conn, nil
}
