// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package source

import (
	"fmt"
	"io"

	serial "github.com/jacobsa/go-serial/serial"
)

// serialOptions is 8N1, blocking until at least one byte arrives.
func serialOptions(port string, baud int) serial.OpenOptions {
	return serial.OpenOptions{
		PortName:              port,
		BaudRate:              uint(baud),
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}
}

// OpenSerial opens the receiver port, e.g. /dev/ttyUSB0 at 115200 baud.
func OpenSerial(port string, baud int) (io.ReadCloser, error) {
	if baud <= 0 {
		return nil, fmt.Errorf("source: invalid baud rate %d", baud)
	}
	rwc, err := serial.Open(serialOptions(port, baud))
	if err != nil {
		return nil, fmt.Errorf("source: open serial %s: %w", port, err)
	}
	return rwc, nil
}
