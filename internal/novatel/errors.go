// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package novatel

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedHeader  = errors.New("novatel: malformed header")
	ErrTruncatedPayload = errors.New("novatel: truncated payload")
	ErrChecksumMismatch = errors.New("novatel: checksum mismatch")
)

// DropReason says why a frame was discarded.
type DropReason int

const (
	DropMalformedHeader DropReason = iota + 1
	DropTruncatedPayload
	DropChecksumMismatch
)

func (r DropReason) String() string {
	switch r {
	case DropMalformedHeader:
		return "malformed_header"
	case DropTruncatedPayload:
		return "truncated_payload"
	case DropChecksumMismatch:
		return "checksum_mismatch"
	default:
		return fmt.Sprintf("drop(%d)", int(r))
	}
}

// reasonFor maps a sentinel error onto its drop reason.
func reasonFor(err error) DropReason {
	switch {
	case errors.Is(err, ErrTruncatedPayload):
		return DropTruncatedPayload
	case errors.Is(err, ErrChecksumMismatch):
		return DropChecksumMismatch
	default:
		return DropMalformedHeader
	}
}

// DropError is returned by Reader.Next for a frame that failed validation.
// The reader stays usable; the next call resumes sync search.
type DropError struct {
	Reason    DropReason
	MessageID MessageID
	// Raw holds every byte consumed for the frame, preamble included.
	Raw []byte
	Err error
}

func (e *DropError) Error() string {
	return fmt.Sprintf("frame dropped (%s, id=%d, %d bytes): %v", e.Reason, e.MessageID, len(e.Raw), e.Err)
}

func (e *DropError) Unwrap() error { return e.Err }
