// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package novatel

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// DefaultMaxPayload bounds message_length so a corrupt header cannot make the
// reader allocate or wait for an arbitrarily large payload.
const DefaultMaxPayload = 16384 - FullHeaderLength - CRCLength

// Sink receives the outcome of every frame.
type Sink interface {
	OnFrame(Frame)
	OnDroppedFrame(reason DropReason, raw []byte)
}

// Stats are running counters for a Reader. Safe to read from any goroutine.
type Stats struct {
	Frames       uint64 `json:"frames"`
	Dropped      uint64 `json:"dropped"`
	SkippedBytes uint64 `json:"skipped_bytes"`
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger used for dropped and unrecognized frames.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Reader) { r.log = l }
}

// WithMaxPayload overrides DefaultMaxPayload.
func WithMaxPayload(n int) Option {
	return func(r *Reader) {
		if n > 0 {
			r.maxPayload = n
		}
	}
}

// Reader pulls frames from a byte stream:
// seek sync, read header, read payload, read checksum, decode.
type Reader struct {
	src        *bufio.Reader
	log        zerolog.Logger
	maxPayload int

	// eof is set once the source is exhausted mid-frame; the partial frame is
	// reported first and io.EOF is returned on the following call.
	eof bool

	frames  atomic.Uint64
	dropped atomic.Uint64
	skipped atomic.Uint64
}

// NewReader wraps src. Reads are buffered, so src may deliver bytes in any
// chunking.
func NewReader(src io.Reader, opts ...Option) *Reader {
	r := &Reader{
		src:        bufio.NewReader(src),
		log:        zerolog.Nop(),
		maxPayload: DefaultMaxPayload,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Stats returns a snapshot of the counters.
func (r *Reader) Stats() Stats {
	return Stats{
		Frames:       r.frames.Load(),
		Dropped:      r.dropped.Load(),
		SkippedBytes: r.skipped.Load(),
	}
}

// Next returns the next valid frame.
//
// A frame that fails validation comes back as a *DropError and the reader
// can be called again straight away. io.EOF means the source is exhausted.
// ctx is checked before a frame starts; once the preamble is matched the
// frame is read to completion.
func (r *Reader) Next(ctx context.Context) (Frame, error) {
	if r.eof {
		return Frame{}, io.EOF
	}
	if err := r.seekSync(ctx); err != nil {
		return Frame{}, err
	}

	raw := make([]byte, SyncLength, FullHeaderLength+CRCLength)
	copy(raw, Sync[:])

	// Header.
	raw, err := r.readN(raw, HeaderLength)
	if err != nil {
		return r.fail(err, 0, raw, fmt.Errorf("%w: stream ended after %d header bytes", ErrMalformedHeader, len(raw)-SyncLength))
	}
	h, err := ParseHeader(raw[SyncLength:])
	if err != nil {
		return r.drop(h.MessageID, raw, err)
	}
	if !ValidateHeaderLength(h, HeaderLength) {
		return r.drop(h.MessageID, raw, fmt.Errorf("%w: header_length=%d", ErrMalformedHeader, h.HeaderLength))
	}
	if int(h.MessageLength) > r.maxPayload {
		return r.drop(h.MessageID, raw, fmt.Errorf("%w: message_length=%d exceeds %d", ErrMalformedHeader, h.MessageLength, r.maxPayload))
	}

	// Payload.
	raw, err = r.readN(raw, int(h.MessageLength))
	if err != nil {
		return r.fail(err, h.MessageID, raw, fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedPayload, len(raw)-FullHeaderLength, h.MessageLength))
	}
	body := len(raw)

	// Checksum.
	raw, err = r.readN(raw, CRCLength)
	if err != nil {
		return r.fail(err, h.MessageID, raw, fmt.Errorf("%w: stream ended inside checksum", ErrTruncatedPayload))
	}
	received := binary.LittleEndian.Uint32(raw[body:])
	if !VerifyChecksum(raw[:body], received) {
		return r.drop(h.MessageID, raw, fmt.Errorf("%w: got 0x%08X, computed 0x%08X", ErrChecksumMismatch, received, ComputeCRC32(raw[:body])))
	}

	// Dispatch.
	msg, err := DecodePayload(h.MessageID, raw[FullHeaderLength:body])
	if err != nil {
		return r.drop(h.MessageID, raw, err)
	}
	if _, ok := msg.(Unrecognized); ok {
		r.log.Debug().Uint16("msg_id", uint16(h.MessageID)).Msg("unrecognized message")
	}
	r.frames.Add(1)
	return Frame{Header: h, Message: msg}, nil
}

// Run feeds every frame outcome to sink until the source is exhausted or ctx
// is cancelled, both of which return nil. Other source errors are returned.
func (r *Reader) Run(ctx context.Context, sink Sink) error {
	for {
		f, err := r.Next(ctx)
		var drop *DropError
		switch {
		case err == nil:
			sink.OnFrame(f)
		case errors.As(err, &drop):
			sink.OnDroppedFrame(drop.Reason, drop.Raw)
		case errors.Is(err, io.EOF), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil
		default:
			return err
		}
	}
}

// seekSync consumes bytes until the preamble has been seen contiguously.
func (r *Reader) seekSync(ctx context.Context) error {
	var window [SyncLength]byte
	var read uint64
	for {
		if err := ctx.Err(); err != nil {
			r.noteSkipped(read)
			return err
		}
		b, err := r.src.ReadByte()
		if err != nil {
			r.noteSkipped(read)
			if errors.Is(err, io.EOF) {
				r.eof = true
				return io.EOF
			}
			return fmt.Errorf("novatel: read: %w", err)
		}
		read++
		window[0], window[1], window[2] = window[1], window[2], b
		if read >= SyncLength && window == Sync {
			r.noteSkipped(read - SyncLength)
			return nil
		}
	}
}

func (r *Reader) noteSkipped(n uint64) {
	if n == 0 {
		return
	}
	r.skipped.Add(n)
	r.log.Trace().Uint64("bytes", n).Msg("skipped bytes before sync")
}

// readN appends exactly n bytes from the source to buf. On a short read the
// bytes that did arrive are still appended.
func (r *Reader) readN(buf []byte, n int) ([]byte, error) {
	start := len(buf)
	buf = append(buf, make([]byte, n)...)
	got, err := io.ReadFull(r.src, buf[start:])
	return buf[:start+got], err
}

// fail handles a read error in the middle of a frame. End of stream turns the
// partial frame into a drop; anything else is a source failure.
func (r *Reader) fail(err error, id MessageID, raw []byte, dropErr error) (Frame, error) {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		r.eof = true
		return r.drop(id, raw, dropErr)
	}
	return Frame{}, fmt.Errorf("novatel: read: %w", err)
}

func (r *Reader) drop(id MessageID, raw []byte, err error) (Frame, error) {
	d := &DropError{Reason: reasonFor(err), MessageID: id, Raw: raw, Err: err}
	r.dropped.Add(1)
	r.log.Warn().
		Str("reason", d.Reason.String()).
		Uint16("msg_id", uint16(id)).
		Int("bytes", len(raw)).
		Err(err).
		Msg("frame dropped")
	return Frame{}, d
}
