// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package novatel

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	frames  []Frame
	reasons []DropReason
	raws    [][]byte
}

func (s *recordingSink) OnFrame(f Frame) { s.frames = append(s.frames, f) }

func (s *recordingSink) OnDroppedFrame(reason DropReason, raw []byte) {
	s.reasons = append(s.reasons, reason)
	s.raws = append(s.raws, raw)
}

// chunkReader hands out the stream in the given chunk sizes.
type chunkReader struct {
	data   []byte
	chunks []int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.data) == 0 {
		return 0, io.EOF
	}
	n := len(c.data)
	if len(c.chunks) > 0 {
		n = c.chunks[0]
		c.chunks = c.chunks[1:]
	}
	if n > len(c.data) {
		n = len(c.data)
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, c.data[:n])
	c.data = c.data[n:]
	return n, nil
}

func requireDrop(t *testing.T, err error, reason DropReason) *DropError {
	t.Helper()
	var drop *DropError
	require.True(t, errors.As(err, &drop), "expected drop, got %v", err)
	require.Equal(t, reason, drop.Reason)
	return drop
}

func TestReaderRoundTrip(t *testing.T) {
	h := sampleHeader()
	stream := concat(mustFrame(t, h, sampleBestPos()), mustFrame(t, h, sampleBestVel()))
	r := NewReader(bytes.NewReader(stream))
	ctx := context.Background()

	f, err := r.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, sampleBestPos(), f.Message)
	require.Equal(t, MessageBestPos, f.Header.MessageID)
	require.Equal(t, uint8(FullHeaderLength), f.Header.HeaderLength)
	require.Equal(t, uint16(72), f.Header.MessageLength)
	require.Equal(t, h.Week, f.Header.Week)
	require.Equal(t, h.Milliseconds, f.Header.Milliseconds)
	require.Equal(t, h.ReceiverStatus, f.Header.ReceiverStatus)

	f, err = r.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, sampleBestVel(), f.Message)

	_, err = r.Next(ctx)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, Stats{Frames: 2}, r.Stats())
}

func TestReaderSkipsNoiseBetweenFrames(t *testing.T) {
	h := sampleHeader()
	noise := []byte("$GPGGA,noise*00\r\n\xAA\x44\x00\xAA")
	stream := concat(noise, mustFrame(t, h, sampleBestPos()), noise, mustFrame(t, h, sampleBestVel()), []byte{0xAA, 0x44})
	r := NewReader(bytes.NewReader(stream))

	sink := &recordingSink{}
	require.NoError(t, r.Run(context.Background(), sink))
	require.Len(t, sink.frames, 2)
	require.Empty(t, sink.reasons)
	require.Equal(t, uint64(2*len(noise)+2), r.Stats().SkippedBytes)
}

func TestReaderSyncSplitAcrossReads(t *testing.T) {
	frame := mustFrame(t, sampleHeader(), sampleBestPos())
	stream := concat([]byte{0x01, 0x02}, frame)

	// First read ends after 0xAA 0x44, the 0x12 arrives with the next one.
	r := NewReader(&chunkReader{data: stream, chunks: []int{4, 1, 7}})
	f, err := r.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, sampleBestPos(), f.Message)

	r = NewReader(iotest.OneByteReader(bytes.NewReader(stream)))
	f, err = r.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, MessageBestPos, f.Message.ID())
}

func TestReaderUnrecognizedMessage(t *testing.T) {
	h := sampleHeader()
	h.MessageID = 7
	stream := mustRawFrame(t, h, []byte{1, 2, 3, 4, 5})
	r := NewReader(bytes.NewReader(stream))

	f, err := r.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, Unrecognized{MessageID: 7}, f.Message)
	require.Equal(t, uint16(5), f.Header.MessageLength)
}

func TestReaderTruncatedPayload(t *testing.T) {
	frame := mustFrame(t, sampleHeader(), sampleBestPos())
	// Declared length is 72 but only 71 payload bytes follow.
	stream := frame[:FullHeaderLength+71]
	r := NewReader(bytes.NewReader(stream))

	_, err := r.Next(context.Background())
	drop := requireDrop(t, err, DropTruncatedPayload)
	require.ErrorIs(t, err, ErrTruncatedPayload)
	require.Equal(t, stream, drop.Raw)
	require.Equal(t, MessageBestPos, drop.MessageID)

	_, err = r.Next(context.Background())
	require.ErrorIs(t, err, io.EOF)
}

func TestReaderTruncatedChecksum(t *testing.T) {
	frame := mustFrame(t, sampleHeader(), sampleBestVel())
	r := NewReader(bytes.NewReader(frame[:len(frame)-2]))

	_, err := r.Next(context.Background())
	requireDrop(t, err, DropTruncatedPayload)
}

func TestReaderTruncatedHeader(t *testing.T) {
	frame := mustFrame(t, sampleHeader(), sampleBestVel())
	r := NewReader(bytes.NewReader(frame[:SyncLength+10]))

	_, err := r.Next(context.Background())
	requireDrop(t, err, DropMalformedHeader)
	_, err = r.Next(context.Background())
	require.ErrorIs(t, err, io.EOF)
}

func TestReaderPayloadShorterThanSchema(t *testing.T) {
	h := sampleHeader()
	h.MessageID = MessageBestVel
	r := NewReader(bytes.NewReader(mustRawFrame(t, h, make([]byte, 20))))

	_, err := r.Next(context.Background())
	requireDrop(t, err, DropTruncatedPayload)
}

func TestReaderChecksumMismatchThenRecovers(t *testing.T) {
	h := sampleHeader()
	bad := mustFrame(t, h, sampleBestPos())
	bad[FullHeaderLength+10] ^= 0x40
	stream := concat(bad, mustFrame(t, h, sampleBestVel()))
	r := NewReader(bytes.NewReader(stream))

	_, err := r.Next(context.Background())
	drop := requireDrop(t, err, DropChecksumMismatch)
	require.ErrorIs(t, err, ErrChecksumMismatch)
	require.Len(t, drop.Raw, len(bad))

	f, err := r.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, sampleBestVel(), f.Message)
	require.Equal(t, Stats{Frames: 1, Dropped: 1}, r.Stats())
}

func TestReaderMalformedHeaderLengthThenRecovers(t *testing.T) {
	h := sampleHeader()
	bad := mustFrame(t, h, sampleBestPos())
	bad[SyncLength] = 30 // header_length
	stream := concat(bad, mustFrame(t, h, sampleBestVel()))
	r := NewReader(bytes.NewReader(stream))

	_, err := r.Next(context.Background())
	drop := requireDrop(t, err, DropMalformedHeader)
	require.ErrorIs(t, err, ErrMalformedHeader)
	require.Len(t, drop.Raw, FullHeaderLength)

	f, err := r.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, sampleBestVel(), f.Message)
}

func TestReaderRejectsOversizedLength(t *testing.T) {
	r := NewReader(bytes.NewReader(mustFrame(t, sampleHeader(), sampleBestPos())), WithMaxPayload(64))

	_, err := r.Next(context.Background())
	requireDrop(t, err, DropMalformedHeader)
}

func TestReaderRunReportsDrops(t *testing.T) {
	h := sampleHeader()
	bad := mustFrame(t, h, sampleBestVel())
	bad[len(bad)-1] ^= 0xFF
	stream := concat(mustFrame(t, h, sampleBestPos()), bad, mustFrame(t, h, sampleBestVel()))

	sink := &recordingSink{}
	require.NoError(t, NewReader(bytes.NewReader(stream)).Run(context.Background(), sink))
	require.Len(t, sink.frames, 2)
	require.Equal(t, []DropReason{DropChecksumMismatch}, sink.reasons)
	require.Equal(t, bad, sink.raws[0])
}

func TestReaderRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &recordingSink{}
	stream := mustFrame(t, sampleHeader(), sampleBestPos())
	require.NoError(t, NewReader(bytes.NewReader(stream)).Run(ctx, sink))
	require.Empty(t, sink.frames)
}

func TestReaderRunReturnsSourceError(t *testing.T) {
	boom := errors.New("port unplugged")
	err := NewReader(iotest.ErrReader(boom)).Run(context.Background(), &recordingSink{})
	require.ErrorIs(t, err, boom)
}

func TestDropReasonString(t *testing.T) {
	require.Equal(t, "malformed_header", DropMalformedHeader.String())
	require.Equal(t, "truncated_payload", DropTruncatedPayload.String())
	require.Equal(t, "checksum_mismatch", DropChecksumMismatch.String())
}
