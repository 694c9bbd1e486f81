// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package novatel

import (
	"fmt"
	"strconv"
)

// MessageID is the binary log identifier carried in the header.
type MessageID uint16

const (
	MessageBestPos MessageID = 42
	MessageBestVel MessageID = 99
)

func (id MessageID) String() string {
	switch id {
	case MessageBestPos:
		return "BESTPOS"
	case MessageBestVel:
		return "BESTVEL"
	default:
		return "MSG" + strconv.Itoa(int(id))
	}
}

// Message is a decoded payload. The set of implementations is closed:
// *BestPos, *BestVel and Unrecognized.
type Message interface {
	ID() MessageID
	isMessage()
}

// Unrecognized is the result for a valid frame whose ID has no decoder.
type Unrecognized struct {
	MessageID MessageID `json:"message_id"`
}

func (u Unrecognized) ID() MessageID { return u.MessageID }
func (Unrecognized) isMessage()      {}

// Frame is one validated log: its header and decoded payload.
type Frame struct {
	Header  Header
	Message Message
}

// DecodePayload turns a payload into the record for id. Unknown IDs yield
// Unrecognized with a nil error.
func DecodePayload(id MessageID, payload []byte) (Message, error) {
	switch id {
	case MessageBestPos:
		if err := checkLength(BestPosLayout, payload); err != nil {
			return nil, err
		}
		return decodeBestPos(payload), nil
	case MessageBestVel:
		if err := checkLength(BestVelLayout, payload); err != nil {
			return nil, err
		}
		return decodeBestVel(payload), nil
	default:
		return Unrecognized{MessageID: id}, nil
	}
}

func checkLength(l *Layout, payload []byte) error {
	if len(payload) < l.Length {
		return fmt.Errorf("%w: %s needs %d bytes, got %d", ErrTruncatedPayload, l.Name, l.Length, len(payload))
	}
	return nil
}
