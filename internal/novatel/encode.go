// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package novatel

import (
	"encoding/binary"
	"fmt"
)

// EncodeHeader writes h into the 25-byte header layout.
func EncodeHeader(h Header) []byte {
	b := make([]byte, HeaderLength)
	l := HeaderLayout
	l.putU8(b, "header_length", h.HeaderLength)
	l.putU16(b, "message_id", uint16(h.MessageID))
	l.putI8(b, "message_type", h.MessageType)
	l.putU8(b, "port_address", h.PortAddress)
	l.putU16(b, "message_length", h.MessageLength)
	l.putU16(b, "sequence", h.Sequence)
	l.putU8(b, "idle_time", h.IdleTime)
	l.putU8(b, "time_status", h.TimeStatus)
	l.putU16(b, "week", h.Week)
	l.putI32(b, "milliseconds", h.Milliseconds)
	l.putU32(b, "receiver_status", h.ReceiverStatus)
	l.putU16(b, "reserved", h.Reserved)
	l.putU16(b, "software_version", h.SoftwareVersion)
	return b
}

// MarshalBinary encodes the BESTPOS payload.
func (p *BestPos) MarshalBinary() ([]byte, error) {
	l := BestPosLayout
	b := make([]byte, l.Length)
	l.putI32(b, "solution_status", p.SolutionStatus)
	l.putI32(b, "position_type", p.PositionType)
	l.putF64(b, "latitude", p.Latitude)
	l.putF64(b, "longitude", p.Longitude)
	l.putF64(b, "height", p.Height)
	l.putF32(b, "undulation", p.Undulation)
	l.putI32(b, "datum_id", p.DatumID)
	l.putF32(b, "latitude_std", p.LatitudeStdDev)
	l.putF32(b, "longitude_std", p.LongitudeStdDev)
	l.putF32(b, "height_std", p.HeightStdDev)
	l.putI32(b, "station_id", p.StationID)
	l.putF32(b, "differential_age", p.DifferentialAge)
	l.putF32(b, "solution_age", p.SolutionAge)
	l.putU8(b, "satellites_tracked", p.SatellitesTracked)
	l.putU8(b, "satellites_used", p.SatellitesInSolution)
	l.putU8(b, "l1_observations", p.L1Observations)
	l.putU8(b, "multi_frequency_observations", p.MultiFrequencyObservations)
	l.putU8(b, "reserved1", p.Reserved1)
	l.putU8(b, "extended_solution_status", p.ExtendedSolutionStatus)
	l.putU8(b, "reserved2", p.Reserved2)
	l.putU8(b, "signal_mask", p.SignalMask)
	return b, nil
}

// MarshalBinary encodes the BESTVEL payload.
func (v *BestVel) MarshalBinary() ([]byte, error) {
	l := BestVelLayout
	b := make([]byte, l.Length)
	l.putI32(b, "solution_status", v.SolutionStatus)
	l.putI32(b, "velocity_type", v.VelocityType)
	l.putF32(b, "latency", v.Latency)
	l.putF32(b, "age", v.Age)
	l.putF64(b, "horizontal_speed", v.HorizontalSpeed)
	l.putF64(b, "track_over_ground", v.TrackOverGround)
	l.putF64(b, "vertical_speed", v.VerticalSpeed)
	l.putF32(b, "reserved", v.Reserved)
	return b, nil
}

// EncodeFrame builds a complete frame around payload. HeaderLength,
// MessageLength and the CRC are filled in; every other header field is
// taken from h.
func EncodeFrame(h Header, payload []byte) ([]byte, error) {
	if len(payload) > 0xFFFF {
		return nil, fmt.Errorf("novatel: payload of %d bytes does not fit message_length", len(payload))
	}
	h.HeaderLength = FullHeaderLength
	h.MessageLength = uint16(len(payload))

	out := make([]byte, 0, FullHeaderLength+len(payload)+CRCLength)
	out = append(out, Sync[:]...)
	out = append(out, EncodeHeader(h)...)
	out = append(out, payload...)
	out = binary.LittleEndian.AppendUint32(out, ComputeCRC32(out))
	return out, nil
}

// EncodeMessage builds a frame for a decodable message; h.MessageID is set
// from m.
func EncodeMessage(h Header, m Message) ([]byte, error) {
	var (
		payload []byte
		err     error
	)
	switch msg := m.(type) {
	case *BestPos:
		payload, err = msg.MarshalBinary()
	case *BestVel:
		payload, err = msg.MarshalBinary()
	default:
		return nil, fmt.Errorf("novatel: cannot encode %s", m.ID())
	}
	if err != nil {
		return nil, err
	}
	h.MessageID = m.ID()
	return EncodeFrame(h, payload)
}
