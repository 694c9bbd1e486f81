// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package novatel

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Kind is the wire type of a single little-endian field.
type Kind uint8

const (
	KindU8 Kind = iota + 1
	KindI8
	KindU16
	KindI32
	KindU32
	KindF32
	KindF64
)

// Size returns the encoded width of k in bytes.
func (k Kind) Size() int {
	switch k {
	case KindU8, KindI8:
		return 1
	case KindU16:
		return 2
	case KindI32, KindU32, KindF32:
		return 4
	case KindF64:
		return 8
	default:
		return 0
	}
}

func (k Kind) String() string {
	switch k {
	case KindU8:
		return "u8"
	case KindI8:
		return "i8"
	case KindU16:
		return "u16"
	case KindI32:
		return "i32"
	case KindU32:
		return "u32"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Field is one named slot of a fixed binary layout.
type Field struct {
	Name   string
	Kind   Kind
	Offset int
}

// Layout maps byte offsets to named fields for one record type.
// Version is bumped whenever a field moves or changes width.
type Layout struct {
	Name    string
	Version int
	Length  int
	Fields  []Field

	index map[string]Field
}

// SchemaVersion identifies the set of layouts below (OEM4/OEM6/OEM7 binary logs).
const SchemaVersion = 1

// HeaderLayout is the binary header that follows the sync preamble.
var HeaderLayout = newLayout("header", 1, HeaderLength, []Field{
	{"header_length", KindU8, 0},
	{"message_id", KindU16, 1},
	{"message_type", KindI8, 3},
	{"port_address", KindU8, 4},
	{"message_length", KindU16, 5},
	{"sequence", KindU16, 7},
	{"idle_time", KindU8, 9},
	{"time_status", KindU8, 10},
	{"week", KindU16, 11},
	{"milliseconds", KindI32, 13},
	{"receiver_status", KindU32, 17},
	{"reserved", KindU16, 21},
	{"software_version", KindU16, 23},
})

// BestPosLayout is the BESTPOS (42) payload.
var BestPosLayout = newLayout("bestpos", 1, 72, []Field{
	{"solution_status", KindI32, 0},
	{"position_type", KindI32, 4},
	{"latitude", KindF64, 8},
	{"longitude", KindF64, 16},
	{"height", KindF64, 24},
	{"undulation", KindF32, 32},
	{"datum_id", KindI32, 36},
	{"latitude_std", KindF32, 40},
	{"longitude_std", KindF32, 44},
	{"height_std", KindF32, 48},
	{"station_id", KindI32, 52},
	{"differential_age", KindF32, 56},
	{"solution_age", KindF32, 60},
	{"satellites_tracked", KindU8, 64},
	{"satellites_used", KindU8, 65},
	{"l1_observations", KindU8, 66},
	{"multi_frequency_observations", KindU8, 67},
	{"reserved1", KindU8, 68},
	{"extended_solution_status", KindU8, 69},
	{"reserved2", KindU8, 70},
	{"signal_mask", KindU8, 71},
})

// BestVelLayout is the BESTVEL (99) payload.
var BestVelLayout = newLayout("bestvel", 1, 44, []Field{
	{"solution_status", KindI32, 0},
	{"velocity_type", KindI32, 4},
	{"latency", KindF32, 8},
	{"age", KindF32, 12},
	{"horizontal_speed", KindF64, 16},
	{"track_over_ground", KindF64, 24},
	{"vertical_speed", KindF64, 32},
	{"reserved", KindF32, 40},
})

// Layouts returns every layout known to this package.
func Layouts() []*Layout {
	return []*Layout{HeaderLayout, BestPosLayout, BestVelLayout}
}

func newLayout(name string, version, length int, fields []Field) *Layout {
	l := &Layout{Name: name, Version: version, Length: length, Fields: fields}
	l.index = make(map[string]Field, len(fields))
	for _, f := range fields {
		l.index[f.Name] = f
	}
	return l
}

// Validate checks that the fields are contiguous, uniquely named and exactly
// cover Length bytes.
func (l *Layout) Validate() error {
	seen := make(map[string]bool, len(l.Fields))
	next := 0
	for _, f := range l.Fields {
		if f.Kind.Size() == 0 {
			return fmt.Errorf("%s: field %q has unknown kind %s", l.Name, f.Name, f.Kind)
		}
		if seen[f.Name] {
			return fmt.Errorf("%s: duplicate field %q", l.Name, f.Name)
		}
		seen[f.Name] = true
		if f.Offset != next {
			return fmt.Errorf("%s: field %q at offset %d, expected %d", l.Name, f.Name, f.Offset, next)
		}
		next += f.Kind.Size()
	}
	if next != l.Length {
		return fmt.Errorf("%s: fields cover %d bytes, layout declares %d", l.Name, next, l.Length)
	}
	return nil
}

// Field looks up a field by name.
func (l *Layout) Field(name string) (Field, bool) {
	f, ok := l.index[name]
	return f, ok
}

// slot returns the bytes backing name. A missing field or kind mismatch is a
// programming error in this package, so it panics.
func (l *Layout) slot(b []byte, name string, k Kind) []byte {
	f, ok := l.index[name]
	if !ok || f.Kind != k {
		panic(fmt.Sprintf("novatel: layout %s has no %s field %q", l.Name, k, name))
	}
	return b[f.Offset : f.Offset+k.Size()]
}

func (l *Layout) u8(b []byte, name string) uint8 { return l.slot(b, name, KindU8)[0] }

func (l *Layout) i8(b []byte, name string) int8 { return int8(l.slot(b, name, KindI8)[0]) }

func (l *Layout) u16(b []byte, name string) uint16 {
	return binary.LittleEndian.Uint16(l.slot(b, name, KindU16))
}

func (l *Layout) i32(b []byte, name string) int32 {
	return int32(binary.LittleEndian.Uint32(l.slot(b, name, KindI32)))
}

func (l *Layout) u32(b []byte, name string) uint32 {
	return binary.LittleEndian.Uint32(l.slot(b, name, KindU32))
}

func (l *Layout) f32(b []byte, name string) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(l.slot(b, name, KindF32)))
}

func (l *Layout) f64(b []byte, name string) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(l.slot(b, name, KindF64)))
}

func (l *Layout) putU8(b []byte, name string, v uint8) { l.slot(b, name, KindU8)[0] = v }

func (l *Layout) putI8(b []byte, name string, v int8) { l.slot(b, name, KindI8)[0] = byte(v) }

func (l *Layout) putU16(b []byte, name string, v uint16) {
	binary.LittleEndian.PutUint16(l.slot(b, name, KindU16), v)
}

func (l *Layout) putI32(b []byte, name string, v int32) {
	binary.LittleEndian.PutUint32(l.slot(b, name, KindI32), uint32(v))
}

func (l *Layout) putU32(b []byte, name string, v uint32) {
	binary.LittleEndian.PutUint32(l.slot(b, name, KindU32), v)
}

func (l *Layout) putF32(b []byte, name string, v float32) {
	binary.LittleEndian.PutUint32(l.slot(b, name, KindF32), math.Float32bits(v))
}

func (l *Layout) putF64(b []byte, name string, v float64) {
	binary.LittleEndian.PutUint64(l.slot(b, name, KindF64), math.Float64bits(v))
}
