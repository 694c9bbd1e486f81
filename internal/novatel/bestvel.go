// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package novatel

import "math"

// KnotsToMetersPerSecond is applied to the horizontal speed before it is
// split into planar components.
//
// TODO: the receiver already reports horizontal speed in m/s; dropping this
// factor changes every published velocity and needs a coordinated consumer update.
const KnotsToMetersPerSecond = 0.514444444444

// BestVel is the best available velocity solution.
type BestVel struct {
	SolutionStatus  int32   `json:"solution_status"`
	VelocityType    int32   `json:"velocity_type"`
	Latency         float32 `json:"latency"` // seconds
	Age             float32 `json:"age"`     // seconds
	HorizontalSpeed float64 `json:"hor_spd"` // m/s
	TrackOverGround float64 `json:"trk_gnd"` // degrees from true north
	VerticalSpeed   float64 `json:"vert_spd"`
	Reserved        float32 `json:"-"`
}

func (*BestVel) ID() MessageID { return MessageBestVel }
func (*BestVel) isMessage()    {}

// PlanarVelocity splits the horizontal speed along east (x) and north (y).
func (v *BestVel) PlanarVelocity() (vx, vy float64) {
	speed := v.HorizontalSpeed * KnotsToMetersPerSecond
	track := v.TrackOverGround * math.Pi / 180.0
	return speed * math.Sin(track), speed * math.Cos(track)
}

func decodeBestVel(b []byte) *BestVel {
	l := BestVelLayout
	return &BestVel{
		SolutionStatus:  l.i32(b, "solution_status"),
		VelocityType:    l.i32(b, "velocity_type"),
		Latency:         l.f32(b, "latency"),
		Age:             l.f32(b, "age"),
		HorizontalSpeed: l.f64(b, "horizontal_speed"),
		TrackOverGround: l.f64(b, "track_over_ground"),
		VerticalSpeed:   l.f64(b, "vertical_speed"),
		Reserved:        l.f32(b, "reserved"),
	}
}
