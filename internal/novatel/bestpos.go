// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package novatel

// Solution status and position type codes.
const (
	SolutionComputed int32 = 0

	PositionNone          int32 = 0
	PositionSingle        int32 = 16
	PositionPSRDiff       int32 = 17
	PositionWAAS          int32 = 18
	PositionL1Float       int32 = 32
	PositionIonoFreeFloat int32 = 33
	PositionNarrowFloat   int32 = 34
	PositionL1Int         int32 = 48
	PositionWideInt       int32 = 49
	PositionNarrowInt     int32 = 50
)

// FixQuality follows the NavSatStatus convention.
type FixQuality int8

const (
	FixNone FixQuality = -1
	FixGPS  FixQuality = 0
	FixSBAS FixQuality = 1
)

func (q FixQuality) String() string {
	switch q {
	case FixGPS:
		return "GPS_FIX"
	case FixSBAS:
		return "SBAS_FIX"
	default:
		return "NO_FIX"
	}
}

// CovarianceType follows the NavSatFix convention.
type CovarianceType uint8

const (
	CovarianceUnknown CovarianceType = iota
	CovarianceApproximated
	CovarianceDiagonalKnown
	CovarianceKnown
)

// BestPos is the best available position solution.
type BestPos struct {
	SolutionStatus  int32   `json:"solution_status"`
	PositionType    int32   `json:"position_type"`
	Latitude        float64 `json:"lat"`    // degrees
	Longitude       float64 `json:"lon"`    // degrees
	Height          float64 `json:"height"` // metres above mean sea level
	Undulation      float32 `json:"undulation"`
	DatumID         int32   `json:"datum_id"`
	LatitudeStdDev  float32 `json:"lat_std"`
	LongitudeStdDev float32 `json:"lon_std"`
	HeightStdDev    float32 `json:"height_std"`
	StationID       int32   `json:"station_id"`
	DifferentialAge float32 `json:"diff_age"`
	SolutionAge     float32 `json:"sol_age"`

	SatellitesTracked    uint8 `json:"svs"`
	SatellitesInSolution uint8 `json:"soln_svs"`

	L1Observations             uint8 `json:"l1_obs"`
	MultiFrequencyObservations uint8 `json:"multi_obs"`
	Reserved1                  uint8 `json:"-"`
	ExtendedSolutionStatus     uint8 `json:"ext_sol_stat"`
	Reserved2                  uint8 `json:"-"`
	SignalMask                 uint8 `json:"sig_mask"`
}

func (*BestPos) ID() MessageID { return MessageBestPos }
func (*BestPos) isMessage()    {}

// FixQuality maps solution status and position type onto a fix class.
// Only a computed narrow-lane integer solution counts as GPS_FIX and only a
// computed WAAS solution as SBAS_FIX.
func (p *BestPos) FixQuality() FixQuality {
	if p.SolutionStatus != SolutionComputed {
		return FixNone
	}
	switch p.PositionType {
	case PositionNarrowInt:
		return FixGPS
	case PositionWAAS:
		return FixSBAS
	default:
		return FixNone
	}
}

// Covariance returns the row-major 3x3 position covariance. Only the
// diagonal is known; the standard deviations are copied as-is.
func (p *BestPos) Covariance() ([9]float64, CovarianceType) {
	var c [9]float64
	c[0] = float64(p.LatitudeStdDev)
	c[4] = float64(p.LongitudeStdDev)
	c[8] = float64(p.HeightStdDev)
	return c, CovarianceDiagonalKnown
}

func (p *BestPos) SatellitesVisible() int { return int(p.SatellitesTracked) }

func (p *BestPos) SatellitesUsed() int { return int(p.SatellitesInSolution) }

func decodeBestPos(b []byte) *BestPos {
	l := BestPosLayout
	return &BestPos{
		SolutionStatus:             l.i32(b, "solution_status"),
		PositionType:               l.i32(b, "position_type"),
		Latitude:                   l.f64(b, "latitude"),
		Longitude:                  l.f64(b, "longitude"),
		Height:                     l.f64(b, "height"),
		Undulation:                 l.f32(b, "undulation"),
		DatumID:                    l.i32(b, "datum_id"),
		LatitudeStdDev:             l.f32(b, "latitude_std"),
		LongitudeStdDev:            l.f32(b, "longitude_std"),
		HeightStdDev:               l.f32(b, "height_std"),
		StationID:                  l.i32(b, "station_id"),
		DifferentialAge:            l.f32(b, "differential_age"),
		SolutionAge:                l.f32(b, "solution_age"),
		SatellitesTracked:          l.u8(b, "satellites_tracked"),
		SatellitesInSolution:       l.u8(b, "satellites_used"),
		L1Observations:             l.u8(b, "l1_observations"),
		MultiFrequencyObservations: l.u8(b, "multi_frequency_observations"),
		Reserved1:                  l.u8(b, "reserved1"),
		ExtendedSolutionStatus:     l.u8(b, "extended_solution_status"),
		Reserved2:                  l.u8(b, "reserved2"),
		SignalMask:                 l.u8(b, "signal_mask"),
	}
}
