package gps

import (
	"time"

	"github.com/relabs-tech/novatel_gps/internal/novatel"
)

// NavSatStatus service bits.
const (
	ServiceGPS uint16 = 1
)

// Status is the fix class plus the GNSS services in use.
type Status struct {
	Status  int8   `json:"status"`  // -1 no fix, 0 fix, 1 SBAS fix
	Service uint16 `json:"service"` // ServiceGPS, ...
}

// NavSatFix is a single position fix suitable for JSON and MQTT.
type NavSatFix struct {
	Time               time.Time  `json:"time"`
	Status             Status     `json:"status"`
	Latitude           float64    `json:"lat"`    // decimal degrees
	Longitude          float64    `json:"lon"`    // decimal degrees
	Altitude           float64    `json:"alt"`    // metres
	PositionCovariance [9]float64 `json:"position_covariance"`
	CovarianceType     uint8      `json:"position_covariance_type"`
}

// GPSStatus carries the receiver-specific details a NavSatFix cannot.
type GPSStatus struct {
	Time              time.Time `json:"time"`
	SatellitesUsed    int       `json:"satellites_used"`
	SatellitesVisible int       `json:"satellites_visible"`
	Status            int32     `json:"status"`          // raw solution status
	PositionSource    int32     `json:"position_source"` // raw position type
}

// Twist is the planar velocity derived from BESTVEL.
type Twist struct {
	Time    time.Time `json:"time"`
	LinearX float64   `json:"linear_x"` // east
	LinearY float64   `json:"linear_y"` // north
	LinearZ float64   `json:"linear_z"`
}

// TimeReference pairs a receiver time with the host time it was seen at.
// TimeRef is left zero until receiver/host clock correlation exists.
type TimeReference struct {
	Time    time.Time `json:"time"`
	TimeRef time.Time `json:"time_ref"`
	Source  string    `json:"source"`
}

// FromBestPos builds the NavSatFix and GPSStatus for one BESTPOS log.
func FromBestPos(now time.Time, p *novatel.BestPos) (NavSatFix, GPSStatus) {
	cov, covType := p.Covariance()
	fix := NavSatFix{
		Time: now,
		Status: Status{
			Status:  int8(p.FixQuality()),
			Service: ServiceGPS,
		},
		Latitude:           p.Latitude,
		Longitude:          p.Longitude,
		Altitude:           p.Height,
		PositionCovariance: cov,
		CovarianceType:     uint8(covType),
	}
	status := GPSStatus{
		Time:              now,
		SatellitesUsed:    p.SatellitesUsed(),
		SatellitesVisible: p.SatellitesVisible(),
		Status:            p.SolutionStatus,
		PositionSource:    p.PositionType,
	}
	return fix, status
}

// FromBestVel builds the Twist for one BESTVEL log. Only x/y are populated.
func FromBestVel(now time.Time, v *novatel.BestVel) Twist {
	vx, vy := v.PlanarVelocity()
	return Twist{Time: now, LinearX: vx, LinearY: vy}
}

// FromHeader builds the time reference for a frame header.
func FromHeader(now time.Time, _ novatel.Header) TimeReference {
	return TimeReference{Time: now, Source: "novatel"}
}
