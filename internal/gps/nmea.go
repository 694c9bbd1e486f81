package gps

import (
	"fmt"
	"math"
	"time"

	nmea "github.com/adrianmo/go-nmea"

	"github.com/relabs-tech/novatel_gps/internal/novatel"
)

// ggaQuality maps a BESTPOS solution onto the GGA fix quality field.
func ggaQuality(p *novatel.BestPos) string {
	if p.SolutionStatus != novatel.SolutionComputed {
		return nmea.Invalid
	}
	switch p.PositionType {
	case novatel.PositionSingle:
		return nmea.GPS
	case novatel.PositionPSRDiff, novatel.PositionWAAS:
		return nmea.DGPS
	case novatel.PositionL1Int, novatel.PositionWideInt, novatel.PositionNarrowInt:
		return nmea.RTK
	case novatel.PositionL1Float, novatel.PositionIonoFreeFloat, novatel.PositionNarrowFloat:
		return nmea.FRTK
	default:
		return nmea.Invalid
	}
}

// FormatGGA renders a BESTPOS log as a checksummed $GPGGA sentence.
// HDOP is not part of BESTPOS and is left empty.
func FormatGGA(t time.Time, p *novatel.BestPos) string {
	lat, ns := formatDegMin(p.Latitude, 2, "N", "S")
	lon, ew := formatDegMin(p.Longitude, 3, "E", "W")

	age, station := "", ""
	if p.DifferentialAge > 0 {
		age = fmt.Sprintf("%.1f", p.DifferentialAge)
		station = fmt.Sprintf("%04d", p.StationID%10000)
	}

	body := fmt.Sprintf("GPGGA,%s,%s,%s,%s,%s,%s,%02d,,%.3f,M,%.3f,M,%s,%s",
		t.UTC().Format("150405.00"),
		lat, ns, lon, ew,
		ggaQuality(p),
		p.SatellitesInSolution,
		p.Height,
		p.Undulation,
		age, station,
	)
	return "$" + body + "*" + nmea.Checksum(body)
}

// FormatVTG renders a BESTVEL log as a checksummed $GPVTG sentence, taking
// horizontal speed in m/s.
func FormatVTG(v *novatel.BestVel) string {
	mode := "A"
	if v.SolutionStatus != novatel.SolutionComputed {
		mode = "N"
	}
	track := math.Mod(v.TrackOverGround+360.0, 360.0)
	body := fmt.Sprintf("GPVTG,%.2f,T,,M,%.3f,N,%.3f,K,%s",
		track,
		v.HorizontalSpeed/novatel.KnotsToMetersPerSecond,
		v.HorizontalSpeed*3.6,
		mode,
	)
	return "$" + body + "*" + nmea.Checksum(body)
}

// formatDegMin converts decimal degrees to NMEA (d)ddmm.mmmmmm plus hemisphere.
func formatDegMin(v float64, degDigits int, pos, neg string) (string, string) {
	hemi := pos
	if v < 0 {
		hemi = neg
		v = -v
	}
	deg := math.Floor(v)
	mins := (v - deg) * 60.0
	if mins >= 59.9999995 {
		deg++
		mins = 0
	}
	return fmt.Sprintf("%0*d%09.6f", degDigits, int(deg), mins), hemi
}
