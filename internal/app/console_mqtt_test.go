package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/novatel_gps/internal/gps"
	"github.com/relabs-tech/novatel_gps/internal/novatel"
)

func TestFormatFixLine(t *testing.T) {
	line, err := formatFixLine([]byte(fixJSON))
	require.NoError(t, err)
	require.Contains(t, line, "[FIX ]")
	require.Contains(t, line, "lat=51.10000000")
	require.Contains(t, line, "std=(1.000, 2.000, 3.000)")

	_, err = formatFixLine([]byte("not json"))
	require.Error(t, err)
}

func TestFormatStatusAndVelocityLines(t *testing.T) {
	line, err := formatStatusLine([]byte(statJSON))
	require.NoError(t, err)
	require.Contains(t, line, "used=8 visible=10")

	line, err = formatTwistLine([]byte(velJSON))
	require.NoError(t, err)
	require.Equal(t, "[VEL ]  vx=  1.500 vy= -0.500", line)

	line, err = formatDroppedLine([]byte(dropJSON))
	require.NoError(t, err)
	require.Equal(t, "[DROP]  reason=checksum_mismatch bytes=76", line)
}

func TestFormatNMEALine(t *testing.T) {
	pos := &novatel.BestPos{
		SolutionStatus:       novatel.SolutionComputed,
		PositionType:         novatel.PositionSingle,
		Latitude:             48.1173,
		Longitude:            11.5167,
		Height:               545.4,
		SatellitesInSolution: 8,
	}
	gga := gps.FormatGGA(time.Date(2026, 1, 1, 12, 35, 19, 0, time.UTC), pos)
	line, err := formatNMEALine([]byte(gga))
	require.NoError(t, err)
	require.Contains(t, line, "GGA")
	require.Contains(t, line, "sats=8")

	vtg := gps.FormatVTG(&novatel.BestVel{HorizontalSpeed: 10, TrackOverGround: 45})
	line, err = formatNMEALine([]byte(vtg + "\r\n"))
	require.NoError(t, err)
	require.Contains(t, line, "VTG track=45.0°")
	require.Contains(t, line, "36.00km/h")

	_, err = formatNMEALine([]byte("$GPGGA,garbage*00"))
	require.Error(t, err)
}
