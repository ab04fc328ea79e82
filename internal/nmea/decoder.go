// Package nmea decodes raw GPS sentences into normalized position fixes.
//
// Only the two sentence types vehicles actually emit are handled, $GPRMC and
// $GPGGA. Anything else, and any sentence without a valid fix, decodes to
// nothing; a bad line never aborts the stream.
package nmea

import (
	"strconv"
	"strings"
)

// Conversion factor from knots to km/h.
const knotsToKmh = 1.852

// Fix is one resolved GPS reading. Latitude and longitude are signed decimal
// degrees, speed is km/h, heading is degrees.
type Fix struct {
	Lat     float64
	Lon     float64
	Speed   float64
	Heading float64
}

// Decode parses one NMEA sentence. The prior fix supplies the speed and
// heading carried forward for sentence types that do not encode them.
// ok is false for unknown sentence types, invalid fixes and malformed
// fields; a partial decode is never returned.
func Decode(line string, prior Fix) (Fix, bool) {
	if !strings.HasPrefix(line, "$") {
		return Fix{}, false
	}

	fields := strings.Split(strings.TrimSpace(line), ",")
	switch fields[0] {
	case "$GPRMC":
		return decodeRMC(fields)
	case "$GPGGA":
		return decodeGGA(fields, prior)
	default:
		return Fix{}, false
	}
}

// decodeRMC handles the recommended-minimum sentence:
//
//	$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A
//	        time  ^  lat      ^  lon      ^  knots heading date
//
// Field 2 must be 'A' (valid fix); 'V' means the receiver has no fix.
func decodeRMC(fields []string) (Fix, bool) {
	if len(fields) < 12 || fields[2] != "A" {
		return Fix{}, false
	}

	lat, err := parseCoordinate(fields[3], fields[4], 2)
	if err != nil {
		return Fix{}, false
	}
	lon, err := parseCoordinate(fields[5], fields[6], 3)
	if err != nil {
		return Fix{}, false
	}
	speed, err := parseOptionalFloat(fields[7])
	if err != nil {
		return Fix{}, false
	}
	heading, err := parseOptionalFloat(fields[8])
	if err != nil {
		return Fix{}, false
	}

	return Fix{
		Lat:     lat,
		Lon:     lon,
		Speed:   speed * knotsToKmh,
		Heading: heading,
	}, true
}

// decodeGGA handles the fix-data sentence:
//
//	$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47
//	        time  lat      ^  lon      ^  quality
//
// Quality '0' means no fix. GGA carries no speed or heading; the prior fix's
// values are kept instead of resetting them to zero.
func decodeGGA(fields []string, prior Fix) (Fix, bool) {
	if len(fields) < 15 || fields[6] == "0" {
		return Fix{}, false
	}

	lat, err := parseCoordinate(fields[2], fields[3], 2)
	if err != nil {
		return Fix{}, false
	}
	lon, err := parseCoordinate(fields[4], fields[5], 3)
	if err != nil {
		return Fix{}, false
	}

	return Fix{
		Lat:     lat,
		Lon:     lon,
		Speed:   prior.Speed,
		Heading: prior.Heading,
	}, true
}

// parseCoordinate converts the NMEA ddmm.mmmm (or dddmm.mmmm) encoding into
// signed decimal degrees. degDigits is 2 for latitude, 3 for longitude;
// hemisphere 'S' or 'W' negates the value.
func parseCoordinate(value, hemisphere string, degDigits int) (float64, error) {
	if len(value) <= degDigits {
		return 0, strconv.ErrSyntax
	}

	degrees, err := strconv.ParseFloat(value[:degDigits], 64)
	if err != nil {
		return 0, err
	}
	minutes, err := strconv.ParseFloat(value[degDigits:], 64)
	if err != nil {
		return 0, err
	}

	coord := degrees + minutes/60
	if hemisphere == "S" || hemisphere == "W" {
		coord = -coord
	}
	return coord, nil
}

func parseOptionalFloat(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseFloat(value, 64)
}
