package nmea

import (
	"math"
	"testing"
)

const floatTolerance = 1e-3

func approx(got, want float64) bool {
	return math.Abs(got-want) < floatTolerance
}

func TestDecodeRMC(t *testing.T) {
	fix, ok := Decode("$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A", Fix{})
	if !ok {
		t.Fatal("expected a valid fix")
	}
	if !approx(fix.Lat, 48.1173) {
		t.Errorf("lat = %v, want ~48.1173", fix.Lat)
	}
	if !approx(fix.Lon, 11.5167) {
		t.Errorf("lon = %v, want ~11.5167", fix.Lon)
	}
	if !approx(fix.Speed, 41.4848) {
		t.Errorf("speed = %v, want ~41.48 km/h", fix.Speed)
	}
	if !approx(fix.Heading, 84.4) {
		t.Errorf("heading = %v, want 84.4", fix.Heading)
	}
}

func TestDecodeRMCHemispheres(t *testing.T) {
	fix, ok := Decode("$GPRMC,123519,A,3351.000,S,15112.000,W,0.0,0.0,230394,,*6A", Fix{})
	if !ok {
		t.Fatal("expected a valid fix")
	}
	if fix.Lat >= 0 {
		t.Errorf("lat = %v, southern hemisphere must be negative", fix.Lat)
	}
	if fix.Lon >= 0 {
		t.Errorf("lon = %v, western hemisphere must be negative", fix.Lon)
	}
	if !approx(fix.Lat, -33.85) {
		t.Errorf("lat = %v, want ~-33.85", fix.Lat)
	}
	if !approx(fix.Lon, -151.2) {
		t.Errorf("lon = %v, want ~-151.2", fix.Lon)
	}
}

func TestDecodeRMCEmptySpeedAndHeading(t *testing.T) {
	fix, ok := Decode("$GPRMC,123519,A,4807.038,N,01131.000,E,,,230394,003.1,W*6A", Fix{Speed: 99, Heading: 99})
	if !ok {
		t.Fatal("expected a valid fix")
	}
	// RMC defaults absent speed/heading to zero; nothing is carried
	// forward for this sentence type.
	if fix.Speed != 0 || fix.Heading != 0 {
		t.Errorf("speed/heading = %v/%v, want 0/0", fix.Speed, fix.Heading)
	}
}

func TestDecodeGGA(t *testing.T) {
	prior := Fix{Speed: 41.48, Heading: 84.4}
	fix, ok := Decode("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47", prior)
	if !ok {
		t.Fatal("expected a valid fix")
	}
	if !approx(fix.Lat, 48.1173) {
		t.Errorf("lat = %v, want ~48.1173", fix.Lat)
	}
	if !approx(fix.Lon, 11.5167) {
		t.Errorf("lon = %v, want ~11.5167", fix.Lon)
	}
	// GGA has no speed or heading fields; the prior values persist.
	if fix.Speed != prior.Speed {
		t.Errorf("speed = %v, want carried-forward %v", fix.Speed, prior.Speed)
	}
	if fix.Heading != prior.Heading {
		t.Errorf("heading = %v, want carried-forward %v", fix.Heading, prior.Heading)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"no dollar prefix", "GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A"},
		{"unknown sentence", "$GPGSV,3,1,11,03,03,111,00*74"},
		{"rmc void fix", "$GPRMC,123519,V,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A"},
		{"rmc truncated", "$GPRMC,123519,A,4807.038,N"},
		{"rmc garbage latitude", "$GPRMC,123519,A,xx07.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A"},
		{"rmc garbage longitude", "$GPRMC,123519,A,4807.038,N,011xx.000,E,022.4,084.4,230394,003.1,W*6A"},
		{"rmc garbage speed", "$GPRMC,123519,A,4807.038,N,01131.000,E,fast,084.4,230394,003.1,W*6A"},
		{"rmc latitude too short", "$GPRMC,123519,A,48,N,01131.000,E,022.4,084.4,230394,003.1,W*6A"},
		{"gga no fix", "$GPGGA,123519,4807.038,N,01131.000,E,0,08,0.9,545.4,M,46.9,M,,*47"},
		{"gga truncated", "$GPGGA,123519,4807.038,N,01131.000,E,1,08"},
		{"gga garbage latitude", "$GPGGA,123519,xx.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47"},
		{"empty line", ""},
		{"bare dollar", "$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if fix, ok := Decode(tt.line, Fix{}); ok {
				t.Errorf("Decode(%q) = %+v, want rejection", tt.line, fix)
			}
		})
	}
}

func TestDecodeTrailingNewline(t *testing.T) {
	if _, ok := Decode("$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A\r\n", Fix{}); !ok {
		t.Fatal("a newline-terminated sentence must still decode")
	}
}
