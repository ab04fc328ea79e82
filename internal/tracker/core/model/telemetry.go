package model

import (
	"fmt"
	"time"
)

// Defaults substituted for optional telemetry fields that a vehicle omitted.
const (
	DefaultSpeed        = 0
	DefaultHeading      = 0
	DefaultBatteryLevel = 100
	DefaultStatus       = "active"
)

// Structural bounds for the Extras payload. Extras are opaque to the hub;
// only their shape is validated, never their schema.
const (
	MaxExtrasKeys  = 32
	MaxExtrasDepth = 3
)

// Extras carries vendor-specific attachments on a telemetry sample, e.g.
// {"gps_fix_quality": "3D", "satellites": 8}.
type Extras map[string]any

// Validate enforces the structural bounds on an extras mapping.
func (e Extras) Validate() error {
	if len(e) > MaxExtrasKeys {
		return fmt.Errorf("extras has %d keys, limit is %d", len(e), MaxExtrasKeys)
	}
	for k, v := range e {
		if err := validateExtrasValue(v, 1); err != nil {
			return fmt.Errorf("extras[%q]: %w", k, err)
		}
	}
	return nil
}

func validateExtrasValue(v any, depth int) error {
	if depth > MaxExtrasDepth {
		return fmt.Errorf("nesting exceeds depth %d", MaxExtrasDepth)
	}
	switch t := v.(type) {
	case nil, bool, string,
		int, int32, int64, uint, uint32, uint64,
		float32, float64:
		return nil
	case map[string]any:
		for k, nested := range t {
			if err := validateExtrasValue(nested, depth+1); err != nil {
				return fmt.Errorf("%q: %w", k, err)
			}
		}
		return nil
	case []any:
		for i, nested := range t {
			if err := validateExtrasValue(nested, depth+1); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
}

// TelemetryUpdate is a telemetry report as received from a vehicle.
// Optional fields are pointers so an omitted field is distinguishable from an
// explicit zero; Normalize resolves them to concrete values.
type TelemetryUpdate struct {
	VehicleID    string     `json:"vehicle_id"`
	Lat          *float64   `json:"lat"`
	Lon          *float64   `json:"lon"`
	Speed        *float64   `json:"speed,omitempty"`
	Heading      *float64   `json:"heading,omitempty"`
	BatteryLevel *float64   `json:"battery_level,omitempty"`
	Status       string     `json:"status,omitempty"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
	Extras       Extras     `json:"extras,omitempty"`
}

// Normalize resolves the update into an immutable sample, substituting
// defaults for every omitted optional field. The caller supplies the server
// time used when the vehicle did not timestamp the report.
func (u *TelemetryUpdate) Normalize(now time.Time) *TelemetrySample {
	s := &TelemetrySample{
		VehicleID:    u.VehicleID,
		Speed:        DefaultSpeed,
		Heading:      DefaultHeading,
		BatteryLevel: DefaultBatteryLevel,
		Status:       DefaultStatus,
		Timestamp:    now,
		Extras:       Extras{},
	}

	if u.Lat != nil {
		s.Lat = *u.Lat
	}
	if u.Lon != nil {
		s.Lon = *u.Lon
	}
	if u.Speed != nil {
		s.Speed = *u.Speed
	}
	if u.Heading != nil {
		s.Heading = *u.Heading
	}
	if u.BatteryLevel != nil {
		s.BatteryLevel = *u.BatteryLevel
	}
	if u.Status != "" {
		s.Status = u.Status
	}
	if u.Timestamp != nil && !u.Timestamp.IsZero() {
		s.Timestamp = *u.Timestamp
	}
	if u.Extras != nil {
		s.Extras = u.Extras
	}

	return s
}

// TelemetrySample is one normalized telemetry reading. Once appended to the
// history it is never mutated.
type TelemetrySample struct {
	VehicleID    string    `json:"vehicle_id"`
	Lat          float64   `json:"lat"`
	Lon          float64   `json:"lon"`
	Speed        float64   `json:"speed"`
	Heading      float64   `json:"heading"`
	BatteryLevel float64   `json:"battery_level"`
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	Extras       Extras    `json:"extras,omitempty"`
}

// State projects the sample onto the vehicle's latest-known state.
func (s *TelemetrySample) State() *VehicleState {
	return &VehicleState{
		VehicleID:    s.VehicleID,
		Lat:          s.Lat,
		Lon:          s.Lon,
		Speed:        s.Speed,
		Heading:      s.Heading,
		BatteryLevel: s.BatteryLevel,
		Status:       s.Status,
		LastUpdate:   s.Timestamp,
		Extras:       s.Extras,
	}
}

// VehicleState is the latest known state of one vehicle. Every ingested
// sample replaces it wholesale; there is no field-level merging.
type VehicleState struct {
	VehicleID    string    `json:"vehicle_id"`
	Lat          float64   `json:"lat"`
	Lon          float64   `json:"lon"`
	Speed        float64   `json:"speed"`
	Heading      float64   `json:"heading"`
	BatteryLevel float64   `json:"battery_level"`
	Status       string    `json:"status"`
	LastUpdate   time.Time `json:"last_update"`
	Extras       Extras    `json:"extras,omitempty"`
}
