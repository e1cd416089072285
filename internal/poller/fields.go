package poller

type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
	kindBool
)

// field maps one key of the telemetry payload to a typed host-store entry.
// Absent payload keys are skipped by the sync guard, so the mirrored set
// follows whatever the aggregation service happens to return.
type field struct {
	key  string // key in the telemetry JSON document
	path string // host-store path, relative to the adapter namespace
	kind fieldKind
	desc string
	unit string
	min  *float64
	max  *float64
}

var vehicleFields = []field{
	{key: "state", path: "status.state", kind: kindString, desc: "Vehicle connectivity state"},
	{key: "display_name", path: "info.displayName", kind: kindString, desc: "Vehicle display name"},
	{key: "vehicle_state", path: "status.vehicleState", kind: kindString, desc: "Drive/park state"},
	{key: "battery_level", path: "battery.level", kind: kindNumber, desc: "Battery charge level", unit: "%", min: f64(0), max: f64(100)},
	{key: "est_battery_range", path: "battery.estRange", kind: kindNumber, desc: "Estimated remaining range", unit: "km"},
	{key: "odometer", path: "status.odometer", kind: kindNumber, desc: "Odometer reading", unit: "km"},
	{key: "inside_temp", path: "climate.insideTemp", kind: kindNumber, desc: "Cabin temperature", unit: "°C"},
	{key: "outside_temp", path: "climate.outsideTemp", kind: kindNumber, desc: "Outside temperature", unit: "°C"},
	{key: "charging", path: "battery.charging", kind: kindBool, desc: "Charging in progress"},
	{key: "locked", path: "status.locked", kind: kindBool, desc: "Doors locked"},
	{key: "sentry_mode", path: "status.sentryMode", kind: kindBool, desc: "Sentry mode enabled"},
}

func f64(v float64) *float64 {
	return &v
}
