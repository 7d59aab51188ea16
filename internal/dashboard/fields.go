// Package dashboard holds the render-pass logic of the network performance
// dashboard: column classification, metric summaries, the filter selection, the
// scatter chart parameters and the aggregation views.
package dashboard

// Column names the dashboard reads.
const (
	FieldSignalStrength = "Signal Strength (dBm)"
	FieldSNR            = "SNR"
	FieldCallDuration   = "Call Duration (s)"
	FieldAttenuation    = "Attenuation"
	FieldDistance       = "Distance to Tower (km)"

	FieldEnvironment = "Environment"
	FieldCallType    = "Call Type"

	FieldTowerID = "Tower ID"
	FieldUserID  = "User ID"
)

// MetricFields returns the five summarized fields in display order.
func MetricFields() []string {
	return []string{
		FieldSignalStrength,
		FieldSNR,
		FieldCallDuration,
		FieldAttenuation,
		FieldDistance,
	}
}

// HoverFields returns the fields shown when hovering a scatter point.
// Every call returns a new slice.
func HoverFields() []string {
	return []string{FieldCallDuration, FieldAttenuation, FieldDistance}
}

// IdentifierFields returns the columns dropped right after load.
func IdentifierFields() []string {
	return []string{FieldTowerID, FieldUserID}
}
