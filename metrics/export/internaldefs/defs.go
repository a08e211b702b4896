package internaldefs

import (
	sessiontrack "github.com/mzkv/sessiontrack"
)

// CounterDef defines a public type used by sessiontrack APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   sessiontrack.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by sessiontrack APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   sessiontrack.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the session tracker.
var CounterDefs = []CounterDef{
	{ID: sessiontrack.MetricLoginRecorded, Name: "sessiontrack_login_recorded_total", Help: "Session records written by Login."},
	{ID: sessiontrack.MetricLookupValid, Name: "sessiontrack_lookup_valid_total", Help: "Validity checks that found a live record."},
	{ID: sessiontrack.MetricLookupAbsent, Name: "sessiontrack_lookup_absent_total", Help: "Validity checks that found no record."},
	{ID: sessiontrack.MetricExpiredEvicted, Name: "sessiontrack_expired_evicted_total", Help: "Records removed by lazy expiry."},
	{ID: sessiontrack.MetricCorruptEvicted, Name: "sessiontrack_corrupt_evicted_total", Help: "Records removed because they failed to deserialize."},
	{ID: sessiontrack.MetricLogout, Name: "sessiontrack_logout_total", Help: "Explicit logout operations."},
	{ID: sessiontrack.MetricRedirect, Name: "sessiontrack_redirect_total", Help: "Navigation side effects fired by Logout and Protect."},
	{ID: sessiontrack.MetricStorageError, Name: "sessiontrack_storage_error_total", Help: "Storage operations that failed and degraded to not-logged-in."},
}

// HistogramDefs is an exported constant or variable used by the session tracker.
var HistogramDefs = []HistogramDef{
	{ID: sessiontrack.MetricLookupLatency, Name: "sessiontrack_lookup_latency_seconds", Help: "IsValid lookup latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the session tracker.
var HistogramBounds = []string{
	"0.00005",
	"0.0001",
	"0.00025",
	"0.0005",
	"0.001",
	"0.0025",
	"0.005",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the session tracker.
var HistogramBoundSuffix = []string{
	"0_00005",
	"0_0001",
	"0_00025",
	"0_0005",
	"0_001",
	"0_0025",
	"0_005",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
