package model

// Percentiles holds the quartiles of a metric distribution.
type Percentiles struct {
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
}

// MetricStats summarizes one metric across the machines of a run.
type MetricStats struct {
	Min         float64     `json:"min"`
	Average     float64     `json:"average"`
	Max         float64     `json:"max"`
	Percentiles Percentiles `json:"percentiles"`
}

// MetricStatsMap maps a metric name (e.g. "throughput_mbit") to its summary
// statistics.
type MetricStatsMap map[string]MetricStats

// ComparisonTable maps a VPN name to its summary entry for one test kind.
// Each entry is success/error tagged: a VPN whose test failed across the
// board appears as an Err entry, not as a silent omission.
type ComparisonTable map[string]*Result[MetricStatsMap]

// ComparisonRunData is the cross-VPN summary for one run profile. A nil
// table means no comparison data exists for that test kind.
type ComparisonRunData struct {
	TCSettings              *TCSettingsData `json:"tcSettings"`
	Ping                    ComparisonTable `json:"ping,omitempty"`
	Qperf                   ComparisonTable `json:"qperf,omitempty"`
	VideoStreaming          ComparisonTable `json:"videoStreaming,omitempty"`
	TCPIperf                ComparisonTable `json:"tcpIperf,omitempty"`
	UDPIperf                ComparisonTable `json:"udpIperf,omitempty"`
	NixCache                ComparisonTable `json:"nixCache,omitempty"`
	ParallelTCP             ComparisonTable `json:"parallelTcp,omitempty"`
	ConnectionTimings       ComparisonTable `json:"connectionTimings,omitempty"`
	RebootConnectionTimings ComparisonTable `json:"rebootConnectionTimings,omitempty"`
}

// ComparisonData maps a run profile alias to its cross-VPN summary.
type ComparisonData map[string]*ComparisonRunData
