package model

// TCSettings is one traffic-control impairment profile, as applied with tc
// netem/tbf on every machine during a run.
type TCSettings struct {
	BandwidthMbit      float64 `json:"bandwidth_mbit"`
	LatencyMs          float64 `json:"latency_ms"`
	JitterMs           float64 `json:"jitter_ms"`
	PacketLossPercent  float64 `json:"packet_loss_percent"`
	ReorderPercent     float64 `json:"reorder_percent"`
	ReorderCorrelation float64 `json:"reorder_correlation"`
}

// TCSettingsData is the content of a tc_settings.json artifact. A nil
// Settings denotes the unimpaired baseline profile.
type TCSettingsData struct {
	Alias    string      `json:"alias"`
	Settings *TCSettings `json:"settings"`
}
