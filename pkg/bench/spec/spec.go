// Package spec contains constants shared by the benchmark aggregation
// pipeline and the dashboard API.
package spec

import "time"

const (
	// FileTCPIperf3 is the per-machine iperf3 TCP report file name.
	FileTCPIperf3 = "tcp_iperf3.json"
	// FileUDPIperf3 is the per-machine iperf3 UDP report file name.
	FileUDPIperf3 = "udp_iperf3.json"
	// FileQperf is the per-machine QUIC qperf report file name.
	FileQperf = "qperf.json"
	// FileNixCache is the per-machine nix-cache download report file name.
	FileNixCache = "nix_cache.json"
	// FilePing is the per-machine ping report file name.
	FilePing = "ping.json"
	// FileRistStream is the per-machine RIST video-streaming report file name.
	FileRistStream = "rist_stream.json"

	// FileParallelTCP is the run-level parallel iperf3 TCP report file name.
	// Unlike the files above it lives directly under <vpn>/<runAlias>/.
	FileParallelTCP = "parallel_tcp_iperf3.json"

	// FileTCSettings is the traffic-control settings file name. It carries
	// the impairment profile directly, with no success/error envelope.
	FileTCSettings = "tc_settings.json"

	// FileConnectionTimings is the connection-timing trace file name.
	FileConnectionTimings = "connection_timings.json"
	// FileRebootConnectionTimings is the post-reboot connection-timing trace
	// file name.
	FileRebootConnectionTimings = "reboot_connection_timings.json"

	// FileVideoStreaming is the cross-VPN video-streaming comparison file
	// name under General/comparison/<runAlias>/.
	FileVideoStreaming = "video_streaming.json"

	// GeneralNamespace is the top-level directory for artifacts that do not
	// belong to any single VPN.
	GeneralNamespace = "General"

	// ComparisonDir is the directory under GeneralNamespace holding
	// cross-VPN comparison tables.
	ComparisonDir = "comparison"

	// DefaultRunAlias is the run profile alias assigned to artifacts using
	// the legacy <vpn>/<machine>/<file> layout, which predates run profiles.
	DefaultRunAlias = "default"
)

const (
	// SnapshotPath serves the full aggregated snapshot.
	SnapshotPath = "/v0/snapshot"
	// BenchPath serves the per-VPN, per-profile, per-machine results.
	BenchPath = "/v0/bench"
	// GeneralPath serves the global connection-timing data.
	GeneralPath = "/v0/general"
	// ComparisonPath serves the cross-VPN per-profile summary tables.
	ComparisonPath = "/v0/comparison"
	// ReloadPath triggers a full re-aggregation from the data directory.
	ReloadPath = "/v0/reload"
	// LivePath is the websocket endpoint notifying clients of new snapshots.
	LivePath = "/v0/live"

	// DefaultResponseCacheTTL is the default TTL for cached API responses.
	DefaultResponseCacheTTL = 1 * time.Minute
)

// RunLevelFiles lists the file names that denote run-scoped artifacts at
// <vpn>/<runAlias>/<file>. A 5-segment path is otherwise ambiguous with the
// legacy per-machine layout; names in this table take precedence over the
// legacy interpretation.
var RunLevelFiles = map[string]bool{
	FileParallelTCP: true,
}

// ReservedFiles lists file names that are never per-machine benchmark
// results, even when they appear at a per-machine path depth.
var ReservedFiles = map[string]bool{
	FileConnectionTimings:       true,
	FileRebootConnectionTimings: true,
	FileTCSettings:              true,
}
