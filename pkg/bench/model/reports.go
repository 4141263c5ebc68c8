package model

// IperfInterval is one measurement interval of an iperf3 test.
type IperfInterval struct {
	StartS        float64 `json:"start_s"`
	EndS          float64 `json:"end_s"`
	Bytes         int64   `json:"bytes"`
	BitsPerSecond float64 `json:"bits_per_second"`
}

// TCPReport is the summary of an iperf3 TCP test against one machine.
type TCPReport struct {
	Seconds       float64         `json:"seconds"`
	Bytes         int64           `json:"bytes"`
	BitsPerSecond float64         `json:"bits_per_second"`
	Retransmits   int64           `json:"retransmits"`
	Intervals     []IperfInterval `json:"intervals,omitempty"`
}

// ThroughputMbit returns the measured TCP throughput in Mbit/s.
func (r *TCPReport) ThroughputMbit() float64 {
	return r.BitsPerSecond / 1e6
}

// UDPReport is the summary of an iperf3 UDP test against one machine.
type UDPReport struct {
	Seconds       float64         `json:"seconds"`
	Bytes         int64           `json:"bytes"`
	BitsPerSecond float64         `json:"bits_per_second"`
	JitterMs      float64         `json:"jitter_ms"`
	Packets       int64           `json:"packets"`
	LostPackets   int64           `json:"lost_packets"`
	LostPercent   float64         `json:"lost_percent"`
	Intervals     []IperfInterval `json:"intervals,omitempty"`
}

// ThroughputMbit returns the measured UDP throughput in Mbit/s.
func (r *UDPReport) ThroughputMbit() float64 {
	return r.BitsPerSecond / 1e6
}

// QperfReport is the summary of a QUIC qperf test against one machine.
type QperfReport struct {
	TLSHandshakeTimeMs  float64   `json:"tls_handshake_time_ms"`
	QUICHandshakeTimeMs float64   `json:"quic_handshake_time_ms"`
	BitsPerSecond       float64   `json:"bits_per_second"`
	BytesPerSecond      []float64 `json:"bytes_per_second,omitempty"`
}

// ThroughputMbit returns the measured QUIC throughput in Mbit/s.
func (r *QperfReport) ThroughputMbit() float64 {
	return r.BitsPerSecond / 1e6
}

// PingReport is the summary of an ICMP ping test against one machine.
type PingReport struct {
	PacketsSent     int64   `json:"packets_sent"`
	PacketsReceived int64   `json:"packets_received"`
	PacketLoss      float64 `json:"packet_loss_percent"`
	MinRTTMs        float64 `json:"min_rtt_ms"`
	AvgRTTMs        float64 `json:"avg_rtt_ms"`
	MaxRTTMs        float64 `json:"max_rtt_ms"`
	MdevRTTMs       float64 `json:"mdev_rtt_ms"`
}

// NixCacheReport is the summary of a nix binary-cache download test.
type NixCacheReport struct {
	StorePath     string  `json:"store_path,omitempty"`
	SizeBytes     int64   `json:"size_bytes"`
	Seconds       float64 `json:"seconds"`
	BitsPerSecond float64 `json:"bits_per_second"`
}

// ThroughputMbit returns the effective download throughput in Mbit/s.
func (r *NixCacheReport) ThroughputMbit() float64 {
	return r.BitsPerSecond / 1e6
}

// RistStreamReport is the summary of a RIST video-streaming test.
type RistStreamReport struct {
	Seconds           float64 `json:"seconds"`
	BitsPerSecond     float64 `json:"bits_per_second"`
	PacketsSent       int64   `json:"packets_sent"`
	PacketsLost       int64   `json:"packets_lost"`
	PacketsRetransmit int64   `json:"packets_retransmitted"`
	RTTMs             float64 `json:"rtt_ms"`
	QualityPercent    float64 `json:"quality_percent"`
}

// ThroughputMbit returns the measured streaming bitrate in Mbit/s.
func (r *RistStreamReport) ThroughputMbit() float64 {
	return r.BitsPerSecond / 1e6
}

// ParallelTCPStream is one stream of a parallel iperf3 TCP test.
type ParallelTCPStream struct {
	Source        string  `json:"source"`
	Target        string  `json:"target"`
	Bytes         int64   `json:"bytes"`
	BitsPerSecond float64 `json:"bits_per_second"`
	Retransmits   int64   `json:"retransmits"`
}

// ParallelTCPReport is the summary of the run-scoped parallel iperf3 TCP
// test, where all machines transmit at once.
type ParallelTCPReport struct {
	Seconds          float64             `json:"seconds"`
	SumBitsPerSecond float64             `json:"sum_bits_per_second"`
	Streams          []ParallelTCPStream `json:"streams,omitempty"`
}

// ThroughputMbit returns the aggregate throughput across all streams in
// Mbit/s.
func (r *ParallelTCPReport) ThroughputMbit() float64 {
	return r.SumBitsPerSecond / 1e6
}

// ConnectionTimingsReport maps a machine name to the observed durations, in
// seconds, of successive connection attempts to it.
type ConnectionTimingsReport struct {
	Timings map[string][]float64 `json:"timings"`
}
