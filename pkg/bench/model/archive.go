package model

import "time"

// BenchRow is a BigQuery-compatible flattening of one test slot: one row
// per (VPN, profile, machine, test kind). Run-level tests have an empty
// Machine. Only headline metrics are carried; the full report stays in the
// snapshot.
type BenchRow struct {
	SnapshotID  string
	GeneratedAt time.Time

	VPN      string
	RunAlias string
	Machine  string
	TestKind string

	OK        bool
	ErrorType string

	ThroughputMbit float64
	RTTMs          float64
	LossPercent    float64
}

// Test kind labels used in flattened rows.
const (
	TestKindTCPIperf    = "iperf3_tcp"
	TestKindUDPIperf    = "iperf3_udp"
	TestKindQperf       = "qperf"
	TestKindNixCache    = "nix_cache"
	TestKindPing        = "ping"
	TestKindRistStream  = "rist_stream"
	TestKindParallelTCP = "parallel_tcp"
)

func row[T any](s *Snapshot, vpn, alias, machine, kind string, r *Result[T], fill func(*T, *BenchRow)) *BenchRow {
	if r == nil {
		return nil
	}
	out := &BenchRow{
		SnapshotID:  s.ID,
		GeneratedAt: s.GeneratedAt,
		VPN:         vpn,
		RunAlias:    alias,
		Machine:     machine,
		TestKind:    kind,
		OK:          r.OK,
	}
	if r.OK {
		fill(&r.Value, out)
	} else if r.Error != nil {
		out.ErrorType = string(r.Error.Type)
	}
	return out
}

// Flatten converts the snapshot's bench data into archival rows, one per
// discovered or synthesized test slot.
func Flatten(s *Snapshot) []BenchRow {
	var rows []BenchRow
	add := func(r *BenchRow) {
		if r != nil {
			rows = append(rows, *r)
		}
	}
	for _, cat := range s.Bench {
		for alias, run := range cat.Runs {
			add(row(s, cat.Name, alias, "", TestKindParallelTCP, run.ParallelTCP,
				func(v *ParallelTCPReport, out *BenchRow) {
					out.ThroughputMbit = v.ThroughputMbit()
				}))
			for _, m := range run.Machines {
				add(row(s, cat.Name, alias, m.Name, TestKindTCPIperf, m.Iperf3.TCP,
					func(v *TCPReport, out *BenchRow) {
						out.ThroughputMbit = v.ThroughputMbit()
					}))
				add(row(s, cat.Name, alias, m.Name, TestKindUDPIperf, m.Iperf3.UDP,
					func(v *UDPReport, out *BenchRow) {
						out.ThroughputMbit = v.ThroughputMbit()
						out.LossPercent = v.LostPercent
					}))
				add(row(s, cat.Name, alias, m.Name, TestKindQperf, m.Qperf,
					func(v *QperfReport, out *BenchRow) {
						out.ThroughputMbit = v.ThroughputMbit()
					}))
				add(row(s, cat.Name, alias, m.Name, TestKindNixCache, m.NixCache,
					func(v *NixCacheReport, out *BenchRow) {
						out.ThroughputMbit = v.ThroughputMbit()
					}))
				add(row(s, cat.Name, alias, m.Name, TestKindPing, m.Ping,
					func(v *PingReport, out *BenchRow) {
						out.RTTMs = v.AvgRTTMs
						out.LossPercent = v.PacketLoss
					}))
				add(row(s, cat.Name, alias, m.Name, TestKindRistStream, m.RistStream,
					func(v *RistStreamReport, out *BenchRow) {
						out.ThroughputMbit = v.ThroughputMbit()
						out.RTTMs = v.RTTMs
					}))
			}
		}
	}
	return rows
}
