package summarize_test

import (
	"math"
	"testing"

	"github.com/meshbench/meshbench/internal/summarize"
	"github.com/meshbench/meshbench/pkg/bench/model"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMetricStats(t *testing.T) {
	stats, err := summarize.MetricStats([]float64{4, 1, 3, 2})
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !almost(stats.Min, 1) || !almost(stats.Max, 4) || !almost(stats.Average, 2.5) {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if !almost(stats.Percentiles.P50, 2.5) {
		t.Errorf("unexpected median: %v", stats.Percentiles.P50)
	}
	if !almost(stats.Percentiles.P25, 1.5) || !almost(stats.Percentiles.P75, 3.5) {
		t.Errorf("unexpected quartiles: %+v", stats.Percentiles)
	}
}

// Two machines is the smallest multi-sample run; its quartiles must still
// be defined.
func TestMetricStats_TwoSamples(t *testing.T) {
	stats, err := summarize.MetricStats([]float64{1000, 2000})
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !almost(stats.Percentiles.P25, 1000) || !almost(stats.Percentiles.P50, 1500) ||
		!almost(stats.Percentiles.P75, 2000) {
		t.Errorf("unexpected quartiles: %+v", stats.Percentiles)
	}
}

func TestMetricStats_SingleSample(t *testing.T) {
	stats, err := summarize.MetricStats([]float64{3000})
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !almost(stats.Min, 3000) || !almost(stats.Average, 3000) || !almost(stats.Max, 3000) {
		t.Errorf("unexpected stats: %+v", stats)
	}
	p := stats.Percentiles
	if !almost(p.P25, 3000) || !almost(p.P50, 3000) || !almost(p.P75, 3000) {
		t.Errorf("unexpected quartiles: %+v", p)
	}
}

func TestMetricStats_Empty(t *testing.T) {
	if _, err := summarize.MetricStats(nil); err == nil {
		t.Error("expected an error for empty input")
	}
}

func benchFixture() model.BenchData {
	return model.BenchData{
		{
			Name: "WireGuard",
			Runs: map[string]*model.RunData{
				"baseline": {
					Machines: []*model.Machine{
						{
							Name: "nodeA",
							Iperf3: model.Iperf3Results{
								TCP: model.Ok(model.TCPReport{BitsPerSecond: 1e9}, nil),
							},
							Ping: model.Ok(model.PingReport{AvgRTTMs: 10, PacketLoss: 0}, nil),
						},
						{
							Name: "nodeB",
							Iperf3: model.Iperf3Results{
								TCP: model.Ok(model.TCPReport{BitsPerSecond: 2e9}, nil),
							},
							Ping: model.NotRun[model.PingReport]("nodeB"),
						},
					},
					ParallelTCP: model.Ok(model.ParallelTCPReport{SumBitsPerSecond: 3e9}, nil),
				},
			},
		},
		{
			Name: "Tinc",
			Runs: map[string]*model.RunData{
				"baseline": {
					Machines: []*model.Machine{
						{
							Name: "nodeA",
							Iperf3: model.Iperf3Results{
								TCP: model.Err[model.TCPReport](
									&model.RunError{Type: model.ErrorTypeCmdOut}, nil),
							},
						},
					},
				},
			},
		},
	}
}

func TestFill(t *testing.T) {
	comparison := model.ComparisonData{}
	summarize.Fill(benchFixture(), comparison)

	run := comparison["baseline"]
	if run == nil {
		t.Fatal("missing derived baseline run")
	}

	wg := run.TCPIperf["WireGuard"]
	if wg == nil || !wg.OK {
		t.Fatalf("missing WireGuard tcp entry: %+v", wg)
	}
	stats := wg.Value["throughput_mbit"]
	if !almost(stats.Min, 1000) || !almost(stats.Max, 2000) || !almost(stats.Average, 1500) {
		t.Errorf("unexpected derived stats: %+v", stats)
	}

	// Tinc has no successful TCP result, so it gets no entry.
	if _, ok := run.TCPIperf["Tinc"]; ok {
		t.Error("VPN without successful results should be omitted")
	}

	// Ping summaries skip NotRun slots.
	ping := run.Ping["WireGuard"]
	if ping == nil || !ping.OK {
		t.Fatalf("missing ping entry: %+v", ping)
	}
	if !almost(ping.Value["rtt_ms"].Average, 10) {
		t.Errorf("unexpected ping stats: %+v", ping.Value)
	}

	parallel := run.ParallelTCP["WireGuard"]
	if parallel == nil || !almost(parallel.Value["throughput_mbit"].Average, 3000) {
		t.Errorf("unexpected parallel tcp entry: %+v", parallel)
	}

	// Nothing succeeded for qperf anywhere, so no table is derived.
	if run.Qperf != nil {
		t.Errorf("unexpected qperf table: %+v", run.Qperf)
	}
}

func TestFill_DoesNotOverwrite(t *testing.T) {
	precomputed := model.ComparisonTable{
		"WireGuard": model.Ok(model.MetricStatsMap{
			"throughput_mbit": {Average: 42},
		}, nil),
	}
	comparison := model.ComparisonData{
		"baseline": {TCPIperf: precomputed},
	}
	summarize.Fill(benchFixture(), comparison)

	got := comparison["baseline"].TCPIperf["WireGuard"].Value["throughput_mbit"].Average
	if !almost(got, 42) {
		t.Errorf("precomputed table was overwritten: %v", got)
	}
}
