package aggregate_test

import (
	"testing"

	"github.com/meshbench/meshbench/internal/aggregate"
	"github.com/meshbench/meshbench/internal/walker"
	"github.com/meshbench/meshbench/pkg/bench/model"
)

const pingComparison = `{
	"status": "success",
	"data": {
		"WireGuard": {
			"status": "success",
			"data": {
				"rtt_ms": {"min":1,"average":2,"max":3,"percentiles":{"p25":1.5,"p50":2,"p75":2.5}}
			}
		},
		"Tinc": {
			"status": "error",
			"error_type": "ClanError",
			"error": {"msg": "all machines unreachable"}
		}
	}
}`

func TestComparison(t *testing.T) {
	out := aggregate.Comparison([]walker.Artifact{
		artifact("data/results/General/comparison/baseline/ping.json", pingComparison),
		artifact("data/results/WireGuard/baseline/tc_settings.json", baselineSettings),
	})

	run := out["baseline"]
	if run == nil {
		t.Fatal("missing baseline comparison run")
	}
	if run.TCSettings == nil || run.TCSettings.Alias != "baseline" {
		t.Errorf("tc settings not loaded through the any-VPN variant: %+v", run.TCSettings)
	}

	wg := run.Ping["WireGuard"]
	if wg == nil || !wg.OK {
		t.Fatalf("unexpected WireGuard entry: %+v", wg)
	}
	rtt, ok := wg.Value["rtt_ms"]
	if !ok || rtt.Average != 2 || rtt.Percentiles.P75 != 2.5 {
		t.Errorf("unexpected rtt stats: %+v", rtt)
	}

	tinc := run.Ping["Tinc"]
	if tinc == nil || tinc.OK {
		t.Fatalf("expected error entry for Tinc: %+v", tinc)
	}
	if tinc.Error.Type != model.ErrorTypeClan {
		t.Errorf("unexpected error type: %s", tinc.Error.Type)
	}
}

func TestComparison_RoutesByKind(t *testing.T) {
	table := `{"status":"success","data":{"WireGuard":{"status":"success","data":{}}}}`
	out := aggregate.Comparison([]walker.Artifact{
		artifact("data/results/General/comparison/high_loss/tcp_iperf3.json", table),
		artifact("data/results/General/comparison/high_loss/video_streaming.json", table),
		artifact("data/results/General/comparison/high_loss/reboot_connection_timings.json", table),
	})
	run := out["high_loss"]
	if run == nil {
		t.Fatal("missing high_loss comparison run")
	}
	if run.TCPIperf == nil || run.VideoStreaming == nil || run.RebootConnectionTimings == nil {
		t.Errorf("tables not routed by kind: %+v", run)
	}
	if run.Ping != nil || run.NixCache != nil {
		t.Errorf("unexpected tables present: %+v", run)
	}
}

func TestComparison_IgnoresNonComparisonArtifacts(t *testing.T) {
	out := aggregate.Comparison([]walker.Artifact{
		artifact("data/results/WireGuard/baseline/nodeA/ping.json", success(pingData)),
		artifact("data/results/General/connection_timings.json", success(timingsData)),
	})
	if len(out) != 0 {
		t.Errorf("expected empty comparison data, got %+v", out)
	}
}

func TestComparison_MalformedEntrySkipped(t *testing.T) {
	table := `{"status":"success","data":{
		"WireGuard":{"status":"success","data":{}},
		"Tinc":{"status":"partial"}
	}}`
	out := aggregate.Comparison([]walker.Artifact{
		artifact("data/results/General/comparison/baseline/qperf.json", table),
	})
	run := out["baseline"]
	if run == nil || run.Qperf == nil {
		t.Fatal("missing qperf table")
	}
	if _, ok := run.Qperf["Tinc"]; ok {
		t.Error("malformed entry should be dropped, not kept as an error")
	}
	if _, ok := run.Qperf["WireGuard"]; !ok {
		t.Error("valid entries must survive a sibling's malformation")
	}
}
