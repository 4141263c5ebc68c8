package aggregate

import (
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/meshbench/meshbench/internal/walker"
	"github.com/meshbench/meshbench/pkg/bench/model"
	"github.com/meshbench/meshbench/pkg/bench/spec"
)

// Comparison collects the pre-computed cross-VPN summary tables stored
// under General/comparison/<runAlias>/<benchmarkKind>.json. Each file maps
// VPN names to success/error tagged entries of per-metric statistics. TC
// settings for an alias are looked up on first encounter, through the
// any-VPN variant since no single VPN owns a comparison view.
func Comparison(artifacts []walker.Artifact) model.ComparisonData {
	out := model.ComparisonData{}
	for _, a := range artifacts {
		n := len(a.Segments)
		if n < 4 || a.Segments[n-4] != spec.GeneralNamespace ||
			a.Segments[n-3] != spec.ComparisonDir {
			continue
		}
		alias, file := a.Segments[n-2], a.Segments[n-1]
		table, err := decodeComparisonTable(a)
		if err != nil {
			log.Warn("dropping malformed comparison artifact", "path", a.Path,
				"error", err)
			continue
		}
		run := out[alias]
		if run == nil {
			run = &model.ComparisonRunData{
				TCSettings: LoadTCSettingsForRunAlias(artifacts, alias),
			}
			out[alias] = run
		}
		switch file {
		case spec.FilePing:
			run.Ping = table
		case spec.FileQperf:
			run.Qperf = table
		case spec.FileVideoStreaming:
			run.VideoStreaming = table
		case spec.FileTCPIperf3:
			run.TCPIperf = table
		case spec.FileUDPIperf3:
			run.UDPIperf = table
		case spec.FileNixCache:
			run.NixCache = table
		case spec.FileParallelTCP:
			run.ParallelTCP = table
		case spec.FileConnectionTimings:
			run.ConnectionTimings = table
		case spec.FileRebootConnectionTimings:
			run.RebootConnectionTimings = table
		default:
			log.Debug("ignoring unknown comparison kind", "path", a.Path)
		}
	}
	return out
}

func decodeComparisonTable(a walker.Artifact) (model.ComparisonTable, error) {
	outer, err := model.Wrap[map[string]json.RawMessage](a.Content, a.Path)
	if err != nil {
		return nil, err
	}
	if !outer.OK {
		// The harness failed to produce this table at all; there are no
		// per-VPN entries to salvage.
		return nil, nil
	}
	table := model.ComparisonTable{}
	for vpn, raw := range outer.Value {
		entry, err := model.Wrap[model.MetricStatsMap](raw, a.Path)
		if err != nil {
			log.Warn("dropping malformed comparison entry", "path", a.Path,
				"vpn", vpn, "error", err)
			continue
		}
		table[vpn] = entry
	}
	return table, nil
}
