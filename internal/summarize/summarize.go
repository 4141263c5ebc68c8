// Package summarize derives cross-VPN summary statistics from aggregated
// per-machine results. It fills the gaps left by runs that have no
// pre-computed comparison artifacts; tables read from artifacts are never
// overwritten.
package summarize

import (
	"github.com/charmbracelet/log"
	"github.com/montanaflynn/stats"

	"github.com/meshbench/meshbench/pkg/bench/model"
)

// MetricStats computes min/average/max and median-based quartiles over
// samples. It returns an error for an empty sample set.
func MetricStats(samples []float64) (model.MetricStats, error) {
	var out model.MetricStats
	data := stats.Float64Data(samples)
	var err error
	if out.Min, err = stats.Min(data); err != nil {
		return out, err
	}
	if out.Average, err = stats.Mean(data); err != nil {
		return out, err
	}
	if out.Max, err = stats.Max(data); err != nil {
		return out, err
	}
	// stats.Quartile leaves Q1 and Q3 undefined for a single sample;
	// every quartile of one observation is that observation.
	if len(samples) == 1 {
		out.Percentiles = model.Percentiles{
			P25: samples[0], P50: samples[0], P75: samples[0],
		}
		return out, nil
	}
	q, err := stats.Quartile(data)
	if err != nil {
		return out, err
	}
	out.Percentiles = model.Percentiles{P25: q.Q1, P50: q.Q2, P75: q.Q3}
	return out, nil
}

// Fill derives comparison tables from bench for every (alias, test kind)
// that has no table yet, mutating comparison in place. Aliases missing from
// comparison entirely are added; their TC settings are taken from the first
// bench run that recorded them.
func Fill(bench model.BenchData, comparison model.ComparisonData) {
	for _, alias := range aliases(bench) {
		run := comparison[alias]
		if run == nil {
			run = &model.ComparisonRunData{TCSettings: tcSettings(bench, alias)}
			comparison[alias] = run
		}
		if run.TCPIperf == nil {
			run.TCPIperf = derive(bench, alias, func(m *model.Machine) (float64, bool) {
				return sample(m.Iperf3.TCP, (*model.TCPReport).ThroughputMbit)
			})
		}
		if run.UDPIperf == nil {
			run.UDPIperf = derive(bench, alias, func(m *model.Machine) (float64, bool) {
				return sample(m.Iperf3.UDP, (*model.UDPReport).ThroughputMbit)
			})
		}
		if run.Qperf == nil {
			run.Qperf = derive(bench, alias, func(m *model.Machine) (float64, bool) {
				return sample(m.Qperf, (*model.QperfReport).ThroughputMbit)
			})
		}
		if run.NixCache == nil {
			run.NixCache = derive(bench, alias, func(m *model.Machine) (float64, bool) {
				return sample(m.NixCache, (*model.NixCacheReport).ThroughputMbit)
			})
		}
		if run.VideoStreaming == nil {
			run.VideoStreaming = derive(bench, alias, func(m *model.Machine) (float64, bool) {
				return sample(m.RistStream, (*model.RistStreamReport).ThroughputMbit)
			})
		}
		if run.ParallelTCP == nil {
			run.ParallelTCP = deriveParallel(bench, alias)
		}
		if run.Ping == nil {
			run.Ping = derivePing(bench, alias)
		}
	}
}

func aliases(bench model.BenchData) []string {
	var out []string
	seen := map[string]bool{}
	for _, cat := range bench {
		for alias := range cat.Runs {
			if !seen[alias] {
				seen[alias] = true
				out = append(out, alias)
			}
		}
	}
	return out
}

func tcSettings(bench model.BenchData, alias string) *model.TCSettingsData {
	for _, cat := range bench {
		if run := cat.Runs[alias]; run != nil && run.TCSettings != nil {
			return run.TCSettings
		}
	}
	return nil
}

func sample[T any](r *model.Result[T], metric func(*T) float64) (float64, bool) {
	if r == nil || !r.OK {
		return 0, false
	}
	return metric(&r.Value), true
}

// derive builds a throughput comparison table for one test kind: one entry
// per VPN that ran the given alias, summarizing extract's metric across its
// machines. VPNs where no machine produced a successful result are omitted.
func derive(bench model.BenchData, alias string, extract func(*model.Machine) (float64, bool)) model.ComparisonTable {
	table := model.ComparisonTable{}
	for _, cat := range bench {
		run := cat.Runs[alias]
		if run == nil {
			continue
		}
		var samples []float64
		for _, m := range run.Machines {
			if v, ok := extract(m); ok {
				samples = append(samples, v)
			}
		}
		if len(samples) == 0 {
			continue
		}
		summary, err := MetricStats(samples)
		if err != nil {
			log.Warn("skipping derived summary", "vpn", cat.Name,
				"alias", alias, "error", err)
			continue
		}
		table[cat.Name] = model.Ok(model.MetricStatsMap{
			"throughput_mbit": summary,
		}, nil)
	}
	if len(table) == 0 {
		return nil
	}
	return table
}

// deriveParallel summarizes the run-scoped parallel TCP test. There is one
// result per (VPN, alias) rather than one per machine, so each summary is
// over a single sample.
func deriveParallel(bench model.BenchData, alias string) model.ComparisonTable {
	table := model.ComparisonTable{}
	for _, cat := range bench {
		run := cat.Runs[alias]
		if run == nil {
			continue
		}
		v, ok := sample(run.ParallelTCP, (*model.ParallelTCPReport).ThroughputMbit)
		if !ok {
			continue
		}
		summary, err := MetricStats([]float64{v})
		if err != nil {
			log.Warn("skipping derived parallel tcp summary", "vpn", cat.Name,
				"alias", alias, "error", err)
			continue
		}
		table[cat.Name] = model.Ok(model.MetricStatsMap{
			"throughput_mbit": summary,
		}, nil)
	}
	if len(table) == 0 {
		return nil
	}
	return table
}

// derivePing summarizes round-trip time and packet loss, the two metrics
// the dashboard plots for ping.
func derivePing(bench model.BenchData, alias string) model.ComparisonTable {
	table := model.ComparisonTable{}
	for _, cat := range bench {
		run := cat.Runs[alias]
		if run == nil {
			continue
		}
		var rtts, losses []float64
		for _, m := range run.Machines {
			if m.Ping == nil || !m.Ping.OK {
				continue
			}
			rtts = append(rtts, m.Ping.Value.AvgRTTMs)
			losses = append(losses, m.Ping.Value.PacketLoss)
		}
		if len(rtts) == 0 {
			continue
		}
		rttStats, err := MetricStats(rtts)
		if err != nil {
			log.Warn("skipping derived ping summary", "vpn", cat.Name,
				"alias", alias, "error", err)
			continue
		}
		lossStats, err := MetricStats(losses)
		if err != nil {
			log.Warn("skipping derived ping summary", "vpn", cat.Name,
				"alias", alias, "error", err)
			continue
		}
		table[cat.Name] = model.Ok(model.MetricStatsMap{
			"rtt_ms":       rttStats,
			"loss_percent": lossStats,
		}, nil)
	}
	if len(table) == 0 {
		return nil
	}
	return table
}
