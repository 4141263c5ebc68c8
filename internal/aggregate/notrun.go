package aggregate

import "github.com/meshbench/meshbench/pkg/bench/model"

// SynthesizeNotRun back-fills the missing test slots of every machine that
// produced at least one real result. An incomplete run (crash, timeout)
// then shows up as an explicit NotRun error instead of a silent gap, while
// a machine with no results at all keeps its empty slots and is treated as
// absent from the run.
func SynthesizeNotRun(data model.BenchData) {
	for _, cat := range data {
		for _, run := range cat.Runs {
			for _, m := range run.Machines {
				backfill(m)
			}
		}
	}
}

func backfill(m *model.Machine) {
	if !m.HasAnyData() {
		return
	}
	if m.Iperf3.TCP == nil {
		m.Iperf3.TCP = model.NotRun[model.TCPReport](m.Name)
	}
	if m.Iperf3.UDP == nil {
		m.Iperf3.UDP = model.NotRun[model.UDPReport](m.Name)
	}
	if m.Qperf == nil {
		m.Qperf = model.NotRun[model.QperfReport](m.Name)
	}
	if m.NixCache == nil {
		m.NixCache = model.NotRun[model.NixCacheReport](m.Name)
	}
	if m.Ping == nil {
		m.Ping = model.NotRun[model.PingReport](m.Name)
	}
	if m.RistStream == nil {
		m.RistStream = model.NotRun[model.RistStreamReport](m.Name)
	}
}
