// Package aggregate folds discovered benchmark artifacts into the
// dashboard's data structures.
package aggregate

import (
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/meshbench/meshbench/internal/classify"
	"github.com/meshbench/meshbench/internal/walker"
	"github.com/meshbench/meshbench/pkg/bench/model"
	"github.com/meshbench/meshbench/pkg/bench/spec"
)

// Bench folds every per-VPN artifact into BenchData. Aggregation is a pure
// function of the artifact set: artifacts that fail classification or
// envelope decoding are skipped with a log line, and the fold is correct
// regardless of artifact order. After the fold, machines that produced at
// least one real result have their missing test slots back-filled with
// NotRun errors.
func Bench(artifacts []walker.Artifact) model.BenchData {
	b := newBenchBuilder(artifacts)
	for _, a := range artifacts {
		b.add(a)
	}
	data := b.build()
	SynthesizeNotRun(data)
	return data
}

// benchBuilder owns the accumulator for one aggregation pass. It is not
// safe for concurrent use and is not meant to be: aggregation is a single
// synchronous pass.
type benchBuilder struct {
	// artifacts is the full artifact list; tc settings lookups scan it.
	artifacts  []walker.Artifact
	order      []string
	categories map[string]*model.BenchCategory
}

func newBenchBuilder(artifacts []walker.Artifact) *benchBuilder {
	return &benchBuilder{
		artifacts:  artifacts,
		categories: map[string]*model.BenchCategory{},
	}
}

func (b *benchBuilder) add(a walker.Artifact) {
	c, err := classify.Classify(a.Segments)
	if err != nil {
		log.Debug("skipping artifact", "path", a.Path, "reason", err)
		artifactsClassified.WithLabelValues("skipped").Inc()
		return
	}

	if c.RunLevel {
		result, err := model.Wrap[model.ParallelTCPReport](a.Content, a.Path)
		if err != nil {
			log.Warn("dropping malformed run-level artifact", "path", a.Path,
				"error", err)
			artifactsClassified.WithLabelValues("malformed").Inc()
			return
		}
		run := b.run(c.VPN, c.RunAlias)
		run.ParallelTCP = result
		artifactsClassified.WithLabelValues("ok").Inc()
		return
	}

	assign, err := decodeMachineSlot(c.File, a.Content, a.Path)
	if err != nil {
		log.Warn("dropping malformed artifact", "path", a.Path, "error", err)
		artifactsClassified.WithLabelValues("malformed").Inc()
		return
	}
	run := b.run(c.VPN, c.RunAlias)
	machine := b.machine(run, c.Machine)
	if assign != nil {
		assign(machine)
	}
	artifactsClassified.WithLabelValues("ok").Inc()
}

// run returns the run record for (vpn, alias), creating the category and
// run on first encounter. TC settings are looked up exactly once, when the
// run record is created.
func (b *benchBuilder) run(vpn, alias string) *model.RunData {
	cat := b.categories[vpn]
	if cat == nil {
		cat = &model.BenchCategory{Name: vpn, Runs: map[string]*model.RunData{}}
		b.categories[vpn] = cat
		b.order = append(b.order, vpn)
	}
	run := cat.Runs[alias]
	if run == nil {
		run = &model.RunData{
			Machines:   []*model.Machine{},
			TCSettings: LoadTCSettings(b.artifacts, vpn, alias),
		}
		cat.Runs[alias] = run
	}
	return run
}

func (b *benchBuilder) machine(run *model.RunData, name string) *model.Machine {
	if m := run.Machine(name); m != nil {
		return m
	}
	m := model.NewMachine(name)
	run.Machines = append(run.Machines, m)
	return m
}

// build returns the accumulated categories in first-encounter order, which
// is deterministic because the walker yields artifacts in lexical order.
func (b *benchBuilder) build() model.BenchData {
	data := make(model.BenchData, 0, len(b.order))
	for _, name := range b.order {
		data = append(data, b.categories[name])
	}
	return data
}

// slotAssign stores a decoded result into its machine slot. A nil
// slotAssign means the file kind is unknown and the artifact is ignored,
// which keeps old data readable when new test kinds are added.
type slotAssign func(*model.Machine)

func decodeMachineSlot(file string, content []byte, path string) (slotAssign, error) {
	switch file {
	case spec.FileTCPIperf3:
		r, err := model.Wrap[model.TCPReport](content, path)
		if err != nil {
			return nil, err
		}
		return func(m *model.Machine) { m.Iperf3.TCP = r }, nil
	case spec.FileUDPIperf3:
		r, err := model.Wrap[model.UDPReport](content, path)
		if err != nil {
			return nil, err
		}
		return func(m *model.Machine) { m.Iperf3.UDP = r }, nil
	case spec.FileQperf:
		r, err := model.Wrap[model.QperfReport](content, path)
		if err != nil {
			return nil, err
		}
		return func(m *model.Machine) { m.Qperf = r }, nil
	case spec.FileNixCache:
		r, err := model.Wrap[model.NixCacheReport](content, path)
		if err != nil {
			return nil, err
		}
		return func(m *model.Machine) { m.NixCache = r }, nil
	case spec.FilePing:
		r, err := model.Wrap[model.PingReport](content, path)
		if err != nil {
			return nil, err
		}
		return func(m *model.Machine) { m.Ping = r }, nil
	case spec.FileRistStream:
		r, err := model.Wrap[model.RistStreamReport](content, path)
		if err != nil {
			return nil, err
		}
		return func(m *model.Machine) { m.RistStream = r }, nil
	default:
		// Unknown file kind. Validate the envelope so that malformed
		// artifacts are still dropped, then ignore it.
		if _, err := model.Wrap[json.RawMessage](content, path); err != nil {
			return nil, err
		}
		return nil, nil
	}
}
