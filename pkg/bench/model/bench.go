package model

// Iperf3Results groups the TCP and UDP iperf3 result slots of a machine.
type Iperf3Results struct {
	TCP *Result[TCPReport] `json:"tcp"`
	UDP *Result[UDPReport] `json:"udp"`
}

// Machine is one benchmark participant within one (VPN, profile) run. A nil
// slot means no artifact was discovered for that test; after not-run
// synthesis, any machine with at least one real result has its nil slots
// replaced by NotRun errors.
type Machine struct {
	Name       string                    `json:"name"`
	Iperf3     Iperf3Results             `json:"iperf3"`
	Qperf      *Result[QperfReport]      `json:"qperf"`
	NixCache   *Result[NixCacheReport]   `json:"nixCache"`
	Ping       *Result[PingReport]       `json:"ping"`
	RistStream *Result[RistStreamReport] `json:"ristStream"`
}

// NewMachine returns a Machine with all test slots empty.
func NewMachine(name string) *Machine {
	return &Machine{Name: name}
}

// HasAnyData reports whether at least one test slot holds a result. A
// machine without any data is presumed absent from the run rather than
// incomplete.
func (m *Machine) HasAnyData() bool {
	return m.Iperf3.TCP != nil || m.Iperf3.UDP != nil || m.Qperf != nil ||
		m.NixCache != nil || m.Ping != nil || m.RistStream != nil
}

// RunData is one (VPN, profile) combination: the machines that produced
// results, the traffic-control settings applied during the run, and the
// run-scoped parallel TCP result.
type RunData struct {
	Machines    []*Machine                 `json:"machines"`
	TCSettings  *TCSettingsData            `json:"tcSettings"`
	ParallelTCP *Result[ParallelTCPReport] `json:"parallelTcp"`
}

// Machine returns the machine with the given name, or nil.
func (r *RunData) Machine(name string) *Machine {
	for _, m := range r.Machines {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// BenchCategory holds every run profile of one VPN, keyed by profile alias.
type BenchCategory struct {
	Name string              `json:"name"`
	Runs map[string]*RunData `json:"runs"`
}

// BenchData is the primary per-VPN aggregation output.
type BenchData []*BenchCategory

// Category returns the category for the given VPN name, or nil.
func (d BenchData) Category(name string) *BenchCategory {
	for _, c := range d {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// GeneralData holds connection-timing results that are global rather than
// tied to any VPN. Only successful collections are retained.
type GeneralData struct {
	ConnectionTimings       *ConnectionTimingsReport `json:"connectionTimings,omitempty"`
	RebootConnectionTimings *ConnectionTimingsReport `json:"rebootConnectionTimings,omitempty"`
}
