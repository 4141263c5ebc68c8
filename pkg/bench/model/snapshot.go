package model

import "time"

// Snapshot is one complete aggregation of a benchmark data directory. It is
// immutable once built; a reload produces a new Snapshot from scratch.
type Snapshot struct {
	// ID uniquely identifies this aggregation pass.
	ID string `json:"id"`
	// GitShortCommit is the Git commit (short form) of the running server
	// code.
	GitShortCommit string `json:"gitShortCommit,omitempty"`
	// Version is the symbolic version (if any) of the running server code.
	Version string `json:"version,omitempty"`
	// GeneratedAt is the time the aggregation completed.
	GeneratedAt time.Time `json:"generatedAt"`

	// Bench holds the per-VPN, per-profile, per-machine results.
	Bench BenchData `json:"bench"`
	// General holds the global connection timings, if any were collected.
	General *GeneralData `json:"general,omitempty"`
	// Comparison holds the cross-VPN per-profile summary tables.
	Comparison ComparisonData `json:"comparison"`
}
