// Package classify parses artifact paths into their benchmark coordinates.
//
// Two directory layouts coexist in real data directories:
//
//	current: .../<vpn>/<runAlias>/<machine>/<file>.json
//	legacy:  .../<vpn>/<machine>/<file>.json   (run alias "default")
//
// plus the run-scoped form .../<vpn>/<runAlias>/parallel_tcp_iperf3.json.
// A path whose suffix has only three named segments is ambiguous between
// the legacy and run-scoped forms; the file name decides, with run-level
// names taking precedence.
package classify

import (
	"errors"

	"github.com/meshbench/meshbench/pkg/bench/spec"
)

// Classification locates one artifact within the benchmark results tree.
// RunLevel artifacts have no machine component.
type Classification struct {
	VPN      string
	RunAlias string
	Machine  string
	File     string
	RunLevel bool
}

var (
	// ErrTooShallow rejects paths with too few segments to carry benchmark
	// coordinates.
	ErrTooShallow = errors.New("path has too few segments")

	// ErrGeneralNamespace rejects artifacts under the General namespace,
	// which are aggregated separately from per-VPN results.
	ErrGeneralNamespace = errors.New("artifact is in the General namespace")

	// ErrReservedFile rejects files that are never per-machine results,
	// such as tc_settings.json and the connection-timing traces.
	ErrReservedFile = errors.New("file is not a per-machine artifact")
)

// Classify parses the segment array of an artifact path. The last four
// segments are interpreted as <vpn>/<runAlias>/<machine>/<file> when the
// path is deep enough; otherwise the last three are interpreted as either
// <vpn>/<runAlias>/<runLevelFile> or the legacy <vpn>/<machine>/<file>.
func Classify(segments []string) (*Classification, error) {
	n := len(segments)
	switch {
	case n >= 6:
		c := &Classification{
			VPN:      segments[n-4],
			RunAlias: segments[n-3],
			Machine:  segments[n-2],
			File:     segments[n-1],
		}
		return checked(c)
	case n >= 5:
		file := segments[n-1]
		// Run-level names win over the legacy interpretation. See the
		// package comment for why the two forms collide here.
		if spec.RunLevelFiles[file] {
			c := &Classification{
				VPN:      segments[n-3],
				RunAlias: segments[n-2],
				File:     file,
				RunLevel: true,
			}
			return checked(c)
		}
		c := &Classification{
			VPN:      segments[n-3],
			RunAlias: spec.DefaultRunAlias,
			Machine:  segments[n-2],
			File:     file,
		}
		return checked(c)
	default:
		return nil, ErrTooShallow
	}
}

func checked(c *Classification) (*Classification, error) {
	if c.VPN == spec.GeneralNamespace {
		return nil, ErrGeneralNamespace
	}
	if !c.RunLevel && spec.ReservedFiles[c.File] {
		return nil, ErrReservedFile
	}
	return c, nil
}
