package aggregate

import (
	"github.com/charmbracelet/log"

	"github.com/meshbench/meshbench/internal/walker"
	"github.com/meshbench/meshbench/pkg/bench/model"
	"github.com/meshbench/meshbench/pkg/bench/spec"
)

// General collects the global connection-timing traces stored directly
// under the General namespace. Only successful collections are retained;
// there is no "not run" concept for connection timings, so failures are
// logged and dropped. Returns nil when nothing was collected.
func General(artifacts []walker.Artifact) *model.GeneralData {
	var out *model.GeneralData
	for _, a := range artifacts {
		n := len(a.Segments)
		if n < 2 || a.Segments[n-2] != spec.GeneralNamespace {
			continue
		}
		file := a.Segments[n-1]
		if file != spec.FileConnectionTimings && file != spec.FileRebootConnectionTimings {
			continue
		}
		result, err := model.Wrap[model.ConnectionTimingsReport](a.Content, a.Path)
		if err != nil {
			log.Warn("dropping malformed connection timings", "path", a.Path,
				"error", err)
			continue
		}
		if !result.OK {
			log.Warn("connection timing collection failed", "path", a.Path,
				"type", result.Error.Type)
			continue
		}
		if out == nil {
			out = &model.GeneralData{}
		}
		report := result.Value
		if file == spec.FileConnectionTimings {
			out.ConnectionTimings = &report
		} else {
			out.RebootConnectionTimings = &report
		}
	}
	return out
}
