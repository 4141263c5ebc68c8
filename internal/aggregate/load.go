package aggregate

import (
	"io/fs"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/m-lab/go/prometheusx"

	"github.com/meshbench/meshbench/internal/summarize"
	"github.com/meshbench/meshbench/internal/walker"
	"github.com/meshbench/meshbench/pkg/bench/model"
	"github.com/meshbench/meshbench/pkg/version"
)

// Load walks fsys and aggregates everything it finds into a Snapshot. It is
// the single entry point the binaries call at startup and on reload; every
// call recomputes from scratch. prefix is the virtual path of the walked
// root (see walker.Walk).
func Load(fsys fs.FS, prefix string) (*model.Snapshot, error) {
	start := time.Now()
	artifacts, err := walker.Walk(fsys, prefix)
	if err != nil {
		return nil, err
	}

	bench := Bench(artifacts)
	general := General(artifacts)
	comparison := Comparison(artifacts)
	summarize.Fill(bench, comparison)

	snapshot := &model.Snapshot{
		ID:             uuid.NewString(),
		GitShortCommit: prometheusx.GitShortCommit,
		Version:        version.Version,
		GeneratedAt:    time.Now().UTC(),
		Bench:          bench,
		General:        general,
		Comparison:     comparison,
	}

	aggregationDuration.Observe(time.Since(start).Seconds())
	log.Info("aggregation complete", "id", snapshot.ID,
		"artifacts", len(artifacts), "vpns", len(bench),
		"elapsed", time.Since(start))
	return snapshot, nil
}
