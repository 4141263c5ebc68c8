// meshbench-export aggregates a benchmark data directory and writes the
// resulting snapshot as JSON, for offline inspection or archival.
package main

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/m-lab/go/rtx"
	"github.com/meshbench/meshbench/internal/aggregate"
	"github.com/meshbench/meshbench/internal/persistence"
	"github.com/meshbench/meshbench/pkg/bench/model"
)

var (
	flagDataDir = flag.String("datadir", "./data/results", "Directory holding benchmark artifacts")
	flagOutput  = flag.String("output", "", "Path to write the snapshot to (default: stdout)")
	flagRows    = flag.Bool("rows", false, "Write flattened archival rows instead of the nested snapshot")
	flagArchive = flag.String("archive", "", "Also archive the snapshot (gzipped) under this directory")
)

func main() {
	flag.Parse()

	prefix := filepath.ToSlash(filepath.Clean(*flagDataDir))
	snapshot, err := aggregate.Load(os.DirFS(*flagDataDir), prefix)
	rtx.Must(err, "failed to aggregate benchmark data")

	var payload any = snapshot
	if *flagRows {
		payload = model.Flatten(snapshot)
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	rtx.Must(err, "failed to marshal snapshot")
	data = append(data, '\n')

	if *flagOutput != "" {
		err = os.WriteFile(*flagOutput, data, 0o644)
		rtx.Must(err, "failed to write output file")
	} else {
		_, err = os.Stdout.Write(data)
		rtx.Must(err, "failed to write to stdout")
	}

	if *flagArchive != "" {
		file, err := persistence.WriteSnapshot(*flagArchive, snapshot)
		rtx.Must(err, "failed to archive snapshot")
		log.Info("snapshot archived", "path", file.Path)
	}
}
