// Package walker discovers benchmark artifacts in a data directory.
package walker

import (
	"encoding/json"
	"io/fs"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var artifactsDiscovered = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "meshbench_walker_artifacts_total",
		Help: "Number of files seen while walking the data directory.",
	},
	[]string{"status"},
)

// Artifact is one discovered JSON result file. Segments are the virtual
// path segments the classifier operates on, including the data-directory
// prefix so that segment counts match the layout contract.
type Artifact struct {
	Path     string
	Segments []string
	Content  []byte
}

// Walk reads every .json file under fsys and returns the artifact list in
// lexical path order. prefix is the virtual path of the walked root; its
// segments are prepended to every artifact's segments. Unreadable files and
// files that are not valid JSON are skipped with a warning.
func Walk(fsys fs.FS, prefix string) ([]Artifact, error) {
	prefixSegments := splitSegments(prefix)
	var artifacts []Artifact
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".json") {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			log.Warn("cannot read artifact", "path", p, "error", err)
			artifactsDiscovered.WithLabelValues("unreadable").Inc()
			return nil
		}
		if !json.Valid(content) {
			log.Warn("artifact is not valid JSON", "path", p)
			artifactsDiscovered.WithLabelValues("invalid").Inc()
			return nil
		}
		artifactsDiscovered.WithLabelValues("ok").Inc()
		segments := make([]string, 0, len(prefixSegments)+strings.Count(p, "/")+1)
		segments = append(segments, prefixSegments...)
		segments = append(segments, strings.Split(p, "/")...)
		artifacts = append(artifacts, Artifact{
			Path:     path.Join(prefix, p),
			Segments: segments,
			Content:  content,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func splitSegments(p string) []string {
	p = strings.Trim(path.Clean("/"+p), "/")
	if p == "" || p == "." {
		return nil
	}
	return strings.Split(p, "/")
}
