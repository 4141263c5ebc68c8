package walker_test

import (
	"testing"
	"testing/fstest"

	"github.com/meshbench/meshbench/internal/walker"
)

func TestWalk(t *testing.T) {
	fsys := fstest.MapFS{
		"WireGuard/baseline/nodeA/ping.json": &fstest.MapFile{
			Data: []byte(`{"status":"success","data":{}}`),
		},
		"WireGuard/baseline/tc_settings.json": &fstest.MapFile{
			Data: []byte(`{"alias":"baseline","settings":null}`),
		},
		"README.md": &fstest.MapFile{Data: []byte("not an artifact")},
		"WireGuard/baseline/nodeA/broken.json": &fstest.MapFile{
			Data: []byte(`{"status":`),
		},
	}

	artifacts, err := walker.Walk(fsys, "data/results")
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}
	if len(artifacts) != 2 {
		t.Fatalf("expected 2 artifacts, got %d", len(artifacts))
	}

	// fs.WalkDir yields lexical order, so the artifact list is stable.
	first := artifacts[0]
	if first.Path != "data/results/WireGuard/baseline/nodeA/ping.json" {
		t.Errorf("unexpected first path: %s", first.Path)
	}
	want := []string{"data", "results", "WireGuard", "baseline", "nodeA", "ping.json"}
	if len(first.Segments) != len(want) {
		t.Fatalf("unexpected segments: %v", first.Segments)
	}
	for i := range want {
		if first.Segments[i] != want[i] {
			t.Errorf("segment %d: got %q, want %q", i, first.Segments[i], want[i])
		}
	}
}

func TestWalk_EmptyPrefix(t *testing.T) {
	fsys := fstest.MapFS{
		"Tinc/nodeX/ping.json": &fstest.MapFile{
			Data: []byte(`{"status":"success","data":{}}`),
		},
	}
	artifacts, err := walker.Walk(fsys, "")
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}
	if len(artifacts) != 1 {
		t.Fatalf("expected 1 artifact, got %d", len(artifacts))
	}
	if len(artifacts[0].Segments) != 3 {
		t.Errorf("unexpected segments: %v", artifacts[0].Segments)
	}
}
