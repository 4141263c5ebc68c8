// Package persistence archives aggregated snapshots to disk.
package persistence

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"path"
	"time"

	"github.com/meshbench/meshbench/pkg/bench/model"
)

// ArchiveFile is the file where we save an aggregated snapshot.
type ArchiveFile struct {
	// Path is the full path of the written file.
	Path string

	writer io.WriteCloser
	fp     *os.File
}

func newArchiveFile(datadir string, snapshot *model.Snapshot) (*ArchiveFile, error) {
	timestamp := snapshot.GeneratedAt
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	dir := path.Join(datadir, "snapshots", timestamp.Format("2006/01/02"))
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, err
	}
	filepath := path.Join(dir, "snapshot-"+
		timestamp.Format("20060102T150405.000000000Z")+"."+snapshot.ID+".json.gz")
	fp, err := os.OpenFile(filepath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, err
	}
	writer, err := gzip.NewWriterLevel(fp, gzip.BestSpeed)
	if err != nil {
		fp.Close()
		return nil, err
	}
	return &ArchiveFile{
		Path:   filepath,
		writer: writer,
		fp:     fp,
	}, nil
}

// WriteSnapshot archives snapshot under datadir and returns the written
// file's metadata.
func WriteSnapshot(datadir string, snapshot *model.Snapshot) (*ArchiveFile, error) {
	file, err := newArchiveFile(datadir, snapshot)
	if err != nil {
		return nil, err
	}
	if err := file.write(snapshot); err != nil {
		file.Close()
		return nil, err
	}
	if err := file.Close(); err != nil {
		return nil, err
	}
	return file, nil
}

// write writes a JSON representation of snapshot to this file.
func (af *ArchiveFile) write(snapshot *model.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	_, err = af.writer.Write(data)
	return err
}

// Close closes the gzip writer and the file.
func (af *ArchiveFile) Close() error {
	err := af.writer.Close()
	if err != nil {
		af.fp.Close()
		return err
	}
	return af.fp.Close()
}
