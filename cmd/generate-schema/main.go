package main

import (
	"flag"
	"os"

	"github.com/m-lab/go/cloud/bqx"
	"github.com/m-lab/go/rtx"
	"github.com/meshbench/meshbench/pkg/bench/model"

	"cloud.google.com/go/bigquery"
)

var (
	benchRowSchema string
)

func init() {
	flag.StringVar(&benchRowSchema, "benchrow", "/var/spool/datatypes/benchrow.json", "filename to write the bench row schema")
}

func main() {
	flag.Parse()
	// Generate and save the schema for autoloading flattened bench rows.
	row := model.BenchRow{}
	sch, err := bigquery.InferSchema(row)
	rtx.Must(err, "failed to generate bench row schema")
	sch = bqx.RemoveRequired(sch)
	b, err := sch.ToJSONFields()
	rtx.Must(err, "failed to marshal bench row schema")
	err = os.WriteFile(benchRowSchema, b, 0o644)
	rtx.Must(err, "failed to write bench row schema")
}
