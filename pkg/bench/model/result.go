// Package model contains the data structures produced by the benchmark
// aggregation pipeline and consumed by the dashboard.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorType discriminates the failure detail carried by a RunError.
type ErrorType string

const (
	// ErrorTypeCmdOut reports a failed external command invocation. Its
	// details carry the command's stdout, stderr and exit code.
	ErrorTypeCmdOut = ErrorType("CmdOut")

	// ErrorTypeClan reports a structured domain error raised by the
	// benchmark harness, with message, description and location.
	ErrorTypeClan = ErrorType("ClanError")

	// ErrorTypeNotRun marks a test slot that should have produced a result
	// but has none. It is synthesized during aggregation and never read
	// from disk.
	ErrorTypeNotRun = ErrorType("NotRun")
)

// RunError is the failure detail of one benchmark test. The shape of
// Details depends on Type: CmdOutError for CmdOut, ClanError for ClanError
// and NotRunDetails for NotRun.
type RunError struct {
	Type     ErrorType       `json:"type"`
	Details  json.RawMessage `json:"details,omitempty"`
	FilePath string          `json:"filePath,omitempty"`
}

// CmdOutError is the detail of a failed external command invocation.
type CmdOutError struct {
	Cmd        []string `json:"cmd,omitempty"`
	Stdout     string   `json:"stdout"`
	Stderr     string   `json:"stderr"`
	ReturnCode int      `json:"returncode"`
	Msg        string   `json:"msg,omitempty"`
}

// ClanError is the detail of a structured harness error.
type ClanError struct {
	Message     string `json:"msg"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

// NotRunDetails is the detail of a synthesized NotRun error.
type NotRunDetails struct {
	Reason string `json:"reason"`
}

// TestMetadata is optional execution context recorded by the benchmark
// harness alongside a test result.
type TestMetadata struct {
	DurationS     float64           `json:"duration_s,omitempty"`
	Retries       int               `json:"retries,omitempty"`
	SourceMachine string            `json:"source_machine,omitempty"`
	TargetMachine string            `json:"target_machine,omitempty"`
	ServiceLogs   map[string]string `json:"service_logs,omitempty"`
}

// Result is the outcome of one benchmark test for one (VPN, profile,
// machine, test kind) combination. Exactly one of Value and Error is
// meaningful, discriminated by OK.
type Result[T any] struct {
	OK    bool
	Value T
	Error *RunError
	Meta  *TestMetadata
}

// Ok returns a successful Result carrying v.
func Ok[T any](v T, meta *TestMetadata) *Result[T] {
	return &Result[T]{OK: true, Value: v, Meta: meta}
}

// Err returns a failed Result carrying e.
func Err[T any](e *RunError, meta *TestMetadata) *Result[T] {
	return &Result[T]{Error: e, Meta: meta}
}

// NotRun returns a synthesized failure marking a test that never produced
// a result for a machine known to have participated in the run.
func NotRun[T any](machine string) *Result[T] {
	details, err := json.Marshal(NotRunDetails{
		Reason: fmt.Sprintf(
			"Test not run for %s (benchmark may have stopped before this test)",
			machine),
	})
	if err != nil {
		// Marshalling a flat struct cannot fail.
		panic(err)
	}
	return &Result[T]{Error: &RunError{Type: ErrorTypeNotRun, Details: details}}
}

type okJSON[T any] struct {
	OK    bool          `json:"ok"`
	Value T             `json:"value"`
	Meta  *TestMetadata `json:"meta,omitempty"`
}

type errJSON struct {
	OK    bool          `json:"ok"`
	Error *RunError     `json:"error"`
	Meta  *TestMetadata `json:"meta,omitempty"`
}

// MarshalJSON implements json.Marshaler. The serialized form is the tagged
// union the dashboard branches on: {"ok":true,"value":...} or
// {"ok":false,"error":...}.
func (r *Result[T]) MarshalJSON() ([]byte, error) {
	if r.OK {
		return json.Marshal(okJSON[T]{OK: true, Value: r.Value, Meta: r.Meta})
	}
	return json.Marshal(errJSON{OK: false, Error: r.Error, Meta: r.Meta})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Result[T]) UnmarshalJSON(b []byte) error {
	var probe struct {
		OK bool `json:"ok"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}
	if probe.OK {
		var ok okJSON[T]
		if err := json.Unmarshal(b, &ok); err != nil {
			return err
		}
		*r = Result[T]{OK: true, Value: ok.Value, Meta: ok.Meta}
		return nil
	}
	var e errJSON
	if err := json.Unmarshal(b, &e); err != nil {
		return err
	}
	*r = Result[T]{Error: e.Error, Meta: e.Meta}
	return nil
}

// Envelope is the on-disk wrapper around every per-machine and per-run
// benchmark artifact. tc_settings.json is the one file without it.
type Envelope struct {
	Status    string          `json:"status"`
	Data      json.RawMessage `json:"data"`
	ErrorType ErrorType       `json:"error_type"`
	Error     json.RawMessage `json:"error"`
	Meta      *TestMetadata   `json:"meta"`
}

const (
	// StatusSuccess tags a successful artifact envelope.
	StatusSuccess = "success"
	// StatusError tags a failed artifact envelope.
	StatusError = "error"
)

// ErrUnknownStatus is returned by Wrap for artifacts whose envelope status
// is missing or unrecognized. Such artifacts are dropped entirely, they do
// not become Err results.
var ErrUnknownStatus = errors.New("unknown artifact status")

// Wrap converts a raw artifact payload into a Result. filePath is recorded
// on failed results so the dashboard can point at the offending artifact.
func Wrap[T any](raw []byte, filePath string) (*Result[T], error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	switch env.Status {
	case StatusSuccess:
		var value T
		if err := json.Unmarshal(env.Data, &value); err != nil {
			return nil, err
		}
		return Ok(value, env.Meta), nil
	case StatusError:
		return Err[T](&RunError{
			Type:     env.ErrorType,
			Details:  env.Error,
			FilePath: filePath,
		}, env.Meta), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, env.Status)
	}
}
