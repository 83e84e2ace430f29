// Package scenario defines the JSON file format shared by tools/classgen
// (which emits class hierarchies for load testing) and cmd/dispatch-inspect
// (which loads one, drives sends against it, and reports dispatch state).
// This mirrors the teacher's split between tools/dataset_gen (emits plain
// newline-separated keys) and bench (consumes them); a class hierarchy
// needs more structure than a flat key list, hence JSON rather than a
// line-oriented format.
//
// © 2025 msgdispatch authors. MIT License.
package scenario

import (
	"encoding/json"
	"fmt"
	"io"
)

// ClassDef describes one class in the hierarchy. Super must name an
// already-defined class (or be empty for a root).
type ClassDef struct {
	Name    string      `json:"name"`
	Super   string      `json:"super,omitempty"`
	Methods []MethodDef `json:"methods,omitempty"`
}

// MethodDef describes one method implementation. Body selects a canned
// implementation shape (dispatch-inspect understands a small fixed set;
// see cmd/dispatch-inspect/impl.go), since a JSON file cannot carry an
// actual function value.
type MethodDef struct {
	Name  string `json:"name"`
	Types string `json:"types,omitempty"`
	Body  string `json:"body,omitempty"` // "echo", "counter"; anything else is a no-op
}

// SendDef describes one simulated message send: look up Selector on
// Receiver's class Repeat times (concurrently across Concurrency
// goroutines, default 1), discarding results except for counting
// hit/miss/forward outcomes.
type SendDef struct {
	Receiver    string `json:"receiver"`
	Selector    string `json:"selector"`
	Types       string `json:"types,omitempty"`
	Repeat      int    `json:"repeat,omitempty"`
	Concurrency int    `json:"concurrency,omitempty"`
}

// File is the top-level JSON document.
type File struct {
	Classes []ClassDef `json:"classes"`
	Sends   []SendDef  `json:"sends,omitempty"`
}

// Encode writes f to w as indented JSON.
func Encode(w io.Writer, f *File) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// Decode reads a File from r.
func Decode(r io.Reader) (*File, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("scenario: decode: %w", err)
	}
	return &f, nil
}
