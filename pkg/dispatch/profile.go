package dispatch

import (
	"encoding/json"
	"io"
	"sync"
)

// ProfileSink is the optional profiling collaborator from §6: the core
// writes lookup records to it but never reads them back. The original
// appends `{module_id, callsite_id, impl_ptr}` binary triples plus a text
// symbol table to a log file; this is reshaped as JSON Lines so no
// separate reader tool is needed to make sense of the output.
type ProfileSink interface {
	RecordLookup(name, types string, slot *Slot)
}

type noopProfileSink struct{}

func (noopProfileSink) RecordLookup(string, string, *Slot) {}

// profileRecord is one JSONL line written by JSONLProfileSink.
type profileRecord struct {
	Selector string `json:"selector"`
	Types    string `json:"types,omitempty"`
	Version  uint64 `json:"version"`
}

// JSONLProfileSink appends one JSON object per lookup to w. Safe for
// concurrent use; callers are responsible for closing w.
type JSONLProfileSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONLProfileSink wraps w as a profiling sink.
func NewJSONLProfileSink(w io.Writer) *JSONLProfileSink {
	return &JSONLProfileSink{enc: json.NewEncoder(w)}
}

// RecordLookup appends one record. Encoding errors are swallowed — a
// profiling sink must never perturb dispatch behavior (§6: "that log is
// not consumed by the core").
func (s *JSONLProfileSink) RecordLookup(name, types string, slot *Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.enc.Encode(profileRecord{Selector: name, Types: types, Version: slot.Version()})
}
