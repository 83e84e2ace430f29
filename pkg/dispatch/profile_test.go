package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONLProfileSinkRecordsLookups(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONLProfileSink(&buf)
	r := newTestRuntime(WithProfileSink(sink))

	class := NewClass("Widget", nil)
	r.AddMethodList(class, MethodList{{Name: "area", Imp: noopImp}})
	sel := r.Table().Register("area", "")
	obj := &testObject{class: class}

	r.Lookup(context.Background(), obj, sel)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one profile record, got %d: %q", len(lines), buf.String())
	}
	var rec profileRecord
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("failed to decode profile record: %v", err)
	}
	if rec.Selector != "area" {
		t.Errorf("recorded selector = %q, want area", rec.Selector)
	}
}

func TestNoopProfileSinkDoesNothing(t *testing.T) {
	var s noopProfileSink
	s.RecordLookup("foo", "", nil) // must not panic even with a nil slot
}
