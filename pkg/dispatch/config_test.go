package dispatch

import (
	"testing"
	"unsafe"

	"github.com/prometheus/client_golang/prometheus"
)

func TestWithMetricsRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newTestRuntime(WithMetrics(reg))

	if _, ok := r.metrics.(*promMetrics); !ok {
		t.Fatalf("expected *promMetrics sink when WithMetrics is set, got %T", r.metrics)
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if len(mfs) == 0 {
		t.Error("expected at least the pre-registered collectors to appear in Gather output")
	}
}

func TestDefaultRuntimeUsesNoopMetrics(t *testing.T) {
	r := newTestRuntime()
	if _, ok := r.metrics.(noopMetrics); !ok {
		t.Fatalf("expected noopMetrics sink by default, got %T", r.metrics)
	}
}

func TestWithClassOfOverridesResolution(t *testing.T) {
	class := NewClass("Foo", nil)
	r := newTestRuntime(WithClassOf(func(any) *Class { return class }))

	// A receiver with no Class() method at all: only the override should
	// be able to resolve it.
	type bareReceiver struct{}
	if got := r.classOf(bareReceiver{}); got != class {
		t.Error("WithClassOf override was not used by the runtime")
	}
}

func TestWithPoolChunkSizeAffectsPools(t *testing.T) {
	const dtableChunk, slotChunk = 2, 3
	r := newTestRuntime(WithPoolChunkSize(dtableChunk, slotChunk))

	for i := 0; i < 5; i++ {
		r.Table().Register(string(rune('a'+i)), "")
	}
	if r.Table().dtables.Count() == 0 {
		t.Error("expected at least one dtable allocated")
	}

	class := NewClass("Foo", nil)
	for i := 0; i < 5; i++ {
		r.AddMethodList(class, MethodList{{Name: string(rune('A' + i)), Imp: noopImp}})
	}

	// 5 slot allocations with a chunk size of 3 must span exactly two
	// chunks (3 + 2), not one chunk sized off dtableChunk (2) nor the
	// pool package's own default of 256 — proving slotChunk actually
	// reached the slot pool rather than being silently dropped.
	var zero Slot
	wantChunks := int64(2)
	wantBytes := wantChunks * int64(slotChunk) * int64(unsafe.Sizeof(zero))
	if got := r.Table().slots.Bytes(); got != wantBytes {
		t.Errorf("slots pool Bytes() = %d, want %d (slotChunkSize not threaded through to the slot pool)", got, wantBytes)
	}
}
