package dispatch

// MemoryStats snapshots pool occupancy, the Go rendering of the original's
// dtable_bytes global counter and log_selector_memory_usage/
// log_dtable_memory_usage stderr dumps (§5 of SPEC_FULL.md's supplemented
// features). Also feeds the dispatch_dtable_bytes Prometheus gauge when
// metrics are enabled.
type MemoryStats struct {
	DtableCount    int64
	DtableBytes    int64
	SlotCount      int64
	SlotBytes      int64
	TypeNodeCount  int64
	TypeNodeBytes  int64
	SelectorBuckets int
}

// MemoryStats returns a point-in-time snapshot of pool occupancy.
func (r *Runtime) MemoryStats() MemoryStats {
	r.table.mu.Lock()
	buckets := len(r.table.buckets)
	r.table.mu.Unlock()

	return MemoryStats{
		DtableCount:     r.table.dtables.Count(),
		DtableBytes:     r.table.dtables.Bytes(),
		SlotCount:       r.table.slots.Count(),
		SlotBytes:       r.table.slots.Bytes(),
		TypeNodeCount:   r.table.typeNodes.Count(),
		TypeNodeBytes:   r.table.typeNodes.Bytes(),
		SelectorBuckets: buckets,
	}
}

// publishDtableBytes pushes the current pool byte total to the metrics
// sink. Called after mutations that change pool occupancy meaningfully
// (method-list registration); cheap enough to call unconditionally since
// the no-op sink is the default.
func (r *Runtime) publishDtableBytes() {
	r.metrics.setDtableBytes(r.table.dtables.Bytes() + r.table.slots.Bytes() + r.table.typeNodes.Bytes())
}
