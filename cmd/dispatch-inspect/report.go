package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	dto "github.com/prometheus/client_model/go"

	"github.com/objcore/msgdispatch/pkg/dispatch"
)

// report is the snapshot dumped after a send round, the local analogue of
// arena-cache-inspect's /debug/arena-cache/snapshot payload.
type report struct {
	Memory  dispatch.MemoryStats `json:"memory"`
	Lookups map[string]float64   `json:"lookups_by_result,omitempty"`
	CacheHits float64            `json:"cache_hits,omitempty"`
	InitWaits float64            `json:"init_waits,omitempty"`
}

func buildReport(mem dispatch.MemoryStats, families []*dto.MetricFamily) report {
	rep := report{Memory: mem, Lookups: map[string]float64{}}
	for _, mf := range families {
		switch mf.GetName() {
		case "dispatch_lookups_total":
			for _, m := range mf.GetMetric() {
				result := "unknown"
				for _, lbl := range m.GetLabel() {
					if lbl.GetName() == "result" {
						result = lbl.GetValue()
					}
				}
				rep.Lookups[result] += m.GetCounter().GetValue()
			}
		case "dispatch_cache_hits_total":
			for _, m := range mf.GetMetric() {
				rep.CacheHits += m.GetCounter().GetValue()
			}
		case "dispatch_init_waits_total":
			for _, m := range mf.GetMetric() {
				rep.InitWaits += m.GetCounter().GetValue()
			}
		}
	}
	return rep
}

func printJSON(w io.Writer, rep report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func printPretty(w io.Writer, rep report) {
	fmt.Fprintf(w, "dtables:     %d (%d bytes)\n", rep.Memory.DtableCount, rep.Memory.DtableBytes)
	fmt.Fprintf(w, "slots:       %d (%d bytes)\n", rep.Memory.SlotCount, rep.Memory.SlotBytes)
	fmt.Fprintf(w, "type nodes:  %d (%d bytes)\n", rep.Memory.TypeNodeCount, rep.Memory.TypeNodeBytes)
	fmt.Fprintf(w, "sel buckets: %d\n", rep.Memory.SelectorBuckets)
	fmt.Fprintf(w, "cache hits:  %.0f\n", rep.CacheHits)
	fmt.Fprintf(w, "init waits:  %.0f\n", rep.InitWaits)

	results := make([]string, 0, len(rep.Lookups))
	for r := range rep.Lookups {
		results = append(results, r)
	}
	sort.Strings(results)
	fmt.Fprintln(w, "lookups:")
	for _, r := range results {
		fmt.Fprintf(w, "  %-8s %.0f\n", r, rep.Lookups[r])
	}
}
