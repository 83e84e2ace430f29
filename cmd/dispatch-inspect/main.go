package main

// main.go implements the dispatch-inspect CLI: it loads a scenario.File
// (a synthetic class hierarchy plus a set of simulated message sends,
// typically produced by tools/classgen), drives the sends against an
// in-process dispatch.Runtime, and prints the resulting dtable/cache
// state either as pretty text or JSON.
//
// This is a local, no-HTTP analogue of the teacher's arena-cache-inspect,
// which polls a running service's /debug/arena-cache/snapshot endpoint:
// there is no long-running dispatch service to poll here, so this tool
// builds its own Runtime in-process, runs the scenario, and reports on it
// directly. Watch mode is kept for the same "observe behavior settle over
// several rounds" use case, re-running the send list on an interval
// against the same Runtime instead of re-fetching a remote snapshot.
//
// Usage:
//
//	go run ./cmd/dispatch-inspect -in hierarchy.json
//	go run ./cmd/dispatch-inspect -in hierarchy.json -watch -interval 1s
//	go run ./cmd/dispatch-inspect -in hierarchy.json -json
//
// © 2025 msgdispatch authors. MIT License.

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/objcore/msgdispatch/internal/scenario"
	"github.com/objcore/msgdispatch/pkg/dispatch"
)

var version = "dev"

type options struct {
	in       string
	watch    bool
	interval time.Duration
	json     bool
	version  bool
}

func parseFlags() *options {
	opts := &options{}
	flagSet(opts)
	return opts
}

func main() {
	opts := parseFlags()
	if opts.version {
		fmt.Println(version)
		return
	}

	f, err := loadScenario(opts.in)
	if err != nil {
		fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	reg := prometheus.NewRegistry()
	r := dispatch.NewRuntime(dispatch.WithMetrics(reg))

	w, err := buildWorld(r, f)
	if err != nil {
		fatal(err)
	}

	if opts.watch {
		ticker := time.NewTicker(opts.interval)
		defer ticker.Stop()
		for {
			if err := runRound(ctx, r, w, f, reg, opts); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			select {
			case <-ticker.C:
				continue
			case <-ctx.Done():
				return
			}
		}
	}

	if err := runRound(ctx, r, w, f, reg, opts); err != nil {
		fatal(err)
	}
}

func runRound(ctx context.Context, r *dispatch.Runtime, w *world, f *scenario.File, reg *prometheus.Registry, opts *options) error {
	if err := runSends(ctx, r, w, f.Sends); err != nil {
		return err
	}
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	rep := buildReport(r.MemoryStats(), families)

	if opts.json {
		return printJSON(os.Stdout, rep)
	}
	printPretty(os.Stdout, rep)
	return nil
}

func loadScenario(path string) (*scenario.File, error) {
	if path == "" || path == "-" {
		return scenario.Decode(os.Stdin)
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()
	return scenario.Decode(fh)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "dispatch-inspect:", err)
	os.Exit(1)
}
