package main

// classgen.go is a tiny helper utility to generate deterministic synthetic
// class hierarchies for standalone benchmarking of msgdispatch (outside
// `go test`), the same role tools/dataset_gen plays for arena-cache's
// uint64 key datasets: it emits a scenario.File that cmd/dispatch-inspect
// (or bench) can load directly.
//
// Usage:
//
//	go run ./tools/classgen -classes 200 -depth 6 -methods 8 -seed 42 -out hierarchy.json
//
// Flags:
//
//	-classes   total number of classes to generate (default 100)
//	-depth     maximum inheritance chain depth (default 5)
//	-methods   methods defined per class (default 4)
//	-seed      RNG seed (default current time)
//	-out       output file (default stdout)
//
// © 2025 msgdispatch authors. MIT License.

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/objcore/msgdispatch/internal/scenario"
)

var bodies = [...]string{"", "echo", "counter"}

func main() {
	var (
		numClasses = flag.Int("classes", 100, "number of classes to generate")
		maxDepth   = flag.Int("depth", 5, "maximum inheritance chain depth")
		numMethods = flag.Int("methods", 4, "methods defined per class")
		seedVal    = flag.Int64("seed", time.Now().UnixNano(), "PRNG seed")
		outPath    = flag.String("out", "", "output file (default stdout)")
	)
	flag.Parse()

	if *numClasses <= 0 {
		fmt.Fprintln(os.Stderr, "classgen: -classes must be positive")
		os.Exit(1)
	}

	rnd := rand.New(rand.NewSource(*seedVal))
	f := generate(rnd, *numClasses, *maxDepth, *numMethods)

	var out *os.File
	if *outPath == "" {
		out = os.Stdout
	} else {
		var err error
		out, err = os.Create(*outPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "classgen: cannot create file:", err)
			os.Exit(1)
		}
		defer out.Close()
	}

	if err := scenario.Encode(out, f); err != nil {
		fmt.Fprintln(os.Stderr, "classgen: encode:", err)
		os.Exit(1)
	}
}

// generate builds a forest of inheritance chains, each no deeper than
// maxDepth, and a round of sends exercising both shallow (root) and deep
// (leaf) lookups so a consumer sees both cache-friendly and chain-walk-heavy
// traffic.
func generate(rnd *rand.Rand, numClasses, maxDepth, numMethods int) *scenario.File {
	f := &scenario.File{Classes: make([]scenario.ClassDef, 0, numClasses)}

	var chainTail string
	depthInChain := 0
	names := make([]string, 0, numClasses)

	for i := 0; i < numClasses; i++ {
		name := fmt.Sprintf("Class%04d", i)
		super := ""
		if chainTail != "" && depthInChain < maxDepth {
			super = chainTail
			depthInChain++
		} else {
			depthInChain = 0
		}

		methods := make([]scenario.MethodDef, numMethods)
		for m := 0; m < numMethods; m++ {
			methods[m] = scenario.MethodDef{
				Name: fmt.Sprintf("method%d", m),
				Body: bodies[rnd.Intn(len(bodies))],
			}
		}

		f.Classes = append(f.Classes, scenario.ClassDef{Name: name, Super: super, Methods: methods})
		names = append(names, name)
		chainTail = name
	}

	for i := 0; i < numClasses/10+1; i++ {
		recv := names[rnd.Intn(len(names))]
		f.Sends = append(f.Sends, scenario.SendDef{
			Receiver:    recv,
			Selector:    fmt.Sprintf("method%d", rnd.Intn(numMethods)),
			Repeat:      1000,
			Concurrency: 1 + rnd.Intn(8),
		})
	}

	return f
}
