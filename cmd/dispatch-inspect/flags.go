package main

import (
	"flag"
	"time"
)

func flagSet(opts *options) {
	flag.StringVar(&opts.in, "in", "", "scenario JSON file to load (default stdin)")
	flag.BoolVar(&opts.watch, "watch", false, "re-run the send list on an interval instead of exiting after one round")
	flag.DurationVar(&opts.interval, "interval", 2*time.Second, "interval between rounds in watch mode")
	flag.BoolVar(&opts.json, "json", false, "print the report as JSON instead of text")
	flag.BoolVar(&opts.version, "version", false, "print version and exit")
	flag.Parse()
}
