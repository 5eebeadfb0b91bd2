package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golang/glog"

	"gofunge/funge"
	"gofunge/tui"
)

var (
	std       = flag.String("std", "befunge93", "language standard to execute, only befunge93 is supported")
	perf      = flag.Bool("perf", false, "print a performance report to stderr after the run")
	debug     = flag.Bool("debug", false, "step through the program in an interactive debugger")
	inputPath = flag.String("input", "", "read program input from this file instead of stdin")
)

func main() {
	flag.Parse()
	defer glog.Flush()
	if *std != "befunge93" {
		fmt.Fprintln(os.Stderr, "only Befunge-93 is currently supported")
		os.Exit(1)
	}
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] program.bf\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		glog.Exitln(err)
	}

	var in io.Reader = os.Stdin
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			glog.Exitln(err)
		}
		defer f.Close()
		in = f
	}
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	engine, err := funge.New(string(source), bufio.NewReader(in), out)
	if err != nil {
		glog.Exitln(err)
	}

	if *debug {
		if err := tui.Run(engine); err != nil {
			glog.Exitln(err)
		}
		return
	}

	start := time.Now()
	runErr := engine.Run()
	out.Flush()
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(1)
	}
	if *perf {
		elapsed := time.Since(start)
		fmt.Fprintf(os.Stderr, "executed %d blocks (%d compiled) in %v\n",
			engine.Steps(), engine.Compiles(), elapsed)
	}
}
