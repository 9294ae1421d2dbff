// (c) 2024 Carl Kingsford <carlk@cs.cmu.edu>.
package main

import (
	"fmt"
	"log"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"monogrammedchalk.com/goofy/internal/eval"
	"monogrammedchalk.com/goofy/sink"
)

const versionStr = "0.1"

// Options stores the command's global options, the way the teacher's
// GlitterOptions bundles glitter's entire configuration surface. There is
// no persisted configuration file here — spec.md §6 calls the interpreter's
// state non-persisted, and the flags below are the only surface there is.
type Options struct {
	Verbose     bool
	StdoutTrace bool
	ShowHelp    bool
	ShowVersion bool
	GivenFiles  []string
}

var opts Options

func init() {
	getopt.BoolVarLong(&opts.Verbose, "verbose", 'v', "dump the variable/function stacks on error")
	getopt.BoolVarLong(&opts.StdoutTrace, "stdout-trace", 'o', "print the action trace to stdout instead of driving a real HID backend")
	getopt.BoolVarLong(&opts.ShowHelp, "help", 'h', "show usage and quit")
	getopt.BoolVarLong(&opts.ShowVersion, "version", 0, "print version and quit")
	getopt.SetParameters("SCRIPT")
}

func printBanner() {
	fmt.Fprintf(os.Stderr, "goofy version %s\n", versionStr)
}

func main() {
	log.SetPrefix("goofy: ")
	log.SetFlags(0)

	getopt.Parse()
	opts.GivenFiles = getopt.Args()

	if opts.ShowVersion {
		printBanner()
		os.Exit(0)
	}
	if opts.ShowHelp || len(opts.GivenFiles) != 1 {
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	f, err := os.Open(opts.GivenFiles[0])
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	var act sink.ActionSink
	if opts.StdoutTrace {
		act = sink.Trace{W: os.Stdout}
	} else {
		act = sink.Null{}
	}

	var runErr error
	if opts.Verbose {
		var dump string
		runErr, dump = eval.RunDebug(f, act)
		if dump != "" {
			fmt.Fprintln(os.Stderr, dump)
		}
	} else {
		runErr = eval.Run(f, act)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
