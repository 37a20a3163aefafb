package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

// dqbfFlags is a thin wrapper over flag.FlagSet giving --verbose a -v
// shorthand and --help a -h one, the way crillab-gophersat/main.go binds
// its own flags directly onto plain fields.
type dqbfFlags struct {
	fs *flag.FlagSet

	info        bool
	detectEquiv bool
	verbose     bool
	help        bool
	filename    string
}

func newFlagSet() *dqbfFlags {
	fl := &dqbfFlags{fs: flag.NewFlagSet("dqbfsolver", flag.ContinueOnError)}
	fl.fs.SetOutput(io.Discard)

	fl.fs.BoolVar(&fl.info, "info", false, "print the parsed formula's summary and exit without solving")
	fl.fs.BoolVar(&fl.detectEquiv, "detect-equiv", false, "run equivalence detection over existentials and exit without solving")
	fl.fs.BoolVar(&fl.verbose, "verbose", false, "enable per-iteration diagnostic logging and post-solve model enumeration")
	fl.fs.BoolVar(&fl.verbose, "v", false, "shorthand for --verbose")
	fl.fs.BoolVar(&fl.help, "help", false, "print usage and exit")
	fl.fs.BoolVar(&fl.help, "h", false, "shorthand for --help")

	return fl
}

func (fl *dqbfFlags) Parse(args []string) error {
	if err := fl.fs.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fl.printUsage(os.Stderr)
		return err
	}
	if rest := fl.fs.Args(); len(rest) > 0 {
		fl.filename = rest[0]
	}
	return nil
}

func (fl *dqbfFlags) printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: dqbfsolver <file.dqcir> [--info] [--detect-equiv] [-v|--verbose] [-h|--help]")
	fl.fs.SetOutput(w)
	fl.fs.PrintDefaults()
	fl.fs.SetOutput(io.Discard)
}
