// Command helpar runs the helical-parameter analyses on Curves+/Canal output.
//
//	helpar <analysis> [flags] <inputs...> <outputs...>
//
// Run helpar without arguments for the list of analyses, and helpar <analysis> -h
// for the inputs and flags of one of them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/pfx"

	"github.com/gohelix/helix"
	"github.com/gohelix/helix/blocks"
)

// Special value that is to be set using ldflags
// E.g.: go build -ldflags "-X main.builddate=`date -u +%Y-%m-%d:%H:%M:%S%Z`"
var builddate string

type command struct {
	name            string
	positionalUsage string
	shortHelp       string
	nargs           int
	flags           *flag.FlagSet
	run             func(c *command, cfg *blocks.Config) error
}

var (
	flagConfig  string
	flagRestart bool
	flagVerbose bool
	flagPrint   bool
)

var commands = []*command{
	{name: string(blocks.AveragesBlock), positionalUsage: "input.ser output.csv output.jpg", nargs: 3,
		shortHelp: "mean and standard deviation of a helical parameter at each base pair (step)",
		run: func(c *command, cfg *blocks.Config) error {
			return blocks.Averages(c.arg(0), c.arg(1), c.arg(2), cfg)
		}},
	{name: string(blocks.TimeSeriesBlock), positionalUsage: "input.ser output.zip", nargs: 2,
		shortHelp: "series, histograms and autocorrelation of each base pair (step), in a zip file",
		run:       timeSeries},
	{name: string(blocks.AverageStiffnessBlock), positionalUsage: "input.ser output.csv output.jpg", nargs: 3,
		shortHelp: "stiffness constant of a helical parameter at each base pair step",
		run: func(c *command, cfg *blocks.Config) error {
			return blocks.AverageStiffness(c.arg(0), c.arg(1), c.arg(2), cfg)
		}},
	{name: string(blocks.BasePairStiffnessBlock), positionalUsage: "shift.csv slide.csv rise.csv tilt.csv roll.csv twist.csv output.csv output.jpg", nargs: 8,
		shortHelp: "6x6 stiffness matrix of one base pair step",
		run: func(c *command, cfg *blocks.Config) error {
			return blocks.BasePairStiffness(c.six(), c.arg(6), c.arg(7), cfg)
		}},
	{name: string(blocks.SequenceCorrelationBlock), positionalUsage: "input.ser output.csv output.jpg", nargs: 3,
		shortHelp: "correlation of a helical parameter between the base pairs (steps) of a sequence",
		run: func(c *command, cfg *blocks.Config) error {
			return blocks.SequenceCorrelation(c.arg(0), c.arg(1), c.arg(2), cfg)
		}},
	{name: string(blocks.HelParCorrelationBlock), positionalUsage: "p1.csv p2.csv p3.csv p4.csv p5.csv p6.csv output.csv output.jpg", nargs: 8,
		shortHelp: "correlation between six helical parameters of one base pair (step); parameters are taken from the file names",
		run: func(c *command, cfg *blocks.Config) error {
			return blocks.HelParCorrelation(c.six(), [6]helix.Parameter{}, c.arg(6), c.arg(7), cfg)
		}},
	{name: string(blocks.BimodalityBlock), positionalUsage: "input.csv|input.zip output.csv output.jpg", nargs: 3,
		shortHelp: "uni/binormal classification of a helical parameter series",
		run: func(c *command, cfg *blocks.Config) error {
			return blocks.Bimodality(c.arg(0), c.arg(1), c.arg(2), cfg)
		}},
	{name: string(blocks.BIPopulationsBlock), positionalUsage: "epsilC.ser epsilW.ser zetaC.ser zetaW.ser output.csv output.jpg", nargs: 6,
		shortHelp: "BI/BII populations of each nucleotide",
		run: func(c *command, cfg *blocks.Config) error {
			return blocks.BIPopulations(c.arg(0), c.arg(1), c.arg(2), c.arg(3), c.arg(4), c.arg(5), cfg)
		}},
	{name: string(blocks.AlphaGammaBlock), positionalUsage: "alphaC.ser alphaW.ser gammaC.ser gammaW.ser output.csv output.jpg", nargs: 6,
		shortHelp: "canonical alpha/gamma population of each nucleotide",
		run: func(c *command, cfg *blocks.Config) error {
			return blocks.CanonicalAlphaGamma(c.arg(0), c.arg(1), c.arg(2), c.arg(3), c.arg(4), c.arg(5), cfg)
		}},
	{name: string(blocks.PuckeringBlock), positionalUsage: "phaseC.ser phaseW.ser output.csv output.jpg", nargs: 4,
		shortHelp: "sugar pucker populations of each nucleotide",
		run: func(c *command, cfg *blocks.Config) error {
			return blocks.Puckering(c.arg(0), c.arg(1), c.arg(2), c.arg(3), cfg)
		}},
}

func (c *command) arg(i int) string { return c.flags.Arg(i) }

func (c *command) six() [6]string {
	var ret [6]string
	for i := range ret {
		ret[i] = c.arg(i)
	}
	return ret
}

func (c *command) usage() {
	fmt.Fprintf(os.Stderr, "Usage: helpar %s [flags] %s\n\n%s\n\n", c.name, c.positionalUsage, c.shortHelp)
	c.flags.PrintDefaults()
}

func (c *command) setFlags() {
	c.flags = flag.NewFlagSet(c.name, flag.ExitOnError)
	c.flags.StringVar(&flagConfig, "config", "", "YAML file with the properties of the analysis.")
	c.flags.BoolVar(&flagRestart, "restart", false, "Skip the analysis if all its outputs already exist. Overrides the config file.")
	c.flags.BoolVar(&flagVerbose, "verbose", false, "Print progress messages.")
	if c.name == string(blocks.TimeSeriesBlock) {
		c.flags.BoolVar(&flagPrint, "print", false, "Also print a histogram of each base pair (step) to the terminal.")
	}
	c.flags.Usage = c.usage
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: helpar <analysis> [flags] <inputs...> <outputs...>\n\nAnalyses:\n")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-14s %s\n", c.name, c.shortHelp)
	}
	names := make([]string, 0, len(helix.Parameters()))
	for _, p := range helix.Parameters() {
		names = append(names, p.Name())
	}
	fmt.Fprintf(os.Stderr, "\nHelical parameters (helpar_name): %s\n", strings.Join(names, ", "))
	fmt.Fprintf(os.Stderr, "\nThis helpar binary was built at: %s\n", builddate)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	var cmd *command
	for _, c := range commands {
		if c.name == strings.ToLower(os.Args[1]) {
			cmd = c
		}
	}
	if cmd == nil {
		usage()
		os.Exit(1)
	}
	cmd.setFlags()
	cmd.flags.Parse(os.Args[2:])
	if cmd.flags.NArg() != cmd.nargs {
		cmd.usage()
		os.Exit(1)
	}

	cfg := blocks.DefaultConfig()
	if flagConfig != "" {
		var err error
		if cfg, err = blocks.LoadConfig(flagConfig); err != nil {
			fail(err)
		}
	}
	if flagRestart {
		cfg.Restart = true
	}
	blocks.Verbose = flagVerbose

	if err := cmd.run(cmd, cfg); err != nil {
		fail(err)
	}
}

// exitCode is 2 for bad configurations, 3 for unreadable inputs, 4 for columns
// that could not be modeled, 5 for outputs that could not be written and 1 for anything else.
func exitCode(err error) int {
	var ce *helix.ConfigurationError
	var oe *helix.OutputError
	var fe helix.FileError
	var me helix.ColumnError
	switch {
	case errors.As(err, &ce):
		return 2
	case errors.As(err, &oe):
		return 5
	case errors.As(err, &fe):
		return 3
	case errors.As(err, &me):
		return 4
	}
	return 1
}

func fail(err error) {
	log.Println(pfx.Err(err))
	os.Exit(exitCode(err))
}

func timeSeries(c *command, cfg *blocks.Config) error {
	if err := blocks.TimeSeries(c.arg(0), c.arg(1), cfg); err != nil {
		return err
	}
	if !flagPrint {
		return nil
	}
	t, _, err := blocks.ReadSeries(c.arg(0), cfg)
	if err != nil {
		return err
	}
	bins := int(cfg.Bins)
	if bins == 0 {
		bins = 10
	}
	for i := 0; i < t.Cols(); i++ {
		data := helix.Finite(t.Col(i))
		if len(data) == 0 {
			continue
		}
		fmt.Printf("%s (column %d):\n", t.Name(i), t.Position(i))
		if err := histogram.Fprint(os.Stdout, histogram.Hist(bins, data), histogram.Linear(5)); err != nil {
			return pfx.Err(err)
		}
	}
	return nil
}
