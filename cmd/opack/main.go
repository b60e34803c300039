package main

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"

	"github.com/lanikai/opack/internal/config"
	"github.com/lanikai/opack/internal/ident"
	"github.com/lanikai/opack/internal/logging"
	"github.com/lanikai/opack/internal/pack"
)

// Exit codes. Packing failures use the code carried by *pack.Error.
const (
	exitOK     = 0
	exitHelp   = 1
	exitConfig = 1
	exitUsage  = 2
	exitOutput = 2
)

type options struct {
	output   string
	config   string
	seed     string
	ignore   []string
	maxDepth int
	strict   bool
	quiet    bool
	help     bool
	version  bool
}

func newFlagSet(o *options) *flag.FlagSet {
	fs := flag.NewFlagSet("opack", flag.ContinueOnError)
	fs.StringVarP(&o.output, "output", "o", "", "Output file")
	fs.StringVarP(&o.config, "config", "c", "", "TOML config file")
	fs.StringVar(&o.seed, "seed", "first", "Directory prefix seed: first or own")
	fs.StringArrayVar(&o.ignore, "ignore", nil, "Extra ignore pattern")
	fs.IntVar(&o.maxDepth, "max-depth", 0, "Maximum directory nesting")
	fs.BoolVar(&o.strict, "strict", false, "Fail on identifier collisions")
	fs.BoolVarP(&o.quiet, "quiet", "q", false, "Only log warnings and errors")
	fs.BoolVarP(&o.help, "help", "h", false, "Print usage information and exit")
	fs.BoolVarP(&o.version, "version", "v", false, "Print version information and exit")
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// applyFlags copies explicitly given flags and positional inputs over c.
func applyFlags(c *config.Config, fs *flag.FlagSet, o *options) {
	if fs.Changed("output") {
		c.Output = o.output
	}
	if fs.Changed("seed") {
		c.Seed = o.seed
	}
	if fs.Changed("ignore") {
		c.Ignore = o.ignore
	}
	if fs.Changed("max-depth") {
		c.MaxDepth = o.maxDepth
	}
	if fs.Changed("strict") {
		c.Strict = o.strict
	}
	if fs.Changed("quiet") {
		c.Quiet = o.quiet
	}
	if fs.NArg() > 0 {
		c.Inputs = fs.Args()
	}
}

// run executes the command line in args. Help goes to stderr, generated
// code to stdout unless -o is given, and diagnostics to loggers derived
// from base.
func run(args []string, stdout, stderr io.Writer, base *logging.Logger) int {
	log := base.WithTag("opack")
	packLog := base.WithTag("pack")

	if len(args) == 0 {
		help(stderr)
		return exitHelp
	}

	var o options
	fs := newFlagSet(&o)
	if err := fs.Parse(args); err != nil {
		log.Error("%v (see --help)", err)
		return exitUsage
	}
	if o.help {
		help(stderr)
		return exitHelp
	}
	if o.version {
		version(stdout)
		return exitOK
	}

	cfg, err := config.Load(o.config)
	if err != nil {
		log.Error("%v", err)
		return exitConfig
	}
	applyFlags(&cfg, fs, &o)
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		return exitConfig
	}
	if cfg.Quiet {
		for _, l := range []*logging.Logger{log, packLog} {
			if l.Level > logging.Warn {
				l.Level = logging.Warn
			}
		}
	}

	out := stdout
	var outFile *os.File
	if cfg.Output != "" {
		outFile, err = os.Create(cfg.Output)
		if err != nil {
			log.Error("Could not open output file: %v", err)
			return exitOutput
		}
		out = outFile
	}

	err = generate(out, cfg, packLog)
	if outFile != nil {
		if cerr := outFile.Close(); err == nil && cerr != nil {
			err = &pack.Error{Kind: pack.OutputError, Path: cfg.Output, Err: cerr}
		}
		if err != nil {
			// A partial file would only break the build later.
			os.Remove(cfg.Output)
		}
	}
	if err != nil {
		log.Error("%v", err)
		return exitCode(err)
	}
	return exitOK
}

func generate(out io.Writer, cfg config.Config, log *logging.Logger) error {
	bw := bufio.NewWriter(out)
	p := pack.New(bw, pack.Options{
		Seed:     pack.SeedMode(cfg.Seed),
		Ignore:   cfg.Ignore,
		MaxDepth: cfg.MaxDepth,
		Strict:   cfg.Strict,
		Log:      log,
	})
	if err := p.Run(cfg.Inputs); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return &pack.Error{Kind: pack.OutputError, Err: errors.Wrap(err, "write generated code")}
	}
	return nil
}

func exitCode(err error) int {
	var pe *pack.Error
	if errors.As(err, &pe) {
		return pe.ExitCode()
	}
	var ce *ident.CollisionError
	if errors.As(err, &ce) {
		return exitConfig
	}
	return exitOutput
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, logging.DefaultLogger))
}
