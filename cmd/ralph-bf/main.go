package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/raymyers/ralph-bf/pkg/backend"
	"github.com/raymyers/ralph-bf/pkg/config"
	"github.com/raymyers/ralph-bf/pkg/ir"
	"github.com/raymyers/ralph-bf/pkg/translate"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tebeka/atexit"
)

var version = "0.1.0"

// Command line options
var (
	configPath  string
	tapeSize    int
	backendName string
	dIR         bool // dump IR and stop
	noRun       bool
	verbose     bool
)

// newBackend creates the code generator; tests replace it
var newBackend = backend.New

func main() {
	atexit.Exit(run())
}

func run() int {
	// Program output is buffered; make sure it reaches stdout on every exit path.
	out := bufio.NewWriter(os.Stdout)
	atexit.Register(func() { out.Flush() })

	rootCmd := newRootCmd(os.Stdin, out, os.Stderr)
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// singleDashFlags lists long flags that may also be written with one dash
var singleDashFlags = []string{"dir"}

// normalizeFlags converts single-dash debug flags like -dir to --dir
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		result[i] = arg
		for _, flagName := range singleDashFlags {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
	}
	return result
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ralph-bf [file]",
		Short: "ralph-bf compiles and runs tape-language programs",
		Long: `ralph-bf translates a program for the eight-command tape machine
into block-structured IR in a single pass, compiles the IR with a
pluggable backend and runs it against a zeroed tape.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			filename := args[0]

			cfg, err := config.Load(configPath)
			if err != nil {
				fmt.Fprintf(errOut, "ralph-bf: %v\n", err)
				return err
			}
			if err := applyFlags(cmd.Flags(), &cfg); err != nil {
				fmt.Fprintf(errOut, "ralph-bf: %v\n", err)
				return err
			}

			logger, err := newLogger(errOut, cfg)
			if err != nil {
				fmt.Fprintf(errOut, "ralph-bf: %v\n", err)
				return err
			}

			return compileAndRun(filename, cfg, logger, in, out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file (default ./"+config.DefaultFile+" if present)")
	rootCmd.Flags().IntVar(&tapeSize, "tape-size", ir.MinTapeSize, "Number of tape cells")
	rootCmd.Flags().StringVar(&backendName, "backend", backend.DefaultName, "Code generation backend ("+strings.Join(backend.Names(), ", ")+")")
	rootCmd.Flags().BoolVarP(&dIR, "dir", "", false, "Dump IR and stop")
	rootCmd.Flags().BoolVar(&noRun, "no-run", false, "Translate and compile but do not run")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return rootCmd
}

// applyFlags overrides config values with flags given on the command line
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	if flags.Changed("tape-size") {
		cfg.TapeSize = tapeSize
	}
	if flags.Changed("backend") {
		cfg.Backend = backendName
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if dIR {
		cfg.DumpIR = true
	}
	return cfg.Validate()
}

func newLogger(w io.Writer, cfg config.Config) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// compileAndRun drives the whole pipeline for one source file
func compileAndRun(filename string, cfg config.Config, logger *slog.Logger, in io.Reader, out, errOut io.Writer) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "ralph-bf: error reading %s: %v\n", filename, err)
		return err
	}

	prog, err := translate.Translate(src, translate.Options{
		Name:     programName(filename),
		TapeSize: cfg.TapeSize,
		Logger:   logger,
	})
	if err != nil {
		var wf *translate.WellFormednessError
		if errors.As(err, &wf) {
			fmt.Fprintf(errOut, "ralph-bf: %s:%v\n", filename, wf)
		} else {
			fmt.Fprintf(errOut, "ralph-bf: %s: %v\n", filename, err)
		}
		return err
	}

	if cfg.DumpIR {
		if err := dumpIR(filename, prog, errOut); err != nil {
			return err
		}
	}
	// -dir prints the IR and stops, like the other dump flags
	if dIR {
		ir.NewPrinter(out).PrintProgram(prog)
		return nil
	}

	rt := backend.NewStreamRuntime(in, out)
	b, err := newBackend(cfg.Backend, rt)
	if err != nil {
		fmt.Fprintf(errOut, "ralph-bf: %v\n", err)
		return err
	}

	entry, err := b.Compile(prog)
	if err != nil {
		fmt.Fprintf(errOut, "ralph-bf: %s: %v\n", filename, err)
		return err
	}
	logger.Debug("compiled", "backend", cfg.Backend, "program", prog.Name)
	if noRun {
		return nil
	}

	status, runErr := entry(backend.NewTape(cfg.TapeSize))
	if err := rt.Flush(); err != nil {
		fmt.Fprintf(errOut, "ralph-bf: writing output: %v\n", err)
		return err
	}
	if runErr != nil {
		fmt.Fprintf(errOut, "ralph-bf: %s: runtime error: %v\n", filename, runErr)
		return runErr
	}
	logger.Debug("finished", "program", prog.Name, "status", status)
	return nil
}

// dumpIR writes the IR next to the source file
func dumpIR(filename string, prog *ir.Program, errOut io.Writer) error {
	outputFilename := irOutputFilename(filename)

	outFile, err := os.Create(outputFilename)
	if err != nil {
		fmt.Fprintf(errOut, "ralph-bf: error creating %s: %v\n", outputFilename, err)
		return err
	}
	defer outFile.Close()

	ir.NewPrinter(outFile).PrintProgram(prog)
	return nil
}

// irOutputFilename returns the output filename for the IR dump
// input.bf -> input.ir
func irOutputFilename(filename string) string {
	for _, ext := range []string{".bf", ".b"} {
		if strings.HasSuffix(filename, ext) {
			return filename[:len(filename)-len(ext)] + ".ir"
		}
	}
	return filename + ".ir"
}

// programName derives the IR program name from the source file name
func programName(filename string) string {
	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		return translate.DefaultName
	}
	return name
}
