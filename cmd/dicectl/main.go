/*
Dicectl starts an interactive dice expression session.

It reads dice expressions from stdin, one per line, evaluates each against
a seeded random source, and prints the result, its annotated trace, and
the number of random draws spent. The interpreter understands a handful of
REPL verbs (HELP, HISTORY, QUIT) in addition to dice expression syntax.

Usage:

	dicectl [flags]

The flags are:

	-v, --version
		Give the current version of tunadice and then exit.

	-s, --seed SEED
		Seed the random source with SEED instead of process entropy, for a
		reproducible session.

	-c, --command EXPRESSIONS
		Immediately evaluate the given expression(s) at start. Can be
		multiple expressions separated by the ";" character.

	-a, --aliases FILE
		Load a TOML file of "$name" expansions and apply them to every
		expression before parsing. Overrides the config file's alias_file,
		if both are given.

	--config FILE
		Load a TOML config file (see internal/config) supplying defaults
		for seed, alias file, and history capacity. Flags above take
		precedence over anything it sets.

Once a session has started, each line of input is treated as a dice
expression unless it is one of the REPL verbs. Type "HELP" for a summary of
those verbs, or "QUIT" to exit.
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/tunadice"
	"github.com/dekarrin/tunadice/internal/alias"
	"github.com/dekarrin/tunadice/internal/config"
	"github.com/dekarrin/tunadice/internal/history"
	"github.com/dekarrin/tunadice/internal/input"
	"github.com/dekarrin/tunadice/internal/markup"
	"github.com/dekarrin/tunadice/internal/util"
	"github.com/dekarrin/tunadice/internal/version"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the session.
	ExitInitError

	// ExitSessionError indicates an unsuccessful program execution due to
	// an I/O problem while reading commands.
	ExitSessionError
)

var (
	returnCode  = ExitSuccess
	flagVersion = pflag.BoolP("version", "v", false, "Gives the version info")
	flagSeed    = pflag.Int64P("seed", "s", 0, "Seed the random source with this value instead of process entropy")
	flagCommand = pflag.StringP("command", "c", "", "Evaluate the given expression(s) immediately at start, separated by ';'")
	flagAliases = pflag.StringP("aliases", "a", "", "Load a TOML file of alias expansions")
	flagConfig  = pflag.String("config", "", "Load a TOML config file supplying defaults")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg := config.Default()
	if *flagConfig != "" {
		var err error
		cfg, err = config.Load(*flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
	}

	aliasFile := cfg.AliasFile
	if *flagAliases != "" {
		aliasFile = *flagAliases
	}
	var aliasSet alias.Set
	if aliasFile != "" {
		var err error
		aliasSet, err = alias.Load(aliasFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
	}

	seed := cfg.Seed
	seedGiven := cfg.Seed != 0
	pflag.Visit(func(f *pflag.Flag) {
		if f.Name == "seed" {
			seed = *flagSeed
			seedGiven = true
		}
	})
	if !seedGiven {
		seed = time.Now().UnixNano()
	}
	src := tunadice.Seeded(seed)

	log := history.New(cfg.HistoryCapacity)
	color := isatty.IsTerminal(os.Stdout.Fd())

	sess := &session{
		src:     src,
		aliases: aliasSet,
		log:     log,
		color:   color,
		out:     os.Stdout,
	}

	if *flagCommand != "" {
		for _, expr := range strings.Split(*flagCommand, ";") {
			expr = strings.TrimSpace(expr)
			if expr == "" {
				continue
			}
			sess.evaluate(expr)
		}
	}

	reader, err := input.NewInteractiveReader()
	if err != nil {
		reader2 := input.NewDirectReader(os.Stdin)
		sess.run(reader2)
		return
	}
	defer reader.Close()
	sess.run(reader)
}

// commandReader is the subset of input.DirectCommandReader and
// input.InteractiveCommandReader that the REPL loop needs.
type commandReader interface {
	ReadCommand() (string, error)
	AllowBlank(bool)
}

type session struct {
	src     tunadice.Source
	aliases alias.Set
	log     *history.Log
	color   bool
	out     *os.File
}

func (s *session) run(r commandReader) {
	fmt.Fprintf(s.out, "tunadice %s\n", version.Current)
	fmt.Fprintf(s.out, "Type HELP for help, QUIT to exit.\n")

	for {
		line, err := r.ReadCommand()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitSessionError
			return
		}

		switch strings.ToUpper(strings.TrimSpace(line)) {
		case "QUIT":
			return
		case "HELP":
			s.help()
			continue
		case "HISTORY":
			s.history()
			continue
		}

		s.evaluate(line)
	}
}

func (s *session) help() {
	fmt.Fprintln(s.out, "Enter a dice expression, such as '3d6+2' or '4d6kh3'.")
	fmt.Fprintf(s.out, "Supported functions: %s\n", util.MakeTextList(tunadice.SupportedFunctions()))
	fmt.Fprintln(s.out, "REPL verbs:")
	fmt.Fprintln(s.out, "  HELP     show this message")
	fmt.Fprintln(s.out, "  HISTORY  show recent rolls")
	fmt.Fprintln(s.out, "  QUIT     exit the session")
}

func (s *session) history() {
	recs := s.log.Recent(10)
	if len(recs) == 0 {
		fmt.Fprintln(s.out, "(no rolls yet)")
		return
	}

	data := [][]string{{"input", "value", "rolls"}}
	for _, rec := range recs {
		data = append(data, []string{rec.Input, humanize.Comma(rec.Value), fmt.Sprintf("%d", rec.RngCount)})
	}

	table := rosed.Edit("").
		InsertTableOpts(0, data, 72, rosed.Options{TableBorders: true}).
		String()
	fmt.Fprintln(s.out, table)
}

func (s *session) evaluate(line string) {
	expanded, err := s.aliases.Expand(line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return
	}

	expr, err := tunadice.Parse(expanded)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return
	}

	value, trace, rngCount, err := tunadice.Eval(expr, s.src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return
	}

	s.log.Add(line, value, trace, rngCount)

	fmt.Fprintf(s.out, "%s\n", markup.Render(trace, s.color))
	fmt.Fprintf(s.out, "= %s  (%d rolls)\n", humanize.Comma(value), rngCount)
}
