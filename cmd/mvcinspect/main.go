package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sghaida/mvc/examples/arena"
	"github.com/sghaida/mvc/inspect"
	"github.com/sghaida/mvc/internal/config"
	"github.com/sghaida/mvc/mvc"
)

// options are the parsed command line flags.
type options struct {
	applyPath string
	outPath   string
	clear     bool
}

// run executes the command and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("mvcinspect", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var opts options
	flags.StringVar(&opts.applyPath, "apply", "", "YAML patch applied to live models before the report")
	flags.StringVar(&opts.outPath, "out", "", "write the report to this file instead of stdout")
	flags.BoolVar(&opts.clear, "clear", false, "reset the registry before the report")

	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() > 0 {
		_, _ = fmt.Fprintln(stderr, "usage: mvcinspect [-apply <patch.yaml>] [-clear] [-out <report.yaml>]")
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "mvcinspect: %v\n", err)
		return 1
	}
	log := newLogger(cfg.Log.Level, cfg.Log.Format, stderr)

	if err := inspectArena(cfg, opts, stdout, log); err != nil {
		log.Error("inspect failed", "error", err)
		return 1
	}
	return 0
}

// inspectArena builds and starts the arena, applies the requested changes and
// emits the report.
func inspectArena(cfg config.Config, opts options, stdout io.Writer, log *slog.Logger) error {
	reg := mvc.NewRegistry(mvc.WithLogger(log), mvc.WithLazyGet(cfg.Registry.LazyGet))
	log.Info("registry ready", "registry", reg.ID(), "players", strings.Join(cfg.Arena.Players, ","))

	session, err := arena.Setup(reg, cfg.Arena.Players)
	if err != nil {
		return err
	}
	session.Start()
	if _, err := arena.BindHUD(reg); err != nil {
		return fmt.Errorf("bind hud: %w", err)
	}

	if opts.applyPath != "" {
		doc, err := os.ReadFile(opts.applyPath)
		if err != nil {
			return fmt.Errorf("read patch: %w", err)
		}
		n, err := inspect.Apply(reg, doc)
		if err != nil {
			return err
		}
		log.Info("patch applied", "path", opts.applyPath, "models", n)
	}

	if opts.clear {
		log.Info("registry cleared", "models", inspect.Clear(reg))
	}

	running := inspect.WithRunning(func() bool { return arena.Running(reg) })
	if opts.outPath == "" {
		return inspect.Write(stdout, reg, running)
	}

	out, err := inspect.Render(reg, running)
	if err != nil {
		return err
	}
	if err := writeReport(opts.outPath, out); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Info("report written", "path", opts.outPath)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
