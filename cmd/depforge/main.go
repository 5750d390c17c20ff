//go:build windows

// Command depforge drives the fetch/configure/build/install lifecycle for
// a small set of C++ dependencies, grounded on the mob project's CLI
// entry point (original_source) and on the teacher's flag-based
// cmd/testctl and cmd/configgen mains rather than its server-style
// cmd/miragectl.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/danmuck/depforge/internal/buildconf"
	"github.com/danmuck/depforge/internal/buildlog"
	"github.com/danmuck/depforge/internal/tasks"
)

type taskList []string

func (t *taskList) String() string { return strings.Join(*t, ",") }
func (t *taskList) Set(v string) error {
	*t = append(*t, v)
	return nil
}

func main() {
	var (
		configPath = flag.String("config", "depforge.toml", "path to the build configuration file")
		clean      = flag.String("clean", "", "comma-separated clean stages to run first: redownload,reextract,reconfigure,rebuild,all")
		verbose    = flag.Bool("verbose", false, "enable verbose tool output and debug logging")
		noColor    = flag.Bool("no-color", false, "disable colorized log output")
		dry        = flag.Bool("dry", false, "print what would run without spawning any process")
		metrics    = flag.Bool("metrics", false, "dump collected metrics in Prometheus text format after running")
	)
	var tasksFlag taskList
	flag.Var(&tasksFlag, "task", "task to run (repeatable; defaults to every registered task in dependency order)")
	flag.Parse()

	cfg, err := buildconf.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "depforge: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Verbose = true
	}
	if *dry {
		cfg.Dry = true
	}

	buildlog.Configure(cfg.Verbose, *noColor)
	buildlog.RegisterMetrics()

	cleanStages, err := tasks.ParseClean(*clean)
	if err != nil {
		fmt.Fprintf(os.Stderr, "depforge: %v\n", err)
		os.Exit(1)
	}

	reg := registerTasks(cfg)

	names := []string(tasksFlag)
	if len(names) == 0 {
		names = reg.Names()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runErr := run(ctx, reg, names, cleanStages)

	if *metrics {
		if err := dumpMetrics(); err != nil {
			fmt.Fprintf(os.Stderr, "depforge: dump metrics: %v\n", err)
		}
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "depforge: %v\n", runErr)
		os.Exit(1)
	}
}

// registerTasks builds every known task and registers it in dependency
// order, so a run with no -task flags (which follows reg.Names()) builds
// bsa's dependencies (SPEC_FULL.md §4.4) before bsa itself.
func registerTasks(cfg buildconf.Config) *tasks.Registry {
	reg := tasks.NewRegistry()
	factories := map[string]func() tasks.Task{
		"binary_io":  func() tasks.Task { return tasks.NewBinaryIO(cfg, cfg.Verbose, cfg.Dry) },
		"directxtex": func() tasks.Task { return tasks.NewDirectXTex(cfg, cfg.Verbose, cfg.Dry) },
		"mmio":       func() tasks.Task { return tasks.NewMMIO(cfg, cfg.Verbose, cfg.Dry) },
		"zlib":       func() tasks.Task { return tasks.NewZlib(cfg, cfg.Verbose, cfg.Dry) },
		"lz4":        func() tasks.Task { return tasks.NewLZ4(cfg, cfg.Verbose, cfg.Dry) },
		"bsa":        func() tasks.Task { return tasks.NewBSA(cfg, cfg.Verbose, cfg.Dry) },
	}

	for _, name := range taskOrder() {
		_ = reg.Register(factories[name]())
	}
	return reg
}

func run(ctx context.Context, reg *tasks.Registry, names []string, clean tasks.Clean) error {
	for _, name := range names {
		t, err := reg.Resolve(name)
		if err != nil {
			return err
		}

		log := buildlog.New(name)
		cx := buildlog.NewRunContext(log)

		if clean != tasks.CleanNone {
			log.Info().Msgf("cleaning %s (%s)", name, clean)
			start := time.Now()
			err := t.Clean(ctx, cx, clean)
			buildlog.TaskDuration.WithLabelValues(name, "clean").Observe(time.Since(start).Seconds())
			if err != nil {
				return fmt.Errorf("clean %s: %w", name, err)
			}
		}

		log.Info().Msg("fetching")
		start := time.Now()
		err = t.Fetch(ctx, cx)
		buildlog.TaskDuration.WithLabelValues(name, "fetch").Observe(time.Since(start).Seconds())
		if err != nil {
			return fmt.Errorf("fetch %s: %w", name, err)
		}

		if t.Prebuilt() {
			log.Info().Msg("prebuilt, skipping build and install")
			continue
		}

		log.Info().Msg("building and installing")
		start = time.Now()
		err = t.BuildAndInstall(ctx, cx)
		buildlog.TaskDuration.WithLabelValues(name, "build").Observe(time.Since(start).Seconds())
		if err != nil {
			return fmt.Errorf("build %s: %w", name, err)
		}
	}
	return nil
}
