package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/config"
	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/cycles"
	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/export"
	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/graph"
	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/logging"
	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/model"
	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/output"
	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/scan"
	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/watcher"
	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/web"
)

func main() {
	flags := pflag.NewFlagSet("slnscan", pflag.ContinueOnError)
	flags.StringP("start", "s", ".", "Start path: a directory to scan or a single .sln file")
	flags.Bool("report", false, "Print a colorized summary report instead of JSON")
	flags.StringP("output", "o", "-", "Write the JSON document to a file instead of stdout")
	flags.Int("workers", 0, "Solution-parsing worker pool size (0 = default)")
	flags.Bool("web", false, "Serve scan results over HTTP instead of printing")
	flags.Int("port", 8080, "Port for the web server (only used with --web)")
	flags.Bool("watch", false, "Rescan when solution or project files change (requires --web)")
	flags.String("verbosity", "", "Log level: debug, info, warn, error")
	flags.CountP("verbose", "v", "Increase log verbosity (repeatable)")

	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// A bare positional argument also names the start path
	if args := flags.Args(); len(args) > 0 {
		cfg.Start = args[0]
	}

	logging.Setup(cfg.Verbosity, cfg.VerboseCnt)

	ctx := context.Background()

	set, diags, refLoops, err := runScan(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.WebMode {
		serve(ctx, cfg, set, diags, refLoops)
		return
	}

	if cfg.Report {
		output.PrintScanReport(set, diags, refLoops)
		return
	}

	if err := writeJSON(cfg.Output, set); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, d := range diags {
		logging.Warn("diagnostic", "kind", string(d.Kind), "path", d.Path, "detail", d.Message)
	}
}

// runScan performs one full discovery and derives the cycle report.
func runScan(ctx context.Context, cfg *config.Config) (*model.SolutionSet, []model.Diagnostic, []cycles.ProjectCycle, error) {
	scanner := scan.NewScanner(cfg.Workers)
	set, diags, err := scanner.Discover(ctx, cfg.Start)
	if err != nil {
		return nil, nil, nil, err
	}

	refLoops := cycles.FindProjectCycles(graph.FromSolutionSet(set))
	return set, diags, refLoops, nil
}

// writeJSON writes the solution set document to dest, "-" meaning stdout.
func writeJSON(dest string, set *model.SolutionSet) error {
	if dest == "" || dest == "-" {
		return export.WriteTo(os.Stdout, set)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return export.WriteTo(f, set)
}

// serve publishes the scan result over HTTP, optionally rescanning when
// watched files change.
func serve(ctx context.Context, cfg *config.Config, set *model.SolutionSet, diags []model.Diagnostic, refLoops []cycles.ProjectCycle) {
	server := web.NewServer()
	server.SetResult(set, diags, refLoops)
	_ = server.PublishScanStatus("ready", "scan complete", set.SolutionCount(), len(diags))

	if cfg.Watch {
		go watchAndRescan(ctx, cfg, server)
	}

	if err := server.Start(cfg.Port); err != nil {
		logging.Fatal("web server failed", "error", err)
	}
}

// watchAndRescan reruns the scan whenever the watcher reports a relevant,
// debounced batch of changes.
func watchAndRescan(ctx context.Context, cfg *config.Config, server *web.Server) {
	fw, err := watcher.NewFileWatcher(cfg.Start)
	if err != nil {
		logging.Error("cannot watch for changes", "error", err)
		return
	}
	if err := fw.Start(ctx); err != nil {
		logging.Error("cannot watch for changes", "error", err)
		return
	}

	debouncer := watcher.NewDebouncer(fw.Events(), 500*time.Millisecond, 5*time.Second)
	debouncer.Start(ctx)

	for event := range debouncer.Output() {
		logging.Info("change detected, rescanning", "files", len(event.Paths))
		_ = server.PublishScanStatus("scanning", "rescanning after file changes", 0, 0)

		set, diags, refLoops, err := runScan(ctx, cfg)
		if err != nil {
			logging.Error("rescan failed", "error", err)
			_ = server.PublishScanStatus("error", err.Error(), 0, 0)
			continue
		}

		server.SetResult(set, diags, refLoops)
		_ = server.PublishScanStatus("ready", "scan complete", set.SolutionCount(), len(diags))
	}
}
