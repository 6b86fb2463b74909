package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/gnana997/renderaudit/pkg/audit"
	"github.com/gnana997/renderaudit/pkg/mcp"
	"github.com/gnana997/renderaudit/pkg/mcplog"
	"github.com/gnana997/renderaudit/pkg/util"
)

const version = "0.1.0-dev"

func main() {
	app := &cli.Command{
		Name:      "renderaudit",
		Usage:     "scan React components for re-render anti-patterns",
		ArgsUsage: "<file-or-directory>",
		Flags:     scanFlags(),
		Action:    runScan,
		Commands: []*cli.Command{
			watchCommand(),
			serveCommand(),
			versionCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			if msg := exitErr.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "renderaudit: %v\n", err)
		os.Exit(2)
	}
}

func scanFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "emit machine-readable JSON instead of formatted text",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "include info-severity findings",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "override include glob patterns",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "override exclude glob patterns",
		},
		&cli.IntFlag{
			Name:  "jobs",
			Usage: "number of parallel workers (0 = auto)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Value: "warn",
			Usage: "log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Value: "text",
			Usage: "log format: text or json",
		},
	}
}

func runScan(_ context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return errors.New("usage: renderaudit [flags] <file-or-directory>")
	}

	logger := buildLogger(cmd)
	cfg, strict := resolveRunConfig(cmd)

	auditor := audit.NewAuditor(cfg.Thresholds, logger)
	result, err := auditor.Run(path, cfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("renderaudit: %v", err), 2)
	}

	reports := result.Reports
	if !strict {
		for i, rep := range reports {
			reports[i] = audit.FilterInfo(rep)
		}
	}

	if cmd.Bool("json") {
		if err := writeJSON(os.Stdout, reports); err != nil {
			return cli.Exit(fmt.Sprintf("renderaudit: %v", err), 2)
		}
	} else {
		printReports(os.Stdout, reports)
	}

	// Info filtering never removes error findings, so the exit contract
	// holds regardless of strict mode.
	if result.HasErrors() {
		return cli.Exit("", 1)
	}
	return nil
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "re-audit files as they change",
		ArgsUsage: "<directory>",
		Flags:     scanFlags(),
		Action:    runWatch,
	}
}

func runWatch(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return errors.New("usage: renderaudit watch [flags] <directory>")
	}

	logger := buildLogger(cmd)
	cfg, strict := resolveRunConfig(cmd)

	auditor := audit.NewAuditor(cfg.Thresholds, logger)
	cache, err := audit.NewReportCache(1024)
	if err != nil {
		return cli.Exit(fmt.Sprintf("renderaudit: %v", err), 2)
	}

	onReport := func(rep audit.FileReport) {
		if !strict {
			rep = audit.FilterInfo(rep)
		}
		printReports(os.Stdout, []audit.FileReport{rep})
	}

	watcher, err := audit.NewWatcher(auditor, cache, cfg, audit.DefaultWatchOptions(), onReport, logger)
	if err != nil {
		return cli.Exit(fmt.Sprintf("renderaudit: %v", err), 2)
	}
	if err := watcher.Start(path); err != nil {
		return cli.Exit(fmt.Sprintf("renderaudit: %v", err), 2)
	}
	defer watcher.Stop()

	fmt.Fprintf(os.Stderr, "watching %s (ctrl-c to stop)\n", path)

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()
	return nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "start the MCP stdio server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "JSONL tool-call log file (empty = disabled)",
			},
			&cli.IntFlag{
				Name:  "cache-size",
				Value: 1024,
				Usage: "max cached per-file reports",
			},
		},
		Action: runServe,
	}
}

func runServe(_ context.Context, cmd *cli.Command) error {
	cfg, _ := resolveRunConfig(cmd)

	logger, err := mcplog.NewLogger(cmd.String("log-file"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("renderaudit: %v", err), 2)
	}
	if logger != nil {
		defer logger.Close()
	}

	cache, err := audit.NewReportCache(cmd.Int("cache-size"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("renderaudit: %v", err), 2)
	}

	auditor := audit.NewAuditor(cfg.Thresholds, util.NewLogger(util.DefaultLoggerConfig()))
	srv := mcp.NewServer(auditor, cache, cfg, logger)
	if err := srv.ServeStdio(); err != nil {
		return cli.Exit(fmt.Sprintf("server error: %v", err), 2)
	}
	return nil
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the version",
		Action: func(_ context.Context, _ *cli.Command) error {
			fmt.Printf("renderaudit %s\n", version)
			return nil
		},
	}
}

func buildLogger(cmd *cli.Command) *slog.Logger {
	return util.NewLogger(util.LoggerConfig{
		Level:  util.LogLevel(cmd.String("log-level")),
		Format: util.LogFormat(cmd.String("log-format")),
		Output: os.Stderr,
	})
}
