package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/reinka/oncall-scheduler/internal/availcsv"
	"github.com/reinka/oncall-scheduler/internal/config"
	"github.com/reinka/oncall-scheduler/internal/exportcsv"
	"github.com/reinka/oncall-scheduler/internal/icalexport"
	"github.com/reinka/oncall-scheduler/internal/report"
	"github.com/reinka/oncall-scheduler/internal/telemetry"
	"github.com/reinka/oncall-scheduler/pkg/notify"
	"github.com/reinka/oncall-scheduler/pkg/roster"
)

// exit codes reported to the shell, one per failure class.
const (
	exitSuccess    = 0
	exitConfig     = 1
	exitInfeasible = 2
	exitTimeout    = 3
	exitIO         = 4
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(exitConfig)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var code int
	switch os.Args[1] {
	case "validate":
		code = runValidate(ctx, os.Args[2:])
	case "generate":
		code = runGenerate(ctx, os.Args[2:])
	default:
		usage()
		code = exitConfig
	}
	os.Exit(code)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: roster-scheduler validate --config PATH")
	fmt.Fprintln(os.Stderr, "       roster-scheduler generate --config PATH [--output-dir DIR]")
}

func runValidate(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the YAML roster configuration")
	fs.Parse(args)

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "error: --config is required")
		return exitConfig
	}

	cfg, records, logger, exit, ok := load(*configPath)
	if !ok {
		return exit
	}

	problems := roster.Validate(validationInput(cfg, records))
	report.PrintProblems(problems)

	if roster.HasFatal(problems) {
		logger.Error("validation failed", "problems", len(problems))
		return exitConfig
	}
	report.PrintValidationSummary(cfg.Team, cfg.Roles, cfg.Schedule, cfg.Constraints)
	logger.Info("validation passed", "warnings", len(problems))
	return exitSuccess
}

func runGenerate(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the YAML roster configuration")
	outputDir := fs.String("output-dir", "", "directory to write outputs into, overriding files.* in config")
	fs.Parse(args)

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "error: --config is required")
		return exitConfig
	}

	cfg, records, logger, exit, ok := load(*configPath)
	if !ok {
		return exit
	}
	applyOutputDir(cfg, *outputDir)

	problems := roster.Validate(validationInput(cfg, records))
	if roster.HasFatal(problems) {
		report.PrintProblems(problems)
		logger.Error("generate refused: validation failed")
		return exitConfig
	}

	notifier := notify.NewNotifier(cfg.Files.SlackWebhookURL, logger)
	metrics := &roster.Metrics{
		Variables:     telemetry.ModelVariablesTotal,
		Constraints:   telemetry.ModelConstraintsTotal,
		SolveDuration: telemetry.SolveDuration,
		BlocksSolved:  telemetry.BlocksSolvedTotal,
	}

	runStart := time.Now()
	shifts, warnings, err := roster.Run(ctx, cfg.Team, cfg.Roles, records, cfg.Schedule,
		cfg.Rules, cfg.Constraints, cfg.Solver.Seed, cfg.Solver.Timeout, metrics)
	telemetry.RunDuration.Observe(time.Since(runStart).Seconds())
	if err != nil {
		return handleRunError(ctx, err, cfg, notifier, logger)
	}
	report.PrintProblems(warnings)

	if err := exportcsv.Write(cfg.Files.ScheduleCSV, shifts); err != nil {
		logger.Error("writing schedule csv", "error", err)
		return exitIO
	}
	if cfg.Files.ICalOutput != "" {
		if err := icalexport.Write(cfg.Files.ICalOutput, shifts); err != nil {
			logger.Error("writing ical output", "error", err)
			return exitIO
		}
	}

	report.PrintSchedule(shifts)
	if err := writeMetricsFile(cfg.Files.ScheduleCSV); err != nil {
		logger.Warn("writing metrics snapshot", "error", err)
	}
	if err := notifier.PostGenerated(ctx, shifts, cfg.Schedule.NumBlocks, cfg.Schedule.WeeksPerBlock); err != nil {
		logger.Warn("slack notification failed", "error", err)
	}

	logger.Info("generate succeeded", "shifts", len(shifts))
	return exitSuccess
}

func handleRunError(ctx context.Context, err error, cfg *config.Config, notifier *notify.Notifier, logger *slog.Logger) int {
	var schedErr *roster.SchedulingError
	if !errors.As(err, &schedErr) {
		logger.Error("generate failed", "error", err)
		return exitIO
	}

	if notifyErr := notifier.PostFailed(ctx, schedErr.Kind, schedErr); notifyErr != nil {
		logger.Warn("slack failure notice failed", "error", notifyErr)
	}

	switch schedErr.Kind {
	case roster.KindCapacity:
		report.PrintCapacityError(schedErr)
		return exitConfig
	case roster.KindInfeasible:
		report.PrintInfeasible(cfg.Rules, cfg.Constraints, len(cfg.Team), cfg.Schedule.WeeksPerBlock, len(cfg.Roles))
		return exitInfeasible
	case roster.KindTimeout:
		report.PrintTimeout(int(cfg.Solver.Timeout.Seconds()))
		return exitTimeout
	case roster.KindConfig:
		logger.Error("generate failed", "error", schedErr)
		return exitConfig
	default:
		logger.Error("generate failed", "error", schedErr)
		return exitIO
	}
}

// load reads and resolves the config, loads the availability CSV, and sets
// up the run's logger. ok is false when the caller should return exit
// immediately.
func load(path string) (cfg *config.Config, records []roster.UnavailabilityRecord, logger *slog.Logger, exit int, ok bool) {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading config: %v\n", err)
		var schedErr *roster.SchedulingError
		if errors.As(err, &schedErr) && schedErr.Kind == roster.KindIO {
			return nil, nil, nil, exitIO, false
		}
		return nil, nil, nil, exitConfig, false
	}

	logger = telemetry.NewLogger(cfg.LogFormat, cfg.LogLevel)

	records, err = availcsv.Load(cfg.Files.AvailabilityCSV, cfg.Location)
	if err != nil {
		logger.Error("loading availability csv", "error", err)
		return nil, nil, nil, exitIO, false
	}

	return cfg, records, logger, exitSuccess, true
}

func validationInput(cfg *config.Config, records []roster.UnavailabilityRecord) roster.ValidationInput {
	return roster.ValidationInput{
		Team:        cfg.Team,
		Roles:       cfg.Roles,
		Schedule:    cfg.Schedule,
		Rules:       cfg.Rules,
		Constraints: cfg.Constraints,
		Records:     records,
	}
}

func applyOutputDir(cfg *config.Config, dir string) {
	if dir == "" {
		return
	}
	if cfg.Files.ScheduleCSV != "" {
		cfg.Files.ScheduleCSV = filepath.Join(dir, filepath.Base(cfg.Files.ScheduleCSV))
	}
	if cfg.Files.ICalOutput != "" {
		cfg.Files.ICalOutput = filepath.Join(dir, filepath.Base(cfg.Files.ICalOutput))
	}
}

// writeMetricsFile dumps the run's Prometheus metrics as a text snapshot
// alongside the schedule CSV. scheduleCSVPath == "" disables this (no
// output directory is known).
func writeMetricsFile(scheduleCSVPath string) error {
	if scheduleCSVPath == "" {
		return nil
	}
	f, err := os.Create(scheduleCSVPath + ".metrics.prom")
	if err != nil {
		return err
	}
	defer f.Close()
	return telemetry.WriteMetrics(f)
}
