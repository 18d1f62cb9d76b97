package main

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"cattywampus/internal/cleaner"
	"cattywampus/internal/config"
	"cattywampus/internal/deps"
	"cattywampus/internal/history"
	"cattywampus/internal/logging"
	"cattywampus/internal/options"
)

var (
	beginBanner  = strings.Repeat("*", 20) + " BEGINNING RUN " + strings.Repeat("*", 20)
	dryRunBanner = strings.Repeat("*", 23) + " DRY RUN " + strings.Repeat("*", 23)
	endBanner    = strings.Repeat("*", 20) + " ENDING RUN " + strings.Repeat("*", 23)
)

func runClean(ctx context.Context, env *environment, cli options.CLIValues, configPath string) error {
	started := env.now()

	rec, err := resolveOptions(env, cli, configPath)
	if err != nil {
		return err
	}
	if err := options.Validate(rec); err != nil {
		return err
	}

	runID := logging.NewRunID()
	logger, closer := logging.New(logging.Options{
		Level:          logging.FromNumeric(rec.LogLevel.Value),
		FilePath:       rec.LogFilePath.Value,
		Console:        rec.Stdout.Value,
		ConsoleOnly:    rec.StdoutOnly.Value,
		ConsoleWriter:  env.stdout,
		FallbackWriter: env.stderr,
		RunID:          runID,
	})
	defer closer.Close()

	unlock, err := acquireRunLock(ctx, rec.ConfigPath.Value, logger)
	if err != nil {
		return err
	}
	defer unlock()

	var listed []string
	if rec.InputFile.Value != "" {
		listed, err = cleaner.ReadPathList(rec.InputFile.Value, logger)
		if err != nil {
			logger.Error("cannot read input file", logging.Error(err))
			return err
		}
	}
	collection := cleaner.CollectPaths(rec.Paths.Value, listed, rec.OnlyMKV.Value, rec.OnlyMP4.Value)

	logger.Info(beginBanner)
	if rec.DryRun.Value {
		logger.Info(dryRunBanner)
	}
	logger.Debug("runtime",
		logging.String("version", version),
		logging.String("go", runtime.Version()),
		logging.String("platform", runtime.GOOS+"/"+runtime.GOARCH),
	)
	collection.Log(logger, rec.InputFile.Value)
	logOptions(logger, rec)

	tools, ok := discoverTools(ctx, env, rec, logger)
	if !ok {
		logging.Critical(logger, "neither mkvtoolnix nor AtomicParsley found, exiting")
		return nil
	}

	report, runErr := cleaner.New(cleaner.SettingsFrom(rec), tools, env.runner, logger).Run(ctx, collection.Paths)
	report.Summary.Log(logger)

	finished := env.now()
	if rec.History.Value {
		recordHistory(ctx, rec, runID, started, finished, report, logger)
	}

	logger.Info("total runtime", logging.String("duration", cleaner.Seconds(finished.Sub(started))))
	logger.Info(endBanner)
	return runErr
}

func logOptions(logger *slog.Logger, rec options.Record) {
	if rec.DetectedLocale != "" {
		logger.Debug("detected system locale", logging.String("locale", rec.DetectedLocale))
	}
	for _, entry := range rec.Entries() {
		logger.Debug("option",
			logging.String("name", entry.Key),
			logging.String("value", entry.Value),
			logging.String("source", string(entry.Source)),
		)
	}
}

// discoverTools resolves the external tools. ok is false when none of them
// is available.
func discoverTools(ctx context.Context, env *environment, rec options.Record, logger *slog.Logger) (cleaner.Tools, bool) {
	statuses := env.resolver.CheckBinaries([]deps.Requirement{
		{Name: deps.MKVPropEdit, Configured: rec.MKVPropEditPath.Value, Description: "MKV metadata editing"},
		{Name: deps.MKVMerge, Configured: rec.MKVMergePath.Value, Description: "MKV track identification"},
		{Name: deps.AtomicParsley, Configured: rec.AtomicParsleyPath.Value, Description: "MP4 metadata editing"},
	})

	logger.Debug("PATH", logging.String("value", os.Getenv("PATH")))

	var tools cleaner.Tools
	found := false
	for _, status := range statuses {
		toolLogger := logger.With(logging.String(logging.FieldTool, status.Name))
		if !status.Available {
			toolLogger.Debug("tool not found", logging.String("detail", status.Detail))
			continue
		}
		found = true
		toolLogger.Debug("tool found",
			logging.String(logging.FieldPath, status.Command),
			logging.String("source", status.Origin),
		)
		if v := deps.Version(ctx, env.runner, status.Command); v != "" {
			toolLogger.Info("tool version", logging.String("version", v))
		}
		switch status.Name {
		case deps.MKVMerge:
			tools.MKVMerge = status.Command
		case deps.MKVPropEdit:
			tools.MKVPropEdit = status.Command
		case deps.AtomicParsley:
			tools.AtomicParsley = status.Command
		}
	}
	return tools, found
}

func recordHistory(ctx context.Context, rec options.Record, runID string, started, finished time.Time, report cleaner.Report, logger *slog.Logger) {
	path := config.HistoryPathFor(rec.ConfigPath.Value)
	store, err := history.Open(path)
	if err != nil {
		logger.Warn("run history unavailable", logging.String(logging.FieldPath, path), logging.Error(err))
		return
	}
	defer store.Close()

	run, files := history.FromReport(runID, started, finished, rec.DryRun.Value, report)
	if err := store.RecordRun(context.WithoutCancel(ctx), run, files); err != nil {
		logger.Warn("failed to record run history", logging.Error(err))
		return
	}
	logger.Debug("run recorded", logging.String(logging.FieldPath, path), logging.Int("files", len(files)))
}
