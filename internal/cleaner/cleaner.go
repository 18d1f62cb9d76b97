package cleaner

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"cattywampus/internal/language"
	"cattywampus/internal/logging"
	"cattywampus/internal/media"
	"cattywampus/internal/media/atomicparsley"
	"cattywampus/internal/media/mkvmerge"
	"cattywampus/internal/media/mkvpropedit"
	"cattywampus/internal/options"
	"cattywampus/internal/subtitles"
)

// Tools holds the resolved executable paths. An empty path means the tool
// was not found and files needing it are skipped.
type Tools struct {
	MKVMerge      string
	MKVPropEdit   string
	AtomicParsley string
}

// Settings is the subset of the resolved options the cleaner consults.
type Settings struct {
	DryRun                    bool
	OnlyMKV                   bool
	OnlyMP4                   bool
	Language                  language.Preference
	SetDefaultSubTrack        bool
	ForceDefaultFirstSubTrack bool
	ClearAudioTrackNames      bool
}

// SettingsFrom extracts Settings from a resolved record.
func SettingsFrom(rec options.Record) Settings {
	return Settings{
		DryRun:                    rec.DryRun.Value,
		OnlyMKV:                   rec.OnlyMKV.Value,
		OnlyMP4:                   rec.OnlyMP4.Value,
		Language:                  rec.Language.Value,
		SetDefaultSubTrack:        rec.SetDefaultSubTrack.Value,
		ForceDefaultFirstSubTrack: rec.ForceDefaultFirstSubTrack.Value,
		ClearAudioTrackNames:      rec.ClearAudioTrackNames.Value,
	}
}

// Report is the outcome of a run.
type Report struct {
	Results []Result
	Summary Summary
}

// Cleaner processes input paths sequentially.
type Cleaner struct {
	settings Settings
	tools    Tools
	run      media.Runner
	logger   *slog.Logger
	now      func() time.Time
}

// New constructs a Cleaner. A nil runner executes tools through os/exec.
func New(settings Settings, tools Tools, run media.Runner, logger *slog.Logger) *Cleaner {
	if run == nil {
		run = media.ExecRunner
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Cleaner{
		settings: settings,
		tools:    tools,
		run:      run,
		logger:   logger,
		now:      time.Now,
	}
}

// Run processes every path in order. Files are dispatched by extension and
// directories are walked recursively. Run stops early only when ctx is
// cancelled, returning the partial report together with ctx.Err().
func (c *Cleaner) Run(ctx context.Context, paths []string) (Report, error) {
	var report Report
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		info, err := os.Stat(path)
		if err != nil {
			c.logger.Warn("path does not exist", logging.String(logging.FieldPath, path))
			continue
		}
		if info.IsDir() {
			results, ok, err := c.processFolder(ctx, path)
			report.add(results...)
			report.Summary.AddFolder(ok)
			if err != nil {
				return report, err
			}
			continue
		}
		if result, ok := c.processFile(ctx, path); ok {
			report.add(result)
		}
	}
	return report, ctx.Err()
}

func (r *Report) add(results ...Result) {
	for _, result := range results {
		r.Results = append(r.Results, result)
		r.Summary.Add(result)
	}
}

func (c *Cleaner) processFile(ctx context.Context, path string) (Result, bool) {
	switch media.KindOf(path) {
	case media.KindMKV:
		return c.processMKV(ctx, path), true
	case media.KindMP4:
		return c.processMP4(ctx, path), true
	default:
		return Result{}, false
	}
}

// processFolder walks root in lexical order. ok is false when root is
// missing, is not a directory, or the walk failed outright; files handled
// before a failure are still returned.
func (c *Cleaner) processFolder(ctx context.Context, root string) ([]Result, bool, error) {
	logger := c.logger.With(logging.String("folder", root))
	info, err := os.Stat(root)
	switch {
	case err != nil:
		logger.Error("folder does not exist")
		return nil, false, nil
	case !info.IsDir():
		logger.Error("path is not a directory")
		return nil, false, nil
	}

	var results []Result
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn("skipping unreadable entry",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
			)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !media.KindOf(path).Allowed(c.settings.OnlyMKV, c.settings.OnlyMP4) {
			return nil
		}
		if result, ok := c.processFile(ctx, path); ok {
			results = append(results, result)
		}
		return nil
	})
	if walkErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(walkErr, ctxErr) {
			return results, false, ctxErr
		}
		logger.Error("error processing folder", logging.Error(walkErr))
		return results, false, nil
	}
	return results, true, nil
}

func (c *Cleaner) logFileSize(logger *slog.Logger, path string) {
	info, err := os.Stat(path)
	if err != nil {
		logger.Debug("file size unavailable", logging.Error(err))
		return
	}
	logger.Debug("file size", logging.String("size", humanize.Bytes(uint64(info.Size()))))
}

func (c *Cleaner) processMKV(ctx context.Context, path string) Result {
	result := Result{Path: path, Kind: media.KindMKV, DryRun: c.settings.DryRun}
	switch {
	case c.tools.MKVPropEdit == "":
		c.logger.Info("mkvpropedit not found, skipping", logging.String(logging.FieldPath, path))
		result.Status = StatusSkipped
		return result
	case c.tools.MKVMerge == "":
		c.logger.Info("mkvmerge not found, skipping", logging.String(logging.FieldPath, path))
		result.Status = StatusSkipped
		return result
	}

	start := c.now()
	logger := c.logger.With(logging.String(logging.FieldPath, path))
	logger.Info("processing MKV file")
	c.logFileSize(logger, path)

	logger.Debug("mkvmerge command",
		logging.String("command", media.FormatCommand(c.tools.MKVMerge, "-J", path)),
	)
	identifyStart := c.now()
	ident, err := mkvmerge.Identify(ctx, c.run, c.tools.MKVMerge, path)
	if err != nil {
		logger.Error("error reading metadata", logging.Error(err))
		ident = mkvmerge.Identification{}
	} else {
		logger.Debug("metadata collection took", logging.Duration("duration", c.now().Sub(identifyStart)))
	}
	logMKVMetadata(logger, ident)

	edit := mkvpropedit.Edit{Path: path}
	switch {
	case ident.HasAudio() && c.settings.ClearAudioTrackNames:
		edit.ClearAudioName = true
		logger.Debug("clearing audio track names")
	case ident.HasAudio():
		logger.Debug("audio tracks found but clearing disabled, preserving audio track names")
	default:
		logger.Debug("no audio tracks found, skipping audio track options")
	}
	if c.settings.SetDefaultSubTrack || c.settings.ForceDefaultFirstSubTrack {
		edit.Subtitles = subtitles.SelectDefaults(ident.Tracks, c.settings.Language, c.settings.ForceDefaultFirstSubTrack, logger)
	}

	args := mkvpropedit.Args(edit)
	logger.Debug("mkvpropedit command", logging.String("command", media.FormatCommand(c.tools.MKVPropEdit, args...)))
	return c.execute(ctx, logger, result, start, "mkvpropedit", func(ctx context.Context) error {
		return mkvpropedit.Apply(ctx, c.run, c.tools.MKVPropEdit, args)
	})
}

func (c *Cleaner) processMP4(ctx context.Context, path string) Result {
	result := Result{Path: path, Kind: media.KindMP4, DryRun: c.settings.DryRun}
	if c.tools.AtomicParsley == "" {
		c.logger.Info("AtomicParsley not found, skipping", logging.String(logging.FieldPath, path))
		result.Status = StatusSkipped
		return result
	}

	start := c.now()
	logger := c.logger.With(logging.String(logging.FieldPath, path))
	logger.Info("processing MP4 file")
	c.logFileSize(logger, path)

	logger.Debug("AtomicParsley command",
		logging.String("command", media.FormatCommand(c.tools.AtomicParsley, atomicparsley.InspectArgs(path)...)),
	)
	inspectStart := c.now()
	meta, err := atomicparsley.Inspect(ctx, c.run, c.tools.AtomicParsley, path)
	if err != nil {
		logger.Error("error reading metadata", logging.Error(err))
		logger.Info("no metadata found in file")
		result.Status = StatusNoMetadata
		result.Duration = c.now().Sub(start)
		return result
	}
	logger.Debug("metadata collection took", logging.Duration("duration", c.now().Sub(inspectStart)))
	logger.Debug("original MP4 metadata",
		logging.String("title", meta.TitleText()),
		logging.String("description", meta.DescriptionText()),
	)

	args := atomicparsley.CleanArgs(path)
	logger.Debug("AtomicParsley command", logging.String("command", media.FormatCommand(c.tools.AtomicParsley, args...)))
	return c.execute(ctx, logger, result, start, "AtomicParsley", func(ctx context.Context) error {
		return atomicparsley.Clean(ctx, c.run, c.tools.AtomicParsley, args)
	})
}

// execute runs the edit, or only logs it in dry-run mode, and fills in the
// result's status and duration.
func (c *Cleaner) execute(ctx context.Context, logger *slog.Logger, result Result, start time.Time, tool string, edit func(context.Context) error) Result {
	if c.settings.DryRun {
		logger.Info("dry run: would execute " + tool + " command")
		logger.Info("processing finished (dry run)")
		result.Status = StatusProcessed
		result.Duration = c.now().Sub(start)
		return result
	}

	editStart := c.now()
	if err := edit(ctx); err != nil {
		logger.Error("error processing file", logging.Error(err))
		result.Status = StatusErrored
		result.Err = err
		result.Duration = c.now().Sub(start)
		return result
	}
	logger.Debug("command took", logging.Duration("duration", c.now().Sub(editStart)))
	logger.Info("processing finished")
	result.Status = StatusProcessed
	result.Duration = c.now().Sub(start)
	return result
}

func logMKVMetadata(logger *slog.Logger, ident mkvmerge.Identification) {
	logger.Debug("original MKV metadata",
		logging.String("segment_title", ident.Container.Properties.Title),
	)
	counters := map[string]int{}
	for _, track := range ident.Tracks {
		counters[track.Type]++
		index := counters[track.Type]
		switch track.Type {
		case mkvmerge.TypeVideo, mkvmerge.TypeAudio:
			logger.Debug(track.Type+" track",
				logging.Int("index", index),
				logging.String("name", track.Properties.TrackName),
			)
		case mkvmerge.TypeSubtitles:
			lang := track.EffectiveLanguage()
			logger.Debug("subtitles track",
				logging.Int("index", index),
				logging.String("name", track.Properties.TrackName),
				logging.String("language", track.Properties.Language),
				logging.String("language_ietf", track.Properties.LanguageIETF),
				logging.String("language_name", language.DisplayName(lang)),
			)
		}
	}
}
