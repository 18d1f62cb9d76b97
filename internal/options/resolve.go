package options

import (
	"log/slog"
	"strings"

	"cattywampus/internal/config"
	"cattywampus/internal/language"
	"cattywampus/internal/logging"
)

// CLIValues carries the flags the user set explicitly. A nil pointer means
// the flag was not given.
type CLIValues struct {
	Paths                     []string
	InputFile                 *string
	DryRun                    *bool
	OnlyMKV                   *bool
	OnlyMP4                   *bool
	Language                  *string
	LogLevel                  *int
	MKVMergePath              *string
	MKVPropEditPath           *string
	AtomicParsleyPath         *string
	SetDefaultSubTrack        *bool
	ForceDefaultFirstSubTrack *bool
	ClearAudioTrackNames      *bool
	ConfigPath                *string
	LogFile                   *string
	Stdout                    *bool
	StdoutOnly                *bool
	History                   *bool
}

// Inputs collects everything Resolve consults.
type Inputs struct {
	CLI CLIValues
	// Config is the decoded config file; nil when none was loaded.
	Config *config.File
	// ConfigPath is the resolved location of the config file. The default
	// log file and history database live beside it.
	ConfigPath   string
	Defaults     config.Defaults
	DetectLocale LocaleDetector
	// Logger receives language normalization warnings.
	Logger *slog.Logger
}

// Resolve merges the inputs into a Record. It is deterministic for a given
// LocaleDetector result and does not modify its inputs.
func Resolve(in Inputs) Record {
	cfg := in.Config
	if cfg == nil {
		cfg = &config.File{}
	}
	cli := in.CLI
	def := in.Defaults
	logger := in.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	rec := Record{
		Paths:                     resolvePaths(cli.Paths),
		InputFile:                 pickString(cli.InputFile, nil, ""),
		DryRun:                    pick(cli.DryRun, nil, false),
		OnlyMKV:                   pick(cli.OnlyMKV, cfg.OnlyMKV, def.OnlyMKV),
		OnlyMP4:                   pick(cli.OnlyMP4, cfg.OnlyMP4, def.OnlyMP4),
		MKVMergePath:              pickString(cli.MKVMergePath, cfg.MKVMergePath, def.MKVMergePath),
		MKVPropEditPath:           pickString(cli.MKVPropEditPath, cfg.MKVPropEditPath, def.MKVPropEditPath),
		AtomicParsleyPath:         pickString(cli.AtomicParsleyPath, cfg.AtomicParsleyPath, def.AtomicParsleyPath),
		LogLevel:                  pick(cli.LogLevel, cfg.LogLevel, def.LogLevel),
		Stdout:                    pick(cli.Stdout, cfg.Stdout, def.Stdout),
		StdoutOnly:                pick(cli.StdoutOnly, cfg.StdoutOnly, def.StdoutOnly),
		SetDefaultSubTrack:        pick(cli.SetDefaultSubTrack, cfg.SetDefaultSubTrack, def.SetDefaultSubTrack),
		ForceDefaultFirstSubTrack: pick(cli.ForceDefaultFirstSubTrack, cfg.ForceDefaultFirstSubTrack, def.ForceDefaultFirstSubTrack),
		ClearAudioTrackNames:      pick(cli.ClearAudioTrackNames, cfg.ClearAudio, def.ClearAudio),
		History:                   pick(cli.History, cfg.History, def.History),
		ConfigPath:                resolveConfigPath(cli.ConfigPath, in.ConfigPath),
	}
	rec.LogFilePath = resolveLogFile(cli.LogFile, cfg.LogFile, in.ConfigPath)
	rec.Language, rec.UseSystemLocale, rec.DetectedLocale = resolveLanguage(cli.Language, cfg, def, in.DetectLocale, logger)

	return adjust(rec, adjustments...)
}

func resolvePaths(paths []string) Sourced[[]string] {
	if len(paths) == 0 {
		return fromDefault[[]string](nil)
	}
	return fromCLI(append([]string(nil), paths...))
}

func resolveConfigPath(cli *string, resolved string) Sourced[string] {
	if p := nonEmpty(cli); p != nil {
		if resolved == "" {
			resolved = *p
		}
		return fromCLI(resolved)
	}
	return fromDefault(resolved)
}

func resolveLogFile(cli, cfg *string, configPath string) Sourced[string] {
	if p := nonEmpty(cli); p != nil {
		return fromCLI(*p)
	}
	if p := nonEmpty(cfg); p != nil {
		return fromConfig(*p)
	}
	if configPath == "" {
		return fromDefault("")
	}
	return fromDefault(config.LogPathFor(configPath))
}

// resolveLanguage applies the language precedence: --language, then the
// detected system locale when useSystemLocale is on, then the configured
// language, then the fixed fallback.
func resolveLanguage(
	cliLanguage *string,
	cfg *config.File,
	def config.Defaults,
	detect LocaleDetector,
	logger *slog.Logger,
) (Sourced[language.Preference], Sourced[bool], string) {
	configured := def.Language
	if cfg.Language != nil {
		configured = strings.TrimSpace(*cfg.Language)
	}

	if p := nonEmpty(cliLanguage); p != nil {
		pref := language.Normalize(*p, "", logger)
		return fromCLI(pref),
			Sourced[bool]{Value: false, Source: SourceCLIOverride},
			""
	}

	useSystem := pick(nil, cfg.UseSystemLocale, def.UseSystemLocale)
	if !useSystem.Value {
		if configured != "" {
			source := SourceConfig
			if cfg.Language == nil {
				source = SourceDefault
			}
			return Sourced[language.Preference]{Value: language.Normalize(configured, "", logger), Source: source},
				useSystem, ""
		}
		return fromDefault(language.Normalize(language.Fallback, "", logger)), useSystem, ""
	}

	if detect != nil {
		if detected, ok := detect(); ok && strings.TrimSpace(detected) != "" {
			detected = strings.TrimSpace(detected)
			return Sourced[language.Preference]{
				Value:  language.Normalize(detected, configured, logger),
				Source: SourceDetectedLocale,
			}, useSystem, detected
		}
	}
	return Sourced[language.Preference]{
		Value:  language.Normalize(configured, language.Fallback, logger),
		Source: SourceConfigFallback,
	}, useSystem, ""
}
