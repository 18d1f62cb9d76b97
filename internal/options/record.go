package options

import (
	"fmt"
	"strconv"
	"strings"

	"cattywampus/internal/language"
	"cattywampus/internal/logging"
)

// Record is the resolved option set for one run. It is built once by Resolve
// and passed by value; nothing downstream modifies it.
type Record struct {
	Paths                     Sourced[[]string]
	InputFile                 Sourced[string]
	DryRun                    Sourced[bool]
	OnlyMKV                   Sourced[bool]
	OnlyMP4                   Sourced[bool]
	Language                  Sourced[language.Preference]
	UseSystemLocale           Sourced[bool]
	MKVMergePath              Sourced[string]
	MKVPropEditPath           Sourced[string]
	AtomicParsleyPath         Sourced[string]
	LogLevel                  Sourced[int]
	LogFilePath               Sourced[string]
	Stdout                    Sourced[bool]
	StdoutOnly                Sourced[bool]
	SetDefaultSubTrack        Sourced[bool]
	ForceDefaultFirstSubTrack Sourced[bool]
	ClearAudioTrackNames      Sourced[bool]
	History                   Sourced[bool]
	ConfigPath                Sourced[string]

	// DetectedLocale is the system language code when detection ran and
	// succeeded.
	DetectedLocale string
}

// Entry is one option rendered for diagnostics.
type Entry struct {
	Key    string
	Value  string
	Source Source
}

// Entries lists every option with its rendered value and source, in a
// stable order.
func (r Record) Entries() []Entry {
	return []Entry{
		{"paths", renderPaths(r.Paths.Value), r.Paths.Source},
		{"inputFile", renderString(r.InputFile.Value), r.InputFile.Source},
		{"dryRun", strconv.FormatBool(r.DryRun.Value), r.DryRun.Source},
		{"onlyMkv", strconv.FormatBool(r.OnlyMKV.Value), r.OnlyMKV.Source},
		{"onlyMp4", strconv.FormatBool(r.OnlyMP4.Value), r.OnlyMP4.Source},
		{"language", r.Language.Value.String(), r.Language.Source},
		{"useSystemLocale", strconv.FormatBool(r.UseSystemLocale.Value), r.UseSystemLocale.Source},
		{"mkvmergePath", renderString(r.MKVMergePath.Value), r.MKVMergePath.Source},
		{"mkvpropeditPath", renderString(r.MKVPropEditPath.Value), r.MKVPropEditPath.Source},
		{"atomicParsleyPath", renderString(r.AtomicParsleyPath.Value), r.AtomicParsleyPath.Source},
		{"logLevel", fmt.Sprintf("%d (%s)", r.LogLevel.Value, logging.NumericName(r.LogLevel.Value)), r.LogLevel.Source},
		{"logFile", renderString(r.LogFilePath.Value), r.LogFilePath.Source},
		{"stdout", strconv.FormatBool(r.Stdout.Value), r.Stdout.Source},
		{"stdoutOnly", strconv.FormatBool(r.StdoutOnly.Value), r.StdoutOnly.Source},
		{"setDefaultSubTrack", strconv.FormatBool(r.SetDefaultSubTrack.Value), r.SetDefaultSubTrack.Source},
		{"forceDefaultFirstSubTrack", strconv.FormatBool(r.ForceDefaultFirstSubTrack.Value), r.ForceDefaultFirstSubTrack.Source},
		{"clearAudio", strconv.FormatBool(r.ClearAudioTrackNames.Value), r.ClearAudioTrackNames.Source},
		{"history", strconv.FormatBool(r.History.Value), r.History.Source},
		{"config", renderString(r.ConfigPath.Value), r.ConfigPath.Source},
	}
}

func renderString(value string) string {
	if value == "" {
		return "not set"
	}
	return value
}

func renderPaths(paths []string) string {
	if len(paths) == 0 {
		return "not set"
	}
	return strings.Join(paths, ", ")
}
