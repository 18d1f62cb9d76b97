package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"cattywampus/internal/logging"
	"cattywampus/internal/options"
)

const (
	flagInput         = "input"
	flagDryRun        = "dry-run"
	flagOnlyMKV       = "only-mkv"
	flagOnlyMP4       = "only-mp4"
	flagLanguage      = "language"
	flagLogLevel      = "loglevel"
	flagMKVMerge      = "mkvmerge-path"
	flagMKVPropEdit   = "mkvpropedit-path"
	flagAtomicParsley = "atomicparsley-path"
	flagSetDefault    = "set-default"
	flagDefaultFirst  = "default-first"
	flagClearAudio    = "clear-audio"
	flagConfig        = "config"
	flagLogFile       = "logfile"
	flagStdout        = "stdout"
	flagStdoutOnly    = "stdout-only"
	flagHistory       = "history"
)

// cliFlags holds the raw flag storage. Only flags the user set are carried
// into options.CLIValues.
type cliFlags struct {
	input         string
	dryRun        bool
	onlyMKV       bool
	onlyMP4       bool
	language      string
	logLevel      int
	mkvmerge      string
	mkvpropedit   string
	atomicParsley string
	setDefault    bool
	defaultFirst  bool
	clearAudio    bool
	config        string
	logFile       string
	stdout        bool
	stdoutOnly    bool
	history       bool
}

func (f *cliFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.input, flagInput, "i", "", "Text file listing paths to process, one per line")
	fs.BoolVarP(&f.dryRun, flagDryRun, "d", false, "Log the edits without changing any file")
	fs.BoolVar(&f.onlyMKV, flagOnlyMKV, false, "Process only MKV files")
	fs.BoolVar(&f.onlyMP4, flagOnlyMP4, false, "Process only MP4 files")
	fs.StringVarP(&f.language, flagLanguage, "L", "", "Preferred subtitle language (BCP 47, e.g. en, fr, pt-BR)")
	fs.IntVarP(&f.logLevel, flagLogLevel, "g", logging.NumericInfo, "Log level: 10 DEBUG, 20 INFO, 30 WARNING, 40 ERROR, 50 CRITICAL")
	fs.StringVarP(&f.mkvmerge, flagMKVMerge, "M", "", "Path to mkvmerge")
	fs.StringVarP(&f.mkvpropedit, flagMKVPropEdit, "P", "", "Path to mkvpropedit")
	fs.StringVarP(&f.atomicParsley, flagAtomicParsley, "A", "", "Path to AtomicParsley")
	fs.BoolVarP(&f.setDefault, flagSetDefault, "s", false, "Default the first subtitle track in the preferred language")
	fs.BoolVarP(&f.defaultFirst, flagDefaultFirst, "f", false, "Default the first subtitle track when none matches the language")
	fs.BoolVarP(&f.clearAudio, flagClearAudio, "a", false, "Clear the name of the first audio track")
	fs.StringVarP(&f.config, flagConfig, "c", "", "Configuration file path")
	fs.StringVarP(&f.logFile, flagLogFile, "l", "", "Log file path")
	fs.BoolVarP(&f.stdout, flagStdout, "S", false, "Also log to stdout at DEBUG unless --loglevel is given")
	fs.BoolVarP(&f.stdoutOnly, flagStdoutOnly, "T", false, "Log only to stdout, without a log file")
	fs.BoolVar(&f.history, flagHistory, false, "Record the run in the history database")
}

// values converts the flags the user set into options.CLIValues. Unset flags
// stay nil so configuration and defaults can apply.
func (f *cliFlags) values(fs *pflag.FlagSet, paths []string) (options.CLIValues, error) {
	var cli options.CLIValues
	cli.Paths = append([]string(nil), paths...)

	setString := func(name, value string) *string {
		if !fs.Changed(name) {
			return nil
		}
		v := strings.TrimSpace(value)
		return &v
	}
	setBool := func(name string, value bool) *bool {
		if !fs.Changed(name) {
			return nil
		}
		v := value
		return &v
	}

	cli.InputFile = setString(flagInput, f.input)
	cli.DryRun = setBool(flagDryRun, f.dryRun)
	cli.OnlyMKV = setBool(flagOnlyMKV, f.onlyMKV)
	cli.OnlyMP4 = setBool(flagOnlyMP4, f.onlyMP4)
	cli.Language = setString(flagLanguage, f.language)
	cli.MKVMergePath = setString(flagMKVMerge, f.mkvmerge)
	cli.MKVPropEditPath = setString(flagMKVPropEdit, f.mkvpropedit)
	cli.AtomicParsleyPath = setString(flagAtomicParsley, f.atomicParsley)
	cli.SetDefaultSubTrack = setBool(flagSetDefault, f.setDefault)
	cli.ForceDefaultFirstSubTrack = setBool(flagDefaultFirst, f.defaultFirst)
	cli.ClearAudioTrackNames = setBool(flagClearAudio, f.clearAudio)
	cli.ConfigPath = setString(flagConfig, f.config)
	cli.LogFile = setString(flagLogFile, f.logFile)
	cli.Stdout = setBool(flagStdout, f.stdout)
	cli.StdoutOnly = setBool(flagStdoutOnly, f.stdoutOnly)
	cli.History = setBool(flagHistory, f.history)

	if fs.Changed(flagLogLevel) {
		if !logging.IsNumericLevel(f.logLevel) {
			return options.CLIValues{}, fmt.Errorf("invalid log level %d: choose one of %v", f.logLevel, logging.NumericLevels)
		}
		level := f.logLevel
		cli.LogLevel = &level
	}
	return cli, nil
}

func (f *cliFlags) configPath() string {
	return strings.TrimSpace(f.config)
}
