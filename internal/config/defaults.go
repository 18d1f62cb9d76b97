package config

// AppName names the configuration directory, config file stem, and log file.
const AppName = "cattywampus"

const (
	defaultLogLevel        = 20
	defaultUseSystemLocale = true
	configFileName         = "config.toml"
	logFileName            = AppName + ".log"
	historyFileName        = "history.db"
)

// Defaults is the built-in value table consulted when neither the command
// line nor the config file supplies a key.
type Defaults struct {
	LogLevel                  int
	MKVMergePath              string
	MKVPropEditPath           string
	AtomicParsleyPath         string
	SetDefaultSubTrack        bool
	ForceDefaultFirstSubTrack bool
	ClearAudio                bool
	UseSystemLocale           bool
	Language                  string
	OnlyMKV                   bool
	OnlyMP4                   bool
	Stdout                    bool
	StdoutOnly                bool
	History                   bool
}

// Default returns the repository defaults.
func Default() Defaults {
	return Defaults{
		LogLevel:        defaultLogLevel,
		UseSystemLocale: defaultUseSystemLocale,
	}
}
