package options

// Source labels where a resolved option value came from.
type Source string

const (
	SourceCLI     Source = "cli"
	SourceConfig  Source = "config"
	SourceDefault Source = "default"
	// SourceStdoutOption marks a log level forced by the stdout switch.
	SourceStdoutOption Source = "stdout option"
	// SourceDetectedLocale marks a language taken from the system locale.
	SourceDetectedLocale Source = "detected system locale"
	// SourceConfigFallback marks a language taken from the config file (or
	// the built-in fallback) after system locale detection failed.
	SourceConfigFallback Source = "config fallback"
	// SourceCLIOverride marks useSystemLocale disabled by --language.
	SourceCLIOverride Source = "cli override"
)

// Sourced pairs a resolved value with the source that supplied it.
type Sourced[T any] struct {
	Value  T
	Source Source
}

func fromCLI[T any](v T) Sourced[T]     { return Sourced[T]{Value: v, Source: SourceCLI} }
func fromConfig[T any](v T) Sourced[T]  { return Sourced[T]{Value: v, Source: SourceConfig} }
func fromDefault[T any](v T) Sourced[T] { return Sourced[T]{Value: v, Source: SourceDefault} }

// pick applies the cli > config > default rule for one key.
func pick[T any](cli, cfg *T, def T) Sourced[T] {
	if cli != nil {
		return fromCLI(*cli)
	}
	if cfg != nil {
		return fromConfig(*cfg)
	}
	return fromDefault(def)
}

// pickString is pick for string keys where an empty value counts as unset.
func pickString(cli, cfg *string, def string) Sourced[string] {
	return pick(nonEmpty(cli), nonEmpty(cfg), def)
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
