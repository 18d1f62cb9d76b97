package options

import "errors"

var (
	// ErrConflictingFilters reports onlyMkv and onlyMp4 both enabled.
	ErrConflictingFilters = errors.New("cannot enable both --only-mkv and --only-mp4 options simultaneously")
	// ErrNoInputs reports a run with neither paths nor an input file.
	ErrNoInputs = errors.New("must provide either file/folder paths or use --input to specify input file")
)

// Validate reports fatal option combinations. All failures are returned
// joined so the user sees every problem at once.
func Validate(rec Record) error {
	var errs []error
	if rec.OnlyMKV.Value && rec.OnlyMP4.Value {
		errs = append(errs, ErrConflictingFilters)
	}
	if len(rec.Paths.Value) == 0 && rec.InputFile.Value == "" {
		errs = append(errs, ErrNoInputs)
	}
	return errors.Join(errs...)
}
