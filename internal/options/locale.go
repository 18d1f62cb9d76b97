package options

import (
	"strings"
	"unicode"

	"github.com/jeandeaual/go-locale"
)

// LocaleDetector reports the system language code, or false when it cannot
// be determined.
type LocaleDetector func() (string, bool)

// SystemLocale detects the user's language from the operating system
// (LC_ALL, LC_MESSAGES, LANG and friends on unix, the user locale on
// Windows and macOS).
func SystemLocale() (string, bool) {
	raw, err := locale.GetLocale()
	if err != nil {
		return "", false
	}
	return cleanLocale(raw)
}

// cleanLocale reduces identifiers such as "en_US.UTF-8" or "pt-BR" to their
// lowercase language part.
func cleanLocale(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		value = value[:i]
	}
	if i := strings.IndexAny(value, "_-"); i >= 0 {
		value = value[:i]
	}
	value = strings.ToLower(value)
	if len(value) < 2 || value == "posix" {
		return "", false
	}
	for _, r := range value {
		if !unicode.IsLetter(r) {
			return "", false
		}
	}
	return value, true
}
