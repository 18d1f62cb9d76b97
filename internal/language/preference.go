package language

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"cattywampus/internal/logging"
)

// Fallback is substituted whenever no usable language identifier is
// available.
const Fallback = "en"

// Preference is the canonical form of one language identifier.
type Preference struct {
	// Raw is the identifier that was parsed successfully.
	Raw string
	Tag language.Tag
	// Alpha2 is the shortest ISO 639 code for the base language. It is three
	// letters when no two-letter code exists.
	Alpha2 string
	// Alpha3 is the ISO 639-2/T code mkvmerge reports for tracks.
	Alpha3 string
	// Alpha3B is the ISO 639-2/B alias when it differs from Alpha3.
	Alpha3B string
	Display string
}

// Normalize resolves raw into a Preference. An empty raw falls back to
// configured and then to Fallback. Identifiers that cannot be parsed are
// logged as warnings and replaced with Fallback. Normalize always returns a
// usable Preference.
func Normalize(raw, configured string, logger *slog.Logger) Preference {
	if logger == nil {
		logger = logging.NewNop()
	}
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		candidate = strings.TrimSpace(configured)
	}
	if candidate == "" {
		candidate = Fallback
	}

	pref, err := Parse(candidate)
	if err == nil {
		return pref
	}
	logger.Warn("invalid language tag, falling back to English",
		logging.String("tag", candidate),
		logging.Error(err),
	)
	pref, err = Parse(Fallback)
	if err != nil {
		panic(fmt.Sprintf("fallback language %q failed to parse: %v", Fallback, err))
	}
	return pref
}

// Parse converts a BCP 47 language identifier into a Preference. Unicode
// locale, transform and private-use extensions are dropped from the canonical
// tag. Tags with any other extension and tags without an explicit base
// language are rejected.
func Parse(raw string) (Preference, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Preference{}, errors.New("empty language tag")
	}
	tag, err := language.Parse(withTerminologyBase(raw))
	if err != nil {
		return Preference{}, err
	}
	for _, ext := range tag.Extensions() {
		switch ext.Type() {
		case 'u', 't', 'x':
		default:
			return Preference{}, fmt.Errorf("tag %q carries unknown extension %q", raw, ext.String())
		}
	}
	base, script, region := tag.Raw()
	if base.String() == "und" {
		return Preference{}, fmt.Errorf("tag %q has no determined language", raw)
	}
	tag, err = language.Compose(base, script, region, tag.Variants())
	if err != nil {
		return Preference{}, err
	}

	alpha3 := base.ISO3()
	return Preference{
		Raw:     raw,
		Tag:     tag,
		Alpha2:  base.String(),
		Alpha3:  alpha3,
		Alpha3B: bibliographicFor(alpha3),
		Display: nameOf(tag, base),
	}, nil
}

// Matches reports whether a track language identifier selects this
// preference. The identifier must equal the ISO 639-2/T code or the raw tag
// exactly.
func (p Preference) Matches(code string) bool {
	if code == "" {
		return false
	}
	return code == p.Alpha3 || code == p.Raw
}

// String renders the preference the way run logs show it,
// e.g. "French (fr/fra)".
func (p Preference) String() string {
	return fmt.Sprintf("%s (%s/%s)", p.Display, p.Raw, p.Alpha3)
}

// ToISO3 converts a language identifier to its ISO 639-2/T code.
// Bibliographic codes map to their terminology form. Unrecognised input
// yields "und".
func ToISO3(code string) string {
	code = terminologyFor(code)
	if code == "" {
		return "und"
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "und"
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return "und"
	}
	return base.ISO3()
}

// DisplayName returns an English name for a language identifier. Empty
// input yields "Unknown" and unrecognised input is returned uppercased.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	tag, err := language.Parse(terminologyFor(trimmed))
	if err != nil {
		return strings.ToUpper(trimmed)
	}
	base, _ := tag.Base()
	if name := nameOf(tag, base); name != "" {
		return name
	}
	return strings.ToUpper(trimmed)
}

func nameOf(tag language.Tag, base language.Base) string {
	namer := display.English.Languages()
	if name := namer.Name(tag); name != "" {
		return name
	}
	return namer.Name(base)
}
