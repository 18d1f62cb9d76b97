package language

import "strings"

// bibliographic maps ISO 639-2/B codes onto the ISO 639-2/T codes that
// golang.org/x/text reports from Base.ISO3.
var bibliographic = map[string]string{
	"alb": "sqi",
	"arm": "hye",
	"baq": "eus",
	"bur": "mya",
	"chi": "zho",
	"cze": "ces",
	"dut": "nld",
	"fre": "fra",
	"geo": "kat",
	"ger": "deu",
	"gre": "ell",
	"ice": "isl",
	"mac": "mkd",
	"mao": "mri",
	"may": "msa",
	"per": "fas",
	"rum": "ron",
	"slo": "slk",
	"tib": "bod",
	"wel": "cym",
}

var terminology map[string]string

func init() {
	terminology = make(map[string]string, len(bibliographic))
	for b, t := range bibliographic {
		terminology[t] = b
	}
}

// bibliographicFor returns the ISO 639-2/B alias for a terminology code, or
// "" when the two forms are the same.
func bibliographicFor(code3 string) string {
	return terminology[strings.ToLower(code3)]
}

// terminologyFor maps a bibliographic code onto its terminology form and
// passes any other code through lowercased.
func terminologyFor(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if t, ok := bibliographic[code]; ok {
		return t
	}
	return code
}

// withTerminologyBase swaps a bibliographic primary subtag for its
// terminology form, leaving the rest of the tag untouched.
func withTerminologyBase(tag string) string {
	primary, rest, found := strings.Cut(tag, "-")
	if t, ok := bibliographic[strings.ToLower(primary)]; ok {
		if found {
			return t + "-" + rest
		}
		return t
	}
	return tag
}
