package subtitles

import "strconv"

// Action is one flag change applied to a subtitle track.
type Action string

const (
	ActionEnable       Action = "enable"
	ActionSetDefault   Action = "setDefault"
	ActionClearDefault Action = "clearDefault"
)

// Directive targets one subtitle track by its 1-based position among the
// file's subtitle tracks.
type Directive struct {
	TrackIndex int
	Action     Action
}

// Selector returns the mkvpropedit track selector, e.g. "track:s2".
func (d Directive) Selector() string {
	return "track:s" + strconv.Itoa(d.TrackIndex)
}

// Args translates the directive into mkvpropedit arguments.
func (d Directive) Args() []string {
	var property string
	switch d.Action {
	case ActionEnable:
		property = "flag-enabled=1"
	case ActionSetDefault:
		property = "flag-default=1"
	case ActionClearDefault:
		property = "flag-default=0"
	default:
		return nil
	}
	return []string{"-e", d.Selector(), "-s", property}
}

// Args flattens a directive list into mkvpropedit arguments.
func Args(directives []Directive) []string {
	args := make([]string, 0, len(directives)*4)
	for _, d := range directives {
		args = append(args, d.Args()...)
	}
	return args
}
