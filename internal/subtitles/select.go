package subtitles

import (
	"log/slog"

	"cattywampus/internal/language"
	"cattywampus/internal/logging"
	"cattywampus/internal/media/mkvmerge"
)

const unknownLanguage = "{unknown}"

// SelectDefaults decides the default flag of every subtitle track in tracks.
// Non-subtitle tracks are ignored. The first track whose language matches
// pref is enabled and defaulted and every other subtitle track is
// un-defaulted.
//
// When nothing matches, track 1 is still enabled and defaulted whether or
// not forceFirst is set; forceFirst only makes that choice explicit.
//
// A file without subtitle tracks yields no directives.
func SelectDefaults(tracks []mkvmerge.Track, pref language.Preference, forceFirst bool, logger *slog.Logger) []Directive {
	if logger == nil {
		logger = logging.NewNop()
	}

	var subs []mkvmerge.Track
	for _, track := range tracks {
		if track.Type == mkvmerge.TypeSubtitles {
			subs = append(subs, track)
		}
	}
	if len(subs) == 0 {
		logger.Debug("no subtitle tracks found")
		return nil
	}

	match, found := 1, false
	for i, track := range subs {
		lang := track.EffectiveLanguage()
		if lang == "" {
			lang = unknownLanguage
		}
		if pref.Matches(lang) {
			match, found = i+1, true
			logger.Debug("subtitle track in preferred language found",
				logging.String("language", pref.Raw),
				logging.Int("track", match),
			)
			break
		}
	}

	directives := make([]Directive, 0, len(subs)+1)
	for i, track := range subs {
		index := i + 1
		if index == match || (!found && index == 1 && forceFirst) {
			logger.Debug("enabling and defaulting subtitle track",
				logging.Int("track", index),
				logging.String("language", pref.Raw),
			)
			directives = append(directives,
				Directive{TrackIndex: index, Action: ActionEnable},
				Directive{TrackIndex: index, Action: ActionSetDefault},
			)
			continue
		}
		logger.Debug("un-defaulting subtitle track",
			logging.Int("track", index),
			logging.String("language", track.EffectiveLanguage()),
		)
		directives = append(directives, Directive{TrackIndex: index, Action: ActionClearDefault})
	}
	return directives
}
