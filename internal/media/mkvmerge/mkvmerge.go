package mkvmerge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cattywampus/internal/media"
)

// Track types as reported by mkvmerge.
const (
	TypeVideo     = "video"
	TypeAudio     = "audio"
	TypeSubtitles = "subtitles"
)

// Identification is the decoded `mkvmerge -J` document.
type Identification struct {
	Container Container `json:"container"`
	Tracks    []Track   `json:"tracks"`
}

// Container carries segment-level properties.
type Container struct {
	Type       string              `json:"type"`
	Recognized bool                `json:"recognized"`
	Properties ContainerProperties `json:"properties"`
}

// ContainerProperties holds the segment info fields.
type ContainerProperties struct {
	Title string `json:"title"`
}

// Track is one track in file order.
type Track struct {
	ID         int             `json:"id"`
	Type       string          `json:"type"`
	Codec      string          `json:"codec"`
	Properties TrackProperties `json:"properties"`
}

// TrackProperties holds the optional per-track properties. Absent values
// decode as empty strings.
type TrackProperties struct {
	Number       int    `json:"number"`
	TrackName    string `json:"track_name"`
	Language     string `json:"language"`
	LanguageIETF string `json:"language_ietf"`
}

// EffectiveLanguage returns the IETF tag when present, else the ISO 639-2
// language, else "".
func (t Track) EffectiveLanguage() string {
	if lang := strings.TrimSpace(t.Properties.LanguageIETF); lang != "" {
		return lang
	}
	return strings.TrimSpace(t.Properties.Language)
}

// Identify runs `mkvmerge -J path` and decodes the result.
func Identify(ctx context.Context, run media.Runner, binary, path string) (Identification, error) {
	if strings.TrimSpace(path) == "" {
		return Identification{}, errors.New("mkvmerge identify: empty path")
	}
	if run == nil {
		run = media.ExecRunner
	}
	output, err := run(ctx, binary, "-J", path)
	if err != nil {
		return Identification{}, fmt.Errorf("mkvmerge identify: %w", err)
	}
	return Parse(output)
}

// Parse decodes an identification document.
func Parse(data []byte) (Identification, error) {
	var ident Identification
	if err := json.Unmarshal(data, &ident); err != nil {
		return Identification{}, fmt.Errorf("mkvmerge parse: %w", err)
	}
	return ident, nil
}

// TracksOfType returns the tracks of one type in file order.
func (i Identification) TracksOfType(kind string) []Track {
	var tracks []Track
	for _, track := range i.Tracks {
		if track.Type == kind {
			tracks = append(tracks, track)
		}
	}
	return tracks
}

// SubtitleTracks returns the subtitle tracks in file order.
func (i Identification) SubtitleTracks() []Track {
	return i.TracksOfType(TypeSubtitles)
}

// HasAudio reports whether any audio track exists.
func (i Identification) HasAudio() bool {
	for _, track := range i.Tracks {
		if track.Type == TypeAudio {
			return true
		}
	}
	return false
}
