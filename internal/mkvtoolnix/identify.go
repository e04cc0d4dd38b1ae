package mkvtoolnix

import (
	"context"
	"encoding/json"
	"strings"

	"mkvcleaner/internal/language"
	"mkvcleaner/internal/logging"
	"mkvcleaner/internal/tracks"
)

type identifyOutput struct {
	Container struct {
		Recognized bool `json:"recognized"`
		Properties struct {
			Title string `json:"title"`
		} `json:"properties"`
	} `json:"container"`
	Tracks []identifyTrack `json:"tracks"`
	Errors []string        `json:"errors"`
}

type identifyTrack struct {
	ID         int    `json:"id"`
	Type       string `json:"type"`
	Codec      string `json:"codec"`
	Properties struct {
		Language        string `json:"language"`
		LanguageIETF    string `json:"language_ietf"`
		TrackName       string `json:"track_name"`
		ForcedTrack     bool   `json:"forced_track"`
		HearingImpaired bool   `json:"hearing_impaired_flag"`
	} `json:"properties"`
}

// Identify lists the tracks of path using `mkvmerge -J`. Unusable output
// (a failed run, empty stdout, malformed JSON) is logged and yields an empty
// list; only a missing binary or a timeout is returned as an error.
func (c *Client) Identify(ctx context.Context, path string) ([]tracks.Track, error) {
	ctx, cancel := withTimeout(ctx, c.identifyTimeout)
	defer cancel()

	out, err := c.exec.Output(ctx, c.mkvmerge, []string{"-J", path})
	if err != nil {
		wrapped := c.toolError(ctx, "identify", c.mkvmerge, err)
		if isMissingBinary(err) || ctx.Err() != nil {
			return nil, wrapped
		}
		logging.WarnWithContext(c.logger, "mkvmerge identify failed", "identify_failed",
			logging.String(logging.FieldFile, path),
			logging.Error(wrapped),
			logging.String(logging.FieldImpact, "all tracks kept without filtering"),
		)
		return nil, nil
	}
	return c.parseIdentify(path, out), nil
}

func (c *Client) parseIdentify(path string, out []byte) []tracks.Track {
	if len(strings.TrimSpace(string(out))) == 0 {
		logging.WarnWithContext(c.logger, "mkvmerge returned empty output", "identify_empty",
			logging.String(logging.FieldFile, path),
			logging.String(logging.FieldImpact, "all tracks kept without filtering"),
		)
		return nil
	}
	var parsed identifyOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		logging.WarnWithContext(c.logger, "mkvmerge output is not valid json", "identify_malformed",
			logging.String(logging.FieldFile, path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "all tracks kept without filtering"),
		)
		return nil
	}
	for _, msg := range parsed.Errors {
		c.logger.Debug("mkvmerge identify reported error", logging.String(logging.FieldFile, path), logging.String("message", msg))
	}

	result := make([]tracks.Track, 0, len(parsed.Tracks))
	for _, raw := range parsed.Tracks {
		kind, _ := tracks.ParseKind(raw.Type)
		result = append(result, tracks.Track{
			ID:              raw.ID,
			Kind:            kind,
			Language:        trackLanguage(raw.Properties.Language, raw.Properties.LanguageIETF),
			Forced:          raw.Properties.ForcedTrack,
			HearingImpaired: raw.Properties.HearingImpaired,
			Name:            raw.Properties.TrackName,
			Codec:           raw.Codec,
		})
	}
	return result
}

// trackLanguage prefers the legacy ISO 639-2 field and falls back to the
// IETF tag newer mkvmerge releases also emit.
func trackLanguage(legacy, ietf string) string {
	if code := language.Normalize(legacy); code != language.Undetermined {
		return code
	}
	return language.Normalize(ietf)
}
