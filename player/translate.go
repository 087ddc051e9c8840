package player

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/syirilrakhulh/oddbit-player/playback"
)

// Translator turns mpv notifications into playback messages.
// It remembers the picture width until the height arrives so metadata is reported once per size.
type Translator struct {
	width, height int
}

// Translate returns the playback message for a notification, or nil when it carries nothing new.
func (t *Translator) Translate(name string, data any) tea.Msg {
	switch name {
	case "file-loaded":
		return playback.CanPlayMsg{}

	case "end-file":
		event, _ := data.(map[string]any)
		if reason, _ := event["reason"].(string); reason == "error" {
			cause, _ := event["file_error"].(string)
			return playback.DecodeErrorMsg{Err: fmt.Errorf("mpv: %s", cause)}
		}

	case "pause":
		if paused, ok := data.(bool); ok {
			if paused {
				return playback.PausedMsg{}
			}
			return playback.PlayingMsg{}
		}

	case "eof-reached":
		if ended, _ := data.(bool); ended {
			return playback.EndedMsg{}
		}

	case "time-pos":
		if seconds, ok := data.(float64); ok {
			return playback.TimeUpdateMsg{Seconds: seconds}
		}

	case "duration":
		if seconds, ok := data.(float64); ok {
			return playback.DurationChangeMsg{Seconds: seconds}
		}

	case "dwidth", "dheight":
		size, ok := data.(float64)
		if !ok {
			return nil
		}
		if name == "dwidth" {
			t.width = int(size)
		} else {
			t.height = int(size)
		}
		if t.width > 0 && t.height > 0 {
			return playback.MetadataMsg{Width: t.width, Height: t.height}
		}

	case "fullscreen":
		if on, ok := data.(bool); ok {
			return playback.FullscreenMsg{On: on}
		}
	}

	return nil
}
