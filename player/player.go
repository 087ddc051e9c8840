// Package player drives an external mpv process as the decode collaborator of a playback session.
// mpv is controlled over its JSON-IPC socket; its property changes come back as playback messages.
package player

import (
	"os/exec"

	"github.com/syirilrakhulh/oddbit-player/playback"
)

// Executable is the name of the mpv binary looked up in PATH.
const Executable = "mpv"

var (
	_ playback.Decoder        = (*MPV)(nil)
	_ playback.FullscreenHost = (*MPV)(nil)
)

// Available reports whether mpv can be found in PATH.
func Available() bool {
	_, err := exec.LookPath(Executable)
	return err == nil
}
