package render

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/syirilrakhulh/oddbit-player/playback"
)

var _ playback.Renderer = (*Pipeline)(nil)

// Mount returns the command that initialises p on a playback session's load and retry.
// A failure comes back as playback.RenderFailedMsg, which moves the session to its error state.
func (p *Pipeline) Mount() tea.Cmd {
	return func() tea.Msg {
		if err := p.Init(); err != nil {
			return playback.RenderFailedMsg{Err: err}
		}
		return nil
	}
}
