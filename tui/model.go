package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/syirilrakhulh/oddbit-player/playback"
)

const (
	seekStep   = 5.0
	volumeStep = 0.1
)

// decoderExitedMsg is sent when the mpv window is closed from its side.
type decoderExitedMsg struct{}

// model adapts a playback.Machine to the bubbletea program that owns its timeline.
type model struct {
	id       string
	machine  *playback.Machine
	keys     keymap
	help     help.Model
	progress progress.Model
	width    int
	quitting bool
}

func newModel(id string, machine *playback.Machine) *model {
	return &model{
		id:       id,
		machine:  machine,
		keys:     newKeymap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

// Init assigns the source, which starts loading it.
func (m *model) Init() tea.Cmd {
	return m.machine.Update(playback.SourceAssignedMsg{ID: m.id})
}

// Update drops everything once quitting, so timers and decoder events that were already
// in flight cannot touch the session after unmount.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = max(msg.Width-40, 10)
		return m, nil

	case decoderExitedMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	cmd := m.machine.Update(msg)
	m.keys.retry.SetEnabled(m.machine.Session().State == playback.Error)
	return m, cmd
}

// handleKey maps a key to a playback message. Every key also counts as an interaction.
func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.quit, m.keys.forceQuit) {
		m.quitting = true
		return tea.Quit
	}

	s := m.machine.Session()

	var action tea.Msg
	switch {
	case key.Matches(msg, m.keys.togglePlay):
		action = playback.TogglePlayMsg{}
	case key.Matches(msg, m.keys.seekBack):
		action = playback.SeekMsg{Seconds: s.CurrentTime - seekStep}
	case key.Matches(msg, m.keys.seekForward):
		action = playback.SeekMsg{Seconds: s.CurrentTime + seekStep}
	case key.Matches(msg, m.keys.volumeUp):
		action = playback.VolumeMsg{Level: s.Volume + volumeStep}
	case key.Matches(msg, m.keys.volumeDown):
		action = playback.VolumeMsg{Level: s.Volume - volumeStep}
	case key.Matches(msg, m.keys.mute):
		action = playback.ToggleMuteMsg{}
	case key.Matches(msg, m.keys.fullscreen):
		action = playback.ToggleFullscreenMsg{}
	case key.Matches(msg, m.keys.retry):
		action = playback.RetryMsg{}
	}

	cmds := []tea.Cmd{m.machine.Update(playback.InteractMsg{})}
	if action != nil {
		cmds = append(cmds, m.machine.Update(action))
	}
	m.keys.retry.SetEnabled(m.machine.Session().State == playback.Error)

	return tea.Batch(cmds...)
}
