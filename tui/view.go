package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/syirilrakhulh/oddbit-player/color"
	"github.com/syirilrakhulh/oddbit-player/icon"
	"github.com/syirilrakhulh/oddbit-player/playback"
	"github.com/syirilrakhulh/oddbit-player/style"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

// FormatClock renders seconds as HH:MM:SS.
func FormatClock(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}

	s := m.machine.Session()
	lines := []string{
		style.Title("Oddbit Player") + " " + style.Faint(m.id),
		"",
	}

	switch s.State {
	case playback.Loading:
		lines = append(lines, icon.Get(icon.Loading)+" Loading video...")
	case playback.Error:
		message := s.ErrorMessage
		if m.width > 8 {
			message = wordwrap.String(message, m.width-8)
		}
		lines = append(lines,
			style.ErrorTitle("Error")+" "+style.Fg(color.Red)(message),
			style.Faint("press r to retry"),
		)
	default:
		lines = append(lines, icon.Get(stateIcon(s.State))+" "+s.State.String())
	}

	lines = append(lines, "")
	if s.ControlsShown() {
		lines = append(lines, m.viewControls(s))
	} else {
		lines = append(lines, style.Faint("press any key to show controls"))
	}

	lines = append(lines, "", m.help.View(m.keys))
	return paddingStyle.Render(strings.Join(lines, "\n"))
}

func (m *model) viewControls(s playback.Session) string {
	volume := icon.Get(icon.Volume) + fmt.Sprintf(" %3d%%", int(math.Round(s.Volume*100)))
	if s.Muted {
		volume = icon.Get(icon.Muted) + " muted"
	}

	parts := []string{
		m.progress.ViewAs(s.Progress()),
		FormatClock(s.CurrentTime) + " / " + FormatClock(s.Duration),
		volume,
	}
	if s.Fullscreen {
		parts = append(parts, icon.Get(icon.Fullscreen))
	}
	return strings.Join(parts, "  ")
}

func stateIcon(s playback.State) icon.Icon {
	switch s {
	case playback.Playing:
		return icon.Play
	case playback.Paused:
		return icon.Pause
	default:
		return icon.Video
	}
}
