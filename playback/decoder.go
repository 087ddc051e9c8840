package playback

import tea "github.com/charmbracelet/bubbletea"

// Decoder turns a byte stream into pictures and timing events. Its events come back
// to the machine as messages; these calls only issue requests.
type Decoder interface {
	SetSource(url string) error
	Reload() error
	Play() error
	Pause() error
	Seek(seconds float64) error
	SetVolume(level float64) error
	SetMuted(muted bool) error
}

// FullscreenHost is implemented by decoders that own the window the picture is shown in.
type FullscreenHost interface {
	SetFullscreen(on bool) error
}

// Renderer draws decoded frames. Mount returns the command that (re)acquires its GPU
// resources and reports a failure as RenderFailedMsg. Start begins the frame loop;
// Resize follows the picture size.
type Renderer interface {
	Mount() tea.Cmd
	Start()
	Resize() error
}
