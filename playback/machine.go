package playback

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/syirilrakhulh/oddbit-player/log"
	"github.com/syirilrakhulh/oddbit-player/util"
)

// Error messages shown to the viewer.
const (
	MsgLoadFailed = "Failed to load video"
	MsgPlayFailed = "Failed to play video"
	MsgPlayError  = "An error occurred while playing the video"

	// MsgRenderFailed is shown when the video output fails without a cause.
	MsgRenderFailed = "Video output is unavailable"
)

// DefaultHideDelay is how long the controls stay visible after the last interaction.
const DefaultHideDelay = 3 * time.Second

// Machine owns a Session and is its only writer. Every transition goes through Update,
// which returns the decoder requests to run as a tea.Cmd.
type Machine struct {
	session   Session
	decoder   Decoder
	renderer  Renderer
	sourceURL func(id string) string
	hideDelay time.Duration
	autoPlay  bool
	volume    float64
	seq       int
}

// Option configures a Machine.
type Option func(*Machine)

// WithAutoPlay starts playback as soon as the decoder can play. Autoplay begins muted.
func WithAutoPlay(on bool) Option {
	return func(m *Machine) {
		m.autoPlay = on
	}
}

// WithVolume sets the initial output level of a session that does not autoplay.
func WithVolume(level float64) Option {
	return func(m *Machine) {
		m.volume = util.Clamp(level, 0, 1)
	}
}

// WithRenderer attaches the frame loop driven on play and resized on metadata and fullscreen changes.
func WithRenderer(r Renderer) Option {
	return func(m *Machine) {
		m.renderer = r
	}
}

// WithSourceURL sets how a media id becomes the address handed to the decoder.
func WithSourceURL(f func(id string) string) Option {
	return func(m *Machine) {
		m.sourceURL = f
	}
}

// WithHideDelay overrides DefaultHideDelay.
func WithHideDelay(d time.Duration) Option {
	return func(m *Machine) {
		m.hideDelay = d
	}
}

// NewMachine returns a machine in Loading that drives decoder.
func NewMachine(decoder Decoder, opts ...Option) *Machine {
	m := &Machine{
		decoder:   decoder,
		sourceURL: func(id string) string { return id },
		hideDelay: DefaultHideDelay,
		volume:    1,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.session = NewSession(m.autoPlay)
	if !m.autoPlay {
		m.session.Volume = m.volume
		m.session.Muted = m.volume == 0
	}
	return m
}

// Session returns a snapshot of the session.
func (m *Machine) Session() Session {
	return m.session
}

// Update applies msg to the session. Messages that are not valid in the current state are ignored.
func (m *Machine) Update(msg tea.Msg) tea.Cmd {
	s := &m.session

	switch msg := msg.(type) {
	case SourceAssignedMsg:
		s.State = Loading
		s.ErrorMessage = ""
		s.MediaID = msg.ID
		s.CurrentTime = 0
		s.Duration = 0
		return tea.Batch(m.assign(m.sourceURL(msg.ID), s.Volume, s.Muted), m.mount())

	case CanPlayMsg:
		if s.State != Loading {
			return nil
		}
		s.State = Ready
		if s.AutoPlay {
			return m.play(true)
		}

	case PlayMsg:
		if s.State == Ready || s.State == Paused {
			return m.play(false)
		}

	case PauseMsg:
		if s.State == Playing {
			return m.request("pause", m.decoder.Pause)
		}

	case TogglePlayMsg:
		switch s.State {
		case Playing:
			return m.request("pause", m.decoder.Pause)
		case Ready, Paused:
			return m.play(false)
		}

	case playRejectedMsg:
		if s.State != Ready && s.State != Paused {
			return nil
		}
		if msg.auto {
			log.Infof("autoplay of %s rejected: %v", s.MediaID, msg.err)
			s.State = Paused
			return nil
		}
		log.Errorf("play %s: %v", s.MediaID, msg.err)
		m.fail(MsgPlayFailed)

	case PlayingMsg:
		if s.State != Ready && s.State != Paused {
			return nil
		}
		s.State = Playing
		if m.renderer != nil {
			m.renderer.Start()
		}

	case PausedMsg, EndedMsg:
		if s.State == Playing {
			s.State = Paused
		}

	case DecodeErrorMsg:
		if s.State == Error {
			return nil
		}
		log.Errorf("decode %s: %v", s.MediaID, msg.Err)
		if s.State == Loading {
			m.fail(MsgLoadFailed)
		} else {
			m.fail(MsgPlayError)
		}

	case RenderFailedMsg:
		message := MsgRenderFailed
		if msg.Err != nil {
			message = msg.Err.Error()
		}
		log.Errorf("render %s: %s", s.MediaID, message)
		m.fail(message)

	case RetryMsg:
		if s.State != Error {
			return nil
		}
		s.State = Loading
		s.ErrorMessage = ""
		return tea.Batch(m.reload(), m.mount())

	case TimeUpdateMsg:
		s.CurrentTime = max(msg.Seconds, 0)

	case DurationChangeMsg:
		s.Duration = max(msg.Seconds, 0)

	case SeekMsg:
		if s.State == Loading || s.State == Error {
			return nil
		}
		target := max(msg.Seconds, 0)
		if s.Duration > 0 {
			target = min(target, s.Duration)
		}
		s.CurrentTime = target
		return m.request("seek", func() error { return m.decoder.Seek(target) })

	case VolumeMsg:
		s.Volume = util.Clamp(msg.Level, 0, 1)
		s.Muted = s.Volume == 0
		return m.levels(s.Volume, s.Muted)

	case ToggleMuteMsg:
		s.Muted = !s.Muted
		if s.Muted {
			s.Volume = 0
		} else {
			s.Volume = 1
		}
		return m.levels(s.Volume, s.Muted)

	case InteractMsg:
		s.ControlsVisible = true
		m.seq++
		seq := m.seq
		return tea.Tick(m.hideDelay, func(time.Time) tea.Msg {
			return hideControlsMsg{seq: seq}
		})

	case hideControlsMsg:
		if msg.seq == m.seq {
			s.ControlsVisible = false
		}

	case MetadataMsg:
		s.Width, s.Height = msg.Width, msg.Height
		m.resize()

	case FullscreenMsg:
		s.Fullscreen = msg.On
		m.resize()

	case ToggleFullscreenMsg:
		on := !s.Fullscreen
		if host, ok := m.decoder.(FullscreenHost); ok {
			return m.request("fullscreen", func() error { return host.SetFullscreen(on) })
		}
		return func() tea.Msg { return FullscreenMsg{On: on} }
	}

	return nil
}

func (m *Machine) fail(message string) {
	m.session.State = Error
	m.session.ErrorMessage = message
}

func (m *Machine) resize() {
	if m.renderer == nil {
		return
	}
	if err := m.renderer.Resize(); err != nil {
		log.Warnf("resize render surface: %v", err)
	}
}

// play asks the decoder to start. A rejection comes back as playRejectedMsg.
func (m *Machine) play(auto bool) tea.Cmd {
	return func() tea.Msg {
		if err := m.decoder.Play(); err != nil {
			return playRejectedMsg{err: err, auto: auto}
		}
		return nil
	}
}

func (m *Machine) assign(url string, volume float64, muted bool) tea.Cmd {
	return func() tea.Msg {
		if err := m.decoder.SetVolume(volume); err != nil {
			log.Warnf("set volume: %v", err)
		}
		if err := m.decoder.SetMuted(muted); err != nil {
			log.Warnf("set muted: %v", err)
		}
		if err := m.decoder.SetSource(url); err != nil {
			return DecodeErrorMsg{Err: err}
		}
		return nil
	}
}

// mount (re)initialises the renderer, if any.
func (m *Machine) mount() tea.Cmd {
	if m.renderer == nil {
		return nil
	}
	return m.renderer.Mount()
}

func (m *Machine) reload() tea.Cmd {
	return func() tea.Msg {
		if err := m.decoder.Reload(); err != nil {
			return DecodeErrorMsg{Err: err}
		}
		return nil
	}
}

func (m *Machine) levels(volume float64, muted bool) tea.Cmd {
	return m.request("volume", func() error {
		if err := m.decoder.SetVolume(volume); err != nil {
			return err
		}
		return m.decoder.SetMuted(muted)
	})
}

// request runs a decoder call whose failure only needs logging.
func (m *Machine) request(name string, call func() error) tea.Cmd {
	return func() tea.Msg {
		if err := call(); err != nil {
			log.Warnf("decoder %s: %v", name, err)
		}
		return nil
	}
}
