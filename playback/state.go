// Package playback models one mounted player instance as a state machine driven by messages.
package playback

// State is the lifecycle position of a playback session.
type State int

const (
	// Loading means a source is assigned and the decoder has not reported it playable yet.
	Loading State = iota

	// Ready means the decoder can start playback and has not started yet.
	Ready

	// Playing means frames are advancing.
	Playing

	// Paused means playback stopped at the current position, including after the end of the media.
	Paused

	// Error means loading or playback failed; only a retry leaves this state.
	Error
)

// String returns a human-readable label for the playback state.
func (s State) String() string {
	switch s {
	case Loading:
		return "Loading"
	case Ready:
		return "Ready"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// Session is the full observable state of one player instance.
type Session struct {
	State           State
	MediaID         string
	CurrentTime     float64
	Duration        float64
	Volume          float64
	Muted           bool
	Fullscreen      bool
	ControlsVisible bool
	ErrorMessage    string
	AutoPlay        bool
	Width           int
	Height          int
}

// NewSession returns a session in Loading. Autoplaying sessions start muted at volume 0.
func NewSession(autoPlay bool) Session {
	s := Session{
		State:    Loading,
		Volume:   1,
		AutoPlay: autoPlay,
	}
	if autoPlay {
		s.Muted = true
		s.Volume = 0
	}
	return s
}

// ControlsShown reports whether the control bar is drawn.
// Loading and error overlays hide it unless the player is fullscreen.
func (s Session) ControlsShown() bool {
	if (s.State == Loading || s.State == Error) && !s.Fullscreen {
		return false
	}
	return s.ControlsVisible
}

// Progress returns the playback position as a fraction of the duration.
func (s Session) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return min(max(s.CurrentTime/s.Duration, 0), 1)
}
