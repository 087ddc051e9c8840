package playback

// Messages delivered to Machine.Update. Decoder events, timer firings and user
// intents all arrive through this single entry point.

// SourceAssignedMsg points the session at a media id.
type SourceAssignedMsg struct{ ID string }

// CanPlayMsg is sent by the decoder once enough data is buffered to start.
type CanPlayMsg struct{}

// PlayMsg is the user intent to start playback.
type PlayMsg struct{}

// PlayingMsg is sent by the decoder when playback actually starts.
type PlayingMsg struct{}

// PauseMsg is the user intent to pause.
type PauseMsg struct{}

// PausedMsg is sent by the decoder when playback pauses.
type PausedMsg struct{}

// EndedMsg is sent by the decoder when the media reaches its end.
type EndedMsg struct{}

// DecodeErrorMsg is sent by the decoder when loading or decoding fails.
type DecodeErrorMsg struct{ Err error }

// RetryMsg reloads the current source after an error.
type RetryMsg struct{}

// TimeUpdateMsg carries the decoder position in seconds.
type TimeUpdateMsg struct{ Seconds float64 }

// DurationChangeMsg carries the media duration in seconds.
type DurationChangeMsg struct{ Seconds float64 }

// SeekMsg moves playback to an absolute position in seconds.
type SeekMsg struct{ Seconds float64 }

// VolumeMsg sets the output level in [0, 1].
type VolumeMsg struct{ Level float64 }

// ToggleMuteMsg flips the muted flag.
type ToggleMuteMsg struct{}

// InteractMsg records a pointer or key interaction and reveals the controls.
type InteractMsg struct{}

// MetadataMsg carries the natural size of the decoded picture.
type MetadataMsg struct{ Width, Height int }

// FullscreenMsg reports that the host entered or left fullscreen.
type FullscreenMsg struct{ On bool }

// RenderFailedMsg reports that the render pipeline could not be set up.
type RenderFailedMsg struct{ Err error }

// TogglePlayMsg is the play/pause button: pause while playing, play from ready or paused.
type TogglePlayMsg struct{}

// ToggleFullscreenMsg asks the fullscreen host to flip the fullscreen mode.
type ToggleFullscreenMsg struct{}

// playRejectedMsg reports that the decoder refused a play request.
type playRejectedMsg struct {
	err  error
	auto bool
}

// hideControlsMsg fires when the controls timer elapses. Stale timers carry an old seq.
type hideControlsMsg struct{ seq int }
