package playback

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeDecoder struct {
	calls      []string
	source     string
	volume     float64
	muted      bool
	playErr    error
	sourceErr  error
	fullscreen bool
}

func (d *fakeDecoder) SetSource(url string) error {
	d.calls = append(d.calls, "source")
	d.source = url
	return d.sourceErr
}
func (d *fakeDecoder) Reload() error { d.calls = append(d.calls, "reload"); return nil }
func (d *fakeDecoder) Play() error   { d.calls = append(d.calls, "play"); return d.playErr }
func (d *fakeDecoder) Pause() error  { d.calls = append(d.calls, "pause"); return nil }
func (d *fakeDecoder) Seek(float64) error {
	d.calls = append(d.calls, "seek")
	return nil
}
func (d *fakeDecoder) SetVolume(level float64) error { d.volume = level; return nil }
func (d *fakeDecoder) SetMuted(muted bool) error     { d.muted = muted; return nil }

type fakeRenderer struct {
	mounts  int
	starts  int
	resizes int
}

func (r *fakeRenderer) Mount() tea.Cmd {
	return func() tea.Msg {
		r.mounts++
		return nil
	}
}

func (r *fakeRenderer) Start()        { r.starts++ }
func (r *fakeRenderer) Resize() error { r.resizes++; return nil }

// run executes cmd and feeds its message back, the way the event loop would.
func run(m *Machine, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			run(m, c)
		}
	default:
		run(m, m.Update(msg))
	}
}

func send(m *Machine, msgs ...tea.Msg) {
	for _, msg := range msgs {
		run(m, m.Update(msg))
	}
}

func TestMachine(t *testing.T) {
	Convey("Given a machine without autoplay", t, func() {
		decoder := &fakeDecoder{}
		renderer := &fakeRenderer{}
		m := NewMachine(decoder,
			WithRenderer(renderer),
			WithSourceURL(func(id string) string { return "http://localhost:3000/api/video/" + id }),
		)

		So(m.Session().State, ShouldEqual, Loading)
		So(m.Session().Volume, ShouldEqual, 1)
		So(m.Session().Muted, ShouldBeFalse)

		send(m, SourceAssignedMsg{ID: "clip"})

		Convey("Assigning a source loads it through the decoder", func() {
			So(decoder.source, ShouldEqual, "http://localhost:3000/api/video/clip")
			So(m.Session().MediaID, ShouldEqual, "clip")
			So(m.Session().State, ShouldEqual, Loading)
			So(renderer.mounts, ShouldEqual, 1)
		})

		Convey("canplay moves to ready without starting", func() {
			send(m, CanPlayMsg{})
			So(m.Session().State, ShouldEqual, Ready)
			So(decoder.calls, ShouldNotContain, "play")
		})

		Convey("From ready", func() {
			send(m, CanPlayMsg{})

			Convey("play followed by the decoder play event is playing", func() {
				send(m, PlayMsg{}, PlayingMsg{})
				So(m.Session().State, ShouldEqual, Playing)
				So(renderer.starts, ShouldEqual, 1)

				Convey("then pause is paused", func() {
					send(m, PauseMsg{})
					So(decoder.calls, ShouldContain, "pause")
					send(m, PausedMsg{})
					So(m.Session().State, ShouldEqual, Paused)
				})

				Convey("then ended is paused, never error", func() {
					send(m, EndedMsg{})
					So(m.Session().State, ShouldEqual, Paused)
					So(m.Session().ErrorMessage, ShouldBeEmpty)
				})

				Convey("toggling play pauses", func() {
					send(m, TogglePlayMsg{})
					So(decoder.calls[len(decoder.calls)-1], ShouldEqual, "pause")
				})
			})

			Convey("a rejected play is an error", func() {
				decoder.playErr = errors.New("denied")
				send(m, PlayMsg{})
				So(m.Session().State, ShouldEqual, Error)
				So(m.Session().ErrorMessage, ShouldEqual, MsgPlayFailed)
			})

			Convey("pause is ignored", func() {
				So(m.Update(PauseMsg{}), ShouldBeNil)
				So(m.Session().State, ShouldEqual, Ready)
			})

			Convey("a decode error says playback failed", func() {
				send(m, DecodeErrorMsg{Err: errors.New("corrupt")})
				So(m.Session().State, ShouldEqual, Error)
				So(m.Session().ErrorMessage, ShouldEqual, MsgPlayError)
			})
		})

		Convey("A decode error while loading says loading failed", func() {
			send(m, DecodeErrorMsg{Err: errors.New("404")})
			So(m.Session().State, ShouldEqual, Error)
			So(m.Session().ErrorMessage, ShouldEqual, MsgLoadFailed)

			Convey("retry returns to loading and clears the message", func() {
				send(m, RetryMsg{})
				So(m.Session().State, ShouldEqual, Loading)
				So(m.Session().ErrorMessage, ShouldBeEmpty)
				So(decoder.calls[len(decoder.calls)-1], ShouldEqual, "reload")
				So(renderer.mounts, ShouldEqual, 2)
			})

			Convey("nothing but retry leaves the error state", func() {
				send(m, CanPlayMsg{}, PlayMsg{}, PlayingMsg{}, PausedMsg{}, EndedMsg{}, SeekMsg{Seconds: 3})
				So(m.Session().State, ShouldEqual, Error)
				So(m.Session().ErrorMessage, ShouldEqual, MsgLoadFailed)
			})
		})

		Convey("A failing source is a load error", func() {
			decoder.sourceErr = errors.New("unreachable")
			send(m, SourceAssignedMsg{ID: "other"})
			So(m.Session().State, ShouldEqual, Error)
			So(m.Session().ErrorMessage, ShouldEqual, MsgLoadFailed)
		})

		Convey("Retry is ignored outside the error state", func() {
			So(m.Update(RetryMsg{}), ShouldBeNil)
			So(decoder.calls, ShouldNotContain, "reload")
		})

		Convey("Seeking", func() {
			send(m, CanPlayMsg{}, DurationChangeMsg{Seconds: 60})

			Convey("updates the position optimistically", func() {
				send(m, SeekMsg{Seconds: 12.5})
				So(m.Session().CurrentTime, ShouldEqual, 12.5)
				So(decoder.calls, ShouldContain, "seek")
			})

			Convey("is bounded by the duration", func() {
				send(m, SeekMsg{Seconds: 90})
				So(m.Session().CurrentTime, ShouldEqual, 60)
				send(m, SeekMsg{Seconds: -5})
				So(m.Session().CurrentTime, ShouldEqual, 0)
			})
		})

		Convey("Seeking while loading is ignored", func() {
			So(m.Update(SeekMsg{Seconds: 4}), ShouldBeNil)
			So(m.Session().CurrentTime, ShouldEqual, 0)
		})

		Convey("Volume", func() {
			Convey("is clamped and zero means muted", func() {
				send(m, VolumeMsg{Level: 1.7})
				So(m.Session().Volume, ShouldEqual, 1)
				So(m.Session().Muted, ShouldBeFalse)

				send(m, VolumeMsg{Level: 0})
				So(m.Session().Muted, ShouldBeTrue)
				So(decoder.muted, ShouldBeTrue)
			})

			Convey("muting forces zero and unmuting restores full", func() {
				send(m, VolumeMsg{Level: 0.4}, ToggleMuteMsg{})
				So(m.Session().Muted, ShouldBeTrue)
				So(m.Session().Volume, ShouldEqual, 0)

				send(m, ToggleMuteMsg{})
				So(m.Session().Muted, ShouldBeFalse)
				So(m.Session().Volume, ShouldEqual, 1)
				So(decoder.volume, ShouldEqual, 1)
			})
		})

		Convey("Metadata and fullscreen resize the surface", func() {
			send(m, MetadataMsg{Width: 640, Height: 360}, FullscreenMsg{On: true})
			So(renderer.resizes, ShouldEqual, 2)
			So(m.Session().Width, ShouldEqual, 640)
			So(m.Session().Fullscreen, ShouldBeTrue)
		})

		Convey("Toggling fullscreen without a host flips the flag", func() {
			send(m, ToggleFullscreenMsg{})
			So(m.Session().Fullscreen, ShouldBeTrue)
		})

		Convey("A render failure is an error", func() {
			send(m, RenderFailedMsg{Err: errors.New("render context unavailable")})
			So(m.Session().State, ShouldEqual, Error)
			So(m.Session().ErrorMessage, ShouldEqual, "render context unavailable")
		})

		Convey("A render failure without a cause still has a message", func() {
			So(func() { send(m, RenderFailedMsg{}) }, ShouldNotPanic)
			So(m.Session().State, ShouldEqual, Error)
			So(m.Session().ErrorMessage, ShouldEqual, MsgRenderFailed)
		})
	})

	Convey("Given an autoplaying machine", t, func() {
		decoder := &fakeDecoder{}
		m := NewMachine(decoder, WithAutoPlay(true), WithVolume(0.8))

		Convey("it starts muted at zero volume", func() {
			So(m.Session().Muted, ShouldBeTrue)
			So(m.Session().Volume, ShouldEqual, 0)
			send(m, SourceAssignedMsg{ID: "clip"})
			So(decoder.muted, ShouldBeTrue)
		})

		Convey("canplay starts playback", func() {
			send(m, SourceAssignedMsg{ID: "clip"}, CanPlayMsg{})
			So(decoder.calls, ShouldContain, "play")
			So(m.Session().State, ShouldEqual, Ready)
		})

		Convey("a rejected autoplay is paused, not an error", func() {
			decoder.playErr = errors.New("not allowed")
			send(m, SourceAssignedMsg{ID: "clip"}, CanPlayMsg{})
			So(m.Session().State, ShouldEqual, Paused)
			So(m.Session().ErrorMessage, ShouldBeEmpty)
		})
	})
}

func TestControls(t *testing.T) {
	Convey("Given a playing session", t, func() {
		m := NewMachine(&fakeDecoder{}, WithHideDelay(time.Millisecond))
		send(m, SourceAssignedMsg{ID: "clip"}, CanPlayMsg{}, PlayMsg{}, PlayingMsg{})

		Convey("an interaction shows the controls until the timer fires", func() {
			tick := m.Update(InteractMsg{})
			So(tick, ShouldNotBeNil)
			So(m.Session().ControlsShown(), ShouldBeTrue)

			run(m, tick)
			So(m.Session().ControlsVisible, ShouldBeFalse)
		})

		Convey("a newer interaction outlives the older timer", func() {
			first := m.Update(InteractMsg{})
			second := m.Update(InteractMsg{})

			m.Update(first())
			So(m.Session().ControlsVisible, ShouldBeTrue)

			m.Update(second())
			So(m.Session().ControlsVisible, ShouldBeFalse)
		})
	})

	Convey("Controls are hidden behind the loading and error overlays", t, func() {
		s := NewSession(false)
		s.ControlsVisible = true
		So(s.ControlsShown(), ShouldBeFalse)

		s.State = Error
		So(s.ControlsShown(), ShouldBeFalse)

		s.Fullscreen = true
		So(s.ControlsShown(), ShouldBeTrue)

		s.State = Paused
		s.Fullscreen = false
		So(s.ControlsShown(), ShouldBeTrue)
	})
}

func TestState(t *testing.T) {
	Convey("State labels", t, func() {
		So(Loading.String(), ShouldEqual, "Loading")
		So(Error.String(), ShouldEqual, "Error")
		So(State(42).String(), ShouldEqual, "Unknown")
	})

	Convey("Progress", t, func() {
		s := Session{CurrentTime: 30, Duration: 120}
		So(s.Progress(), ShouldEqual, 0.25)
		So(Session{CurrentTime: 5}.Progress(), ShouldEqual, 0)
	})
}
