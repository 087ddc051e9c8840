package tui

import (
	"errors"
	"math"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/syirilrakhulh/oddbit-player/playback"
)

type fakeDecoder struct {
	source string
	seeks  []float64
	plays  int
	pauses int
	volume float64
	muted  bool
}

func (d *fakeDecoder) SetSource(url string) error    { d.source = url; return nil }
func (d *fakeDecoder) Reload() error                 { return nil }
func (d *fakeDecoder) Play() error                   { d.plays++; return nil }
func (d *fakeDecoder) Pause() error                  { d.pauses++; return nil }
func (d *fakeDecoder) Seek(seconds float64) error    { d.seeks = append(d.seeks, seconds); return nil }
func (d *fakeDecoder) SetVolume(level float64) error { d.volume = level; return nil }
func (d *fakeDecoder) SetMuted(muted bool) error     { d.muted = muted; return nil }

// drain runs cmd the way the program would, feeding every resulting message back into m.
func drain(m *model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			drain(m, c)
		}
	default:
		_, next := m.Update(msg)
		drain(m, next)
	}
}

func press(m *model, keys ...tea.KeyMsg) {
	for _, k := range keys {
		_, cmd := m.Update(k)
		drain(m, cmd)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(decoder *fakeDecoder) *model {
	machine := playback.NewMachine(decoder,
		playback.WithHideDelay(time.Millisecond),
		playback.WithSourceURL(func(id string) string { return "http://localhost:3000/api/video/" + id }),
	)
	m := newModel("clip", machine)
	drain(m, m.Init())
	return m
}

func TestModel(t *testing.T) {
	Convey("Given a model hosting a session", t, func() {
		decoder := &fakeDecoder{}
		m := newTestModel(decoder)

		Convey("Init assigns the source", func() {
			So(decoder.source, ShouldEqual, "http://localhost:3000/api/video/clip")
			So(m.machine.Session().State, ShouldEqual, playback.Loading)
			So(m.View(), ShouldContainSubstring, "clip")
			So(m.View(), ShouldContainSubstring, "Loading video")
		})

		Convey("When the video can play", func() {
			_, cmd := m.Update(playback.CanPlayMsg{})
			drain(m, cmd)
			_, cmd = m.Update(playback.DurationChangeMsg{Seconds: 120})
			drain(m, cmd)

			So(m.machine.Session().State, ShouldEqual, playback.Ready)

			Convey("Space asks the decoder to play", func() {
				press(m, tea.KeyMsg{Type: tea.KeySpace})
				So(decoder.plays, ShouldEqual, 1)
			})

			Convey("Arrows seek by five seconds", func() {
				_, cmd := m.Update(playback.TimeUpdateMsg{Seconds: 30})
				drain(m, cmd)

				press(m, tea.KeyMsg{Type: tea.KeyRight})
				So(decoder.seeks, ShouldResemble, []float64{35})
				So(m.machine.Session().CurrentTime, ShouldEqual, 35)

				press(m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
				So(m.machine.Session().CurrentTime, ShouldEqual, 25)
			})

			Convey("Seeking before the start stops at zero", func() {
				press(m, tea.KeyMsg{Type: tea.KeyLeft})
				So(m.machine.Session().CurrentTime, ShouldEqual, 0)
			})

			Convey("Volume keys step by a tenth and stay in range", func() {
				press(m, tea.KeyMsg{Type: tea.KeyUp})
				So(m.machine.Session().Volume, ShouldEqual, 1)

				press(m, tea.KeyMsg{Type: tea.KeyDown})
				So(math.Abs(m.machine.Session().Volume-0.9), ShouldBeLessThan, 1e-9)
			})

			Convey("m toggles mute", func() {
				press(m, runes("m"))
				So(m.machine.Session().Muted, ShouldBeTrue)
				So(decoder.muted, ShouldBeTrue)

				press(m, runes("m"))
				So(m.machine.Session().Muted, ShouldBeFalse)
			})

			Convey("The control bar shows time and volume", func() {
				_, cmd := m.Update(playback.InteractMsg{})
				So(cmd, ShouldNotBeNil)

				view := m.View()
				So(view, ShouldContainSubstring, "00:00:00 / 00:02:00")
				So(view, ShouldContainSubstring, "100%")
			})
		})

		Convey("r is ignored unless the session failed", func() {
			press(m, runes("r"))
			So(m.machine.Session().State, ShouldEqual, playback.Loading)
		})

		Convey("When loading fails", func() {
			_, cmd := m.Update(playback.DecodeErrorMsg{Err: errors.New("404")})
			drain(m, cmd)

			So(m.machine.Session().State, ShouldEqual, playback.Error)
			So(m.View(), ShouldContainSubstring, playback.MsgLoadFailed)
			So(m.View(), ShouldContainSubstring, "press r to retry")

			Convey("r retries", func() {
				press(m, runes("r"))
				So(m.machine.Session().State, ShouldEqual, playback.Loading)
			})
		})

		Convey("q quits", func() {
			_, cmd := m.Update(runes("q"))
			So(cmd, ShouldNotBeNil)
			So(cmd(), ShouldResemble, tea.QuitMsg{})
			So(m.View(), ShouldBeEmpty)
		})

		Convey("Nothing in flight reaches the session after quitting", func() {
			hide := m.machine.Update(playback.InteractMsg{})
			So(m.machine.Session().ControlsVisible, ShouldBeTrue)

			_, cmd := m.Update(runes("q"))
			So(cmd(), ShouldResemble, tea.QuitMsg{})
			before := m.machine.Session()

			_, next := m.Update(hide())
			So(next, ShouldBeNil)

			_, next = m.Update(playback.DecodeErrorMsg{Err: errors.New("late")})
			So(next, ShouldBeNil)

			So(m.machine.Session(), ShouldResemble, before)
			So(m.machine.Session().ControlsVisible, ShouldBeTrue)
		})

		Convey("Closing the mpv window quits", func() {
			_, cmd := m.Update(decoderExitedMsg{})
			So(cmd(), ShouldResemble, tea.QuitMsg{})
		})

		Convey("A window resize sizes the seek bar", func() {
			m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
			So(m.progress.Width, ShouldEqual, 60)
			So(m.help.Width, ShouldEqual, 100)
		})
	})
}

func TestFormatClock(t *testing.T) {
	Convey("FormatClock renders HH:MM:SS", t, func() {
		So(FormatClock(0), ShouldEqual, "00:00:00")
		So(FormatClock(59.9), ShouldEqual, "00:00:59")
		So(FormatClock(3725.4), ShouldEqual, "01:02:05")
		So(FormatClock(-3), ShouldEqual, "00:00:00")
		So(FormatClock(math.NaN()), ShouldEqual, "00:00:00")
		So(FormatClock(math.Inf(1)), ShouldEqual, "00:00:00")
	})
}
