package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/syirilrakhulh/oddbit-player/constant"
	"github.com/syirilrakhulh/oddbit-player/log"
	"github.com/syirilrakhulh/oddbit-player/playback"
	"github.com/syirilrakhulh/oddbit-player/player"
)

// Options configures a playback session.
type Options struct {
	ID        string
	SourceURL func(id string) string
	AutoPlay  bool
	Volume    float64
}

// Run opens mpv on the media id and drives it from the terminal until the user quits
// or closes the mpv window.
func Run(options *Options) error {
	decoder := player.NewMPV()
	if err := decoder.Launch(fmt.Sprintf("%s - %s", constant.Oddbit, options.ID)); err != nil {
		return err
	}
	defer func() {
		if err := decoder.Close(); err != nil {
			log.Warnf("close mpv: %v", err)
		}
	}()

	machine := playback.NewMachine(decoder,
		playback.WithAutoPlay(options.AutoPlay),
		playback.WithVolume(options.Volume),
		playback.WithSourceURL(options.SourceURL),
	)
	program := tea.NewProgram(newModel(options.ID, machine), tea.WithAltScreen())

	var translator player.Translator
	listener := player.NewEventListener(decoder.Socket(), func(name string, data any) {
		if msg := translator.Translate(name, data); msg != nil {
			program.Send(msg)
		}
	})
	if err := listener.Start(); err != nil {
		return err
	}
	defer listener.Stop()

	go func() {
		<-decoder.Wait()
		program.Send(decoderExitedMsg{})
	}()

	_, err := program.Run()
	return err
}
