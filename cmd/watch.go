// Package cmd implements the command-line interface for oddbit.
package cmd

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/syirilrakhulh/oddbit-player/color"
	"github.com/syirilrakhulh/oddbit-player/gallery"
	"github.com/syirilrakhulh/oddbit-player/icon"
	"github.com/syirilrakhulh/oddbit-player/key"
	"github.com/syirilrakhulh/oddbit-player/open"
	"github.com/syirilrakhulh/oddbit-player/style"
	"github.com/syirilrakhulh/oddbit-player/tui"
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolP("autoplay", "a", false, "Start playing as soon as the video can play (starts muted)")
	lo.Must0(viper.BindPFlag(key.PlayerAutoplay, watchCmd.Flags().Lookup("autoplay")))

	watchCmd.Flags().Float64("volume", 1, "Initial volume, from 0 to 1")
	lo.Must0(viper.BindPFlag(key.PlayerVolume, watchCmd.Flags().Lookup("volume")))

	watchCmd.Flags().BoolP("browser", "b", false, "Open the stream in a web browser instead of mpv")
	watchCmd.Flags().String("app", "", "Application to open the stream with, together with --browser")
}

// watchCmd plays one video from the server through mpv, controlled from the terminal.
var watchCmd = &cobra.Command{
	Use:   "watch [id]",
	Short: "Play a video from an oddbit server",
	Long: `Play a video from an oddbit server through mpv.
When no id is given, the videos of the server are offered for selection.`,
	Args:    cobra.MaximumNArgs(1),
	Example: "  oddbit watch big-buck-bunny",
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return gallery.Known(), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		browser := lo.Must(cmd.Flags().GetBool("browser"))
		if !browser {
			CheckDependencies()
		}

		client := newGalleryClient()
		ids, err := client.All(context.Background())
		handleErr(err)

		var id string
		if len(args) == 0 {
			if len(ids) == 0 {
				handleErr(fmt.Errorf("no videos on %s", client.Base()))
			}

			handleErr(survey.AskOne(&survey.Select{
				Message:  "Pick a video",
				Options:  ids,
				PageSize: 9,
			}, &id))
		} else {
			id = args[0]
		}

		if !lo.Contains(ids, id) {
			handleErr(errUnknownVideo(id, ids))
		}

		if browser {
			target := client.StreamURL(id)
			handleErr(open.Start(target, lo.Must(cmd.Flags().GetString("app"))))
			fmt.Printf("%s opened %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), target)
			return
		}

		handleErr(tui.Run(&tui.Options{
			ID:        id,
			SourceURL: client.StreamURL,
			AutoPlay:  viper.GetBool(key.PlayerAutoplay),
			Volume:    viper.GetFloat64(key.PlayerVolume),
		}))
	},
}

func errUnknownVideo(id string, ids []string) error {
	closest, ok := gallery.Suggest(id, ids).Get()
	if !ok {
		return fmt.Errorf("unknown video %s", style.Fg(color.Red)(id))
	}

	return fmt.Errorf(
		"unknown video %s, did you mean %s?",
		style.Fg(color.Red)(id),
		style.Fg(color.Yellow)(closest),
	)
}
