// Package cmd implements the command-line interface for oddbit.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/syirilrakhulh/oddbit-player/color"
	"github.com/syirilrakhulh/oddbit-player/gallery"
	"github.com/syirilrakhulh/oddbit-player/icon"
	"github.com/syirilrakhulh/oddbit-player/style"
	"github.com/syirilrakhulh/oddbit-player/util"
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntP("page", "p", 1, "Page of the listing to show")
	listCmd.Flags().StringP("filter", "f", "", "Fuzzy filter over every video id instead of a single page")
	listCmd.Flags().BoolP("json", "j", false, "Print the raw listing response as JSON")

	listCmd.MarkFlagsMutuallyExclusive("page", "filter")
	listCmd.SetOut(os.Stdout)
}

// listCmd prints the gallery of a running server.
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "Browse the videos offered by an oddbit server",
	Aliases: []string{"ls"},
	Example: "  oddbit list --page 2\n  oddbit list --filter trailer",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			client = newGalleryClient()
			ctx    = context.Background()
			query  = lo.Must(cmd.Flags().GetString("filter"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
		)

		if query != "" {
			ids, err := client.All(ctx)
			handleErr(err)

			matches := gallery.Filter(ids, query)
			if asJson {
				handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(matches))
				return
			}

			if len(matches) == 0 {
				cmd.Printf("%s no videos match %s\n", icon.Get(icon.Fail), style.Fg(color.Yellow)(query))
				return
			}

			for _, id := range matches {
				cmd.Println(videoLine(id))
			}
			return
		}

		page, err := client.Page(ctx, lo.Must(cmd.Flags().GetInt("page")))
		handleErr(err)

		if asJson {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(page))
			return
		}

		current := lo.Must(cmd.Flags().GetInt("page"))
		cmd.Printf("%s %s\n\n",
			style.Title("Gallery"),
			style.Faint(fmt.Sprintf("%s on %s", util.Quantify(page.Total, "video", "videos"), client.Base())),
		)

		if len(page.Videos) == 0 {
			cmd.Println(style.Faint("  nothing on this page"))
		}
		for _, v := range page.Videos {
			cmd.Println(videoLine(v.ID))
		}

		if page.Pages > 1 {
			cmd.Println()
			cmd.Println(gallery.PageWindow(current, page.Pages).String())
		}
	},
}

func videoLine(id string) string {
	width := 80
	if w, _, err := util.TerminalSize(); err == nil && w > 0 {
		width = w
	}

	return style.Truncate(width)(fmt.Sprintf("  %s %s", icon.Get(icon.Video), id))
}
