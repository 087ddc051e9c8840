// Package cmd implements the command-line interface for oddbit.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/syirilrakhulh/oddbit-player/color"
	"github.com/syirilrakhulh/oddbit-player/constant"
	"github.com/syirilrakhulh/oddbit-player/gallery"
	"github.com/syirilrakhulh/oddbit-player/icon"
	"github.com/syirilrakhulh/oddbit-player/key"
	"github.com/syirilrakhulh/oddbit-player/log"
	"github.com/syirilrakhulh/oddbit-player/style"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("url", "u", "", "Base URL of the oddbit server used by list and watch")
	lo.Must0(viper.BindPFlag(key.ClientServer, rootCmd.PersistentFlags().Lookup("url")))
}

// rootCmd defines the entry point for the oddbit application.
var rootCmd = &cobra.Command{
	Use:   constant.Oddbit,
	Short: "Stream a local video library over HTTP and watch it from the terminal",
	Long: style.Title("Oddbit Player") + "\n\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("  - Serve a directory of videos with HTTP range requests, browse it and play it through mpv"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

func newGalleryClient() *gallery.Client {
	return gallery.NewClient(viper.GetString(key.ClientServer))
}
