// Package cmd implements the command-line interface for oddbit.
package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/syirilrakhulh/oddbit-player/color"
	"github.com/syirilrakhulh/oddbit-player/constant"
	"github.com/syirilrakhulh/oddbit-player/icon"
	"github.com/syirilrakhulh/oddbit-player/player"
	"github.com/syirilrakhulh/oddbit-player/style"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkCmd reports whether the external dependencies of watch are installed.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that the video decoder required by watch is installed",
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()
		fmt.Printf("%s %s found\n", style.Fg(color.Green)(icon.Get(icon.Success)), player.Executable)
	},
}

// CheckDependencies exits with install instructions when mpv is not in PATH.
func CheckDependencies() {
	if !player.Available() {
		printMissingDependencyError(player.Executable)
		os.Exit(1)
	}
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case constant.Darwin:
		installCmd = "brew install mpv"
	case constant.Linux:
		installCmd = "sudo apt install mpv"
	case constant.Windows:
		installCmd = "scoop install mpv"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(color.HiRed).Render(fmt.Sprintf("%s Missing dependency", icon.Get(icon.Fail)))
	body := fmt.Sprintf("%s was not found in your PATH. It is needed to decode and display videos.", style.Bold(dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\nTo install it, try running:\n  %s", style.New().Foreground(color.Orange).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, suggestion)))
}
