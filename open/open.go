// Package open hands a URL to the system's default handler or to a named application.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/syirilrakhulh/oddbit-player/constant"
)

// Start launches target without waiting for the handler to exit.
// An empty app selects the default handler.
func Start(target, app string) error {
	cmd, err := command(runtime.GOOS, target, app)
	if err != nil {
		return err
	}
	return cmd.Start()
}

func command(goos, target, app string) (*exec.Cmd, error) {
	if app != "" {
		return commandWith(goos, target, app)
	}

	switch goos {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", target), nil
	case constant.Darwin:
		return exec.Command("open", target), nil
	case constant.Linux:
		return exec.Command("xdg-open", target), nil
	case constant.Android:
		return exec.Command("termux-open", target), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}

func commandWith(goos, target, app string) (*exec.Cmd, error) {
	switch goos {
	case constant.Windows:
		// start treats & as a command separator
		return exec.Command("cmd", "/C", "start", "", app, strings.ReplaceAll(target, "&", "^&")), nil
	case constant.Darwin:
		return exec.Command("open", "-a", app, target), nil
	case constant.Linux:
		return exec.Command(app, target), nil
	case constant.Android:
		return exec.Command("termux-open", "--choose", target), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}
