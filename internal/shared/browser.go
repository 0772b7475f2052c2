package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

// browserCommands maps GOOS values to the command that hands a URL to the
// default browser.
var browserCommands = map[string][]string{
	"darwin":  {"open"},
	"linux":   {"xdg-open"},
	"windows": {"cmd", "/c", "start"},
}

// OpenBrowser launches the default system browser at url. The TUI uses this
// to open a station's homepage.
func OpenBrowser(url string) error {
	rt := getRuntime()
	args, ok := browserCommands[rt]
	if !ok {
		return fmt.Errorf("unsupported platform: %s", rt)
	}

	cmd := exec.Command(args[0], append(args[1:], url)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
