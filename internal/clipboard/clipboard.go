// Package clipboard provides cross-platform clipboard access via shell commands.
package clipboard

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard command is available.
var ErrUnavailable = errors.New("clipboard unavailable")

// copyCommands lists candidate clipboard commands per OS, in preference
// order. On Linux, wl-copy covers Wayland and xclip/xsel cover X11.
var copyCommands = map[string][][]string{
	"darwin": {{"pbcopy"}},
	"linux": {
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
	},
}

// lookupCommand finds the first available clipboard command for this OS.
func lookupCommand() []string {
	for _, argv := range copyCommands[runtime.GOOS] {
		if _, err := exec.LookPath(argv[0]); err == nil {
			return argv
		}
	}
	return nil
}

// IsAvailable reports whether clipboard copying can work on this system.
func IsAvailable() bool {
	return lookupCommand() != nil
}

// Copy writes text to the system clipboard, or returns ErrUnavailable if no
// clipboard command exists.
func Copy(text string) error {
	argv := lookupCommand()
	if argv == nil {
		return ErrUnavailable
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
