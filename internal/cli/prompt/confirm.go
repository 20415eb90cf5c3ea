// Package prompt provides interactive terminal prompts for CLI commands.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// ErrAborted is returned when the user aborts a prompt (Ctrl+C).
var ErrAborted = errors.New("aborted")

// ErrNotInteractive is returned when a prompt is needed but stdin is not a
// terminal.
var ErrNotInteractive = errors.New("stdin is not a terminal")

// IsInteractive reports whether in is a terminal that can answer prompts.
func IsInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Confirm prompts the user for yes/no confirmation on in.
// Returns ErrNotInteractive when in is not a terminal and ErrAborted if the
// user presses Ctrl+C.
func Confirm(in io.Reader, label string, defaultYes bool) (bool, error) {
	if !IsInteractive(in) {
		return false, ErrNotInteractive
	}

	defaultStr := "y/N"
	if defaultYes {
		defaultStr = "Y/n"
	}

	p := promptui.Prompt{
		Label:     fmt.Sprintf("%s [%s]", label, defaultStr),
		IsConfirm: true,
		Stdin:     io.NopCloser(in),
	}

	result, err := p.Run()
	if err != nil {
		switch {
		case errors.Is(err, promptui.ErrInterrupt):
			return false, ErrAborted
		case errors.Is(err, promptui.ErrAbort):
			return false, nil
		case result == "":
			return defaultYes, nil
		default:
			return false, err
		}
	}

	answer := strings.ToLower(result)
	return answer == "y" || answer == "yes", nil
}

// ConfirmWithForce returns true immediately if force is true,
// otherwise prompts for confirmation.
func ConfirmWithForce(in io.Reader, label string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	return Confirm(in, label, false)
}
