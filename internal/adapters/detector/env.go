// Package detector decides how progress is rendered for the current terminal.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the progress rendering mode.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTUI renders live per-platform progress.
	ModeTUI
	// ModePlain renders no live progress.
	ModePlain
)

// DetectEnvironment returns ModeTUI when stderr is a terminal outside CI.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePlain
	}
	return ModeTUI
}

// ResolveMode applies the --progress flag to the detected mode.
// userFlag is one of "auto", "tui", "plain" or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "tui":
		return ModeTUI
	case "plain", "none":
		return ModePlain
	default:
		return autoDetected
	}
}
