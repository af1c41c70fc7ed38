package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/PolarWolf314/vigenere/internal/ui"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner on w with the given message when
// not in verbose or debug mode. The spinner only animates when w is a
// terminal. Returns the spinner and a function that should be deferred to
// clean up.
//
// spinner.FinalMSG values do not need trailing newlines. The cleanup function
// prints the final message to w after the spinner line is cleared.
func startSpinner(w io.Writer, message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Fprint(w, finalMsg)
		}
	}

	return s, cleanup
}
