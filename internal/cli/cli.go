// Package cli provides the command-line interface for TickerTalk
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

// errQuestionFailed marks a question whose failure was already shown to the
// user, so it is not reported a second time.
var errQuestionFailed = errors.New("question failed")

// Run starts the CLI application
func Run() {
	os.Exit(execute(NewRootCmd()))
}

// execute runs cmd and reports its error once. It returns the exit code.
func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errQuestionFailed) {
			DisplayError(err)
		}
		return 1
	}
	return 0
}
