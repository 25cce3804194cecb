package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrQuit is returned by PromptForQuestion when the user leaves the chat.
var ErrQuit = errors.New("quit")

// PromptForQuestion asks for the next question. Ctrl-C, EOF and the words
// exit/quit end the session.
func PromptForQuestion() (string, error) {
	var question string
	prompt := &survey.Input{
		Message: "Ask a question about a stock or multiple stocks 📈:",
		Help:    `e.g. "What is the current price of Meta stock?" or "Show me the historical prices of Apple vs Microsoft stock over the past 6 months."`,
	}

	if err := survey.AskOne(prompt, &question); err != nil {
		if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
			return "", ErrQuit
		}
		return "", err
	}

	question = strings.TrimSpace(question)
	if isQuit(question) {
		return "", ErrQuit
	}
	return question, nil
}

func isQuit(input string) bool {
	switch strings.ToLower(input) {
	case "exit", "quit", "q":
		return true
	}
	return false
}
