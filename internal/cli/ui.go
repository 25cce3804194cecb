package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dyike/TickerTalk/internal/dispatch"
)

// out is where the Display helpers write.
var out io.Writer = os.Stdout

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Background(lipgloss.Color("#1F2937")).
			Padding(0, 1).
			MarginBottom(1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Italic(true)

	answerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#10B981")).
			Padding(1, 2).
			Width(80)

	chartStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	inProgressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

// DisplayWelcomeBanner shows the title and the example questions.
func DisplayWelcomeBanner(modelID string) {
	fmt.Fprintln(out, titleStyle.Render("📈 Stock Analysis Chatbot with " + modelID))
	fmt.Fprintln(out, hintStyle.Render(`Try asking: "What is the current price of Meta stock?" or ` +
		`"Show me the historical prices of Apple vs Microsoft stock over the past 6 months."`))
	fmt.Fprintln(out, hintStyle.Render("Type exit or press Ctrl-C to leave."))
	fmt.Fprintln(out)
}

func DisplayThinking() {
	fmt.Fprintln(out, inProgressStyle.Render("🤔 Thinking..."))
}

// FormatAnswer renders the chart location, when there is one, above the answer text.
func FormatAnswer(answer *dispatch.Answer) string {
	var b strings.Builder
	if answer.ChartPath != "" {
		b.WriteString(chartStyle.Render(fmt.Sprintf("📊 Chart for %s: %s",
			strings.Join(answer.ChartSymbols, ", "), answer.ChartPath)))
		b.WriteString("\n")
	}
	b.WriteString(answerStyle.Render(answer.Text))
	return b.String()
}

func DisplayAnswer(answer *dispatch.Answer) {
	fmt.Fprintln(out, FormatAnswer(answer))
	fmt.Fprintln(out)
}

// DisplayFailure logs the cause and shows the user the generic failure message.
func DisplayFailure(err error) {
	log.Printf("[CLI] Question failed: %v", err)
	fmt.Fprintln(out, errorStyle.Render("❌ " + dispatch.FailureMessage))
	fmt.Fprintln(out)
}

// DisplayError shows an error message
func DisplayError(err error) {
	fmt.Fprintln(out, errorStyle.Render("❌ Error: " + err.Error()))
}

// DisplayInfo shows an info message
func DisplayInfo(message string) {
	fmt.Fprintln(out, lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Render("ℹ️  " + message))
}

// DisplaySuccess shows a success message
func DisplaySuccess(message string) {
	fmt.Fprintln(out, lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Render("✅ " + message))
}
