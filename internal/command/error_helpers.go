// Where: internal/command/error_helpers.go
// What: Shared CLI error output.
// Why: Keep error and suggestion output consistent across commands.
package command

import (
	"fmt"
	"io"
)

// exitWithError prints an error message to the output writer and returns
// exit code 1 for CLI error handling.
func exitWithError(out io.Writer, err error) int {
	plainUI(out).Warn(fmt.Sprintf("✗ %v", err))
	return 1
}

// exitWithSuggestion prints an error followed by next steps.
func exitWithSuggestion(out io.Writer, message string, suggestions []string) int {
	ui := plainUI(out)
	ui.Warn(fmt.Sprintf("⚠️  %s", message))
	printList(ui.Info, "💡 Next steps:", suggestions)
	return 1
}

// exitWithSuggestionAndAvailable prints an error with suggestions and available options.
func exitWithSuggestionAndAvailable(out io.Writer, message string, suggestions, available []string) int {
	ui := plainUI(out)
	ui.Warn(fmt.Sprintf("⚠️  %s", message))
	printList(ui.Info, "💡 Next steps:", suggestions)
	printList(ui.Info, "🛠️  Available:", available)
	return 1
}

func printList(info func(string), title string, items []string) {
	if len(items) == 0 {
		return
	}
	info("")
	info(title)
	for _, item := range items {
		info(fmt.Sprintf("   - %s", item))
	}
}
