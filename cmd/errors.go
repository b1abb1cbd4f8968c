package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/josephgoksu/horizon/internal/app"
	"github.com/josephgoksu/horizon/internal/llm"
	"github.com/josephgoksu/horizon/internal/project"
	"github.com/spf13/viper"
)

// FriendlyMessage maps an error to a message for the terminal. Unknown errors
// are shown as-is.
func FriendlyMessage(err error) string {
	var parseErr *llm.ParseError
	var providerErr *llm.ProviderError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, llm.ErrNoCredential):
		return "API key is missing. Set HORIZON_API_KEY (or API_KEY), or ai.apiKey in .horizon.yaml."
	case errors.Is(err, context.Canceled):
		return "Cancelled."
	case errors.Is(err, context.DeadlineExceeded):
		return "The AI took too long to answer. Raise ai.timeout or try again."
	case errors.Is(err, app.ErrBlankIdea):
		return "Describe your idea, e.g. horizon new \"a smart mirror\"."
	case errors.Is(err, app.ErrBlankQuery):
		return "Enter something to research."
	case errors.Is(err, project.ErrNotFound):
		return "No project with that ID."
	case errors.As(err, &parseErr):
		return "The AI returned a plan Horizon could not read. Try again or rephrase the idea."
	case errors.Is(err, llm.ErrEmptyResponse):
		return "The AI returned an empty response. Try again."
	case errors.As(err, &providerErr):
		return "The AI request failed. Check your network and API key."
	default:
		return err.Error()
	}
}

// PrintError prints an error message without exiting, allowing for recovery.
// With --verbose the technical error is printed instead.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

// LogError logs an error without printing to stderr if verbose mode is off.
func LogError(msg string, err error) {
	if viper.GetBool("verbose") {
		if err != nil {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s: %v\n", msg, err)
		} else {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s\n", msg)
		}
	}
}
