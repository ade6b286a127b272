package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mailgenie/internal/config"
)

var functionURL string

var rootCmd = &cobra.Command{
	Use:   "mailgenie",
	Short: "AI-powered email writing assistant",
	Long: `MailGenie drafts, replies to, summarizes and reformats emails using
the generate-email function.

The function URL defaults to $MAILGENIE_FUNCTION_URL.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&functionURL, "function-url", config.LoadClient().FunctionURL,
		"URL of the generate-email function")

	rootCmd.AddCommand(generateCmd, templatesCmd, kindsCmd, tonesCmd)
}

// Execute runs the root command. Errors already shown through the notifier
// are not printed again.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.As(err, new(notifiedError)) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// notifiedError marks an error the user has already seen as a notification.
type notifiedError struct {
	err error
}

func (e notifiedError) Error() string { return e.err.Error() }
func (e notifiedError) Unwrap() error { return e.err }

// cliNotifier prints notifications the way the web UI shows toasts.
type cliNotifier struct {
	errOut io.Writer
}

func (n cliNotifier) Success(msg string) {
	fmt.Fprintf(n.errOut, "✓ %s\n", msg)
}

func (n cliNotifier) Error(msg string) {
	fmt.Fprintf(n.errOut, "✗ %s\n", msg)
}
