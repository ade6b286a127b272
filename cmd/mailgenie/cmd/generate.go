package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"mailgenie/internal/client"
	"mailgenie/internal/model"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an email",
	Long: `Generate a new email, a reply, a summary or a reformatted email.

Examples:
  mailgenie generate --subject "Leave Request" --context "Off next Friday"
  mailgenie generate --template "Thank You Note" --recipient Alex --copy
  pbpaste | mailgenie generate --type reply --tone friendly --email-file -`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringP("type", "t", string(model.KindNew), "operation: new, reply, summarize or reformat")
	f.String("recipient", "", "recipient (new emails)")
	f.StringP("subject", "s", "", "subject or topic (new emails)")
	f.StringP("context", "c", "", "what you want to communicate (new emails)")
	f.String("tone", string(model.ToneFormal), "formal, friendly, apologetic, persuasive or grateful")
	f.StringP("email-file", "f", "", "file with the email to process, - for stdin")
	f.String("template", "", "start from a quick template (see 'mailgenie templates')")
	f.Bool("copy", false, "copy the result to the clipboard")
	f.Bool("edit", false, "open the result in $EDITOR before printing")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	notifier := cliNotifier{errOut: cmd.ErrOrStderr()}
	fc := client.NewFormController(client.NewFunctionClient(functionURL, nil), notifier)

	if err := applyFlags(cmd, fc); err != nil {
		return err
	}

	if err := fc.Generate(cmd.Context()); err != nil {
		return notifiedError{err: err}
	}

	if edit, _ := cmd.Flags().GetBool("edit"); edit {
		if err := editInEditor(fc); err != nil {
			return fmt.Errorf("editing email: %w", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), fc.Text())

	if copyOut, _ := cmd.Flags().GetBool("copy"); copyOut {
		if err := fc.Copy(clipboard.WriteAll); err != nil {
			return notifiedError{err: err}
		}
	}
	return nil
}

func applyFlags(cmd *cobra.Command, fc *client.FormController) error {
	flags := cmd.Flags()

	title, _ := flags.GetString("template")
	if title != "" {
		t, ok := model.FindTemplate(title)
		if !ok {
			return fmt.Errorf("unknown template %q", title)
		}
		fc.ApplyTemplate(t)
	}

	// a template picks kind and tone; explicit flags still win
	if title == "" || flags.Changed("type") {
		raw, _ := flags.GetString("type")
		kind, err := model.ParseKind(raw)
		if err != nil {
			return err
		}
		fc.SelectKind(kind)
	}

	if title == "" || flags.Changed("tone") {
		raw, _ := flags.GetString("tone")
		tone, err := model.ParseTone(raw)
		if err != nil {
			return err
		}
		_ = fc.SetField(client.FieldTone, string(tone))
	}

	for flag, field := range map[string]client.Field{
		"recipient": client.FieldRecipient,
		"subject":   client.FieldSubject,
		"context":   client.FieldContext,
	} {
		if flags.Changed(flag) {
			v, _ := flags.GetString(flag)
			_ = fc.SetField(field, v)
		}
	}

	if path, _ := flags.GetString("email-file"); path != "" {
		text, err := readEmail(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}
		_ = fc.SetField(client.FieldExistingEmail, text)
	}

	return nil
}

func readEmail(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading email: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func editInEditor(fc *client.FormController) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	f, err := os.CreateTemp("", "mailgenie-*.txt")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	fc.StartEdit()
	if _, err := f.WriteString(fc.Text()); err != nil {
		_ = f.Close()
		fc.CancelEdit()
		return err
	}
	if err := f.Close(); err != nil {
		fc.CancelEdit()
		return err
	}

	c := exec.Command(editor, f.Name())
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := c.Run(); err != nil {
		fc.CancelEdit()
		return err
	}

	edited, err := os.ReadFile(f.Name())
	if err != nil {
		fc.CancelEdit()
		return err
	}
	fc.UpdateEdit(strings.TrimRight(string(edited), "\n"))
	fc.CommitEdit()
	return nil
}
