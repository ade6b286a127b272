package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mailgenie/internal/model"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the quick templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TITLE\tSUBJECT\tTONE")
		for _, t := range model.Templates() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.Title, t.Subject, t.Tone)
		}
		return w.Flush()
	},
}

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List what MailGenie can do",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, k := range model.Kinds() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", k.Kind, k.Title, k.Description)
		}
		return w.Flush()
	},
}

var tonesCmd = &cobra.Command{
	Use:   "tones",
	Short: "List the available tones",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, t := range model.Tones() {
			fmt.Fprintf(w, "%s\t%s\n", t.Tone, t.Label)
		}
		return w.Flush()
	},
}
