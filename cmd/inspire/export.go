package main

import (
	"os"

	"github.com/sandevgo/inspire/internal/service/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportUser   string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:          "export <conversation-id>",
	Short:        "Export a conversation transcript as json, txt or csv",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupStderrLogger(cmd.Context())
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		tr, err := a.chat.Transcript(ctx, exportUser, args[0])
		if err != nil {
			return err
		}

		doc, err := export.Render(tr.Conversation, tr.Tool, tr.Messages, export.ParseFormat(exportFormat))
		if err != nil {
			return err
		}

		if exportOutput == "" {
			_, err = cmd.OutOrStdout().Write(doc.Content)
			return err
		}
		if exportOutput == "." {
			exportOutput = doc.Filename(tr.Conversation)
		}
		return os.WriteFile(exportOutput, doc.Content, 0644)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "json, txt or csv")
	exportCmd.Flags().StringVarP(&exportUser, "user", "u", cliUserID, "owner of the conversation")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "write to a file; \".\" picks a name")
	rootCmd.AddCommand(exportCmd)
}
