package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sandevgo/inspire/internal/service/chat"
	"github.com/sandevgo/inspire/internal/service/ui"
	"github.com/spf13/cobra"
)

const cliUserID = "cli"

var (
	chatToolID         string
	chatConversationID string
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with the catalog from the terminal",
	Long: `Sends a single message when one is given, otherwise reads messages
line by line from stdin. All messages share one conversation.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupStderrLogger(cmd.Context())
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		s := &chatSession{svc: a.chat, out: out, conversationID: chatConversationID, toolID: chatToolID}

		if len(args) > 0 {
			return s.send(cmd, strings.Join(args, " "))
		}

		fmt.Fprintln(out, ui.DescStyle.Render("Type a message and press enter. Ctrl+D exits."))
		scanner := bufio.NewScanner(cmd.InOrStdin())
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if err := s.send(cmd, line); err != nil {
				return err
			}
		}
		return scanner.Err()
	},
}

type chatSession struct {
	svc            *chat.Service
	out            io.Writer
	conversationID string
	toolID         string
}

func (s *chatSession) send(cmd *cobra.Command, message string) error {
	reply, err := s.svc.HandleMessage(cmd.Context(), chat.Request{
		UserID:         cliUserID,
		ConversationID: s.conversationID,
		ToolID:         s.toolID,
		Message:        message,
	})
	if err != nil {
		var verr *chat.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(s.out, ui.FlagStyle.Render(verr.Reason))
			return nil
		}
		return err
	}

	s.conversationID = reply.ConversationID
	fmt.Fprintf(s.out, "%s %s\n%s\n\n",
		ui.TitleStyle.UnsetMarginBottom().Render(reply.ToolName),
		ui.DescStyle.Render("("+string(reply.Category)+")"),
		reply.Message,
	)
	return nil
}

func init() {
	chatCmd.Flags().StringVarP(&chatToolID, "tool", "t", "", "catalog id of the tool to talk to")
	chatCmd.Flags().StringVarP(&chatConversationID, "conversation", "c", "", "continue an existing conversation")
	rootCmd.AddCommand(chatCmd)
}
