package main

import (
	"fmt"
	"strings"

	"github.com/sandevgo/inspire/internal/service/ui"
	"github.com/spf13/cobra"
)

var routeShowScores bool

var routeCmd = &cobra.Command{
	Use:          "route <message>",
	Short:        "Show which tool a message would be routed to",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupStderrLogger(cmd.Context())
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		message := strings.Join(args, " ")
		d, err := a.router.Route(ctx, message)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", ui.UsageStyle.Render("category:"), d.Category)
		fmt.Fprintf(out, "%s %s (%s)\n", ui.UsageStyle.Render("tool:"), d.Tool.Name, d.Tool.ID)

		if routeShowScores {
			for _, s := range a.classifier.Scores(message) {
				fmt.Fprintf(out, "  %-16s %d\n", s.Category, s.Matches)
			}
		}
		return nil
	},
}

func init() {
	routeCmd.Flags().BoolVar(&routeShowScores, "scores", false, "print the match count of every category")
	rootCmd.AddCommand(routeCmd)
}
