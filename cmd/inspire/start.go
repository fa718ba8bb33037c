package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/inspire/pkg/log"
	"github.com/sandevgo/inspire/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Inspire services",
	Long:  `Initializes and starts the configured transports (HTTP API, Telegram).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting inspire")

		if err := srv.Run(ctx, NewServices(ctx)); err != nil {
			return err
		}
		logger.Info().Msg("inspire has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
