package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"timed-quiz-service/internal/config"
	"timed-quiz-service/internal/transport/terminal"
)

// NewPlayCmd runs a single quiz session in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		bankID  string
		noClear bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a timed quiz in the terminal",
		Long: "Answer with the option number and press enter.\n" +
			"n/p move between questions, s submits, h toggles the hint, r restarts, q quits.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			service, cleanup, err := buildService(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			if bankID == "" {
				bankID = cfg.BankID()
			}
			renderer := terminal.NewRenderer(cmd.OutOrStdout(), !noClear)
			err = terminal.NewPlayer(service, renderer, cmd.InOrStdin(), logger).Run(ctx, bankID)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&bankID, "bank", "", "question bank to play (defaults to quiz.default_bank)")
	cmd.Flags().BoolVar(&noClear, "no-clear", false, "do not clear the screen between frames")
	return cmd
}
