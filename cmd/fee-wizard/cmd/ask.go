// Package cmd - ask command
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"fee-wizard/adapters/feeapi"
	"fee-wizard/core/catalog"
	"fee-wizard/core/ui"
	"fee-wizard/core/wizard"
	"fee-wizard/internal/config"
)

var noColor bool

// askCmd runs the questionnaire in the terminal
var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer the questionnaire interactively in the terminal",
	Long: `Answer the questionnaire interactively in the terminal.

Each question lists its options; type the number or the code. The fee is
calculated by the configured fee API once every question is answered.`,
	Args: cobra.NoArgs,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	cat, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	fees := feeapi.New(feeapi.Config{
		BaseURL:         cfg.Backend.BaseURL,
		Timeout:         cfg.Backend.Timeout.Std(),
		MaxConnsPerHost: cfg.Backend.MaxConnsPerHost,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	q := ui.NewQuestionnaire(ui.NewWriter(cmd.OutOrStdout(), noColor), cmd.InOrStdin(), wizard.New(cat, fees))
	_, err = q.Run(ctx)
	return err
}
