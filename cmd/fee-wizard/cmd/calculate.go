// Package cmd - calculate command
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"fee-wizard/adapters/feeapi"
	"fee-wizard/core/catalog"
	"fee-wizard/core/output"
	"fee-wizard/core/types"
	"fee-wizard/core/wizard"
	"fee-wizard/internal/config"
)

var outputFormat string

// calculateCmd computes the fee for a saved answer set
var calculateCmd = &cobra.Command{
	Use:   "calculate <answers.json>",
	Short: "Calculate the fee for a completed answer set",
	Long: `Calculate the fee for a completed answer set without running the server.

The file holds the answers as the API stores them, for example:

  {"startDate":"01/05/2026","lawCategory":"family","matterCode1":"FAMA",
   "matterCode2":"FPET","caseStage":"FPL01","londonRate":"london","vatIndicator":true}

Immigration answer sets also need additionalCosts, one entry per fee the
fee API lists as needing input.`,
	Args: cobra.ExactArgs(1),
	RunE: runCalculate,
}

func init() {
	calculateCmd.Flags().StringVarP(&outputFormat, "format", "f", "cli", "output format (cli, json, markdown)")
}

func runCalculate(cmd *cobra.Command, args []string) error {
	formatter, err := output.NewFormatter(output.Format(outputFormat))
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read answers: %w", err)
	}
	var answers types.AnswerSet
	if err := json.Unmarshal(data, &answers); err != nil {
		return fmt.Errorf("parse answers %s: %w", args[0], err)
	}

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

	breakdown, err := wizard.New(cat, fees).Result(context.Background(), &answers)
	if err != nil {
		return err
	}
	return formatter.Render(cmd.OutOrStdout(), breakdown)
}
