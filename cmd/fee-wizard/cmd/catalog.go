// Package cmd - catalog command
package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"fee-wizard/core/catalog"
	"fee-wizard/core/types"
	"fee-wizard/internal/config"
)

var catalogFormat string

// catalogCmd prints the reference data
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the questionnaire reference data",
	Long: `Print the law categories, matter codes, case stages and London rates
the questionnaire offers, from catalog.path or the built-in catalog.`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogFormat, "format", "f", "cli", "output format (cli, json)")
}

// categoryListing is the printable form of one law category
type categoryListing struct {
	types.Option
	MatterCode1 []types.Option            `json:"matterCode1"`
	MatterCode2 map[string][]types.Option `json:"matterCode2"`
	CaseStages  map[string][]types.Option `json:"caseStages"`
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat, err := catalog.LoadFile(config.Get().Catalog.Path)
	if err != nil {
		return err
	}

	listings := listCatalog(cat)
	out := cmd.OutOrStdout()

	switch catalogFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"lawCategories": listings,
			"londonRates":   cat.LondonRates(),
		})
	case "cli":
		return printCatalog(out, listings, cat.LondonRates())
	}
	return fmt.Errorf("unknown format %q", catalogFormat)
}

func listCatalog(cat *catalog.Catalog) []categoryListing {
	var listings []categoryListing
	for _, category := range cat.LawCategories() {
		l := categoryListing{
			Option:      category,
			MatterCode1: cat.MatterCode1(category.ID),
			MatterCode2: make(map[string][]types.Option),
			CaseStages:  make(map[string][]types.Option),
		}
		for _, mc1 := range l.MatterCode1 {
			l.MatterCode2[mc1.ID] = cat.MatterCode2(category.ID, mc1.ID)
			if stage, ok := cat.DefaultCaseStage(category.ID, mc1.ID); ok {
				l.CaseStages[mc1.ID] = []types.Option{{ID: stage}}
				continue
			}
			l.CaseStages[mc1.ID] = cat.CaseStages(category.ID, mc1.ID)
		}
		listings = append(listings, l)
	}
	return listings
}

func printCatalog(w io.Writer, listings []categoryListing, londonRates []types.Option) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, l := range listings {
		fmt.Fprintf(tw, "%s\t%s\n", l.ID, l.Description)
		for _, mc1 := range l.MatterCode1 {
			fmt.Fprintf(tw, "  %s\t%s\n", mc1.ID, mc1.Description)
			fmt.Fprintf(tw, "    matter code 2:\t%v\n", types.OptionIDs(l.MatterCode2[mc1.ID]))
			fmt.Fprintf(tw, "    case stages:\t%v\n", types.OptionIDs(l.CaseStages[mc1.ID]))
		}
	}
	fmt.Fprintf(tw, "london rates\t%v\n", types.OptionIDs(londonRates))
	return tw.Flush()
}
