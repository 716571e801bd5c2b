// Package output turns fee API calculation results into display breakdowns.
package output

import (
	"github.com/shopspring/decimal"

	"fee-wizard/core/types"
)

// CurrencySymbol prefixes every formatted amount
const CurrencySymbol = "£"

// Row descriptions for the synthetic total line
const (
	TotalDescription = "Total"
	VatDescription   = "of which VAT"
)

// RowKind tells a renderer how to style a row
type RowKind string

const (
	RowFee   RowKind = "fee"
	RowTotal RowKind = "total"
	RowVat   RowKind = "vat"
)

// Row is one displayed line of the breakdown.
// Description is empty when the fee code is not in the descriptor list.
type Row struct {
	Kind        RowKind `json:"kind"`
	LevelCode   string  `json:"levelCode,omitempty"`
	Description string  `json:"description"`
	Amount      string  `json:"amount"`
}

// Breakdown is the normalized result shown to the user
type Breakdown struct {
	Total      string `json:"total"`
	VatApplies bool   `json:"vatApplies"`
	Rows       []Row  `json:"rows"`
}

// FormatCurrency renders an amount as £ with two decimal places
func FormatCurrency(d decimal.Decimal) string {
	return CurrencySymbol + d.StringFixed(2)
}

// DisplayTotal picks the amount the user pays: VAT inclusive unless VAT was declined
func DisplayTotal(resp *types.CalculationResponse, vatIndicator *bool) decimal.Decimal {
	if vatApplies(vatIndicator) {
		return resp.Total
	}
	return resp.Amount
}

// Normalize builds the display breakdown for a calculation result.
// A nil vatIndicator counts as true.
func Normalize(resp *types.CalculationResponse, fees []types.FeeDescriptor, vatIndicator *bool) *Breakdown {
	vat := vatApplies(vatIndicator)
	b := &Breakdown{
		Total:      FormatCurrency(DisplayTotal(resp, vatIndicator)),
		VatApplies: vat,
		Rows:       make([]Row, 0, len(resp.Fees)+1),
	}

	descriptions := make(map[string]string, len(fees))
	for _, f := range fees {
		descriptions[f.LevelCode] = f.Description
	}

	for _, line := range resp.Fees {
		code := line.Code()
		if code == types.TotalFeeType {
			if vat {
				b.Rows = append(b.Rows,
					Row{Kind: RowTotal, Description: TotalDescription, Amount: FormatCurrency(resp.Total)},
					Row{Kind: RowVat, Description: VatDescription, Amount: FormatCurrency(resp.Vat)},
				)
			} else {
				b.Rows = append(b.Rows, Row{Kind: RowTotal, Description: TotalDescription, Amount: FormatCurrency(resp.Amount)})
			}
			continue
		}
		b.Rows = append(b.Rows, Row{
			Kind:        RowFee,
			LevelCode:   code,
			Description: descriptions[code],
			Amount:      FormatCurrency(line.Amount),
		})
	}

	return b
}

func vatApplies(vatIndicator *bool) bool {
	return vatIndicator == nil || *vatIndicator
}
