package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LevelCodeType says whether a fee is applied automatically or needs user input
type LevelCodeType string

const (
	LevelCodeAutomatic    LevelCodeType = "automatic"
	LevelCodeOptionalBool LevelCodeType = "optionalBool"
	LevelCodeOptionalUnit LevelCodeType = "optionalUnit"
	LevelCodeOptionalFee  LevelCodeType = "optionalFee"
)

// Displayable reports whether the fee is shown to the user for input.
// Unrecognised types count as displayable so they surface as contract errors downstream.
func (t LevelCodeType) Displayable() bool {
	return t != LevelCodeAutomatic
}

// FeeDescriptor describes one chargeable fee available for a matter
type FeeDescriptor struct {
	LevelCode     string        `json:"levelCode"`
	Description   string        `json:"description"`
	LevelCodeType LevelCodeType `json:"levelCodeType"`
}

// DisplayableFees filters fees down to those requiring user input, keeping order
func DisplayableFees(fees []FeeDescriptor) []FeeDescriptor {
	var out []FeeDescriptor
	for _, f := range fees {
		if f.LevelCodeType.Displayable() {
			out = append(out, f)
		}
	}
	return out
}

// FeeQuery identifies a matter for the fee API
type FeeQuery struct {
	MatterCode1  string `json:"matterCode1"`
	MatterCode2  string `json:"matterCode2"`
	LocationCode string `json:"locationCode"`
	CaseStage    string `json:"caseStage"`
}

// Key is the memoization key for fee lookups of this query
func (q FeeQuery) Key() string {
	return strings.Join([]string{q.MatterCode1, q.MatterCode2, q.LocationCode, q.CaseStage}, "|")
}

// FeeDetails is the fee descriptor list cached in the session for one query
type FeeDetails struct {
	Key  string          `json:"key"`
	Fees []FeeDescriptor `json:"fees"`
}

// LevelCodeEntry is one user-selected additional cost in a calculation request.
// Presence of an entry with neither Fee nor Units means "apply this cost".
type LevelCodeEntry struct {
	LevelCode string           `json:"levelCode"`
	Fee       *decimal.Decimal `json:"fee,omitempty"`
	Units     *int             `json:"units,omitempty"`
}

// FeeRequest is the calculation request sent to the fee API
type FeeRequest struct {
	FeeQuery
	LevelCodes []LevelCodeEntry `json:"levelCodes,omitempty"`
}

// BreakdownLine is one line of the fee API's calculation breakdown
type BreakdownLine struct {
	FeeType   string          `json:"feeType,omitempty"`
	LevelCode string          `json:"levelCode,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}

// Code returns the fee code of the line, whichever field the API filled
func (l BreakdownLine) Code() string {
	if l.FeeType != "" {
		return l.FeeType
	}
	return l.LevelCode
}

// TotalFeeType marks the synthetic total line in a breakdown
const TotalFeeType = "total"

// CalculationResponse is the fee API's calculation result
type CalculationResponse struct {
	Amount decimal.Decimal `json:"amount"`
	Total  decimal.Decimal `json:"total"`
	Vat    decimal.Decimal `json:"vat"`
	Fees   []BreakdownLine `json:"fees"`
}
