package types

import "github.com/shopspring/decimal"

// Field names an entry of the AnswerSet
type Field string

const (
	FieldStartDate       Field = "startDate"
	FieldLawCategory     Field = "lawCategory"
	FieldMatterCode1     Field = "matterCode1"
	FieldMatterCode2     Field = "matterCode2"
	FieldCaseStage       Field = "caseStage"
	FieldLondonRate      Field = "londonRate"
	FieldVatIndicator    Field = "vatIndicator"
	FieldAdditionalCosts Field = "additionalCosts"
	FieldFeeDetails      Field = "feeDetails"
	FieldResult          Field = "result"
)

// AdditionalCost is one user answer for a displayable fee.
// Value is a string for optionalFee and optionalUnit, a bool for optionalBool.
type AdditionalCost struct {
	LevelCode string      `json:"levelCode"`
	Value     interface{} `json:"value"`
}

// AnswerSet is the per-session bag of questionnaire answers.
// A nil AdditionalCosts means "not answered"; an empty slice means answered with no costs.
type AnswerSet struct {
	CurrentStep     Step             `json:"currentStep,omitempty"`
	StartDate       string           `json:"startDate,omitempty"`
	LawCategory     string           `json:"lawCategory,omitempty"`
	MatterCode1     string           `json:"matterCode1,omitempty"`
	MatterCode2     string           `json:"matterCode2,omitempty"`
	CaseStage       string           `json:"caseStage,omitempty"`
	LondonRate      string           `json:"londonRate,omitempty"`
	VatIndicator    *bool            `json:"vatIndicator,omitempty"`
	AdditionalCosts []AdditionalCost `json:"additionalCosts"`
	FeeDetails      *FeeDetails      `json:"feeDetails,omitempty"`
	Result          *decimal.Decimal `json:"result,omitempty"`
}

// NewAnswerSet returns an empty answer set positioned at the start step
func NewAnswerSet() *AnswerSet {
	return &AnswerSet{CurrentStep: StepStart}
}

// Reset discards every answer, as when the journey restarts
func (a *AnswerSet) Reset() {
	*a = AnswerSet{CurrentStep: StepStart}
}

// VatApplies reports the VAT flag, defaulting to true when unanswered
func (a *AnswerSet) VatApplies() bool {
	return a.VatIndicator == nil || *a.VatIndicator
}

// Has reports whether field holds a value
func (a *AnswerSet) Has(field Field) bool {
	switch field {
	case FieldStartDate:
		return a.StartDate != ""
	case FieldLawCategory:
		return a.LawCategory != ""
	case FieldMatterCode1:
		return a.MatterCode1 != ""
	case FieldMatterCode2:
		return a.MatterCode2 != ""
	case FieldCaseStage:
		return a.CaseStage != ""
	case FieldLondonRate:
		return a.LondonRate != ""
	case FieldVatIndicator:
		return a.VatIndicator != nil
	case FieldAdditionalCosts:
		return a.AdditionalCosts != nil
	case FieldFeeDetails:
		return a.FeeDetails != nil
	case FieldResult:
		return a.Result != nil
	}
	return false
}

// Clear nulls out field
func (a *AnswerSet) Clear(field Field) {
	switch field {
	case FieldStartDate:
		a.StartDate = ""
	case FieldLawCategory:
		a.LawCategory = ""
	case FieldMatterCode1:
		a.MatterCode1 = ""
	case FieldMatterCode2:
		a.MatterCode2 = ""
	case FieldCaseStage:
		a.CaseStage = ""
	case FieldLondonRate:
		a.LondonRate = ""
	case FieldVatIndicator:
		a.VatIndicator = nil
	case FieldAdditionalCosts:
		a.AdditionalCosts = nil
	case FieldFeeDetails:
		a.FeeDetails = nil
	case FieldResult:
		a.Result = nil
	}
}

// Missing returns the first of fields that holds no value, or "" if all are set
func (a *AnswerSet) Missing(fields ...Field) Field {
	for _, f := range fields {
		if !a.Has(f) {
			return f
		}
	}
	return ""
}
