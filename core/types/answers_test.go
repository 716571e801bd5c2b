package types

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allFields = []Field{
	FieldStartDate, FieldLawCategory, FieldMatterCode1, FieldMatterCode2, FieldCaseStage,
	FieldLondonRate, FieldVatIndicator, FieldAdditionalCosts, FieldFeeDetails, FieldResult,
}

func filledAnswers() *AnswerSet {
	vat := false
	result := decimal.NewFromInt(120)
	return &AnswerSet{
		CurrentStep:     StepVatIndicator,
		StartDate:       "01/02/2026",
		LawCategory:     CategoryImmigration,
		MatterCode1:     "IAXL",
		MatterCode2:     "IDAS",
		CaseStage:       "IA100",
		LondonRate:      LocationLondon,
		VatIndicator:    &vat,
		AdditionalCosts: []AdditionalCost{{LevelCode: "IMCA", Value: true}},
		FeeDetails:      &FeeDetails{Key: "k"},
		Result:          &result,
	}
}

func TestHasAndClear(t *testing.T) {
	for _, f := range allFields {
		t.Run(string(f), func(t *testing.T) {
			a := filledAnswers()
			require.True(t, a.Has(f))
			a.Clear(f)
			assert.False(t, a.Has(f))
			for _, other := range allFields {
				if other != f {
					assert.True(t, a.Has(other), "clearing %s touched %s", f, other)
				}
			}
		})
	}
}

func TestMissing(t *testing.T) {
	a := filledAnswers()
	assert.Equal(t, Field(""), a.Missing(FieldMatterCode1, FieldCaseStage))
	a.Clear(FieldCaseStage)
	assert.Equal(t, FieldCaseStage, a.Missing(FieldMatterCode1, FieldCaseStage, FieldLondonRate))
}

func TestVatApplies(t *testing.T) {
	yes, no := true, false
	assert.True(t, (&AnswerSet{}).VatApplies())
	assert.True(t, (&AnswerSet{VatIndicator: &yes}).VatApplies())
	assert.False(t, (&AnswerSet{VatIndicator: &no}).VatApplies())
}

func TestReset(t *testing.T) {
	a := filledAnswers()
	a.Reset()
	assert.Equal(t, NewAnswerSet(), a)
}

func TestAdditionalCostsAnsweredWithNoneSurvivesJSON(t *testing.T) {
	a := &AnswerSet{AdditionalCosts: []AdditionalCost{}}
	data, err := json.Marshal(a)
	require.NoError(t, err)

	var decoded AnswerSet
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Has(FieldAdditionalCosts))

	var unanswered AnswerSet
	require.NoError(t, json.Unmarshal([]byte(`{"additionalCosts":null}`), &unanswered))
	assert.False(t, unanswered.Has(FieldAdditionalCosts))
}

func TestDisplayableFees(t *testing.T) {
	fees := []FeeDescriptor{
		{LevelCode: "A", LevelCodeType: LevelCodeAutomatic},
		{LevelCode: "B", LevelCodeType: LevelCodeOptionalBool},
		{LevelCode: "C", LevelCodeType: LevelCodeAutomatic},
		{LevelCode: "D", LevelCodeType: LevelCodeOptionalFee},
		{LevelCode: "E", LevelCodeType: "optionalDate"},
	}
	var codes []string
	for _, f := range DisplayableFees(fees) {
		codes = append(codes, f.LevelCode)
	}
	assert.Equal(t, []string{"B", "D", "E"}, codes)
}

func TestFeeQueryKeyDistinguishesFields(t *testing.T) {
	a := FeeQuery{MatterCode1: "IAXL", MatterCode2: "IDAS", LocationCode: "NA", CaseStage: "IA100"}
	b := a
	b.CaseStage = "IA200"
	assert.NotEqual(t, a.Key(), b.Key())
	assert.Equal(t, "IAXL|IDAS|NA|IA100", a.Key())
}

func TestBreakdownLineCode(t *testing.T) {
	assert.Equal(t, "FPB010", BreakdownLine{FeeType: "FPB010"}.Code())
	assert.Equal(t, "IMCA", BreakdownLine{LevelCode: "IMCA"}.Code())
}

func TestStepIsKnown(t *testing.T) {
	for _, s := range AllSteps {
		assert.True(t, s.IsKnown())
	}
	assert.False(t, Step("payment").IsKnown())
}
