package feerequest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fee-wizard/core/types"
	"fee-wizard/internal/errors"
)

func familyAnswers() *types.AnswerSet {
	return &types.AnswerSet{
		LawCategory: types.CategoryFamily,
		MatterCode1: "FAMA",
		MatterCode2: "FPET",
		CaseStage:   "FPL01",
		LondonRate:  types.LocationLondon,
	}
}

func immigrationAnswers(fees []types.FeeDescriptor, costs []types.AdditionalCost) *types.AnswerSet {
	return &types.AnswerSet{
		LawCategory:     types.CategoryImmigration,
		MatterCode1:     "IAXL",
		MatterCode2:     "IDAS",
		CaseStage:       "IA100",
		FeeDetails:      &types.FeeDetails{Key: "k", Fees: fees},
		AdditionalCosts: costs,
	}
}

var immigrationFees = []types.FeeDescriptor{
	{LevelCode: "IMAS", Description: "Asylum legal help", LevelCodeType: types.LevelCodeAutomatic},
	{LevelCode: "IMCA", Description: "Interpreter attendance", LevelCodeType: types.LevelCodeOptionalBool},
	{LevelCode: "IMCB", Description: "Home Office interviews", LevelCodeType: types.LevelCodeOptionalUnit},
	{LevelCode: "IMCD", Description: "Disbursements", LevelCodeType: types.LevelCodeOptionalFee},
}

func TestBuildFamily(t *testing.T) {
	req, err := Build(familyAnswers())
	require.NoError(t, err)
	assert.Equal(t, types.FeeQuery{
		MatterCode1:  "FAMA",
		MatterCode2:  "FPET",
		LocationCode: "london",
		CaseStage:    "FPL01",
	}, req.FeeQuery)
	assert.Empty(t, req.LevelCodes)
}

func TestBuildFamilyMissingData(t *testing.T) {
	for _, field := range []types.Field{types.FieldMatterCode1, types.FieldMatterCode2, types.FieldCaseStage, types.FieldLondonRate} {
		t.Run(string(field), func(t *testing.T) {
			a := familyAnswers()
			a.Clear(field)
			_, err := Build(a)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeMissingData))
			assert.Contains(t, err.Error(), "Data is missing")
		})
	}
}

func TestBuildUnsupportedCategory(t *testing.T) {
	a := familyAnswers()
	a.LawCategory = "crime"
	_, err := Build(a)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeUnsupported))
	assert.Contains(t, err.Error(), "Unsupported law category")
}

func TestBuildImmigrationUsesNotApplicableLocation(t *testing.T) {
	a := immigrationAnswers(nil, []types.AdditionalCost{})
	a.LondonRate = types.LocationLondon

	req, err := Build(a)
	require.NoError(t, err)
	assert.Equal(t, types.LocationNotApplicable, req.LocationCode)
	assert.Empty(t, req.LevelCodes)
}

func TestBuildImmigrationShapesLevelCodes(t *testing.T) {
	a := immigrationAnswers(immigrationFees, []types.AdditionalCost{
		{LevelCode: "IMCA", Value: true},
		{LevelCode: "IMCB", Value: "3"},
		{LevelCode: "IMCD", Value: "45.60"},
	})

	req, err := Build(a)
	require.NoError(t, err)
	require.Len(t, req.LevelCodes, 3)

	assert.Equal(t, "IMCA", req.LevelCodes[0].LevelCode)
	assert.Nil(t, req.LevelCodes[0].Fee)
	assert.Nil(t, req.LevelCodes[0].Units)

	require.NotNil(t, req.LevelCodes[1].Units)
	assert.Equal(t, 3, *req.LevelCodes[1].Units)

	require.NotNil(t, req.LevelCodes[2].Fee)
	assert.Equal(t, "45.6", req.LevelCodes[2].Fee.String())
}

func TestBuildImmigrationOmitsFalseBool(t *testing.T) {
	a := immigrationAnswers(immigrationFees, []types.AdditionalCost{
		{LevelCode: "IMCA", Value: false},
		{LevelCode: "IMCB", Value: "0"},
		{LevelCode: "IMCD", Value: "0"},
	})

	req, err := Build(a)
	require.NoError(t, err)
	for _, entry := range req.LevelCodes {
		assert.NotEqual(t, "IMCA", entry.LevelCode)
	}
	assert.Len(t, req.LevelCodes, 2)
}

func TestBuildImmigrationCountMismatch(t *testing.T) {
	fees := []types.FeeDescriptor{
		{LevelCode: "IMCA", LevelCodeType: types.LevelCodeOptionalBool},
		{LevelCode: "IMCB", LevelCodeType: types.LevelCodeOptionalUnit},
	}

	tests := []struct {
		name  string
		costs []types.AdditionalCost
	}{
		{name: "not answered", costs: nil},
		{name: "fewer", costs: []types.AdditionalCost{{LevelCode: "IMCA", Value: true}}},
		{name: "more", costs: []types.AdditionalCost{
			{LevelCode: "IMCA", Value: true},
			{LevelCode: "IMCB", Value: "1"},
			{LevelCode: "IMCZ", Value: "1"},
		}},
		{name: "right count wrong codes", costs: []types.AdditionalCost{
			{LevelCode: "IMCA", Value: true},
			{LevelCode: "IMCZ", Value: "1"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(immigrationAnswers(fees, tt.costs))
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeMissingData))
		})
	}
}

func TestBuildImmigrationContractViolations(t *testing.T) {
	tests := []struct {
		name  string
		fee   types.FeeDescriptor
		value interface{}
	}{
		{name: "unknown type", fee: types.FeeDescriptor{LevelCode: "IMCX", LevelCodeType: "optionalDate"}, value: "1"},
		{name: "bool given a string", fee: types.FeeDescriptor{LevelCode: "IMCA", LevelCodeType: types.LevelCodeOptionalBool}, value: "yes"},
		{name: "unit given a bool", fee: types.FeeDescriptor{LevelCode: "IMCB", LevelCodeType: types.LevelCodeOptionalUnit}, value: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := immigrationAnswers([]types.FeeDescriptor{tt.fee}, []types.AdditionalCost{{LevelCode: tt.fee.LevelCode, Value: tt.value}})
			_, err := Build(a)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeInternal))
		})
	}
}

func TestQueryKeyIsStable(t *testing.T) {
	q, err := Query(familyAnswers())
	require.NoError(t, err)
	assert.Equal(t, "FAMA|FPET|london|FPL01", q.Key())
}
