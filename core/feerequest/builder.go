// Package feerequest turns a completed answer set into a fee API calculation request.
package feerequest

import (
	"strconv"

	"github.com/shopspring/decimal"

	"fee-wizard/core/types"
	"fee-wizard/internal/errors"
)

// Query returns the fee lookup query for the answers, without additional costs.
// It is what both list-available and calculate are keyed on.
func Query(a *types.AnswerSet) (types.FeeQuery, error) {
	switch a.LawCategory {
	case types.CategoryFamily:
		if missing := a.Missing(types.FieldMatterCode1, types.FieldMatterCode2, types.FieldCaseStage, types.FieldLondonRate); missing != "" {
			return types.FeeQuery{}, errors.MissingData(string(missing))
		}
		return types.FeeQuery{
			MatterCode1:  a.MatterCode1,
			MatterCode2:  a.MatterCode2,
			LocationCode: a.LondonRate,
			CaseStage:    a.CaseStage,
		}, nil

	case types.CategoryImmigration:
		if missing := a.Missing(types.FieldMatterCode1, types.FieldMatterCode2, types.FieldCaseStage); missing != "" {
			return types.FeeQuery{}, errors.MissingData(string(missing))
		}
		return types.FeeQuery{
			MatterCode1:  a.MatterCode1,
			MatterCode2:  a.MatterCode2,
			LocationCode: types.LocationNotApplicable,
			CaseStage:    a.CaseStage,
		}, nil
	}

	return types.FeeQuery{}, errors.Unsupported("Unsupported law category").
		WithContext("lawCategory", a.LawCategory)
}

// Build returns the calculation request for the answers
func Build(a *types.AnswerSet) (*types.FeeRequest, error) {
	query, err := Query(a)
	if err != nil {
		return nil, err
	}
	req := &types.FeeRequest{FeeQuery: query}

	if a.LawCategory != types.CategoryImmigration || a.FeeDetails == nil {
		return req, nil
	}

	displayable := types.DisplayableFees(a.FeeDetails.Fees)
	if len(displayable) == 0 {
		return req, nil
	}
	// Exactly one answer per displayable fee; extra answers are as wrong as missing ones.
	if a.AdditionalCosts == nil || len(a.AdditionalCosts) != len(displayable) {
		return nil, errors.MissingData(string(types.FieldAdditionalCosts)).
			WithContext("expected", len(displayable)).
			WithContext("got", len(a.AdditionalCosts))
	}

	answers := make(map[string]interface{}, len(a.AdditionalCosts))
	for _, c := range a.AdditionalCosts {
		answers[c.LevelCode] = c.Value
	}

	for _, fee := range displayable {
		value, ok := answers[fee.LevelCode]
		if !ok {
			return nil, errors.MissingData(string(types.FieldAdditionalCosts)).
				WithContext("levelCode", fee.LevelCode)
		}
		entry, include, err := levelCodeEntry(fee, value)
		if err != nil {
			return nil, err
		}
		if include {
			req.LevelCodes = append(req.LevelCodes, entry)
		}
	}

	return req, nil
}

// levelCodeEntry shapes one additional cost for the request.
// A false optionalBool is left out: the fee API treats a listed code as applied.
func levelCodeEntry(fee types.FeeDescriptor, value interface{}) (types.LevelCodeEntry, bool, error) {
	entry := types.LevelCodeEntry{LevelCode: fee.LevelCode}

	switch fee.LevelCodeType {
	case types.LevelCodeOptionalFee:
		s, ok := value.(string)
		if !ok {
			return entry, false, contractError(fee, value)
		}
		amount, err := decimal.NewFromString(s)
		if err != nil {
			return entry, false, errors.Internal("additional cost fee is not a number", err).
				WithContext("levelCode", fee.LevelCode)
		}
		entry.Fee = &amount
		return entry, true, nil

	case types.LevelCodeOptionalUnit:
		s, ok := value.(string)
		if !ok {
			return entry, false, contractError(fee, value)
		}
		units, err := strconv.Atoi(s)
		if err != nil {
			return entry, false, errors.Internal("additional cost units is not a number", err).
				WithContext("levelCode", fee.LevelCode)
		}
		entry.Units = &units
		return entry, true, nil

	case types.LevelCodeOptionalBool:
		b, ok := value.(bool)
		if !ok {
			return entry, false, contractError(fee, value)
		}
		return entry, b, nil
	}

	return entry, false, errors.Newf(errors.TypeInternal, "unsupported level code type %q", fee.LevelCodeType).
		WithContext("levelCode", fee.LevelCode)
}

func contractError(fee types.FeeDescriptor, value interface{}) error {
	return errors.Newf(errors.TypeInternal, "additional cost %s has value of type %T for %s",
		fee.LevelCode, value, fee.LevelCodeType)
}
