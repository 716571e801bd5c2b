package validation

import (
	"regexp"
	"strings"

	"fee-wizard/core/types"
	"fee-wizard/internal/errors"
)

var (
	feePattern  = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	unitPattern = regexp.MustCompile(`^[0-9]$`)
)

// AdditionalCost checks the answer for one displayable fee.
// The value is a string for optionalFee/optionalUnit and a bool for optionalBool.
// An unrecognised level code type is a contract violation and returns an error.
func AdditionalCost(field, raw string, t types.LevelCodeType) (interface{}, *FieldError, error) {
	switch t {
	case types.LevelCodeOptionalFee:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return "0", nil, nil
		}
		if !feePattern.MatchString(trimmed) {
			return nil, newFieldError(field, KindFeeFormat, MsgFeeFormat), nil
		}
		return trimmed, nil, nil

	case types.LevelCodeOptionalUnit:
		if !unitPattern.MatchString(raw) {
			return nil, newFieldError(field, KindUnitFormat, MsgUnitFormat), nil
		}
		return raw, nil, nil

	case types.LevelCodeOptionalBool:
		switch raw {
		case "yes":
			return true, nil, nil
		case "no":
			return false, nil, nil
		}
		return nil, newFieldError(field, KindBoolFormat, MsgBoolFormat), nil
	}

	return nil, nil, errors.Newf(errors.TypeInternal, "no validator for level code type %q", t).
		WithContext("field", field)
}
