package validation

import (
	"strings"

	"fee-wizard/core/types"
)

// Enum checks raw is exactly one of the allowed option ids
func Enum(field, raw string, allowed []types.Option) (string, *FieldError) {
	if strings.TrimSpace(raw) == "" {
		return "", newFieldError(field, KindNotEntered, MsgNotEntered)
	}
	for _, opt := range allowed {
		if opt.ID == raw {
			return raw, nil
		}
	}
	return "", newFieldError(field, KindInvalid, MsgInvalid)
}

// YesNo checks a yes/no answer and maps it to a bool
func YesNo(field, raw string, allowed []types.Option) (bool, *FieldError) {
	value, fe := Enum(field, raw, allowed)
	if fe != nil {
		return false, fe
	}
	return value == "yes", nil
}
