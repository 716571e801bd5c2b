// Package catalog - Catalog validation
// Ensures every cross reference in the reference data resolves.
package catalog

import (
	"fmt"

	"fee-wizard/core/types"
)

// ValidationRule is a catalog validation rule applied per category
type ValidationRule func(*Category) error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateUniqueIDs,
		validateRestrictions,
		validateDefaultCaseStages,
	}
}

// Validate checks a catalog against validation rules
func (c *Catalog) Validate(rules []ValidationRule) []error {
	var errs []error

	if len(c.categories) == 0 {
		errs = append(errs, fmt.Errorf("no law categories defined"))
	}
	if len(c.categories) != len(c.byID) {
		errs = append(errs, fmt.Errorf("duplicate law category id"))
	}
	if len(c.londonRates) == 0 {
		errs = append(errs, fmt.Errorf("no london rates defined"))
	}

	for _, cat := range c.categories {
		for _, rule := range rules {
			if err := rule(cat); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", cat.ID, err))
			}
		}
	}

	return errs
}

func validateUniqueIDs(cat *Category) error {
	lists := map[string][]types.Option{
		"matter_code_1": nil,
		"matter_code_2": nil,
		"case_stage":    nil,
	}
	for _, m := range cat.MatterCode1 {
		lists["matter_code_1"] = append(lists["matter_code_1"], m.Option)
	}
	for _, m := range cat.MatterCode2 {
		lists["matter_code_2"] = append(lists["matter_code_2"], m.Option)
	}
	for _, s := range cat.CaseStages {
		lists["case_stage"] = append(lists["case_stage"], s.Option)
	}

	for kind, opts := range lists {
		seen := make(map[string]bool, len(opts))
		for _, o := range opts {
			if o.ID == "" {
				return fmt.Errorf("%s with empty id", kind)
			}
			if seen[o.ID] {
				return fmt.Errorf("duplicate %s %q", kind, o.ID)
			}
			seen[o.ID] = true
		}
	}
	return nil
}

// validateRestrictions ensures matter_code_1 restrictions name real codes
func validateRestrictions(cat *Category) error {
	known := make(map[string]bool, len(cat.MatterCode1))
	for _, m := range cat.MatterCode1 {
		known[m.ID] = true
	}
	check := func(kind string, entries []Restricted) error {
		for _, e := range entries {
			for _, code := range e.MatterCode1 {
				if !known[code] {
					return fmt.Errorf("%s %q restricted to unknown matter code 1 %q", kind, e.ID, code)
				}
			}
		}
		return nil
	}
	if err := check("matter_code_2", cat.MatterCode2); err != nil {
		return err
	}
	return check("case_stage", cat.CaseStages)
}

// validateDefaultCaseStages ensures implied case stages exist.
// Immigration has no case stage page, so every immigration matter code 1 needs one.
func validateDefaultCaseStages(cat *Category) error {
	stages := make(map[string]bool, len(cat.CaseStages))
	for _, s := range cat.CaseStages {
		stages[s.ID] = true
	}
	for _, m := range cat.MatterCode1 {
		if m.DefaultCaseStage == "" {
			if cat.ID == types.CategoryImmigration {
				return fmt.Errorf("matter code 1 %q has no default_case_stage", m.ID)
			}
			continue
		}
		if !stages[m.DefaultCaseStage] {
			return fmt.Errorf("matter code 1 %q defaults to unknown case stage %q", m.ID, m.DefaultCaseStage)
		}
	}
	return nil
}
