// Package navigation decides which questionnaire step follows the current one.
package navigation

import (
	"fee-wizard/core/types"
	"fee-wizard/internal/errors"
)

// transition computes the step after its key step
type transition func(a *types.AnswerSet) (types.Step, error)

func always(next types.Step) transition {
	return func(*types.AnswerSet) (types.Step, error) {
		return next, nil
	}
}

// byLawCategory is the one transition that reads the answers
func byLawCategory(a *types.AnswerSet) (types.Step, error) {
	if a == nil {
		return "", errors.Navigation("no answers to branch on")
	}
	switch a.LawCategory {
	case types.CategoryFamily:
		return types.StepCaseStage, nil
	case types.CategoryImmigration:
		return types.StepAdditionalCosts, nil
	}
	return "", errors.Navigation("cannot branch on law category").
		WithContext("lawCategory", a.LawCategory)
}

// Result and Error are terminal and have no entry.
var transitions = map[types.Step]transition{
	types.StepStart:           always(types.StepClaimStart),
	types.StepClaimStart:      always(types.StepMatterCode1),
	types.StepMatterCode1:     always(types.StepMatterCode2),
	types.StepMatterCode2:     byLawCategory,
	types.StepCaseStage:       always(types.StepLondonRate),
	types.StepLondonRate:      always(types.StepVatIndicator),
	types.StepAdditionalCosts: always(types.StepVatIndicator),
	types.StepVatIndicator:    always(types.StepResult),
}

// Next returns the step after current given the answers so far
func Next(current types.Step, a *types.AnswerSet) (types.Step, error) {
	t, ok := transitions[current]
	if !ok {
		return "", errors.Navigation("no transition from step").
			WithContext("step", string(current))
	}
	return t(a)
}

// hasNext reports whether current has an outgoing transition
func hasNext(current types.Step) bool {
	_, ok := transitions[current]
	return ok
}
