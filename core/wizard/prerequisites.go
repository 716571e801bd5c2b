package wizard

import (
	"fee-wizard/core/types"
	"fee-wizard/internal/errors"
)

// journey lists, per law category, the steps after ClaimStart in order
var journey = map[string][]types.Step{
	types.CategoryFamily: {
		types.StepMatterCode1,
		types.StepMatterCode2,
		types.StepCaseStage,
		types.StepLondonRate,
		types.StepVatIndicator,
		types.StepResult,
	},
	types.CategoryImmigration: {
		types.StepMatterCode1,
		types.StepMatterCode2,
		types.StepAdditionalCosts,
		types.StepVatIndicator,
		types.StepResult,
	},
}

// requires lists the answers a step needs before it can be shown
var requires = map[types.Step][]types.Field{
	types.StepMatterCode1:     {types.FieldStartDate, types.FieldLawCategory},
	types.StepMatterCode2:     {types.FieldStartDate, types.FieldLawCategory, types.FieldMatterCode1},
	types.StepCaseStage:       {types.FieldStartDate, types.FieldLawCategory, types.FieldMatterCode1, types.FieldMatterCode2},
	types.StepLondonRate:      {types.FieldStartDate, types.FieldLawCategory, types.FieldMatterCode1, types.FieldMatterCode2, types.FieldCaseStage},
	types.StepAdditionalCosts: {types.FieldStartDate, types.FieldLawCategory, types.FieldMatterCode1, types.FieldMatterCode2, types.FieldCaseStage},
}

// checkPrerequisites fails when step is reached with upstream answers missing,
// which means steps were skipped or the session was tampered with.
func (w *Wizard) checkPrerequisites(step types.Step, a *types.AnswerSet) error {
	switch step {
	case types.StepStart, types.StepClaimStart:
		return nil
	case types.StepError:
		return errors.Navigation("step has no page").WithContext("step", string(step))
	}
	if !step.IsKnown() {
		return errors.NotFound("step", string(step))
	}

	if missing := a.Missing(types.FieldStartDate, types.FieldLawCategory); missing != "" {
		return errors.MissingData(string(missing))
	}
	if !inJourney(a.LawCategory, step) {
		return errors.Navigation("step is not part of this journey").
			WithContext("step", string(step)).
			WithContext("lawCategory", a.LawCategory)
	}

	fields := requires[step]
	if step == types.StepVatIndicator || step == types.StepResult {
		fields = vatPrerequisites(a.LawCategory)
	}
	if missing := a.Missing(fields...); missing != "" {
		return errors.MissingData(string(missing)).WithContext("step", string(step))
	}
	return nil
}

func vatPrerequisites(category string) []types.Field {
	if category == types.CategoryImmigration {
		return append(requires[types.StepAdditionalCosts], types.FieldAdditionalCosts)
	}
	return append(requires[types.StepLondonRate], types.FieldLondonRate)
}

func inJourney(category string, step types.Step) bool {
	for _, s := range journey[category] {
		if s == step {
			return true
		}
	}
	return false
}
