// Package invalidation clears answers derived from an upstream answer that changed.
//
// Dependency order:
//
//	lawCategory/startDate -> matterCode1 -> matterCode2 -> {caseStage, londonRate, additionalCosts, vatIndicator} -> result
//
// Clearing only happens when an already-answered step is resubmitted with a
// different value; a first answer never clears anything.
package invalidation

import (
	"reflect"

	"fee-wizard/core/types"
)

// downstream maps each step to the fields that depend on its answer.
// A step never clears its own fields.
var downstream = map[types.Step][]types.Field{
	types.StepClaimStart: {
		types.FieldMatterCode1,
		types.FieldMatterCode2,
		types.FieldCaseStage,
		types.FieldLondonRate,
		types.FieldVatIndicator,
		types.FieldAdditionalCosts,
		types.FieldFeeDetails,
		types.FieldResult,
	},
	types.StepMatterCode1: {
		types.FieldMatterCode2,
		types.FieldCaseStage,
		types.FieldLondonRate,
		types.FieldVatIndicator,
		types.FieldAdditionalCosts,
		types.FieldFeeDetails,
		types.FieldResult,
	},
	types.StepMatterCode2: {
		types.FieldCaseStage,
		types.FieldLondonRate,
		types.FieldVatIndicator,
		types.FieldAdditionalCosts,
		types.FieldFeeDetails,
		types.FieldResult,
	},
	types.StepCaseStage: {
		types.FieldAdditionalCosts,
		types.FieldFeeDetails,
		types.FieldResult,
	},
	types.StepLondonRate: {
		types.FieldFeeDetails,
		types.FieldResult,
	},
	types.StepAdditionalCosts: {
		types.FieldResult,
	},
	types.StepVatIndicator: {
		types.FieldResult,
	},
}

// owned lists the fields each step writes
var owned = map[types.Step][]types.Field{
	types.StepClaimStart:      {types.FieldStartDate, types.FieldLawCategory},
	types.StepMatterCode1:     {types.FieldMatterCode1},
	types.StepMatterCode2:     {types.FieldMatterCode2},
	types.StepCaseStage:       {types.FieldCaseStage},
	types.StepLondonRate:      {types.FieldLondonRate},
	types.StepAdditionalCosts: {types.FieldAdditionalCosts},
	types.StepVatIndicator:    {types.FieldVatIndicator},
}

// Downstream returns the fields cleared when step's answer changes
func Downstream(step types.Step) []types.Field {
	return downstream[step]
}

// Invalidate clears every field downstream of step and returns those that held a value
func Invalidate(a *types.AnswerSet, step types.Step) []types.Field {
	var cleared []types.Field
	for _, f := range downstream[step] {
		if a.Has(f) {
			cleared = append(cleared, f)
		}
		a.Clear(f)
	}
	return cleared
}

// Snapshot is a step's own answer captured before resubmission
type Snapshot struct {
	step     types.Step
	answered bool
	values   []interface{}
}

// Take captures step's current answer
func Take(a *types.AnswerSet, step types.Step) Snapshot {
	s := Snapshot{step: step}
	for _, f := range owned[step] {
		if a.Has(f) {
			s.answered = true
		}
		s.values = append(s.values, value(a, f))
	}
	return s
}

// Reconcile invalidates downstream fields if the step had been answered before
// and its answer now differs from the snapshot. It returns the cleared fields.
func Reconcile(a *types.AnswerSet, before Snapshot) []types.Field {
	if !before.answered {
		return nil
	}
	after := Take(a, before.step)
	if reflect.DeepEqual(before.values, after.values) {
		return nil
	}
	return Invalidate(a, before.step)
}

func value(a *types.AnswerSet, f types.Field) interface{} {
	switch f {
	case types.FieldStartDate:
		return a.StartDate
	case types.FieldLawCategory:
		return a.LawCategory
	case types.FieldMatterCode1:
		return a.MatterCode1
	case types.FieldMatterCode2:
		return a.MatterCode2
	case types.FieldCaseStage:
		return a.CaseStage
	case types.FieldLondonRate:
		return a.LondonRate
	case types.FieldVatIndicator:
		if a.VatIndicator == nil {
			return nil
		}
		return *a.VatIndicator
	case types.FieldAdditionalCosts:
		if a.AdditionalCosts == nil {
			return nil
		}
		return append([]types.AdditionalCost(nil), a.AdditionalCosts...)
	}
	return nil
}
