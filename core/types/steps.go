package types

// Step names a page of the questionnaire
type Step string

const (
	StepStart           Step = "start"
	StepClaimStart      Step = "claim-start"
	StepMatterCode1     Step = "matter-code-1"
	StepMatterCode2     Step = "matter-code-2"
	StepCaseStage       Step = "case-stage"
	StepLondonRate      Step = "london-rate"
	StepAdditionalCosts Step = "additional-costs"
	StepVatIndicator    Step = "vat-indicator"
	StepResult          Step = "result"
	StepError           Step = "error"
)

// AllSteps lists every step in journey order
var AllSteps = []Step{
	StepStart,
	StepClaimStart,
	StepMatterCode1,
	StepMatterCode2,
	StepCaseStage,
	StepLondonRate,
	StepAdditionalCosts,
	StepVatIndicator,
	StepResult,
	StepError,
}

// String returns the string representation
func (s Step) String() string {
	return string(s)
}

// IsKnown reports whether s is one of the defined steps
func (s Step) IsKnown() bool {
	for _, known := range AllSteps {
		if s == known {
			return true
		}
	}
	return false
}
