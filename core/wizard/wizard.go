// Package wizard drives the questionnaire one step at a time.
// It glues validation, invalidation and navigation together and is the only
// place that talks to the fee API while the journey is in progress.
package wizard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fee-wizard/adapters/feeapi"
	"fee-wizard/core/catalog"
	"fee-wizard/core/feerequest"
	"fee-wizard/core/invalidation"
	"fee-wizard/core/navigation"
	"fee-wizard/core/output"
	"fee-wizard/core/types"
	"fee-wizard/core/validation"
	"fee-wizard/internal/errors"
	"fee-wizard/internal/logging"
)

// Form keys read on each step
const (
	KeyStartDate   = "startDate"
	KeyStartDay    = "startDate-day"
	KeyStartMonth  = "startDate-month"
	KeyStartYear   = "startDate-year"
	KeyLawCategory = "lawCategory"
	KeyMatterCode1 = "matterCode1"
	KeyMatterCode2 = "matterCode2"
	KeyCaseStage   = "caseStage"
	KeyLondonRate  = "londonRate"
	KeyVat         = "vatIndicator"
)

// View is what a renderer needs to draw a step
type View struct {
	Step    types.Step            `json:"step"`
	Options []types.Option        `json:"options,omitempty"`
	Fees    []types.FeeDescriptor `json:"fees,omitempty"`
	Answers *types.AnswerSet      `json:"answers"`
}

// Outcome is the result of submitting a step.
// Either Errors is non-empty and the journey stays put, or Next is set.
type Outcome struct {
	Next    types.Step
	Errors  *validation.Errors
	Cleared []types.Field
}

// Valid reports whether the submission passed validation
func (o *Outcome) Valid() bool {
	return o.Errors == nil || o.Errors.Empty()
}

// Option configures a Wizard
type Option func(*Wizard)

// WithClock overrides the time source used for date validation
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) {
		w.now = now
	}
}

// WithLogger overrides the component logger
func WithLogger(l *zap.Logger) Option {
	return func(w *Wizard) {
		w.logger = l
	}
}

// Wizard runs the questionnaire against a catalog and a fee API
type Wizard struct {
	catalog *catalog.Catalog
	fees    feeapi.Service
	now     func() time.Time
	logger  *zap.Logger
}

// New creates a wizard
func New(cat *catalog.Catalog, fees feeapi.Service, opts ...Option) *Wizard {
	w := &Wizard{
		catalog: cat,
		fees:    fees,
		now:     time.Now,
		logger:  logging.Component("wizard"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// View returns the options and current answers for step
func (w *Wizard) View(ctx context.Context, step types.Step, a *types.AnswerSet) (*View, error) {
	if err := w.checkPrerequisites(step, a); err != nil {
		return nil, err
	}
	v := &View{Step: step, Answers: a}

	switch step {
	case types.StepStart:
	case types.StepClaimStart:
		v.Options = w.catalog.LawCategories()
	case types.StepMatterCode1:
		v.Options = w.catalog.MatterCode1(a.LawCategory)
	case types.StepMatterCode2:
		v.Options = w.catalog.MatterCode2(a.LawCategory, a.MatterCode1)
	case types.StepCaseStage:
		v.Options = w.catalog.CaseStages(a.LawCategory, a.MatterCode1)
	case types.StepLondonRate:
		v.Options = w.catalog.LondonRates()
	case types.StepAdditionalCosts:
		details, err := w.feeDetails(ctx, a)
		if err != nil {
			return nil, err
		}
		v.Fees = types.DisplayableFees(details.Fees)
	case types.StepVatIndicator:
		v.Options = w.catalog.VatOptions()
	default:
		return nil, errors.Navigation("step has no page").WithContext("step", string(step))
	}

	return v, nil
}

// Submit validates form for step, stores the answer and moves the journey on.
// Validation failures come back in the Outcome; the answers are then untouched.
func (w *Wizard) Submit(ctx context.Context, step types.Step, a *types.AnswerSet, form map[string]string) (*Outcome, error) {
	if step == types.StepStart {
		a.Reset()
		return w.advance(step, a, &Outcome{})
	}
	if err := w.checkPrerequisites(step, a); err != nil {
		return nil, err
	}

	var (
		errs  validation.Errors
		apply func()
	)

	switch step {
	case types.StepClaimStart:
		startDate, fe := w.startDate(form)
		errs.Add(fe)
		category, fe := validation.Enum(KeyLawCategory, form[KeyLawCategory], w.catalog.LawCategories())
		errs.Add(fe)
		apply = func() {
			a.StartDate = startDate
			a.LawCategory = category
		}

	case types.StepMatterCode1:
		code, fe := validation.Enum(KeyMatterCode1, form[KeyMatterCode1], w.catalog.MatterCode1(a.LawCategory))
		errs.Add(fe)
		apply = func() { a.MatterCode1 = code }

	case types.StepMatterCode2:
		code, fe := validation.Enum(KeyMatterCode2, form[KeyMatterCode2], w.catalog.MatterCode2(a.LawCategory, a.MatterCode1))
		errs.Add(fe)
		apply = func() { a.MatterCode2 = code }

	case types.StepCaseStage:
		stage, fe := validation.Enum(KeyCaseStage, form[KeyCaseStage], w.catalog.CaseStages(a.LawCategory, a.MatterCode1))
		errs.Add(fe)
		apply = func() { a.CaseStage = stage }

	case types.StepLondonRate:
		rate, fe := validation.Enum(KeyLondonRate, form[KeyLondonRate], w.catalog.LondonRates())
		errs.Add(fe)
		apply = func() { a.LondonRate = rate }

	case types.StepAdditionalCosts:
		costs, err := w.additionalCosts(ctx, a, form, &errs)
		if err != nil {
			return nil, err
		}
		apply = func() { a.AdditionalCosts = costs }

	case types.StepVatIndicator:
		vat, fe := validation.YesNo(KeyVat, form[KeyVat], w.catalog.VatOptions())
		errs.Add(fe)
		apply = func() { a.VatIndicator = &vat }

	default:
		return nil, errors.Navigation("step does not accept answers").WithContext("step", string(step))
	}

	if !errs.Empty() {
		w.logger.Debug("step rejected",
			zap.String("step", string(step)),
			zap.Int("errors", len(errs.List())),
		)
		return &Outcome{Errors: &errs}, nil
	}

	before := invalidation.Take(a, step)
	apply()
	outcome := &Outcome{Cleared: invalidation.Reconcile(a, before)}
	if len(outcome.Cleared) > 0 {
		w.logger.Debug("cleared stale answers",
			zap.String("step", string(step)),
			zap.Any("fields", outcome.Cleared),
		)
	}

	if step == types.StepMatterCode2 && a.LawCategory == types.CategoryImmigration {
		if err := w.deriveCaseStage(a); err != nil {
			return nil, err
		}
	}
	// Any change to the answers makes a stored result stale.
	a.Clear(types.FieldResult)

	return w.advance(step, a, outcome)
}

// Result builds the calculation request, calls the fee API and stores the
// displayed total in the answers.
func (w *Wizard) Result(ctx context.Context, a *types.AnswerSet) (*output.Breakdown, error) {
	if err := w.checkPrerequisites(types.StepResult, a); err != nil {
		return nil, err
	}

	// Descriptions for the breakdown, and the displayable count the builder checks.
	details, err := w.feeDetails(ctx, a)
	if err != nil {
		return nil, err
	}

	req, err := feerequest.Build(a)
	if err != nil {
		return nil, err
	}

	resp, err := w.fees.Calculate(ctx, req)
	if err != nil {
		return nil, err
	}

	breakdown := output.Normalize(resp, details.Fees, a.VatIndicator)
	total := output.DisplayTotal(resp, a.VatIndicator)
	a.Result = &total
	a.CurrentStep = types.StepResult

	w.logger.Info("fee calculated",
		zap.String("lawCategory", a.LawCategory),
		zap.String("matterCode1", a.MatterCode1),
		zap.String("matterCode2", a.MatterCode2),
		zap.String("total", breakdown.Total),
	)
	return breakdown, nil
}

func (w *Wizard) advance(step types.Step, a *types.AnswerSet, outcome *Outcome) (*Outcome, error) {
	next, err := navigation.Next(step, a)
	if err != nil {
		return nil, err
	}
	a.CurrentStep = next
	outcome.Next = next
	return outcome, nil
}

func (w *Wizard) startDate(form map[string]string) (string, *validation.FieldError) {
	if raw, ok := form[KeyStartDate]; ok {
		return validation.Date(KeyStartDate, raw, w.now())
	}
	return validation.DateParts(KeyStartDate, form[KeyStartDay], form[KeyStartMonth], form[KeyStartYear], w.now())
}

func (w *Wizard) additionalCosts(ctx context.Context, a *types.AnswerSet, form map[string]string, errs *validation.Errors) ([]types.AdditionalCost, error) {
	details, err := w.feeDetails(ctx, a)
	if err != nil {
		return nil, err
	}
	displayable := types.DisplayableFees(details.Fees)

	costs := make([]types.AdditionalCost, 0, len(displayable))
	for _, fee := range displayable {
		value, fe, err := validation.AdditionalCost(fee.LevelCode, form[fee.LevelCode], fee.LevelCodeType)
		if err != nil {
			return nil, err
		}
		if fe != nil {
			errs.Add(fe)
			continue
		}
		costs = append(costs, types.AdditionalCost{LevelCode: fee.LevelCode, Value: value})
	}
	return costs, nil
}

// feeDetails returns the fee descriptors for the current matter, fetching them
// only when nothing is cached for the same query.
func (w *Wizard) feeDetails(ctx context.Context, a *types.AnswerSet) (*types.FeeDetails, error) {
	query, err := feerequest.Query(a)
	if err != nil {
		return nil, err
	}
	key := query.Key()
	if a.FeeDetails != nil && a.FeeDetails.Key == key {
		return a.FeeDetails, nil
	}

	fees, err := w.fees.ListAvailable(ctx, query)
	if err != nil {
		return nil, err
	}
	a.FeeDetails = &types.FeeDetails{Key: key, Fees: fees}
	return a.FeeDetails, nil
}

func (w *Wizard) deriveCaseStage(a *types.AnswerSet) error {
	stage, ok := w.catalog.DefaultCaseStage(a.LawCategory, a.MatterCode1)
	if !ok {
		return errors.Newf(errors.TypeConfig, "no default case stage for %s", a.MatterCode1)
	}
	if a.CaseStage != stage {
		a.CaseStage = stage
		a.Clear(types.FieldFeeDetails)
		a.Clear(types.FieldAdditionalCosts)
	}
	return nil
}
