// Package ui - Interactive questionnaire runner
package ui

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"fee-wizard/core/output"
	"fee-wizard/core/types"
	"fee-wizard/core/wizard"
	"fee-wizard/internal/errors"
)

// questions are the headings shown for each step
var questions = map[types.Step]string{
	types.StepClaimStart:      "When did the claim start, and what area of law is it?",
	types.StepMatterCode1:     "Matter type 1",
	types.StepMatterCode2:     "Matter type 2",
	types.StepCaseStage:       "Case stage",
	types.StepLondonRate:      "Where is the case being heard?",
	types.StepAdditionalCosts: "Additional costs",
	types.StepVatIndicator:    "Is VAT payable?",
}

// choiceKeys names the form field of steps answered by picking one option
var choiceKeys = map[types.Step]string{
	types.StepMatterCode1:  wizard.KeyMatterCode1,
	types.StepMatterCode2:  wizard.KeyMatterCode2,
	types.StepCaseStage:    wizard.KeyCaseStage,
	types.StepLondonRate:   wizard.KeyLondonRate,
	types.StepVatIndicator: wizard.KeyVat,
}

// Questionnaire runs the wizard against a terminal
type Questionnaire struct {
	w      *Writer
	in     *bufio.Scanner
	wizard *wizard.Wizard
}

// NewQuestionnaire creates a runner reading answers from in
func NewQuestionnaire(w *Writer, in io.Reader, wz *wizard.Wizard) *Questionnaire {
	return &Questionnaire{w: w, in: bufio.NewScanner(in), wizard: wz}
}

// Run asks every question of the journey, repeating a step until its answers
// are valid, and prints the calculated fee.
func (q *Questionnaire) Run(ctx context.Context) (*output.Breakdown, error) {
	answers := types.NewAnswerSet()
	outcome, err := q.wizard.Submit(ctx, types.StepStart, answers, nil)
	if err != nil {
		return nil, err
	}

	for step := outcome.Next; step != types.StepResult; {
		view, err := q.wizard.View(ctx, step, answers)
		if err != nil {
			return nil, err
		}
		q.w.Header(questions[step])

		form, err := q.ask(view)
		if err != nil {
			return nil, err
		}

		outcome, err := q.wizard.Submit(ctx, step, answers, form)
		if err != nil {
			return nil, err
		}
		if !outcome.Valid() {
			for _, fe := range outcome.Errors.List() {
				q.w.Error("%s %s", fe.Field, fe.Message)
			}
			continue
		}
		step = outcome.Next
	}

	breakdown, err := q.wizard.Result(ctx, answers)
	if err != nil {
		return nil, err
	}
	q.w.Breakdown(breakdown)
	return breakdown, nil
}

func (q *Questionnaire) ask(view *wizard.View) (map[string]string, error) {
	form := make(map[string]string)

	switch view.Step {
	case types.StepClaimStart:
		q.w.Prompt("Start date (dd/mm/yyyy)")
		date, err := q.readLine()
		if err != nil {
			return nil, err
		}
		form[wizard.KeyStartDate] = date
		category, err := q.choose(view.Options)
		if err != nil {
			return nil, err
		}
		form[wizard.KeyLawCategory] = category

	case types.StepAdditionalCosts:
		if len(view.Fees) == 0 {
			q.w.Success("No additional costs apply")
		}
		for _, fee := range view.Fees {
			q.w.Prompt(fee.Description + " " + hint(fee.LevelCodeType))
			value, err := q.readLine()
			if err != nil {
				return nil, err
			}
			form[fee.LevelCode] = value
		}

	default:
		key, ok := choiceKeys[view.Step]
		if !ok {
			return nil, errors.Navigation("no prompt for step").WithContext("step", string(view.Step))
		}
		choice, err := q.choose(view.Options)
		if err != nil {
			return nil, err
		}
		form[key] = choice
	}

	return form, nil
}

// choose lists options and accepts either a number or an id
func (q *Questionnaire) choose(options []types.Option) (string, error) {
	for i, opt := range options {
		q.w.Option(i+1, opt.ID, opt.Description)
	}
	q.w.Prompt("Choice")
	raw, err := q.readLine()
	if err != nil {
		return "", err
	}
	if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= len(options) {
		return options[n-1].ID, nil
	}
	return raw, nil
}

func (q *Questionnaire) readLine() (string, error) {
	if !q.in.Scan() {
		if err := q.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(q.in.Text()), nil
}

func hint(t types.LevelCodeType) string {
	switch t {
	case types.LevelCodeOptionalBool:
		return "(yes/no)"
	case types.LevelCodeOptionalUnit:
		return "(0-9)"
	case types.LevelCodeOptionalFee:
		return "(£, blank for none)"
	}
	return ""
}
