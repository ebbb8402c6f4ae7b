package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/derived"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// BlankOption is the first entry of an optional select prompt; choosing it
// leaves the field empty.
const BlankOption = "Select an option"

// Filler walks a session's form in the terminal: it prompts every input
// field, validates each answer, shows derived values as they change and
// finally submits the answers.
type Filler struct {
	driver        PromptDriver
	out           io.Writer
	theme         Theme
	confirmSubmit bool
}

// New constructs a Filler using the survey driver unless overridden.
func New(options ...Option) *Filler {
	f := &Filler{theme: DefaultTheme}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(f.out)
	}
	return f
}

// Fill prompts for every input field of the session's form and returns the
// resulting submission. A submission that fails validation is returned
// with Valid set to false.
func (f *Filler) Fill(ctx context.Context, s *session.Session) (session.Submission, error) {
	if ctx == nil {
		return session.Submission{}, errors.New("tui: context is required")
	}
	if s == nil {
		return session.Submission{}, errors.New("tui: session is nil")
	}
	form := s.Form()
	if !hasInputs(form) {
		return session.Submission{}, ErrNoFields
	}

	title := form.Name
	if title == "" {
		title = "Untitled Form"
	}
	if err := f.driver.Info(ctx, f.theme.TitlePrefix+title); err != nil {
		return session.Submission{}, err
	}

	shown := make(map[int]string)
	for _, field := range form.Fields {
		if field.IsDerived() {
			continue
		}
		if err := f.fillField(ctx, s, field, shown); err != nil {
			return session.Submission{}, err
		}
	}

	if f.confirmSubmit {
		ok, err := f.driver.Confirm(ctx, ConfirmConfig{Message: "Submit form?", Default: true})
		if err != nil {
			return session.Submission{}, err
		}
		if !ok {
			return session.Submission{}, ErrAborted
		}
	}

	submission := s.Submit()
	if !submission.Valid {
		for _, field := range form.Fields {
			if result, ok := submission.Results[field.ID]; ok && !result.Valid {
				_ = f.driver.Info(ctx, fmt.Sprintf("%s%s: %s", f.theme.ErrorPrefix, field.Label, result.Message))
			}
		}
	}
	return submission, nil
}

func (f *Filler) fillField(ctx context.Context, s *session.Session, field model.Field, shown map[int]string) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		value, err := f.prompt(ctx, field, s.Value(field.ID))
		if err != nil {
			return err
		}
		if err := typeCheck(field, value); err != nil {
			if err := f.driver.Info(ctx, fmt.Sprintf("%s%s: %s", f.theme.ErrorPrefix, field.Label, err)); err != nil {
				return err
			}
			continue
		}
		update, err := s.SetValue(field.ID, value)
		if err != nil {
			return err
		}
		if !update.Validation.Valid {
			if err := f.driver.Info(ctx, fmt.Sprintf("%s%s: %s", f.theme.ErrorPrefix, field.Label, update.Validation.Message)); err != nil {
				return err
			}
			continue
		}
		return f.showDerived(ctx, s.Form(), update.Derived, shown)
	}
}

// showDerived prints derived values that changed since they were last shown.
func (f *Filler) showDerived(ctx context.Context, form model.Form, results []derived.Result, shown map[int]string) error {
	for _, result := range results {
		if previous, ok := shown[result.FieldID]; ok && previous == result.Value {
			continue
		}
		shown[result.FieldID] = result.Value
		if result.Value == "" {
			continue
		}
		label := derived.FieldKey(result.FieldID)
		if field, ok := form.Field(result.FieldID); ok {
			label = field.Label
		}
		if err := f.driver.Info(ctx, fmt.Sprintf("%s%s: %s", f.theme.DerivedPrefix, label, result.Value)); err != nil {
			return err
		}
	}
	return nil
}

func (f *Filler) prompt(ctx context.Context, field model.Field, current any) (any, error) {
	message := field.Label
	if field.Required {
		message += " *"
	}
	current = coalesce(current, field.DefaultValue)

	switch field.Type {
	case model.FieldTypeTextArea:
		return f.driver.TextArea(ctx, TextAreaConfig{
			Message:   message,
			Default:   validation.JoinValue(field, current),
			Validator: answerValidator(field),
		})
	case model.FieldTypeNumber:
		return f.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   validation.JoinValue(field, current),
			Validator: chain(numberValidator, answerValidator(field)),
		})
	case model.FieldTypeDate:
		return f.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   validation.JoinValue(field, current),
			Help:      "YYYY-MM-DD",
			Validator: chain(dateValidator, answerValidator(field)),
		})
	case model.FieldTypeSelect, model.FieldTypeRadio:
		return f.promptChoice(ctx, field, message, validation.JoinValue(field, current))
	case model.FieldTypeCheckbox:
		return f.promptMulti(ctx, field, message, validation.Selection(field, current))
	default:
		cfg := InputConfig{
			Message:   message,
			Default:   validation.JoinValue(field, current),
			Validator: answerValidator(field),
		}
		if field.Validation.Enabled(model.ValidationRulePassword) {
			cfg.Default = ""
			return f.driver.Password(ctx, cfg)
		}
		return f.driver.Input(ctx, cfg)
	}
}

func (f *Filler) promptChoice(ctx context.Context, field model.Field, message, current string) (any, error) {
	options := append([]string(nil), field.Options...)
	blank := field.Type == model.FieldTypeSelect && !field.Required
	if blank {
		options = append([]string{BlankOption}, options...)
	}
	if len(options) == 0 {
		return "", nil
	}
	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      message,
		Options:      options,
		DefaultIndex: indexOf(options, current),
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(options) || (blank && idx == 0) {
		return "", nil
	}
	return options[idx], nil
}

func (f *Filler) promptMulti(ctx context.Context, field model.Field, message string, current []string) (any, error) {
	if len(field.Options) == 0 {
		return []string{}, nil
	}
	indices, err := f.driver.MultiSelect(ctx, SelectConfig{
		Message:  message,
		Options:  field.Options,
		Defaults: indicesOf(field.Options, current),
		Validator: func(selected []string) error {
			return resultErr(validation.Validate(field, strings.Join(selected, validation.CheckboxSeparator)))
		},
	})
	if err != nil {
		return nil, err
	}
	selected := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(field.Options) {
			selected = append(selected, field.Options[idx])
		}
	}
	return selected, nil
}

func answerValidator(field model.Field) func(string) error {
	return func(answer string) error {
		return resultErr(validation.Validate(field, answer))
	}
}

func resultErr(result validation.Result) error {
	if result.Valid {
		return nil
	}
	return errors.New(result.Message)
}

func numberValidator(answer string) error {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
		return errors.New("Please enter a number")
	}
	return nil
}

func dateValidator(answer string) error {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return nil
	}
	for _, layout := range derived.DateLayouts {
		if _, err := time.Parse(layout, trimmed); err == nil {
			return nil
		}
	}
	return errors.New("Please enter a date as YYYY-MM-DD")
}

// typeCheck applies the input-type constraints a browser enforces before
// the validation rules see the value.
func typeCheck(field model.Field, value any) error {
	answer, ok := value.(string)
	if !ok {
		return nil
	}
	switch field.Type {
	case model.FieldTypeNumber:
		return numberValidator(answer)
	case model.FieldTypeDate:
		return dateValidator(answer)
	default:
		return nil
	}
}

func chain(validators ...func(string) error) func(string) error {
	return func(answer string) error {
		for _, validate := range validators {
			if err := validate(answer); err != nil {
				return err
			}
		}
		return nil
	}
}

func coalesce(value, fallback any) any {
	if value == nil {
		return fallback
	}
	if s, ok := value.(string); ok && s == "" {
		return fallback
	}
	return value
}

func hasInputs(form model.Form) bool {
	for _, field := range form.Fields {
		if !field.IsDerived() {
			return true
		}
	}
	return false
}
