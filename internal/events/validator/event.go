package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"eventdesk/pkg/logger"
	"eventdesk/pkg/model"
)

var (
	// HH:MM with a mandatory two-digit hour, optionally followed by seconds.
	timeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])(?::([0-5][0-9]))?$`)

	// Layouts accepted for incoming dates. Time and zone portions are parsed
	// and then discarded.
	dateLayouts = []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"January 2, 2006",
		"Jan 2, 2006",
		"02 Jan 2006",
	}
)

const canonicalDateLayout = "2006-01-02"

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type EventValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewEventValidator(log *logger.Logger) *EventValidator {
	v := validator.New()

	if err := v.RegisterValidation("notblank", validateNotBlank); err != nil {
		log.Fatal("Failed to register 'notblank' validator",
			"error", err,
		)
	}

	log.Info("Event validator initialized successfully")

	return &EventValidator{
		validate: v,
		logger:   log,
	}
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Validate checks the full event: every string attribute non-empty after
// trimming, agenda and tags non-empty lists of non-blank elements.
func (v *EventValidator) Validate(event *model.Event) error {
	if err := v.validate.Struct(event); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *EventValidator) ValidateUpdate(update *model.EventUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

// NormalizeDate parses the input as a calendar date and returns only the
// YYYY-MM-DD portion. Already-canonical input round-trips unchanged.
func NormalizeDate(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", ValidationErrors{
			ValidationError{
				Field:   "Date",
				Message: "date is required",
			},
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(canonicalDateLayout), nil
		}
	}

	return "", ValidationErrors{
		ValidationError{
			Field:   "Date",
			Message: fmt.Sprintf("unparseable date: %q", input),
		},
	}
}

// NormalizeTime accepts HH:MM or HH:MM:SS on a 24-hour clock and returns
// HH:MM. One-digit hours are rejected.
func NormalizeTime(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if !timeRegex.MatchString(trimmed) {
		return "", ValidationErrors{
			ValidationError{
				Field:   "Time",
				Message: fmt.Sprintf("time must be HH:MM or HH:MM:SS on a 24-hour clock, got: %q", input),
			},
		}
	}
	return trimmed[:5], nil
}

func (v *EventValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "notblank":
			message = fmt.Sprintf("%s cannot be blank", err.Field())
		case "min":
			message = fmt.Sprintf("%s must have at least %s element(s)", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
