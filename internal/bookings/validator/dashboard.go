package validator

import (
	"errors"
	"fmt"
	"regexp"
	"spacebook/pkg/logger"
	"spacebook/pkg/model"
	"strings"

	"github.com/go-playground/validator/v10"
)

var listTokenRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

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

// Details flattens the errors into a field -> message map for API responses.
func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

type DashboardValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewDashboardValidator(log *logger.Logger) *DashboardValidator {
	v := validator.New()

	if err := v.RegisterValidation("list_token", validateListToken); err != nil {
		log.Fatal("Failed to register 'list_token' validator",
			"error", err,
		)
	}

	log.Debug("Dashboard validator initialized successfully")

	return &DashboardValidator{
		validate: v,
		logger:   log,
	}
}

func validateListToken(fl validator.FieldLevel) bool {
	return listTokenRegex.MatchString(fl.Field().String())
}

func (v *DashboardValidator) ValidateViewer(viewer *model.Viewer) error {
	return v.validateStruct(viewer)
}

func (v *DashboardValidator) ValidateQuery(query *model.DashboardQuery) error {
	return v.validateStruct(query)
}

func (v *DashboardValidator) ValidateStatusUpdate(update *model.StatusUpdate) error {
	return v.validateStruct(update)
}

func (v *DashboardValidator) ValidatePreferences(prefs *model.Preferences) error {
	return v.validateStruct(prefs)
}

func (v *DashboardValidator) validateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *DashboardValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "list_token":
			message = fmt.Sprintf("%s must start with a letter and contain only letters, digits and underscores", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
