// Package validation holds the pure input checks run before an operation is
// dispatched to the state store. Each check returns nil or an
// *apperrors.ValidationError carrying a message fit for an end user.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/kushalbajje/expense-management/internal/apperrors"
	"github.com/kushalbajje/expense-management/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MaxExpenseCost is the largest cost a single expense may carry.
var MaxExpenseCost = decimal.NewFromInt(1_000_000)

var (
	once     sync.Once
	validate *validator.Validate
)

// engine returns the shared validator with the expense-specific tags registered.
func engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := Configure(validate); err != nil {
			panic(fmt.Sprintf("validation: register tags: %v", err))
		}
	})
	return validate
}

// Configure installs the expense_category, cost_positive and cost_max tags on
// v and makes field errors report a struct field's `label` tag as its name.
// Gin's binding validator is configured with it too so both layers produce
// the same messages.
func Configure(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	if err := v.RegisterValidation("expense_category", func(fl validator.FieldLevel) bool {
		return domain.ExpenseCategory(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("cost_positive", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && d.IsPositive()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("cost_max", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && d.LessThanOrEqual(MaxExpenseCost)
	})
}

type departmentInput struct {
	Name string `label:"Department name" validate:"required,min=2"`
}

type userInput struct {
	FirstName    string `label:"First name" validate:"required,min=2"`
	LastName     string `label:"Last name" validate:"required,min=2"`
	DepartmentID string `label:"Department" validate:"required"`
}

type expenseInput struct {
	UserID      string          `label:"User" validate:"required"`
	Category    string          `label:"Category" validate:"required,expense_category"`
	Description string          `label:"Description" validate:"required,min=3"`
	Cost        decimal.Decimal `label:"Cost" validate:"cost_positive,cost_max"`
}

// ValidateDepartmentName checks a proposed department name. currentName is the
// department's present name when renaming and may equal the proposal in any case.
func ValidateDepartmentName(name string, existingNames []string, currentName string) error {
	name = strings.TrimSpace(name)
	if err := check(departmentInput{Name: name}); err != nil {
		return err
	}
	normalized := strings.ToLower(name)
	if currentName != "" && normalized == strings.ToLower(strings.TrimSpace(currentName)) {
		return nil
	}
	for _, existing := range existingNames {
		if strings.ToLower(strings.TrimSpace(existing)) == normalized {
			return apperrors.NewValidationError("Department name", "Department name must be unique")
		}
	}
	return nil
}

// ValidateUserData checks the fields of a user form after trimming.
func ValidateUserData(firstName, lastName, departmentID string) error {
	return check(userInput{
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		DepartmentID: strings.TrimSpace(departmentID),
	})
}

// ValidateExpenseData checks the fields of an expense form after trimming.
// Cost must lie in (0, MaxExpenseCost].
func ValidateExpenseData(userID string, category domain.ExpenseCategory, description string, cost decimal.Decimal) error {
	return check(expenseInput{
		UserID:      strings.TrimSpace(userID),
		Category:    string(category),
		Description: strings.TrimSpace(description),
		Cost:        cost,
	})
}

// check validates in and converts the first failure into a ValidationError.
func check(in any) error {
	err := engine().Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate %T: %w", in, err)
	}
	return FromFieldError(fieldErrs[0])
}

// FromFieldError converts a single validator failure into a ValidationError.
func FromFieldError(fe validator.FieldError) *apperrors.ValidationError {
	return apperrors.NewValidationError(fe.Field(), message(fe))
}

// FromBindingError converts a request binding failure into a ValidationError.
// Malformed bodies that never reached the validator are reported as such.
func FromBindingError(err error) *apperrors.ValidationError {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return FromFieldError(fieldErrs[0])
	}
	return apperrors.NewValidationError("body", "Invalid request body: "+err.Error())
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", label, fe.Param())
	case "expense_category":
		names := make([]string, len(domain.ExpenseCategories))
		for i, c := range domain.ExpenseCategories {
			names[i] = string(c)
		}
		return fmt.Sprintf("%s must be one of %s", label, strings.Join(names, ", "))
	case "cost_positive":
		return label + " must be greater than 0"
	case "cost_max":
		return fmt.Sprintf("%s must not exceed %s", label, MaxExpenseCost.StringFixed(0))
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
