// Package validation checks and normalizes untrusted input before anything
// touches the store. All functions are pure: they either return normalized
// values or a typed apperror, never touching external state.
package validation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/torchtask/taskhub/internal/apperror"
	"github.com/torchtask/taskhub/internal/domain/task"
	"github.com/torchtask/taskhub/internal/domain/user"
)

var idPattern = regexp.MustCompile(`^\d+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// at least one lowercase, one uppercase, one digit
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		var lower, upper, digit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLower(r):
				lower = true
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		return lower && upper && digit
	})

	return v
}

// ParseID parses a client-supplied id. Only strings of digits with a
// positive value are accepted.
func ParseID(raw string) (int64, error) {
	if !idPattern.MatchString(raw) {
		return 0, apperror.NewInvalidID()
	}

	id, err := strconv.ParseInt(raw, 10, 64)

	if err != nil || id <= 0 {
		return 0, apperror.NewInvalidID()
	}

	return id, nil
}

// ParseEmail trims and syntax-checks a client-supplied email address.
func ParseEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)

	if email == "" {
		return "", apperror.NewInvalidEmail()
	}

	if err := validate.Var(email, "email"); err != nil {
		return "", apperror.NewInvalidEmail()
	}

	return email, nil
}

type registerFields struct {
	Email    string `validate:"required,email"`
	Name     string `validate:"required,min=3,max=50"`
	Password string `validate:"required,min=8,max=30,password"`
}

type loginFields struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=30,password"`
}

type taskCreateFields struct {
	Name        string `validate:"required,min=5,max=50"`
	Description string `validate:"max=500"`
}

// UserCreate validates and normalizes registration input.
func UserCreate(email, name, password string) (user.CreateRequest, error) {
	in := registerFields{
		Email:    strings.TrimSpace(email),
		Name:     strings.TrimSpace(name),
		Password: strings.TrimSpace(password),
	}

	if err := validate.Struct(in); err != nil {
		return user.CreateRequest{}, apperror.NewValidation(firstViolation(err))
	}

	return user.CreateRequest{Email: in.Email, Name: in.Name, Password: in.Password}, nil
}

// Credentials validates login input. The password policy is the same as at
// registration, so a string that could never be a valid password fails fast.
func Credentials(email, password string) (user.Credentials, error) {
	in := loginFields{
		Email:    strings.TrimSpace(email),
		Password: strings.TrimSpace(password),
	}

	if err := validate.Struct(in); err != nil {
		return user.Credentials{}, apperror.NewValidation(firstViolation(err))
	}

	return user.Credentials{Email: in.Email, Password: in.Password}, nil
}

// UserUpdate validates a partial user patch. At least one recognized field
// must be present.
func UserUpdate(patch user.Patch) (user.Patch, error) {
	if patch.Empty() {
		return user.Patch{}, apperror.NewEmptyUpdate()
	}

	out := user.Patch{}

	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if err := validate.Var(email, "required,email"); err != nil {
			return user.Patch{}, apperror.NewValidation("Please enter a valid email address")
		}
		out.Email = &email
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := validate.Var(name, "min=3,max=50"); err != nil {
			return user.Patch{}, apperror.NewValidation("Name must be between 3 and 50 characters")
		}
		out.Name = &name
	}

	if patch.Password != nil {
		password := strings.TrimSpace(*patch.Password)
		if err := validate.Var(password, "min=8,max=30,password"); err != nil {
			return user.Patch{}, apperror.NewValidation("Password must be 8-30 characters with at least one lowercase letter, one uppercase letter, and one number")
		}
		out.Password = &password
	}

	return out, nil
}

// TaskCreate validates task creation input. Status defaults to PENDING.
func TaskCreate(name, description string, status, dueDate *string) (task.CreateRequest, error) {
	in := taskCreateFields{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}

	if err := validate.Struct(in); err != nil {
		return task.CreateRequest{}, apperror.NewValidation(firstViolation(err))
	}

	out := task.CreateRequest{
		Name:        in.Name,
		Description: in.Description,
		Status:      task.StatusPending,
	}

	if status != nil {
		st := task.Status(*status)
		if !st.Valid() {
			return task.CreateRequest{}, apperror.NewValidation("Invalid task status")
		}
		out.Status = st
	}

	if dueDate != nil {
		due, err := parseDueDate(*dueDate)
		if err != nil {
			return task.CreateRequest{}, err
		}
		out.DueDate = &due
	}

	return out, nil
}

// TaskUpdate validates a partial task patch. The name bound is looser than
// at creation (1-100 instead of 5-50).
func TaskUpdate(name, description, status, dueDate *string) (task.Patch, error) {
	if name == nil && description == nil && status == nil && dueDate == nil {
		return task.Patch{}, apperror.NewEmptyUpdate()
	}

	out := task.Patch{}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if err := validate.Var(trimmed, "required,min=1,max=100"); err != nil {
			return task.Patch{}, apperror.NewValidation("Task name must be between 1 and 100 characters")
		}
		out.Name = &trimmed
	}

	if description != nil {
		trimmed := strings.TrimSpace(*description)
		if err := validate.Var(trimmed, "max=500"); err != nil {
			return task.Patch{}, apperror.NewValidation("Description must be less than 500 characters")
		}
		out.Description = &trimmed
	}

	if status != nil {
		st := task.Status(*status)
		if !st.Valid() {
			return task.Patch{}, apperror.NewValidation("Invalid task status")
		}
		out.Status = &st
	}

	if dueDate != nil {
		due, err := parseDueDate(*dueDate)
		if err != nil {
			return task.Patch{}, err
		}
		out.DueDate = &due
	}

	return out, nil
}

func parseDueDate(raw string) (time.Time, error) {
	due, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))

	if err != nil {
		return time.Time{}, apperror.NewValidation("Due date must be a valid ISO date string")
	}

	return due.UTC(), nil
}

// firstViolation turns the first validator failure into a client-facing
// message, in the spirit of the per-rule messages the web client expects.
func firstViolation(err error) string {
	var verrs validator.ValidationErrors

	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid input"
	}

	fe := verrs[0]

	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Please enter a valid email address"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "password":
		return "Password must contain at least one lowercase letter, one uppercase letter, and one number"
	default:
		return fe.Field() + " failed " + fe.Tag() + " validation"
	}
}
