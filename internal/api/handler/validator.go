package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)
	upperPattern = regexp.MustCompile(`[A-Z]`)
	digitPattern = regexp.MustCompile(`[0-9]`)
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req),
// with the portal's custom rules registered:
//
//	phone    – 10 to 15 digits, nothing else
//	strongpw – at least one uppercase letter and one digit
//
// plus the struct-level rule that makes the role-specific registration
// fields required for the selected role only.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("strongpw", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return upperPattern.MatchString(s) && digitPattern.MatchString(s)
	})
	v.RegisterStructValidation(signUpStructLevel, signUpRequest{})

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// signUpStructLevel enforces the role-conditional registration fields: the
// payload is a tagged union selected by role, so patient fields are only
// required for patients and doctor fields only for doctors.
func signUpStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(signUpRequest)

	switch req.Role {
	case "PATIENT":
		if req.Age < 1 {
			sl.ReportError(req.Age, "Age", "age", "patientrequired", "")
		}
		if req.Gender == "" {
			sl.ReportError(req.Gender, "Gender", "gender", "patientrequired", "")
		}
		if req.BloodGroup == "" {
			sl.ReportError(req.BloodGroup, "BloodGroup", "blood_group", "patientrequired", "")
		}
	case "DOCTOR":
		if req.Specialization == "" {
			sl.ReportError(req.Specialization, "Specialization", "specialization", "doctorrequired", "")
		}
		if req.DeptID < 1 {
			sl.ReportError(req.DeptID, "DeptID", "dept_id", "doctorrequired", "")
		}
		if req.Availability == "" {
			sl.ReportError(req.Availability, "Availability", "availability", "doctorrequired", "")
		}
	}
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "eqfield":
		return "passwords do not match"
	case "phone":
		return field + " must be 10 to 15 digits"
	case "strongpw":
		return field + " must contain an uppercase letter and a digit"
	case "patientrequired":
		return field + " is required for patient registration"
	case "doctorrequired":
		return field + " is required for doctor registration"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
