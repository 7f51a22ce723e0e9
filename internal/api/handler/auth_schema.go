package handler

import "github.com/rachitkhandelwal41/hospital-portal/internal/core/domain"

type signInRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

// signUpRequest is the flat form payload of the registration page. The
// role-specific fields are validated by the struct-level rule in
// validator.go and folded into the tagged-union domain payload below.
type signUpRequest struct {
	Username        string `form:"username" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	Phone           string `form:"phone" validate:"required,phone"`
	Role            string `form:"role" validate:"required,oneof=PATIENT DOCTOR ADMIN"`
	Password        string `form:"password" validate:"required,min=8,strongpw"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`

	// Patient variant.
	Age        int    `form:"age"`
	Gender     string `form:"gender"`
	BloodGroup string `form:"blood_group"`

	// Doctor variant.
	Specialization string `form:"specialization"`
	DeptID         int64  `form:"dept_id"`
	Availability   string `form:"availability"`
}

// registration builds the backend payload, attaching exactly the sub-record
// the selected role calls for.
func (r signUpRequest) registration() domain.Registration {
	reg := domain.Registration{
		Username: r.Username,
		Email:    r.Email,
		Phone:    r.Phone,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}

	switch reg.Role {
	case domain.RolePatient:
		reg.Patient = &domain.PatientDetails{
			Age:        r.Age,
			Gender:     r.Gender,
			BloodGroup: r.BloodGroup,
		}
	case domain.RoleDoctor:
		reg.Doctor = &domain.DoctorDetails{
			Specialization: r.Specialization,
			DeptID:         r.DeptID,
			Availability:   r.Availability,
		}
	}
	return reg
}
