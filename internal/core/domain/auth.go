package domain

// Credentials is the transient sign-in input. Never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PatientDetails carries the patient-specific registration fields.
type PatientDetails struct {
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	BloodGroup string `json:"bloodGroup"`
}

// DoctorDetails carries the doctor-specific registration fields.
type DoctorDetails struct {
	Specialization string `json:"specialization"`
	DeptID         int64  `json:"deptId"`
	Availability   string `json:"availability"`
}

// Registration is the transient sign-up payload. Exactly one of Patient or
// Doctor is set when Role selects that variant; both are nil for admins.
type Registration struct {
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	Password string          `json:"password"`
	Role     Role            `json:"role"`
	Patient  *PatientDetails `json:"patientData,omitempty"`
	Doctor   *DoctorDetails  `json:"doctorData,omitempty"`
}
