package domain

// Department is reference data shown on the doctor registration form.
type Department struct {
	ID   int64  `json:"deptId"`
	Name string `json:"name"`
}

// FallbackDepartments returns the static department list substituted when
// the backend lookup fails. Registration must stay usable without it.
func FallbackDepartments() []Department {
	return []Department{
		{ID: 1, Name: "Cardiology"},
		{ID: 2, Name: "Neurology"},
		{ID: 3, Name: "Orthopedics"},
		{ID: 4, Name: "Pediatrics"},
		{ID: 5, Name: "General Medicine"},
	}
}
