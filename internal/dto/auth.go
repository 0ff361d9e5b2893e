package dto

// LoginRequest is posted by the login form.
type LoginRequest struct {
	Role       string `json:"role" validate:"required"`
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// LoginResponse carries the role-specific ids the client shell keeps as its session.
type LoginResponse struct {
	Message   string `json:"message"`
	Role      string `json:"role"`
	Redirect  string `json:"redirect"`
	Token     string `json:"token,omitempty"`
	AdminID   string `json:"adminId,omitempty"`
	FacultyID string `json:"facultyId,omitempty"`
	StudentID string `json:"studentId,omitempty"`
	SectionID string `json:"sectionId,omitempty"`
}
