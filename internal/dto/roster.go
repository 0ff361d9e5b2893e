package dto

// RosterStudent is one entry of an uploaded roster file.
type RosterStudent struct {
	StudentIDNo  string `json:"student_id_no" validate:"required"`
	StudentName  string `json:"student_name" validate:"required"`
	Password     string `json:"password"`
	SectionID    string `json:"section_id" validate:"required,uuid"`
	YearID       string `json:"year_id" validate:"required,uuid"`
	GuardianMail string `json:"guardian_mail"`
}

// RosterUploadResponse confirms an upload.
type RosterUploadResponse struct {
	Message  string `json:"message"`
	Inserted int    `json:"inserted"`
}

// YearlyUpdateResponse reports the outcome counts of a promotion run.
type YearlyUpdateResponse struct {
	Message   string `json:"message"`
	Processed int    `json:"processed"`
	Promoted  int    `json:"promoted"`
	Archived  int    `json:"archived"`
	Skipped   int    `json:"skipped"`
}
