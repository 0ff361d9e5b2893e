package models

// Class is a subject taught to one section by one faculty member.
type Class struct {
	ID        string `db:"id" json:"_id"`
	ClassName string `db:"class_name" json:"class_name"`
	ClassCode string `db:"class_code" json:"class_code"`
	SectionID string `db:"section_id" json:"section_id"`
	FacultyID string `db:"faculty_id" json:"faculty_id"`
	YearID    string `db:"year_id" json:"year_id"`
}
