package models

// TimetableEntry is one weekly occurrence of a class; Day is an English weekday name.
type TimetableEntry struct {
	ID        string `db:"id" json:"_id"`
	SectionID string `db:"section_id" json:"section_id"`
	ClassID   string `db:"class_id" json:"class_id"`
	FacultyID string `db:"faculty_id" json:"faculty_id"`
	Day       string `db:"day" json:"day"`
	StartTime string `db:"start_time" json:"start_time"`
	Duration  int    `db:"duration" json:"duration"`
}
