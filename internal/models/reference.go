package models

// Section is static reference data; SectionIDNo encodes level and stream (e.g. 203).
type Section struct {
	ID          string `db:"id" json:"_id"`
	SectionIDNo int    `db:"section_id_no" json:"section_id_no"`
	SectionName string `db:"section_name" json:"section_name"`
}

// Year is static reference data; YearCode above the graduating threshold marks a final year.
type Year struct {
	ID       string `db:"id" json:"_id"`
	YearCode int    `db:"year_code" json:"year_code"`
}

// Admin can upload rosters and run the yearly update.
type Admin struct {
	ID       string `db:"id" json:"_id"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
}

// Faculty teaches classes and marks attendance.
type Faculty struct {
	ID          string `db:"id" json:"_id"`
	FacultyName string `db:"faculty_name" json:"faculty_name"`
	Password    string `db:"password" json:"-"`
	Email       string `db:"email" json:"email"`
}
