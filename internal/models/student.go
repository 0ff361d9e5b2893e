package models

// Student is an active learner. SectionID and YearID reference Section and Year rows.
type Student struct {
	ID           string `db:"id" json:"_id"`
	StudentIDNo  string `db:"student_id_no" json:"student_id_no"`
	StudentName  string `db:"student_name" json:"student_name"`
	Password     string `db:"password" json:"-"`
	SectionID    string `db:"section_id" json:"section_id"`
	YearID       string `db:"year_id" json:"year_id"`
	GuardianMail string `db:"guardian_mail" json:"guardian_mail"`
}

// StudentSummary is the projection used when marking attendance for a section.
type StudentSummary struct {
	ID          string `db:"id" json:"_id"`
	StudentName string `db:"student_name" json:"student_name"`
	StudentIDNo string `db:"student_id_no" json:"student_id_no"`
}
