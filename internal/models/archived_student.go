package models

import "time"

// ArchivedStudent is the snapshot kept after a graduating student leaves the active roster.
type ArchivedStudent struct {
	ID           string    `db:"id" json:"_id"`
	StudentIDNo  string    `db:"student_id_no" json:"student_id_no"`
	StudentName  string    `db:"student_name" json:"student_name"`
	Password     string    `db:"password" json:"-"`
	GuardianMail string    `db:"guardian_mail" json:"guardian_mail"`
	SectionID    string    `db:"section_id" json:"section_id"`
	YearID       string    `db:"year_id" json:"year_id"`
	ArchivedDate time.Time `db:"archived_date" json:"archived_date"`
}

// NewArchivedStudent snapshots s at archivedAt.
func NewArchivedStudent(s Student, archivedAt time.Time) ArchivedStudent {
	return ArchivedStudent{
		StudentIDNo:  s.StudentIDNo,
		StudentName:  s.StudentName,
		Password:     s.Password,
		GuardianMail: s.GuardianMail,
		SectionID:    s.SectionID,
		YearID:       s.YearID,
		ArchivedDate: archivedAt,
	}
}
