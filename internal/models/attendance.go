package models

import "time"

// Conventional attendance statuses. Status is stored free-form.
const (
	AttendanceStatusPresent   = "Present"
	AttendanceStatusAbsent    = "Absent"
	AttendanceStatusNotMarked = "Not Marked"
)

// Attendance is one marking event; re-marking a class inserts another row.
type Attendance struct {
	ID        string    `db:"id" json:"_id"`
	StudentID string    `db:"student_id" json:"studentId"`
	ClassID   string    `db:"class_id" json:"classId"`
	Status    string    `db:"status" json:"status"`
	Date      time.Time `db:"date" json:"date"`
}
