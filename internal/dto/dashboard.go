package dto

// FacultyScheduleItem is one of a faculty member's classes today.
type FacultyScheduleItem struct {
	ID          string `json:"_id"`
	ClassName   string `json:"class_name"`
	SectionName string `json:"section_name"`
	SectionID   string `json:"section_id"`
	ClassID     string `json:"class_id"`
	StartTime   string `json:"start_time"`
	Duration    int    `json:"duration"`
}

// FacultySchedule is today's schedule; Message is set when there are no classes.
type FacultySchedule struct {
	Day     string                `json:"day"`
	Items   []FacultyScheduleItem `json:"items"`
	Message string                `json:"message,omitempty"`
}

// Empty reports whether no classes are scheduled.
func (s FacultySchedule) Empty() bool {
	return len(s.Items) == 0
}

// StudentTimetableRow merges a timetable entry with the student's attendance status.
type StudentTimetableRow struct {
	ClassName        string `json:"class_name"`
	ClassCode        string `json:"class_code"`
	FacultyName      string `json:"faculty_name"`
	Duration         int    `json:"duration"`
	Day              string `json:"day"`
	StartTime        string `json:"start_time"`
	AttendanceStatus string `json:"attendance_status"`
}

// StudentTodayResponse is returned by the student dashboard.
type StudentTodayResponse struct {
	TimetableData []StudentTimetableRow `json:"timetableData"`
}

// SubjectAttendance aggregates one class for one student. Percentage is fixed to two decimals.
type SubjectAttendance struct {
	ClassID      string `json:"class_id"`
	ClassName    string `json:"class_name"`
	ClassCode    string `json:"class_code"`
	PresentCount int    `json:"present_count"`
	TotalCount   int    `json:"total_count"`
	Percentage   string `json:"percentage"`
}

// SubjectAttendanceResponse is returned by the aggregate attendance endpoint.
type SubjectAttendanceResponse struct {
	SubjectAttendance []SubjectAttendance `json:"subjectAttendance"`
}
