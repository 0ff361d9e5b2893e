package dto

// MarkAttendanceRequest maps student ids to statuses for one class.
type MarkAttendanceRequest struct {
	ClassID        string            `json:"classId" validate:"required"`
	AttendanceData map[string]string `json:"attendanceData" validate:"required,min=1,dive,keys,required,endkeys,required"`
}

// MarkAttendanceResponse confirms how many rows were written.
type MarkAttendanceResponse struct {
	Message  string `json:"message"`
	Inserted int    `json:"inserted"`
}
