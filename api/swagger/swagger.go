package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Attendance Management API",
        "description": "Faculty and student dashboards, attendance marking and yearly promotion.",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Role-based login"},
        {"name": "Dashboard", "description": "Faculty and student dashboard reads"},
        {"name": "Attendance", "description": "Attendance marking and reports"},
        {"name": "Admin", "description": "Roster upload, yearly update and archive"}
    ],
    "paths": {
        "/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Log in as admin, faculty or student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/faculty-dashboard/{facultyId}": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Today's classes for a faculty member",
                "parameters": [
                    {"name": "facultyId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Schedule items, or a message when there are no classes", "schema": {"type": "array", "items": {"$ref": "#/definitions/FacultyScheduleItem"}}}
                }
            }
        },
        "/faculty-dashboard/students/{sectionId}": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Students of a section ordered by roll number",
                "parameters": [
                    {"name": "sectionId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/StudentSummary"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/student-dashboard/{studentId}": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Today's timetable with attendance status",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StudentTodayResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/attendance": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Mark attendance for a class",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkAttendanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CountMessage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/attendance/{studentId}": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Per-class attendance totals for a student",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SubjectAttendanceResponse"}}
                }
            }
        },
        "/attendance/{studentId}/export": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Download a student's attendance report",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Attachment", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/yearly-update": {
            "post": {
                "tags": ["Admin"],
                "summary": "Promote or archive every student",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/YearlyUpdateResponse"}},
                    "500": {"description": "Server Error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/upload-students": {
            "post": {
                "tags": ["Admin"],
                "summary": "Bulk insert students from a JSON file",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CountMessage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/archived-students": {
            "get": {
                "tags": ["Admin"],
                "summary": "List archived students",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ArchivedStudent"}}}
                }
            }
        }
    },
    "definitions": {
        "ErrorBody": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "CountMessage": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "inserted": {"type": "integer"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["role", "identifier", "password"],
            "properties": {
                "role": {"type": "string", "enum": ["admin", "faculty", "student"]},
                "identifier": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "role": {"type": "string"},
                "redirect": {"type": "string"},
                "token": {"type": "string"},
                "adminId": {"type": "string"},
                "facultyId": {"type": "string"},
                "studentId": {"type": "string"},
                "sectionId": {"type": "string"}
            }
        },
        "FacultyScheduleItem": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "class_name": {"type": "string"},
                "section_name": {"type": "string"},
                "section_id": {"type": "string"},
                "class_id": {"type": "string"},
                "start_time": {"type": "string"},
                "duration": {"type": "integer"}
            }
        },
        "StudentSummary": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "student_name": {"type": "string"},
                "student_id_no": {"type": "string"}
            }
        },
        "StudentTodayResponse": {
            "type": "object",
            "properties": {
                "timetableData": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "class_name": {"type": "string"},
                            "class_code": {"type": "string"},
                            "faculty_name": {"type": "string"},
                            "duration": {"type": "integer"},
                            "day": {"type": "string"},
                            "start_time": {"type": "string"},
                            "attendance_status": {"type": "string"}
                        }
                    }
                }
            }
        },
        "MarkAttendanceRequest": {
            "type": "object",
            "required": ["classId", "attendanceData"],
            "properties": {
                "classId": {"type": "string"},
                "attendanceData": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "SubjectAttendanceResponse": {
            "type": "object",
            "properties": {
                "subjectAttendance": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "class_id": {"type": "string"},
                            "class_name": {"type": "string"},
                            "class_code": {"type": "string"},
                            "present_count": {"type": "integer"},
                            "total_count": {"type": "integer"},
                            "percentage": {"type": "string"}
                        }
                    }
                }
            }
        },
        "YearlyUpdateResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "processed": {"type": "integer"},
                "promoted": {"type": "integer"},
                "archived": {"type": "integer"},
                "skipped": {"type": "integer"}
            }
        },
        "ArchivedStudent": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "student_id_no": {"type": "string"},
                "student_name": {"type": "string"},
                "guardian_mail": {"type": "string"},
                "section_id": {"type": "string"},
                "year_id": {"type": "string"},
                "archived_date": {"type": "string", "format": "date-time"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
