package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ams-api/internal/dto"
	"github.com/noah-isme/ams-api/internal/models"
	appErrors "github.com/noah-isme/ams-api/pkg/errors"
)

// Client-facing messages for the dashboard reads.
const (
	MsgNoClassesToday    = "No classes found for this faculty on this day."
	MsgNoSectionStudents = "No students found in this section."
	MsgStudentNotFound   = "Student not found"
)

type timetableReader interface {
	ListByFacultyAndDay(ctx context.Context, facultyID, day string) ([]models.TimetableEntry, error)
	ListBySectionAndDay(ctx context.Context, sectionID, day string) ([]models.TimetableEntry, error)
}

type dashboardStudentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	ListBySection(ctx context.Context, sectionID string) ([]models.StudentSummary, error)
}

type attendanceReader interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Attendance, error)
	ListByStudentAndClasses(ctx context.Context, studentID string, classIDs []string) ([]models.Attendance, error)
}

type classCatalog interface {
	ListAll(ctx context.Context) ([]models.Class, error)
}

type referenceResolver interface {
	Resolve(ctx context.Context, req LookupRequest) (*Lookup, error)
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Timetable  timetableReader
	Students   dashboardStudentReader
	Attendance attendanceReader
	Classes    classCatalog
	Lookup     referenceResolver
	Cache      *CacheService
	Logger     *zap.Logger
	Location   *time.Location
}

// DashboardService answers the faculty and student dashboard reads. Nothing here writes.
type DashboardService struct {
	timetable  timetableReader
	students   dashboardStudentReader
	attendance attendanceReader
	classes    classCatalog
	lookup     referenceResolver
	cache      *CacheService
	logger     *zap.Logger
	loc        *time.Location
	now        func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := params.Location
	if loc == nil {
		loc = time.Local
	}
	return &DashboardService{
		timetable:  params.Timetable,
		students:   params.Students,
		attendance: params.Attendance,
		classes:    params.Classes,
		lookup:     params.Lookup,
		cache:      params.Cache,
		logger:     logger,
		loc:        loc,
		now:        time.Now,
	}
}

// Today returns the English weekday name used to filter the timetable.
func (s *DashboardService) Today() string {
	return s.now().In(s.loc).Weekday().String()
}

// FacultyTodaySchedule lists a faculty member's classes for the current weekday.
// No classes is a successful result carrying MsgNoClassesToday.
func (s *DashboardService) FacultyTodaySchedule(ctx context.Context, facultyID string) (*dto.FacultySchedule, error) {
	day := s.Today()
	key := fmt.Sprintf("%sfaculty:%s:%s", cacheNamespaceDashboard, facultyID, day)
	var cached dto.FacultySchedule
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	entries, err := s.timetable.ListByFacultyAndDay(ctx, facultyID, day)
	if err != nil {
		return nil, appErrors.Store(err, "")
	}

	schedule := &dto.FacultySchedule{Day: day, Items: []dto.FacultyScheduleItem{}}
	if len(entries) == 0 {
		schedule.Message = MsgNoClassesToday
		s.cache.Set(ctx, key, schedule)
		return schedule, nil
	}

	req := LookupRequest{}
	for _, e := range entries {
		req.ClassIDs = append(req.ClassIDs, e.ClassID)
		req.SectionIDs = append(req.SectionIDs, e.SectionID)
	}
	lookup, err := s.lookup.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		schedule.Items = append(schedule.Items, dto.FacultyScheduleItem{
			ID:          e.ID,
			ClassName:   lookup.ClassName(e.ClassID),
			SectionName: lookup.SectionName(e.SectionID),
			SectionID:   e.SectionID,
			ClassID:     e.ClassID,
			StartTime:   e.StartTime,
			Duration:    e.Duration,
		})
	}
	s.cache.Set(ctx, key, schedule)
	return schedule, nil
}

// StudentsOfSection returns the marking list ordered by roll number compared byte-wise,
// so "101" < "102" < "11".
func (s *DashboardService) StudentsOfSection(ctx context.Context, sectionID string) ([]models.StudentSummary, error) {
	key := fmt.Sprintf("%ssection:%s", cacheNamespaceDashboard, sectionID)
	var cached []models.StudentSummary
	if s.cache.Get(ctx, key, &cached) && len(cached) > 0 {
		return cached, nil
	}

	students, err := s.students.ListBySection(ctx, sectionID)
	if err != nil {
		return nil, appErrors.Store(err, "")
	}
	if len(students) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, MsgNoSectionStudents)
	}

	sort.SliceStable(students, func(i, j int) bool {
		return students[i].StudentIDNo < students[j].StudentIDNo
	})
	s.cache.Set(ctx, key, students)
	return students, nil
}

// StudentTodayView merges today's timetable for the student's section with the latest
// attendance status recorded per class.
func (s *DashboardService) StudentTodayView(ctx context.Context, studentID string) (*dto.StudentTodayResponse, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, MsgStudentNotFound)
		}
		return nil, appErrors.Store(err, "")
	}

	day := s.Today()
	key := fmt.Sprintf("%sstudent:%s:%s", cacheNamespaceDashboard, studentID, day)
	var cached dto.StudentTodayResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	entries, err := s.timetable.ListBySectionAndDay(ctx, student.SectionID, day)
	if err != nil {
		return nil, appErrors.Store(err, "")
	}
	resp := &dto.StudentTodayResponse{TimetableData: []dto.StudentTimetableRow{}}
	if len(entries) == 0 {
		return resp, nil
	}

	req := LookupRequest{}
	for _, e := range entries {
		req.ClassIDs = append(req.ClassIDs, e.ClassID)
		req.FacultyIDs = append(req.FacultyIDs, e.FacultyID)
	}
	lookup, err := s.lookup.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	records, err := s.attendance.ListByStudentAndClasses(ctx, studentID, uniqueIDs(req.ClassIDs))
	if err != nil {
		return nil, appErrors.Store(err, "")
	}
	statusByClass := latestStatusByClass(records)

	for _, e := range entries {
		status, ok := statusByClass[e.ClassID]
		if !ok || status == "" {
			status = models.AttendanceStatusNotMarked
		}
		resp.TimetableData = append(resp.TimetableData, dto.StudentTimetableRow{
			ClassName:        lookup.ClassName(e.ClassID),
			ClassCode:        lookup.ClassCode(e.ClassID),
			FacultyName:      lookup.FacultyName(e.FacultyID),
			Duration:         e.Duration,
			Day:              e.Day,
			StartTime:        e.StartTime,
			AttendanceStatus: status,
		})
	}
	s.cache.Set(ctx, key, resp)
	return resp, nil
}

// StudentAggregateAttendance reports present/total per class for every class in the system.
func (s *DashboardService) StudentAggregateAttendance(ctx context.Context, studentID string) (*dto.SubjectAttendanceResponse, error) {
	key := fmt.Sprintf("%saggregate:%s", cacheNamespaceDashboard, studentID)
	var cached dto.SubjectAttendanceResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	classes, err := s.classes.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Store(err, "")
	}
	records, err := s.attendance.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Store(err, "")
	}

	type tally struct{ present, total int }
	counts := make(map[string]*tally, len(classes))
	for _, rec := range records {
		t, ok := counts[rec.ClassID]
		if !ok {
			t = &tally{}
			counts[rec.ClassID] = t
		}
		t.total++
		if rec.Status == models.AttendanceStatusPresent {
			t.present++
		}
	}

	resp := &dto.SubjectAttendanceResponse{SubjectAttendance: make([]dto.SubjectAttendance, 0, len(classes))}
	for _, c := range classes {
		var present, total int
		if t, ok := counts[c.ID]; ok {
			present, total = t.present, t.total
		}
		resp.SubjectAttendance = append(resp.SubjectAttendance, dto.SubjectAttendance{
			ClassID:      c.ID,
			ClassName:    orNA(c.ClassName),
			ClassCode:    orNA(c.ClassCode),
			PresentCount: present,
			TotalCount:   total,
			Percentage:   AttendancePercentage(present, total),
		})
	}
	s.cache.Set(ctx, key, resp)
	return resp, nil
}

// AttendancePercentage formats present/total*100 with two decimals, "0.00" when total is zero.
func AttendancePercentage(present, total int) string {
	if total <= 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(present)/float64(total)*100)
}

// latestStatusByClass expects records ordered by date ascending; later rows overwrite earlier ones.
func latestStatusByClass(records []models.Attendance) map[string]string {
	out := make(map[string]string, len(records))
	for _, rec := range records {
		out[rec.ClassID] = rec.Status
	}
	return out
}

func orNA(v string) string {
	if v == "" {
		return NotAvailable
	}
	return v
}
