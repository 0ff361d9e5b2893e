package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ams-api/internal/models"
	appErrors "github.com/noah-isme/ams-api/pkg/errors"
)

func promotionTable() models.PromotionTable {
	return models.PromotionTable{
		GraduatingThreshold: 400,
		Years:               map[string]string{"151": "year-151", "202": "year-202"},
		Sections:            map[string]string{"303": "sec-303", "201": "sec-201"},
	}
}

func TestPromotionArchivesGraduatesAndPromotesOthers(t *testing.T) {
	students := newFakeStudents(
		models.Student{ID: "a", StudentIDNo: "401", StudentName: "Final", Password: "pw", GuardianMail: "g@x", SectionID: "sec-401", YearID: "year-401"},
		models.Student{ID: "b", StudentIDNo: "150", StudentName: "Mid", SectionID: "sec-203", YearID: "year-150"},
	)
	years := fakeYears{
		"year-401": {ID: "year-401", YearCode: 401},
		"year-150": {ID: "year-150", YearCode: 150},
	}
	sections := fakeSections{"sec-203": {ID: "sec-203", SectionIDNo: 203}}
	metrics := NewMetricsService()

	svc := NewPromotionService(students, years, sections, promotionTable(), nil, metrics, nil)
	svc.now = func() time.Time { return monday }

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.PromotionSummary{Processed: 2, Promoted: 1, Archived: 1}, summary)

	_, stillActive := students.byID["a"]
	assert.False(t, stillActive)
	require.Len(t, students.archived, 1)
	archived := students.archived[0]
	assert.Equal(t, "401", archived.StudentIDNo)
	assert.Equal(t, "pw", archived.Password)
	assert.Equal(t, "g@x", archived.GuardianMail)
	assert.Equal(t, "year-401", archived.YearID)
	assert.True(t, archived.ArchivedDate.Equal(monday))

	promoted := students.byID["b"]
	assert.Equal(t, "year-151", promoted.YearID)
	assert.Equal(t, "sec-303", promoted.SectionID)
}

func TestPromotionSkipsMissingReferenceData(t *testing.T) {
	students := newFakeStudents(
		models.Student{ID: "no-year", YearID: "ghost"},
		models.Student{ID: "no-section", YearID: "year-150", SectionID: "ghost"},
		models.Student{ID: "no-mapping", YearID: "year-300", SectionID: "sec-203"},
	)
	years := fakeYears{
		"year-150": {ID: "year-150", YearCode: 150},
		"year-300": {ID: "year-300", YearCode: 300},
	}
	sections := fakeSections{"sec-203": {ID: "sec-203", SectionIDNo: 203}}

	svc := NewPromotionService(students, years, sections, promotionTable(), nil, nil, nil)
	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 3, summary.Skipped)
	assert.Zero(t, students.updates)
	assert.Equal(t, "year-300", students.byID["no-mapping"].YearID)
}

func TestPromotionAbortsOnStoreErrorKeepingEarlierWork(t *testing.T) {
	students := newFakeStudents(
		models.Student{ID: "a", YearID: "year-401"},
		models.Student{ID: "b", YearID: "year-150", SectionID: "sec-203"},
	)
	students.updateErr = errors.New("deadlock")
	years := fakeYears{
		"year-401": {ID: "year-401", YearCode: 401},
		"year-150": {ID: "year-150", YearCode: 150},
	}
	sections := fakeSections{"sec-203": {ID: "sec-203", SectionIDNo: 203}}

	svc := NewPromotionService(students, years, sections, promotionTable(), nil, nil, nil)
	summary, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrStore))
	assert.Equal(t, MsgYearlyUpdateFailed, appErrors.FromError(err).Message)
	assert.Equal(t, 1, summary.Archived)
	assert.Len(t, students.archived, 1)
}

func TestPromotionRunningTwiceAdvancesTwice(t *testing.T) {
	students := newFakeStudents(models.Student{ID: "b", YearID: "year-150", SectionID: "sec-103"})
	years := fakeYears{
		"year-150": {ID: "year-150", YearCode: 150},
		"year-151": {ID: "year-151", YearCode: 151},
	}
	sections := fakeSections{
		"sec-103": {ID: "sec-103", SectionIDNo: 103},
		"sec-203": {ID: "sec-203", SectionIDNo: 203},
	}
	table := models.PromotionTable{
		GraduatingThreshold: 400,
		Years:               map[string]string{"151": "year-151", "152": "year-152"},
		Sections:            map[string]string{"203": "sec-203", "303": "sec-303"},
	}

	svc := NewPromotionService(students, years, sections, table, nil, nil, nil)
	_, err := svc.Run(context.Background())
	require.NoError(t, err)
	_, err = svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "year-152", students.byID["b"].YearID)
	assert.Equal(t, "sec-303", students.byID["b"].SectionID)
}
