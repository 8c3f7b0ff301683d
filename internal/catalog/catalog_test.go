package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hocvien-dev/timetable-console/internal/models"
	"github.com/hocvien-dev/timetable-console/internal/refcache"
)

type sourceStub struct {
	semesterCalls int
	classCalls    int
}

func (s *sourceStub) TimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	return []models.TimeSlot{{ID: 1}}, nil
}

func (s *sourceStub) Classes(ctx context.Context) ([]models.Class, error) {
	s.classCalls++
	return []models.Class{{Code: "10A1"}}, nil
}

func (s *sourceStub) Teachers(ctx context.Context) ([]models.Teacher, error) {
	return []models.Teacher{{UserName: "gv01"}}, nil
}

func (s *sourceStub) Rooms(ctx context.Context) ([]models.Room, error) {
	return []models.Room{{Code: "P101"}}, nil
}

func (s *sourceStub) Semesters(ctx context.Context) ([]models.Semester, error) {
	s.semesterCalls++
	return []models.Semester{{ID: "hk2"}}, nil
}

func TestCatalogReadsThroughCache(t *testing.T) {
	src := &sourceStub{}
	cat := New(src, refcache.New(nil, time.Minute, nil, nil))

	for i := 0; i < 3; i++ {
		classes, err := cat.Classes(context.Background())
		require.NoError(t, err)
		require.Len(t, classes, 1)
	}

	assert.Equal(t, 1, src.classCalls)
}

func TestInvalidateSemestersForcesReload(t *testing.T) {
	src := &sourceStub{}
	cat := New(src, refcache.New(nil, time.Minute, nil, nil))

	_, err := cat.Semesters(context.Background())
	require.NoError(t, err)
	_, err = cat.Semesters(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, src.semesterCalls)

	cat.InvalidateSemesters(context.Background())

	_, err = cat.Semesters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.semesterCalls)
}
