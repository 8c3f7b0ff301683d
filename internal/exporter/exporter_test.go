package exporter

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hocvien-dev/timetable-console/internal/models"
	"github.com/hocvien-dev/timetable-console/pkg/config"
)

func TestBuildDatasetLaysOutWeeklyGrid(t *testing.T) {
	slots := []models.TimeSlot{
		{ID: 2, StartTime: "07:50", EndTime: "08:35"},
		{ID: 1, StartTime: "07:00", EndTime: "07:45"},
	}
	entries := []models.TimetableEntry{
		// 2024-03-04 is a Monday, 2024-03-06 a Wednesday.
		{Date: "2024-03-04", TimeSlotID: 1, SubjectCode: "TOAN", ClassCode: "10A1", RoomCode: "P101"},
		{Date: "2024-03-04", TimeSlotID: 1, SubjectCode: "VAN", ClassCode: "10A2"},
		{Date: "2024-03-06", TimeSlotID: 2, SubjectCode: "LY", ClassCode: "10A1", RoomCode: "P202"},
	}

	data := BuildDataset(entries, slots)

	require.Len(t, data.Headers, 8)
	assert.Equal(t, "Tiết", data.Headers[0])
	assert.Equal(t, "Thứ 2", data.Headers[1])
	assert.Equal(t, "Chủ nhật", data.Headers[7])

	require.Len(t, data.Rows, 2)
	// Slots come out sorted by ordinal regardless of input order.
	assert.Equal(t, "1 (07:00-07:45)", data.Rows[0]["Tiết"])
	assert.Equal(t, "2 (07:50-08:35)", data.Rows[1]["Tiết"])

	assert.Equal(t, "TOAN - 10A1 (P101); VAN - 10A2", data.Rows[0]["Thứ 2"])
	assert.Equal(t, "LY - 10A1 (P202)", data.Rows[1]["Thứ 4"])
	assert.Empty(t, data.Rows[0]["Thứ 3"])
}

func TestBuildDatasetFallsBackToDayOfWeek(t *testing.T) {
	slots := []models.TimeSlot{{ID: 1, StartTime: "07:00", EndTime: "07:45"}}
	entries := []models.TimetableEntry{
		// Template rows carry no concrete date, only the weekday ordinal.
		{DayOfWeek: 5, TimeSlotID: 1, SubjectCode: "HOA", ClassCode: "11B1"},
	}

	data := BuildDataset(entries, slots)

	require.Len(t, data.Rows, 1)
	assert.Equal(t, "HOA - 11B1", data.Rows[0]["Thứ 6"])
}

func TestEnqueueRendersAndStoresCSV(t *testing.T) {
	dir := t.TempDir()
	svc, err := New(config.ExportConfig{StorageDir: dir, WorkerConcurrency: 1, WorkerRetries: 1}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	filename, err := svc.Enqueue(Request{
		Window: models.Window{Entries: []models.TimetableEntry{
			{Date: "2024-03-04", TimeSlotID: 1, SubjectCode: "TOAN", ClassCode: "10A1"},
		}},
		TimeSlots: []models.TimeSlot{{ID: 1, StartTime: "07:00", EndTime: "07:45"}},
		Format:    FormatCSV,
	})
	require.NoError(t, err)
	assert.Contains(t, filename, ".csv")

	path := filepath.Join(dir, filename)
	require.Eventually(t, func() bool {
		_, statErr := os.Stat(path)
		return statErr == nil
	}, 2*time.Second, 10*time.Millisecond)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "TOAN - 10A1")
}
