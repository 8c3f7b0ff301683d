package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hocvien-dev/timetable-console/internal/models"
)

func modalController(t *testing.T, entries ...models.TimetableEntry) (*Controller, *backendStub, *recordingNotifier) {
	t.Helper()
	stub := &backendStub{window: appliedWindow(0, entries...)}
	notifier := &recordingNotifier{}
	ctl := New(stub, notifier, nil)
	require.NoError(t, ctl.SetViewMode(context.Background(), ModeApplied))
	return ctl, stub, notifier
}

func TestOpenSlotDetailCollectsSharedCell(t *testing.T) {
	ctl, _, _ := modalController(t,
		models.TimetableEntry{ID: "e1", Date: "2024-03-04", TimeSlotID: 2, ClassCode: "10A1"},
		models.TimetableEntry{ID: "e2", Date: "2024-03-04", TimeSlotID: 2, ClassCode: "10A2"},
		models.TimetableEntry{ID: "e3", Date: "2024-03-04", TimeSlotID: 3, ClassCode: "10A1"},
	)

	detail := ctl.OpenSlotDetail("2024-03-04", 2)

	require.Len(t, detail.Entries, 2)
	assert.Equal(t, "e1", detail.Entries[0].ID)
	assert.Equal(t, "e2", detail.Entries[1].ID)
	assert.NotNil(t, ctl.SlotDetailState())

	ctl.CloseSlotDetail()
	assert.Nil(t, ctl.SlotDetailState())
}

func TestReassignRequiresNotYetOccurred(t *testing.T) {
	ctl, stub, notifier := modalController(t,
		models.TimetableEntry{ID: "e1", Date: "2024-03-04", TimeSlotID: 2, Status: models.StatusCompleted},
	)
	ctl.OpenSlotDetail("2024-03-04", 2)

	assert.False(t, ctl.CanReassign("e1"))
	err := ctl.ReassignTeacher(context.Background(), "e1", "gv02")

	require.Error(t, err)
	assert.Empty(t, stub.teacherSets)
	require.Len(t, notifier.warnings, 1)
	assert.Equal(t, "Chỉ có thể chỉnh sửa tiết học chưa diễn ra", notifier.warnings[0])
}

func TestReassignTeacherPatchesModalEntry(t *testing.T) {
	ctl, stub, notifier := modalController(t,
		models.TimetableEntry{ID: "e1", Date: "2024-03-04", TimeSlotID: 2, TeacherUserName: "gv01", Status: models.StatusNotYetOccurred},
	)
	ctl.OpenSlotDetail("2024-03-04", 2)

	require.NoError(t, ctl.ReassignTeacher(context.Background(), "e1", "gv02"))

	require.Len(t, stub.teacherSets, 1)
	assert.Equal(t, "e1:gv02", stub.teacherSets[0])
	assert.Equal(t, "gv02", ctl.SlotDetailState().Entries[0].TeacherUserName)
	assert.Len(t, notifier.successes, 1)
	// Reassignment also re-fetches the surrounding view.
	assert.Len(t, stub.windowCalls, 2)
}

func TestReassignRoomPatchesModalEntry(t *testing.T) {
	ctl, stub, _ := modalController(t,
		models.TimetableEntry{ID: "e1", Date: "2024-03-04", TimeSlotID: 2, RoomCode: "P101", Status: models.StatusNotYetOccurred},
	)
	ctl.OpenSlotDetail("2024-03-04", 2)

	require.NoError(t, ctl.ReassignRoom(context.Background(), "e1", "P205"))

	require.Len(t, stub.roomSets, 1)
	assert.Equal(t, "e1:P205", stub.roomSets[0])
	assert.Equal(t, "P205", ctl.SlotDetailState().Entries[0].RoomCode)
}

func TestReassignUnknownEntryRejected(t *testing.T) {
	ctl, stub, _ := modalController(t,
		models.TimetableEntry{ID: "e1", Date: "2024-03-04", TimeSlotID: 2, Status: models.StatusNotYetOccurred},
	)
	ctl.OpenSlotDetail("2024-03-04", 2)

	err := ctl.ReassignRoom(context.Background(), "missing", "P205")

	require.Error(t, err)
	assert.Empty(t, stub.roomSets)
}

func TestMarkAttendanceRefetches(t *testing.T) {
	ctl, stub, _ := modalController(t,
		models.TimetableEntry{ID: "e1", Date: "2024-03-04", TimeSlotID: 2, Status: models.StatusInProgress},
	)

	require.NoError(t, ctl.MarkAttendance(context.Background(), "e1", models.StatusCompleted))

	require.Len(t, stub.attendance, 1)
	assert.Equal(t, "e1:Hoàn thành", stub.attendance[0])
	assert.Len(t, stub.windowCalls, 2)
}
