package refcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hocvien-dev/timetable-console/internal/models"
)

func TestGetOrLoadCallsLoaderOnceUntilInvalidated(t *testing.T) {
	store := New(nil, time.Minute, nil, nil)
	calls := 0
	load := func(ctx context.Context) (interface{}, error) {
		calls++
		return []models.Class{{Code: "10A1", Name: "Lớp 10A1"}}, nil
	}

	var first []models.Class
	require.NoError(t, store.GetOrLoad(context.Background(), "classes", &first, load))
	require.Len(t, first, 1)

	var second []models.Class
	require.NoError(t, store.GetOrLoad(context.Background(), "classes", &second, load))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	store.Invalidate(context.Background(), "classes")
	var third []models.Class
	require.NoError(t, store.GetOrLoad(context.Background(), "classes", &third, load))
	assert.Equal(t, 2, calls)
}

func TestGetOrLoadPropagatesLoaderError(t *testing.T) {
	store := New(nil, time.Minute, nil, nil)
	load := func(ctx context.Context) (interface{}, error) {
		return nil, assert.AnError
	}

	var out []models.Class
	err := store.GetOrLoad(context.Background(), "classes", &out, load)

	require.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, out)
}

func TestGetOrLoadKeysAreIndependent(t *testing.T) {
	store := New(nil, time.Minute, nil, nil)
	classCalls, roomCalls := 0, 0

	var classes []models.Class
	require.NoError(t, store.GetOrLoad(context.Background(), "classes", &classes, func(ctx context.Context) (interface{}, error) {
		classCalls++
		return []models.Class{{Code: "10A1"}}, nil
	}))

	var rooms []models.Room
	require.NoError(t, store.GetOrLoad(context.Background(), "rooms", &rooms, func(ctx context.Context) (interface{}, error) {
		roomCalls++
		return []models.Room{{Code: "P101"}}, nil
	}))

	assert.Equal(t, 1, classCalls)
	assert.Equal(t, 1, roomCalls)
	assert.Equal(t, "P101", rooms[0].Code)
}

func TestExpiredEntryIsReloaded(t *testing.T) {
	store := New(nil, time.Nanosecond, nil, nil)
	calls := 0
	load := func(ctx context.Context) (interface{}, error) {
		calls++
		return []models.Class{{Code: "10A1"}}, nil
	}

	var out []models.Class
	require.NoError(t, store.GetOrLoad(context.Background(), "classes", &out, load))
	time.Sleep(time.Millisecond)
	require.NoError(t, store.GetOrLoad(context.Background(), "classes", &out, load))

	assert.Equal(t, 2, calls)
}

func TestFlushDropsEverything(t *testing.T) {
	store := New(nil, time.Minute, nil, nil)
	calls := 0
	load := func(ctx context.Context) (interface{}, error) {
		calls++
		return []models.Semester{{ID: "hk2"}}, nil
	}

	var out []models.Semester
	require.NoError(t, store.GetOrLoad(context.Background(), "semesters", &out, load))
	store.Flush(context.Background())
	require.NoError(t, store.GetOrLoad(context.Background(), "semesters", &out, load))

	assert.Equal(t, 2, calls)
}
