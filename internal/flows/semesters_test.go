package flows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSemesterTestFlow(stub *apiStub, notifier *notifierStub) *SemesterFlow {
	flow := NewSemesterFlow(stub, nil, notifier, nil)
	flow.now = fixedNow
	return flow
}

func TestSemesterCreate(t *testing.T) {
	stub := &apiStub{}
	flow := newSemesterTestFlow(stub, &notifierStub{})

	err := flow.Create(context.Background(), SemesterForm{
		SemesterName: "Học kỳ 1 2024-2025",
		StartDate:    "2024-09-05",
		EndDate:      "2024-12-31",
	})

	require.NoError(t, err)
	require.Len(t, stub.created, 1)
	assert.Equal(t, "Học kỳ 1 2024-2025", stub.created[0].SemesterName)
}

func TestSemesterCreateRejectsStartNotAfterToday(t *testing.T) {
	stub := &apiStub{}
	flow := newSemesterTestFlow(stub, &notifierStub{})

	err := flow.Create(context.Background(), SemesterForm{
		SemesterName: "Học kỳ 2",
		StartDate:    "2024-03-01",
		EndDate:      "2024-06-30",
	})

	require.Error(t, err)
	assert.Empty(t, stub.created)
}

func TestSemesterCreateRejectsInvertedRange(t *testing.T) {
	stub := &apiStub{}
	flow := newSemesterTestFlow(stub, &notifierStub{})

	err := flow.Create(context.Background(), SemesterForm{
		SemesterName: "Học kỳ 2",
		StartDate:    "2024-06-30",
		EndDate:      "2024-03-04",
	})

	require.Error(t, err)
	assert.Empty(t, stub.created)
}

func TestSemesterUpdate(t *testing.T) {
	stub := &apiStub{}
	flow := newSemesterTestFlow(stub, &notifierStub{})

	err := flow.Update(context.Background(), "hk2", SemesterForm{
		SemesterName: "Học kỳ 2",
		StartDate:    "2024-03-04",
		EndDate:      "2024-06-30",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"hk2"}, stub.updated)
}

func TestSemesterDelete(t *testing.T) {
	stub := &apiStub{}
	notifier := &notifierStub{}
	flow := newSemesterTestFlow(stub, notifier)

	require.NoError(t, flow.Delete(context.Background(), "hk2"))
	assert.Equal(t, []string{"hk2"}, stub.deleted)
	assert.Len(t, notifier.successes, 1)
}
