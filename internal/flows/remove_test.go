package flows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRemoveTestFlow(stub *apiStub, notifier *notifierStub) *RemoveRangeFlow {
	flow := NewRemoveRangeFlow(stub, nil, notifier, nil)
	flow.now = fixedNow
	return flow
}

func TestRemoveRangeSubmitsFutureRange(t *testing.T) {
	stub := &apiStub{}
	flow := newRemoveTestFlow(stub, &notifierStub{})

	err := flow.Submit(context.Background(), RemoveRangeForm{BeginDate: "2024-03-04", EndDate: "2024-03-10"})

	require.NoError(t, err)
	require.Len(t, stub.removes, 1)
	assert.Equal(t, [2]string{"2024-03-04", "2024-03-10"}, stub.removes[0])
}

func TestRemoveRangeRejectsPastBegin(t *testing.T) {
	stub := &apiStub{}
	notifier := &notifierStub{}
	flow := newRemoveTestFlow(stub, notifier)

	err := flow.Submit(context.Background(), RemoveRangeForm{BeginDate: "2024-02-26", EndDate: "2024-03-10"})

	require.Error(t, err)
	assert.Empty(t, stub.removes)
	assert.Len(t, notifier.warnings, 1)
}

func TestRemoveRangeRejectsInvertedRange(t *testing.T) {
	stub := &apiStub{}
	flow := newRemoveTestFlow(stub, &notifierStub{})

	err := flow.Submit(context.Background(), RemoveRangeForm{BeginDate: "2024-03-10", EndDate: "2024-03-04"})

	require.Error(t, err)
	assert.Empty(t, stub.removes)
}

func TestRemoveRangeRejectsMalformedDates(t *testing.T) {
	stub := &apiStub{}
	flow := newRemoveTestFlow(stub, &notifierStub{})

	err := flow.Submit(context.Background(), RemoveRangeForm{BeginDate: "04/03/2024", EndDate: "2024-03-10"})

	require.Error(t, err)
	assert.Empty(t, stub.removes)
}
