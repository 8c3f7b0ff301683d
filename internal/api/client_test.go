package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hocvien-dev/timetable-console/internal/models"
	"github.com/hocvien-dev/timetable-console/pkg/config"
	appErrors "github.com/hocvien-dev/timetable-console/pkg/errors"
)

type tokenStub struct {
	token       string
	invalidated int
}

func (t *tokenStub) Token() string { return t.token }
func (t *tokenStub) Invalidate()  { t.invalidated++ }

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *tokenStub) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	tokens := &tokenStub{token: "abc123"}
	client := NewClient(config.APIConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, tokens, nil, nil)
	return client, tokens
}

func TestClientSetsAuthAndRequestIDHeaders(t *testing.T) {
	var seen http.Header
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.ListTemplates(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", seen.Get("Authorization"))
	assert.NotEmpty(t, seen.Get("X-Request-ID"))
	assert.Equal(t, "application/json", seen.Get("Accept"))
}

func TestClientDecodesWindowEnvelope(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/timetables", r.URL.Path)
		assert.Equal(t, "Weekly", r.URL.Query().Get("option"))
		assert.Equal(t, "-1", r.URL.Query().Get("current"))
		assert.Equal(t, "Class", r.URL.Query().Get("type"))
		assert.Equal(t, "10A1", r.URL.Query().Get("code"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data_set": [{"id": "e1", "date": "2024-03-04", "time_slot_id": 2, "class_code": "10A1", "status": "Chưa diễn ra"}],
			"description": "Tuần 9 (26/02 - 03/03)",
			"pagination": {"current": -1, "last": 5, "total": 40}
		}`))
	})

	window, err := client.FetchWindow(context.Background(), WindowQuery{
		Option:  models.OptionWeekly,
		Current: -1,
		Type:    models.FilterClass,
		Code:    "10A1",
	})

	require.NoError(t, err)
	require.Len(t, window.Entries, 1)
	assert.Equal(t, "e1", window.Entries[0].ID)
	assert.Equal(t, models.StatusNotYetOccurred, window.Entries[0].Status)
	assert.Equal(t, "Tuần 9 (26/02 - 03/03)", window.Description)
	assert.Equal(t, -1, window.Pagination.Current)
}

func TestClientPersonalWindowUsesOwnPath(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/timetables/personal", r.URL.Path)
		_, _ = w.Write([]byte(`{"data_set": [], "description": "", "pagination": {}}`))
	})

	_, err := client.FetchWindow(context.Background(), WindowQuery{Option: models.OptionWeekly, Personal: true})
	require.NoError(t, err)
}

func TestClientUnauthorizedInvalidatesToken(t *testing.T) {
	client, tokens := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.ListTemplates(context.Background())

	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SESSION_EXPIRED", appErr.Code)
	assert.Equal(t, 1, tokens.invalidated)
}

func TestClientStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		code   string
	}{
		{http.StatusForbidden, "FORBIDDEN"},
		{http.StatusNotFound, "NOT_FOUND"},
		{http.StatusTooManyRequests, "RATE_LIMITED"},
		{http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		client, tokens := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})

		_, err := client.ListTemplates(context.Background())

		require.Error(t, err)
		var appErr *appErrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, tc.code, appErr.Code)
		assert.Zero(t, tokens.invalidated)
	}
}

func TestClientErrorBodyDescriptionOverridesDefault(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"description": "Lịch học bị trùng"}`))
	})

	_, err := client.ApplyRange(context.Background(), ApplyRangeRequest{ScheduleID: "tpl-1"})

	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Lịch học bị trùng", appErr.Message)
}

func TestClientMutationEnvelope(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/timetables/move", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"success": false, "description": "Giáo viên đã có tiết dạy"}`))
	})

	result, err := client.MoveEntry(context.Background(), MoveEntryRequest{Code: "10A1", IsMove: true})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Giáo viên đã có tiết dạy", result.Description)
}

func TestClientMoveRequestsForceSlotType(t *testing.T) {
	var body map[string]interface{}
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"success": true, "description": "Thành công"}`))
	})

	_, err := client.MoveEntry(context.Background(), MoveEntryRequest{Code: "10A1", OldDate: "2024-03-06", NewDate: "2024-03-04"})

	require.NoError(t, err)
	assert.Equal(t, "Slot", body["type"])
}

func TestClientTransportErrorMapsToGenericMessage(t *testing.T) {
	tokens := &tokenStub{}
	client := NewClient(config.APIConfig{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond}, tokens, nil, nil)

	_, err := client.ListTemplates(context.Background())

	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "TRANSPORT_ERROR", appErr.Code)
	assert.Equal(t, appErrors.GenericMessage, appErr.Message)
}
