package queue

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionFor(t *testing.T) {
	assert.Equal(t, ActionCreated, ActionFor(http.MethodPost))
	assert.Equal(t, ActionUpdated, ActionFor("put"))
	assert.Equal(t, ActionUpdated, ActionFor(http.MethodPatch))
	assert.Equal(t, ActionDeleted, ActionFor(http.MethodDelete))
	assert.Empty(t, ActionFor(http.MethodGet))
}

func TestResourceFor(t *testing.T) {
	assert.Equal(t, "users", ResourceFor("/users/:uid"))
	assert.Equal(t, "tuits", ResourceFor("/tuits"))
	assert.Equal(t, "bookmark", ResourceFor("/bookmark/user/:uid/unbookmarkall"))
	assert.Empty(t, ResourceFor(""))
}

func TestNewActivityEvent(t *testing.T) {
	ev := NewActivityEvent(http.MethodDelete, "/follow/:fid", "/follow/abc", map[string]string{"fid": "abc"}, 200, "req-1")
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, ActionDeleted, ev.Action)
	assert.Equal(t, "follow", ev.Resource)
	assert.Equal(t, "req-1", ev.RequestID)

	_, err := time.Parse(time.RFC3339, ev.OccurredAt)
	assert.NoError(t, err)
}

func TestFormatLine_SortsParams(t *testing.T) {
	line := FormatLine(ActivityEvent{
		ID:         "e1",
		Action:     ActionCreated,
		Resource:   "message",
		Method:     http.MethodGet,
		Path:       "/message/user/a/with/b",
		Params:     map[string]string{"uid": "a", "ouid": "b"},
		Status:     200,
		RequestID:  "r1",
		OccurredAt: "2024-01-01T00:00:00Z",
	})
	assert.Equal(t,
		"[2024-01-01T00:00:00Z] message created | GET /message/user/a/with/b | status=200 | params=[ouid=b,uid=a] | request_id=r1 | event_id=e1\n",
		line)
}

func TestHandleMessage_AppendsLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	for _, path := range []string{"/tuits", "/tuits/1"} {
		body, err := json.Marshal(NewActivityEvent(http.MethodPost, path, path, nil, 200, ""))
		require.NoError(t, err)
		require.NoError(t, HandleMessage(dir, body))
	}

	data, err := os.ReadFile(filepath.Join(dir, ActivityLogName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "tuits created | POST /tuits |")
	assert.Contains(t, lines[1], "POST /tuits/1")
}

func TestHandleMessage_RejectsMalformed(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, HandleMessage(dir, []byte("{not json")))
	assert.Error(t, HandleMessage(dir, []byte(`{"method":"GET"}`)))

	_, err := os.Stat(filepath.Join(dir, ActivityLogName))
	assert.True(t, os.IsNotExist(err))
}

func TestSleep_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, sleep(ctx, time.Hour))
	assert.True(t, sleep(context.Background(), time.Millisecond))
}
