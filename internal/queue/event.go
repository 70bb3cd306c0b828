// Package queue defines the activity events exchanged over the message
// broker and the background consumer that writes one line per event to
// <dir>/activity.log.
package queue

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Actions derived from the HTTP method of a successful write.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ActivityEvent is published after every successful write to the API.  It
// carries enough of the request for downstream consumers to log, notify or
// feed analytics without querying the primary database.
type ActivityEvent struct {
	ID         string            `json:"id"`
	Action     string            `json:"action"`
	Resource   string            `json:"resource"`
	Method     string            `json:"method"`
	Route      string            `json:"route"`
	Path       string            `json:"path"`
	Params     map[string]string `json:"params,omitempty"`
	Status     int               `json:"status"`
	RequestID  string            `json:"request_id,omitempty"`
	OccurredAt string            `json:"occurred_at"`
}

// NewActivityEvent builds the event for a write.  route is the registered
// pattern (/tuits/:tid) and path the concrete request path.
func NewActivityEvent(method, route, path string, params map[string]string, status int, requestID string) ActivityEvent {
	return ActivityEvent{
		ID:         uuid.NewString(),
		Action:     ActionFor(method),
		Resource:   ResourceFor(route),
		Method:     method,
		Route:      route,
		Path:       path,
		Params:     params,
		Status:     status,
		RequestID:  requestID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// ActionFor maps a write method to its action.  Other methods map to "".
func ActionFor(method string) string {
	switch strings.ToUpper(method) {
	case http.MethodPost:
		return ActionCreated
	case http.MethodPut, http.MethodPatch:
		return ActionUpdated
	case http.MethodDelete:
		return ActionDeleted
	}
	return ""
}

// ResourceFor returns the first segment of a route: users, tuits, follow,
// bookmark or message.
func ResourceFor(route string) string {
	route = strings.TrimPrefix(route, "/")
	if i := strings.IndexByte(route, '/'); i >= 0 {
		route = route[:i]
	}
	return route
}
