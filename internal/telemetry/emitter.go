// Package telemetry emits best-effort client usage events: which screen ran,
// as whom, and how it ended. Emission never blocks or fails a command.
package telemetry

import (
	"context"
	"time"
)

// Event is one client-side occurrence worth recording: a completed login, a
// screen render, a denied route.
type Event struct {
	// EventType is e.g. "login", "logout", "screen_render", "route_denied".
	EventType string
	UserID    string
	Role      string
	// Screen is the route the event concerns (e.g. /dashboard/hr).
	Screen string
	// Outcome is "ok" or "error".
	Outcome   string
	Detail    string
	CreatedAt time.Time
}

// EventEmitter emits client events (e.g. to OTel Logs). Best-effort; callers
// log and ignore errors.
type EventEmitter interface {
	Emit(ctx context.Context, event *Event) error
}
