// Package views renders the guard-gated screens: each screen maps to a route
// of the product, is authorized through the guard before it may fetch, and
// writes a tabular rendition of the backend's answer.
package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"assetdesk/cli/internal/analytics"
	"assetdesk/cli/internal/api"
	"assetdesk/cli/internal/assets"
	"assetdesk/cli/internal/assigned"
	"assetdesk/cli/internal/billing"
	"assetdesk/cli/internal/guard"
	"assetdesk/cli/internal/guard/engine"
	"assetdesk/cli/internal/notices"
	"assetdesk/cli/internal/requests"
	"assetdesk/cli/internal/session"
	"assetdesk/cli/internal/team"
	"assetdesk/cli/internal/telemetry"
)

// ErrRedirected is returned when a guard denied the screen and the user was
// sent to the public landing route instead.
var ErrRedirected = errors.New("views: redirected to public landing route")

// App wires the session, guard, and resource services behind the screens.
// One App per process; everything is constructor-injected.
type App struct {
	Session *session.Service
	Guard   *guard.Guard
	Emitter telemetry.EventEmitter

	Assets    *assets.Service
	Requests  *requests.Service
	Assigned  *assigned.Service
	Team      *team.Service
	Notices   *notices.Service
	Billing   *billing.Service
	Analytics *analytics.Service

	Out io.Writer
	// AssignedLimit is the page size for the my-assets screen.
	AssignedLimit int
}

// NewApp builds the screen layer over one API client.
func NewApp(sess *session.Service, g *guard.Guard, client *api.Client, emitter telemetry.EventEmitter, out io.Writer, assignedLimit int) *App {
	return &App{
		Session:       sess,
		Guard:         g,
		Emitter:       emitter,
		Assets:        assets.NewService(client),
		Requests:      requests.NewService(client),
		Assigned:      assigned.NewService(client),
		Team:          team.NewService(client),
		Notices:       notices.NewService(client),
		Billing:       billing.NewService(client),
		Analytics:     analytics.NewService(client),
		Out:           out,
		AssignedLimit: assignedLimit,
	}
}

// runGuarded authorizes the route, then runs the screen body. The session is
// bootstrapped by main before any screen runs, so a Wait decision only shows
// the loading placeholder and retries the snapshot once.
func (a *App) runGuarded(ctx context.Context, route string, capability engine.Capability, body func(context.Context) error) error {
	snap := a.Session.Snapshot()
	decision := a.Guard.Evaluate(ctx, snap, capability)
	if decision.Action == guard.ActionWait {
		fmt.Fprintln(a.Out, "Resolving session...")
		a.Session.Bootstrap(ctx)
		snap = a.Session.Snapshot()
		decision = a.Guard.Evaluate(ctx, snap, capability)
	}
	if decision.Action == guard.ActionRedirect {
		a.emit(snap, "route_denied", route, "error", "")
		fmt.Fprintf(a.Out, "You do not have access to %s. Taking you to %s — sign in with the right account.\n", route, decision.Target)
		return ErrRedirected
	}
	a.emit(snap, "screen_render", route, "ok", "")
	if err := body(ctx); err != nil {
		a.emit(snap, "screen_error", route, "error", err.Error())
		return err
	}
	return nil
}

func (a *App) emit(snap session.Snapshot, eventType, route, outcome, detail string) {
	ev := &telemetry.Event{
		EventType: eventType,
		Screen:    route,
		Outcome:   outcome,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
	if snap.Identity != nil {
		ev.UserID = snap.Identity.ID
		ev.Role = string(snap.Identity.Role)
	}
	telemetry.EmitAsync(a.Emitter, context.Background(), ev)
}

// table returns a tabwriter over the app output; callers must Flush.
func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
}

// shortDate renders backend timestamps as a date, falling back to the raw
// string for shapes the backend has used historically.
func shortDate(s string) string {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}
