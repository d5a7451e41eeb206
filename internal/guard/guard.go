// Package guard gates access to screen subtrees based on session state: a
// decision is a pure function of (status, role, required capability) and
// never mutates the session or calls the backend.
package guard

import (
	"context"
	"log"

	"assetdesk/cli/internal/guard/engine"
	"assetdesk/cli/internal/identity/domain"
	"assetdesk/cli/internal/session"
)

// PublicLandingRoute is where denied sessions are redirected. The attempted
// location is discarded; there is no return-to behavior.
const PublicLandingRoute = "/"

// Action is what the caller should do with the guarded subtree.
type Action string

const (
	// ActionWait means the session is still resolving; show a loading
	// placeholder and make no redirect decision yet.
	ActionWait Action = "wait"
	// ActionRender means the guarded subtree may render.
	ActionRender Action = "render"
	// ActionRedirect means access is denied; go to Decision.Target.
	ActionRedirect Action = "redirect"
)

// Decision is the outcome of one guard evaluation.
type Decision struct {
	Action Action
	// Target is the redirect destination; set only for ActionRedirect.
	Target string
}

// Guard evaluates route access against a compiled policy. Evaluation
// failures deny: a screen never renders on a policy error.
type Guard struct {
	evaluator engine.Evaluator
}

// New returns a Guard using the given policy evaluator.
func New(evaluator engine.Evaluator) *Guard {
	return &Guard{evaluator: evaluator}
}

// Authenticated gates a subtree that any logged-in user may see.
func (g *Guard) Authenticated(ctx context.Context, snap session.Snapshot) Decision {
	return g.Evaluate(ctx, snap, engine.CapabilityAuthenticated)
}

// Role gates a subtree that only the given role may see. Anonymous sessions
// and authenticated sessions with a different role both redirect.
func (g *Guard) Role(ctx context.Context, snap session.Snapshot, required domain.Role) Decision {
	capability := engine.CapabilityAuthenticated
	if required == domain.RoleHR {
		capability = engine.CapabilityHR
	}
	return g.Evaluate(ctx, snap, capability)
}

// Evaluate decides access for an arbitrary capability. A resolving session
// always waits: no redirect decision may be made on the anonymous default
// while bootstrap is in flight.
func (g *Guard) Evaluate(ctx context.Context, snap session.Snapshot, capability engine.Capability) Decision {
	if snap.Status == session.StatusResolving {
		return Decision{Action: ActionWait}
	}
	in := engine.Input{
		Status:     string(snap.Status),
		Capability: capability,
	}
	if snap.Identity != nil {
		in.Role = string(snap.Identity.Role)
	}
	res, err := g.evaluator.Evaluate(ctx, in)
	if err != nil {
		log.Printf("guard: policy evaluation failed, denying: %v", err)
		return Decision{Action: ActionRedirect, Target: PublicLandingRoute}
	}
	if !res.Allow {
		return Decision{Action: ActionRedirect, Target: PublicLandingRoute}
	}
	return Decision{Action: ActionRender}
}
