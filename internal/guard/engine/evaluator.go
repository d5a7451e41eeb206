// Package engine evaluates route-access policy: given the session snapshot
// and a screen's required capability, decide whether the screen may render.
package engine

import "context"

// Capability is what a screen requires of the session.
type Capability string

const (
	// CapabilityPublic screens render for anyone.
	CapabilityPublic Capability = "public"
	// CapabilityAuthenticated screens require any logged-in user.
	CapabilityAuthenticated Capability = "authenticated"
	// CapabilityHR screens require a logged-in user with the hr role.
	CapabilityHR Capability = "hr"
)

// Input is the policy input: the session's resolved status and role plus the
// screen's required capability.
type Input struct {
	Status     string
	Role       string
	Capability Capability
}

// Result is the policy outcome.
type Result struct {
	Allow bool
}

// Evaluator decides route access for a session snapshot.
type Evaluator interface {
	Evaluate(ctx context.Context, in Input) (Result, error)
}
