package engine

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"
)

const routeQuery = "data.assetdesk.routes.allow"

// Default Rego policy encoding the two guard variants: any authenticated
// user for authenticated screens, the hr role for hr screens, everyone for
// public screens. A session that is still resolving satisfies nothing.
const defaultRegoPolicy = `package assetdesk.routes

default allow = false

allow if {
	input.capability == "public"
}

allow if {
	input.capability == "authenticated"
	input.status == "authenticated"
}

allow if {
	input.capability == "hr"
	input.status == "authenticated"
	input.role == "hr"
}
`

// OPAEvaluator evaluates route access using OPA Rego. The policy is compiled
// once at construction; evaluation is pure with respect to the session.
type OPAEvaluator struct {
	compiler *ast.Compiler
}

// NewOPAEvaluator compiles the default route policy and returns an evaluator.
func NewOPAEvaluator() (*OPAEvaluator, error) {
	return NewOPAEvaluatorWithPolicy(defaultRegoPolicy)
}

// NewOPAEvaluatorWithPolicy compiles the given Rego module in place of the
// default policy. The module must define data.assetdesk.routes.allow.
func NewOPAEvaluatorWithPolicy(policy string) (*OPAEvaluator, error) {
	compiler, err := ast.CompileModules(map[string]string{"routes.rego": policy})
	if err != nil {
		return nil, fmt.Errorf("engine: compile route policy: %w", err)
	}
	return &OPAEvaluator{compiler: compiler}, nil
}

// Evaluate runs the route policy for the given input. Missing or non-boolean
// results deny.
func (e *OPAEvaluator) Evaluate(ctx context.Context, in Input) (Result, error) {
	input := map[string]interface{}{
		"status":     in.Status,
		"role":       in.Role,
		"capability": string(in.Capability),
	}
	q := rego.New(
		rego.Query(routeQuery),
		rego.Compiler(e.compiler),
		rego.Input(input),
	)
	rs, err := q.Eval(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("engine: eval route policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return Result{}, fmt.Errorf("engine: route policy returned no result")
	}
	allow, ok := rs[0].Expressions[0].Value.(bool)
	if !ok {
		return Result{}, fmt.Errorf("engine: route policy returned non-boolean %T", rs[0].Expressions[0].Value)
	}
	return Result{Allow: allow}, nil
}
