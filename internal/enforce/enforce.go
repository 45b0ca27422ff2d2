// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

// Package enforce sits between a transport and the authorization engine. It
// resolves the caller's token to a principal, asks the engine for a
// decision, fetches target descriptors only when an ownership clause makes
// them relevant, emits audit events, and masks resource existence from
// callers that were denied.
package enforce

import (
	"context"

	"github.com/hashicorp/go-uuid"
	"github.com/outpost-sec/warden/internal/authtoken"
	"github.com/outpost-sec/warden/internal/authz"
	"github.com/outpost-sec/warden/internal/errors"
	"github.com/outpost-sec/warden/internal/event"
	"github.com/outpost-sec/warden/internal/policy"
	"github.com/outpost-sec/warden/internal/types/resource"
)

// TokenResolver resolves a raw token value to a principal.
type TokenResolver interface {
	ResolveToken(ctx context.Context, tokenValue string, opt ...authtoken.Option) (authz.Principal, error)
}

// TargetResolver builds the target descriptor for a resource id. A missing
// resource surfaces as a RecordNotFound error.
type TargetResolver interface {
	LookupTarget(ctx context.Context, publicId string) (*authz.Target, error)
}

// Request is one action to enforce. TargetId and TargetType are set when
// the action operates on a single resource; list and create actions leave
// them empty. CorrelationId is optional and generated when absent.
type Request struct {
	Token         string
	Action        string
	TargetType    resource.Type
	TargetId      string
	CorrelationId string
}

// Enforcer is an enforcement point bound to a rule registry, a token
// resolver, and per-resource target resolvers.
type Enforcer struct {
	registry *policy.Registry
	tokens   TokenResolver
	targets  map[resource.Type]TargetResolver
}

// NewEnforcer creates an enforcement point. Target resolvers are registered
// with RegisterTargetResolver before the first request; an action whose
// target type has no resolver is decided on roles alone.
func NewEnforcer(ctx context.Context, registry *policy.Registry, tokens TokenResolver) (*Enforcer, error) {
	const op = "enforce.NewEnforcer"
	if registry == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing registry")
	}
	if tokens == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing token resolver")
	}
	return &Enforcer{
		registry: registry,
		tokens:   tokens,
		targets:  make(map[resource.Type]TargetResolver),
	}, nil
}

// RegisterTargetResolver binds a resolver for the given resource type.
func (e *Enforcer) RegisterTargetResolver(ctx context.Context, typ resource.Type, r TargetResolver) error {
	const op = "enforce.(Enforcer).RegisterTargetResolver"
	if typ == resource.Unknown {
		return errors.New(ctx, errors.InvalidParameter, op, "unknown resource type")
	}
	if r == nil {
		return errors.New(ctx, errors.InvalidParameter, op, "missing target resolver")
	}
	e.targets[typ] = r
	return nil
}

// Enforce decides one request.
//
// Authentication failures produce OutcomeUnauthenticated, never a decision:
// an anonymous caller learns nothing about the rule set. After a first,
// target-free evaluation, the target descriptor is fetched only when the
// rule carries an ownership clause the caller might still satisfy; a caller
// denied on roles gets Forbidden whether or not the target exists, and only
// an unconditional role allow can surface NotFound. The returned error is
// reserved for evaluation failures such as configuration problems or an
// unavailable store; a deny is a Result, not an error.
func (e *Enforcer) Enforce(ctx context.Context, req Request) (Result, error) {
	const op = "enforce.(Enforcer).Enforce"
	if req.Action == "" {
		return Result{}, errors.New(ctx, errors.InvalidParameter, op, "missing action")
	}

	correlationId := req.CorrelationId
	if correlationId == "" {
		var err error
		correlationId, err = uuid.GenerateUUID()
		if err != nil {
			return Result{}, errors.Wrap(ctx, err, op, errors.WithCode(errors.Io), errors.WithMsg("unable to generate correlation id"))
		}
	}
	ctx, err := event.NewCorrelationIdContext(ctx, correlationId)
	if err != nil {
		return Result{}, errors.Wrap(ctx, err, op)
	}

	if req.Token == "" {
		return Result{Outcome: OutcomeUnauthenticated, CorrelationId: correlationId}, nil
	}
	principal, err := e.tokens.ResolveToken(ctx, req.Token)
	if err != nil {
		if errors.IsAuthenticationError(err) {
			event.WriteError(ctx, event.Op(op), err)
			return Result{Outcome: OutcomeUnauthenticated, CorrelationId: correlationId}, nil
		}
		return Result{}, errors.Wrap(ctx, err, op)
	}

	decision, err := authz.Authorize(ctx, e.registry, principal, req.Action, nil)
	if err != nil {
		event.WriteError(ctx, event.Op(op), err)
		return Result{}, errors.Wrap(ctx, err, op)
	}

	res := Result{
		Principal:     principal,
		CorrelationId: correlationId,
	}

	switch {
	case decision.Allowed:
		res.Decision = decision
		res.Outcome = OutcomeAllowed
		if req.TargetId != "" {
			exists, err := e.targetExists(ctx, req)
			if err != nil {
				return Result{}, errors.Wrap(ctx, err, op)
			}
			if !exists {
				res.Outcome = OutcomeNotFound
			}
		}

	case decision.Reason == authz.ReasonInsufficientPrivilege && req.TargetId != "":
		// The role gate failed but an ownership clause might still pass;
		// only now is the target worth fetching.
		target, err := e.lookupTarget(ctx, req)
		if err != nil {
			return Result{}, errors.Wrap(ctx, err, op)
		}
		if target == nil {
			res.Decision = decision
			res.Outcome = OutcomeForbidden
			break
		}
		decision, err = authz.Authorize(ctx, e.registry, principal, req.Action, target)
		if err != nil {
			event.WriteError(ctx, event.Op(op), err)
			return Result{}, errors.Wrap(ctx, err, op)
		}
		res.Decision = decision
		if decision.Allowed {
			res.Outcome = OutcomeAllowed
		} else {
			res.Outcome = OutcomeForbidden
		}

	default:
		res.Decision = decision
		res.Outcome = OutcomeForbidden
	}

	e.writeAudit(ctx, op, req, res)
	return res, nil
}

func (e *Enforcer) lookupTarget(ctx context.Context, req Request) (*authz.Target, error) {
	const op = "enforce.(Enforcer).lookupTarget"
	resolver, ok := e.targets[req.TargetType]
	if !ok {
		return nil, nil
	}
	target, err := resolver.LookupTarget(ctx, req.TargetId)
	switch {
	case errors.IsNotFoundError(err):
		return nil, nil
	case err != nil:
		return nil, errors.Wrap(ctx, err, op)
	}
	return target, nil
}

func (e *Enforcer) targetExists(ctx context.Context, req Request) (bool, error) {
	const op = "enforce.(Enforcer).targetExists"
	resolver, ok := e.targets[req.TargetType]
	if !ok {
		// No resolver registered; existence is the handler's problem.
		return true, nil
	}
	_, err := resolver.LookupTarget(ctx, req.TargetId)
	switch {
	case errors.IsNotFoundError(err):
		return false, nil
	case err != nil:
		return false, errors.Wrap(ctx, err, op)
	}
	return true, nil
}

func (e *Enforcer) writeAudit(ctx context.Context, op string, req Request, res Result) {
	err := event.WriteAudit(ctx, event.Op(op),
		event.WithUserId(res.Principal.UserId),
		event.WithAction(req.Action),
		event.WithTargetId(req.TargetId),
		event.WithGranted(res.Decision.Allowed),
		event.WithReason(string(res.Decision.Reason)),
	)
	if err != nil {
		event.WriteError(ctx, event.Op(op), err)
	}
}
