// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package policy

import (
	"context"
	"sort"
	"sync/atomic"

	"github.com/outpost-sec/warden/internal/errors"
	"github.com/outpost-sec/warden/internal/types/action"
)

// Registry holds the effective rule set. Lookups read an immutable snapshot
// through an atomic pointer, so a concurrent Swap is observed either
// entirely or not at all; there are no per-rule torn reads and Lookup never
// takes a lock.
type Registry struct {
	snap atomic.Pointer[snapshot]
}

type snapshot struct {
	rules map[string]*Rule
}

// NewRegistry validates the rules and builds a registry from them.
func NewRegistry(ctx context.Context, rules []Rule) (*Registry, error) {
	const op = "policy.NewRegistry"
	snap, err := newSnapshot(ctx, rules)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	r := &Registry{}
	r.snap.Store(snap)
	return r, nil
}

func newSnapshot(ctx context.Context, rules []Rule) (*snapshot, error) {
	const op = "policy.newSnapshot"
	if len(rules) == 0 {
		return nil, errors.New(ctx, errors.InvalidConfiguration, op, "missing rules")
	}
	m := make(map[string]*Rule, len(rules))
	for i := range rules {
		r := rules[i]
		if err := r.validate(ctx); err != nil {
			return nil, errors.Wrap(ctx, err, op)
		}
		if _, dup := m[r.Action]; dup {
			return nil, errors.New(ctx, errors.InvalidConfiguration, op, "duplicate rule for action: "+r.Action)
		}
		if r.Verb == action.Unknown {
			r.Verb = DeriveVerb(r.Action)
		}
		m[r.Action] = &r
	}
	return &snapshot{rules: m}, nil
}

// Lookup returns the effective rule for the action. A missing action is a
// configuration error: enforcement points only ask about actions they were
// built with, so an unknown name means the rule set and the code disagree.
// It is never a user-facing deny.
func (r *Registry) Lookup(ctx context.Context, actionName string) (*Rule, error) {
	const op = "policy.(Registry).Lookup"
	if actionName == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing action name")
	}
	snap := r.snap.Load()
	rule, ok := snap.rules[actionName]
	if !ok {
		return nil, errors.New(ctx, errors.InvalidConfiguration, op, "no rule registered for action: "+actionName)
	}
	return rule, nil
}

// Swap atomically replaces the entire rule set, e.g. on configuration
// reload. In-flight lookups keep reading the snapshot they started with.
func (r *Registry) Swap(ctx context.Context, rules []Rule) error {
	const op = "policy.(Registry).Swap"
	snap, err := newSnapshot(ctx, rules)
	if err != nil {
		return errors.Wrap(ctx, err, op)
	}
	r.snap.Store(snap)
	return nil
}

// Actions returns the sorted action names in the current snapshot.
func (r *Registry) Actions() []string {
	snap := r.snap.Load()
	actions := make([]string, 0, len(snap.rules))
	for a := range snap.rules {
		actions = append(actions, a)
	}
	sort.Strings(actions)
	return actions
}
