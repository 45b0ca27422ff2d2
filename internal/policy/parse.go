// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package policy

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/go-secure-stdlib/strutil"
	"github.com/hashicorp/hcl"
	"github.com/hashicorp/hcl/hcl/ast"
	"github.com/outpost-sec/warden/internal/errors"
	"github.com/outpost-sec/warden/internal/types/action"
	"github.com/outpost-sec/warden/internal/types/scope"
)

// ruleBlock is the HCL shape of a single rule block:
//
//	rule "identity:get_project" {
//	  scopes    = ["system"]
//	  roles     = ["reader"]
//	  ownership = "project"
//
//	  deprecated {
//	    scopes = ["system", "domain", "project"]
//	    roles  = ["admin"]
//	  }
//	}
//
// The deprecated block, when present, is OR-composed with the primary
// condition: a caller satisfying either passes. Operators drop the block to
// turn the compatibility behavior off for that action.
//
// Deprecated blocks are decoded from the AST rather than a struct tag: hcl1
// cannot decode a block nested inside a keyed block.
type ruleBlock struct {
	Scopes    []string `hcl:"scopes"`
	Roles     []string `hcl:"roles"`
	Ownership string   `hcl:"ownership"`
	Verb      string   `hcl:"verb"`

	Deprecated []deprecatedBlock `hcl:"-"`
}

type deprecatedBlock struct {
	Scopes []string `hcl:"scopes"`
	Roles  []string `hcl:"roles"`
}

// ParseRules parses an HCL rule document into effective rules, composing any
// deprecated blocks at parse time. All problems found are accumulated and
// reported together.
func ParseRules(ctx context.Context, src string) ([]Rule, error) {
	const op = "policy.ParseRules"
	if src == "" {
		return nil, errors.New(ctx, errors.InvalidConfiguration, op, "missing rule source")
	}

	file, err := hcl.Parse(src)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.InvalidConfiguration), errors.WithMsg("unable to parse rules"))
	}
	root, ok := file.Node.(*ast.ObjectList)
	if !ok {
		return nil, errors.New(ctx, errors.InvalidConfiguration, op, "rule source has no root object")
	}
	items := root.Filter("rule").Items
	if len(items) == 0 {
		return nil, errors.New(ctx, errors.InvalidConfiguration, op, "no rules found")
	}

	var merr *multierror.Error
	rules := make([]Rule, 0, len(items))
	for _, item := range items {
		r, err := decodeRule(ctx, item)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		rules = append(rules, r)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.InvalidConfiguration))
	}
	return rules, nil
}

func decodeRule(ctx context.Context, item *ast.ObjectItem) (Rule, error) {
	const op = "policy.decodeRule"
	if len(item.Keys) != 1 {
		return Rule{}, errors.New(ctx, errors.InvalidConfiguration, op, "rule block requires exactly one action-name label")
	}
	name, ok := item.Keys[0].Token.Value().(string)
	if !ok || name == "" {
		return Rule{}, errors.New(ctx, errors.InvalidConfiguration, op, "rule block has an invalid action-name label")
	}

	var b ruleBlock
	if err := hcl.DecodeObject(&b, item.Val); err != nil {
		return Rule{}, errors.Wrap(ctx, err, op, errors.WithCode(errors.InvalidConfiguration), errors.WithMsg("unable to decode rule "+name))
	}
	body, ok := item.Val.(*ast.ObjectType)
	if !ok {
		return Rule{}, errors.New(ctx, errors.InvalidConfiguration, op, "rule "+name+" is not a block")
	}
	for _, di := range body.List.Filter("deprecated").Items {
		var d deprecatedBlock
		if err := hcl.DecodeObject(&d, di.Val); err != nil {
			return Rule{}, errors.Wrap(ctx, err, op, errors.WithCode(errors.InvalidConfiguration), errors.WithMsg("unable to decode deprecated block for "+name))
		}
		b.Deprecated = append(b.Deprecated, d)
	}

	return b.toRule(ctx, name)
}

func (b ruleBlock) toRule(ctx context.Context, name string) (Rule, error) {
	const op = "policy.(ruleBlock).toRule"
	r := Rule{
		Action:    name,
		Ownership: Ownership(b.Ownership),
	}

	primary, err := newCondition(ctx, name, b.Scopes, b.Roles)
	if err != nil {
		return Rule{}, err
	}
	r.Conditions = append(r.Conditions, primary)

	for _, d := range b.Deprecated {
		cond, err := newCondition(ctx, name, d.Scopes, d.Roles)
		if err != nil {
			return Rule{}, err
		}
		r.Conditions = append(r.Conditions, cond)
	}

	switch b.Verb {
	case "":
		r.Verb = DeriveVerb(name)
	default:
		v, ok := action.Map[b.Verb]
		if !ok {
			return Rule{}, errors.New(ctx, errors.InvalidConfiguration, op, "unknown verb for action "+name+": "+b.Verb)
		}
		r.Verb = v
	}

	if err := r.validate(ctx); err != nil {
		return Rule{}, err
	}
	return r, nil
}

func newCondition(ctx context.Context, actionName string, scopes, roles []string) (Condition, error) {
	const op = "policy.newCondition"
	if len(scopes) == 0 {
		return Condition{}, errors.New(ctx, errors.InvalidConfiguration, op, "no scopes for action: "+actionName)
	}
	c := Condition{
		Roles: strutil.RemoveDuplicates(roles, false),
	}
	for _, s := range scopes {
		typ, ok := scope.Map[s]
		if !ok {
			return Condition{}, errors.New(ctx, errors.InvalidConfiguration, op, "unknown scope for action "+actionName+": "+s)
		}
		c.Scopes = append(c.Scopes, typ)
	}
	return c, nil
}
