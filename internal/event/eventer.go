// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package event

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/hashicorp/eventlogger"
	"github.com/hashicorp/eventlogger/sinks/writer"
	"github.com/hashicorp/go-hclog"
)

const (
	auditPipeline = "audit-pipeline" // auditPipeline is a pipeline for audit events
	errPipeline   = "err-pipeline"   // errPipeline is a pipeline for error events
	sysPipeline   = "sys-pipeline"   // sysPipeline is a pipeline for system events

	jsonFmt = "json"
)

// broker defines an interface for an eventlogger Broker... which will allow
// us to substitute a test broker when needed to write tests for things like
// event send failures.
type broker interface {
	Send(ctx context.Context, t eventlogger.EventType, payload any) (eventlogger.Status, error)
	StopTimeAt(now time.Time)
	RegisterNode(id eventlogger.NodeID, node eventlogger.Node, opt ...eventlogger.Option) error
	SetSuccessThreshold(t eventlogger.EventType, successThreshold int) error
	RegisterPipeline(def eventlogger.Pipeline, opt ...eventlogger.Option) error
}

var _ broker = (*eventlogger.Broker)(nil)

// EventerConfig supplies the configuration for an Eventer. The zero value is
// a valid config: every event type enabled, JSON to stderr.
type EventerConfig struct {
	// AuditDisabled turns off audit events. Authorization denies are only
	// observable through audit events, so this should stay enabled outside
	// of tests.
	AuditDisabled bool

	// Writer receives the serialized events. Defaults to os.Stderr.
	Writer io.Writer
}

// Eventer provides a method to send events to pipelines of sinks
type Eventer struct {
	broker broker
	conf   EventerConfig
	logger hclog.Logger
}

var (
	sysEventer     *Eventer     // sysEventer is the system-wide Eventer
	sysEventerLock sync.RWMutex // sysEventerLock allows the sysEventer to safely be written concurrently.
)

// InitSysEventer provides a mechanism to initialize a "system wide" eventer
// singleton. Supports the options of: WithEventer(...) and
// WithEventerConfig(...)
func InitSysEventer(log hclog.Logger, opt ...Option) error {
	const op = "event.InitSysEventer"
	if log == nil {
		return fmt.Errorf("%s: missing hclog: %w", op, ErrInvalidParameter)
	}

	// determine if there's an error before setting the singleton
	var e *Eventer
	opts := getOpts(opt...)
	switch {
	case opts.withEventer == nil && opts.withEventerConfig == nil:
		return fmt.Errorf("%s: missing both eventer and eventer config: %w", op, ErrInvalidParameter)

	case opts.withEventer != nil && opts.withEventerConfig != nil:
		return fmt.Errorf("%s: both eventer and eventer config provided: %w", op, ErrInvalidParameter)

	case opts.withEventerConfig != nil:
		var err error
		if e, err = NewEventer(log, *opts.withEventerConfig); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

	case opts.withEventer != nil:
		e = opts.withEventer
	}

	sysEventerLock.Lock()
	defer sysEventerLock.Unlock()
	sysEventer = e
	return nil
}

// SysEventer returns the "system wide" eventer and can/will return a nil
// Eventer
func SysEventer() *Eventer {
	sysEventerLock.RLock()
	defer sysEventerLock.RUnlock()
	return sysEventer
}

// NewEventer creates a new Eventer using the config. Supports options:
// WithNow, withTestBroker
func NewEventer(log hclog.Logger, c EventerConfig, opt ...Option) (*Eventer, error) {
	const op = "event.NewEventer"
	if log == nil {
		return nil, fmt.Errorf("%s: missing logger: %w", op, ErrInvalidParameter)
	}
	if c.Writer == nil {
		c.Writer = os.Stderr
	}

	opts := getOpts(opt...)
	var b broker
	switch {
	case opts.withBroker != nil:
		b = opts.withBroker
	default:
		var err error
		if b, err = eventlogger.NewBroker(); err != nil {
			return nil, fmt.Errorf("%s: unable to create broker: %w", op, err)
		}
	}

	e := &Eventer{
		logger: log,
		conf:   c,
		broker: b,
	}

	if !opts.withNow.IsZero() {
		e.broker.StopTimeAt(opts.withNow)
	}

	fmtId, err := NewId("json")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := e.broker.RegisterNode(eventlogger.NodeID(fmtId), &eventlogger.JSONFormatter{}); err != nil {
		return nil, fmt.Errorf("%s: unable to register json formatter node: %w", op, err)
	}

	sinkId, err := NewId("sink")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sinkNode := &writer.Sink{
		Format: jsonFmt,
		Writer: c.Writer,
	}
	if err := e.broker.RegisterNode(eventlogger.NodeID(sinkId), sinkNode); err != nil {
		return nil, fmt.Errorf("%s: unable to register sink node: %w", op, err)
	}

	registerPipeline := func(pipeId string, t Type) error {
		if err := e.broker.RegisterPipeline(eventlogger.Pipeline{
			EventType:  eventlogger.EventType(t),
			PipelineID: eventlogger.PipelineID(pipeId),
			NodeIDs:    []eventlogger.NodeID{eventlogger.NodeID(fmtId), eventlogger.NodeID(sinkId)},
		}); err != nil {
			return fmt.Errorf("%s: failed to register %s: %w", op, pipeId, err)
		}
		// every event requires delivery to its single sink
		if err := e.broker.SetSuccessThreshold(eventlogger.EventType(t), 1); err != nil {
			return fmt.Errorf("%s: failed to set success threshold for %s: %w", op, t, err)
		}
		return nil
	}

	if !c.AuditDisabled {
		if err := registerPipeline(auditPipeline, AuditType); err != nil {
			return nil, err
		}
	}
	if err := registerPipeline(errPipeline, ErrorType); err != nil {
		return nil, err
	}
	if err := registerPipeline(sysPipeline, SystemType); err != nil {
		return nil, err
	}

	return e, nil
}

// writeAudit writes/sends an audit event
func (e *Eventer) writeAudit(ctx context.Context, a *audit) error {
	const op = "event.(Eventer).writeAudit"
	if e.conf.AuditDisabled {
		return nil
	}
	if _, err := e.broker.Send(ctx, eventlogger.EventType(AuditType), a); err != nil {
		e.logger.Error("encountered an error sending an audit event", "error:", err.Error())
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// writeError writes/sends an error event
func (e *Eventer) writeError(ctx context.Context, errEvent *err) error {
	const op = "event.(Eventer).writeError"
	if _, sendErr := e.broker.Send(ctx, eventlogger.EventType(ErrorType), errEvent); sendErr != nil {
		e.logger.Error("encountered an error sending an error event", "error:", sendErr.Error())
		return fmt.Errorf("%s: %w", op, sendErr)
	}
	return nil
}

// writeSysEvent writes/sends a system event
func (e *Eventer) writeSysEvent(ctx context.Context, se *sysEvent) error {
	const op = "event.(Eventer).writeSysEvent"
	if _, err := e.broker.Send(ctx, eventlogger.EventType(SystemType), se); err != nil {
		e.logger.Error("encountered an error sending a system event", "error:", err.Error())
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
