package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter EventType = "node_enter"
	EventNodeLeave EventType = "node_leave"
	EventGenerate  EventType = "generate"
	EventFallback  EventType = "fallback"
	EventLocalEval EventType = "local_eval"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RequestID string    `json:"request_id"`
}

// NodeEvent represents entry or exit from a node.
type NodeEvent struct {
	EventBase
	NodeID string `json:"node_id"`
	Agent  Agent  `json:"agent,omitempty"`
}

// GenerateEvent describes one call to the text-generation collaborator.
type GenerateEvent struct {
	EventBase
	NodeID   string        `json:"node_id"`
	Duration time.Duration `json:"duration"`
	IsError  bool          `json:"is_error,omitempty"`
}

// FallbackEvent is emitted when the Manager output could not be parsed and
// the heuristic classifier picked the agent instead.
type FallbackEvent struct {
	EventBase
	Agent Agent  `json:"agent"`
	Cause string `json:"cause"`
}

// LocalEvalEvent reports whether the calculator answered without the collaborator.
type LocalEvalEvent struct {
	EventBase
	OK bool `json:"ok"`
}

// LifecycleHooks defines callbacks for router observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnNodeEnter func(context.Context, *NodeEvent)
	OnNodeLeave func(context.Context, *NodeEvent)
	OnGenerate  func(context.Context, *GenerateEvent)
	OnFallback  func(context.Context, *FallbackEvent)
	OnLocalEval func(context.Context, *LocalEvalEvent)
}

// Merge returns hooks that invoke h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnNodeEnter: chain(h.OnNodeEnter, other.OnNodeEnter),
		OnNodeLeave: chain(h.OnNodeLeave, other.OnNodeLeave),
		OnGenerate:  chain(h.OnGenerate, other.OnGenerate),
		OnFallback:  chain(h.OnFallback, other.OnFallback),
		OnLocalEval: chain(h.OnLocalEval, other.OnLocalEval),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
