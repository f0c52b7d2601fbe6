package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRender       EventType = "render"
	EventDraftSaved   EventType = "draft_saved"
	EventDraftLoaded  EventType = "draft_loaded"
	EventDraftDeleted EventType = "draft_deleted"
	EventPublish      EventType = "publish"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// RenderEvent is emitted after a descriptor was serialized.
type RenderEvent struct {
	EventBase
	TokenName string `json:"token_name"`
	Bytes     int    `json:"bytes"`
}

// DraftEvent is emitted after a draft store operation.
type DraftEvent struct {
	EventBase
	DraftID string `json:"draft_id"`
	Bytes   int    `json:"bytes,omitempty"`
	IsError bool   `json:"is_error,omitempty"`
}

// PublishEvent is emitted after a publish attempt.
type PublishEvent struct {
	EventBase
	Address  string        `json:"address,omitempty"`
	Bytes    int           `json:"bytes"`
	Duration time.Duration `json:"duration"`
	IsError  bool          `json:"is_error,omitempty"`
}

// LifecycleHooks defines callbacks for observability.
type LifecycleHooks struct {
	OnRender  func(context.Context, *RenderEvent)
	OnDraft   func(context.Context, *DraftEvent)
	OnPublish func(context.Context, *PublishEvent)
}
