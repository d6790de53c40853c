package queue

import (
	// Packages
	schema "github.com/mcpbridge/mcpbridge/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Router owns the three queues between the engine worker and the observer.
// The queues are independent of each other: ordering is guaranteed within
// a queue, never across queues.
type Router struct {
	// Inbound carries user messages from the observer to the engine
	Inbound *Queue[string]

	// Text carries completed assistant answers to the observer, exactly
	// one per finished user turn
	Text *Queue[string]

	// Status carries state transitions and progress notices to the observer
	Status *Queue[schema.StatusEvent]
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewRouter creates a router with three empty queues
func NewRouter() *Router {
	return &Router{
		Inbound: NewQueue[string](),
		Text:    NewQueue[string](),
		Status:  NewQueue[schema.StatusEvent](),
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// PushStatus timestamps and enqueues a status event
func (r *Router) PushStatus(state schema.BridgeState, detail string) {
	r.Status.Push(schema.NewStatusEvent(state, detail))
}

// Close closes all three queues
func (r *Router) Close() {
	r.Inbound.Close()
	r.Text.Close()
	r.Status.Close()
}
