package handler

import "github.com/starfederation/datastar-go/datastar"

// StreamContext is a Context bound to an open event stream. Every Send call
// writes and flushes its events before returning, so a loading state sent
// first reaches the browser before a slow backend call completes.
type StreamContext interface {
	Context

	SendComponent(component TemplComponent, opts ...TemplOption) error
	SendMultiple(patches ...TemplPatch) error
	SendSignals(signals map[string]any) error
}

type streamContext struct {
	Context
	sse *datastar.ServerSentEventGenerator
}

func (c *streamContext) SendComponent(component TemplComponent, opts ...TemplOption) error {
	return c.SendMultiple(Patch(component, opts...))
}

func (c *streamContext) SendSignals(signals map[string]any) error {
	return c.SendMultiple(Signals(signals))
}

// SendMultiple stops at the first patch that fails, usually because the client left.
func (c *streamContext) SendMultiple(patches ...TemplPatch) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	for _, p := range patches {
		if err := p.send(c.sse); err != nil {
			return err
		}
	}
	return nil
}
