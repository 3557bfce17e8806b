package notifier

import "context"

// Channel abstracts the outbound WhatsApp delivery capability.
// The engine depends on this interface, never on a concrete transport,
// so tests can inject a fake channel recording calls and outcomes.
type Channel interface {
	Send(ctx context.Context, to, message string) error
}
