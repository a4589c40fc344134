package port

import "context"

// Messenger delivers one outbound message. Delivery failure is reported to
// the caller for logging but is never escalated to the sender; there is no
// retry path.
type Messenger interface {
	Send(ctx context.Context, to, body string) error
}
