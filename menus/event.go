package menus

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// Event is a single button press delivered to a menu. Implementations are
// provided by transport adapters; the engine only reads identity fields and
// consumes the acknowledgement capability.
type Event interface {
	// MessageID returns the ID of the message the button lives on.
	MessageID() snowflake.ID

	// UserID returns the ID of the user who pressed the button.
	UserID() snowflake.ID

	// CustomID returns the custom ID of the pressed component.
	CustomID() string

	// Ack acknowledges the interaction so the client shows no failure
	// banner. Implementations must be idempotent; only the first call may
	// hit the wire.
	Ack(ctx context.Context) error
}

// Seed identifies where a menu is published and who opened it. The user ID
// feeds the derived authorization check when no explicit check is supplied.
type Seed struct {
	ChannelID snowflake.ID
	UserID    snowflake.ID
}
