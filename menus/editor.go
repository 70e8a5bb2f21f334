package menus

import (
	"context"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"

	"github.com/cordialkit/cordial/component"
)

// Editor is the engine's only window onto the wire. Implementations wrap
// failures in ErrTransport, and in ErrNotFound when the target message no
// longer exists, so the state machine can pick the right terminal reason.
type Editor interface {
	// Publish creates the menu's message and returns its ID.
	Publish(
		ctx context.Context, channelID snowflake.ID,
		content string, rows []component.Row, mentions *discord.AllowedMentions,
	) (snowflake.ID, error)

	// Edit replaces the message's content and full component set. Partial
	// updates are never issued.
	Edit(
		ctx context.Context, channelID, messageID snowflake.ID,
		content string, rows []component.Row, mentions *discord.AllowedMentions,
	) error

	// Acknowledge sends a deferred-update response for the interaction,
	// suppressing the client's failure banner. Idempotent per token.
	Acknowledge(ctx context.Context, interactionID snowflake.ID, token string) error
}
