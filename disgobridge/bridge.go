// Package disgobridge connects the menu engine to Discord through a disgo
// client: it implements the engine's Editor over the REST API and feeds
// gateway component interactions into the dispatcher.
package disgobridge

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"

	"github.com/cordialkit/cordial/component"
	"github.com/cordialkit/cordial/menus"
)

var _ menus.Editor = (*Bridge)(nil)

// Bridge implements menus.Editor over a disgo REST client.
type Bridge struct {
	client bot.Client
	logger *zap.Logger
}

// New creates a bridge around the given client.
func New(client bot.Client, logger *zap.Logger) *Bridge {
	return &Bridge{
		client: client,
		logger: logger.Named("disgobridge"),
	}
}

// Publish creates the menu's message and returns its ID.
func (b *Bridge) Publish(
	ctx context.Context, channelID snowflake.ID,
	content string, rows []component.Row, mentions *discord.AllowedMentions,
) (snowflake.ID, error) {
	builder := discord.NewMessageCreateBuilder().SetContent(content)
	if mentions != nil {
		builder.SetAllowedMentions(mentions)
	}

	for _, row := range rows {
		builder.AddContainerComponents(row.ToDiscord())
	}

	message, err := b.client.Rest().CreateMessage(channelID, builder.Build(), rest.WithCtx(ctx))
	if err != nil {
		return 0, wrapRestError(err)
	}

	return message.ID, nil
}

// Edit replaces the message's content and full component set.
func (b *Bridge) Edit(
	ctx context.Context, channelID, messageID snowflake.ID,
	content string, rows []component.Row, mentions *discord.AllowedMentions,
) error {
	containers := make([]discord.ContainerComponent, len(rows))
	for i, row := range rows {
		containers[i] = row.ToDiscord()
	}

	builder := discord.NewMessageUpdateBuilder().
		SetContent(content).
		SetContainerComponents(containers...)
	if mentions != nil {
		builder.SetAllowedMentions(mentions)
	}

	_, err := b.client.Rest().UpdateMessage(channelID, messageID, builder.Build(), rest.WithCtx(ctx))
	if err != nil {
		return wrapRestError(err)
	}

	return nil
}

// Acknowledge sends a deferred-update response for the interaction.
func (b *Bridge) Acknowledge(ctx context.Context, interactionID snowflake.ID, token string) error {
	err := b.client.Rest().CreateInteractionResponse(
		interactionID, token,
		discord.InteractionResponse{Type: discord.InteractionResponseTypeDeferredUpdateMessage},
		rest.WithCtx(ctx),
	)
	if err != nil {
		return wrapRestError(err)
	}

	return nil
}

// wrapRestError translates disgo REST failures into the sentinel errors the
// engine branches on. Only a vanished message is distinguished; everything
// else is a transport failure.
func wrapRestError(err error) error {
	var restErr *rest.Error
	if errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", menus.ErrNotFound, err)
	}

	return fmt.Errorf("%w: %w", menus.ErrTransport, err)
}
