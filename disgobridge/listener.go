package disgobridge

import (
	"context"
	"sync"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"

	"github.com/cordialkit/cordial/menus"
)

// dispatchTimeout bounds the acknowledgement a dropped or rejected
// interaction may still trigger.
const dispatchTimeout = 5 * time.Second

// Listener returns a disgo event listener that wraps button interactions and
// routes them through the dispatcher. Interactions on messages without a
// registered menu are left untouched for other handlers.
func Listener(bridge *Bridge, dispatcher *menus.Dispatcher) bot.EventListener {
	return &events.ListenerAdapter{
		OnComponentInteraction: func(e *events.ComponentInteractionCreate) {
			data, ok := e.Data.(discord.ButtonInteractionData)
			if !ok {
				return
			}

			ev := &componentEvent{
				messageID:     e.Message.ID,
				userID:        e.User().ID,
				customID:      data.CustomID(),
				interactionID: e.ID(),
				token:         e.Token(),
				editor:        bridge,
			}

			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
				defer cancel()

				if !dispatcher.Dispatch(ctx, ev) {
					bridge.logger.Debug("No menu registered for interaction",
						zap.Uint64("message_id", uint64(ev.messageID)),
						zap.String("custom_id", ev.customID))
				}
			}()
		},
	}
}

// SeedFromCommand derives a menu seed from the slash command that asked for
// the menu.
func SeedFromCommand(e *events.ApplicationCommandInteractionCreate) menus.Seed {
	return menus.Seed{
		ChannelID: e.ChannelID(),
		UserID:    e.User().ID,
	}
}

var _ menus.Event = (*componentEvent)(nil)

// componentEvent adapts a gateway button interaction to the engine's event
// contract. The acknowledgement is a consume-once capability.
type componentEvent struct {
	messageID     snowflake.ID
	userID        snowflake.ID
	customID      string
	interactionID snowflake.ID
	token         string
	editor        menus.Editor

	ackOnce sync.Once
	ackErr  error
}

func (e *componentEvent) MessageID() snowflake.ID {
	return e.messageID
}

func (e *componentEvent) UserID() snowflake.ID {
	return e.userID
}

func (e *componentEvent) CustomID() string {
	return e.customID
}

func (e *componentEvent) Ack(ctx context.Context) error {
	e.ackOnce.Do(func() {
		e.ackErr = e.editor.Acknowledge(ctx, e.interactionID, e.token)
	})

	return e.ackErr
}
