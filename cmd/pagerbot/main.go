// Command pagerbot is a minimal bot demonstrating the menu engine: the
// /pager command opens a paginated menu and /farewell opens a closer.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"go.uber.org/zap"

	"github.com/cordialkit/cordial/disgobridge"
	"github.com/cordialkit/cordial/internal/setup/config"
	"github.com/cordialkit/cordial/internal/setup/logger"
	"github.com/cordialkit/cordial/menus"
)

const (
	pagerCommandName    = "pager"
	farewellCommandName = "farewell"

	openTimeout = 10 * time.Second
)

var demoPages = []string{
	"Page one: welcome to the pager demo.",
	"Page two: use the arrows to navigate.",
	"Page three: the ❌ button closes the menu.",
}

type app struct {
	manager *menus.Manager
	logger  *zap.Logger
}

func main() {
	cfg, err := config.Load("config.toml", "config/config.toml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	a := &app{logger: zapLogger}

	client, err := disgo.New(cfg.Discord.Token,
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(gateway.IntentGuilds),
		),
		bot.WithEventListeners(&events.ListenerAdapter{
			OnApplicationCommandInteraction: a.onCommand,
		}),
	)
	if err != nil {
		zapLogger.Fatal("Failed to create client", zap.Error(err))
	}

	bridge := disgobridge.New(client, zapLogger)
	a.manager = menus.NewManager(bridge, zapLogger)
	client.EventManager().AddEventListeners(disgobridge.Listener(bridge, a.manager.Dispatcher()))

	if _, err := client.Rest().SetGlobalCommands(client.ApplicationID(), []discord.ApplicationCommandCreate{
		discord.SlashCommandCreate{Name: pagerCommandName, Description: "Open a demo paginated menu"},
		discord.SlashCommandCreate{Name: farewellCommandName, Description: "Open a demo closer menu"},
	}); err != nil {
		zapLogger.Fatal("Failed to register commands", zap.Error(err))
	}

	if err := client.OpenGateway(context.Background()); err != nil {
		zapLogger.Fatal("Failed to open gateway", zap.Error(err))
	}

	zapLogger.Info("Bot started, waiting for interrupt")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	a.manager.Close()
	client.Close(context.Background())
}

// onCommand opens a menu in the invoking channel and confirms ephemerally.
func (a *app) onCommand(e *events.ApplicationCommandInteractionCreate) {
	name := e.SlashCommandInteractionData().CommandName()
	if name != pagerCommandName && name != farewellCommandName {
		return
	}

	go func() {
		if err := e.CreateMessage(discord.NewMessageCreateBuilder().
			SetContent("Opening menu...").
			SetEphemeral(true).
			Build()); err != nil {
			a.logger.Error("Failed to respond to command", zap.Error(err))
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
		defer cancel()

		seed := disgobridge.SeedFromCommand(e)

		var (
			menu *menus.Menu
			err  error
		)

		switch name {
		case pagerCommandName:
			menu, err = a.manager.Paginate(ctx, seed, demoPages)
		case farewellCommandName:
			menu, err = a.manager.Closer(ctx, seed, "Press ❌ to dismiss this message.")
		}

		if err != nil {
			a.logger.Error("Failed to open menu", zap.Error(err))
			return
		}

		reason, err := menu.Wait(context.Background())
		a.logger.Info("Menu finished",
			zap.Stringer("reason", reason),
			zap.Uint64("message_id", uint64(menu.MessageID())),
			zap.Error(err))
	}()
}
