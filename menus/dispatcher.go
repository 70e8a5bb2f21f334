package menus

import (
	"context"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"
)

// Dispatcher routes incoming interaction events to the menu owning the
// message they were pressed on. Menus register after their first successful
// publish and deregister on their terminal transition; the registry never
// keeps a closed menu alive.
type Dispatcher struct {
	mu     sync.RWMutex
	menus  map[snowflake.ID]*Menu
	logger *zap.Logger
}

// NewDispatcher creates an empty registry.
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		menus:  make(map[snowflake.ID]*Menu),
		logger: logger.Named("dispatcher"),
	}
}

// Dispatch hands the event to the menu registered for its message. Returns
// false when no menu owns the message, leaving the event for other handlers.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) bool {
	d.mu.RLock()
	menu := d.menus[ev.MessageID()]
	d.mu.RUnlock()

	if menu == nil {
		return false
	}

	menu.deliver(ctx, ev)

	return true
}

// Len returns the number of live menus.
func (d *Dispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.menus)
}

func (d *Dispatcher) register(menu *Menu) {
	d.mu.Lock()
	d.menus[menu.messageID] = menu
	d.mu.Unlock()

	d.logger.Debug("Menu registered", zap.Uint64("message_id", uint64(menu.messageID)))
}

func (d *Dispatcher) deregister(messageID snowflake.ID) {
	d.mu.Lock()
	_, ok := d.menus[messageID]
	delete(d.menus, messageID)
	d.mu.Unlock()

	if ok {
		d.logger.Debug("Menu deregistered", zap.Uint64("message_id", uint64(messageID)))
	}
}
