package menus

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cordialkit/cordial/scheduler"
)

// Manager owns the moving parts shared by every menu: the editor, the
// dispatcher registry, and the scheduler the menu loops run on. One manager
// serves a whole client connection.
type Manager struct {
	editor     Editor
	scheduler  *scheduler.Scheduler
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewManager creates a manager around the given editor.
func NewManager(editor Editor, logger *zap.Logger) *Manager {
	log := logger.Named("menus")

	return &Manager{
		editor:     editor,
		scheduler:  scheduler.New(log),
		dispatcher: NewDispatcher(log),
		logger:     log,
	}
}

// Dispatcher returns the registry transport adapters feed events into.
func (mgr *Manager) Dispatcher() *Dispatcher {
	return mgr.dispatcher
}

// Open publishes a menu for the given variant and starts its event loop.
// The variant's Init runs first to produce the initial render; a publish
// failure is fatal and is both returned and carried on the completion
// signal. On success the menu is registered for interaction delivery and its
// loop is running.
func (mgr *Manager) Open(ctx context.Context, seed Seed, variant Variant, opts ...Option) (*Menu, error) {
	m := &Menu{
		variant:    variant,
		editor:     mgr.editor,
		dispatcher: mgr.dispatcher,
		logger:     mgr.logger,
		channelID:  seed.ChannelID,
		seedUserID: seed.UserID,
		check:      UserCheck(seed.UserID),
		timeout:    variant.DefaultTimeout(),
		deadline:   scheduler.NewDeadline(),
		done:       scheduler.NewCompletion[CloseReason](),
		events:     make(chan Event, eventBuffer),
		calls:      make(chan func(), callBuffer),
		cancelCh:   make(chan struct{}),
		accepting:  true,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.setState(StateRendering)
	variant.Init(m)

	messageID, err := mgr.editor.Publish(ctx, m.channelID, m.content, m.rows, m.mentions)
	if err != nil {
		err = fmt.Errorf("publish menu: %w", err)
		m.setState(StateDone)
		m.done.Resolve(CloseTransport, err)

		return nil, err
	}

	m.messageID = messageID
	m.snapshot()

	if len(m.lastRows) > 0 {
		mgr.dispatcher.register(m)
	}

	m.task = mgr.scheduler.Spawn(fmt.Sprintf("menu:%d", uint64(messageID)), m.run)

	mgr.logger.Debug("Menu opened",
		zap.Uint64("channel_id", uint64(m.channelID)),
		zap.Uint64("message_id", uint64(messageID)),
		zap.Duration("timeout", m.timeout))

	return m, nil
}

// Paginate opens a pagination menu over the given pages.
func (mgr *Manager) Paginate(ctx context.Context, seed Seed, pages []string, opts ...Option) (*Menu, error) {
	pagination, err := NewPagination(pages)
	if err != nil {
		return nil, err
	}

	return mgr.Open(ctx, seed, pagination, opts...)
}

// Closer opens a single-page menu that lives until its cancel button is
// pressed or it is cancelled programmatically.
func (mgr *Manager) Closer(ctx context.Context, seed Seed, page string, opts ...Option) (*Menu, error) {
	return mgr.Open(ctx, seed, NewCloser(page), opts...)
}

// Close cancels every live menu and waits for their loops to finish.
func (mgr *Manager) Close() {
	mgr.scheduler.Close()
}
