package menus

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"

	"github.com/cordialkit/cordial/component"
	"github.com/cordialkit/cordial/scheduler"
)

// Variant supplies the behavior that differs between menu kinds. The base
// menu owns everything else: lifecycle, authorization, timeouts, diffing,
// and edit traffic.
type Variant interface {
	// Init must set the menu's content and rows before the first publish.
	// Leaving the rows empty produces a one-shot render with no interactive
	// surface; the menu closes immediately after publishing.
	Init(m *Menu)

	// Handle processes an accepted button press. Returning true asks the
	// base to diff and re-render; returning false leaves the message and
	// the idle deadline untouched. A returned error closes the menu.
	// Handle may call m.Cancel, which wins over a true return.
	Handle(m *Menu, ev Event) (rerender bool, err error)

	// DefaultTimeout is the idle window applied when no timeout option is
	// given. Negative disables the deadline; zero makes the menu one-shot.
	DefaultTimeout() time.Duration
}

// Menu is one live interactive message: a state machine that renders rows of
// buttons, gates incoming presses through a check, hands accepted presses to
// its variant, and re-renders when state changed. All mutation happens on the
// menu's own goroutine; the only cross-goroutine entries are event delivery,
// Cancel, and Call.
type Menu struct {
	variant    Variant
	editor     Editor
	dispatcher *Dispatcher
	logger     *zap.Logger

	channelID  snowflake.ID
	messageID  snowflake.ID
	seedUserID snowflake.ID

	check   CheckFunc
	timeout time.Duration

	// Render state, owned by the menu goroutine.
	content  string
	rows     []component.Row
	mentions *discord.AllowedMentions

	// Snapshot of the last published render, used for diffing.
	lastContent string
	lastRows    []component.Row

	state    atomic.Int32
	serial   atomic.Uint64
	deadline *scheduler.Deadline
	done     *scheduler.Completion[CloseReason]
	task     *scheduler.Task

	events     chan Event
	calls      chan func()
	cancelCh   chan struct{}
	cancelOnce sync.Once

	// deliverMu gates event delivery against the terminal transition so a
	// press that won the registry lookup while the menu was closing is still
	// acknowledged.
	deliverMu sync.Mutex
	accepting bool
}

// Option tweaks a menu before it opens.
type Option func(*Menu)

// WithCheck replaces the derived user check with a custom predicate.
func WithCheck(check CheckFunc) Option {
	return func(m *Menu) { m.check = check }
}

// WithTimeout overrides the variant's default idle window. Negative never
// expires; zero closes the menu right after the initial render.
func WithTimeout(timeout time.Duration) Option {
	return func(m *Menu) { m.timeout = timeout }
}

// WithAllowedMentions sets the mention policy attached to every render.
func WithAllowedMentions(mentions *discord.AllowedMentions) Option {
	return func(m *Menu) { m.mentions = mentions }
}

// ChannelID returns the channel the menu lives in.
func (m *Menu) ChannelID() snowflake.ID {
	return m.channelID
}

// MessageID returns the menu's message ID, assigned by the initial publish.
func (m *Menu) MessageID() snowflake.ID {
	return m.messageID
}

// SeedUserID returns the ID of the user who opened the menu.
func (m *Menu) SeedUserID() snowflake.ID {
	return m.seedUserID
}

// State returns the menu's current lifecycle state.
func (m *Menu) State() State {
	return State(m.state.Load())
}

// Dispatches returns how many interactions have been dispatched to the
// variant so far.
func (m *Menu) Dispatches() uint64 {
	return m.serial.Load()
}

// SetContent replaces the text rendered above the buttons. Must only be
// called from the variant's Init or Handle, or inside a Call closure.
func (m *Menu) SetContent(content string) {
	m.content = content
}

// Content returns the pending render text.
func (m *Menu) Content() string {
	return m.content
}

// SetRows replaces the menu's button rows.
func (m *Menu) SetRows(rows ...component.Row) {
	m.rows = rows
}

// Rows returns the pending render rows.
func (m *Menu) Rows() []component.Row {
	return m.rows
}

// Cancel requests termination. Safe to call from any goroutine, including
// from inside the variant's Handle; in that case the cancellation is honored
// after Handle returns even if it asked for a re-render.
func (m *Menu) Cancel() {
	m.cancelOnce.Do(func() { close(m.cancelCh) })
}

// Done is closed once the menu reaches its terminal state.
func (m *Menu) Done() <-chan struct{} {
	return m.done.Done()
}

// Wait blocks until the menu closes or the context is cancelled, returning
// the terminal reason and, for error terminations, the underlying cause.
func (m *Menu) Wait(ctx context.Context) (CloseReason, error) {
	return m.done.Wait(ctx)
}

// Result returns the terminal reason once the menu has closed and CloseNone
// before that.
func (m *Menu) Result() (CloseReason, error) {
	return m.done.Result()
}

// Call runs fn on the menu goroutine between dispatches, then diffs and
// re-renders without resetting the idle deadline. It blocks until the menu
// picks the call up and returns ErrClosed if the menu terminates first.
func (m *Menu) Call(fn func()) error {
	select {
	case m.calls <- fn:
		return nil
	case <-m.done.Done():
		return ErrClosed
	}
}

// run is the menu's event loop. It starts after a successful publish and
// owns every state transition until Done.
func (m *Menu) run(ctx context.Context) {
	// No interactive surface or a zero timeout means the render was
	// one-shot: enter Waiting for symmetry, then close right away.
	if m.timeout == 0 || len(m.lastRows) == 0 {
		m.setState(StateWaiting)
		m.finish(CloseTimeout, nil)

		return
	}

	m.armDeadline(time.Now())
	defer m.deadline.Disarm()

	for {
		m.setState(StateWaiting)

		select {
		case <-ctx.Done():
			m.finish(CloseCancelled, nil)
			return

		case <-m.cancelCh:
			m.finish(CloseCancelled, nil)
			return

		case now := <-m.deadline.C():
			if !m.deadline.Expired(now) {
				continue // woke early, timer re-armed
			}

			m.finish(CloseTimeout, nil)

			return

		case fn := <-m.calls:
			fn()

			if closed := m.applyRender(ctx); closed {
				return
			}

		case ev := <-m.events:
			if closed := m.handleEvent(ctx, ev); closed {
				return
			}
		}
	}
}

// handleEvent drives one interaction through check, ack, dispatch, and
// re-render. It returns true when the menu reached a terminal state.
func (m *Menu) handleEvent(ctx context.Context, ev Event) bool {
	// A failed check or a custom ID unknown to the current render leaves
	// the state machine untouched. The ack still goes out so the client
	// shows no failure banner. The deadline is deliberately not reset.
	if !m.runCheck(ev) || !component.RowsContain(m.lastRows, ev.CustomID()) {
		m.ack(ctx, ev)
		return false
	}

	m.setState(StateDispatching)
	m.serial.Add(1)
	m.ack(ctx, ev)

	rerender, err := m.invoke(ev)
	if err != nil {
		m.finish(CloseHandler, err)
		return true
	}

	// Cancel requested from inside Handle wins over a re-render request.
	if m.cancelRequested() {
		m.finish(CloseCancelled, nil)
		return true
	}

	if !rerender {
		return false
	}

	if closed := m.applyRender(ctx); closed {
		return true
	}

	m.armDeadline(time.Now())

	return false
}

// applyRender diffs the pending render against the last published one and
// issues an edit when they differ. It returns true when an edit failure
// closed the menu.
func (m *Menu) applyRender(ctx context.Context) bool {
	if m.content == m.lastContent && component.RowsEqual(m.rows, m.lastRows) {
		return false
	}

	m.setState(StateRendering)

	if err := m.edit(ctx); err != nil {
		if errors.Is(err, ErrNotFound) {
			m.finish(CloseMessageGone, nil)
		} else {
			m.finish(CloseTransport, err)
		}

		return true
	}

	m.snapshot()

	return false
}

// edit pushes the pending render to the wire, retrying a transient failure
// exactly once. A vanished message is permanent.
func (m *Menu) edit(ctx context.Context) error {
	operation := func() error {
		err := m.editor.Edit(ctx, m.channelID, m.messageID, m.content, m.rows, m.mentions)
		if errors.Is(err, ErrNotFound) {
			return backoff.Permanent(err)
		}

		return err
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(200*time.Millisecond),
	), 1)

	return backoff.Retry(operation, backoff.WithContext(policy, ctx))
}

// finish performs the terminal transition: final render, deregistration, and
// completion resolution, in that order. Nothing the menu owns runs after it.
func (m *Menu) finish(reason CloseReason, cause error) {
	if reason == CloseCancelled {
		m.setState(StateCancelling)
	}

	m.deadline.Disarm()
	m.drainEvents()

	// Quiet terminations leave the message behind with every button
	// disabled so users see the menu is no longer live. Error paths leave
	// the message as-is. Failures here are logged, never surfaced.
	if (reason == CloseTimeout || reason == CloseCancelled) && len(m.lastRows) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cancel()

		disabled := component.DisableRows(m.lastRows)
		if err := m.editor.Edit(ctx, m.channelID, m.messageID, m.lastContent, disabled, m.mentions); err != nil {
			m.logger.Debug("Failed to disable components on close", zap.Error(err))
		}
	}

	m.dispatcher.deregister(m.messageID)
	m.setState(StateDone)
	m.done.Resolve(reason, cause)

	m.logger.Debug("Menu closed",
		zap.Stringer("reason", reason),
		zap.Uint64("message_id", uint64(m.messageID)),
		zap.Uint64("dispatches", m.serial.Load()),
		zap.Error(cause))
}

// runCheck evaluates the authorization predicate. A panicking check is a
// contract violation: it is logged and treated as a rejection.
func (m *Menu) runCheck(ev Event) bool {
	ok := false

	if recovered := panics.Try(func() { ok = m.check(ev) }); recovered != nil {
		m.logger.Warn("Check predicate panicked",
			zap.Any("panic", recovered.Value),
			zap.String("custom_id", ev.CustomID()))

		return false
	}

	return ok
}

// invoke runs the variant's handler with panic capture; a panic terminates
// the menu the same way a returned error does.
func (m *Menu) invoke(ev Event) (bool, error) {
	var (
		rerender bool
		err      error
	)

	if recovered := panics.Try(func() { rerender, err = m.variant.Handle(m, ev) }); recovered != nil {
		return false, recovered.AsError()
	}

	return rerender, err
}

// ack consumes the event's acknowledgement capability. Failures are
// non-fatal: they are logged and the menu carries on.
func (m *Menu) ack(ctx context.Context, ev Event) {
	if err := ev.Ack(ctx); err != nil {
		m.logger.Warn("Failed to acknowledge interaction",
			zap.Error(err),
			zap.String("custom_id", ev.CustomID()),
			zap.Uint64("user_id", uint64(ev.UserID())))
	}
}

// deliver enqueues an event for the menu goroutine. Events queue in arrival
// order while an earlier dispatch is still running; overflow is dropped with
// an ack rather than blocking the dispatcher. An event arriving after the
// terminal transition has no reader anymore and is acked straight away.
func (m *Menu) deliver(ctx context.Context, ev Event) {
	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()

	if !m.accepting {
		m.ack(ctx, ev)
		return
	}

	select {
	case m.events <- ev:
	default:
		m.logger.Warn("Event queue full, dropping interaction",
			zap.String("custom_id", ev.CustomID()),
			zap.Uint64("message_id", uint64(m.messageID)))
		m.ack(ctx, ev)
	}
}

// drainEvents stops accepting deliveries and acks everything still queued.
// Those presses arrived too late to be dispatched; the ack keeps the client
// from showing a failure banner for them.
func (m *Menu) drainEvents() {
	m.deliverMu.Lock()
	m.accepting = false
	m.deliverMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	for {
		select {
		case ev := <-m.events:
			m.ack(ctx, ev)
		default:
			return
		}
	}
}

func (m *Menu) cancelRequested() bool {
	select {
	case <-m.cancelCh:
		return true
	default:
		return false
	}
}

// armDeadline pushes the idle deadline out to now + timeout. Called on entry
// to the event loop and after every dispatched-and-rerendered interaction.
func (m *Menu) armDeadline(now time.Time) {
	if m.timeout <= 0 {
		return
	}

	m.deadline.Set(now.Add(m.timeout))
}

// snapshot records the render that was just published, for later diffing.
func (m *Menu) snapshot() {
	m.lastContent = m.content
	m.lastRows = component.CloneRows(m.rows)
}

func (m *Menu) setState(state State) {
	m.state.Store(int32(state))
}
