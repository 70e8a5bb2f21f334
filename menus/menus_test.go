package menus

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cordialkit/cordial/component"
)

const (
	testChannelID = snowflake.ID(100)
	testUserID    = snowflake.ID(200)
	otherUserID   = snowflake.ID(201)
	testMessageID = snowflake.ID(300)
)

// editCall records one Edit issued by the engine.
type editCall struct {
	content string
	rows    []component.Row
}

// fakeEditor records all wire traffic and can be scripted to fail.
type fakeEditor struct {
	mu sync.Mutex

	publishErr error
	editErrs   []error // consumed one per Edit call

	publishes []editCall
	edits     []editCall
	acks      int
}

func (f *fakeEditor) Publish(
	_ context.Context, _ snowflake.ID,
	content string, rows []component.Row, _ *discord.AllowedMentions,
) (snowflake.ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.publishErr != nil {
		return 0, f.publishErr
	}

	f.publishes = append(f.publishes, editCall{content: content, rows: component.CloneRows(rows)})

	return testMessageID, nil
}

func (f *fakeEditor) firstPublish() editCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.publishes[0]
}

func (f *fakeEditor) Edit(
	_ context.Context, _, _ snowflake.ID,
	content string, rows []component.Row, _ *discord.AllowedMentions,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.editErrs) > 0 {
		err := f.editErrs[0]
		f.editErrs = f.editErrs[1:]

		if err != nil {
			return err
		}
	}

	f.edits = append(f.edits, editCall{content: content, rows: component.CloneRows(rows)})

	return nil
}

func (f *fakeEditor) Acknowledge(context.Context, snowflake.ID, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.acks++

	return nil
}

func (f *fakeEditor) editCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.edits)
}

func (f *fakeEditor) lastEdit() editCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.edits[len(f.edits)-1]
}

var _ Event = (*fakeEvent)(nil)

// fakeEvent is a scripted button press. Ack calls are counted so tests can
// assert the exactly-once acknowledgement property.
type fakeEvent struct {
	messageID snowflake.ID
	userID    snowflake.ID
	customID  string
	ackErr    error
	acks      atomic.Int32
}

func (e *fakeEvent) MessageID() snowflake.ID { return e.messageID }
func (e *fakeEvent) UserID() snowflake.ID    { return e.userID }
func (e *fakeEvent) CustomID() string        { return e.customID }

func (e *fakeEvent) Ack(context.Context) error {
	e.acks.Add(1)
	return e.ackErr
}

// scriptVariant is a minimal variant for exercising the base state machine.
type scriptVariant struct {
	content string
	rows    []component.Row
	timeout time.Duration
	handle  func(m *Menu, ev Event) (bool, error)
}

func (v *scriptVariant) DefaultTimeout() time.Duration { return v.timeout }

func (v *scriptVariant) Init(m *Menu) {
	m.SetContent(v.content)
	m.SetRows(v.rows...)
}

func (v *scriptVariant) Handle(m *Menu, ev Event) (bool, error) {
	if v.handle == nil {
		return false, nil
	}

	return v.handle(m, ev)
}

func newTestManager(editor Editor) *Manager {
	return NewManager(editor, zap.NewNop())
}

func testSeed() Seed {
	return Seed{ChannelID: testChannelID, UserID: testUserID}
}

// press delivers a button press from the given user through the dispatcher.
func press(t *testing.T, mgr *Manager, userID snowflake.ID, customID string) *fakeEvent {
	t.Helper()

	ev := &fakeEvent{messageID: testMessageID, userID: userID, customID: customID}
	require.True(t, mgr.Dispatcher().Dispatch(context.Background(), ev))

	return ev
}

// waitIdle blocks until the menu has dispatched n interactions and returned
// to Waiting, so test assertions observe a settled state.
func waitIdle(t *testing.T, m *Menu, dispatches uint64) {
	t.Helper()

	require.Eventually(t, func() bool {
		return m.Dispatches() == dispatches && m.State() == StateWaiting
	}, 2*time.Second, 2*time.Millisecond)
}

// waitClosed blocks until the menu resolves and returns its terminal reason.
func waitClosed(t *testing.T, m *Menu) (CloseReason, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reason, err := m.Wait(ctx)
	require.NotEqual(t, CloseNone, reason, "menu did not close in time")

	return reason, err
}

func testRow(customIDs ...string) component.Row {
	buttons := make([]component.Button, len(customIDs))
	for i, id := range customIDs {
		buttons[i] = component.NewButton(EmojiCancel, id)
	}

	return component.NewRow(buttons...)
}

// testRows builds a single-row render surface with the given custom IDs.
func testRows(customIDs ...string) []component.Row {
	return []component.Row{testRow(customIDs...)}
}
