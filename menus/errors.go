package menus

import "errors"

// Sentinel errors editors wrap so the engine can tell a vanished message
// apart from a transient wire failure.
var (
	// ErrNotFound reports that the menu's message no longer exists.
	ErrNotFound = errors.New("menus: message not found")
	// ErrTransport reports a transient wire failure during publish or edit.
	ErrTransport = errors.New("menus: transport failure")
	// ErrClosed reports an operation against a menu that already reached its
	// terminal state.
	ErrClosed = errors.New("menus: menu closed")
	// ErrNoPages reports an attempt to build or update a pagination menu
	// with an empty page list.
	ErrNoPages = errors.New("menus: pagination requires at least one page")
)

// State identifies where a menu is in its lifecycle.
type State int32

// Menu lifecycle states.
const (
	StateNew State = iota
	StateRendering
	StateWaiting
	StateDispatching
	StateCancelling
	StateDone
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateRendering:
		return "rendering"
	case StateWaiting:
		return "waiting"
	case StateDispatching:
		return "dispatching"
	case StateCancelling:
		return "cancelling"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// CloseReason identifies why a menu reached its terminal state. It is the
// value carried by the menu's completion signal.
type CloseReason int

// Terminal reasons.
const (
	// CloseNone means the menu has not closed yet.
	CloseNone CloseReason = iota
	// CloseTimeout means the idle deadline expired.
	CloseTimeout
	// CloseCancelled means the menu was cancelled by a user or by code.
	CloseCancelled
	// CloseMessageGone means the message disappeared during an edit.
	CloseMessageGone
	// CloseTransport means a publish failed or an edit failed twice.
	CloseTransport
	// CloseHandler means the variant's handler returned an error or panicked.
	CloseHandler
)

func (r CloseReason) String() string {
	switch r {
	case CloseNone:
		return "none"
	case CloseTimeout:
		return "timeout"
	case CloseCancelled:
		return "cancelled"
	case CloseMessageGone:
		return "message_gone"
	case CloseTransport:
		return "transport_failure"
	case CloseHandler:
		return "handler_error"
	default:
		return "unknown"
	}
}
