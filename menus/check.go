package menus

import "github.com/disgoorg/snowflake/v2"

// CheckFunc decides whether an interaction may drive a menu's state machine.
// Checks must be synchronous, side-effect free, and must not touch the menu.
type CheckFunc func(Event) bool

// UserCheck builds the default authorization check: only the user who opened
// the menu may interact with it. The seed user ID is captured as data at
// construction time.
func UserCheck(userID snowflake.ID) CheckFunc {
	return func(ev Event) bool {
		return ev.UserID() == userID
	}
}

// AnyUser accepts interactions from everyone.
func AnyUser() CheckFunc {
	return func(Event) bool {
		return true
	}
}
