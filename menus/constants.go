package menus

import "time"

// CustomIDCancel is the custom ID carried by every cancel button the engine
// creates. User-defined buttons must not reuse it.
const CustomIDCancel = "menu:cancel"

// Custom IDs for the built-in pagination buttons.
const (
	customIDPageFirst = "menu:page:first"
	customIDPagePrev  = "menu:page:prev"
	customIDPageNext  = "menu:page:next"
	customIDPageLast  = "menu:page:last"
)

// Emoji glyphs for the built-in buttons. The engine treats these as opaque
// identifiers; any unambiguous glyph works.
const (
	EmojiCancel = "❌"
	EmojiLeft   = "◀️"
	EmojiLeft2  = "⏪"
	EmojiRight  = "▶️"
	EmojiRight2 = "⏩"
)

// NoTimeout disables the idle deadline entirely.
const NoTimeout = time.Duration(-1)

// DefaultPaginationTimeout is the idle window applied to pagination menus
// when no explicit timeout option is given.
const DefaultPaginationTimeout = 300 * time.Second

// eventBuffer bounds how many interactions may queue while a menu is busy
// dispatching an earlier one. Overflow is dropped with an acknowledgement.
const eventBuffer = 8

// callBuffer bounds queued programmatic updates (e.g. live page swaps).
const callBuffer = 4

// cleanupTimeout bounds the final component-disabling edit issued when a
// menu times out or is cancelled.
const cleanupTimeout = 5 * time.Second
