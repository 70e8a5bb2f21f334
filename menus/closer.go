package menus

import (
	"time"

	"github.com/disgoorg/disgo/discord"

	"github.com/cordialkit/cordial/component"
)

// Closer renders a single page with one cancel button and waits. It carries
// no timeout by default: the menu lives until the button is pressed or it is
// cancelled programmatically.
type Closer struct {
	page string
}

// NewCloser creates the variant.
func NewCloser(page string) *Closer {
	return &Closer{page: page}
}

// DefaultTimeout disables the idle deadline.
func (c *Closer) DefaultTimeout() time.Duration {
	return NoTimeout
}

// Init renders the page with its cancel button.
func (c *Closer) Init(m *Menu) {
	m.SetContent(c.page)
	m.SetRows(component.NewRow(
		component.NewButton(EmojiCancel, CustomIDCancel).WithStyle(discord.ButtonStyleDanger),
	))
}

// Handle cancels the menu on the cancel button and ignores everything else.
func (c *Closer) Handle(m *Menu, ev Event) (bool, error) {
	if ev.CustomID() == CustomIDCancel {
		m.Cancel()
	}

	return false, nil
}
