package menus

import (
	"time"

	"github.com/disgoorg/disgo/discord"

	"github.com/cordialkit/cordial/component"
)

// Compile-time checks that the built-in variants satisfy the interface.
var (
	_ Variant = (*Pagination)(nil)
	_ Variant = (*Closer)(nil)
)

// Pagination renders an ordered sequence of pages behind first/prev/next/last
// navigation buttons plus a cancel button. Edge buttons are disabled exactly
// when there is nothing in their direction.
type Pagination struct {
	menu  *Menu
	pages []string
	index int
}

// NewPagination creates the variant. At least one page is required.
func NewPagination(pages []string) (*Pagination, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	return &Pagination{pages: pages}, nil
}

// DefaultTimeout is the idle window used when no timeout option is given.
func (p *Pagination) DefaultTimeout() time.Duration {
	return DefaultPaginationTimeout
}

// Init renders the first page with navigation at the left edge.
func (p *Pagination) Init(m *Menu) {
	p.menu = m
	m.SetContent(p.pages[p.index])
	m.SetRows(p.row())
}

// Handle maps button presses onto page navigation. Navigation that would not
// change the page is a no-op and produces no edit.
func (p *Pagination) Handle(m *Menu, ev Event) (bool, error) {
	target := p.index

	switch ev.CustomID() {
	case CustomIDCancel:
		m.Cancel()
		return false, nil
	case customIDPageFirst:
		target = 0
	case customIDPagePrev:
		target = p.index - 1
	case customIDPageNext:
		target = p.index + 1
	case customIDPageLast:
		target = len(p.pages) - 1
	default:
		return false, nil
	}

	target = min(max(target, 0), len(p.pages)-1)
	if target == p.index {
		return false, nil
	}

	p.index = target
	m.SetContent(p.pages[target])
	m.SetRows(p.row())

	return true, nil
}

// Index returns the current page index.
func (p *Pagination) Index() int {
	return p.index
}

// SetPages replaces the page list while the menu is live. The update runs on
// the menu goroutine between dispatches; the current index is clamped into
// the new range and the message re-renders if anything changed. The idle
// deadline is not reset.
func (p *Pagination) SetPages(pages []string) error {
	if len(pages) == 0 {
		return ErrNoPages
	}

	if p.menu == nil {
		return ErrClosed
	}

	return p.menu.Call(func() {
		p.pages = pages
		if p.index > len(pages)-1 {
			p.index = len(pages) - 1
		}

		p.menu.SetContent(p.pages[p.index])
		p.menu.SetRows(p.row())
	})
}

// row rebuilds the navigation row; button enablement is a pure function of
// the index and the page count.
func (p *Pagination) row() component.Row {
	notFirst := p.index > 0
	notLast := p.index < len(p.pages)-1

	return component.NewRow(
		component.NewButton(EmojiLeft2, customIDPageFirst).WithEnabled(notFirst),
		component.NewButton(EmojiLeft, customIDPagePrev).WithEnabled(notFirst),
		component.NewButton(EmojiCancel, CustomIDCancel).WithStyle(discord.ButtonStyleDanger),
		component.NewButton(EmojiRight, customIDPageNext).WithEnabled(notLast),
		component.NewButton(EmojiRight2, customIDPageLast).WithEnabled(notLast),
	)
}
