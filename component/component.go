// Package component defines the value-typed button and row descriptors used
// by interactive menus. Rows are compared structurally so the engine can skip
// message edits when a re-render would not change anything on the wire.
package component

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
)

// Buttons per row limits imposed by the Discord component system.
const (
	MinRowButtons = 1
	MaxRowButtons = 5
)

// Button describes a single message button. Buttons are plain values; two
// buttons are interchangeable when all of their fields match. A button with a
// custom ID matches an interaction carrying the same custom ID.
type Button struct {
	CustomID string
	Emoji    string
	Label    string
	Style    discord.ButtonStyle
	Enabled  bool
}

// NewButton creates an enabled secondary-style button with the given emoji
// and custom ID.
func NewButton(emoji, customID string) Button {
	return Button{
		CustomID: customID,
		Emoji:    emoji,
		Style:    discord.ButtonStyleSecondary,
		Enabled:  true,
	}
}

// WithLabel returns a copy of the button with the given label.
func (b Button) WithLabel(label string) Button {
	b.Label = label
	return b
}

// WithStyle returns a copy of the button with the given style.
func (b Button) WithStyle(style discord.ButtonStyle) Button {
	b.Style = style
	return b
}

// WithEnabled returns a copy of the button with the enabled flag set.
func (b Button) WithEnabled(enabled bool) Button {
	b.Enabled = enabled
	return b
}

// Matches reports whether the button is the target of an interaction with the
// given custom ID.
func (b Button) Matches(customID string) bool {
	return b.CustomID != "" && b.CustomID == customID
}

// Row is an ordered group of buttons rendered as a single action row.
type Row struct {
	Buttons []Button
}

// NewRow groups buttons into a row. Rows must contain between 1 and 5
// buttons; anything else is a programming error.
func NewRow(buttons ...Button) Row {
	if len(buttons) < MinRowButtons || len(buttons) > MaxRowButtons {
		panic(fmt.Sprintf("component: row must contain %d to %d buttons, got %d",
			MinRowButtons, MaxRowButtons, len(buttons)))
	}

	return Row{Buttons: buttons}
}

// Equal reports whether two rows would render identically.
func (r Row) Equal(other Row) bool {
	if len(r.Buttons) != len(other.Buttons) {
		return false
	}

	for i, button := range r.Buttons {
		if button != other.Buttons[i] {
			return false
		}
	}

	return true
}

// Contains reports whether any button in the row matches the custom ID.
func (r Row) Contains(customID string) bool {
	for _, button := range r.Buttons {
		if button.Matches(customID) {
			return true
		}
	}

	return false
}

// Clone returns a deep copy of the row. The engine snapshots rows after each
// publish so later in-place mutations by a variant do not corrupt the diff.
func (r Row) Clone() Row {
	buttons := make([]Button, len(r.Buttons))
	copy(buttons, r.Buttons)

	return Row{Buttons: buttons}
}

// Disabled returns a copy of the row with every button disabled. Used for the
// final render when a menu reaches the end of its life.
func (r Row) Disabled() Row {
	buttons := make([]Button, len(r.Buttons))
	for i, button := range r.Buttons {
		buttons[i] = button.WithEnabled(false)
	}

	return Row{Buttons: buttons}
}

// RowsEqual reports whether two row sequences would render identically.
func RowsEqual(a, b []Row) bool {
	if len(a) != len(b) {
		return false
	}

	for i, row := range a {
		if !row.Equal(b[i]) {
			return false
		}
	}

	return true
}

// CloneRows deep-copies a row sequence.
func CloneRows(rows []Row) []Row {
	if rows == nil {
		return nil
	}

	cloned := make([]Row, len(rows))
	for i, row := range rows {
		cloned[i] = row.Clone()
	}

	return cloned
}

// DisableRows returns a copy of the row sequence with every button disabled.
func DisableRows(rows []Row) []Row {
	disabled := make([]Row, len(rows))
	for i, row := range rows {
		disabled[i] = row.Disabled()
	}

	return disabled
}

// RowsContain reports whether any button across the rows matches the custom ID.
func RowsContain(rows []Row, customID string) bool {
	for _, row := range rows {
		if row.Contains(customID) {
			return true
		}
	}

	return false
}

// ToDiscord converts the row to a disgo action row component.
func (r Row) ToDiscord() discord.ActionRowComponent {
	buttons := make([]discord.InteractiveComponent, len(r.Buttons))
	for i, button := range r.Buttons {
		buttons[i] = button.ToDiscord()
	}

	return discord.NewActionRow(buttons...)
}

// ToDiscord converts the button to a disgo button component.
func (b Button) ToDiscord() discord.ButtonComponent {
	out := discord.ButtonComponent{
		Style:    b.Style,
		Label:    b.Label,
		CustomID: b.CustomID,
		Disabled: !b.Enabled,
	}
	if b.Emoji != "" {
		out.Emoji = &discord.ComponentEmoji{Name: b.Emoji}
	}

	return out
}
