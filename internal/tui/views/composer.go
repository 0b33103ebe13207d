package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Composer is the text input for sending chat messages. Sending is gated on
// the connection being up; while disabled, input is kept but not submitted.
type Composer struct {
	*tview.InputField
	onSend  func(text string)
	enabled bool
}

// NewComposer creates a new message composer.
func NewComposer() *Composer {
	input := tview.NewInputField().
		SetFieldWidth(0)

	c := &Composer{InputField: input}
	c.SetEnabled(false)

	input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter && c.enabled && c.onSend != nil {
			text := c.GetText()
			if text != "" {
				c.onSend(text)
				c.SetText("")
			}
		}
	})

	return c
}

// SetOnSend sets the callback when a message is submitted.
func (c *Composer) SetOnSend(fn func(text string)) {
	c.onSend = fn
}

// SetEnabled toggles whether submissions go through.
func (c *Composer) SetEnabled(enabled bool) {
	c.enabled = enabled
	if enabled {
		c.SetLabel(" > ")
	} else {
		c.SetLabel(" [::d](connecting)[-:-:-] ")
	}
}
