package views

import (
	"fmt"
	"time"

	"github.com/fyndhq/fynd/internal/chat"
	"github.com/rivo/tview"
)

// Thread displays the message timeline for one product conversation.
type Thread struct {
	*tview.TextView
}

// NewThread creates the conversation view.
func NewThread() *Thread {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	tv.SetBorder(true).SetTitle(" Chat ")

	return &Thread{TextView: tv}
}

// SetProductTitle updates the view title.
func (t *Thread) SetProductTitle(title string) {
	t.SetTitle(fmt.Sprintf(" Chat: %s ", title))
}

// Update re-renders the timeline, oldest first, with an optional typing
// indicator at the bottom.
func (t *Thread) Update(msgs []chat.Message, typing bool) {
	t.Clear()

	for _, m := range msgs {
		who := "Seller"
		if m.Sender == chat.SenderUser {
			who = "You"
		}
		ts := time.UnixMilli(m.Timestamp).Format("15:04")
		_, _ = fmt.Fprintf(t, "[::b]%s[-:-:-] [::d]%s[-:-:-]\n%s\n\n", who, ts, tview.Escape(m.Text))
	}

	if typing {
		_, _ = fmt.Fprint(t, "[::d]Seller is typing...[-:-:-]\n")
	}

	t.ScrollToEnd()
}
