package views

import (
	"fmt"
	"strings"

	"github.com/fyndhq/fynd/internal/status"
	"github.com/rivo/tview"
)

// StatusBar displays connection state, the signed-in user, active filters
// and transient flash messages.
type StatusBar struct {
	*tview.TextView
	conn    status.State
	user    string
	filters string
	hints   string
	flash   string
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(tview.Styles.MoreContrastBackgroundColor)

	return &StatusBar{TextView: tv, conn: status.Idle}
}

// SetConn updates the chat connection indicator.
func (sb *StatusBar) SetConn(s status.State) {
	sb.conn = s
	sb.render()
}

// SetUser updates the signed-in user display. Empty means signed out.
func (sb *StatusBar) SetUser(name string) {
	sb.user = name
	sb.render()
}

// SetFilters updates the active-filter summary.
func (sb *StatusBar) SetFilters(summary string) {
	sb.filters = summary
	sb.render()
}

// SetHints updates the keybinding hint line.
func (sb *StatusBar) SetHints(hints []string) {
	sb.hints = strings.Join(hints, "  ")
	sb.render()
}

// SetFlash sets a temporary message.
func (sb *StatusBar) SetFlash(msg string) {
	sb.flash = msg
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()

	conn := ""
	switch sb.conn {
	case status.Connected:
		conn = "[green]chat:on[-]"
	case status.Connecting:
		conn = "[yellow]chat:..[-]"
	case status.Failed:
		conn = "[red]chat:err[-]"
	default:
		conn = "[::d]chat:off[-:-:-]"
	}

	user := "guest"
	if sb.user != "" {
		user = sb.user
	}

	line := fmt.Sprintf(" %s | [::b]%s[-:-:-]", conn, user)
	if sb.filters != "" {
		line += " | " + sb.filters
	}
	if sb.flash != "" {
		line += fmt.Sprintf(" | [yellow]%s[-]", tview.Escape(sb.flash))
	} else if sb.hints != "" {
		line += " | [::d]" + sb.hints + "[-:-:-]"
	}

	_, _ = fmt.Fprint(sb, line)
}
