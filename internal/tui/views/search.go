package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// SearchBar is the product search input.
type SearchBar struct {
	*tview.InputField
	onSubmit func(query string)
}

// NewSearchBar creates the search input.
func NewSearchBar() *SearchBar {
	input := tview.NewInputField().
		SetLabel(" Search: ").
		SetFieldWidth(0)

	sb := &SearchBar{InputField: input}

	input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter && sb.onSubmit != nil {
			sb.onSubmit(sb.GetText())
		}
	})

	return sb
}

// SetOnSubmit sets the callback invoked when a query is entered. An empty
// query clears the search.
func (sb *SearchBar) SetOnSubmit(fn func(query string)) {
	sb.onSubmit = fn
}
