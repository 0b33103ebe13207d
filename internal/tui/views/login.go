package views

import (
	"github.com/rivo/tview"
)

// LoginForm collects credentials for signing in.
type LoginForm struct {
	*tview.Form
	onSubmit func(username, password string)
	onCancel func()
}

// NewLoginForm creates the login form.
func NewLoginForm() *LoginForm {
	form := tview.NewForm()
	form.SetBorder(true).SetTitle(" Sign in ")

	lf := &LoginForm{Form: form}

	form.AddInputField("Username", "", 32, nil, nil)
	form.AddPasswordField("Password", "", 32, '*', nil)
	form.AddButton("Sign in", func() {
		if lf.onSubmit == nil {
			return
		}
		username := form.GetFormItemByLabel("Username").(*tview.InputField).GetText()
		password := form.GetFormItemByLabel("Password").(*tview.InputField).GetText()
		lf.onSubmit(username, password)
	})
	form.AddButton("Cancel", func() {
		if lf.onCancel != nil {
			lf.onCancel()
		}
	})

	return lf
}

// SetOnSubmit sets the callback invoked with the entered credentials.
func (lf *LoginForm) SetOnSubmit(fn func(username, password string)) {
	lf.onSubmit = fn
}

// SetOnCancel sets the callback invoked when the form is dismissed.
func (lf *LoginForm) SetOnCancel(fn func()) {
	lf.onCancel = fn
}

// Reset clears both fields.
func (lf *LoginForm) Reset() {
	lf.GetFormItemByLabel("Username").(*tview.InputField).SetText("")
	lf.GetFormItemByLabel("Password").(*tview.InputField).SetText("")
}
