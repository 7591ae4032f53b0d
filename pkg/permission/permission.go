// Package permission provides the camera permission used to gate the screen.
package permission

import (
	"context"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// PreferenceKey is where the user's answer is kept between runs.
const PreferenceKey = "camera.permission"

// Prompt asks the user a yes/no question and reports the answer to reply.
type Prompt func(title, message string, reply func(bool))

// Preferences stores the camera grant in the app's preferences. Request asks
// the user once through prompt and saves the answer.
type Preferences struct {
	prefs  fyne.Preferences
	prompt Prompt
}

func NewPreferences(prefs fyne.Preferences, prompt Prompt) *Preferences {
	return &Preferences{prefs: prefs, prompt: prompt}
}

// DialogPrompt shows a Fyne confirm dialog on win.
func DialogPrompt(win fyne.Window) Prompt {
	return func(title, message string, reply func(bool)) {
		fyne.Do(func() {
			dialog.ShowConfirm(title, message, reply, win)
		})
	}
}

// Granted reports the stored answer.
func (p *Preferences) Granted() bool {
	return p.prefs.BoolWithFallback(PreferenceKey, false)
}

// Request prompts the user and blocks until they answer or ctx is done.
func (p *Preferences) Request(ctx context.Context) (bool, error) {
	answer := make(chan bool, 1)
	var once sync.Once
	p.prompt("Camera Access", "Allow this app to use the camera?", func(ok bool) {
		once.Do(func() { answer <- ok })
	})

	select {
	case ok := <-answer:
		p.prefs.SetBool(PreferenceKey, ok)
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Static is a fixed answer, for headless runs and tests.
type Static bool

func (s Static) Granted() bool { return bool(s) }

func (s Static) Request(context.Context) (bool, error) { return bool(s), nil }

// DialogAlerter shows blocking information dialogs on a window.
type DialogAlerter struct {
	Window fyne.Window
}

func (a DialogAlerter) Alert(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, a.Window)
	})
}
