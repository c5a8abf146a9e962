// Package tray provides an optional system tray status surface for a running presentation.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the system tray application.
type Tray struct {
	onQuit func()
	mu     sync.RWMutex

	slide      string
	lastAction string

	// Menu items stored for later updates
	menuSlide      *systray.MenuItem
	menuLastAction *systray.MenuItem
}

// New creates a new Tray with no slide loaded yet.
func New() *Tray {
	return &Tray{
		slide:      slideTitle(-1, 0),
		lastAction: actionTitle(""),
	}
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until Quit is called or the quit menu item is clicked.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit removes the tray icon and makes Run return.
func (t *Tray) Quit() {
	systray.Quit()
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra gesture slideshow")

	t.mu.Lock()
	t.menuSlide = systray.AddMenuItem(t.slide, "Current slide")
	t.menuSlide.Disable()
	t.menuLastAction = systray.AddMenuItem(t.lastAction, "Last gesture action")
	t.menuLastAction.Disable()
	t.mu.Unlock()
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "End the presentation")

	go func() {
		<-menuQuit.ClickedCh
		t.handleQuit()
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetSlide shows the zero-based slide index i out of n.
func (t *Tray) SetSlide(i, n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.slide = slideTitle(i, n)
	if t.menuSlide != nil {
		t.menuSlide.SetTitle(t.slide)
	}
}

// SetLastAction updates the last action display in the menu.
func (t *Tray) SetLastAction(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lastAction = actionTitle(name)
	if t.menuLastAction != nil {
		t.menuLastAction.SetTitle(t.lastAction)
	}
}

// Status returns the current slide and last action titles.
func (t *Tray) Status() (slide, lastAction string) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.slide, t.lastAction
}

func slideTitle(i, n int) string {
	if n <= 0 {
		return "No deck loaded"
	}
	return fmt.Sprintf("Slide %d/%d", i+1, n)
}

func actionTitle(name string) string {
	if name == "" {
		return "Last: none"
	}
	return "Last: " + name
}
