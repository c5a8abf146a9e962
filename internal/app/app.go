// Package app wires the camera, detector, deck and display into a gesture-driven presentation.
package app

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/deck"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/display"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/presenter"
	"github.com/ayusman/mudra/internal/render"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

// ErrNoDeck is returned by Run when no deck has been loaded.
var ErrNoDeck = errors.New("no presentation loaded")

// Config holds the settings and collaborators of the application.
// Nil collaborators are replaced with the real implementations.
type Config struct {
	Settings   config.Config
	Store      *store.Store
	Camera     capture.Camera
	Detector   detector.Detector
	Rasterizer deck.Rasterizer
	Display    display.Display
	Tray       *tray.Tray
}

// ActionEvent describes a navigation or erase action fired on a frame.
type ActionEvent struct {
	Frame   int
	Gesture gesture.Gesture
	Action  presenter.Action
	// Slide is the slide index after the action.
	Slide   int
}

// ActionCallback is invoked on the loop goroutine for each latching action.
type ActionCallback func(ActionEvent)

// App runs one presentation at a time.
type App struct {
	settings   config.Config
	store      *store.Store
	camera     capture.Camera
	detector   detector.Detector
	rasterizer deck.Rasterizer
	display    display.Display
	tray       *tray.Tray
	compositor *render.Compositor
	mapper     gesture.Mapper
	rules      presenter.Rules

	mu        sync.RWMutex
	deck      *deck.Deck
	state     presenter.State
	sessionID string
	frame     int
	callbacks []ActionCallback

	quit atomic.Bool
}

// New creates a new App from cfg.
func New(cfg Config) *App {
	s := cfg.Settings

	a := &App{
		settings:   s,
		store:      cfg.Store,
		camera:     cfg.Camera,
		detector:   cfg.Detector,
		rasterizer: cfg.Rasterizer,
		display:    cfg.Display,
		tray:       cfg.Tray,
		mapper: gesture.Mapper{
			Width:   s.DisplayWidth,
			Height:  s.DisplayHeight,
			MarginY: s.CursorMarginY,
		},
		rules: presenter.Rules{
			Threshold: s.GestureThreshold,
			Delay:     s.CooldownFrames,
		},
	}

	style := render.DefaultStyle()
	style.ThumbWidth = s.ThumbnailWidth
	style.ThumbHeight = s.ThumbnailHeight
	style.GuideY = s.GestureThreshold
	a.compositor = render.NewCompositor(style)

	if a.camera == nil {
		a.camera = capture.NewCamera(s.CameraID, s.DisplayWidth, s.DisplayHeight)
	}

	if a.rasterizer == nil {
		a.rasterizer = deck.NewOfficeRasterizer(s.DisplayWidth, s.DisplayHeight, s.RasterizeTimeout)
	}

	// Try MediaPipe first, fall back to mock detector
	if a.detector == nil {
		dc := detector.Config{
			MaxHands:        s.MaxHands,
			MinConfidence:   s.MinConfidence,
			MinTrackingConf: detector.DefaultConfig().MinTrackingConf,
		}
		if mp, err := detector.NewMediaPipeDetector(dc); err == nil {
			a.detector = mp
			log.Println("Using MediaPipe hand detection")
		} else {
			log.Printf("MediaPipe not available (%v), using mock detector", err)
			a.detector = detector.NewMockDetector()
		}
	}

	return a
}

// OnAction registers fn to be called for every navigation or erase action.
func (a *App) OnAction(fn ActionCallback) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.callbacks = append(a.callbacks, fn)
}

// Load converts and loads the deck at path, replacing any previous one.
// The path is remembered as the last deck when a store is configured.
func (a *App) Load(ctx context.Context, path string) error {
	d, err := deck.Load(ctx, path, a.rasterizer, a.settings.DisplayWidth, a.settings.DisplayHeight)
	if err != nil {
		return err
	}

	a.mu.Lock()
	if a.deck != nil {
		a.deck.Close()
	}
	a.deck = d
	a.state = presenter.NewState(d.Len())
	a.mu.Unlock()

	if a.store != nil {
		if err := a.store.Settings().Set(store.SettingLastDeck, d.Path); err != nil {
			log.Printf("Failed to remember last deck: %v", err)
		}
	}
	if a.tray != nil {
		a.tray.SetSlide(0, d.Len())
	}
	return nil
}

// Run opens the camera and presents the loaded deck until the user quits,
// ctx is cancelled, Stop is called or a frame cannot be read.
func (a *App) Run(ctx context.Context) error {
	a.mu.RLock()
	loaded := a.deck != nil
	a.mu.RUnlock()
	if !loaded {
		return ErrNoDeck
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	defer func() {
		if err := a.camera.Close(); err != nil {
			log.Printf("Error closing camera: %v", err)
		}
	}()
	log.Println("Camera opened")

	if a.display == nil {
		a.display = display.NewWindows()
	}

	a.beginSession()
	defer a.endSession()

	panel := render.Instructions()
	a.display.ShowInstructions(panel)
	panel.Close()

	return a.runLoop(ctx)
}

// Stop asks the loop to end after the current frame. It is safe to call from any goroutine.
func (a *App) Stop() {
	a.quit.Store(true)
}

// State returns the current presentation state.
func (a *App) State() presenter.State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// SessionID returns the journal id of the running or last session.
func (a *App) SessionID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sessionID
}

// Deck returns the loaded deck, or nil.
func (a *App) Deck() *deck.Deck {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.deck
}

// Close releases the deck, the detector and the display.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error
	if a.deck != nil {
		errs = append(errs, a.deck.Close())
		a.deck = nil
	}
	if a.detector != nil {
		errs = append(errs, a.detector.Close())
	}
	if a.display != nil {
		errs = append(errs, a.display.Close())
	}
	return errors.Join(errs...)
}

// ShowError reports err to the user through the display.
func (a *App) ShowError(err error) {
	if a.display == nil {
		display.ShowDialog(display.UserMessage(err))
		return
	}
	a.display.ShowError(display.UserMessage(err))
}

// beginSession resets the presentation to the first slide and opens a journal entry.
func (a *App) beginSession() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state = presenter.NewState(a.deck.Len())
	a.frame = 0
	a.sessionID = ""
	a.quit.Store(false)

	if a.store == nil {
		return
	}
	sess := &store.Session{DeckPath: a.deck.Path, Slides: a.deck.Len()}
	if err := a.store.Sessions().Create(sess); err != nil {
		log.Printf("Failed to start session journal: %v", err)
		return
	}
	a.sessionID = sess.ID
	log.Printf("Session %s started on %s (%d slides)", sess.ID, sess.DeckPath, sess.Slides)
}

// endSession closes the journal entry on the slide the presentation ended on.
func (a *App) endSession() {
	a.mu.RLock()
	id, final, frames := a.sessionID, a.state.Index, a.frame
	a.mu.RUnlock()

	if a.store == nil || id == "" {
		return
	}
	if err := a.store.Sessions().End(id, final); err != nil {
		log.Printf("Failed to end session journal: %v", err)
		return
	}
	log.Printf("Session %s ended on slide %d after %d frames", id, final+1, frames)
}

// journal records a latching action and notifies the tray and callbacks.
func (a *App) journal(ev ActionEvent) {
	a.mu.RLock()
	id := a.sessionID
	callbacks := append([]ActionCallback(nil), a.callbacks...)
	slides := a.state.Slides
	a.mu.RUnlock()

	if a.store != nil && id != "" {
		err := a.store.Events().Record(&store.Event{
			SessionID: id,
			Frame:     ev.Frame,
			Gesture:   string(ev.Gesture),
			Action:    string(ev.Action),
			Slide:     ev.Slide,
		})
		if err != nil {
			log.Printf("Failed to record %s: %v", ev.Action, err)
		}
	}

	if a.tray != nil {
		a.tray.SetLastAction(string(ev.Action))
		a.tray.SetSlide(ev.Slide, slides)
	}

	for _, cb := range callbacks {
		cb(ev)
	}
}
