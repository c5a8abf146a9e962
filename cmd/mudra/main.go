package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/display"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	fmt.Println("Mudra - Gesture Controlled Slideshow")

	if err := guard(run); err != nil {
		var shown *shownError
		if !errors.As(err, &shown) {
			display.ShowDialog(display.UserMessage(err))
		}
		log.Fatalf("Mudra failed: %v", err)
	}
}

// shownError marks an error the session already put in front of the user.
type shownError struct {
	err error
}

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

// guard runs fn and turns a panic into an error so it reaches the error dialog.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()
	return fn()
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	flag.StringVar(&cfg.DeckPath, "deck", cfg.DeckPath, "PowerPoint (.pptx) file to present")
	flag.IntVar(&cfg.CameraID, "camera", cfg.CameraID, "video capture device index")
	flag.BoolVar(&cfg.Tray, "tray", cfg.Tray, "show a system tray status menu")
	flag.Parse()
	if flag.NArg() > 0 {
		cfg.DeckPath = flag.Arg(0)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	st, err := store.New(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close()
	log.Printf("Session journal at %s", st.Path())

	deckPath, err := resolveDeck(cfg.DeckPath, st)
	if err != nil {
		return err
	}

	return present(cfg, deckPath, st)
}

// present loads the deck and runs the session. Errors are shown to the user
// through the session's display before being returned.
func present(cfg config.Config, deckPath string, st *store.Store) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var t *tray.Tray
	if cfg.Tray {
		t = tray.New()
	}

	application := app.New(app.Config{
		Settings: cfg,
		Store:    st,
		Tray:     t,
	})
	defer application.Close()

	if err := application.Load(ctx, deckPath); err != nil {
		application.ShowError(err)
		return &shownError{err: err}
	}

	var err error
	if t == nil {
		err = application.Run(ctx)
	} else {
		// The tray owns the main thread; the presentation loop runs beside it.
		t.OnQuit(application.Stop)
		done := make(chan error, 1)
		go func() {
			done <- application.Run(ctx)
			t.Quit()
		}()
		t.Run()

		application.Stop()
		err = <-done
	}

	if err != nil {
		application.ShowError(err)
		return &shownError{err: err}
	}
	return nil
}

// errNoDeck is returned when neither an explicit nor a remembered deck exists.
var errNoDeck = errors.New("no presentation given: pass a .pptx file as argument, with -deck or MUDRA_DECK")

// resolveDeck picks the deck to present: the explicit path, or the last one presented.
func resolveDeck(explicit string, st *store.Store) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	last, err := st.Settings().Get(store.SettingLastDeck)
	if errors.Is(err, store.ErrNotFound) {
		return "", errNoDeck
	}
	if err != nil {
		return "", fmt.Errorf("read last deck: %w", err)
	}
	log.Printf("Reopening last presentation %s", last)
	return last, nil
}
