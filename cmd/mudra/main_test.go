package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/mudra/internal/deck"
	"github.com/ayusman/mudra/internal/display"
	"github.com/ayusman/mudra/internal/store"
)

func TestGuard(t *testing.T) {
	t.Run("passes errors through", func(t *testing.T) {
		want := errors.New("boom")
		if err := guard(func() error { return want }); !errors.Is(err, want) {
			t.Errorf("guard() = %v, want %v", err, want)
		}
	})

	t.Run("nil on success", func(t *testing.T) {
		if err := guard(func() error { return nil }); err != nil {
			t.Errorf("guard() = %v, want nil", err)
		}
	})

	t.Run("panic becomes a dialog message", func(t *testing.T) {
		err := guard(func() error { panic("index out of range") })
		if err == nil {
			t.Fatal("guard() = nil after panic")
		}
		msg := display.UserMessage(err)
		if !strings.HasPrefix(msg, "An error occurred") || !strings.Contains(msg, "index out of range") {
			t.Errorf("UserMessage() = %q", msg)
		}
	})
}

func TestShownError(t *testing.T) {
	err := error(&shownError{err: deck.ErrUnsupportedFormat})

	var shown *shownError
	if !errors.As(err, &shown) {
		t.Fatal("errors.As did not find shownError")
	}
	if !errors.Is(err, deck.ErrUnsupportedFormat) {
		t.Error("shownError should unwrap to the session error")
	}
	if err.Error() != deck.ErrUnsupportedFormat.Error() {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestResolveDeck(t *testing.T) {
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer st.Close()

	if _, err := resolveDeck("", st); !errors.Is(err, errNoDeck) {
		t.Errorf("resolveDeck() with nothing remembered = %v, want errNoDeck", err)
	}

	if err := st.Settings().Set(store.SettingLastDeck, "/talks/last.pptx"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	tests := []struct {
		name     string
		explicit string
		want     string
	}{
		{"explicit path wins", "/talks/new.pptx", "/talks/new.pptx"},
		{"falls back to last deck", "", "/talks/last.pptx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveDeck(tt.explicit, st)
			if err != nil {
				t.Fatalf("resolveDeck() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveDeck() = %q, want %q", got, tt.want)
			}
		})
	}
}
