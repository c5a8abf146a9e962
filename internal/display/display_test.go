package display

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/deck"
	"github.com/ayusman/mudra/internal/testutil"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"wrong type", fmt.Errorf("load talk.key: %w", deck.ErrUnsupportedFormat), "not a PowerPoint"},
		{"missing file", fmt.Errorf("open: %w", os.ErrNotExist), "not found"},
		{"no office suite", fmt.Errorf("%w: soffice", deck.ErrRasterizerUnavailable), "LibreOffice"},
		{"timeout", fmt.Errorf("soffice: %w", deck.ErrTimeout), "too long"},
		{"corrupt", deck.ErrCorruptDeck, "could not be read"},
		{"empty", deck.ErrEmptyDeck, "could not be read"},
		{"camera", fmt.Errorf("%w: device 0", capture.ErrCameraUnavailable), "webcam"},
		{"frame read", capture.ErrFrameRead, "capture webcam frame"},
		{"anything else", errors.New("boom"), "An error occurred: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UserMessage(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("UserMessage() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("UserMessage() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestRecorder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	r := NewRecorder(2)
	defer r.Close()

	slide := testutil.SolidFrame(64, 48, 90)
	defer slide.Close()
	feed := testutil.SolidFrame(32, 24, 10)
	defer feed.Close()

	r.ShowInstructions(slide)
	if !r.SawInstructions() {
		t.Error("instructions not recorded")
	}

	r.Show(slide, feed)
	if r.Quit() {
		t.Error("Quit() = true after 1 of 2 frames")
	}
	r.Show(slide, feed)
	if !r.Quit() {
		t.Error("Quit() = false after 2 of 2 frames")
	}

	last := r.Last()
	defer last.Close()
	if last.Cols() != 64 || last.GetVecbAt(0, 0)[0] != 90 {
		t.Error("Last() does not match the shown slide")
	}

	r.ShowError("oops")
	if got := r.Errors(); len(got) != 1 || got[0] != "oops" {
		t.Errorf("Errors() = %v", got)
	}
}

func TestRecorder_ZeroNeverQuits(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	r := NewRecorder(0)
	defer r.Close()

	frame := testutil.SolidFrame(8, 8, 0)
	defer frame.Close()
	for i := 0; i < 5; i++ {
		r.Show(frame, frame)
	}
	if r.Quit() {
		t.Error("Quit() = true with QuitAfter 0")
	}
	if r.Frames() != 5 {
		t.Errorf("Frames() = %d, want 5", r.Frames())
	}
}
