package tray

import "testing"

func TestTray_Status(t *testing.T) {
	tr := New()

	slide, last := tr.Status()
	if slide != "No deck loaded" || last != "Last: none" {
		t.Errorf("initial Status() = %q, %q", slide, last)
	}

	tr.SetSlide(2, 10)
	tr.SetLastAction("next")

	slide, last = tr.Status()
	if slide != "Slide 3/10" {
		t.Errorf("slide = %q, want %q", slide, "Slide 3/10")
	}
	if last != "Last: next" {
		t.Errorf("last = %q, want %q", last, "Last: next")
	}
}
