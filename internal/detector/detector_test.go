package detector

import (
	"errors"
	"image"
	"testing"
)

func TestHandLandmarks_FingersUp(t *testing.T) {
	patterns := []Fingers{
		{},
		{true, false, false, false, false},
		{false, false, false, false, true},
		{false, true, true, false, false},
		{false, true, false, false, false},
		{false, false, true, true, true},
		{true, true, true, true, true},
	}

	for _, want := range patterns {
		hand := PoseLandmarks(want)
		if got := hand.FingersUp(); got != want {
			t.Errorf("FingersUp() = %v, want %v", got, want)
		}
	}

	t.Run("left hand mirrors the thumb test", func(t *testing.T) {
		hand := PoseLandmarks(Fingers{true, false, false, false, false})
		hand.Handedness = "Left"

		if hand.FingersUp()[Thumb] {
			t.Error("a right-hand thumb pose should read as folded on a left hand")
		}
	})

	t.Run("fist with a tucked thumb has no fingers up", func(t *testing.T) {
		hand := FistLandmarks()
		if got := hand.FingersUp(); got != (Fingers{}) {
			t.Errorf("FingersUp() = %v, want all false", got)
		}
	})

	t.Run("nil hand has no fingers up", func(t *testing.T) {
		var hand *HandLandmarks
		if got := hand.FingersUp(); got != (Fingers{}) {
			t.Errorf("FingersUp() = %v, want all false", got)
		}
	})
}

func TestHandLandmarks_ThumbDirection(t *testing.T) {
	// Frames are mirrored: an extended right thumb points toward smaller x.
	tests := []struct {
		name       string
		handedness string
		ipX, tipX  float64
		want       bool
	}{
		{"right thumb out", "Right", 0.50, 0.40, true},
		{"right thumb tucked", "Right", 0.50, 0.60, false},
		{"left thumb out", "Left", 0.50, 0.60, true},
		{"left thumb tucked", "Left", 0.50, 0.40, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := HandLandmarks{Handedness: tt.handedness}
			hand.Points[ThumbIP] = Point3D{X: tt.ipX, Y: 0.6}
			hand.Points[ThumbTip] = Point3D{X: tt.tipX, Y: 0.6}

			if got := hand.FingersUp()[Thumb]; got != tt.want {
				t.Errorf("thumb extended = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandLandmarks_Pixel(t *testing.T) {
	hand := HandLandmarks{}
	hand.Points[IndexTip] = Point3D{X: 0.75, Y: 0.5}

	got := hand.Pixel(IndexTip, 1280, 720)
	want := image.Point{X: 960, Y: 360}
	if got != want {
		t.Errorf("Pixel() = %v, want %v", got, want)
	}
}

func TestHandLandmarks_Bounds(t *testing.T) {
	hand := OpenPalmLandmarks()

	bounds := hand.Bounds(1000, 1000)
	for i := 0; i < NumLandmarks; i++ {
		p := hand.Pixel(i, 1000, 1000)
		if p.X < bounds.Min.X || p.X > bounds.Max.X || p.Y < bounds.Min.Y || p.Y > bounds.Max.Y {
			t.Errorf("landmark %d at %v outside bounds %v", i, p, bounds)
		}
	}
}

func TestPoseLandmarksAt(t *testing.T) {
	want := Fingers{false, true, false, false, false}
	hand := PoseLandmarksAt(want, 0.8, 0.3)

	if got := hand.Pixel(IndexTip, 100, 100); got != (image.Point{X: 80, Y: 30}) {
		t.Errorf("index tip at %v, want (80,30)", got)
	}
	if got := hand.FingersUp(); got != want {
		t.Errorf("translation changed the pose: %v, want %v", got, want)
	}
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{FistLandmarks(), OpenPalmLandmarks()})

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 2 {
			t.Errorf("expected 2 hands, got %d", len(hands))
		}
	})

	t.Run("plays the sequence before the fallback", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{FistLandmarks()})
		mock.SetSequence([][]HandLandmarks{nil, {OpenPalmLandmarks(), OpenPalmLandmarks()}})

		wantCounts := []int{0, 2, 1, 1}
		for i, want := range wantCounts {
			hands, _ := mock.Detect(nil)
			if len(hands) != want {
				t.Errorf("call %d: got %d hands, want %d", i, len(hands), want)
			}
		}
		if mock.Calls() != len(wantCounts) {
			t.Errorf("Calls() = %d, want %d", mock.Calls(), len(wantCounts))
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(nil)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if hands != nil {
			t.Errorf("expected nil hands when error is set, got %v", hands)
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
		var _ Detector = (*MediaPipeDetector)(nil)
	})
}

func TestParseResponse(t *testing.T) {
	t.Run("decodes hands", func(t *testing.T) {
		line := []byte(`{"hands":[{"handedness":"Left","score":0.9,"points":[{"x":0.1,"y":0.2,"z":0}]}]}` + "\n")

		hands, err := parseResponse(line)
		if err != nil {
			t.Fatalf("parseResponse() error = %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("got %d hands, want 1", len(hands))
		}
		if hands[0].Handedness != "Left" || hands[0].Points[Wrist].Y != 0.2 {
			t.Errorf("unexpected hand %+v", hands[0])
		}
	})

	t.Run("surfaces service errors", func(t *testing.T) {
		if _, err := parseResponse([]byte(`{"error":"model missing"}`)); err == nil {
			t.Error("expected error from service error field")
		}
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		if _, err := parseResponse([]byte(`{"hands":`)); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestFilterHands(t *testing.T) {
	confident := OpenPalmLandmarks()
	doubtful := FistLandmarks()
	doubtful.Score = 0.4

	tests := []struct {
		name   string
		hands  []HandLandmarks
		config Config
		want   int
	}{
		{"drops low confidence", []HandLandmarks{doubtful, confident}, DefaultConfig(), 1},
		{"caps at max hands", []HandLandmarks{confident, confident}, DefaultConfig(), 1},
		{"keeps both when allowed", []HandLandmarks{confident, confident}, Config{MaxHands: 2, MinConfidence: 0.5}, 2},
		{"empty stays empty", nil, DefaultConfig(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filterHands(tt.hands, tt.config); len(got) != tt.want {
				t.Errorf("filterHands() kept %d, want %d", len(got), tt.want)
			}
		})
	}
}
